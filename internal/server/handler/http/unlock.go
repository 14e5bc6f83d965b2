package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/atinyakov/PageGuard/internal/middleware"
	"github.com/atinyakov/PageGuard/internal/models"
)

// Messages returned in the unlock envelope.
const (
	MsgUnlocked           = "Password correct."
	MsgRejected           = "Incorrect password."
	MsgInvalidRequest     = "Invalid request."
	MsgSessionUnavailable = "Session unavailable."
	MsgInternal           = "An error occurred."
)

// UnlockService processes password submissions.
type UnlockService interface {
	AttemptUnlock(ctx context.Context, itemID, sessionID, candidate string) (models.UnlockResult, error)
}

// UnlockHandler serves POST /api/unlock.
type UnlockHandler struct {
	UnlockService UnlockService
}

// UnlockRequest is the asynchronous password submission. Both fields must
// be present; an empty password is allowed and simply rejected.
type UnlockRequest struct {
	ItemID   models.ItemID `json:"item_id" validate:"required"`
	Password *string       `json:"password" validate:"required"`
}

// UnlockResponse is the success/failure envelope read by the challenge script.
type UnlockResponse struct {
	Success bool   `json:"success"`
	Data    string `json:"data"`
}

// Unlock checks the submitted password for the caller's session.
func (h *UnlockHandler) Unlock(w http.ResponseWriter, r *http.Request) {
	var req UnlockRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, UnlockResponse{Data: MsgInvalidRequest})
		return
	}

	sessionID := middleware.GetSessionIDFromContext(r.Context())
	res, err := h.UnlockService.AttemptUnlock(r.Context(), string(req.ItemID), sessionID, *req.Password)
	switch {
	case errors.Is(err, models.ErrSessionUnavailable):
		writeJSON(w, http.StatusUnauthorized, UnlockResponse{Data: MsgSessionUnavailable})
	case err != nil:
		writeJSON(w, http.StatusInternalServerError, UnlockResponse{Data: MsgInternal})
	case res == models.Unlocked:
		writeJSON(w, http.StatusOK, UnlockResponse{Success: true, Data: MsgUnlocked})
	default:
		writeJSON(w, http.StatusOK, UnlockResponse{Data: MsgRejected})
	}
}
