// Package http provides the HTTP handlers of the PageGuard service.
package http

import (
	"context"
	"net/http"

	"github.com/atinyakov/PageGuard/internal/middleware"
	"github.com/atinyakov/PageGuard/internal/models"
)

// RenderService is the render pipeline callback.
type RenderService interface {
	Render(ctx context.Context, itemID, sessionID, content string) (models.RenderResult, error)
}

// RenderHandler serves POST /api/render.
type RenderHandler struct {
	RenderService RenderService
}

// RenderRequest is sent by the host while rendering an item.
type RenderRequest struct {
	ItemID  models.ItemID `json:"item_id" validate:"required"`
	Content string        `json:"content"`
}

// Render returns either the original content or a challenge descriptor
// for the session established on the request.
func (h *RenderHandler) Render(w http.ResponseWriter, r *http.Request) {
	var req RenderRequest
	if err := decodeAndValidate(r, &req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	sessionID := middleware.GetSessionIDFromContext(r.Context())
	res, err := h.RenderService.Render(r.Context(), string(req.ItemID), sessionID, req.Content)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
