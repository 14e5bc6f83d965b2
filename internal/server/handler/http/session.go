package http

import (
	"context"
	"net/http"

	"github.com/atinyakov/PageGuard/internal/middleware"
)

// SessionEnder terminates sessions.
type SessionEnder interface {
	End(ctx context.Context, sessionID string) error
}

// SessionHandler serves DELETE /api/session.
type SessionHandler struct {
	Store    SessionEnder
	Sessions *middleware.Sessions
}

// End forgets the caller's session and every unlock it held.
func (h *SessionHandler) End(w http.ResponseWriter, r *http.Request) {
	if sessionID := middleware.GetSessionIDFromContext(r.Context()); sessionID != "" {
		if err := h.Store.End(r.Context(), sessionID); err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
	}
	h.Sessions.ExpireCookie(w)
	w.WriteHeader(http.StatusNoContent)
}
