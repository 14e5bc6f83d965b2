package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/atinyakov/PageGuard/internal/models"
)

// SettingsService reads and saves global settings.
type SettingsService interface {
	Get(ctx context.Context) (models.Settings, error)
	Save(ctx context.Context, s models.Settings) error
}

// SettingsHandler serves the admin settings endpoints.
type SettingsHandler struct {
	SettingsService SettingsService
}

// Get handles GET /api/admin/settings.
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	s, err := h.SettingsService.Get(r.Context())
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

// Put handles PUT /api/admin/settings. Fields are stored as sent; omitted
// fields become empty and fall back to defaults when a challenge is built.
func (h *SettingsHandler) Put(w http.ResponseWriter, r *http.Request) {
	var s models.Settings
	if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if err := h.SettingsService.Save(r.Context(), s); err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, s)
}
