package http

import (
	"context"
	"net/http"

	"github.com/atinyakov/PageGuard/internal/models"
	"github.com/go-chi/chi/v5"
)

// ProtectionService manages protection records for the editing collaborator.
type ProtectionService interface {
	Get(ctx context.Context, itemID string) (*models.Protection, error)
	Set(ctx context.Context, itemID string, enabled bool, password string) error
	Purge(ctx context.Context, itemIDs []string) (int64, error)
}

// ProtectionHandler serves the admin protection endpoints.
type ProtectionHandler struct {
	ProtectionService ProtectionService
}

// ProtectionRequest is the item-editing save payload. A missing "enabled"
// means unchecked. The password is stored as sent.
type ProtectionRequest struct {
	Enabled  bool   `json:"enabled"`
	Password string `json:"password"`
}

// PurgeRequest lists deleted items whose records should go.
type PurgeRequest struct {
	ItemIDs []models.ItemID `json:"item_ids" validate:"required,min=1,dive,required"`
}

// Get handles GET /api/admin/items/{itemID}/protection.
func (h *ProtectionHandler) Get(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "itemID")
	p, err := h.ProtectionService.Get(r.Context(), itemID)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if p == nil {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// Put handles PUT /api/admin/items/{itemID}/protection.
func (h *ProtectionHandler) Put(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "itemID")

	var req ProtectionRequest
	if err := decodeAndValidate(r, &req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	if err := h.ProtectionService.Set(r.Context(), itemID, req.Enabled, req.Password); err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, models.Protection{ItemID: itemID, Enabled: req.Enabled, Password: req.Password})
}

// Purge handles DELETE /api/admin/protections.
func (h *ProtectionHandler) Purge(w http.ResponseWriter, r *http.Request) {
	var req PurgeRequest
	if err := decodeAndValidate(r, &req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	ids := make([]string, len(req.ItemIDs))
	for i, id := range req.ItemIDs {
		ids[i] = string(id)
	}
	n, err := h.ProtectionService.Purge(r.Context(), ids)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"deleted": n})
}
