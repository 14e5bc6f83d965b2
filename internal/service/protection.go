package service

import (
	"context"

	"github.com/atinyakov/PageGuard/internal/models"
)

// ProtectionRepository defines the persistence operations for protection records.
type ProtectionRepository interface {
	ProtectionReader
	// UpsertProtection creates or replaces a record.
	UpsertProtection(ctx context.Context, p models.Protection) error
	// DeleteProtections removes records and returns how many existed.
	DeleteProtections(ctx context.Context, itemIDs []string) (int64, error)
}

// ProtectionService serves the item-editing collaborator. Callers must have
// authorized the request already; no checks happen here.
type ProtectionService struct {
	repo ProtectionRepository
}

// NewProtectionService constructs a ProtectionService.
func NewProtectionService(repo ProtectionRepository) *ProtectionService {
	return &ProtectionService{repo: repo}
}

// Get returns the record for itemID, or nil if none exists.
func (s *ProtectionService) Get(ctx context.Context, itemID string) (*models.Protection, error) {
	return s.repo.GetProtection(ctx, itemID)
}

// Set upserts the record for itemID. The password is kept even when
// protection is disabled.
func (s *ProtectionService) Set(ctx context.Context, itemID string, enabled bool, password string) error {
	return s.repo.UpsertProtection(ctx, models.Protection{
		ItemID:   itemID,
		Enabled:  enabled,
		Password: password,
	})
}

// Purge removes the records of deleted items.
func (s *ProtectionService) Purge(ctx context.Context, itemIDs []string) (int64, error) {
	if len(itemIDs) == 0 {
		return 0, nil
	}
	return s.repo.DeleteProtections(ctx, itemIDs)
}
