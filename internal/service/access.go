// Package service provides the access-gating business logic: deciding whether
// an item is shown, unlocking items for a session, and managing protection
// records and settings. Persistence is delegated to repository interfaces.
package service

import (
	"context"

	"github.com/atinyakov/PageGuard/internal/metrics"
	"github.com/atinyakov/PageGuard/internal/models"
)

// ProtectionReader looks up protection records.
type ProtectionReader interface {
	// GetProtection returns the record for itemID, or nil when the item has none.
	GetProtection(ctx context.Context, itemID string) (*models.Protection, error)
}

// UnlockStore holds per-session unlock state.
type UnlockStore interface {
	// Exists reports whether sessionID names a live session.
	Exists(ctx context.Context, sessionID string) (bool, error)
	// IsUnlocked reports whether sessionID unlocked itemID. An empty sessionID is never unlocked.
	IsUnlocked(ctx context.Context, sessionID, itemID string) (bool, error)
	// MarkUnlocked records an unlock. It fails with models.ErrSessionUnavailable
	// when the session does not exist.
	MarkUnlocked(ctx context.Context, sessionID, itemID string) error
}

// AccessService decides whether an item's content may be shown to a session.
type AccessService struct {
	protections ProtectionReader
	unlocks     UnlockStore
}

// NewAccessService constructs an AccessService.
func NewAccessService(protections ProtectionReader, unlocks UnlockStore) *AccessService {
	return &AccessService{protections: protections, unlocks: unlocks}
}

// Decide returns ShowContent when itemID is unprotected or unlocked by
// sessionID, and ShowChallenge otherwise. sessionID may be empty. Decide
// never writes to any store.
func (s *AccessService) Decide(ctx context.Context, itemID, sessionID string) (models.Decision, error) {
	p, err := s.protections.GetProtection(ctx, itemID)
	if err != nil {
		return models.ShowChallenge, err
	}
	if p == nil || !p.Enabled {
		metrics.ObserveDecision(models.ShowContent.String())
		return models.ShowContent, nil
	}

	unlocked, err := s.unlocks.IsUnlocked(ctx, sessionID, itemID)
	if err != nil {
		return models.ShowChallenge, err
	}
	if unlocked {
		metrics.ObserveDecision(models.ShowContent.String())
		return models.ShowContent, nil
	}
	metrics.ObserveDecision(models.ShowChallenge.String())
	return models.ShowChallenge, nil
}
