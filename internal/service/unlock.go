package service

import (
	"context"
	"crypto/subtle"
	"errors"

	"github.com/atinyakov/PageGuard/internal/metrics"
	"github.com/atinyakov/PageGuard/internal/models"
	"go.uber.org/zap"
)

// UnlockService checks password submissions and records successful unlocks.
type UnlockService struct {
	protections ProtectionReader
	unlocks     UnlockStore
	log         *zap.Logger
}

// NewUnlockService constructs an UnlockService. log may be nil.
func NewUnlockService(protections ProtectionReader, unlocks UnlockStore, log *zap.Logger) *UnlockService {
	if log == nil {
		log = zap.NewNop()
	}
	return &UnlockService{protections: protections, unlocks: unlocks, log: log}
}

// AttemptUnlock compares candidate with the stored password of itemID and,
// on an exact match, unlocks the item for sessionID.
//
// The session is checked before the password, so an unknown or expired
// session fails with models.ErrSessionUnavailable whatever the candidate.
// Every other failure is reported as Rejected with no
// further detail: no record, an empty candidate and a mismatch look the same.
// Re-unlocking an unlocked item returns Unlocked again.
func (s *UnlockService) AttemptUnlock(ctx context.Context, itemID, sessionID, candidate string) (models.UnlockResult, error) {
	log := s.log.With(zap.String("item_id", itemID))

	if sessionID == "" {
		metrics.ObserveUnlock("session_unavailable")
		return models.Rejected, models.ErrSessionUnavailable
	}
	live, err := s.unlocks.Exists(ctx, sessionID)
	if err != nil {
		return models.Rejected, err
	}
	if !live {
		metrics.ObserveUnlock("session_unavailable")
		return models.Rejected, models.ErrSessionUnavailable
	}

	p, err := s.protections.GetProtection(ctx, itemID)
	if err != nil {
		return models.Rejected, err
	}
	if p == nil || candidate == "" ||
		subtle.ConstantTimeCompare([]byte(candidate), []byte(p.Password)) != 1 {
		metrics.ObserveUnlock(models.Rejected.String())
		log.Debug("unlock rejected")
		return models.Rejected, nil
	}

	if err := s.unlocks.MarkUnlocked(ctx, sessionID, itemID); err != nil {
		if errors.Is(err, models.ErrSessionUnavailable) {
			metrics.ObserveUnlock("session_unavailable")
		}
		return models.Rejected, err
	}

	metrics.ObserveUnlock(models.Unlocked.String())
	log.Debug("item unlocked")
	return models.Unlocked, nil
}
