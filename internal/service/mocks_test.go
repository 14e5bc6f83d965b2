package service

import (
	"context"

	"github.com/atinyakov/PageGuard/internal/models"
)

type mockProtectionRepo struct {
	GetProtectionFunc     func(ctx context.Context, itemID string) (*models.Protection, error)
	UpsertProtectionFunc  func(ctx context.Context, p models.Protection) error
	DeleteProtectionsFunc func(ctx context.Context, itemIDs []string) (int64, error)
}

func (m *mockProtectionRepo) GetProtection(ctx context.Context, itemID string) (*models.Protection, error) {
	return m.GetProtectionFunc(ctx, itemID)
}
func (m *mockProtectionRepo) UpsertProtection(ctx context.Context, p models.Protection) error {
	return m.UpsertProtectionFunc(ctx, p)
}
func (m *mockProtectionRepo) DeleteProtections(ctx context.Context, itemIDs []string) (int64, error) {
	return m.DeleteProtectionsFunc(ctx, itemIDs)
}

// mockUnlockStore treats every session as live unless ExistsFunc is set.
type mockUnlockStore struct {
	ExistsFunc       func(ctx context.Context, sessionID string) (bool, error)
	IsUnlockedFunc   func(ctx context.Context, sessionID, itemID string) (bool, error)
	MarkUnlockedFunc func(ctx context.Context, sessionID, itemID string) error
}

func (m *mockUnlockStore) Exists(ctx context.Context, sessionID string) (bool, error) {
	if m.ExistsFunc == nil {
		return true, nil
	}
	return m.ExistsFunc(ctx, sessionID)
}
func (m *mockUnlockStore) IsUnlocked(ctx context.Context, sessionID, itemID string) (bool, error) {
	return m.IsUnlockedFunc(ctx, sessionID, itemID)
}
func (m *mockUnlockStore) MarkUnlocked(ctx context.Context, sessionID, itemID string) error {
	return m.MarkUnlockedFunc(ctx, sessionID, itemID)
}

type mockSettingsRepo struct {
	GetSettingsFunc  func(ctx context.Context) (models.Settings, error)
	SaveSettingsFunc func(ctx context.Context, s models.Settings) error
}

func (m *mockSettingsRepo) GetSettings(ctx context.Context) (models.Settings, error) {
	return m.GetSettingsFunc(ctx)
}
func (m *mockSettingsRepo) SaveSettings(ctx context.Context, s models.Settings) error {
	return m.SaveSettingsFunc(ctx, s)
}

// recordProtections returns a repo serving a fixed record set.
func recordProtections(records ...models.Protection) *mockProtectionRepo {
	byID := make(map[string]models.Protection, len(records))
	for _, r := range records {
		byID[r.ItemID] = r
	}
	return &mockProtectionRepo{
		GetProtectionFunc: func(_ context.Context, itemID string) (*models.Protection, error) {
			if p, ok := byID[itemID]; ok {
				return &p, nil
			}
			return nil, nil
		},
	}
}
