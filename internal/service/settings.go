package service

import (
	"context"

	"github.com/atinyakov/PageGuard/internal/models"
)

// Challenge defaults applied when a setting is empty.
const (
	DefaultBackgroundColor = "#f1f1f1"
	DefaultFontColor       = "#333"
	DefaultTermsCopy       = "Please read and agree to the terms."
)

// SettingsRepository persists the global settings.
type SettingsRepository interface {
	GetSettings(ctx context.Context) (models.Settings, error)
	SaveSettings(ctx context.Context, s models.Settings) error
}

// SettingsService reads and saves global settings as-is.
type SettingsService struct {
	repo SettingsRepository
}

// NewSettingsService constructs a SettingsService.
func NewSettingsService(repo SettingsRepository) *SettingsService {
	return &SettingsService{repo: repo}
}

// Get returns the stored settings without defaults applied.
func (s *SettingsService) Get(ctx context.Context) (models.Settings, error) {
	return s.repo.GetSettings(ctx)
}

// Save stores settings verbatim.
func (s *SettingsService) Save(ctx context.Context, settings models.Settings) error {
	return s.repo.SaveSettings(ctx, settings)
}

// BuildChallenge describes the password prompt for itemID, filling empty
// settings with defaults. Terms copy is only included when the popup is on.
func BuildChallenge(itemID, action string, st models.Settings) models.Challenge {
	c := models.Challenge{
		ItemID:          itemID,
		Action:          action,
		BackgroundColor: st.BackgroundColor,
		FontColor:       st.FontColor,
		TermsEnabled:    st.TermsEnabled,
	}
	if c.BackgroundColor == "" {
		c.BackgroundColor = DefaultBackgroundColor
	}
	if c.FontColor == "" {
		c.FontColor = DefaultFontColor
	}
	if st.TermsEnabled {
		c.TermsCopy = st.TermsCopy
		if c.TermsCopy == "" {
			c.TermsCopy = DefaultTermsCopy
		}
	}
	return c
}
