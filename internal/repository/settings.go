package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/atinyakov/PageGuard/internal/models"
)

// PostgresSettingsRepository stores the singleton settings row.
type PostgresSettingsRepository struct {
	DB *sql.DB
}

// NewPostgresSettingsRepository creates a repository over db.
func NewPostgresSettingsRepository(db *sql.DB) *PostgresSettingsRepository {
	return &PostgresSettingsRepository{DB: db}
}

// GetSettings returns the stored settings, or zero settings if none were saved yet.
func (r *PostgresSettingsRepository) GetSettings(ctx context.Context) (models.Settings, error) {
	var s models.Settings
	err := r.DB.QueryRowContext(ctx, `
		SELECT background_color, font_color, terms_enabled, terms_copy FROM settings WHERE id = 1
	`).Scan(&s.BackgroundColor, &s.FontColor, &s.TermsEnabled, &s.TermsCopy)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Settings{}, nil
	}
	if err != nil {
		return models.Settings{}, fmt.Errorf("GetSettings: %w", err)
	}
	return s, nil
}

// SaveSettings replaces the stored settings.
func (r *PostgresSettingsRepository) SaveSettings(ctx context.Context, s models.Settings) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO settings (id, background_color, font_color, terms_enabled, terms_copy)
		VALUES (1, $1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			background_color = EXCLUDED.background_color,
			font_color = EXCLUDED.font_color,
			terms_enabled = EXCLUDED.terms_enabled,
			terms_copy = EXCLUDED.terms_copy
	`, s.BackgroundColor, s.FontColor, s.TermsEnabled, s.TermsCopy)
	if err != nil {
		return fmt.Errorf("SaveSettings: %w", err)
	}
	return nil
}
