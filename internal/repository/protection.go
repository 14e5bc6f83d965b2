// Package repository provides PostgreSQL persistence for protection records
// and global settings.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/atinyakov/PageGuard/internal/models"
	"github.com/lib/pq"
)

// PostgresProtectionRepository stores one protection record per item.
type PostgresProtectionRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresProtectionRepository creates a repository over db.
// db must be a valid connection to a PostgreSQL instance.
func NewPostgresProtectionRepository(db *sql.DB) *PostgresProtectionRepository {
	return &PostgresProtectionRepository{DB: db}
}

// GetProtection returns the record for itemID, or nil if the item has none.
func (r *PostgresProtectionRepository) GetProtection(ctx context.Context, itemID string) (*models.Protection, error) {
	p := models.Protection{ItemID: itemID}
	err := r.DB.QueryRowContext(ctx, `
		SELECT enabled, password FROM protections WHERE item_id = $1
	`, itemID).Scan(&p.Enabled, &p.Password)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("GetProtection: %w", err)
	}
	return &p, nil
}

// UpsertProtection creates or replaces the record for p.ItemID.
func (r *PostgresProtectionRepository) UpsertProtection(ctx context.Context, p models.Protection) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO protections (item_id, enabled, password, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (item_id) DO UPDATE SET
			enabled = EXCLUDED.enabled,
			password = EXCLUDED.password,
			updated_at = now()
	`, p.ItemID, p.Enabled, p.Password)
	if err != nil {
		return fmt.Errorf("UpsertProtection: %w", err)
	}
	return nil
}

// DeleteProtections removes the records of the given items and reports how many existed.
func (r *PostgresProtectionRepository) DeleteProtections(ctx context.Context, itemIDs []string) (int64, error) {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM protections WHERE item_id = ANY($1)`, pq.Array(itemIDs))
	if err != nil {
		return 0, fmt.Errorf("DeleteProtections: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}
