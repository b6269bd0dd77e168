package repository

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/jmoiron/sqlx"
)

// SettingsRepository stores named settings as key-value rows. Writes are
// last-write-wins upserts; no history is kept.
type SettingsRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewSettingsRepository(db *sqlx.DB) *SettingsRepository {
	return &SettingsRepository{db: db, now: time.Now}
}

// Get returns the raw value and whether the row exists.
func (r *SettingsRepository) Get(ctx context.Context, key string) (string, bool, error) {
	var value string

	err := r.db.GetContext(ctx, &value, `SELECT setting_value FROM settings WHERE setting_key = ?`, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, storageError("get setting", err)
	}

	return value, true, nil
}

func (r *SettingsRepository) Set(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO settings (setting_key, setting_value, updated_at)
		VALUES (?, ?, ?)
		ON DUPLICATE KEY UPDATE setting_value = VALUES(setting_value), updated_at = VALUES(updated_at)
	`

	if _, err := r.db.ExecContext(ctx, query, key, value, r.now().UTC()); err != nil {
		return storageError("upsert setting", err)
	}

	return nil
}

// GetBool reads a boolean setting, returning defaultValue when the row is absent.
func (r *SettingsRepository) GetBool(ctx context.Context, key string, defaultValue bool) (bool, error) {
	value, ok, err := r.Get(ctx, key)
	if err != nil {
		return false, err
	}

	if !ok {
		return defaultValue, nil
	}

	return value == "true", nil
}

func (r *SettingsRepository) SetBool(ctx context.Context, key string, value bool) error {
	return r.Set(ctx, key, strconv.FormatBool(value))
}
