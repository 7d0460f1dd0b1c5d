package repositories

import (
	"context"
	"database/sql"
	"errors"

	intdb "khanza/internal/db"
)

const (
	KeyVoucherEnabled         = "voucher_enabled"
	KeyVoucherDefaultDiscount = "voucher_default_discount"
	KeySiteName               = "site_name"
	KeyLogoURL                = "logo_url"
	KeyFooterText             = "footer_text"
)

// SettingsRepository is the site_config key/value store.
type SettingsRepository struct {
	DB intdb.DBTX
}

func (r SettingsRepository) db() intdb.DBTX { return pick(r.DB) }

// Get returns ok=false when the key is absent.
func (r SettingsRepository) Get(ctx context.Context, key string) (string, bool, error) {
	var v sql.NullString
	err := r.db().QueryRowContext(ctx, `SELECT value FROM site_config WHERE config_key = ? LIMIT 1`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v.String, true, nil
}

func (r SettingsRepository) All(ctx context.Context) (map[string]string, error) {
	rows, err := r.db().QueryContext(ctx, `SELECT config_key, value FROM site_config`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string]string{}
	for rows.Next() {
		var (
			k string
			v sql.NullString
		)
		if err := rows.Scan(&k, &v); err != nil {
			return nil, err
		}
		out[k] = v.String
	}
	return out, rows.Err()
}

// Set is a single atomic upsert.
func (r SettingsRepository) Set(ctx context.Context, key, value string) error {
	_, err := r.db().ExecContext(ctx, `
		INSERT INTO site_config (config_key, value) VALUES (?, ?)
		ON DUPLICATE KEY UPDATE value = VALUES(value)
	`, key, value)
	return err
}
