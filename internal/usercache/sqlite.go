package usercache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mkorchagin/passwallet/internal/dbx"
	"github.com/mkorchagin/passwallet/internal/models"
)

// SQLiteCache implements Cache over the profiles table of the client
// database.
type SQLiteCache struct {
	db dbx.DBTX
}

func NewSQLiteCache(db dbx.DBTX) *SQLiteCache {
	return &SQLiteCache{db: db}
}

func (c *SQLiteCache) Get(ctx context.Context, id string) (*models.UserProfile, error) {
	var p models.UserProfile
	var verified int
	var updatedAt string

	err := c.db.QueryRowContext(ctx, `
		SELECT id, tag, display_name, email, default_currency, preferred_network, verified, updated_at
		FROM profiles WHERE id = ?
	`, id).Scan(&p.ID, &p.Tag, &p.DisplayName, &p.Email, &p.DefaultCurrency, &p.PreferredNetwork, &verified, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read profile %q: %w", id, err)
	}

	p.Verified = verified != 0
	if p.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return nil, fmt.Errorf("failed to parse profile %q timestamp: %w", id, err)
	}
	return &p, nil
}

func (c *SQLiteCache) Upsert(ctx context.Context, p *models.UserProfile) error {
	verified := 0
	if p.Verified {
		verified = 1
	}

	_, err := c.db.ExecContext(ctx, `
		INSERT INTO profiles (id, tag, display_name, email, default_currency, preferred_network, verified, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			tag = excluded.tag,
			display_name = excluded.display_name,
			email = excluded.email,
			default_currency = excluded.default_currency,
			preferred_network = excluded.preferred_network,
			verified = excluded.verified,
			updated_at = excluded.updated_at
	`, p.ID, p.Tag, p.DisplayName, p.Email, p.DefaultCurrency, p.PreferredNetwork, verified,
		p.UpdatedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to upsert profile %q: %w", p.ID, err)
	}
	return nil
}
