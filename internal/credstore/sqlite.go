package credstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mkorchagin/passwallet/internal/dbx"
)

// SQLiteStore is a Store backed by the credentials table of the local
// client database. Secrets are sealed before they touch the database and
// opened on the way out; plaintext is never written to disk.
type SQLiteStore struct {
	db     *sql.DB
	sealer *Sealer
}

func NewSQLiteStore(db *sql.DB, sealer *Sealer) *SQLiteStore {
	return &SQLiteStore{db: db, sealer: sealer}
}

// Save seals the secret and upserts it under key. The upsert is a single
// statement, so a failed overwrite leaves the prior entry intact.
func (s *SQLiteStore) Save(ctx context.Context, key string, secret []byte) error {
	return s.save(ctx, s.db, key, secret)
}

func (s *SQLiteStore) save(ctx context.Context, db dbx.DBTX, key string, secret []byte) error {
	nonce, sealed, err := s.sealer.Seal(secret)
	if err != nil {
		return fmt.Errorf("%w: sealing %q: %v", ErrStore, key, err)
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO credentials (key, nonce, sealed) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET nonce = excluded.nonce, sealed = excluded.sealed
	`, key, nonce, sealed)
	if err != nil {
		return fmt.Errorf("%w: saving %q: %v", ErrStore, key, err)
	}
	return nil
}

// SaveBatch writes all entries in a single transaction: either every key is
// stored or none is.
func (s *SQLiteStore) SaveBatch(ctx context.Context, entries map[string][]byte) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		for key, secret := range entries {
			if err := s.save(ctx, tx, key, secret); err != nil {
				return err
			}
		}
		return nil
	})
}

// Retrieve returns the secret stored under key. A missing row reports
// ErrNotFound; a row that cannot be opened with the device key reports
// ErrCorruptEntry.
func (s *SQLiteStore) Retrieve(ctx context.Context, key string) ([]byte, error) {
	var nonce, sealed []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT nonce, sealed FROM credentials WHERE key = ?`, key,
	).Scan(&nonce, &sealed)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: retrieving %q: %v", ErrStore, key, err)
	}

	secret, err := s.sealer.Open(nonce, sealed)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrCorruptEntry, key)
	}
	return secret, nil
}

// Delete removes the entry if present. Deleting a missing key succeeds.
func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM credentials WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("%w: deleting %q: %v", ErrStore, key, err)
	}
	return nil
}

// Exists reports whether a readable entry is stored under key. Failures of
// any kind coerce to false.
func (s *SQLiteStore) Exists(ctx context.Context, key string) bool {
	secret, err := s.Retrieve(ctx, key)
	return err == nil && len(secret) > 0
}
