package usercache

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkorchagin/passwallet/internal/models"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:"+t.Name()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE profiles (
  id                TEXT PRIMARY KEY,
  tag               TEXT NOT NULL,
  display_name      TEXT NOT NULL DEFAULT '',
  email             TEXT NOT NULL DEFAULT '',
  default_currency  TEXT NOT NULL DEFAULT '',
  preferred_network TEXT NOT NULL DEFAULT '',
  verified          INTEGER NOT NULL DEFAULT 0,
  updated_at        TEXT NOT NULL
);
`)
	require.NoError(t, err)
	return db
}

func alice() *models.UserProfile {
	return &models.UserProfile{
		ID:               "user-1",
		Tag:              "alice_01",
		DisplayName:      "Alice",
		Email:            "alice@example.com",
		DefaultCurrency:  "USD",
		PreferredNetwork: "mainnet",
		Verified:         false,
		UpdatedAt:        time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestCache_UpsertInsertsAndReads(t *testing.T) {
	c := NewSQLiteCache(setupDB(t))
	ctx := context.Background()

	require.NoError(t, c.Upsert(ctx, alice()))

	got, err := c.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, alice(), got)
}

func TestCache_UpsertUpdatesInPlace(t *testing.T) {
	c := NewSQLiteCache(setupDB(t))
	ctx := context.Background()

	require.NoError(t, c.Upsert(ctx, alice()))

	updated := alice()
	updated.DisplayName = "Alice L."
	updated.Verified = true
	updated.UpdatedAt = time.Date(2026, 8, 2, 9, 0, 0, 0, time.UTC)
	require.NoError(t, c.Upsert(ctx, updated))

	got, err := c.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "Alice L.", got.DisplayName)
	assert.True(t, got.Verified)
	assert.Equal(t, updated.UpdatedAt, got.UpdatedAt)
}

func TestCache_GetMissing(t *testing.T) {
	c := NewSQLiteCache(setupDB(t))
	_, err := c.Get(context.Background(), "unknown")
	assert.ErrorIs(t, err, ErrNotFound)
}
