// Package usercache persists a denormalized user profile keyed by user id,
// so the application can render account data without a network round-trip.
package usercache

import (
	"context"
	"errors"

	"github.com/mkorchagin/passwallet/internal/models"
)

// ErrNotFound is returned by Get when no profile is cached for the id.
var ErrNotFound = errors.New("profile not cached")

// Cache is the local profile store. Upsert updates the mutable fields and
// timestamp of an existing record in place, or inserts a new one.
type Cache interface {
	Get(ctx context.Context, id string) (*models.UserProfile, error)
	Upsert(ctx context.Context, p *models.UserProfile) error
}
