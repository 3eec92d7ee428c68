package credstore

import (
	"context"
	"errors"
)

// Logical credential keys. Each is independently settable and clearable.
const (
	KeyAccessToken  = "access-token"
	KeyRefreshToken = "refresh-token"
	KeyUserID       = "user-id"
	KeyTag          = "tag"
)

var (
	// ErrNotFound is returned by Retrieve when no entry exists for the key.
	ErrNotFound = errors.New("credential not found")

	// ErrCorruptEntry is returned when an entry exists but cannot be opened
	// with the device key, e.g. after keyfile loss or row tampering.
	ErrCorruptEntry = errors.New("corrupt credential entry")

	// ErrStore wraps genuine I/O failures of the underlying storage.
	ErrStore = errors.New("credential store failure")
)

// Store is the secure credential store consumed by the session manager.
//
// Save overwrites atomically: a failed overwrite never leaves two entries.
// Delete of an absent key succeeds. Exists never reports an error; any
// retrieval failure coerces to false.
type Store interface {
	Save(ctx context.Context, key string, secret []byte) error
	SaveBatch(ctx context.Context, entries map[string][]byte) error
	Retrieve(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) bool
}
