// Package authbridge defines the contract of the platform authenticator:
// passkey registration/authentication ceremonies and the biometric prompt.
// The session core treats the bridge as opaque and only branches on
// success or failure; ceremony internals never leak past this boundary.
package authbridge

import (
	"context"
	"errors"
	"fmt"

	"github.com/mkorchagin/passwallet/internal/models"
)

var (
	// ErrNotAvailable is returned when the platform has no authenticator
	// or biometric capability.
	ErrNotAvailable = errors.New("platform authenticator not available")

	// ErrUserCancelled is returned when the user dismisses the prompt.
	ErrUserCancelled = errors.New("user cancelled the prompt")
)

// CeremonyError wraps a failed ceremony. It propagates to callers
// unchanged; the session manager performs no writes when it sees one.
type CeremonyError struct {
	Stage string // "registration", "authentication" or "biometric"
	Err   error
}

func (e *CeremonyError) Error() string {
	return fmt.Sprintf("%s ceremony failed: %v", e.Stage, e.Err)
}

func (e *CeremonyError) Unwrap() error {
	return e.Err
}

// AuthResult is a completed ceremony: issued tokens plus the
// server-confirmed profile.
type AuthResult struct {
	AccessToken  string
	RefreshToken string
	User         models.UserProfile
}

// Bridge is implemented per platform. Register and Authenticate run the
// full passkey exchange with the backend, including the email the user
// supplied at enrollment, and either return a completed AuthResult or a
// *CeremonyError.
type Bridge interface {
	Register(ctx context.Context, tag, displayName, email string) (*AuthResult, error)
	Authenticate(ctx context.Context, tag string) (*AuthResult, error)

	// BiometricAvailable reports whether the device can prompt at all.
	BiometricAvailable() bool

	// BiometricAuthenticate shows the prompt. false with a nil error means
	// the prompt completed negatively.
	BiometricAuthenticate(ctx context.Context) (bool, error)
}
