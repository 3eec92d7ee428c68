// Package identity defines the client-visible contract of the remote
// identity backend and its HTTP implementation. Every operation performs
// exactly one attempt; retry policy belongs to the caller.
package identity

import (
	"context"

	"github.com/mkorchagin/passwallet/internal/models"
)

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Tag         string `json:"tag"`
	DisplayName string `json:"display_name,omitempty"`
	Email       string `json:"email,omitempty"`
}

// RegisterResult is the payload returned on successful registration.
type RegisterResult struct {
	AccessToken  string             `json:"access_token"`
	RefreshToken string             `json:"refresh_token"`
	User         models.UserProfile `json:"user"`
}

// Client is the identity backend as seen by this application.
//
// CheckTag and CheckEmail report usability of a handle: true means
// available. A definitive uniqueness decision is only made server-side at
// registration time.
type Client interface {
	RegisterUser(ctx context.Context, req RegisterRequest) (*RegisterResult, error)
	CurrentUser(ctx context.Context) (*models.UserProfile, error)
	UpdateUser(ctx context.Context, upd models.ProfileUpdate) (*models.UserProfile, error)
	CheckTag(ctx context.Context, tag string) (bool, error)
	CheckEmail(ctx context.Context, email string) (bool, error)
}
