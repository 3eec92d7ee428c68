package session

import (
	"time"

	"github.com/mkorchagin/passwallet/internal/models"
)

// Status is the session lifecycle phase.
type Status int

const (
	StatusUnauthenticated Status = iota
	StatusAuthenticating
	StatusAuthenticated
)

func (s Status) String() string {
	switch s {
	case StatusUnauthenticated:
		return "unauthenticated"
	case StatusAuthenticating:
		return "authenticating"
	case StatusAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// State is a snapshot of the session authority. User is non-nil exactly
// when Status is StatusAuthenticated. TokenExpiry is zero when the access
// token is opaque or absent.
type State struct {
	Status      Status
	User        *models.UserProfile
	TokenExpiry time.Time
}
