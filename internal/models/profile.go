// Package models contains data types shared between the identity client,
// the local cache, and the session manager.
package models

import "time"

// UserProfile is the denormalized account record as confirmed by the
// identity backend. Profiles are never constructed client-side without a
// corresponding server record; the server-assigned ID is stable.
type UserProfile struct {
	ID               string    `json:"id"`
	Tag              string    `json:"tag"`
	DisplayName      string    `json:"display_name,omitempty"`
	Email            string    `json:"email,omitempty"`
	DefaultCurrency  string    `json:"default_currency,omitempty"`
	PreferredNetwork string    `json:"preferred_network,omitempty"`
	Verified         bool      `json:"verified"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// ProfileUpdate is a partial update sent to PUT /users/me. Nil fields are
// omitted from the request body and left untouched by the server.
type ProfileUpdate struct {
	DisplayName      *string `json:"display_name,omitempty"`
	Email            *string `json:"email,omitempty"`
	DefaultCurrency  *string `json:"default_currency,omitempty"`
	PreferredNetwork *string `json:"preferred_network,omitempty"`
}

// Empty reports whether the update carries no fields.
func (u ProfileUpdate) Empty() bool {
	return u.DisplayName == nil && u.Email == nil && u.DefaultCurrency == nil && u.PreferredNetwork == nil
}
