// Package tokenx inspects access tokens without verifying them. The client
// never trusts token contents for authorization decisions; expiry is read
// only to surface it in session snapshots and logs.
package tokenx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Expiry returns the exp claim of a JWT access token. Opaque tokens and
// tokens without an exp claim return (zero, false).
func Expiry(token string) (time.Time, bool) {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
