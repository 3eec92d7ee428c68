package authbridge

import (
	"context"

	"github.com/mkorchagin/passwallet/internal/identity"
)

// DevBridge completes the server exchange through the identity API without
// platform authenticator hardware. It exists for development builds and the
// CLI: dev backends accept registration without an attestation and treat
// re-registration of a known tag as a login that reissues tokens. Not for
// production use.
type DevBridge struct {
	client    identity.Client
	biometric bool
}

// NewDevBridge builds a DevBridge. biometric controls what the fake
// biometric capability reports.
func NewDevBridge(client identity.Client, biometric bool) *DevBridge {
	return &DevBridge{client: client, biometric: biometric}
}

func (b *DevBridge) Register(ctx context.Context, tag, displayName, email string) (*AuthResult, error) {
	res, err := b.client.RegisterUser(ctx, identity.RegisterRequest{
		Tag:         tag,
		DisplayName: displayName,
		Email:       email,
	})
	if err != nil {
		return nil, &CeremonyError{Stage: "registration", Err: err}
	}
	return &AuthResult{
		AccessToken:  res.AccessToken,
		RefreshToken: res.RefreshToken,
		User:         res.User,
	}, nil
}

func (b *DevBridge) Authenticate(ctx context.Context, tag string) (*AuthResult, error) {
	res, err := b.client.RegisterUser(ctx, identity.RegisterRequest{Tag: tag})
	if err != nil {
		return nil, &CeremonyError{Stage: "authentication", Err: err}
	}
	return &AuthResult{
		AccessToken:  res.AccessToken,
		RefreshToken: res.RefreshToken,
		User:         res.User,
	}, nil
}

func (b *DevBridge) BiometricAvailable() bool {
	return b.biometric
}

func (b *DevBridge) BiometricAuthenticate(ctx context.Context) (bool, error) {
	if !b.biometric {
		return false, &CeremonyError{Stage: "biometric", Err: ErrNotAvailable}
	}
	return true, nil
}
