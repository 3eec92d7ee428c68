package authbridge

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkorchagin/passwallet/internal/identity"
	"github.com/mkorchagin/passwallet/internal/models"
)

type fakeClient struct {
	RegisterRet *identity.RegisterResult
	RegisterErr error
	LastReq     identity.RegisterRequest
}

func (f *fakeClient) RegisterUser(ctx context.Context, req identity.RegisterRequest) (*identity.RegisterResult, error) {
	f.LastReq = req
	if f.RegisterErr != nil {
		return nil, f.RegisterErr
	}
	return f.RegisterRet, nil
}

func (f *fakeClient) CurrentUser(ctx context.Context) (*models.UserProfile, error) {
	panic("not used")
}

func (f *fakeClient) UpdateUser(ctx context.Context, upd models.ProfileUpdate) (*models.UserProfile, error) {
	panic("not used")
}

func (f *fakeClient) CheckTag(ctx context.Context, tag string) (bool, error)     { return true, nil }
func (f *fakeClient) CheckEmail(ctx context.Context, email string) (bool, error) { return true, nil }

func TestDevBridge_RegisterCarriesAllFields(t *testing.T) {
	client := &fakeClient{RegisterRet: &identity.RegisterResult{
		AccessToken:  "access-1",
		RefreshToken: "refresh-1",
		User:         models.UserProfile{ID: "user-1", Tag: "alice_01"},
	}}
	b := NewDevBridge(client, true)

	res, err := b.Register(context.Background(), "alice_01", "Alice", "a@example.com")
	require.NoError(t, err)

	assert.Equal(t, "alice_01", client.LastReq.Tag)
	assert.Equal(t, "Alice", client.LastReq.DisplayName)
	assert.Equal(t, "a@example.com", client.LastReq.Email)
	assert.Equal(t, "access-1", res.AccessToken)
	assert.Equal(t, "user-1", res.User.ID)
}

func TestDevBridge_FailuresWrapAsCeremonyErrors(t *testing.T) {
	client := &fakeClient{RegisterErr: identity.ErrNoConnection}
	b := NewDevBridge(client, true)

	_, err := b.Register(context.Background(), "alice_01", "Alice", "")
	var cerr *CeremonyError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "registration", cerr.Stage)
	assert.True(t, errors.Is(err, identity.ErrNoConnection))

	_, err = b.Authenticate(context.Background(), "alice_01")
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "authentication", cerr.Stage)
}

func TestDevBridge_Biometrics(t *testing.T) {
	on := NewDevBridge(&fakeClient{}, true)
	assert.True(t, on.BiometricAvailable())
	ok, err := on.BiometricAuthenticate(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)

	off := NewDevBridge(&fakeClient{}, false)
	assert.False(t, off.BiometricAvailable())
	_, err = off.BiometricAuthenticate(context.Background())
	var cerr *CeremonyError
	require.ErrorAs(t, err, &cerr)
	assert.True(t, errors.Is(err, ErrNotAvailable))
}
