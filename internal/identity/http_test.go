package identity

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkorchagin/passwallet/internal/models"
)

func staticToken(token string) TokenSource {
	return func(context.Context) string { return token }
}

func TestRegisterUser_Success(t *testing.T) {
	var gotBody RegisterRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/register", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		json.NewEncoder(w).Encode(RegisterResult{
			AccessToken:  "access-1",
			RefreshToken: "refresh-1",
			User: models.UserProfile{
				ID:        "user-1",
				Tag:       "alice_01",
				UpdatedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
			},
		})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, time.Second)
	res, err := c.RegisterUser(context.Background(), RegisterRequest{Tag: "alice_01", DisplayName: "Alice"})
	require.NoError(t, err)

	assert.Equal(t, "alice_01", gotBody.Tag)
	assert.Equal(t, "Alice", gotBody.DisplayName)
	assert.Equal(t, "access-1", res.AccessToken)
	assert.Equal(t, "user-1", res.User.ID)
}

func TestCurrentUser_SendsBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/users/me", r.URL.Path)
		require.Equal(t, "Bearer token-1", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(models.UserProfile{ID: "user-1", Tag: "alice_01"})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, time.Second, WithTokenSource(staticToken("token-1")))
	p, err := c.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "alice_01", p.Tag)
}

func TestUpdateUser_SendsOnlyProvidedFields(t *testing.T) {
	var raw map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		json.NewEncoder(w).Encode(models.UserProfile{ID: "user-1", Tag: "alice_01", DisplayName: "Alice L."})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, time.Second, WithTokenSource(staticToken("token-1")))
	name := "Alice L."
	_, err := c.UpdateUser(context.Background(), models.ProfileUpdate{DisplayName: &name})
	require.NoError(t, err)

	assert.Equal(t, map[string]any{"display_name": "Alice L."}, raw, "nil fields must be omitted")
}

func TestDo_APIErrorMessagePassedThrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]string{"message": "tag already registered"})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, time.Second)
	_, err := c.CurrentUser(context.Background())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "tag already registered", apiErr.Message)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.Code)
}

func TestDo_UndecodableErrorBodyFallsBackToStatusCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, time.Second)
	_, err := c.CurrentUser(context.Background())

	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadGateway, httpErr.Code)
}

func TestDo_MalformedSuccessBodyIsDecodingError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("{not json"))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, time.Second)
	_, err := c.CurrentUser(context.Background())
	assert.ErrorIs(t, err, ErrDecoding)
}

func TestTransport_ConnectionRefused(t *testing.T) {
	// a server that is already closed refuses connections
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := NewHTTPClient(srv.URL, time.Second)
	_, err := c.CurrentUser(context.Background())
	assert.ErrorIs(t, err, ErrNoConnection)
}

func TestTransport_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, 50*time.Millisecond)
	_, err := c.CurrentUser(context.Background())
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestCheckTag_StatusConventions(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		available bool
	}{
		{"ok means available", http.StatusOK, true},
		{"not found means available", http.StatusNotFound, true},
		{"conflict means taken", http.StatusConflict, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/auth/check-tag/alice_01", r.URL.Path)
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			c := NewHTTPClient(srv.URL, time.Second)
			available, err := c.CheckTag(context.Background(), "alice_01")
			require.NoError(t, err)
			assert.Equal(t, tt.available, available)
		})
	}
}

func TestCheckTag_ServerErrorSurfaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, time.Second)
	_, err := c.CheckTag(context.Background(), "alice_01")

	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusInternalServerError, httpErr.Code)
}

func TestCheckEmail_PathEscaped(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, time.Second)
	available, err := c.CheckEmail(context.Background(), "a+b@example.com")
	require.NoError(t, err)
	assert.True(t, available)
	assert.Equal(t, "/auth/check-email/a+b@example.com", gotPath)
}
