// Package session implements the single authoritative session state for
// the application: who is logged in, and every transition in or out of
// that state. All mutation is funneled through the Manager; screens hold
// read-only subscriptions.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/mkorchagin/passwallet/internal/authbridge"
	"github.com/mkorchagin/passwallet/internal/credstore"
	"github.com/mkorchagin/passwallet/internal/identity"
	"github.com/mkorchagin/passwallet/internal/logging"
	"github.com/mkorchagin/passwallet/internal/models"
	"github.com/mkorchagin/passwallet/internal/tokenx"
	"github.com/mkorchagin/passwallet/internal/usercache"
)

// Defaults are the fallback values applied when the server omits optional
// profile fields.
type Defaults struct {
	Currency string
	Network  string
}

// Manager owns the session state machine and sequences every collaborator
// call behind a single operation lock: concurrent callers observe either
// the pre- or post-state of an operation, never a torn state.
type Manager struct {
	store    credstore.Store
	client   identity.Client
	bridge   authbridge.Bridge
	cache    usercache.Cache
	defaults Defaults
	log      logging.Logger

	opMu sync.Mutex // serializes operations end to end

	stateMu sync.RWMutex
	state   State

	subMu   sync.Mutex
	subs    map[int]chan State
	nextSub int
}

// NewManager wires a Manager from its collaborators. The initial state is
// Unauthenticated; call CheckStatus at startup to reconcile with stored
// credentials.
func NewManager(store credstore.Store, client identity.Client, bridge authbridge.Bridge, cache usercache.Cache, defaults Defaults, log logging.Logger) *Manager {
	return &Manager{
		store:    store,
		client:   client,
		bridge:   bridge,
		cache:    cache,
		defaults: defaults,
		log:      log.With("component", "session"),
		state:    State{Status: StatusUnauthenticated},
		subs:     make(map[int]chan State),
	}
}

// Snapshot returns the current session state. It does not block behind
// in-flight operations beyond the instant of the read.
func (m *Manager) Snapshot() State {
	m.stateMu.RLock()
	defer m.stateMu.RUnlock()
	return m.state
}

// Subscribe registers an observer. The returned channel receives every
// state transition until the cancel function is called; slow observers may
// miss intermediate transitions but always receive the latest state
// eventually (the channel is buffered and sends never block the authority).
func (m *Manager) Subscribe() (<-chan State, func()) {
	m.subMu.Lock()
	defer m.subMu.Unlock()

	id := m.nextSub
	m.nextSub++
	ch := make(chan State, 8)
	m.subs[id] = ch

	cancel := func() {
		m.subMu.Lock()
		defer m.subMu.Unlock()
		if _, ok := m.subs[id]; ok {
			delete(m.subs, id)
			close(ch)
		}
	}
	return ch, cancel
}

func (m *Manager) setState(ctx context.Context, s State) {
	m.stateMu.Lock()
	m.state = s
	m.stateMu.Unlock()

	m.log.Debug(ctx, "session state changed", "status", s.Status.String())

	m.subMu.Lock()
	defer m.subMu.Unlock()
	for _, ch := range m.subs {
		select {
		case ch <- s:
		default:
			// observer is behind; drop the oldest and retry once
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- s:
			default:
			}
		}
	}
}

// CheckStatus silently reconciles the session with stored credentials at
// startup. Absent or empty access token: Unauthenticated with no network
// call. Otherwise the profile is re-fetched; any failure is treated as an
// untrusted or expired session, stored tokens are cleared, and the state
// resolves to Unauthenticated. Nothing is surfaced to the caller.
func (m *Manager) CheckStatus(ctx context.Context) {
	m.opMu.Lock()
	defer m.opMu.Unlock()

	token, err := m.store.Retrieve(ctx, credstore.KeyAccessToken)
	if err != nil || len(token) == 0 {
		m.setState(ctx, State{Status: StatusUnauthenticated})
		return
	}

	m.setState(ctx, State{Status: StatusAuthenticating})

	profile, err := m.client.CurrentUser(ctx)
	if err != nil {
		m.log.Warn(ctx, "session reconciliation failed, treating as logged out", "error", err)
		m.clearTokens(ctx)
		m.setState(ctx, State{Status: StatusUnauthenticated})
		return
	}

	merged := m.persistProfile(ctx, profile)
	m.setState(ctx, authenticatedState(merged, string(token)))
}

// Register runs the passkey registration ceremony for a new account and,
// on success, persists credentials and the confirmed profile before
// publishing Authenticated. A ceremony failure propagates unchanged and
// leaves no partial store state.
func (m *Manager) Register(ctx context.Context, tag, displayName, email string) (*models.UserProfile, error) {
	tag = NormalizeTag(tag)
	if !ValidateTag(tag) {
		return nil, ErrInvalidTag
	}

	m.opMu.Lock()
	defer m.opMu.Unlock()

	return m.completeCeremony(ctx, func(ctx context.Context) (*authbridge.AuthResult, error) {
		return m.bridge.Register(ctx, tag, displayName, email)
	})
}

// Login runs the passkey authentication ceremony for an existing account,
// with the same validation and persistence discipline as Register.
func (m *Manager) Login(ctx context.Context, tag string) (*models.UserProfile, error) {
	tag = NormalizeTag(tag)
	if !ValidateTag(tag) {
		return nil, ErrInvalidTag
	}

	m.opMu.Lock()
	defer m.opMu.Unlock()

	return m.completeCeremony(ctx, func(ctx context.Context) (*authbridge.AuthResult, error) {
		return m.bridge.Authenticate(ctx, tag)
	})
}

func (m *Manager) completeCeremony(ctx context.Context, ceremony func(context.Context) (*authbridge.AuthResult, error)) (*models.UserProfile, error) {
	prev := m.Snapshot()
	m.setState(ctx, State{Status: StatusAuthenticating})

	res, err := ceremony(ctx)
	if err != nil {
		m.setState(ctx, prev)
		return nil, err
	}

	if err := m.persistAuth(ctx, res); err != nil {
		m.setState(ctx, prev)
		return nil, err
	}

	merged := m.persistProfile(ctx, &res.User)
	m.setState(ctx, authenticatedState(merged, res.AccessToken))
	return merged, nil
}

// QuickLogin re-asserts an existing passkey session behind the biometric
// gate. It never enrolls: a device without stored credentials fails with
// ErrNoStoredCredentials before any transition. The profile re-fetch,
// unlike CheckStatus, propagates failures to the caller; the biometric
// gate already proved local possession, so a transient network error is
// not grounds for logging out.
func (m *Manager) QuickLogin(ctx context.Context) (*models.UserProfile, error) {
	m.opMu.Lock()
	defer m.opMu.Unlock()

	if !m.bridge.BiometricAvailable() {
		return nil, ErrBiometricsUnavailable
	}
	if !m.store.Exists(ctx, credstore.KeyUserID) || !m.store.Exists(ctx, credstore.KeyTag) {
		return nil, ErrNoStoredCredentials
	}

	ok, err := m.bridge.BiometricAuthenticate(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrBiometricFailed
	}

	prev := m.Snapshot()
	m.setState(ctx, State{Status: StatusAuthenticating})

	profile, err := m.client.CurrentUser(ctx)
	if err != nil {
		m.setState(ctx, prev)
		return nil, err
	}

	token, _ := m.store.Retrieve(ctx, credstore.KeyAccessToken)
	merged := m.persistProfile(ctx, profile)
	m.setState(ctx, authenticatedState(merged, string(token)))
	return merged, nil
}

// UpdateProfile sends the provided (non-nil) fields to the backend. The
// server response is the profile of record and overwrites the cached
// entry; there is no client-side merge of conflicting writes.
func (m *Manager) UpdateProfile(ctx context.Context, upd models.ProfileUpdate) (*models.UserProfile, error) {
	m.opMu.Lock()
	defer m.opMu.Unlock()

	st := m.Snapshot()
	if st.Status != StatusAuthenticated {
		return nil, ErrNotAuthenticated
	}

	profile, err := m.client.UpdateUser(ctx, upd)
	if err != nil {
		return nil, err
	}

	merged := m.persistProfile(ctx, profile)
	m.setState(ctx, State{Status: StatusAuthenticated, User: merged, TokenExpiry: st.TokenExpiry})
	return merged, nil
}

// RefreshUser re-fetches the current profile and overwrites the local
// cache. Requires an authenticated session; failures propagate.
func (m *Manager) RefreshUser(ctx context.Context) (*models.UserProfile, error) {
	m.opMu.Lock()
	defer m.opMu.Unlock()

	st := m.Snapshot()
	if st.Status != StatusAuthenticated {
		return nil, ErrNotAuthenticated
	}

	profile, err := m.client.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}

	merged := m.persistProfile(ctx, profile)
	m.setState(ctx, State{Status: StatusAuthenticated, User: merged, TokenExpiry: st.TokenExpiry})
	return merged, nil
}

// Logout deletes the token entries and publishes Unauthenticated. It never
// fails outward: from the UI's point of view logout always succeeds, so
// deletion errors are logged and swallowed. The stored user id and tag
// survive, keeping QuickLogin possible.
func (m *Manager) Logout(ctx context.Context) {
	m.opMu.Lock()
	defer m.opMu.Unlock()

	m.clearTokens(ctx)
	m.setState(ctx, State{Status: StatusUnauthenticated})
}

func (m *Manager) clearTokens(ctx context.Context) {
	for _, key := range []string{credstore.KeyAccessToken, credstore.KeyRefreshToken} {
		if err := m.store.Delete(ctx, key); err != nil {
			m.log.Warn(ctx, "failed to delete credential entry", "key", key, "error", err)
		}
	}
}

// persistAuth writes the issued tokens and identity keys in one atomic
// batch: either all four entries land or none does.
func (m *Manager) persistAuth(ctx context.Context, res *authbridge.AuthResult) error {
	entries := map[string][]byte{
		credstore.KeyAccessToken:  []byte(res.AccessToken),
		credstore.KeyRefreshToken: []byte(res.RefreshToken),
		credstore.KeyUserID:       []byte(res.User.ID),
		credstore.KeyTag:          []byte(res.User.Tag),
	}
	if err := m.store.SaveBatch(ctx, entries); err != nil {
		return err
	}
	return nil
}

// persistProfile applies the shared persistence rule: upsert by user id,
// updating mutable fields and timestamp in place. Optional fields the
// server omitted fall back to the existing local value, then to the
// configured defaults; empty never overwrites a present local value.
// A cache write failure is logged and does not fail the session
// transition, since the profile of record is already in memory.
func (m *Manager) persistProfile(ctx context.Context, p *models.UserProfile) *models.UserProfile {
	merged := *p

	existing, err := m.cache.Get(ctx, p.ID)
	if err == nil {
		if merged.DisplayName == "" {
			merged.DisplayName = existing.DisplayName
		}
		if merged.Email == "" {
			merged.Email = existing.Email
		}
		if merged.DefaultCurrency == "" {
			merged.DefaultCurrency = existing.DefaultCurrency
		}
		if merged.PreferredNetwork == "" {
			merged.PreferredNetwork = existing.PreferredNetwork
		}
	}
	if merged.DefaultCurrency == "" {
		merged.DefaultCurrency = m.defaults.Currency
	}
	if merged.PreferredNetwork == "" {
		merged.PreferredNetwork = m.defaults.Network
	}
	if merged.UpdatedAt.IsZero() {
		merged.UpdatedAt = time.Now().UTC()
	}

	if err := m.cache.Upsert(ctx, &merged); err != nil {
		m.log.Warn(ctx, "failed to cache profile", "user_id", p.ID, "error", err)
	}
	return &merged
}

func authenticatedState(p *models.UserProfile, accessToken string) State {
	st := State{Status: StatusAuthenticated, User: p}
	if exp, ok := tokenx.Expiry(accessToken); ok {
		st.TokenExpiry = exp
	}
	return st
}
