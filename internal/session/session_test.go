package session

import (
	"context"
	"testing"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emberhaus/storefront/internal/backend"
	"github.com/emberhaus/storefront/pkg/kvstore"
)

// --- Mock implementations ---

type mockAPI struct {
	token       string
	loginErr    error
	registerErr error

	profile *backend.Profile
	meErr   error

	updated   *backend.Profile
	updateErr error
}

func (m *mockAPI) Register(_ context.Context, _ backend.Registration) (*backend.Token, error) {
	if m.registerErr != nil {
		return nil, m.registerErr
	}
	return &backend.Token{AccessToken: m.token}, nil
}

func (m *mockAPI) Login(_ context.Context, _ backend.Credentials) (*backend.Token, error) {
	if m.loginErr != nil {
		return nil, m.loginErr
	}
	return &backend.Token{AccessToken: m.token}, nil
}

func (m *mockAPI) Me(_ context.Context) (*backend.Profile, error) {
	if m.meErr != nil {
		return nil, m.meErr
	}
	return m.profile, nil
}

func (m *mockAPI) UpdateMe(_ context.Context, _ backend.ProfileUpdate) (*backend.Profile, error) {
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	return m.updated, nil
}

// --- Helpers ---

func userProfile(name string, admin bool) *backend.Profile {
	return &backend.Profile{
		ID:      "u1",
		Name:    name,
		Email:   "user@example.com",
		IsAdmin: admin,
	}
}

func storedToken(t *testing.T, kv kvstore.Store, key string) (string, bool) {
	t.Helper()
	data, err := kv.Get(context.Background(), key)
	if errors.Is(err, kvstore.ErrNotFound) {
		return "", false
	}
	require.NoError(t, err)
	return string(data), true
}

// --- Session ---

func TestLogin_StoresTokenAndLoadsProfile(t *testing.T) {
	kv := kvstore.NewMemory()
	api := &mockAPI{token: "tok-123", profile: userProfile("Asha", false)}
	s := NewSession(api, NewTokenStore(kv, UserTokenKey))

	require.NoError(t, s.Login(context.Background(), backend.Credentials{Email: "user@example.com", Password: "pw"}))

	tok, ok := storedToken(t, kv, UserTokenKey)
	require.True(t, ok)
	assert.Equal(t, "tok-123", tok)
	assert.True(t, s.IsAuthenticated())
	assert.Equal(t, "Asha", s.Current().Name)
}

func TestLogin_BackendRejection(t *testing.T) {
	kv := kvstore.NewMemory()
	api := &mockAPI{loginErr: &backend.APIError{StatusCode: 401, Detail: "Invalid credentials"}}
	s := NewSession(api, NewTokenStore(kv, UserTokenKey))

	err := s.Login(context.Background(), backend.Credentials{Email: "user@example.com", Password: "bad"})
	require.Error(t, err)

	_, ok := storedToken(t, kv, UserTokenKey)
	assert.False(t, ok, "no token may be stored on a failed login")
	assert.False(t, s.IsAuthenticated())
}

func TestRegister_StoresTokenAndLoadsProfile(t *testing.T) {
	kv := kvstore.NewMemory()
	api := &mockAPI{token: "tok-new", profile: userProfile("Asha", false)}
	s := NewSession(api, NewTokenStore(kv, UserTokenKey))

	require.NoError(t, s.Register(context.Background(), backend.Registration{Name: "Asha", Email: "user@example.com", Password: "pw"}))

	tok, ok := storedToken(t, kv, UserTokenKey)
	require.True(t, ok)
	assert.Equal(t, "tok-new", tok)
	assert.True(t, s.IsAuthenticated())
}

func TestLoadProfile_FailureClearsToken(t *testing.T) {
	kv := kvstore.NewMemory()
	tokens := NewTokenStore(kv, UserTokenKey)
	require.NoError(t, tokens.Save(context.Background(), "stale-token"))

	api := &mockAPI{meErr: &backend.APIError{StatusCode: 401}}
	s := NewSession(api, tokens)

	err := s.LoadProfile(context.Background())
	require.Error(t, err)

	_, ok := storedToken(t, kv, UserTokenKey)
	assert.False(t, ok, "a rejected token must be deleted")
	assert.False(t, s.IsAuthenticated())
}

func TestLogout_ClearsTokenAndProfile(t *testing.T) {
	kv := kvstore.NewMemory()
	api := &mockAPI{token: "tok-123", profile: userProfile("Asha", false)}
	s := NewSession(api, NewTokenStore(kv, UserTokenKey))
	require.NoError(t, s.Login(context.Background(), backend.Credentials{}))

	require.NoError(t, s.Logout(context.Background()))

	_, ok := storedToken(t, kv, UserTokenKey)
	assert.False(t, ok)
	assert.False(t, s.IsAuthenticated())
}

func TestUpdateProfile_RefreshesCurrent(t *testing.T) {
	kv := kvstore.NewMemory()
	api := &mockAPI{
		token:   "tok-123",
		profile: userProfile("Asha", false),
		updated: userProfile("Asha R", false),
	}
	s := NewSession(api, NewTokenStore(kv, UserTokenKey))
	require.NoError(t, s.Login(context.Background(), backend.Credentials{}))

	got, err := s.UpdateProfile(context.Background(), backend.ProfileUpdate{Name: "Asha R"})
	require.NoError(t, err)
	assert.Equal(t, "Asha R", got.Name)
	assert.Equal(t, "Asha R", s.Current().Name)
}

// --- AdminSession ---

func newAdminFixture(api *mockAPI) (*AdminSession, kvstore.Store) {
	kv := kvstore.NewMemory()
	admin := NewTokenStore(kv, AdminTokenKey)
	user := NewTokenStore(kv, UserTokenKey)
	return NewAdminSession(api, admin, user), kv
}

func TestAdminLogin_StoresBothTokens(t *testing.T) {
	api := &mockAPI{token: "tok-admin", profile: userProfile("Root", true)}
	s, kv := newAdminFixture(api)

	require.NoError(t, s.Login(context.Background(), backend.Credentials{}))

	adminTok, ok := storedToken(t, kv, AdminTokenKey)
	require.True(t, ok)
	assert.Equal(t, "tok-admin", adminTok)
	userTok, ok := storedToken(t, kv, UserTokenKey)
	require.True(t, ok)
	assert.Equal(t, "tok-admin", userTok)
	assert.True(t, s.IsAuthenticated())
}

func TestAdminLogin_NonAdminRevokesBothTokens(t *testing.T) {
	api := &mockAPI{token: "tok-user", profile: userProfile("Asha", false)}
	s, kv := newAdminFixture(api)

	err := s.Login(context.Background(), backend.Credentials{})
	require.ErrorIs(t, err, ErrNotAdmin)

	_, ok := storedToken(t, kv, AdminTokenKey)
	assert.False(t, ok, "no elevated session may linger after a failed check")
	_, ok = storedToken(t, kv, UserTokenKey)
	assert.False(t, ok)
	assert.False(t, s.IsAuthenticated())
}

func TestAdminLogin_ProfileFetchFailureRevokesBothTokens(t *testing.T) {
	api := &mockAPI{token: "tok-x", meErr: &backend.APIError{StatusCode: 500}}
	s, kv := newAdminFixture(api)

	err := s.Login(context.Background(), backend.Credentials{})
	require.Error(t, err)

	_, ok := storedToken(t, kv, AdminTokenKey)
	assert.False(t, ok)
	_, ok = storedToken(t, kv, UserTokenKey)
	assert.False(t, ok)
}

func TestAdminLoadProfile_RejectedTokenClearsAdminKeyOnly(t *testing.T) {
	api := &mockAPI{meErr: &backend.APIError{StatusCode: 401}}
	s, kv := newAdminFixture(api)
	require.NoError(t, NewTokenStore(kv, AdminTokenKey).Save(context.Background(), "stale"))
	require.NoError(t, NewTokenStore(kv, UserTokenKey).Save(context.Background(), "user-tok"))

	err := s.LoadProfile(context.Background())
	require.Error(t, err)

	_, ok := storedToken(t, kv, AdminTokenKey)
	assert.False(t, ok)
	userTok, ok := storedToken(t, kv, UserTokenKey)
	require.True(t, ok, "resuming an admin session must not touch the storefront login")
	assert.Equal(t, "user-tok", userTok)
}

func TestAdminLoadProfile_PrivilegeLost(t *testing.T) {
	api := &mockAPI{profile: userProfile("Asha", false)}
	s, kv := newAdminFixture(api)
	require.NoError(t, NewTokenStore(kv, AdminTokenKey).Save(context.Background(), "demoted"))

	err := s.LoadProfile(context.Background())
	require.ErrorIs(t, err, ErrNotAdmin)

	_, ok := storedToken(t, kv, AdminTokenKey)
	assert.False(t, ok)
}
