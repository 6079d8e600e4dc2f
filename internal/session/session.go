package session

import (
	"context"
	"sync"

	"github.com/go-faster/errors"

	"github.com/emberhaus/storefront/internal/backend"
)

// API is the slice of the backend client the sessions use. The client passed
// in must read its bearer token from the same TokenStore the session writes,
// so a stored token takes effect on the next request.
type API interface {
	Register(ctx context.Context, reg backend.Registration) (*backend.Token, error)
	Login(ctx context.Context, creds backend.Credentials) (*backend.Token, error)
	Me(ctx context.Context) (*backend.Profile, error)
	UpdateMe(ctx context.Context, upd backend.ProfileUpdate) (*backend.Profile, error)
}

// Session is the storefront visitor's authentication state.
type Session struct {
	api    API
	tokens *TokenStore

	mu      sync.Mutex
	profile *backend.Profile
}

// NewSession creates a logged-out session. Call LoadProfile to resume a
// previously stored login.
func NewSession(api API, tokens *TokenStore) *Session {
	return &Session{api: api, tokens: tokens}
}

// Login exchanges credentials for a token, stores it, and loads the profile.
func (s *Session) Login(ctx context.Context, creds backend.Credentials) error {
	tok, err := s.api.Login(ctx, creds)
	if err != nil {
		return errors.Wrap(err, "login")
	}
	if err := s.tokens.Save(ctx, tok.AccessToken); err != nil {
		return err
	}
	return s.LoadProfile(ctx)
}

// Register creates an account, stores its token, and loads the profile.
func (s *Session) Register(ctx context.Context, reg backend.Registration) error {
	tok, err := s.api.Register(ctx, reg)
	if err != nil {
		return errors.Wrap(err, "register")
	}
	if err := s.tokens.Save(ctx, tok.AccessToken); err != nil {
		return err
	}
	return s.LoadProfile(ctx)
}

// LoadProfile fetches the profile for the stored token. On failure the stored
// token is deleted, since a rejected token must not linger. Only the auth
// state is touched; the cart is not this package's concern.
func (s *Session) LoadProfile(ctx context.Context) error {
	profile, err := s.api.Me(ctx)
	if err != nil {
		_ = s.tokens.Clear(ctx)
		s.setProfile(nil)
		return errors.Wrap(err, "load profile")
	}
	s.setProfile(profile)
	return nil
}

// UpdateProfile edits the profile and keeps the loaded copy in sync.
func (s *Session) UpdateProfile(ctx context.Context, upd backend.ProfileUpdate) (*backend.Profile, error) {
	profile, err := s.api.UpdateMe(ctx, upd)
	if err != nil {
		return nil, errors.Wrap(err, "update profile")
	}
	s.setProfile(profile)
	return profile, nil
}

// Logout deletes the stored token and forgets the profile.
func (s *Session) Logout(ctx context.Context) error {
	s.setProfile(nil)
	return s.tokens.Clear(ctx)
}

// Current returns the loaded profile, or nil when logged out.
func (s *Session) Current() *backend.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile
}

// IsAuthenticated reports whether a profile is loaded.
func (s *Session) IsAuthenticated() bool {
	return s.Current() != nil
}

func (s *Session) setProfile(p *backend.Profile) {
	s.mu.Lock()
	s.profile = p
	s.mu.Unlock()
}
