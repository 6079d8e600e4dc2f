package session

import (
	"context"
	"sync"

	"github.com/go-faster/errors"

	"github.com/emberhaus/storefront/internal/backend"
)

// ErrNotAdmin is returned when a login succeeds but the account lacks the
// elevated privilege the admin console requires.
var ErrNotAdmin = errors.New("admin access required")

// AdminSession is the admin console's authentication state. A successful
// admin login stores the token under both the admin and the storefront keys,
// so the admin is also signed in to the storefront. A failed privilege check
// revokes everything that was just stored: no elevated session may linger
// after a failed check.
type AdminSession struct {
	api   API
	admin *TokenStore
	user  *TokenStore

	mu      sync.Mutex
	profile *backend.Profile
}

// NewAdminSession creates a logged-out admin session. The api client must
// read its token from the admin TokenStore.
func NewAdminSession(api API, admin, user *TokenStore) *AdminSession {
	return &AdminSession{api: api, admin: admin, user: user}
}

// Login authenticates and verifies the elevated privilege. Non-admin
// accounts get ErrNotAdmin and both stored tokens are revoked immediately.
func (s *AdminSession) Login(ctx context.Context, creds backend.Credentials) error {
	tok, err := s.api.Login(ctx, creds)
	if err != nil {
		return errors.Wrap(err, "login")
	}
	if err := s.admin.Save(ctx, tok.AccessToken); err != nil {
		return err
	}
	if err := s.user.Save(ctx, tok.AccessToken); err != nil {
		return err
	}

	profile, err := s.api.Me(ctx)
	if err != nil {
		s.revoke(ctx)
		return errors.Wrap(err, "verify admin")
	}
	if !profile.IsAdmin {
		s.revoke(ctx)
		return ErrNotAdmin
	}

	s.setProfile(profile)
	return nil
}

// LoadProfile resumes a stored admin login. A rejected token or a token that
// no longer carries the privilege clears the admin token.
func (s *AdminSession) LoadProfile(ctx context.Context) error {
	profile, err := s.api.Me(ctx)
	if err != nil {
		_ = s.admin.Clear(ctx)
		s.setProfile(nil)
		return errors.Wrap(err, "load admin profile")
	}
	if !profile.IsAdmin {
		_ = s.admin.Clear(ctx)
		s.setProfile(nil)
		return ErrNotAdmin
	}
	s.setProfile(profile)
	return nil
}

// Logout revokes both tokens and forgets the profile.
func (s *AdminSession) Logout(ctx context.Context) error {
	s.setProfile(nil)
	s.revoke(ctx)
	return nil
}

// Current returns the loaded admin profile, or nil when logged out.
func (s *AdminSession) Current() *backend.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile
}

// IsAuthenticated reports whether an admin profile is loaded.
func (s *AdminSession) IsAuthenticated() bool {
	return s.Current() != nil
}

func (s *AdminSession) revoke(ctx context.Context) {
	_ = s.admin.Clear(ctx)
	_ = s.user.Clear(ctx)
}

func (s *AdminSession) setProfile(p *backend.Profile) {
	s.mu.Lock()
	s.profile = p
	s.mu.Unlock()
}
