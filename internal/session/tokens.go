// Package session manages the visitor's authentication state: bearer tokens
// in durable storage and the loaded profile. The storefront and admin console
// keep independent tokens under distinct keys so one login never overwrites
// the other.
package session

import (
	"context"

	"github.com/go-faster/errors"

	"github.com/emberhaus/storefront/pkg/kvstore"
)

// Fixed storage keys for the two bearer tokens.
const (
	UserTokenKey  = "auth_token"
	AdminTokenKey = "admin_token"
)

// TokenStore persists one bearer token under a fixed key. It implements
// backend.TokenSource: a missing token reads as empty, which the client
// treats as an anonymous request.
type TokenStore struct {
	kv  kvstore.Store
	key string
}

// NewTokenStore returns a TokenStore over kv for the given key.
func NewTokenStore(kv kvstore.Store, key string) *TokenStore {
	return &TokenStore{kv: kv, key: key}
}

// Token returns the stored token, or empty when none is stored.
func (t *TokenStore) Token(ctx context.Context) (string, error) {
	data, err := t.kv.Get(ctx, t.key)
	if err != nil {
		if errors.Is(err, kvstore.ErrNotFound) {
			return "", nil
		}
		return "", errors.Wrap(err, "read token")
	}
	return string(data), nil
}

// Save stores the token.
func (t *TokenStore) Save(ctx context.Context, token string) error {
	if err := t.kv.Set(ctx, t.key, []byte(token)); err != nil {
		return errors.Wrap(err, "store token")
	}
	return nil
}

// Clear deletes the stored token. Clearing an absent token is a no-op.
func (t *TokenStore) Clear(ctx context.Context) error {
	if err := t.kv.Delete(ctx, t.key); err != nil {
		return errors.Wrap(err, "clear token")
	}
	return nil
}
