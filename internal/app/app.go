// Package app wires the storefront client together: durable stores, backend
// clients, cart, catalog resolver, sessions, and the checkout submitter.
package app

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/emberhaus/storefront/internal/backend"
	"github.com/emberhaus/storefront/internal/catalog"
	"github.com/emberhaus/storefront/internal/domain/cart"
	"github.com/emberhaus/storefront/internal/domain/checkout"
	"github.com/emberhaus/storefront/internal/domain/pricing"
	"github.com/emberhaus/storefront/internal/session"
	"github.com/emberhaus/storefront/pkg/kvstore"
)

// App is the assembled storefront client. It is the single wiring point:
// consumers receive references to the stores and adapters, never reach into
// shared globals.
type App struct {
	Cart     *cart.Store
	Catalog  *catalog.Resolver
	Session  *session.Session
	Admin    *session.AdminSession
	Checkout *checkout.Submitter
	Policy   pricing.Policy

	// Backend and AdminBackend share the wire contract but read different
	// token keys, so the storefront and admin console stay independently
	// signed in.
	Backend      *backend.Client
	AdminBackend *backend.Client

	closers []func() error
}

// New builds the client from configuration and restores persisted session
// state (cart mirror, stored tokens).
func New(ctx context.Context, cfg *Config) (*App, error) {
	a := &App{
		Policy: pricing.Policy{
			FreeShippingThreshold: decimal.NewFromInt(cfg.Shipping.FreeShippingThreshold),
			FlatShippingFee:       decimal.NewFromInt(cfg.Shipping.FlatShippingFee),
		},
	}

	kv, err := a.openStore(cfg)
	if err != nil {
		return nil, err
	}

	userTokens := session.NewTokenStore(kv, session.UserTokenKey)
	adminTokens := session.NewTokenStore(kv, session.AdminTokenKey)

	a.Backend = backend.NewClient(cfg.BackendURL, userTokens, backend.WithTimeout(cfg.HTTPTimeout))
	a.AdminBackend = backend.NewClient(cfg.BackendURL, adminTokens, backend.WithTimeout(cfg.HTTPTimeout))

	a.Cart = cart.NewStore(kv)
	a.Cart.Restore(ctx)

	a.Catalog = catalog.NewResolver(a.Backend, cfg.CatalogTTL)
	a.Session = session.NewSession(a.Backend, userTokens)
	a.Admin = session.NewAdminSession(a.AdminBackend, adminTokens, userTokens)
	a.Checkout = checkout.NewSubmitter(a.Backend, a.Cart)

	return a, nil
}

// openStore picks the durable mirror: Redis when configured, local files
// otherwise.
func (a *App) openStore(cfg *Config) (kvstore.Store, error) {
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, errors.Wrap(err, "parse redis URL")
		}
		client := redis.NewClient(opts)
		a.closers = append(a.closers, client.Close)
		return kvstore.NewRedis(client, "storefront", 0), nil
	}

	store, err := kvstore.NewFile(cfg.StateDir)
	if err != nil {
		return nil, errors.Wrap(err, "open state dir")
	}
	return store, nil
}

// Quote derives the current price breakdown from the cart and policy.
func (a *App) Quote() pricing.Quote {
	return pricing.QuoteCart(a.Cart.Items(), a.Policy)
}

// Close releases any resources held by the durable store.
func (a *App) Close() error {
	var firstErr error
	for _, closeFn := range a.closers {
		if err := closeFn(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
