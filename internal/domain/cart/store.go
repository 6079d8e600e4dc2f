package cart

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/emberhaus/storefront/internal/domain/product"
	"github.com/emberhaus/storefront/pkg/kvstore"
)

// mirrorKey is the fixed key the cart is persisted under.
const mirrorKey = "cart"

// Store holds the ordered line items for the current session. All mutations
// go through Store methods and are serialized by an internal mutex; derived
// values (count, subtotal) are computed from the line items on every read and
// never stored.
//
// Every mutation mirrors the new state to the durable store. Mirror failures
// are logged and swallowed: the in-memory cart stays authoritative for the
// running session, and the mirror catches up on the next successful write.
type Store struct {
	mu     sync.Mutex
	items  []LineItem
	mirror kvstore.Store
}

// NewStore returns an empty cart mirrored to the given store. Call Restore to
// pick up state persisted by a previous session.
func NewStore(mirror kvstore.Store) *Store {
	return &Store{mirror: mirror}
}

// Restore loads the mirrored cart, replacing the current contents. A missing
// or unreadable mirror leaves the cart empty; a session must never fail to
// start because the mirror is stale or corrupt.
func (s *Store) Restore(ctx context.Context) {
	data, err := s.mirror.Get(ctx, mirrorKey)
	if err != nil {
		if !errors.Is(err, kvstore.ErrNotFound) {
			zctx.From(ctx).Warn("Cart mirror unreadable, starting empty", zap.Error(err))
		}
		return
	}

	var items []LineItem
	if err := json.Unmarshal(data, &items); err != nil {
		zctx.From(ctx).Warn("Cart mirror corrupt, starting empty", zap.Error(err))
		return
	}

	s.mu.Lock()
	s.items = sanitize(items)
	s.mu.Unlock()
}

// sanitize repairs a restored item list so it satisfies the rules the
// mutations enforce: one line per product ID, quantities of at least 1.
// Lines without a product ID are dropped, duplicates merge into the first
// occurrence, and sub-1 quantities clamp to 1.
func sanitize(items []LineItem) []LineItem {
	var out []LineItem
	seen := make(map[string]int, len(items))
	for _, li := range items {
		if li.ProductID == "" {
			continue
		}
		if li.Quantity < 1 {
			li.Quantity = 1
		}
		if i, ok := seen[li.ProductID]; ok {
			out[i].Quantity += li.Quantity
			continue
		}
		seen[li.ProductID] = len(out)
		out = append(out, li)
	}
	return out
}

// AddItem puts quantity units of the product into the cart. If the product is
// already present its quantity is incremented; otherwise a new snapshot line
// is appended at the end. Quantity must be at least 1 or ErrInvalidQuantity
// is returned before any state changes.
func (s *Store) AddItem(ctx context.Context, p product.Product, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}

	s.mu.Lock()
	if i := s.indexOf(p.ID); i >= 0 {
		s.items[i].Quantity += quantity
	} else {
		s.items = append(s.items, snapshot(p, quantity))
	}
	s.mu.Unlock()

	s.persist(ctx)
	return nil
}

// UpdateQuantity sets the quantity of an existing line item. Quantities below
// 1 are clamped to 1: removal is an explicit, separate action, never a side
// effect of decrementing. An unknown product ID is a benign no-op, since the
// caller may race with a removal.
func (s *Store) UpdateQuantity(ctx context.Context, productID string, quantity int) {
	if quantity < 1 {
		quantity = 1
	}

	s.mu.Lock()
	i := s.indexOf(productID)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	s.items[i].Quantity = quantity
	s.mu.Unlock()

	s.persist(ctx)
}

// RemoveItem removes the line item for the given product ID. Removing an
// absent ID is a benign no-op.
func (s *Store) RemoveItem(ctx context.Context, productID string) {
	s.mu.Lock()
	i := s.indexOf(productID)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	s.mu.Unlock()

	s.persist(ctx)
}

// Clear empties the cart. Called after a successful checkout or on explicit
// user action; clearing an already empty cart is fine.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	s.items = nil
	s.mu.Unlock()

	s.persist(ctx)
}

// Count returns the sum of quantities across all line items.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, li := range s.items {
		n += li.Quantity
	}
	return n
}

// Subtotal returns the sum of price times quantity across all line items.
func (s *Store) Subtotal() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	sum := decimal.Zero
	for _, li := range s.items {
		sum = sum.Add(li.Subtotal())
	}
	return sum
}

// Items returns a copy of the current line items in insertion order. Callers
// get a snapshot: mutating the returned slice never affects the cart.
func (s *Store) Items() []LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]LineItem, len(s.items))
	copy(items, s.items)
	return items
}

// Len returns the number of line items (not the quantity sum).
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// IsEmpty reports whether the cart has no line items.
func (s *Store) IsEmpty() bool {
	return s.Len() == 0
}

// indexOf returns the position of productID, or -1. Caller must hold mu.
func (s *Store) indexOf(productID string) int {
	for i, li := range s.items {
		if li.ProductID == productID {
			return i
		}
	}
	return -1
}

// persist mirrors the current items to durable storage. The write happens
// under the mutex so concurrent mutations cannot commit mirror writes out of
// order.
func (s *Store) persist(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(s.items)
	if err != nil {
		zctx.From(ctx).Warn("Cart mirror encode failed", zap.Error(err))
		return
	}
	if err := s.mirror.Set(ctx, mirrorKey, data); err != nil {
		zctx.From(ctx).Warn("Cart mirror write failed", zap.Error(err))
	}
}
