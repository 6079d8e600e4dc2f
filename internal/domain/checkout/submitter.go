package checkout

import (
	"context"

	"github.com/go-faster/errors"

	"github.com/emberhaus/storefront/internal/backend"
	"github.com/emberhaus/storefront/internal/domain/cart"
)

// OrderPlacer sends an assembled order payload to the order service.
// Implemented by *backend.Client.
type OrderPlacer interface {
	CreateOrder(ctx context.Context, req backend.OrderRequest) (*backend.Order, error)
}

// Submitter runs the checkout flow: validate and build the payload, submit
// it, and clear the cart only after the backend confirms. A failed submission
// leaves the cart untouched so the visitor can retry.
type Submitter struct {
	orders OrderPlacer
	cart   *cart.Store
}

// NewSubmitter creates a Submitter over the given order service and cart.
func NewSubmitter(orders OrderPlacer, cartStore *cart.Store) *Submitter {
	return &Submitter{
		orders: orders,
		cart:   cartStore,
	}
}

// Submit places an order for the current cart contents. Validation failures
// are returned before any network call. On success the cart is cleared and
// the backend's confirmation returned.
func (s *Submitter) Submit(ctx context.Context, addr ShippingAddress, method PaymentMethod, notes string) (*backend.Order, error) {
	req, err := BuildOrderRequest(s.cart.Items(), addr, method, notes)
	if err != nil {
		return nil, err
	}

	order, err := s.orders.CreateOrder(ctx, *req)
	if err != nil {
		return nil, errors.Wrap(err, "create order")
	}

	s.cart.Clear(ctx)
	return order, nil
}
