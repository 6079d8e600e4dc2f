package checkout

import (
	"context"
	"testing"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emberhaus/storefront/internal/backend"
	"github.com/emberhaus/storefront/internal/domain/cart"
	"github.com/emberhaus/storefront/internal/domain/product"
	"github.com/emberhaus/storefront/pkg/kvstore"
)

// --- Mock implementations ---

type mockOrderPlacer struct {
	calls   int
	lastReq backend.OrderRequest
	order   *backend.Order
	err     error
}

func (m *mockOrderPlacer) CreateOrder(_ context.Context, req backend.OrderRequest) (*backend.Order, error) {
	m.calls++
	m.lastReq = req
	if m.err != nil {
		return nil, m.err
	}
	return m.order, nil
}

// --- Helpers ---

func validAddress() ShippingAddress {
	return ShippingAddress{
		Name:    "Asha Rao",
		Phone:   "9876543210",
		Address: "12 Lake View Road",
		City:    "Bengaluru",
		State:   "Karnataka",
		Pincode: "560001",
	}
}

func testLine(id string, price int64, qty int) cart.LineItem {
	return cart.LineItem{
		ProductID: id,
		Name:      "Candle " + id,
		Image:     "img-" + id,
		Price:     decimal.NewFromInt(price),
		Quantity:  qty,
	}
}

func cartWith(t *testing.T, lines ...cart.LineItem) *cart.Store {
	t.Helper()
	s := cart.NewStore(kvstore.NewMemory())
	for _, li := range lines {
		p := product.Product{
			ID:    li.ProductID,
			Name:  li.Name,
			Image: li.Image,
			Price: li.Price,
		}
		require.NoError(t, s.AddItem(context.Background(), p, li.Quantity))
	}
	return s
}

// --- BuildOrderRequest ---

func TestBuildOrderRequest_EmptyCart(t *testing.T) {
	_, err := BuildOrderRequest(nil, validAddress(), PaymentCOD, "")
	require.ErrorIs(t, err, ErrEmptyCart)
}

func TestBuildOrderRequest_MissingAddressField(t *testing.T) {
	addr := validAddress()
	addr.Pincode = ""

	_, err := BuildOrderRequest([]cart.LineItem{testLine("p1", 499, 1)}, addr, PaymentCOD, "")

	var iaErr *InvalidAddressError
	require.ErrorAs(t, err, &iaErr)
	assert.Equal(t, "pincode", iaErr.Field)
}

func TestBuildOrderRequest_WhitespaceFieldIsMissing(t *testing.T) {
	addr := validAddress()
	addr.City = "   "

	_, err := BuildOrderRequest([]cart.LineItem{testLine("p1", 499, 1)}, addr, PaymentCOD, "")

	var iaErr *InvalidAddressError
	require.ErrorAs(t, err, &iaErr)
	assert.Equal(t, "city", iaErr.Field)
}

func TestBuildOrderRequest_InvalidPaymentMethod(t *testing.T) {
	_, err := BuildOrderRequest([]cart.LineItem{testLine("p1", 499, 1)}, validAddress(), PaymentMethod("razorpay"), "")
	require.ErrorIs(t, err, ErrInvalidPaymentMethod)
}

func TestBuildOrderRequest_MapsLineItems(t *testing.T) {
	lines := []cart.LineItem{testLine("p1", 499, 2), testLine("p2", 449, 1)}

	req, err := BuildOrderRequest(lines, validAddress(), PaymentOnline, "gift wrap please")
	require.NoError(t, err)

	require.Len(t, req.Items, 2)
	assert.Equal(t, "p1", req.Items[0].ProductID)
	assert.Equal(t, "Candle p1", req.Items[0].Name)
	assert.Equal(t, 2, req.Items[0].Quantity)
	assert.Equal(t, "img-p1", req.Items[0].Image)
	assert.True(t, decimal.NewFromInt(499).Equal(req.Items[0].Price))
	assert.Equal(t, "online", req.PaymentMethod)
	assert.Equal(t, "gift wrap please", req.Notes)
	assert.Equal(t, "560001", req.ShippingAddress.Pincode)
}

func TestBuildOrderRequest_PayloadIsSnapshot(t *testing.T) {
	lines := []cart.LineItem{testLine("p1", 499, 2)}

	req, err := BuildOrderRequest(lines, validAddress(), PaymentCOD, "")
	require.NoError(t, err)

	// Mutating the source slice after building must not reach the payload.
	lines[0].Quantity = 99
	lines[0].Name = "changed"

	assert.Equal(t, 2, req.Items[0].Quantity)
	assert.Equal(t, "Candle p1", req.Items[0].Name)
}

// --- Submitter ---

func TestSubmit_SuccessClearsCart(t *testing.T) {
	cartStore := cartWith(t, testLine("p1", 499, 2))
	placer := &mockOrderPlacer{order: &backend.Order{OrderNumber: "ORD-1001", Status: "pending"}}
	sub := NewSubmitter(placer, cartStore)

	order, err := sub.Submit(context.Background(), validAddress(), PaymentCOD, "")
	require.NoError(t, err)

	assert.Equal(t, "ORD-1001", order.OrderNumber)
	assert.Equal(t, 1, placer.calls)
	assert.Equal(t, "cod", placer.lastReq.PaymentMethod)
	require.Len(t, placer.lastReq.Items, 1)
	assert.True(t, cartStore.IsEmpty())
}

func TestSubmit_BackendFailureLeavesCart(t *testing.T) {
	cartStore := cartWith(t, testLine("p1", 499, 2))
	placer := &mockOrderPlacer{err: errors.New("order service unavailable")}
	sub := NewSubmitter(placer, cartStore)

	_, err := sub.Submit(context.Background(), validAddress(), PaymentCOD, "")
	require.Error(t, err)

	assert.Equal(t, 2, cartStore.Count(), "failed submission must not touch the cart")
}

func TestSubmit_ValidationFailsBeforeNetwork(t *testing.T) {
	cartStore := cartWith(t, testLine("p1", 499, 1))
	placer := &mockOrderPlacer{}
	sub := NewSubmitter(placer, cartStore)

	addr := validAddress()
	addr.Pincode = ""
	_, err := sub.Submit(context.Background(), addr, PaymentCOD, "")

	var iaErr *InvalidAddressError
	require.ErrorAs(t, err, &iaErr)
	assert.Equal(t, 0, placer.calls, "no request may be attempted on validation failure")
	assert.Equal(t, 1, cartStore.Count())
}

func TestSubmit_EmptyCart(t *testing.T) {
	cartStore := cart.NewStore(kvstore.NewMemory())
	placer := &mockOrderPlacer{}
	sub := NewSubmitter(placer, cartStore)

	_, err := sub.Submit(context.Background(), validAddress(), PaymentCOD, "")
	require.ErrorIs(t, err, ErrEmptyCart)
	assert.Equal(t, 0, placer.calls)
}
