// Package checkout assembles order-creation payloads from the cart snapshot
// and the shipping form, and orchestrates submission against the order
// service.
package checkout

import (
	"fmt"
	"strings"

	"github.com/go-faster/errors"

	"github.com/emberhaus/storefront/internal/backend"
	"github.com/emberhaus/storefront/internal/domain/cart"
)

// Sentinel errors for checkout validation.
var (
	ErrEmptyCart            = errors.New("cart is empty")
	ErrInvalidPaymentMethod = errors.New("payment method must be online or cod")
)

// InvalidAddressError indicates a required shipping-address field is missing.
type InvalidAddressError struct {
	Field string
}

func (e *InvalidAddressError) Error() string {
	return fmt.Sprintf("shipping address field %s is required", e.Field)
}

// PaymentMethod is the closed set of accepted payment selections.
type PaymentMethod string

const (
	PaymentOnline PaymentMethod = "online"
	PaymentCOD    PaymentMethod = "cod"
)

// Valid reports whether the payment method is one of the accepted values.
func (m PaymentMethod) Valid() bool {
	return m == PaymentOnline || m == PaymentCOD
}

// ShippingAddress is the typed shipping form. Every field is required.
type ShippingAddress struct {
	Name    string
	Phone   string
	Address string
	City    string
	State   string
	Pincode string
}

// Validate checks each required field, returning an InvalidAddressError
// naming the first missing one. Whitespace-only values count as missing.
func (a ShippingAddress) Validate() error {
	fields := []struct {
		name  string
		value string
	}{
		{"name", a.Name},
		{"phone", a.Phone},
		{"address", a.Address},
		{"city", a.City},
		{"state", a.State},
		{"pincode", a.Pincode},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return &InvalidAddressError{Field: f.name}
		}
	}
	return nil
}

// BuildOrderRequest validates the inputs and assembles the order-creation
// payload. It performs no I/O. Each line item is copied by value: mutating
// the cart after this call never alters an already-built payload.
func BuildOrderRequest(items []cart.LineItem, addr ShippingAddress, method PaymentMethod, notes string) (*backend.OrderRequest, error) {
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}
	if err := addr.Validate(); err != nil {
		return nil, err
	}
	if !method.Valid() {
		return nil, ErrInvalidPaymentMethod
	}

	orderItems := make([]backend.OrderItem, len(items))
	for i, li := range items {
		orderItems[i] = backend.OrderItem{
			ProductID: li.ProductID,
			Name:      li.Name,
			Price:     li.Price,
			Quantity:  li.Quantity,
			Image:     li.Image,
		}
	}

	return &backend.OrderRequest{
		Items: orderItems,
		ShippingAddress: backend.OrderAddress{
			Name:    addr.Name,
			Phone:   addr.Phone,
			Address: addr.Address,
			City:    addr.City,
			State:   addr.State,
			Pincode: addr.Pincode,
		},
		PaymentMethod: string(method),
		Notes:         notes,
	}, nil
}
