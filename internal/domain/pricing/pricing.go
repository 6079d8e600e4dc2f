// Package pricing computes order totals. Every function is pure: totals are
// always re-derived from the current line items and a shipping policy, never
// cached, so a displayed total can never drift from the cart contents.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/emberhaus/storefront/internal/domain/cart"
)

// Policy is the static shipping configuration.
type Policy struct {
	// FreeShippingThreshold waives the shipping fee for subtotals at or above
	// this value. The boundary is inclusive.
	FreeShippingThreshold decimal.Decimal
	// FlatShippingFee is charged below the threshold.
	FlatShippingFee decimal.Decimal
}

// Quote is the fully derived price breakdown for a cart.
type Quote struct {
	Subtotal decimal.Decimal
	Shipping decimal.Decimal
	Total    decimal.Decimal
	// RemainingForFreeShipping drives the "add X more for free shipping"
	// indicator. Zero once the threshold is met.
	RemainingForFreeShipping decimal.Decimal
}

// Subtotal returns the sum of price times quantity over the line items.
// The sum is commutative, so ordering never matters.
func Subtotal(items []cart.LineItem) decimal.Decimal {
	sum := decimal.Zero
	for _, li := range items {
		sum = sum.Add(li.Subtotal())
	}
	return sum
}

// Shipping returns the shipping cost for the given subtotal: zero at or above
// the free-shipping threshold, the flat fee below it.
func Shipping(subtotal decimal.Decimal, policy Policy) decimal.Decimal {
	if subtotal.GreaterThanOrEqual(policy.FreeShippingThreshold) {
		return decimal.Zero
	}
	return policy.FlatShippingFee
}

// Total returns subtotal plus shipping.
func Total(subtotal, shipping decimal.Decimal) decimal.Decimal {
	return subtotal.Add(shipping)
}

// RemainingForFreeShipping returns how much more must be added to the cart to
// reach free shipping. Never negative.
func RemainingForFreeShipping(subtotal decimal.Decimal, policy Policy) decimal.Decimal {
	remaining := policy.FreeShippingThreshold.Sub(subtotal)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

// QuoteCart derives the complete price breakdown for the given line items.
func QuoteCart(items []cart.LineItem, policy Policy) Quote {
	subtotal := Subtotal(items)
	shipping := Shipping(subtotal, policy)
	return Quote{
		Subtotal:                 subtotal,
		Shipping:                 shipping,
		Total:                    Total(subtotal, shipping),
		RemainingForFreeShipping: RemainingForFreeShipping(subtotal, policy),
	}
}
