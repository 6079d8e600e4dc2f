// Package cart implements the shopping cart: an ordered list of product
// snapshots with quantities, durably mirrored to a key-value store so a
// session survives client restarts.
package cart

import (
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/emberhaus/storefront/internal/domain/product"
)

// ErrInvalidQuantity is returned when AddItem is called with a quantity
// below 1.
var ErrInvalidQuantity = errors.New("quantity must be a positive integer")

// LineItem is one product's snapshot plus quantity within the cart. The
// product fields are copied at add time and never re-fetched, so later
// catalog changes do not rewrite what the visitor already put in the cart.
type LineItem struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Image     string          `json:"image"`
	Price     decimal.Decimal `json:"price"`
	Weight    string          `json:"weight"`
	WaxType   string          `json:"wax_type"`
	Quantity  int             `json:"quantity"`
}

// Subtotal returns price multiplied by quantity for this line.
func (li LineItem) Subtotal() decimal.Decimal {
	return li.Price.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// snapshot copies the fields the cart keeps from a catalog entry.
func snapshot(p product.Product, quantity int) LineItem {
	return LineItem{
		ProductID: p.ID,
		Name:      p.Name,
		Image:     p.Image,
		Price:     p.Price,
		Weight:    p.Weight,
		WaxType:   p.WaxType,
		Quantity:  quantity,
	}
}
