package product

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a requested product does not exist.
var ErrNotFound = errors.New("product not found")

// Product represents a catalog item available for purchase. Prices are whole
// rupees held as decimals, so arithmetic stays exact end to end.
type Product struct {
	ID          string
	Name        string
	Price       decimal.Decimal
	Category    string
	Image       string
	Description string
	WaxType     string
	BurnTime    string
	Weight      string
	InStock     bool
	Featured    bool
}

// Resolver resolves catalog entries from the external product service.
type Resolver interface {
	// Resolve returns the catalog entry for the given identifier,
	// or ErrNotFound.
	Resolve(ctx context.Context, id string) (*Product, error)
	// List returns catalog entries, optionally filtered by category.
	// An empty category means the full catalog.
	List(ctx context.Context, category string) ([]Product, error)
}
