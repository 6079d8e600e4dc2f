package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/shopspring/decimal"

	"github.com/emberhaus/storefront/internal/domain/product"
)

// productRecord is the wire shape of a catalog entry.
type productRecord struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Image       string          `json:"image"`
	Description string          `json:"description"`
	WaxType     string          `json:"wax_type"`
	BurnTime    string          `json:"burn_time"`
	Weight      string          `json:"weight"`
	InStock     bool            `json:"in_stock"`
	Featured    bool            `json:"featured"`
}

func (r productRecord) toDomain() product.Product {
	return product.Product{
		ID:          r.ID,
		Name:        r.Name,
		Price:       r.Price,
		Category:    r.Category,
		Image:       r.Image,
		Description: r.Description,
		WaxType:     r.WaxType,
		BurnTime:    r.BurnTime,
		Weight:      r.Weight,
		InStock:     r.InStock,
		Featured:    r.Featured,
	}
}

// ProductInput is the body for admin catalog mutations.
type ProductInput struct {
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Image       string          `json:"image"`
	Description string          `json:"description,omitempty"`
	WaxType     string          `json:"wax_type,omitempty"`
	BurnTime    string          `json:"burn_time,omitempty"`
	Weight      string          `json:"weight,omitempty"`
	InStock     bool            `json:"in_stock"`
	Featured    bool            `json:"featured"`
}

// ListProducts returns the catalog, optionally filtered by category.
func (c *Client) ListProducts(ctx context.Context, category string) ([]product.Product, error) {
	query := url.Values{}
	if category != "" {
		query.Set("category", category)
	}

	var records []productRecord
	if err := c.do(ctx, http.MethodGet, "/products", query, nil, &records); err != nil {
		return nil, err
	}

	products := make([]product.Product, len(records))
	for i, r := range records {
		products[i] = r.toDomain()
	}
	return products, nil
}

// GetProduct returns a single catalog entry, or product.ErrNotFound.
func (c *Client) GetProduct(ctx context.Context, id string) (*product.Product, error) {
	var record productRecord
	if err := c.do(ctx, http.MethodGet, "/products/"+url.PathEscape(id), nil, nil, &record); err != nil {
		if IsNotFound(err) {
			return nil, product.ErrNotFound
		}
		return nil, err
	}
	p := record.toDomain()
	return &p, nil
}

// CreateProduct adds a catalog entry. Requires an admin token.
func (c *Client) CreateProduct(ctx context.Context, in ProductInput) (*product.Product, error) {
	var record productRecord
	// The backend routes catalog creation on the trailing-slash path.
	if err := c.do(ctx, http.MethodPost, "/products/", nil, in, &record); err != nil {
		return nil, err
	}
	p := record.toDomain()
	return &p, nil
}

// UpdateProduct replaces a catalog entry. Requires an admin token.
func (c *Client) UpdateProduct(ctx context.Context, id string, in ProductInput) (*product.Product, error) {
	var record productRecord
	if err := c.do(ctx, http.MethodPut, "/products/"+url.PathEscape(id), nil, in, &record); err != nil {
		if IsNotFound(err) {
			return nil, product.ErrNotFound
		}
		return nil, err
	}
	p := record.toDomain()
	return &p, nil
}

// DeleteProduct removes a catalog entry. Requires an admin token.
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	err := c.do(ctx, http.MethodDelete, "/products/"+url.PathEscape(id), nil, nil, nil)
	if IsNotFound(err) {
		return product.ErrNotFound
	}
	return err
}
