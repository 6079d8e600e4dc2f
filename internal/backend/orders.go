package backend

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"
)

// OrderItem is a line-item snapshot inside an order payload.
type OrderItem struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Image     string          `json:"image"`
}

// OrderAddress is the shipping address inside an order payload.
type OrderAddress struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
}

// OrderRequest is the order-creation payload.
type OrderRequest struct {
	Items           []OrderItem  `json:"items"`
	ShippingAddress OrderAddress `json:"shipping_address"`
	PaymentMethod   string       `json:"payment_method"`
	Notes           string       `json:"notes,omitempty"`
}

// Order is the backend's order record.
type Order struct {
	ID              string          `json:"id"`
	OrderNumber     string          `json:"order_number"`
	Items           []OrderItem     `json:"items"`
	ShippingAddress OrderAddress    `json:"shipping_address"`
	PaymentMethod   string          `json:"payment_method"`
	Notes           string          `json:"notes,omitempty"`
	Total           decimal.Decimal `json:"total"`
	Status          string          `json:"status"`
	CreatedAt       time.Time       `json:"created_at"`
}

// CreateOrder submits an order and returns the backend's confirmation.
func (c *Client) CreateOrder(ctx context.Context, req OrderRequest) (*Order, error) {
	var o Order
	if err := c.do(ctx, http.MethodPost, "/orders", nil, req, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

// MyOrders returns the current user's order history.
func (c *Client) MyOrders(ctx context.Context) ([]Order, error) {
	var orders []Order
	if err := c.do(ctx, http.MethodGet, "/orders/my-orders", nil, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// GetOrder returns a single order by ID.
func (c *Client) GetOrder(ctx context.Context, id string) (*Order, error) {
	var o Order
	if err := c.do(ctx, http.MethodGet, "/orders/"+url.PathEscape(id), nil, nil, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

// ListOrders returns all orders, optionally filtered by status.
// Requires an admin token.
func (c *Client) ListOrders(ctx context.Context, statusFilter string) ([]Order, error) {
	query := url.Values{}
	if statusFilter != "" {
		query.Set("status_filter", statusFilter)
	}

	var orders []Order
	if err := c.do(ctx, http.MethodGet, "/orders", query, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateOrderStatus changes an order's status. Requires an admin token.
func (c *Client) UpdateOrderStatus(ctx context.Context, id, status string) (*Order, error) {
	body := struct {
		Status string `json:"status"`
	}{Status: status}

	var o Order
	if err := c.do(ctx, http.MethodPatch, "/orders/"+url.PathEscape(id)+"/status", nil, body, &o); err != nil {
		return nil, err
	}
	return &o, nil
}
