package catalog

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emberhaus/storefront/internal/domain/product"
)

type mockSource struct {
	byID     map[string]product.Product
	getCalls atomic.Int64
}

func (m *mockSource) GetProduct(_ context.Context, id string) (*product.Product, error) {
	m.getCalls.Add(1)
	p, ok := m.byID[id]
	if !ok {
		return nil, product.ErrNotFound
	}
	return &p, nil
}

func (m *mockSource) ListProducts(_ context.Context, category string) ([]product.Product, error) {
	var out []product.Product
	for _, p := range m.byID {
		if category == "" || p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

func newSource(products ...product.Product) *mockSource {
	byID := make(map[string]product.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return &mockSource{byID: byID}
}

func candle(id, category string, price int64) product.Product {
	return product.Product{
		ID:       id,
		Name:     "Candle " + id,
		Price:    decimal.NewFromInt(price),
		Category: category,
	}
}

func TestResolve_CachesWithinTTL(t *testing.T) {
	src := newSource(candle("p1", "relaxation", 499))
	r := NewResolver(src, time.Minute)
	ctx := context.Background()

	first, err := r.Resolve(ctx, "p1")
	require.NoError(t, err)
	second, err := r.Resolve(ctx, "p1")
	require.NoError(t, err)

	assert.Equal(t, first.Name, second.Name)
	assert.Equal(t, int64(1), src.getCalls.Load())
}

func TestResolve_RefetchesAfterTTL(t *testing.T) {
	src := newSource(candle("p1", "relaxation", 499))
	r := NewResolver(src, time.Nanosecond)
	ctx := context.Background()

	_, err := r.Resolve(ctx, "p1")
	require.NoError(t, err)
	time.Sleep(time.Millisecond)
	_, err = r.Resolve(ctx, "p1")
	require.NoError(t, err)

	assert.Equal(t, int64(2), src.getCalls.Load())
}

func TestResolve_NotFound(t *testing.T) {
	r := NewResolver(newSource(), time.Minute)

	_, err := r.Resolve(context.Background(), "ghost")
	require.ErrorIs(t, err, product.ErrNotFound)
}

func TestResolve_ReturnsCopy(t *testing.T) {
	src := newSource(candle("p1", "relaxation", 499))
	r := NewResolver(src, time.Minute)
	ctx := context.Background()

	first, err := r.Resolve(ctx, "p1")
	require.NoError(t, err)
	first.Name = "mutated"

	second, err := r.Resolve(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "Candle p1", second.Name)
}

func TestInvalidate_ForcesRefetch(t *testing.T) {
	src := newSource(candle("p1", "relaxation", 499))
	r := NewResolver(src, time.Minute)
	ctx := context.Background()

	_, err := r.Resolve(ctx, "p1")
	require.NoError(t, err)

	r.Invalidate("p1")

	_, err = r.Resolve(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), src.getCalls.Load())
}

func TestList_FiltersByCategory(t *testing.T) {
	src := newSource(candle("p1", "relaxation", 499), candle("p2", "festive", 649))
	r := NewResolver(src, time.Minute)

	all, err := r.List(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	festive, err := r.List(context.Background(), "festive")
	require.NoError(t, err)
	require.Len(t, festive, 1)
	assert.Equal(t, "p2", festive[0].ID)
}
