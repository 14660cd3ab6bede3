package service

import (
	"context"
	"testing"

	"github.com/mluvul69-gif/linea-store/internal/entity"
	"github.com/mluvul69-gif/linea-store/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddToCart_MergesSameProduct(t *testing.T) {
	store := newFakeCartStore()
	catalog := newFakeCatalog(&entity.Product{ID: 1, Name: "Series II-Black Hoodie", Price: 128})
	svc := NewCartService(store, catalog)

	require.NoError(t, svc.AddToCart(context.Background(), "sid-1", 1, 2))
	require.NoError(t, svc.AddToCart(context.Background(), "sid-1", 1, 3))

	entries := store.carts["sid-1"]
	require.Len(t, entries, 1)
	assert.Equal(t, 1, entries[0].ProductID)
	assert.Equal(t, 5, entries[0].Quantity)
}

func TestAddToCart_AppendsDistinctProducts(t *testing.T) {
	store := newFakeCartStore()
	catalog := newFakeCatalog(
		&entity.Product{ID: 1, Price: 128},
		&entity.Product{ID: 2, Price: 48},
	)
	svc := NewCartService(store, catalog)

	require.NoError(t, svc.AddToCart(context.Background(), "sid-1", 1, 1))
	require.NoError(t, svc.AddToCart(context.Background(), "sid-1", 2, 1))

	require.Len(t, store.carts["sid-1"], 2)
}

func TestAddToCart_UnknownProduct(t *testing.T) {
	store := newFakeCartStore()
	svc := NewCartService(store, newFakeCatalog())

	err := svc.AddToCart(context.Background(), "sid-1", 99, 1)

	assert.ErrorIs(t, err, repository.ErrProductNotFound)
	assert.Empty(t, store.carts["sid-1"])
}

func TestAddToCart_BumpsPopularity(t *testing.T) {
	store := newFakeCartStore()
	catalog := newFakeCatalog(&entity.Product{ID: 7, Price: 22})
	svc := NewCartService(store, catalog)

	require.NoError(t, svc.AddToCart(context.Background(), "sid-1", 7, 1))

	assert.Equal(t, []int{7}, catalog.bumped)
}

func TestViewCart_Totals(t *testing.T) {
	store := newFakeCartStore()
	store.carts["sid-1"] = []entity.CartEntry{
		{ProductID: 1, Quantity: 2},
		{ProductID: 2, Quantity: 1},
	}
	catalog := newFakeCatalog(
		&entity.Product{ID: 1, Name: "Hoodie", Price: 128},
		&entity.Product{ID: 2, Name: "Cap", Price: 48},
	)
	svc := NewCartService(store, catalog)

	view, err := svc.ViewCart(context.Background(), "sid-1")

	require.NoError(t, err)
	require.Len(t, view.Items, 2)
	assert.Equal(t, 256.0, view.Items[0].Subtotal)
	assert.Equal(t, 48.0, view.Items[1].Subtotal)
	assert.Equal(t, 304.0, view.Total)
}

func TestViewCart_DropsRemovedProducts(t *testing.T) {
	store := newFakeCartStore()
	store.carts["sid-1"] = []entity.CartEntry{
		{ProductID: 1, Quantity: 2},
		{ProductID: 42, Quantity: 3}, // no longer in the catalog
	}
	catalog := newFakeCatalog(&entity.Product{ID: 1, Name: "Hoodie", Price: 128})
	svc := NewCartService(store, catalog)

	view, err := svc.ViewCart(context.Background(), "sid-1")

	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 1, view.Items[0].ProductID)
	assert.Equal(t, 256.0, view.Total)
}

func TestViewCart_EmptySession(t *testing.T) {
	svc := NewCartService(newFakeCartStore(), newFakeCatalog())

	view, err := svc.ViewCart(context.Background(), "fresh-session")

	require.NoError(t, err)
	assert.Empty(t, view.Items)
	assert.Zero(t, view.Total)
}
