package assistant

import (
	"context"
	"testing"

	"shopassist/app/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchCatalog_TierOrder(t *testing.T) {
	// "Alpha" occurs both as a product name and as another product's brand.
	// The name tier must win and suppress the brand tier entirely.
	products := []store.Product{
		{ID: 1, Name: "Alpha Book", Price: 10, Category: "Computer", Brand: "Dell", Active: true},
		{ID: 2, Name: "Zen Book", Price: 20, Category: "Computer", Brand: "Alpha", Active: true},
		{ID: 3, Name: "Gamma", Description: "chứa chữ alpha trong mô tả", Price: 30, Category: "Computer", Active: true},
	}

	svc := newTestService(&fakeGenerator{}, products)
	ctx := context.Background()

	t.Run("name tier wins", func(t *testing.T) {
		found, err := svc.searchCatalog(ctx, "alpha", searchFilters{}, products)
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, int64(1), found[0].ID)
	})

	t.Run("brand tier when name misses", func(t *testing.T) {
		brandOnly := []store.Product{
			{ID: 2, Name: "Zen Book", Price: 20, Brand: "Acer", Active: true},
			{ID: 3, Name: "Gamma", Description: "acer chính hãng", Price: 30, Active: true},
		}
		svc := newTestService(&fakeGenerator{}, brandOnly)

		found, err := svc.searchCatalog(ctx, "acer", searchFilters{}, brandOnly)
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, int64(2), found[0].ID)
	})

	t.Run("description tier last", func(t *testing.T) {
		descOnly := []store.Product{
			{ID: 3, Name: "Gamma", Description: "màn hình oled siêu nét", Price: 30, Active: true},
		}
		svc := newTestService(&fakeGenerator{}, descOnly)

		found, err := svc.searchCatalog(ctx, "oled", searchFilters{}, descOnly)
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, int64(3), found[0].ID)
	})

	t.Run("filters apply to producing tier", func(t *testing.T) {
		found, err := svc.searchCatalog(ctx, "book", searchFilters{maxPrice: 15}, products)
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, int64(1), found[0].ID)
	})
}

func TestDedupeByID(t *testing.T) {
	products := []store.Product{
		{ID: 1, Name: "A", Active: true},
		{ID: 2, Name: "B", Active: false},
		{ID: 1, Name: "A", Active: true},
		{ID: 3, Name: "C", Active: true},
	}

	deduped := dedupeByID(products)

	require.Len(t, deduped, 2)
	assert.Equal(t, int64(1), deduped[0].ID)
	assert.Equal(t, int64(3), deduped[1].ID)
}

func TestFindNamedProduct_LongestNameWins(t *testing.T) {
	catalog := testProducts()

	t.Run("longer name not shadowed", func(t *testing.T) {
		p, ok := findNamedProduct(catalog, "pro max giá bao nhiêu")
		require.True(t, ok)
		assert.Equal(t, "Pro Max", p.Name)
	})

	t.Run("short name still matches alone", func(t *testing.T) {
		p, ok := findNamedProduct(catalog, "con pro còn hàng không")
		require.True(t, ok)
		assert.Equal(t, "Pro", p.Name)
	})

	t.Run("no match", func(t *testing.T) {
		_, ok := findNamedProduct(catalog, "máy giặt")
		assert.False(t, ok)
	})
}

func TestFindNamedProducts_CatalogOrderAndLimit(t *testing.T) {
	catalog := testProducts()

	found := findNamedProducts(catalog, "so sánh laptop b với laptop a", 2)

	require.Len(t, found, 2)
	assert.Equal(t, "Laptop A", found[0].Name)
	assert.Equal(t, "Laptop B", found[1].Name)
}

func TestLimitProducts(t *testing.T) {
	catalog := testProducts()

	assert.Len(t, limitProducts(catalog, 3), 3)
	assert.Len(t, limitProducts(catalog[:2], 3), 2)
}
