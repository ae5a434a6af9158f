package catalog_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nourshop/storefront/pkg/api"
	"github.com/nourshop/storefront/pkg/catalog"
)

type fakeBackend struct {
	listings map[string][]api.Product
	calls    map[string]int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		listings: make(map[string][]api.Product),
		calls:    make(map[string]int),
	}
}

func (f *fakeBackend) ProductsByCategory(ctx context.Context, category string) ([]api.Product, error) {
	f.calls[category]++
	return f.listings[category], nil
}

func (f *fakeBackend) CreateProduct(ctx context.Context, input api.ProductInput) (api.Product, error) {
	product := api.Product{ID: "new", Name: input.Name, CategoryName: input.CategoryName, Price: input.Price}
	f.listings[input.CategoryName] = append(f.listings[input.CategoryName], product)
	return product, nil
}

func (f *fakeBackend) UpdateProduct(ctx context.Context, id string, input api.ProductInput) (api.Product, error) {
	return api.Product{ID: id, Name: input.Name, CategoryName: input.CategoryName}, nil
}

func (f *fakeBackend) DeleteProduct(ctx context.Context, id string) error {
	return nil
}

func TestService_Products(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("repeated reads hit the cache", func(t *testing.T) {
		t.Parallel()
		backend := newFakeBackend()
		backend.listings["kitchen"] = []api.Product{{ID: "p1", Name: "Pan"}}
		service := catalog.New(backend)

		for i := 0; i < 3; i++ {
			products, err := service.Products(ctx, "kitchen")
			require.NoError(t, err)
			require.Len(t, products, 1)
		}

		assert.Equal(t, 1, backend.calls["kitchen"])
	})

	t.Run("refresh bypasses the cache", func(t *testing.T) {
		t.Parallel()
		backend := newFakeBackend()
		service := catalog.New(backend)

		_, err := service.Products(ctx, "kitchen")
		require.NoError(t, err)
		_, err = service.Refresh(ctx, "kitchen")
		require.NoError(t, err)

		assert.Equal(t, 2, backend.calls["kitchen"])
	})

	t.Run("create invalidates the affected category", func(t *testing.T) {
		t.Parallel()
		backend := newFakeBackend()
		service := catalog.New(backend)

		_, err := service.Products(ctx, "kitchen")
		require.NoError(t, err)

		_, err = service.CreateProduct(ctx, api.ProductInput{Name: "Pot", CategoryName: "kitchen"})
		require.NoError(t, err)

		products, err := service.Products(ctx, "kitchen")
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, "Pot", products[0].Name)
		assert.Equal(t, 2, backend.calls["kitchen"])
	})

	t.Run("delete drops every cached listing", func(t *testing.T) {
		t.Parallel()
		backend := newFakeBackend()
		service := catalog.New(backend)

		_, err := service.Products(ctx, "kitchen")
		require.NoError(t, err)
		_, err = service.Products(ctx, "garden")
		require.NoError(t, err)

		require.NoError(t, service.DeleteProduct(ctx, "p1"))

		_, err = service.Products(ctx, "kitchen")
		require.NoError(t, err)
		_, err = service.Products(ctx, "garden")
		require.NoError(t, err)

		assert.Equal(t, 2, backend.calls["kitchen"])
		assert.Equal(t, 2, backend.calls["garden"])
	})

	t.Run("categories start from the built-in set", func(t *testing.T) {
		t.Parallel()
		service := catalog.New(newFakeBackend())

		categories := service.Categories()
		require.NotEmpty(t, categories)
		for _, c := range categories {
			assert.NotEmpty(t, c.Name)
		}

		// The returned slice is a copy.
		categories[0].Name = "mutated"
		assert.NotEqual(t, "mutated", service.Categories()[0].Name)
	})

	t.Run("added category becomes browsable", func(t *testing.T) {
		t.Parallel()
		service := catalog.New(newFakeBackend())
		before := len(service.Categories())

		require.NoError(t, service.AddCategory(catalog.Category{Name: "Toys", ImageRef: "img/categories/toys.jpg"}))

		categories := service.Categories()
		require.Len(t, categories, before+1)
		assert.Equal(t, "Toys", categories[before].Name)
	})

	t.Run("duplicate category name is a no-op", func(t *testing.T) {
		t.Parallel()
		service := catalog.New(newFakeBackend())
		require.NoError(t, service.AddCategory(catalog.Category{Name: "Toys"}))

		before := len(service.Categories())
		require.NoError(t, service.AddCategory(catalog.Category{Name: "Toys"}))
		assert.Len(t, service.Categories(), before)
	})

	t.Run("category without a name is rejected", func(t *testing.T) {
		t.Parallel()
		service := catalog.New(newFakeBackend())

		err := service.AddCategory(catalog.Category{ImageRef: "img/categories/unnamed.jpg"})
		assert.ErrorIs(t, err, catalog.ErrInvalidCategory)
	})

	t.Run("cache evicts least recently browsed category", func(t *testing.T) {
		t.Parallel()
		backend := newFakeBackend()
		service := catalog.New(backend, catalog.WithCacheSize(2))

		_, err := service.Products(ctx, "a")
		require.NoError(t, err)
		_, err = service.Products(ctx, "b")
		require.NoError(t, err)
		_, err = service.Products(ctx, "c")
		require.NoError(t, err)

		// "a" was evicted; re-reading it refetches, while "c" stays cached.
		_, err = service.Products(ctx, "a")
		require.NoError(t, err)
		_, err = service.Products(ctx, "c")
		require.NoError(t, err)

		assert.Equal(t, 2, backend.calls["a"])
		assert.Equal(t, 1, backend.calls["c"])
	})
}
