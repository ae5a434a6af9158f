package catalog

import (
	"context"

	"github.com/nourshop/storefront/pkg/api"
)

// Backend is the slice of the API client the catalog needs.
type Backend interface {
	ProductsByCategory(ctx context.Context, category string) ([]api.Product, error)
	CreateProduct(ctx context.Context, input api.ProductInput) (api.Product, error)
	UpdateProduct(ctx context.Context, id string, input api.ProductInput) (api.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

// DefaultCacheSize bounds how many category listings are kept in memory.
const DefaultCacheSize = 32

// Service answers catalog reads from cache where possible and forwards staff
// mutations, keeping the cache coherent.
type Service struct {
	backend    Backend
	cache      *listingCache
	categories *categorySet
}

// Option configures a Service.
type Option func(*Service)

// WithCacheSize overrides the listing cache capacity.
func WithCacheSize(size int) Option {
	return func(s *Service) {
		s.cache = newListingCache(size)
	}
}

// New creates a catalog service over the backend client.
func New(backend Backend, opts ...Option) *Service {
	if backend == nil {
		panic("catalog: backend is required")
	}

	s := &Service{
		backend:    backend,
		cache:      newListingCache(DefaultCacheSize),
		categories: newCategorySet(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Categories lists the browsable categories. The slice is a copy; mutating
// it does not touch the service.
func (s *Service) Categories() []Category {
	return s.categories.all()
}

// AddCategory registers a new browsable category for the rest of the
// process. Adding a name that already exists is a no-op; an empty name
// returns ErrInvalidCategory.
func (s *Service) AddCategory(c Category) error {
	return s.categories.add(c)
}

// Products lists a category's products, serving repeated reads from cache.
func (s *Service) Products(ctx context.Context, category string) ([]api.Product, error) {
	if products, ok := s.cache.get(category); ok {
		return products, nil
	}
	return s.Refresh(ctx, category)
}

// Refresh bypasses the cache and re-fetches a category's products.
func (s *Service) Refresh(ctx context.Context, category string) ([]api.Product, error) {
	products, err := s.backend.ProductsByCategory(ctx, category)
	if err != nil {
		return nil, err
	}
	s.cache.put(category, products)
	return products, nil
}

// CreateProduct adds a product and invalidates its category listing.
func (s *Service) CreateProduct(ctx context.Context, input api.ProductInput) (api.Product, error) {
	product, err := s.backend.CreateProduct(ctx, input)
	if err != nil {
		return api.Product{}, err
	}
	s.cache.invalidate(input.CategoryName)
	return product, nil
}

// UpdateProduct replaces a product. The update may have moved the product
// between categories, so the whole cache is dropped.
func (s *Service) UpdateProduct(ctx context.Context, id string, input api.ProductInput) (api.Product, error) {
	product, err := s.backend.UpdateProduct(ctx, id, input)
	if err != nil {
		return api.Product{}, err
	}
	s.cache.reset()
	return product, nil
}

// DeleteProduct removes a product. Only the product ID is known here, so
// the whole cache is dropped.
func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	if err := s.backend.DeleteProduct(ctx, id); err != nil {
		return err
	}
	s.cache.reset()
	return nil
}
