package checkout

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/nourshop/storefront/pkg/api"
	"github.com/nourshop/storefront/pkg/cart"
	"github.com/nourshop/storefront/pkg/session"
)

// Backend is the slice of the API client checkout needs.
type Backend interface {
	CreateOrder(ctx context.Context, req api.CreateOrderRequest) (api.Order, error)
}

// Service submits the active cart as an order.
type Service struct {
	backend  Backend
	carts    *cart.Manager
	sessions *session.Manager
	logger   *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a checkout service.
func New(backend Backend, carts *cart.Manager, sessions *session.Manager, opts ...Option) *Service {
	if backend == nil {
		panic("checkout: backend is required")
	}
	if carts == nil {
		panic("checkout: cart manager is required")
	}
	if sessions == nil {
		panic("checkout: session manager is required")
	}

	s := &Service{
		backend:  backend,
		carts:    carts,
		sessions: sessions,
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// PlaceOrder submits the active cart with the given contact details. It
// requires an authenticated session and a non-empty cart. The cart is
// cleared only after the backend accepts; any submission failure returns
// with the cart untouched.
func (s *Service) PlaceOrder(ctx context.Context, details api.CustomerDetails, payment api.PaymentMethod) (api.Order, error) {
	if _, ok := s.sessions.Current(); !ok {
		return api.Order{}, ErrNotAuthenticated
	}
	if !payment.Valid() {
		return api.Order{}, ErrInvalidPaymentMethod
	}

	lines := s.carts.Lines()
	if len(lines) == 0 {
		return api.Order{}, ErrEmptyCart
	}

	payload := make([]api.CartLinePayload, 0, len(lines))
	for _, line := range lines {
		payload = append(payload, api.CartLinePayload{
			ProductID: line.ProductID,
			Name:      line.Name,
			Price:     line.UnitPrice,
			ImageURL:  line.ImageRef,
			Quantity:  line.Quantity,
		})
	}

	req := api.CreateOrderRequest{
		CustomerDetails: details,
		PaymentMethod:   payment,
		Cart:            payload,
		ClientReference: uuid.NewString(),
	}

	order, err := s.backend.CreateOrder(ctx, req)
	if err != nil {
		return api.Order{}, err
	}

	// Accepted. Clearing may still hit a storage fault; the order exists
	// either way, so log and move on.
	if err := s.carts.Clear(ctx); err != nil {
		s.logger.WarnContext(ctx, "checkout: order accepted but cart not cleared",
			"order_id", order.ID, "error", err)
	}

	return order, nil
}
