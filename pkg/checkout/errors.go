package checkout

import "errors"

var (
	// ErrNotAuthenticated indicates order placement was attempted without a
	// logged-in user.
	ErrNotAuthenticated = errors.New("checkout.not_authenticated")

	// ErrEmptyCart indicates order placement was attempted with no lines.
	ErrEmptyCart = errors.New("checkout.empty_cart")

	// ErrInvalidPaymentMethod indicates an unknown payment method.
	ErrInvalidPaymentMethod = errors.New("checkout.invalid_payment_method")
)
