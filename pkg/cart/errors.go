package cart

import "errors"

var (
	// ErrNotInitialized indicates an operation ran before Initialize settled.
	ErrNotInitialized = errors.New("cart.not_initialized")

	// ErrInvalidProduct indicates a product without an ID was added.
	ErrInvalidProduct = errors.New("cart.invalid_product")

	// ErrPartitionUnavailable indicates the active partition could not be
	// read from storage. Mutations are kept in memory and writes are
	// withheld until a load succeeds, so the stored lines stay intact.
	ErrPartitionUnavailable = errors.New("cart.partition_unavailable")
)
