package kv

import "context"

// Store is the device-local key-value storage used by the session and cart
// managers. Each manager owns its designated keys exclusively; the interface
// carries no listing or transactions because none are needed.
type Store interface {
	// Get returns the value stored under key, or ErrKeyNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key, overwriting any previous value.
	Set(ctx context.Context, key, value string) error

	// Remove deletes the value stored under key. Removing an absent key is
	// not an error.
	Remove(ctx context.Context, key string) error
}

// Keys the storefront core writes. No other code should touch them.
const (
	// KeyAccessToken holds the raw bearer credential, present iff a user is
	// authenticated.
	KeyAccessToken = "access_token"

	// KeyGuestCart holds the serialized cart of the anonymous visitor.
	KeyGuestCart = "guest_cart"

	// UserCartKeyPrefix prefixes the per-subject cart keys.
	UserCartKeyPrefix = "user_cart_"
)

// UserCartKey derives the storage key for a subject's cart partition.
func UserCartKey(subjectID string) string {
	return UserCartKeyPrefix + subjectID
}
