package cart

import "context"

// Store persists carts keyed by the opaque cart token. Implementations must
// treat a missing key as an empty cart, not an error.
type Store interface {
	Get(ctx context.Context, token string) (*Cart, error)
	Save(ctx context.Context, token string, cart *Cart) error
	Clear(ctx context.Context, token string) error
}
