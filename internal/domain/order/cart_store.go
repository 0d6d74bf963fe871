package order

import (
	"context"

	"github.com/google/uuid"
)

// CartStore is the keyed store holding one cart per buyer id. Backed by
// an external keyed store rather than process memory so restarts and
// multi-instance deployments do not lose carts.
type CartStore interface {
	// Get returns the buyer's cart, or shared.ErrNotFound when the
	// buyer has no cart
	Get(ctx context.Context, buyerID uuid.UUID) (*Cart, error)

	// Save writes the buyer's cart, creating it if absent
	Save(ctx context.Context, cart *Cart) error

	// Delete removes the buyer's cart; deleting an absent cart is not
	// an error
	Delete(ctx context.Context, buyerID uuid.UUID) error
}
