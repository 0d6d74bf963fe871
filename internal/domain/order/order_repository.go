package order

import (
	"context"

	"github.com/google/uuid"
)

// OrderRepository defines the interface for order persistence. Orders
// are written exactly once at checkout and never mutated afterwards.
type OrderRepository interface {
	// Save persists a new order together with its items
	Save(ctx context.Context, order *Order) error

	// FindByID finds an order by its ID, items included
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindAll returns all orders, newest first
	FindAll(ctx context.Context) ([]Order, error)

	// FindByBuyer returns a buyer's orders, newest first
	FindByBuyer(ctx context.Context, buyerID uuid.UUID) ([]Order, error)
}
