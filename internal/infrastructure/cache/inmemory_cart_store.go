package cache

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/indolink/backend/internal/domain/order"
	"github.com/indolink/backend/internal/domain/shared"
)

// InMemoryCartStore implements CartStore with a process-local map.
// Used in tests and single-instance development setups; production
// deployments use RedisCartStore.
type InMemoryCartStore struct {
	mu    sync.RWMutex
	carts map[uuid.UUID]*order.Cart
}

// NewInMemoryCartStore creates a new InMemoryCartStore
func NewInMemoryCartStore() *InMemoryCartStore {
	return &InMemoryCartStore{carts: make(map[uuid.UUID]*order.Cart)}
}

// Get returns the buyer's cart, or shared.ErrNotFound when absent
func (s *InMemoryCartStore) Get(_ context.Context, buyerID uuid.UUID) (*order.Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cart, ok := s.carts[buyerID]
	if !ok {
		return nil, shared.ErrNotFound
	}
	copied := *cart
	copied.Items = append([]order.CartItem(nil), cart.Items...)
	return &copied, nil
}

// Save writes the buyer's cart, creating it if absent
func (s *InMemoryCartStore) Save(_ context.Context, cart *order.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *cart
	copied.Items = append([]order.CartItem(nil), cart.Items...)
	s.carts[cart.BuyerID] = &copied
	return nil
}

// Delete removes the buyer's cart; deleting an absent cart is not an error
func (s *InMemoryCartStore) Delete(_ context.Context, buyerID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.carts, buyerID)
	return nil
}

// Ensure InMemoryCartStore implements CartStore
var _ order.CartStore = (*InMemoryCartStore)(nil)
