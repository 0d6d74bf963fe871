package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/indolink/backend/internal/domain/order"
	"github.com/indolink/backend/internal/domain/shared"
)

const cartKeyPrefix = "cart:"

// RedisCartStore implements CartStore on Redis. Carts are stored as one
// JSON value per buyer so a cart read or write is a single round trip.
type RedisCartStore struct {
	client *redis.Client
	ttl    time.Duration // 0 means carts never expire
}

// NewRedisCartStore creates a new RedisCartStore
func NewRedisCartStore(client *redis.Client, ttl time.Duration) *RedisCartStore {
	return &RedisCartStore{client: client, ttl: ttl}
}

// Get returns the buyer's cart, or shared.ErrNotFound when absent
func (s *RedisCartStore) Get(ctx context.Context, buyerID uuid.UUID) (*order.Cart, error) {
	data, err := s.client.Get(ctx, cartKey(buyerID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	var cart order.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cart: %w", err)
	}
	return &cart, nil
}

// Save writes the buyer's cart, creating it if absent
func (s *RedisCartStore) Save(ctx context.Context, cart *order.Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("failed to marshal cart: %w", err)
	}
	if err := s.client.Set(ctx, cartKey(cart.BuyerID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

// Delete removes the buyer's cart; deleting an absent cart is not an error
func (s *RedisCartStore) Delete(ctx context.Context, buyerID uuid.UUID) error {
	if err := s.client.Del(ctx, cartKey(buyerID)).Err(); err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}
	return nil
}

func cartKey(buyerID uuid.UUID) string {
	return cartKeyPrefix + buyerID.String()
}

// Ensure RedisCartStore implements CartStore
var _ order.CartStore = (*RedisCartStore)(nil)
