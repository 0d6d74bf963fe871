package order

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/indolink/backend/internal/domain/catalog"
	"github.com/indolink/backend/internal/domain/identity"
	"github.com/indolink/backend/internal/domain/order"
	"github.com/indolink/backend/internal/domain/shared"
)

// CartService handles the buyer's cart. Carts are created lazily on the
// first add and live in the cart store keyed by buyer id.
type CartService struct {
	cartStore   order.CartStore
	productRepo catalog.ProductRepository
	logger      *zap.Logger
}

// NewCartService creates a new CartService
func NewCartService(cartStore order.CartStore, productRepo catalog.ProductRepository, logger *zap.Logger) *CartService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CartService{
		cartStore:   cartStore,
		productRepo: productRepo,
		logger:      logger,
	}
}

// Get returns the buyer's cart. A buyer without a cart sees an empty
// one; nothing is persisted until the first add.
func (s *CartService) Get(ctx context.Context, actor identity.Actor) (*CartResponse, error) {
	if err := identity.Authorize(actor, identity.ActionCartView); err != nil {
		return nil, err
	}

	cart, err := s.loadOrEmpty(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	return ToCartResponse(cart), nil
}

// AddItem appends a line snapshotting the product's current name,
// effective price and seller. Adding the same product twice makes two
// lines.
func (s *CartService) AddItem(ctx context.Context, actor identity.Actor, req AddCartItemRequest) (*CartResponse, error) {
	if err := identity.Authorize(actor, identity.ActionCartModify); err != nil {
		return nil, err
	}

	product, err := s.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	cart, err := s.loadOrEmpty(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	cart.AddItem(order.CartProductRef{
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.EffectivePrice(),
		SellerID:  product.SellerID,
	}, req.Quantity)

	if err := s.cartStore.Save(ctx, cart); err != nil {
		return nil, err
	}
	return ToCartResponse(cart), nil
}

// UpdateItem sets the quantity on a cart line as-is, zero included.
// An unknown line id leaves the cart untouched and is not an error.
func (s *CartService) UpdateItem(ctx context.Context, actor identity.Actor, itemID uuid.UUID, req UpdateCartItemRequest) (*CartResponse, error) {
	if err := identity.Authorize(actor, identity.ActionCartModify); err != nil {
		return nil, err
	}

	cart, err := s.loadOrEmpty(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	if cart.UpdateItem(itemID, req.Quantity) {
		if err := s.cartStore.Save(ctx, cart); err != nil {
			return nil, err
		}
	} else {
		s.logger.Debug("cart line not found on update, leaving cart unchanged",
			zap.String("buyer_id", actor.ID.String()),
			zap.String("item_id", itemID.String()),
		)
	}
	return ToCartResponse(cart), nil
}

// RemoveItem deletes a cart line; unknown line ids are a no-op
func (s *CartService) RemoveItem(ctx context.Context, actor identity.Actor, itemID uuid.UUID) (*CartResponse, error) {
	if err := identity.Authorize(actor, identity.ActionCartModify); err != nil {
		return nil, err
	}

	cart, err := s.loadOrEmpty(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	cart.RemoveItem(itemID)
	if err := s.cartStore.Save(ctx, cart); err != nil {
		return nil, err
	}
	return ToCartResponse(cart), nil
}

// loadOrEmpty fetches the buyer's cart, substituting a fresh empty cart
// when none exists yet
func (s *CartService) loadOrEmpty(ctx context.Context, buyerID uuid.UUID) (*order.Cart, error) {
	cart, err := s.cartStore.Get(ctx, buyerID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return order.NewCart(buyerID), nil
		}
		return nil, err
	}
	return cart, nil
}
