package order

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/indolink/backend/internal/domain/identity"
	"github.com/indolink/backend/internal/domain/order"
	"github.com/indolink/backend/internal/domain/shared"
)

// OrderService handles checkout and the per-role order views
type OrderService struct {
	orderRepo order.OrderRepository
	cartStore order.CartStore
	logger    *zap.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(orderRepo order.OrderRepository, cartStore order.CartStore, logger *zap.Logger) *OrderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderService{
		orderRepo: orderRepo,
		cartStore: cartStore,
		logger:    logger,
	}
}

// Checkout snapshots the buyer's cart into a PLACED order, then clears
// the cart. The two steps are separate writes: if clearing fails the
// order stands and the stale cart may produce a duplicate on retry, so
// the failure is logged loudly. An empty cart checks out into a
// zero-item order.
func (s *OrderService) Checkout(ctx context.Context, actor identity.Actor) (*OrderResponse, error) {
	if err := identity.Authorize(actor, identity.ActionCheckout); err != nil {
		return nil, err
	}

	cart, err := s.cartStore.Get(ctx, actor.ID)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		cart = order.NewCart(actor.ID)
	}

	o, err := order.NewOrderFromCart(cart)
	if err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, err
	}

	if err := s.cartStore.Delete(ctx, actor.ID); err != nil {
		s.logger.Error("order placed but cart not cleared",
			zap.String("order_id", o.ID.String()),
			zap.String("buyer_id", actor.ID.String()),
			zap.Error(err),
		)
	}

	s.logger.Info("order placed",
		zap.String("order_id", o.ID.String()),
		zap.String("buyer_id", actor.ID.String()),
		zap.Int("items", len(o.Items)),
	)
	return ToOrderResponse(o), nil
}

// GetByID returns one order. Buyers see only their own; admins see any.
func (s *OrderService) GetByID(ctx context.Context, actor identity.Actor, id uuid.UUID) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.Role == identity.RoleAdmin {
		if err := identity.Authorize(actor, identity.ActionOrderAdminView); err != nil {
			return nil, err
		}
	} else if err := identity.AuthorizeOwner(actor, identity.ActionOrderBuyerView, o.BuyerID); err != nil {
		return nil, err
	}
	return ToOrderResponse(o), nil
}

// ListForBuyer returns the buyer's order history.
//
// TODO: wire this to orderRepo.FindByBuyer once buyer-facing order
// history ships; until then the endpoint answers with an empty list.
func (s *OrderService) ListForBuyer(ctx context.Context, actor identity.Actor) ([]OrderResponse, error) {
	if err := identity.Authorize(actor, identity.ActionOrderBuyerView); err != nil {
		return nil, err
	}
	return []OrderResponse{}, nil
}

// ListForSeller returns orders reduced to the lines that belong to the
// viewing seller. The seller split happens at read time; orders are
// stored whole.
func (s *OrderService) ListForSeller(ctx context.Context, actor identity.Actor) ([]SellerOrderView, error) {
	if err := identity.Authorize(actor, identity.ActionOrderSellerView); err != nil {
		return nil, err
	}

	orders, err := s.orderRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]SellerOrderView, 0, len(orders))
	for i := range orders {
		items := orders[i].ItemsForSeller(actor.ID)
		if len(items) == 0 {
			continue
		}
		views = append(views, SellerOrderView{
			OrderID:    orders[i].ID,
			BuyerID:    orders[i].BuyerID,
			Status:     orders[i].Status,
			Items:      toOrderItemResponses(items),
			TotalItems: len(orders[i].Items),
			CreatedAt:  orders[i].CreatedAt,
		})
	}
	return views, nil
}

// ListForAdmin returns every order, newest first
func (s *OrderService) ListForAdmin(ctx context.Context, actor identity.Actor) ([]OrderResponse, error) {
	if err := identity.Authorize(actor, identity.ActionOrderAdminView); err != nil {
		return nil, err
	}

	orders, err := s.orderRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]OrderResponse, len(orders))
	for i := range orders {
		responses[i] = *ToOrderResponse(&orders[i])
	}
	return responses, nil
}
