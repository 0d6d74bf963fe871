package identity

import (
	"github.com/google/uuid"

	"github.com/indolink/backend/internal/domain/shared"
)

// Actor is the authenticated identity attached to a request.
// A zero Actor means the request carried no valid credential.
type Actor struct {
	ID   uuid.UUID
	Role Role
}

// IsZero reports whether the actor is unauthenticated
func (a Actor) IsZero() bool {
	return a.ID == uuid.Nil
}

// Action names an operation gated by the access policy
type Action string

const (
	ActionProductCreate     Action = "product.create"
	ActionProductUpdate     Action = "product.update"
	ActionProductActivate   Action = "product.activate"
	ActionProductDelete     Action = "product.delete"
	ActionProductImage      Action = "product.image"
	ActionProductPurchase   Action = "product.purchase"
	ActionProductRelist     Action = "product.relist"
	ActionProductSellerView Action = "product.seller_view"
	ActionProductAdminView  Action = "product.admin_view"
	ActionProductStats      Action = "product.stats"
	ActionCategoryCreate    Action = "category.create"
	ActionCartView          Action = "cart.view"
	ActionCartModify        Action = "cart.modify"
	ActionCheckout          Action = "order.checkout"
	ActionOrderBuyerView    Action = "order.buyer_view"
	ActionOrderSellerView   Action = "order.seller_view"
	ActionOrderAdminView    Action = "order.admin_view"
)

// allowedRoles returns the role set declared for an action.
// The switch is exhaustive over every Action constant; an unknown
// action allows no role at all.
func allowedRoles(action Action) []Role {
	switch action {
	case ActionProductCreate:
		return []Role{RoleSeller, RoleAdmin}
	case ActionProductUpdate, ActionProductDelete, ActionProductImage:
		return []Role{RoleSeller, RoleAdmin}
	case ActionProductActivate:
		return []Role{RoleSeller}
	case ActionProductPurchase, ActionProductRelist:
		return []Role{RoleAdmin}
	case ActionProductSellerView, ActionProductStats:
		return []Role{RoleSeller, RoleAdmin}
	case ActionProductAdminView:
		return []Role{RoleAdmin}
	case ActionCategoryCreate:
		return []Role{RoleAdmin}
	case ActionCartView, ActionCartModify, ActionCheckout, ActionOrderBuyerView:
		return []Role{RoleBuyer}
	case ActionOrderSellerView:
		return []Role{RoleSeller}
	case ActionOrderAdminView:
		return []Role{RoleAdmin}
	}
	return nil
}

// Authorize decides whether an actor may perform an action.
// It is a pure decision function: no side effects, no retries.
func Authorize(actor Actor, action Action) error {
	if actor.IsZero() || !actor.Role.IsValid() {
		return shared.ErrUnauthorized
	}
	for _, role := range allowedRoles(action) {
		if actor.Role == role {
			return nil
		}
	}
	return shared.ErrForbidden
}

// AuthorizeOwner decides whether an actor may perform an owner-scoped
// mutation on a resource owned by ownerID. Admins bypass the ownership
// check; everyone else must own the resource.
func AuthorizeOwner(actor Actor, action Action, ownerID uuid.UUID) error {
	if err := Authorize(actor, action); err != nil {
		return err
	}
	if actor.Role == RoleAdmin {
		return nil
	}
	if actor.ID != ownerID {
		return shared.ErrForbidden
	}
	return nil
}
