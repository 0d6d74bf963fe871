package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/indolink/backend/internal/domain/order"
)

// AddCartItemRequest is the input for adding a cart line
type AddCartItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity"`
}

// UpdateCartItemRequest sets the quantity on an existing cart line
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// CartItemResponse is the API representation of a cart line
type CartItemResponse struct {
	ID        uuid.UUID       `json:"id"`
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	SellerID  uuid.UUID       `json:"seller_id"`
	Quantity  int             `json:"quantity"`
}

// CartResponse is the API representation of a buyer's cart
type CartResponse struct {
	BuyerID   uuid.UUID          `json:"buyer_id"`
	Items     []CartItemResponse `json:"items"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// ToCartResponse converts a domain cart to its response form
func ToCartResponse(c *order.Cart) *CartResponse {
	items := make([]CartItemResponse, len(c.Items))
	for i, item := range c.Items {
		items[i] = CartItemResponse{
			ID:        item.ID,
			ProductID: item.Product.ProductID,
			Name:      item.Product.Name,
			Price:     item.Product.Price,
			SellerID:  item.Product.SellerID,
			Quantity:  item.Quantity,
		}
	}
	return &CartResponse{
		BuyerID:   c.BuyerID,
		Items:     items,
		UpdatedAt: c.UpdatedAt,
	}
}

// OrderItemResponse is the API representation of an order line
type OrderItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	SellerID    uuid.UUID       `json:"seller_id"`
	Quantity    int             `json:"quantity"`
}

// OrderResponse is the API representation of a placed order
type OrderResponse struct {
	ID        uuid.UUID           `json:"id"`
	BuyerID   uuid.UUID           `json:"buyer_id"`
	Status    order.OrderStatus   `json:"status"`
	Items     []OrderItemResponse `json:"items"`
	CreatedAt time.Time           `json:"created_at"`
}

// ToOrderResponse converts a domain order to its response form
func ToOrderResponse(o *order.Order) *OrderResponse {
	return &OrderResponse{
		ID:        o.ID,
		BuyerID:   o.BuyerID,
		Status:    o.Status,
		Items:     toOrderItemResponses(o.Items),
		CreatedAt: o.CreatedAt,
	}
}

func toOrderItemResponses(items []order.OrderItem) []OrderItemResponse {
	responses := make([]OrderItemResponse, len(items))
	for i, item := range items {
		responses[i] = OrderItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			UnitPrice:   item.UnitPrice,
			SellerID:    item.SellerID,
			Quantity:    item.Quantity,
		}
	}
	return responses
}

// SellerOrderView is one order reduced to the lines that belong to the
// viewing seller. TotalItems counts every line on the order, not just
// the seller's, so the seller can tell a mixed order from one entirely
// theirs.
type SellerOrderView struct {
	OrderID    uuid.UUID           `json:"order_id"`
	BuyerID    uuid.UUID           `json:"buyer_id"`
	Status     order.OrderStatus   `json:"status"`
	Items      []OrderItemResponse `json:"items"`
	TotalItems int                 `json:"total_items"`
	CreatedAt  time.Time           `json:"created_at"`
}
