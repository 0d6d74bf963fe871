package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/indolink/backend/internal/domain/shared"
)

// OrderStatus represents the status of an order
type OrderStatus string

// PLACED is the only status this core produces; further transitions
// (shipping, delivery) happen outside it.
const (
	OrderStatusPlaced OrderStatus = "PLACED"
)

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	return s == OrderStatusPlaced
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// OrderItem is one line snapshotted from the cart at checkout time.
// It is decoupled from later changes to the referenced product.
type OrderItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductName string          `gorm:"type:varchar(200);not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	SellerID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity    int             `gorm:"not null"`
	CreatedAt   time.Time
}

// TableName returns the table name for GORM
func (OrderItem) TableName() string {
	return "order_items"
}

// Order is the immutable record produced by checkout
type Order struct {
	shared.BaseAggregateRoot
	BuyerID uuid.UUID   `gorm:"type:uuid;not null;index"`
	Status  OrderStatus `gorm:"type:varchar(20);not null;default:'PLACED'"`
	Items   []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewOrderFromCart snapshots the cart's lines verbatim into a PLACED
// order. An empty cart produces a zero-item order.
func NewOrderFromCart(cart *Cart) (*Order, error) {
	if cart == nil || cart.BuyerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BUYER", "Buyer reference is required")
	}

	o := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		BuyerID:           cart.BuyerID,
		Status:            OrderStatusPlaced,
		Items:             make([]OrderItem, 0, len(cart.Items)),
	}
	for _, line := range cart.Items {
		o.Items = append(o.Items, OrderItem{
			ID:          uuid.New(),
			OrderID:     o.ID,
			ProductID:   line.Product.ProductID,
			ProductName: line.Product.Name,
			UnitPrice:   line.Product.Price,
			SellerID:    line.Product.SellerID,
			Quantity:    line.Quantity,
			CreatedAt:   o.CreatedAt,
		})
	}
	return o, nil
}

// ItemsForSeller returns the subset of lines whose product belongs to
// the given seller
func (o *Order) ItemsForSeller(sellerID uuid.UUID) []OrderItem {
	var items []OrderItem
	for _, item := range o.Items {
		if item.SellerID == sellerID {
			items = append(items, item)
		}
	}
	return items
}
