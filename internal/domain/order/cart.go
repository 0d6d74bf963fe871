package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartProductRef is the product snapshot a cart line points at. It is
// captured when the line is added so later listing edits do not change
// what the buyer sees in the cart.
type CartProductRef struct {
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	SellerID  uuid.UUID       `json:"seller_id"`
}

// CartItem is one buyer-chosen product + quantity pair pending checkout
type CartItem struct {
	ID       uuid.UUID      `json:"id"`
	Product  CartProductRef `json:"product"`
	Quantity int            `json:"quantity"`
}

// Cart is the mutable per-buyer cart. There is at most one cart per
// buyer id at any time; it is created lazily on first add and emptied
// on checkout.
type Cart struct {
	BuyerID   uuid.UUID  `json:"buyer_id"`
	Items     []CartItem `json:"items"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// NewCart creates an empty cart for a buyer
func NewCart(buyerID uuid.UUID) *Cart {
	return &Cart{
		BuyerID:   buyerID,
		Items:     []CartItem{},
		UpdatedAt: time.Now(),
	}
}

// AddItem appends a new line with a fresh line id. Repeated adds of the
// same product create separate lines rather than merging quantities.
// A quantity below one defaults to one.
func (c *Cart) AddItem(product CartProductRef, quantity int) *CartItem {
	if quantity < 1 {
		quantity = 1
	}
	item := CartItem{
		ID:       uuid.New(),
		Product:  product,
		Quantity: quantity,
	}
	c.Items = append(c.Items, item)
	c.UpdatedAt = time.Now()
	return &c.Items[len(c.Items)-1]
}

// UpdateItem sets the quantity on the matching line as-is; a zero
// quantity is stored, not removed. Returns false when no line matches,
// in which case the cart is unchanged.
func (c *Cart) UpdateItem(itemID uuid.UUID, quantity int) bool {
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			c.Items[i].Quantity = quantity
			c.UpdatedAt = time.Now()
			return true
		}
	}
	return false
}

// RemoveItem deletes the matching line; unknown line ids are a no-op
func (c *Cart) RemoveItem(itemID uuid.UUID) {
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			c.UpdatedAt = time.Now()
			return
		}
	}
}

// IsEmpty reports whether the cart has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}
