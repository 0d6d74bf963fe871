package order

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrderFromCart(t *testing.T) {
	t.Run("snapshots cart lines verbatim", func(t *testing.T) {
		buyerID := uuid.New()
		cart := NewCart(buyerID)
		refA := testProductRef()
		refB := testProductRef()
		cart.AddItem(refA, 1)
		cart.AddItem(refB, 4)

		o, err := NewOrderFromCart(cart)
		require.NoError(t, err)

		assert.Equal(t, buyerID, o.BuyerID)
		assert.Equal(t, OrderStatusPlaced, o.Status)
		require.Len(t, o.Items, 2)
		assert.Equal(t, refA.ProductID, o.Items[0].ProductID)
		assert.Equal(t, 1, o.Items[0].Quantity)
		assert.Equal(t, refB.ProductID, o.Items[1].ProductID)
		assert.Equal(t, 4, o.Items[1].Quantity)
		assert.True(t, o.Items[0].UnitPrice.Equal(refA.Price))
		assert.False(t, o.CreatedAt.IsZero())
	})

	t.Run("empty cart yields zero-item order", func(t *testing.T) {
		o, err := NewOrderFromCart(NewCart(uuid.New()))
		require.NoError(t, err)
		assert.Empty(t, o.Items)
		assert.Equal(t, OrderStatusPlaced, o.Status)
	})

	t.Run("nil cart is rejected", func(t *testing.T) {
		_, err := NewOrderFromCart(nil)
		require.Error(t, err)
	})
}

func TestOrderItemsForSeller(t *testing.T) {
	sellerA := uuid.New()
	sellerB := uuid.New()

	cart := NewCart(uuid.New())
	cart.AddItem(CartProductRef{ProductID: uuid.New(), Name: "A", Price: decimal.NewFromInt(10), SellerID: sellerA}, 1)
	cart.AddItem(CartProductRef{ProductID: uuid.New(), Name: "B", Price: decimal.NewFromInt(20), SellerID: sellerB}, 2)
	cart.AddItem(CartProductRef{ProductID: uuid.New(), Name: "C", Price: decimal.NewFromInt(30), SellerID: sellerA}, 3)

	o, err := NewOrderFromCart(cart)
	require.NoError(t, err)

	itemsA := o.ItemsForSeller(sellerA)
	require.Len(t, itemsA, 2)
	assert.Equal(t, "A", itemsA[0].ProductName)
	assert.Equal(t, "C", itemsA[1].ProductName)

	assert.Len(t, o.ItemsForSeller(sellerB), 1)
	assert.Empty(t, o.ItemsForSeller(uuid.New()))
}
