package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	orderapp "github.com/indolink/backend/internal/application/order"
)

// CartHandler handles the buyer cart endpoints
type CartHandler struct {
	BaseHandler
	cartService *orderapp.CartService
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(cartService *orderapp.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// RegisterRoutes mounts the cart endpoints
func (h *CartHandler) RegisterRoutes(rg *gin.RouterGroup) {
	cart := rg.Group("/cart")
	cart.GET("", h.Get)
	cart.POST("/items", h.AddItem)
	cart.PUT("/items/:item_id", h.UpdateItem)
	cart.DELETE("/items/:item_id", h.RemoveItem)
}

// Get returns the caller's cart, empty if they have none yet
func (h *CartHandler) Get(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	cart, err := h.cartService.Get(c.Request.Context(), actor)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, cart)
}

// AddItem appends a product line to the cart
func (h *CartHandler) AddItem(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	var req orderapp.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	cart, err := h.cartService.AddItem(c.Request.Context(), actor, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, cart)
}

// UpdateItem sets the quantity on a cart line
func (h *CartHandler) UpdateItem(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	itemID, err := uuid.Parse(c.Param("item_id"))
	if err != nil {
		h.BadRequest(c, "Invalid cart item ID format")
		return
	}

	var req orderapp.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	cart, err := h.cartService.UpdateItem(c.Request.Context(), actor, itemID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, cart)
}

// RemoveItem drops a cart line
func (h *CartHandler) RemoveItem(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	itemID, err := uuid.Parse(c.Param("item_id"))
	if err != nil {
		h.BadRequest(c, "Invalid cart item ID format")
		return
	}

	cart, err := h.cartService.RemoveItem(c.Request.Context(), actor, itemID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, cart)
}
