package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	orderapp "github.com/indolink/backend/internal/application/order"
)

// OrderHandler handles checkout and the per-role order views
type OrderHandler struct {
	BaseHandler
	orderService *orderapp.OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *orderapp.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// RegisterRoutes mounts the order endpoints
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/orders")
	orders.POST("/checkout", h.Checkout)
	orders.GET("", h.ListForBuyer)
	orders.GET("/seller", h.ListForSeller)
	orders.GET("/admin", h.ListForAdmin)
	orders.GET("/:id", h.GetByID)
}

// Checkout turns the caller's cart into an order
func (h *OrderHandler) Checkout(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	order, err := h.orderService.Checkout(c.Request.Context(), actor)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, order)
}

// ListForBuyer returns the caller's order history
func (h *OrderHandler) ListForBuyer(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	orders, err := h.orderService.ListForBuyer(c.Request.Context(), actor)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, orders)
}

// ListForSeller returns the order lines carrying the caller's products
func (h *OrderHandler) ListForSeller(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	views, err := h.orderService.ListForSeller(c.Request.Context(), actor)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, views)
}

// ListForAdmin returns all orders
func (h *OrderHandler) ListForAdmin(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	orders, err := h.orderService.ListForAdmin(c.Request.Context(), actor)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, orders)
}

// GetByID returns a single order for its buyer or an admin
func (h *OrderHandler) GetByID(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	order, err := h.orderService.GetByID(c.Request.Context(), actor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}
