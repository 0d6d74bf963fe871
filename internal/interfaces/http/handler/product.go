package handler

import (
	"context"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	catalogapp "github.com/indolink/backend/internal/application/catalog"
	"github.com/indolink/backend/internal/domain/identity"
)

// RelistProductRequest optionally overrides the price when an admin puts
// a purchased listing back on the market
type RelistProductRequest struct {
	RelistPrice *decimal.Decimal `json:"relist_price"`
}

// ProductHandler handles listing endpoints. The public catalog reads are
// anonymous; everything else resolves the actor and lets the application
// service enforce who may do what.
type ProductHandler struct {
	BaseHandler
	productService *catalogapp.ProductService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService *catalogapp.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// RegisterRoutes mounts the product endpoints
func (h *ProductHandler) RegisterRoutes(rg *gin.RouterGroup) {
	products := rg.Group("/products")
	products.GET("", h.List)
	products.GET("/unclaimed", h.ListUnclaimed)
	products.GET("/:id", h.GetByID)
	products.POST("", h.Create)
	products.PUT("/:id", h.Update)
	products.DELETE("/:id", h.Delete)
	products.POST("/:id/activate", h.Activate)
	products.POST("/:id/purchase", h.Purchase)
	products.POST("/:id/relist", h.Relist)
	products.POST("/:id/images", h.UploadImage)
	products.DELETE("/:id/images/:image_id", h.RemoveImage)

	sellers := rg.Group("/sellers")
	sellers.GET("/:id/products", h.ListForSeller)
	sellers.GET("/:id/stats", h.Stats)
}

// List returns the public catalog, active listings by default
func (h *ProductHandler) List(c *gin.Context) {
	var filter catalogapp.ProductListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	products, err := h.productService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, products)
}

// ListUnclaimed returns listings no admin has bought yet
func (h *ProductHandler) ListUnclaimed(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	products, err := h.productService.ListUnclaimed(c.Request.Context(), actor)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, products)
}

// GetByID returns a single listing
func (h *ProductHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	product, err := h.productService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

// Create creates a new listing
func (h *ProductHandler) Create(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	var req catalogapp.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	product, err := h.productService.Create(c.Request.Context(), actor, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, product)
}

// Update applies a partial update to a listing
func (h *ProductHandler) Update(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	var req catalogapp.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	product, err := h.productService.Update(c.Request.Context(), actor, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

// Delete removes a listing
func (h *ProductHandler) Delete(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	if err := h.productService.Delete(c.Request.Context(), actor, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Activate moves a draft listing onto the market
func (h *ProductHandler) Activate(c *gin.Context) {
	h.transition(c, h.productService.Activate)
}

// Purchase records an admin buying out a listing
func (h *ProductHandler) Purchase(c *gin.Context) {
	h.transition(c, h.productService.Purchase)
}

// Relist puts a purchased listing back on the market, optionally at a
// new price
func (h *ProductHandler) Relist(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	// Body is optional; a bare relist keeps the original price
	var req RelistProductRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.BadRequest(c, err.Error())
			return
		}
	}

	product, err := h.productService.Relist(c.Request.Context(), actor, id, req.RelistPrice)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

// UploadImage attaches an image to a listing. Expects a multipart form
// with a "file" part and an optional "primary" flag.
func (h *ProductHandler) UploadImage(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.BadRequest(c, "Image file is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.HandleError(c, err)
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	primary := c.PostForm("primary") == "true"
	contentType := fileHeader.Header.Get("Content-Type")

	product, err := h.productService.AddImage(c.Request.Context(), actor, id, fileHeader.Filename, data, contentType, primary)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, product)
}

// RemoveImage detaches an image from a listing
func (h *ProductHandler) RemoveImage(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	imageID, err := uuid.Parse(c.Param("image_id"))
	if err != nil {
		h.BadRequest(c, "Invalid image ID format")
		return
	}

	product, err := h.productService.RemoveImage(c.Request.Context(), actor, id, imageID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

// ListForSeller returns a seller's own listings, drafts included
func (h *ProductHandler) ListForSeller(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	sellerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid seller ID format")
		return
	}

	products, err := h.productService.ListForSeller(c.Request.Context(), actor, sellerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, products)
}

// Stats returns a seller's listing summary
func (h *ProductHandler) Stats(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	sellerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid seller ID format")
		return
	}

	stats, err := h.productService.Stats(c.Request.Context(), actor, sellerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, stats)
}

type transitionFunc func(ctx context.Context, actor identity.Actor, id uuid.UUID) (*catalogapp.ProductResponse, error)

// transition handles the id-only state change endpoints
func (h *ProductHandler) transition(c *gin.Context, fn transitionFunc) {
	actor, err := getActor(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	product, err := fn(c.Request.Context(), actor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}
