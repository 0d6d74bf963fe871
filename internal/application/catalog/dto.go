package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/indolink/backend/internal/domain/catalog"
)

// CreateCategoryRequest is the input for creating a category
type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// CategoryResponse is the API representation of a category
type CategoryResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToCategoryResponse converts a domain category to its response form
func ToCategoryResponse(c *catalog.Category) *CategoryResponse {
	return &CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
	}
}

// CreateProductRequest is the input for creating a listing.
// SellerID is only honored for admin callers listing on behalf of a
// seller; everyone else lists as themselves.
type CreateProductRequest struct {
	Name        string                `json:"name" binding:"required"`
	Description string                `json:"description" binding:"required"`
	CategoryID  uuid.UUID             `json:"category_id" binding:"required"`
	Price       decimal.Decimal       `json:"price" binding:"required"`
	Quantity    int                   `json:"quantity"`
	Status      catalog.ProductStatus `json:"status"`
	SellerID    *uuid.UUID            `json:"seller_id"`
}

// UpdateProductRequest carries partial updates; nil fields are left unchanged
type UpdateProductRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	CategoryID  *uuid.UUID       `json:"category_id"`
	Price       *decimal.Decimal `json:"price"`
	Quantity    *int             `json:"quantity"`
	Analysis    *string          `json:"analysis"`
}

// ProductListFilter narrows the public catalog listing
type ProductListFilter struct {
	Page       int        `form:"page"`
	PageSize   int        `form:"page_size"`
	CategoryID *uuid.UUID `form:"category_id"`
	Status     string     `form:"status"`
}

// ProductImageResponse is the API representation of a product image
type ProductImageResponse struct {
	ID        uuid.UUID `json:"id"`
	URL       string    `json:"url"`
	IsPrimary bool      `json:"is_primary"`
	SortOrder int       `json:"sort_order"`
}

// ProductResponse is the API representation of a listing. Category and
// seller names are joined in at read time; they are not stored on the
// product row.
type ProductResponse struct {
	ID               uuid.UUID              `json:"id"`
	Name             string                 `json:"name"`
	Description      string                 `json:"description"`
	CategoryID       uuid.UUID              `json:"category_id"`
	CategoryName     string                 `json:"category_name,omitempty"`
	Price            decimal.Decimal        `json:"price"`
	RelistPrice      *decimal.Decimal       `json:"relist_price,omitempty"`
	EffectivePrice   decimal.Decimal        `json:"effective_price"`
	Quantity         int                    `json:"quantity"`
	Status           catalog.ProductStatus  `json:"status"`
	SellerID         uuid.UUID              `json:"seller_id"`
	SellerName       string                 `json:"seller_name,omitempty"`
	AdminID          *uuid.UUID             `json:"admin_id,omitempty"`
	MarketTrend      string                 `json:"market_trend,omitempty"`
	RecommendedPrice *decimal.Decimal       `json:"recommended_price,omitempty"`
	PrimaryImageURL  string                 `json:"primary_image_url,omitempty"`
	Images           []ProductImageResponse `json:"images"`
	CreatedAt        time.Time              `json:"created_at"`
	UpdatedAt        time.Time              `json:"updated_at"`
}

// ToProductResponse converts a domain product to its response form
func ToProductResponse(p *catalog.Product) *ProductResponse {
	images := make([]ProductImageResponse, len(p.Images))
	for i, img := range p.Images {
		images[i] = ProductImageResponse{
			ID:        img.ID,
			URL:       img.URL,
			IsPrimary: img.IsPrimary,
			SortOrder: img.SortOrder,
		}
	}

	return &ProductResponse{
		ID:               p.ID,
		Name:             p.Name,
		Description:      p.Description,
		CategoryID:       p.CategoryID,
		Price:            p.Price,
		RelistPrice:      p.RelistPrice,
		EffectivePrice:   p.EffectivePrice(),
		Quantity:         p.Quantity,
		Status:           p.Status,
		SellerID:         p.SellerID,
		AdminID:          p.AdminID,
		MarketTrend:      p.MarketTrend,
		RecommendedPrice: p.RecommendedPrice,
		PrimaryImageURL:  p.PrimaryImageURL(),
		Images:           images,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

// SellerStats summarizes a seller's listing activity. Revenue, order
// and rating aggregates are placeholders until order reporting and
// reviews land.
type SellerStats struct {
	TotalProducts int64           `json:"total_products"`
	DraftCount    int64           `json:"draft_count"`
	ActiveCount   int64           `json:"active_count"`
	SoldCount     int64           `json:"sold_count"`
	InactiveCount int64           `json:"inactive_count"`
	RecentCount   int64           `json:"recent_count"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	TotalOrders   int64           `json:"total_orders"`
	AverageRating float64         `json:"average_rating"`
}
