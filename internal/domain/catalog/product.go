package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/indolink/backend/internal/domain/shared"
)

// ProductStatus represents the lifecycle status of a listing
type ProductStatus string

const (
	ProductStatusDraft    ProductStatus = "DRAFT"
	ProductStatusActive   ProductStatus = "ACTIVE"
	ProductStatusSold     ProductStatus = "SOLD"
	ProductStatusInactive ProductStatus = "INACTIVE"
)

// IsValid checks if the status is a valid ProductStatus
func (s ProductStatus) IsValid() bool {
	switch s {
	case ProductStatusDraft, ProductStatusActive, ProductStatusSold, ProductStatusInactive:
		return true
	}
	return false
}

// String returns the string representation of ProductStatus
func (s ProductStatus) String() string {
	return string(s)
}

// ProductImage is one entry in a product's ordered image list.
// At most one image per product carries the primary flag.
type ProductImage struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index"`
	URL       string    `gorm:"type:varchar(500);not null"`
	IsPrimary bool      `gorm:"not null;default:false"`
	SortOrder int       `gorm:"not null;default:0"`
	CreatedAt time.Time
}

// TableName returns the table name for GORM
func (ProductImage) TableName() string {
	return "product_images"
}

// Product is a marketplace listing. It is the aggregate root of the
// listing lifecycle: created by a seller, optionally purchased by an
// admin (INACTIVE) and re-listed at a new price (ACTIVE again).
type Product struct {
	shared.BaseAggregateRoot
	Name        string          `gorm:"type:varchar(200);not null"`
	Description string          `gorm:"type:text;not null"`
	CategoryID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Price       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Quantity    int             `gorm:"not null;default:1"`
	Status      ProductStatus   `gorm:"type:varchar(20);not null;default:'DRAFT';index"`
	SellerID    uuid.UUID       `gorm:"type:uuid;not null;index"`

	// AdminID is set exactly when the product has gone through a
	// purchase transition; RelistPrice only after a relist.
	AdminID     *uuid.UUID       `gorm:"type:uuid;index"`
	RelistPrice *decimal.Decimal `gorm:"type:decimal(18,4)"`

	// Analysis holds the market-analysis blob produced by an external
	// process. Its shape is not interpreted here, only stored.
	Analysis         string           `gorm:"type:jsonb"`
	MarketTrend      string           `gorm:"type:varchar(50)"`
	RecommendedPrice *decimal.Decimal `gorm:"type:decimal(18,4)"`

	Images []ProductImage `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new listing owned by sellerID. Status defaults
// to DRAFT; ACTIVE is accepted when the seller lists immediately.
func NewProduct(sellerID, categoryID uuid.UUID, name, description string, price decimal.Decimal, quantity int, status ProductStatus) (*Product, error) {
	if sellerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SELLER", "Seller reference is required")
	}
	if err := validateName(name); err != nil {
		return nil, err
	}
	if err := validateDescription(description); err != nil {
		return nil, err
	}
	if categoryID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Category reference is required")
	}
	if err := validatePrice(price); err != nil {
		return nil, err
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be a positive integer")
	}
	if status == "" {
		status = ProductStatusDraft
	}
	if status != ProductStatusDraft && status != ProductStatusActive {
		return nil, shared.NewDomainError("INVALID_STATUS", "New listings can only be DRAFT or ACTIVE")
	}

	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		Description:       description,
		CategoryID:        categoryID,
		Price:             price,
		Quantity:          quantity,
		Status:            status,
		SellerID:          sellerID,
		Analysis:          "{}",
	}, nil
}

// Rename updates the product name
func (p *Product) Rename(name string) error {
	if err := validateName(name); err != nil {
		return err
	}
	p.Name = strings.TrimSpace(name)
	p.touch()
	return nil
}

// SetDescription updates the product description
func (p *Product) SetDescription(description string) error {
	if err := validateDescription(description); err != nil {
		return err
	}
	p.Description = description
	p.touch()
	return nil
}

// SetCategory moves the product to another category
func (p *Product) SetCategory(categoryID uuid.UUID) error {
	if categoryID == uuid.Nil {
		return shared.NewDomainError("INVALID_CATEGORY", "Category reference is required")
	}
	p.CategoryID = categoryID
	p.touch()
	return nil
}

// SetPrice updates the seller price
func (p *Product) SetPrice(price decimal.Decimal) error {
	if err := validatePrice(price); err != nil {
		return err
	}
	p.Price = price
	p.touch()
	return nil
}

// SetQuantity updates the available quantity
func (p *Product) SetQuantity(quantity int) error {
	if quantity < 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be negative")
	}
	p.Quantity = quantity
	p.touch()
	return nil
}

// SetAnalysis stores the externally produced market-analysis payload
func (p *Product) SetAnalysis(analysis string) error {
	if analysis == "" {
		analysis = "{}"
	}
	trimmed := strings.TrimSpace(analysis)
	if !strings.HasPrefix(trimmed, "{") || !strings.HasSuffix(trimmed, "}") {
		return shared.NewDomainError("INVALID_ANALYSIS", "Analysis must be a JSON object")
	}
	p.Analysis = trimmed
	p.touch()
	return nil
}

// Activate moves a DRAFT listing to ACTIVE (seller action)
func (p *Product) Activate() error {
	if p.Status != ProductStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Only a DRAFT listing can be activated")
	}
	p.Status = ProductStatusActive
	p.touch()
	return nil
}

// MarkPurchased records an admin purchase: the listing goes INACTIVE
// and the purchasing admin is recorded. There is no current-status
// guard; a repeated purchase overwrites the admin reference, which the
// caller is expected to log.
func (p *Product) MarkPurchased(adminID uuid.UUID) error {
	if adminID == uuid.Nil {
		return shared.NewDomainError("INVALID_ADMIN", "Admin reference is required")
	}
	p.Status = ProductStatusInactive
	p.AdminID = &adminID
	p.touch()
	return nil
}

// Relist returns a purchased listing to ACTIVE, optionally at a new
// price. The transition is not guarded by the current status.
func (p *Product) Relist(relistPrice *decimal.Decimal) error {
	if relistPrice != nil {
		if err := validatePrice(*relistPrice); err != nil {
			return shared.NewDomainError("INVALID_RELIST_PRICE", "Relist price must be greater than zero")
		}
		price := *relistPrice
		p.RelistPrice = &price
	}
	p.Status = ProductStatusActive
	p.touch()
	return nil
}

// AddImage appends an image to the ordered list. When primary is set,
// any previously primary image is demoted so at most one remains.
func (p *Product) AddImage(url string, primary bool) (*ProductImage, error) {
	if strings.TrimSpace(url) == "" {
		return nil, shared.NewDomainError("INVALID_IMAGE", "Image URL cannot be empty")
	}
	if primary {
		for i := range p.Images {
			p.Images[i].IsPrimary = false
		}
	}
	img := ProductImage{
		ID:        uuid.New(),
		ProductID: p.ID,
		URL:       url,
		IsPrimary: primary,
		SortOrder: len(p.Images),
		CreatedAt: time.Now(),
	}
	p.Images = append(p.Images, img)
	p.touch()
	return &p.Images[len(p.Images)-1], nil
}

// RemoveImage deletes the matching image. Removing an unknown image id
// is a no-op. If the removed image was primary, no other image is
// promoted in its place.
func (p *Product) RemoveImage(imageID uuid.UUID) {
	for i := range p.Images {
		if p.Images[i].ID == imageID {
			p.Images = append(p.Images[:i], p.Images[i+1:]...)
			p.touch()
			return
		}
	}
}

// PrimaryImageURL returns the primary image URL, falling back to the
// first image, or empty when the listing has no images.
func (p *Product) PrimaryImageURL() string {
	for _, img := range p.Images {
		if img.IsPrimary {
			return img.URL
		}
	}
	if len(p.Images) > 0 {
		return p.Images[0].URL
	}
	return ""
}

// IsOwnedBy reports whether sellerID owns this listing
func (p *Product) IsOwnedBy(sellerID uuid.UUID) bool {
	return p.SellerID == sellerID
}

// IsClaimed reports whether an admin has purchased this listing
func (p *Product) IsClaimed() bool {
	return p.AdminID != nil
}

// EffectivePrice is the price a buyer pays: the relist price once an
// admin has re-listed, the seller price otherwise.
func (p *Product) EffectivePrice() decimal.Decimal {
	if p.RelistPrice != nil {
		return *p.RelistPrice
	}
	return p.Price
}

func (p *Product) touch() {
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}

func validateDescription(description string) error {
	if strings.TrimSpace(description) == "" {
		return shared.NewDomainError("INVALID_DESCRIPTION", "Product description cannot be empty")
	}
	return nil
}

func validatePrice(price decimal.Decimal) error {
	if price.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_PRICE", "Price must be greater than zero")
	}
	return nil
}
