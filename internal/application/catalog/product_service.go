package catalog

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/indolink/backend/internal/domain/catalog"
	"github.com/indolink/backend/internal/domain/identity"
	"github.com/indolink/backend/internal/domain/shared"
)

// ImageStorage stores product image bytes and hands back an opaque
// public URL. The catalog treats the URL as a value; it never parses it.
type ImageStorage interface {
	// Upload writes the image under key and returns its public URL
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)

	// Delete removes the image stored under key
	Delete(ctx context.Context, key string) error
}

// ProductService handles the listing lifecycle: seller drafts, seller
// activation, admin purchase and admin relisting.
type ProductService struct {
	productRepo  catalog.ProductRepository
	categoryRepo catalog.CategoryRepository
	userRepo     identity.UserRepository
	storage      ImageStorage
	logger       *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(
	productRepo catalog.ProductRepository,
	categoryRepo catalog.CategoryRepository,
	userRepo identity.UserRepository,
	storage ImageStorage,
	logger *zap.Logger,
) *ProductService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		userRepo:     userRepo,
		storage:      storage,
		logger:       logger,
	}
}

// Create creates a new listing. Sellers list as themselves; admins may
// list on behalf of a seller by passing SellerID.
func (s *ProductService) Create(ctx context.Context, actor identity.Actor, req CreateProductRequest) (*ProductResponse, error) {
	if err := identity.Authorize(actor, identity.ActionProductCreate); err != nil {
		return nil, err
	}

	// Admins list on behalf of a seller and must name one explicitly
	sellerID := actor.ID
	if actor.Role == identity.RoleAdmin {
		if req.SellerID == nil {
			return nil, shared.NewDomainError("INVALID_SELLER", "Admin listings must name a seller")
		}
		sellerID = *req.SellerID
	}

	exists, err := s.categoryRepo.ExistsByID(ctx, req.CategoryID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Category does not exist")
	}

	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}

	product, err := catalog.NewProduct(sellerID, req.CategoryID, req.Name, req.Description, req.Price, quantity, req.Status)
	if err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("product created",
		zap.String("product_id", product.ID.String()),
		zap.String("seller_id", sellerID.String()),
		zap.String("status", product.Status.String()),
	)
	return s.withNames(ctx, product), nil
}

// GetByID retrieves a listing with category and seller names joined in
func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.withNames(ctx, product), nil
}

// List returns the public catalog. Buyers only ever see ACTIVE
// listings; an explicit status filter may narrow further views.
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) ([]ProductResponse, error) {
	domainFilter := shared.DefaultFilter()
	domainFilter.Page = filter.Page
	domainFilter.PageSize = filter.PageSize

	status := catalog.ProductStatus(filter.Status)
	if status == "" {
		status = catalog.ProductStatusActive
	}
	if !status.IsValid() {
		return nil, shared.NewDomainError("INVALID_STATUS", "Unknown product status filter")
	}
	domainFilter.Filters["status"] = status
	if filter.CategoryID != nil {
		domainFilter.Filters["category_id"] = *filter.CategoryID
	}

	products, err := s.productRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	return s.toResponses(ctx, products), nil
}

// ListForSeller returns a seller's own listings. Sellers may only view
// their own; admins may view any seller's.
func (s *ProductService) ListForSeller(ctx context.Context, actor identity.Actor, sellerID uuid.UUID) ([]ProductResponse, error) {
	if err := identity.AuthorizeOwner(actor, identity.ActionProductSellerView, sellerID); err != nil {
		return nil, err
	}

	products, err := s.productRepo.FindBySeller(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	return s.toResponses(ctx, products), nil
}

// ListUnclaimed returns seller listings no admin has purchased yet.
// Admin only.
func (s *ProductService) ListUnclaimed(ctx context.Context, actor identity.Actor) ([]ProductResponse, error) {
	if err := identity.Authorize(actor, identity.ActionProductAdminView); err != nil {
		return nil, err
	}

	products, err := s.productRepo.FindUnclaimed(ctx)
	if err != nil {
		return nil, err
	}
	return s.toResponses(ctx, products), nil
}

// Update applies partial changes to a listing. Owner or admin.
func (s *ProductService) Update(ctx context.Context, actor identity.Actor, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := identity.AuthorizeOwner(actor, identity.ActionProductUpdate, product.SellerID); err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := product.Rename(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.Description != nil {
		if err := product.SetDescription(*req.Description); err != nil {
			return nil, err
		}
	}
	if req.CategoryID != nil {
		exists, err := s.categoryRepo.ExistsByID(ctx, *req.CategoryID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, shared.NewDomainError("INVALID_CATEGORY", "Category does not exist")
		}
		if err := product.SetCategory(*req.CategoryID); err != nil {
			return nil, err
		}
	}
	if req.Price != nil {
		if err := product.SetPrice(*req.Price); err != nil {
			return nil, err
		}
	}
	if req.Quantity != nil {
		if err := product.SetQuantity(*req.Quantity); err != nil {
			return nil, err
		}
	}
	if req.Analysis != nil {
		if err := product.SetAnalysis(*req.Analysis); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	return s.withNames(ctx, product), nil
}

// Delete hard-deletes a listing. Owner or admin.
func (s *ProductService) Delete(ctx context.Context, actor identity.Actor, id uuid.UUID) error {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := identity.AuthorizeOwner(actor, identity.ActionProductDelete, product.SellerID); err != nil {
		return err
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("product deleted",
		zap.String("product_id", id.String()),
		zap.String("actor_id", actor.ID.String()),
	)
	return nil
}

// Activate moves the seller's DRAFT listing to ACTIVE
func (s *ProductService) Activate(ctx context.Context, actor identity.Actor, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := identity.AuthorizeOwner(actor, identity.ActionProductActivate, product.SellerID); err != nil {
		return nil, err
	}

	if err := product.Activate(); err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	return s.withNames(ctx, product), nil
}

// Purchase records an admin buying out a listing: it goes INACTIVE and
// the purchasing admin is stamped on it. A repeat purchase overwrites
// the previous admin reference; that is logged, not rejected.
func (s *ProductService) Purchase(ctx context.Context, actor identity.Actor, id uuid.UUID) (*ProductResponse, error) {
	if err := identity.Authorize(actor, identity.ActionProductPurchase); err != nil {
		return nil, err
	}

	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if product.IsClaimed() && *product.AdminID != actor.ID {
		s.logger.Warn("purchase overwrites previous admin reference",
			zap.String("product_id", product.ID.String()),
			zap.String("previous_admin_id", product.AdminID.String()),
			zap.String("admin_id", actor.ID.String()),
		)
	}

	if err := product.MarkPurchased(actor.ID); err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("product purchased",
		zap.String("product_id", product.ID.String()),
		zap.String("admin_id", actor.ID.String()),
	)
	return s.withNames(ctx, product), nil
}

// Relist returns a purchased listing to ACTIVE, optionally at a new
// price. Admin only.
func (s *ProductService) Relist(ctx context.Context, actor identity.Actor, id uuid.UUID, relistPrice *decimal.Decimal) (*ProductResponse, error) {
	if err := identity.Authorize(actor, identity.ActionProductRelist); err != nil {
		return nil, err
	}

	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := product.Relist(relistPrice); err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("product relisted",
		zap.String("product_id", product.ID.String()),
		zap.String("admin_id", actor.ID.String()),
	)
	return s.withNames(ctx, product), nil
}

// AddImage uploads image bytes to storage and appends the resulting URL
// to the listing. Owner or admin.
func (s *ProductService) AddImage(ctx context.Context, actor identity.Actor, id uuid.UUID, filename string, data []byte, contentType string, primary bool) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := identity.AuthorizeOwner(actor, identity.ActionProductImage, product.SellerID); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, shared.NewDomainError("INVALID_IMAGE", "Image payload cannot be empty")
	}

	key := imageKey(product.ID, filename)
	url, err := s.storage.Upload(ctx, key, data, contentType)
	if err != nil {
		return nil, fmt.Errorf("failed to store image: %w", err)
	}

	if _, err := product.AddImage(url, primary); err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	return s.withNames(ctx, product), nil
}

// RemoveImage drops an image from the listing. Removing an image id the
// listing does not have is a no-op. Owner or admin.
func (s *ProductService) RemoveImage(ctx context.Context, actor identity.Actor, id, imageID uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := identity.AuthorizeOwner(actor, identity.ActionProductImage, product.SellerID); err != nil {
		return nil, err
	}

	product.RemoveImage(imageID)
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	return s.withNames(ctx, product), nil
}

// Stats summarizes a seller's listing activity over all time plus the
// last 30 days. Sellers may only view their own stats.
func (s *ProductService) Stats(ctx context.Context, actor identity.Actor, sellerID uuid.UUID) (*SellerStats, error) {
	if err := identity.AuthorizeOwner(actor, identity.ActionProductStats, sellerID); err != nil {
		return nil, err
	}

	stats := &SellerStats{TotalRevenue: decimal.Zero}

	total, err := s.productRepo.CountBySeller(ctx, sellerID, nil)
	if err != nil {
		return nil, err
	}
	stats.TotalProducts = total

	byStatus := map[catalog.ProductStatus]*int64{
		catalog.ProductStatusDraft:    &stats.DraftCount,
		catalog.ProductStatusActive:   &stats.ActiveCount,
		catalog.ProductStatusSold:     &stats.SoldCount,
		catalog.ProductStatusInactive: &stats.InactiveCount,
	}
	for status, target := range byStatus {
		status := status
		count, err := s.productRepo.CountBySeller(ctx, sellerID, &status)
		if err != nil {
			return nil, err
		}
		*target = count
	}

	recent, err := s.productRepo.CountRecentBySeller(ctx, sellerID, time.Now().AddDate(0, 0, -30))
	if err != nil {
		return nil, err
	}
	stats.RecentCount = recent

	return stats, nil
}

// withNames decorates a single product with category and seller names
func (s *ProductService) withNames(ctx context.Context, product *catalog.Product) *ProductResponse {
	responses := s.toResponses(ctx, []catalog.Product{*product})
	return &responses[0]
}

// toResponses converts products to responses, joining category and
// seller names in one batched lookup each
func (s *ProductService) toResponses(ctx context.Context, products []catalog.Product) []ProductResponse {
	categoryIDs := make([]uuid.UUID, 0, len(products))
	sellerIDs := make([]uuid.UUID, 0, len(products))
	seenCategory := make(map[uuid.UUID]bool)
	seenSeller := make(map[uuid.UUID]bool)
	for i := range products {
		if !seenCategory[products[i].CategoryID] {
			seenCategory[products[i].CategoryID] = true
			categoryIDs = append(categoryIDs, products[i].CategoryID)
		}
		if !seenSeller[products[i].SellerID] {
			seenSeller[products[i].SellerID] = true
			sellerIDs = append(sellerIDs, products[i].SellerID)
		}
	}

	categoryNames := make(map[uuid.UUID]string)
	if categories, err := s.categoryRepo.FindByIDs(ctx, categoryIDs); err == nil {
		for i := range categories {
			categoryNames[categories[i].ID] = categories[i].Name
		}
	} else {
		s.logger.Warn("failed to resolve category names", zap.Error(err))
	}

	sellerNames := make(map[uuid.UUID]string)
	if sellers, err := s.userRepo.FindByIDs(ctx, sellerIDs); err == nil {
		for i := range sellers {
			sellerNames[sellers[i].ID] = sellers[i].Username
		}
	} else {
		s.logger.Warn("failed to resolve seller names", zap.Error(err))
	}

	responses := make([]ProductResponse, len(products))
	for i := range products {
		resp := ToProductResponse(&products[i])
		resp.CategoryName = categoryNames[products[i].CategoryID]
		resp.SellerName = sellerNames[products[i].SellerID]
		responses[i] = *resp
	}
	return responses
}

// imageKey builds the storage key for an uploaded product image. The
// original extension is kept; the rest of the name is replaced so keys
// never collide.
func imageKey(productID uuid.UUID, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	return fmt.Sprintf("products/%s/%s%s", productID, uuid.New(), ext)
}
