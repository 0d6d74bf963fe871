package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/indolink/backend/internal/domain/catalog"
	"github.com/indolink/backend/internal/domain/shared"
)

// GormProductRepository implements ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByID finds a product by its ID, images included
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var product catalog.Product
	if err := r.db.WithContext(ctx).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// FindAll finds all products matching the filter
func (r *GormProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	var products []catalog.Product
	query := r.applyFilter(r.db.WithContext(ctx).Model(&catalog.Product{}), filter)

	if err := query.Preload("Images").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// FindBySeller finds all products owned by a seller, newest first
func (r *GormProductRepository) FindBySeller(ctx context.Context, sellerID uuid.UUID) ([]catalog.Product, error) {
	var products []catalog.Product
	if err := r.db.WithContext(ctx).
		Preload("Images").
		Where("seller_id = ?", sellerID).
		Order("created_at DESC").
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// FindUnclaimed finds seller listings no admin has purchased yet
func (r *GormProductRepository) FindUnclaimed(ctx context.Context) ([]catalog.Product, error) {
	var products []catalog.Product
	if err := r.db.WithContext(ctx).
		Preload("Images").
		Where("admin_id IS NULL AND status IN ?", []catalog.ProductStatus{
			catalog.ProductStatusDraft,
			catalog.ProductStatusActive,
		}).
		Order("created_at DESC").
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// Save creates or updates a product together with its images. Image
// rows removed from the aggregate are deleted so the stored list always
// mirrors the in-memory one.
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Images").Save(product).Error; err != nil {
			return err
		}

		keep := make([]uuid.UUID, 0, len(product.Images))
		for i := range product.Images {
			if err := tx.Save(&product.Images[i]).Error; err != nil {
				return err
			}
			keep = append(keep, product.Images[i].ID)
		}

		query := tx.Where("product_id = ?", product.ID)
		if len(keep) > 0 {
			query = query.Where("id NOT IN ?", keep)
		}
		return query.Delete(&catalog.ProductImage{}).Error
	})
}

// Delete hard-deletes a product; its images go with it
func (r *GormProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&catalog.ProductImage{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&catalog.Product{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// CountBySeller counts a seller's products, optionally by status
func (r *GormProductRepository) CountBySeller(ctx context.Context, sellerID uuid.UUID, status *catalog.ProductStatus) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).
		Model(&catalog.Product{}).
		Where("seller_id = ?", sellerID)
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountRecentBySeller counts a seller's products created at or after the given time
func (r *GormProductRepository) CountRecentBySeller(ctx context.Context, sellerID uuid.UUID, since time.Time) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&catalog.Product{}).
		Where("seller_id = ? AND created_at >= ?", sellerID, since).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormProductRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "category_id":
			query = query.Where("category_id = ?", value)
		case "seller_id":
			query = query.Where("seller_id = ?", value)
		}
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + orderDir)
	}

	return query
}

// Ensure GormProductRepository implements ProductRepository
var _ catalog.ProductRepository = (*GormProductRepository)(nil)
