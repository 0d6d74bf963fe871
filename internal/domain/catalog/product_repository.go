package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/indolink/backend/internal/domain/shared"
)

// ProductRepository defines the interface for product persistence.
// All list operations return products newest first unless the filter
// says otherwise.
type ProductRepository interface {
	// FindByID finds a product by its ID, images included
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindAll finds all products matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)

	// FindBySeller finds all products owned by a seller
	FindBySeller(ctx context.Context, sellerID uuid.UUID) ([]Product, error)

	// FindUnclaimed finds seller listings no admin has purchased yet
	// (no admin reference, status DRAFT or ACTIVE)
	FindUnclaimed(ctx context.Context) ([]Product, error)

	// Save creates or updates a product together with its images
	Save(ctx context.Context, product *Product) error

	// Delete hard-deletes a product
	Delete(ctx context.Context, id uuid.UUID) error

	// CountBySeller counts a seller's products, optionally by status
	CountBySeller(ctx context.Context, sellerID uuid.UUID, status *ProductStatus) (int64, error)

	// CountRecentBySeller counts a seller's products created at or
	// after the given time
	CountRecentBySeller(ctx context.Context, sellerID uuid.UUID, since time.Time) (int64, error)
}
