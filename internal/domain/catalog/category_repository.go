package catalog

import (
	"context"

	"github.com/google/uuid"
)

// CategoryRepository defines the interface for category persistence
type CategoryRepository interface {
	// FindByID finds a category by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)

	// FindByIDs finds multiple categories by their IDs
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Category, error)

	// FindAll finds all categories, newest first
	FindAll(ctx context.Context) ([]Category, error)

	// ExistsByID checks if a category exists
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)

	// ExistsByName checks if a category with the given name exists
	ExistsByName(ctx context.Context, name string) (bool, error)

	// Save creates or updates a category
	Save(ctx context.Context, category *Category) error
}
