package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/indolink/backend/internal/domain/catalog"
	"github.com/indolink/backend/internal/domain/shared"
)

func TestCategoryServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("admin creates category", func(t *testing.T) {
		repo := new(MockCategoryRepository)
		svc := NewCategoryService(repo)

		repo.On("ExistsByName", ctx, "Textiles").Return(false, nil)
		repo.On("Save", ctx, mock.AnythingOfType("*catalog.Category")).Return(nil)

		resp, err := svc.Create(ctx, adminActor(), CreateCategoryRequest{Name: "Textiles", Description: "Woven goods"})
		require.NoError(t, err)
		assert.Equal(t, "Textiles", resp.Name)
		repo.AssertExpectations(t)
	})

	t.Run("duplicate name is rejected", func(t *testing.T) {
		repo := new(MockCategoryRepository)
		svc := NewCategoryService(repo)

		repo.On("ExistsByName", ctx, "Textiles").Return(true, nil)

		_, err := svc.Create(ctx, adminActor(), CreateCategoryRequest{Name: "Textiles"})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	})

	t.Run("seller is forbidden", func(t *testing.T) {
		svc := NewCategoryService(new(MockCategoryRepository))

		_, err := svc.Create(ctx, sellerActor(), CreateCategoryRequest{Name: "Textiles"})
		assert.True(t, errors.Is(err, shared.ErrForbidden))
	})
}

func TestCategoryServiceList(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCategoryRepository)
	svc := NewCategoryService(repo)

	first, err := catalog.NewCategory("Spices", "")
	require.NoError(t, err)
	second, err := catalog.NewCategory("Textiles", "")
	require.NoError(t, err)

	repo.On("FindAll", ctx).Return([]catalog.Category{*first, *second}, nil)

	categories, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "Spices", categories[0].Name)
}

func TestCategoryServiceGetByID(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCategoryRepository)
	svc := NewCategoryService(repo)

	repo.On("FindByID", ctx, mock.AnythingOfType("uuid.UUID")).Return(nil, shared.ErrNotFound)

	_, err := svc.GetByID(ctx, uuid.New())
	assert.True(t, errors.Is(err, shared.ErrNotFound))
}
