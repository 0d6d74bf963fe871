package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/indolink/backend/internal/domain/catalog"
	"github.com/indolink/backend/internal/domain/shared"
)

func setupCatalogTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&catalog.Category{}, &catalog.Product{}, &catalog.ProductImage{}))
	return db
}

func newTestProduct(t *testing.T, sellerID uuid.UUID, status catalog.ProductStatus) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct(
		sellerID,
		uuid.New(),
		"Rattan Basket",
		"Hand-woven rattan basket",
		decimal.NewFromInt(250),
		3,
		status,
	)
	require.NoError(t, err)
	return product
}

func TestGormProductRepository_SaveAndFindByID(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	sellerID := uuid.New()
	product := newTestProduct(t, sellerID, catalog.ProductStatusDraft)
	_, err := product.AddImage("https://img.example.com/a.jpg", true)
	require.NoError(t, err)
	_, err = product.AddImage("https://img.example.com/b.jpg", false)
	require.NoError(t, err)

	require.NoError(t, repo.Save(ctx, product))

	found, err := repo.FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Rattan Basket", found.Name)
	assert.Equal(t, sellerID, found.SellerID)
	require.Len(t, found.Images, 2)
	assert.Equal(t, "https://img.example.com/a.jpg", found.PrimaryImageURL())
}

func TestGormProductRepository_FindByIDNotFound(t *testing.T) {
	repo := NewGormProductRepository(setupCatalogTestDB(t))

	_, err := repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormProductRepository_SaveRemovesDroppedImages(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	product := newTestProduct(t, uuid.New(), catalog.ProductStatusActive)
	first, err := product.AddImage("https://img.example.com/a.jpg", true)
	require.NoError(t, err)
	_, err = product.AddImage("https://img.example.com/b.jpg", false)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, product))

	product.RemoveImage(first.ID)
	require.NoError(t, repo.Save(ctx, product))

	found, err := repo.FindByID(ctx, product.ID)
	require.NoError(t, err)
	require.Len(t, found.Images, 1)
	assert.Equal(t, "https://img.example.com/b.jpg", found.Images[0].URL)
}

func TestGormProductRepository_FindUnclaimed(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	draft := newTestProduct(t, uuid.New(), catalog.ProductStatusDraft)
	active := newTestProduct(t, uuid.New(), catalog.ProductStatusActive)
	require.NoError(t, repo.Save(ctx, draft))
	require.NoError(t, repo.Save(ctx, active))

	purchased := newTestProduct(t, uuid.New(), catalog.ProductStatusActive)
	require.NoError(t, purchased.MarkPurchased(uuid.New()))
	require.NoError(t, repo.Save(ctx, purchased))

	unclaimed, err := repo.FindUnclaimed(ctx)
	require.NoError(t, err)
	require.Len(t, unclaimed, 2)
	for _, p := range unclaimed {
		assert.Nil(t, p.AdminID)
	}
}

func TestGormProductRepository_FindBySeller(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	sellerID := uuid.New()
	require.NoError(t, repo.Save(ctx, newTestProduct(t, sellerID, catalog.ProductStatusDraft)))
	require.NoError(t, repo.Save(ctx, newTestProduct(t, sellerID, catalog.ProductStatusActive)))
	require.NoError(t, repo.Save(ctx, newTestProduct(t, uuid.New(), catalog.ProductStatusActive)))

	products, err := repo.FindBySeller(ctx, sellerID)
	require.NoError(t, err)
	assert.Len(t, products, 2)
}

func TestGormProductRepository_Delete(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	product := newTestProduct(t, uuid.New(), catalog.ProductStatusDraft)
	_, err := product.AddImage("https://img.example.com/a.jpg", true)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, product))

	require.NoError(t, repo.Delete(ctx, product.ID))

	_, err = repo.FindByID(ctx, product.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	var imageCount int64
	require.NoError(t, db.Model(&catalog.ProductImage{}).Count(&imageCount).Error)
	assert.Zero(t, imageCount)

	assert.ErrorIs(t, repo.Delete(ctx, uuid.New()), shared.ErrNotFound)
}

func TestGormProductRepository_Counts(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	sellerID := uuid.New()
	require.NoError(t, repo.Save(ctx, newTestProduct(t, sellerID, catalog.ProductStatusDraft)))
	require.NoError(t, repo.Save(ctx, newTestProduct(t, sellerID, catalog.ProductStatusActive)))
	require.NoError(t, repo.Save(ctx, newTestProduct(t, sellerID, catalog.ProductStatusActive)))

	total, err := repo.CountBySeller(ctx, sellerID, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)

	active := catalog.ProductStatusActive
	activeCount, err := repo.CountBySeller(ctx, sellerID, &active)
	require.NoError(t, err)
	assert.EqualValues(t, 2, activeCount)

	recent, err := repo.CountRecentBySeller(ctx, sellerID, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.EqualValues(t, 3, recent)

	none, err := repo.CountRecentBySeller(ctx, sellerID, time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Zero(t, none)
}
