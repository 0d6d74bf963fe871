package order

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/indolink/backend/internal/domain/catalog"
	"github.com/indolink/backend/internal/domain/identity"
	"github.com/indolink/backend/internal/domain/order"
	"github.com/indolink/backend/internal/domain/shared"
)

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindBySeller(ctx context.Context, sellerID uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, sellerID)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindUnclaimed(ctx context.Context) ([]catalog.Product, error) {
	args := m.Called(ctx)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) CountBySeller(ctx context.Context, sellerID uuid.UUID, status *catalog.ProductStatus) (int64, error) {
	args := m.Called(ctx, sellerID, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) CountRecentBySeller(ctx context.Context, sellerID uuid.UUID, since time.Time) (int64, error) {
	args := m.Called(ctx, sellerID, since)
	return args.Get(0).(int64), args.Error(1)
}

// memoryCartStore is a minimal in-process CartStore for service tests
type memoryCartStore struct {
	carts map[uuid.UUID]*order.Cart
}

func newMemoryCartStore() *memoryCartStore {
	return &memoryCartStore{carts: make(map[uuid.UUID]*order.Cart)}
}

func (s *memoryCartStore) Get(_ context.Context, buyerID uuid.UUID) (*order.Cart, error) {
	cart, ok := s.carts[buyerID]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return cart, nil
}

func (s *memoryCartStore) Save(_ context.Context, cart *order.Cart) error {
	s.carts[cart.BuyerID] = cart
	return nil
}

func (s *memoryCartStore) Delete(_ context.Context, buyerID uuid.UUID) error {
	delete(s.carts, buyerID)
	return nil
}

func buyerActor() identity.Actor {
	return identity.Actor{ID: uuid.New(), Role: identity.RoleBuyer}
}

func activeProduct(t *testing.T, price int64) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct(uuid.New(), uuid.New(), "Coconut Sugar", "Palm sap sugar", decimal.NewFromInt(price), 5, catalog.ProductStatusActive)
	require.NoError(t, err)
	return product
}

func TestCartServiceGet(t *testing.T) {
	ctx := context.Background()
	svc := NewCartService(newMemoryCartStore(), new(MockProductRepository), nil)

	t.Run("buyer without a cart sees an empty one", func(t *testing.T) {
		resp, err := svc.Get(ctx, buyerActor())
		require.NoError(t, err)
		assert.Empty(t, resp.Items)
	})

	t.Run("seller is forbidden", func(t *testing.T) {
		_, err := svc.Get(ctx, identity.Actor{ID: uuid.New(), Role: identity.RoleSeller})
		assert.True(t, errors.Is(err, shared.ErrForbidden))
	})
}

func TestCartServiceAddItem(t *testing.T) {
	ctx := context.Background()

	t.Run("snapshots the product into a new line", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		svc := NewCartService(newMemoryCartStore(), productRepo, nil)
		buyer := buyerActor()
		product := activeProduct(t, 45)
		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)

		resp, err := svc.AddItem(ctx, buyer, AddCartItemRequest{ProductID: product.ID, Quantity: 2})
		require.NoError(t, err)
		require.Len(t, resp.Items, 1)
		assert.Equal(t, "Coconut Sugar", resp.Items[0].Name)
		assert.Equal(t, 2, resp.Items[0].Quantity)
		assert.True(t, resp.Items[0].Price.Equal(decimal.NewFromInt(45)))
	})

	t.Run("cart line keeps the relist price buyers pay", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		svc := NewCartService(newMemoryCartStore(), productRepo, nil)
		product := activeProduct(t, 45)
		require.NoError(t, product.MarkPurchased(uuid.New()))
		relist := decimal.NewFromInt(60)
		require.NoError(t, product.Relist(&relist))
		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)

		resp, err := svc.AddItem(ctx, buyerActor(), AddCartItemRequest{ProductID: product.ID, Quantity: 1})
		require.NoError(t, err)
		assert.True(t, resp.Items[0].Price.Equal(relist))
	})

	t.Run("adding the same product twice makes two lines", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		svc := NewCartService(newMemoryCartStore(), productRepo, nil)
		buyer := buyerActor()
		product := activeProduct(t, 45)
		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)

		_, err := svc.AddItem(ctx, buyer, AddCartItemRequest{ProductID: product.ID, Quantity: 1})
		require.NoError(t, err)
		resp, err := svc.AddItem(ctx, buyer, AddCartItemRequest{ProductID: product.ID, Quantity: 3})
		require.NoError(t, err)

		require.Len(t, resp.Items, 2)
		assert.NotEqual(t, resp.Items[0].ID, resp.Items[1].ID)
	})

	t.Run("unknown product is rejected", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		svc := NewCartService(newMemoryCartStore(), productRepo, nil)
		productRepo.On("FindByID", ctx, mock.AnythingOfType("uuid.UUID")).Return(nil, shared.ErrNotFound)

		_, err := svc.AddItem(ctx, buyerActor(), AddCartItemRequest{ProductID: uuid.New(), Quantity: 1})
		assert.True(t, errors.Is(err, shared.ErrNotFound))
	})
}

func TestCartServiceUpdateItem(t *testing.T) {
	ctx := context.Background()

	t.Run("zero quantity is stored, not removed", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		svc := NewCartService(newMemoryCartStore(), productRepo, nil)
		buyer := buyerActor()
		product := activeProduct(t, 45)
		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)

		added, err := svc.AddItem(ctx, buyer, AddCartItemRequest{ProductID: product.ID, Quantity: 2})
		require.NoError(t, err)

		resp, err := svc.UpdateItem(ctx, buyer, added.Items[0].ID, UpdateCartItemRequest{Quantity: 0})
		require.NoError(t, err)
		require.Len(t, resp.Items, 1)
		assert.Equal(t, 0, resp.Items[0].Quantity)
	})

	t.Run("unknown line id is a silent no-op", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		svc := NewCartService(newMemoryCartStore(), productRepo, nil)
		buyer := buyerActor()
		product := activeProduct(t, 45)
		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)

		_, err := svc.AddItem(ctx, buyer, AddCartItemRequest{ProductID: product.ID, Quantity: 2})
		require.NoError(t, err)

		resp, err := svc.UpdateItem(ctx, buyer, uuid.New(), UpdateCartItemRequest{Quantity: 9})
		require.NoError(t, err)
		assert.Equal(t, 2, resp.Items[0].Quantity)
	})
}

func TestCartServiceRemoveItem(t *testing.T) {
	ctx := context.Background()
	productRepo := new(MockProductRepository)
	svc := NewCartService(newMemoryCartStore(), productRepo, nil)
	buyer := buyerActor()
	product := activeProduct(t, 45)
	productRepo.On("FindByID", ctx, product.ID).Return(product, nil)

	added, err := svc.AddItem(ctx, buyer, AddCartItemRequest{ProductID: product.ID, Quantity: 1})
	require.NoError(t, err)

	resp, err := svc.RemoveItem(ctx, buyer, added.Items[0].ID)
	require.NoError(t, err)
	assert.Empty(t, resp.Items)

	// Unknown line ids are ignored
	resp, err = svc.RemoveItem(ctx, buyer, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, resp.Items)
}
