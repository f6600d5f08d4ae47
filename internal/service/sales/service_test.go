package sales

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homemcom/AgendaService/internal/domain"
	saleRepo "github.com/homemcom/AgendaService/internal/infra/storage/sale"
	"github.com/homemcom/AgendaService/internal/service/sales/models"
	"github.com/homemcom/AgendaService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeSaleRepo struct {
	product *domain.Product
	sales   []*domain.ProductSale

	created *domain.ProductSale
}

func (f *fakeSaleRepo) GetProductByID(_ context.Context, _, _ int64) (*domain.Product, error) {
	if f.product == nil {
		return nil, saleRepo.ErrProductNotFound
	}
	return f.product, nil
}

func (f *fakeSaleRepo) CreateSale(_ context.Context, s *domain.ProductSale) (*domain.ProductSale, error) {
	created := *s
	created.ID = 1
	created.CreatedAt = time.Now()
	f.created = &created
	return &created, nil
}

func (f *fakeSaleRepo) ListSalesByShopForPeriod(_ context.Context, _ int64, _, _ time.Time) ([]*domain.ProductSale, error) {
	return f.sales, nil
}

type fakeShopRepo struct {
	shop *domain.Shop
}

func (f *fakeShopRepo) GetBySlug(_ context.Context, _ string) (*domain.Shop, error) {
	return f.shop, nil
}

const ownerID int64 = 7

func newService(sales *fakeSaleRepo) *Service {
	return NewService(
		sales,
		&fakeShopRepo{shop: &domain.Shop{ID: 1, OwnerID: ownerID, Slug: "barber-joe", Active: true}},
		nopLogger{},
	)
}

func TestRecordSale(t *testing.T) {
	t.Run("catalog product fills name and price", func(t *testing.T) {
		repo := &fakeSaleRepo{product: &domain.Product{ID: 2, ShopID: 1, Name: "Pomade", Price: 25, Active: true}}
		svc := newService(repo)

		resp, err := svc.RecordSale(context.Background(), "barber-joe", &models.RecordSaleRequest{
			UserID:    ownerID,
			ProductID: ptr.Ptr(int64(2)),
			Quantity:  3,
		})
		require.NoError(t, err)

		assert.Equal(t, "Pomade", resp.ProductName)
		assert.Equal(t, 25.0, resp.UnitPrice)
		assert.Equal(t, 75.0, resp.TotalPrice)
		assert.False(t, resp.SoldAt.IsZero())
	})

	t.Run("explicit unit price overrides the catalog", func(t *testing.T) {
		repo := &fakeSaleRepo{product: &domain.Product{ID: 2, ShopID: 1, Name: "Pomade", Price: 25, Active: true}}
		svc := newService(repo)

		resp, err := svc.RecordSale(context.Background(), "barber-joe", &models.RecordSaleRequest{
			UserID:    ownerID,
			ProductID: ptr.Ptr(int64(2)),
			Quantity:  2,
			UnitPrice: ptr.Ptr(20.0),
		})
		require.NoError(t, err)

		assert.Equal(t, 20.0, resp.UnitPrice)
		assert.Equal(t, 40.0, resp.TotalPrice)
	})

	t.Run("free-text item needs a name and a price", func(t *testing.T) {
		svc := newService(&fakeSaleRepo{})

		resp, err := svc.RecordSale(context.Background(), "barber-joe", &models.RecordSaleRequest{
			UserID:      ownerID,
			ProductName: "Gift card",
			Quantity:    1,
			UnitPrice:   ptr.Ptr(100.0),
		})
		require.NoError(t, err)

		assert.Nil(t, resp.ProductID)
		assert.Equal(t, "Gift card", resp.ProductName)
		assert.Equal(t, 100.0, resp.TotalPrice)
	})

	t.Run("missing product name is rejected", func(t *testing.T) {
		svc := newService(&fakeSaleRepo{})

		_, err := svc.RecordSale(context.Background(), "barber-joe", &models.RecordSaleRequest{
			UserID:   ownerID,
			Quantity: 1,
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("quantity must be positive", func(t *testing.T) {
		svc := newService(&fakeSaleRepo{})

		_, err := svc.RecordSale(context.Background(), "barber-joe", &models.RecordSaleRequest{
			UserID:      ownerID,
			ProductName: "Pomade",
			Quantity:    0,
			UnitPrice:   ptr.Ptr(25.0),
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("unknown product", func(t *testing.T) {
		svc := newService(&fakeSaleRepo{})

		_, err := svc.RecordSale(context.Background(), "barber-joe", &models.RecordSaleRequest{
			UserID:    ownerID,
			ProductID: ptr.Ptr(int64(404)),
			Quantity:  1,
		})
		assert.ErrorIs(t, err, ErrProductNotFound)
	})

	t.Run("explicit soldAt is preserved", func(t *testing.T) {
		repo := &fakeSaleRepo{}
		svc := newService(repo)

		soldAt := time.Date(2025, 10, 10, 16, 0, 0, 0, time.UTC)
		resp, err := svc.RecordSale(context.Background(), "barber-joe", &models.RecordSaleRequest{
			UserID:      ownerID,
			ProductName: "Shampoo",
			Quantity:    1,
			UnitPrice:   ptr.Ptr(30.0),
			SoldAt:      &soldAt,
		})
		require.NoError(t, err)
		assert.Equal(t, soldAt, resp.SoldAt)
	})
}

func TestListSales(t *testing.T) {
	repo := &fakeSaleRepo{sales: []*domain.ProductSale{
		{ID: 1, ShopID: 1, ProductName: "Pomade", Quantity: 2, UnitPrice: 25, TotalPrice: 50},
		{ID: 2, ShopID: 1, ProductName: "Shampoo", Quantity: 1, UnitPrice: 30, TotalPrice: 30},
	}}
	svc := newService(repo)

	resp, err := svc.ListSales(context.Background(), &models.ListSalesRequest{
		UserID:    ownerID,
		ShopSlug:  "barber-joe",
		StartDate: time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	require.Len(t, resp.Sales, 2)
	assert.Equal(t, 80.0, resp.Total)
}

func TestListSales_InvalidPeriod(t *testing.T) {
	svc := newService(&fakeSaleRepo{})

	_, err := svc.ListSales(context.Background(), &models.ListSalesRequest{
		UserID:    ownerID,
		ShopSlug:  "barber-joe",
		StartDate: time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestListSales_AccessDenied(t *testing.T) {
	svc := newService(&fakeSaleRepo{})

	_, err := svc.ListSales(context.Background(), &models.ListSalesRequest{
		UserID:    999,
		ShopSlug:  "barber-joe",
		StartDate: time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}
