package sales

import (
	"context"
	"time"

	"github.com/homemcom/AgendaService/internal/domain"
)

// SaleRepository интерфейс репозитория товаров и продаж
type SaleRepository interface {
	GetProductByID(ctx context.Context, shopID, productID int64) (*domain.Product, error)
	CreateSale(ctx context.Context, s *domain.ProductSale) (*domain.ProductSale, error)
	ListSalesByShopForPeriod(ctx context.Context, shopID int64, start, end time.Time) ([]*domain.ProductSale, error)
}

// ShopRepository интерфейс репозитория магазинов
type ShopRepository interface {
	GetBySlug(ctx context.Context, slug string) (*domain.Shop, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
