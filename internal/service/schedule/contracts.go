package schedule

import (
	"context"

	"github.com/homemcom/AgendaService/internal/domain"
)

// WorkingHoursRepository интерфейс репозитория рабочих часов
type WorkingHoursRepository interface {
	ListByShop(ctx context.Context, shopID int64) ([]*domain.WorkingHoursBlock, error)
	ExistsOverlapping(ctx context.Context, shopID int64, weekday domain.Weekday, start, end string, excludeID *int64) (bool, error)
	Create(ctx context.Context, block *domain.WorkingHoursBlock) (*domain.WorkingHoursBlock, error)
	Delete(ctx context.Context, shopID, blockID int64) error
}

// RecurringBlockRepository интерфейс репозитория повторяющихся блоков
type RecurringBlockRepository interface {
	ListByShop(ctx context.Context, shopID int64) ([]*domain.RecurringBlock, error)
	Create(ctx context.Context, block *domain.RecurringBlock) (*domain.RecurringBlock, error)
	Delete(ctx context.Context, shopID, blockID int64) error
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
