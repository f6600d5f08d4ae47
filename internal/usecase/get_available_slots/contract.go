package get_available_slots

import (
	"context"
	"time"

	"github.com/homemcom/AgendaService/internal/domain"
)

// ShopRepository интерфейс репозитория магазинов
type ShopRepository interface {
	GetBySlug(ctx context.Context, slug string) (*domain.Shop, error)
}

// ServiceRepository интерфейс репозитория услуг
type ServiceRepository interface {
	GetActiveByID(ctx context.Context, shopID, serviceID int64) (*domain.Service, error)
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	// ListByShopForDay получает неотменённые записи магазина за [dayStart, dayEnd)
	ListByShopForDay(ctx context.Context, shopID int64, dayStart, dayEnd time.Time) ([]*domain.Appointment, error)
}

// WorkingHoursRepository интерфейс репозитория рабочих часов
type WorkingHoursRepository interface {
	ListActiveByShopAndWeekday(ctx context.Context, shopID int64, weekday domain.Weekday) ([]*domain.WorkingHoursBlock, error)
}

// RecurringBlockRepository интерфейс репозитория повторяющихся блоков
type RecurringBlockRepository interface {
	ListActiveByShopAndWeekday(ctx context.Context, shopID int64, weekday domain.Weekday) ([]*domain.RecurringBlock, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
