package reschedule_appointment

import (
	"context"
	"time"

	"github.com/homemcom/AgendaService/internal/domain"
)

// ShopRepository интерфейс репозитория магазинов
type ShopRepository interface {
	GetBySlug(ctx context.Context, slug string) (*domain.Shop, error)
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
	// ExistsOverlap проверяет пересечение [start, end) с неотменёнными записями магазина,
	// excludeID исключает переносимую запись из проверки
	ExistsOverlap(ctx context.Context, shopID int64, start, end time.Time, excludeID *int64) (bool, error)
	UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error
}

// CancellationRepository интерфейс репозитория отмен
type CancellationRepository interface {
	Create(ctx context.Context, c *domain.Cancellation) (*domain.Cancellation, error)
}

// WorkingHoursRepository интерфейс репозитория рабочих часов
type WorkingHoursRepository interface {
	ListActiveByShopAndWeekday(ctx context.Context, shopID int64, weekday domain.Weekday) ([]*domain.WorkingHoursBlock, error)
}

// RecurringBlockRepository интерфейс репозитория повторяющихся блоков
type RecurringBlockRepository interface {
	ListActiveByShopAndWeekday(ctx context.Context, shopID int64, weekday domain.Weekday) ([]*domain.RecurringBlock, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// ReferenceGenerator генерирует публичный идентификатор записи (для тестирования)
type ReferenceGenerator func() string

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
