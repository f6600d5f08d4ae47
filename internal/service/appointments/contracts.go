package appointments

import (
	"context"

	"github.com/homemcom/AgendaService/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	ListByShopWithFilter(ctx context.Context, filter domain.ShopAppointmentsFilter) ([]*domain.Appointment, error)
	UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error
}

// CancellationRepository интерфейс репозитория отмен
type CancellationRepository interface {
	Create(ctx context.Context, c *domain.Cancellation) (*domain.Cancellation, error)
}

// ShopRepository интерфейс репозитория магазинов
type ShopRepository interface {
	GetBySlug(ctx context.Context, slug string) (*domain.Shop, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
