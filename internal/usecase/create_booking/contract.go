package create_booking

import (
	"context"
	"time"

	"github.com/homemcom/AgendaService/internal/domain"
	"github.com/homemcom/AgendaService/internal/integrations/billingservice"
)

// ShopRepository интерфейс репозитория магазинов
type ShopRepository interface {
	GetBySlug(ctx context.Context, slug string) (*domain.Shop, error)
}

// ServiceRepository интерфейс репозитория услуг
type ServiceRepository interface {
	GetActiveByID(ctx context.Context, shopID, serviceID int64) (*domain.Service, error)
}

// ClientRepository интерфейс репозитория клиентов
type ClientRepository interface {
	GetByID(ctx context.Context, shopID, clientID int64) (*domain.Client, error)
	GetOrCreateByPhone(ctx context.Context, shopID int64, name, phone string) (*domain.Client, error)
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
	// ExistsOverlap проверяет пересечение [start, end) с неотменёнными записями магазина
	ExistsOverlap(ctx context.Context, shopID int64, start, end time.Time, excludeID *int64) (bool, error)
}

// WorkingHoursRepository интерфейс репозитория рабочих часов
type WorkingHoursRepository interface {
	ListActiveByShopAndWeekday(ctx context.Context, shopID int64, weekday domain.Weekday) ([]*domain.WorkingHoursBlock, error)
}

// RecurringBlockRepository интерфейс репозитория повторяющихся блоков
type RecurringBlockRepository interface {
	ListActiveByShopAndWeekday(ctx context.Context, shopID int64, weekday domain.Weekday) ([]*domain.RecurringBlock, error)
}

// BillingServiceClient интерфейс клиента для BillingService
type BillingServiceClient interface {
	GetSubscriptionWithGracefulDegradation(ctx context.Context, shopID int64) (*billingservice.Subscription, error)
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
