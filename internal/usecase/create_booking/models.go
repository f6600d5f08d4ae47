package create_booking

import (
	"time"

	"github.com/homemcom/AgendaService/internal/domain"
	"github.com/homemcom/AgendaService/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	ShopSlug  string                   // Публичный slug магазина
	ServiceID int64                    // ID услуги
	Date      time.Time                // Дата записи (без времени)
	StartTime types.TimeString         // Время начала в таймзоне магазина
	Origin    domain.AppointmentOrigin // Канал создания записи

	// Идентификация клиента: публичный поток передаёт имя и телефон,
	// владелец может указать существующего клиента по ID
	ClientID    *int64
	ClientName  string
	ClientPhone string
}

// Response модель ответа с созданной записью
type Response struct {
	ID             int64
	Reference      string // публичный идентификатор для ссылки подтверждения
	ShopID         int64
	ServiceID      int64
	ClientID       *int64
	StartsAt       time.Time
	EndsAt         time.Time
	Status         string
	Origin         string
	PriceAtBooking float64
	ServiceName    string
	ClientName     *string
	ClientPhone    *string
	CreatedAt      time.Time
}
