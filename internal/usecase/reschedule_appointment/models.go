package reschedule_appointment

import (
	"time"

	"github.com/homemcom/AgendaService/pkg/types"
)

// Request модель запроса на перенос записи
type Request struct {
	ShopSlug      string           // Публичный slug магазина
	AppointmentID int64            // ID переносимой записи
	Date          time.Time        // Новая дата
	StartTime     types.TimeString // Новое время начала в таймзоне магазина
}

// Response модель ответа с новой записью.
// Старая запись получает статус cancelled, новая наследует услугу, клиента,
// цену и статус старой.
type Response struct {
	ID             int64
	Reference      string
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

	CancelledAppointmentID int64 // ID старой записи
}
