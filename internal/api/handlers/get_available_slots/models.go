package get_available_slots

import (
	"time"

	"github.com/homemcom/AgendaService/internal/domain"
	getAvailableSlots "github.com/homemcom/AgendaService/internal/usecase/get_available_slots"
)

// SlotsResponse HTTP response model
type SlotsResponse struct {
	Date            string         `json:"date"` // "2025-10-15"
	ShopID          int64          `json:"shopId"`
	ServiceID       int64          `json:"serviceId"`
	DurationMinutes int            `json:"durationMinutes"`
	Timezone        string         `json:"timezone"`
	Slots           []SlotResponse `json:"slots"`
}

// SlotResponse один свободный слот
type SlotResponse struct {
	StartsAt string `json:"startsAt"` // RFC 3339 со смещением таймзоны магазина
	EndsAt   string `json:"endsAt"`
	Time     string `json:"time"` // "10:00", для отображения клиенту
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *SlotsResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, SlotResponse{
			StartsAt: s.StartsAt.Format(time.RFC3339),
			EndsAt:   s.EndsAt.Format(time.RFC3339),
			Time:     s.StartsAt.Format(domain.TimeFormat),
		})
	}

	return &SlotsResponse{
		Date:            resp.Date.Format(domain.DateFormat),
		ShopID:          resp.ShopID,
		ServiceID:       resp.ServiceID,
		DurationMinutes: resp.DurationMinutes,
		Timezone:        resp.Timezone,
		Slots:           slots,
	}
}
