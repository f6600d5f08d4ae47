package create_public_booking

import (
	"time"

	"github.com/homemcom/AgendaService/internal/domain"
	createBooking "github.com/homemcom/AgendaService/internal/usecase/create_booking"
	"github.com/homemcom/AgendaService/pkg/types"
)

// CreatePublicBookingRequest HTTP request model
type CreatePublicBookingRequest struct {
	ServiceID   int64  `json:"serviceId"`
	Date        string `json:"date"`      // "2025-10-15"
	StartTime   string `json:"startTime"` // "10:00"
	ClientName  string `json:"clientName"`
	ClientPhone string `json:"clientPhone"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID             int64   `json:"id"`
	Reference      string  `json:"reference"`
	ShopID         int64   `json:"shopId"`
	ServiceID      int64   `json:"serviceId"`
	ClientID       *int64  `json:"clientId,omitempty"`
	StartsAt       string  `json:"startsAt"` // RFC 3339
	EndsAt         string  `json:"endsAt"`
	Status         string  `json:"status"`
	Origin         string  `json:"origin"`
	PriceAtBooking float64 `json:"priceAtBooking"`
	ServiceName    string  `json:"serviceName"`
	ClientName     *string `json:"clientName,omitempty"`
	ClientPhone    *string `json:"clientPhone,omitempty"`
	CreatedAt      string  `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreatePublicBookingRequest) ToUseCaseRequest(shopSlug string) (*createBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		ShopSlug:    shopSlug,
		ServiceID:   r.ServiceID,
		Date:        date,
		StartTime:   startTime,
		Origin:      domain.OriginPublicLink,
		ClientName:  r.ClientName,
		ClientPhone: r.ClientPhone,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:             resp.ID,
		Reference:      resp.Reference,
		ShopID:         resp.ShopID,
		ServiceID:      resp.ServiceID,
		ClientID:       resp.ClientID,
		StartsAt:       resp.StartsAt.Format(time.RFC3339),
		EndsAt:         resp.EndsAt.Format(time.RFC3339),
		Status:         resp.Status,
		Origin:         resp.Origin,
		PriceAtBooking: resp.PriceAtBooking,
		ServiceName:    resp.ServiceName,
		ClientName:     resp.ClientName,
		ClientPhone:    resp.ClientPhone,
		CreatedAt:      resp.CreatedAt.Format(time.RFC3339),
	}
}
