package models

import (
	"errors"
	"time"

	"github.com/homemcom/AgendaService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid appointment status")

	// ErrInvalidReason возвращается при некорректной причине отмены
	ErrInvalidReason = errors.New("invalid cancellation reason")
)

// Request модели

// CancelAppointmentRequest запрос на отмену записи
type CancelAppointmentRequest struct {
	UserID int64   `json:"userId"`
	Reason string  `json:"reason"` // client | shop
	Note   *string `json:"note,omitempty"`
}

// ConfirmAppointmentRequest запрос на подтверждение записи
type ConfirmAppointmentRequest struct {
	UserID int64 `json:"userId"`
}

// GetShopAppointmentsRequest запрос на получение записей магазина
type GetShopAppointmentsRequest struct {
	UserID          int64      `json:"userId"`
	ShopSlug        string     `json:"shopSlug"`
	StartDate       *time.Time `json:"startDate,omitempty"`       // Начало периода (опционально)
	EndDate         *time.Time `json:"endDate,omitempty"`         // Конец периода (опционально)
	Status          *string    `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	IncludeInactive bool       `json:"includeInactive,omitempty"` // Включить отменённые записи
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetShopAppointmentsRequest) ToDomainFilter(shopID int64) (domain.ShopAppointmentsFilter, error) {
	filter := domain.ShopAppointmentsFilter{
		ShopID:          shopID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeInactive: r.IncludeInactive,
	}

	// Конвертируем статус если указан
	if r.Status != nil {
		status, err := ToDomainAppointmentStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID        int64     `json:"id"`
	Reference string    `json:"reference"`
	ShopID    int64     `json:"shopId"`
	ClientID  *int64    `json:"clientId,omitempty"`
	ServiceID int64     `json:"serviceId"`
	StartsAt  time.Time `json:"startsAt"`
	EndsAt    time.Time `json:"endsAt"`
	Status    string    `json:"status"`
	Origin    string    `json:"origin"`

	// Денормализованные данные
	PriceAtBooking float64 `json:"priceAtBooking"`
	ServiceName    string  `json:"serviceName"`
	ClientName     *string `json:"clientName,omitempty"`
	ClientPhone    *string `json:"clientPhone,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	return &AppointmentResponse{
		ID:             a.ID,
		Reference:      a.Reference,
		ShopID:         a.ShopID,
		ClientID:       a.ClientID,
		ServiceID:      a.ServiceID,
		StartsAt:       a.StartsAt,
		EndsAt:         a.EndsAt,
		Status:         string(a.Status),
		Origin:         string(a.Origin),
		PriceAtBooking: a.PriceAtBooking,
		ServiceName:    a.ServiceName,
		ClientName:     a.ClientName,
		ClientPhone:    a.ClientPhone,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(appointments []*domain.Appointment) *AppointmentListResponse {
	result := make([]AppointmentResponse, 0, len(appointments))
	for _, a := range appointments {
		result = append(result, *FromDomainAppointment(a))
	}
	return &AppointmentListResponse{Appointments: result}
}

// ToDomainAppointmentStatus конвертирует строку в domain статус
func ToDomainAppointmentStatus(s string) (domain.AppointmentStatus, error) {
	switch domain.AppointmentStatus(s) {
	case domain.StatusAwaiting, domain.StatusConfirmed, domain.StatusCancelled:
		return domain.AppointmentStatus(s), nil
	default:
		return "", ErrInvalidStatus
	}
}

// ToDomainCancellationReason конвертирует строку в domain причину отмены
func ToDomainCancellationReason(s string) (domain.CancellationReason, error) {
	switch domain.CancellationReason(s) {
	case domain.CancelledByClient, domain.CancelledByShop:
		return domain.CancellationReason(s), nil
	default:
		return "", ErrInvalidReason
	}
}
