package domain

import "time"

// AppointmentStatus represents the lifecycle state of an appointment
type AppointmentStatus string

const (
	StatusAwaiting  AppointmentStatus = "awaiting"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// AppointmentOrigin records how an appointment was created
type AppointmentOrigin string

const (
	OriginPublicLink AppointmentOrigin = "public_link"
	OriginWhatsApp   AppointmentOrigin = "whatsapp"
	OriginManual     AppointmentOrigin = "manual"
)

// Appointment is a booked slot. StartsAt/EndsAt are absolute instants;
// EndsAt is always StartsAt plus the service duration at booking time.
// PriceAtBooking freezes the service price so later catalog edits do not
// rewrite history.
type Appointment struct {
	ID        int64
	Reference string // client-facing uuid, used in confirmation links
	ShopID    int64
	ClientID  *int64
	ServiceID int64

	StartsAt time.Time
	EndsAt   time.Time

	Status AppointmentStatus
	Origin AppointmentOrigin

	PriceAtBooking float64

	// Denormalized for history: survives service renames and client deletes
	ServiceName string
	ClientName  *string
	ClientPhone *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// OccupiesCapacity reports whether the appointment blocks its slot.
// Both awaiting and confirmed appointments do; cancelled ones never do.
func (a *Appointment) OccupiesCapacity() bool {
	return a.Status != StatusCancelled
}

// IsCancelled reports whether the appointment reached the terminal state.
func (a *Appointment) IsCancelled() bool {
	return a.Status == StatusCancelled
}

// CanBeCancelled reports whether a transition to cancelled is allowed.
func (a *Appointment) CanBeCancelled() bool {
	return a.Status == StatusAwaiting || a.Status == StatusConfirmed
}

// CanBeConfirmed reports whether a transition to confirmed is allowed.
func (a *Appointment) CanBeConfirmed() bool {
	return a.Status == StatusAwaiting
}

// Interval returns the occupied time range as a half-open interval.
func (a *Appointment) Interval() Interval {
	return Interval{Start: a.StartsAt, End: a.EndsAt}
}

// CancellationReason records who initiated a cancellation
type CancellationReason string

const (
	CancelledByClient CancellationReason = "client"
	CancelledByShop   CancellationReason = "shop"
)

// Cancellation is the audit record written when an appointment is
// cancelled. One-to-one with the appointment; the appointment row itself
// stays immutable after the status flips.
type Cancellation struct {
	ID            int64
	AppointmentID int64
	Reason        CancellationReason
	Note          *string
	ApprovedBy    *int64 // owner user id for staff cancellations

	CreatedAt time.Time
}

// ShopAppointmentsFilter фильтр для получения записей магазина
type ShopAppointmentsFilter struct {
	ShopID          int64              // Обязательный параметр
	StartDate       *time.Time         // Начало периода (опционально)
	EndDate         *time.Time         // Конец периода (опционально)
	Status          *AppointmentStatus // Фильтр по статусу (опционально)
	IncludeInactive bool               // Включать ли отменённые записи
}
