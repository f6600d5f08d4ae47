package domain

// Default values
const (
	DefaultServiceDurationMinutes = 30
	DefaultTimezone               = "America/Sao_Paulo"
)

// Business validation constants
const (
	MinServiceDurationMinutes = 5
	MaxServiceDurationMinutes = 480 // 8 hours
	MaxNameLength             = 120
	MaxNoteLength             = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses список статусов, занимающих слот в расписании
// Используется при подсчёте занятых интервалов
var ActiveStatuses = []AppointmentStatus{
	StatusAwaiting,
	StatusConfirmed,
}
