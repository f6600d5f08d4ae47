package confirm_appointment

import (
	"context"

	"github.com/homemcom/AgendaService/internal/service/appointments/models"
)

type AppointmentService interface {
	Confirm(ctx context.Context, shopSlug string, appointmentID int64, req *models.ConfirmAppointmentRequest) (*models.AppointmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
