package create_working_hours

import (
	"context"

	"github.com/homemcom/AgendaService/internal/service/schedule/models"
)

type ScheduleService interface {
	CreateWorkingHours(ctx context.Context, shopSlug string, req *models.CreateWorkingHoursRequest) (*models.WorkingHoursResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
