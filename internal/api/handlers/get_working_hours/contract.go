package get_working_hours

import (
	"context"

	"github.com/homemcom/AgendaService/internal/service/schedule/models"
)

type ScheduleService interface {
	ListWorkingHours(ctx context.Context, shopSlug string, userID int64) (*models.WorkingHoursListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
