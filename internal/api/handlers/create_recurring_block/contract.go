package create_recurring_block

import (
	"context"

	"github.com/homemcom/AgendaService/internal/service/schedule/models"
)

type ScheduleService interface {
	CreateRecurringBlock(ctx context.Context, shopSlug string, req *models.CreateRecurringBlockRequest) (*models.RecurringBlockResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
