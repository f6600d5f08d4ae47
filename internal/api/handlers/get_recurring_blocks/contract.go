package get_recurring_blocks

import (
	"context"

	"github.com/homemcom/AgendaService/internal/service/schedule/models"
)

type ScheduleService interface {
	ListRecurringBlocks(ctx context.Context, shopSlug string, userID int64) (*models.RecurringBlockListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
