package record_sale

import (
	"context"

	"github.com/homemcom/AgendaService/internal/service/sales/models"
)

type SalesService interface {
	RecordSale(ctx context.Context, shopSlug string, req *models.RecordSaleRequest) (*models.SaleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
