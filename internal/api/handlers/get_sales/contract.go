package get_sales

import (
	"context"

	"github.com/homemcom/AgendaService/internal/service/sales/models"
)

type SalesService interface {
	ListSales(ctx context.Context, req *models.ListSalesRequest) (*models.SaleListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
