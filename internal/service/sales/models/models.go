package models

import (
	"time"

	"github.com/homemcom/AgendaService/internal/domain"
)

// Request модели

// RecordSaleRequest запрос на регистрацию продажи.
// Либо productID (цена подставляется из каталога), либо свободное
// наименование с явной ценой.
type RecordSaleRequest struct {
	UserID      int64      `json:"userId"`
	ProductID   *int64     `json:"productId,omitempty"`
	ProductName string     `json:"productName,omitempty"`
	Quantity    int        `json:"quantity"`
	UnitPrice   *float64   `json:"unitPrice,omitempty"` // переопределяет цену каталога
	SoldAt      *time.Time `json:"soldAt,omitempty"`    // по умолчанию — момент запроса
	Note        *string    `json:"note,omitempty"`
}

// ListSalesRequest запрос на получение продаж за период
type ListSalesRequest struct {
	UserID    int64     `json:"userId"`
	ShopSlug  string    `json:"shopSlug"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
}

// Response модели

// SaleResponse ответ с данными продажи
type SaleResponse struct {
	ID          int64     `json:"id"`
	ShopID      int64     `json:"shopId"`
	ProductID   *int64    `json:"productId,omitempty"`
	ProductName string    `json:"productName"`
	Quantity    int       `json:"quantity"`
	UnitPrice   float64   `json:"unitPrice"`
	TotalPrice  float64   `json:"totalPrice"`
	SoldAt      time.Time `json:"soldAt"`
	Note        *string   `json:"note,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// SaleListResponse ответ со списком продаж
type SaleListResponse struct {
	Sales []SaleResponse `json:"sales"`
	Total float64        `json:"total"` // сумма всех продаж периода
}

// Методы конвертации

// FromDomainSale конвертирует domain модель в DTO
func FromDomainSale(s *domain.ProductSale) *SaleResponse {
	if s == nil {
		return nil
	}
	return &SaleResponse{
		ID:          s.ID,
		ShopID:      s.ShopID,
		ProductID:   s.ProductID,
		ProductName: s.ProductName,
		Quantity:    s.Quantity,
		UnitPrice:   s.UnitPrice,
		TotalPrice:  s.TotalPrice,
		SoldAt:      s.SoldAt,
		Note:        s.Note,
		CreatedAt:   s.CreatedAt,
	}
}

// FromDomainSaleList конвертирует список domain моделей в DTO
func FromDomainSaleList(sales []*domain.ProductSale) *SaleListResponse {
	result := make([]SaleResponse, 0, len(sales))
	var total float64
	for _, s := range sales {
		result = append(result, *FromDomainSale(s))
		total += s.TotalPrice
	}
	return &SaleListResponse{Sales: result, Total: total}
}
