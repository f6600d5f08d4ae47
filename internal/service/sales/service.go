package sales

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/homemcom/AgendaService/internal/domain"
	saleRepo "github.com/homemcom/AgendaService/internal/infra/storage/sale"
	shopRepo "github.com/homemcom/AgendaService/internal/infra/storage/shop"
	"github.com/homemcom/AgendaService/internal/service/sales/models"
)

// Service сервис для регистрации продаж товаров
type Service struct {
	saleRepo SaleRepository
	shopRepo ShopRepository
	logger   Logger
}

// NewService создает новый экземпляр сервиса продаж
func NewService(
	saleRepo SaleRepository,
	shopRepo ShopRepository,
	logger Logger,
) *Service {
	return &Service{
		saleRepo: saleRepo,
		shopRepo: shopRepo,
		logger:   logger,
	}
}

// RecordSale регистрирует продажу товара.
// Цена за единицу берётся из каталога, если не переопределена явно;
// итог всегда пересчитывается как количество, умноженное на цену единицы.
func (s *Service) RecordSale(ctx context.Context, shopSlug string, req *models.RecordSaleRequest) (*models.SaleResponse, error) {
	s.logger.Info("RecordSale: shop=%s, product=%v, qty=%d by user=%d", shopSlug, req.ProductID, req.Quantity, req.UserID)

	shop, err := s.checkOwnerAccess(ctx, shopSlug, req.UserID)
	if err != nil {
		return nil, err
	}

	if req.Quantity <= 0 {
		s.logger.Warn("RecordSale: invalid quantity=%d", req.Quantity)
		return nil, fmt.Errorf("%w: quantity must be positive", ErrInvalidInput)
	}

	sale := &domain.ProductSale{
		ShopID:      shop.ID,
		ProductID:   req.ProductID,
		ProductName: req.ProductName,
		Quantity:    req.Quantity,
		Note:        req.Note,
	}

	// Подставляем данные каталога для товара по ID
	if req.ProductID != nil {
		product, err := s.saleRepo.GetProductByID(ctx, shop.ID, *req.ProductID)
		if err != nil {
			if errors.Is(err, saleRepo.ErrProductNotFound) {
				s.logger.Warn("RecordSale: product id=%d not found in shop=%d", *req.ProductID, shop.ID)
				return nil, ErrProductNotFound
			}
			s.logger.Error("RecordSale: failed to get product id=%d: %v", *req.ProductID, err)
			return nil, fmt.Errorf("%w: RecordSale - failed to get product: %v", ErrInternal, err)
		}
		sale.ProductName = product.Name
		sale.UnitPrice = product.Price
	}

	if req.UnitPrice != nil {
		sale.UnitPrice = *req.UnitPrice
	}

	if sale.ProductName == "" {
		s.logger.Warn("RecordSale: neither productID nor productName given")
		return nil, fmt.Errorf("%w: productId or productName is required", ErrInvalidInput)
	}

	// Итог всегда выводится из количества и цены единицы
	sale.TotalPrice = float64(sale.Quantity) * sale.UnitPrice

	sale.SoldAt = time.Now()
	if req.SoldAt != nil {
		sale.SoldAt = *req.SoldAt
	}

	created, err := s.saleRepo.CreateSale(ctx, sale)
	if err != nil {
		s.logger.Error("RecordSale: repository error for shop=%d: %v", shop.ID, err)
		return nil, fmt.Errorf("%w: RecordSale - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("RecordSale: successfully recorded sale id=%d, total=%.2f", created.ID, created.TotalPrice)
	return models.FromDomainSale(created), nil
}

// ListSales получает продажи магазина за период [startDate, endDate)
// Доступно только владельцу магазина
func (s *Service) ListSales(ctx context.Context, req *models.ListSalesRequest) (*models.SaleListResponse, error) {
	s.logger.Info("ListSales: shop=%s, period=%s to %s by user=%d",
		req.ShopSlug, req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat), req.UserID)

	shop, err := s.checkOwnerAccess(ctx, req.ShopSlug, req.UserID)
	if err != nil {
		return nil, err
	}

	if !req.StartDate.Before(req.EndDate) {
		s.logger.Warn("ListSales: invalid period for shop=%d", shop.ID)
		return nil, fmt.Errorf("%w: endDate must be after startDate", ErrInvalidInput)
	}

	sales, err := s.saleRepo.ListSalesByShopForPeriod(ctx, shop.ID, req.StartDate, req.EndDate)
	if err != nil {
		s.logger.Error("ListSales: repository error for shop=%d: %v", shop.ID, err)
		return nil, fmt.Errorf("%w: ListSales - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListSales: successfully fetched %d sales for shop=%d", len(sales), shop.ID)
	return models.FromDomainSaleList(sales), nil
}

// checkOwnerAccess проверяет, что пользователь является владельцем магазина
func (s *Service) checkOwnerAccess(ctx context.Context, shopSlug string, userID int64) (*domain.Shop, error) {
	shop, err := s.shopRepo.GetBySlug(ctx, shopSlug)
	if err != nil {
		if errors.Is(err, shopRepo.ErrShopNotFound) {
			s.logger.Warn("checkOwnerAccess: shop slug=%s not found", shopSlug)
			return nil, ErrShopNotFound
		}
		s.logger.Error("checkOwnerAccess: failed to get shop slug=%s: %v", shopSlug, err)
		return nil, fmt.Errorf("%w: checkOwnerAccess - failed to get shop: %v", ErrInternal, err)
	}

	if shop.OwnerID != userID {
		s.logger.Warn("checkOwnerAccess: user=%d is not the owner of shop=%d", userID, shop.ID)
		return nil, ErrAccessDenied
	}

	return shop, nil
}
