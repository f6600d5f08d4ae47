package schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/homemcom/AgendaService/internal/domain"
	recurringblockRepo "github.com/homemcom/AgendaService/internal/infra/storage/recurringblock"
	shopRepo "github.com/homemcom/AgendaService/internal/infra/storage/shop"
	workinghoursRepo "github.com/homemcom/AgendaService/internal/infra/storage/workinghours"
	"github.com/homemcom/AgendaService/internal/service/schedule/models"
)

// Service сервис для управления недельным расписанием магазина:
// блоки рабочих часов и повторяющиеся блоки (постоянные клиенты, перерывы)
type Service struct {
	workingHoursRepo   WorkingHoursRepository
	recurringBlockRepo RecurringBlockRepository
	shopRepo           ShopRepository
	logger             Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(
	workingHoursRepo WorkingHoursRepository,
	recurringBlockRepo RecurringBlockRepository,
	shopRepo ShopRepository,
	logger Logger,
) *Service {
	return &Service{
		workingHoursRepo:   workingHoursRepo,
		recurringBlockRepo: recurringBlockRepo,
		shopRepo:           shopRepo,
		logger:             logger,
	}
}

// ListWorkingHours получает все блоки рабочих часов магазина
// Доступно только владельцу магазина
func (s *Service) ListWorkingHours(ctx context.Context, shopSlug string, userID int64) (*models.WorkingHoursListResponse, error) {
	s.logger.Info("ListWorkingHours: fetching blocks for shop=%s, user=%d", shopSlug, userID)

	shop, err := s.checkOwnerAccess(ctx, shopSlug, userID)
	if err != nil {
		return nil, err
	}

	blocks, err := s.workingHoursRepo.ListByShop(ctx, shop.ID)
	if err != nil {
		s.logger.Error("ListWorkingHours: repository error for shop=%d: %v", shop.ID, err)
		return nil, fmt.Errorf("%w: ListWorkingHours - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainWorkingHoursList(blocks), nil
}

// CreateWorkingHours создает блок рабочих часов.
// Блоки одного дня недели не должны пересекаться — движок доступности
// полагается на этот инвариант и не дедуплицирует слоты.
func (s *Service) CreateWorkingHours(ctx context.Context, shopSlug string, req *models.CreateWorkingHoursRequest) (*models.WorkingHoursResponse, error) {
	s.logger.Info("CreateWorkingHours: shop=%s, weekday=%d, %s-%s by user=%d",
		shopSlug, req.Weekday, req.Start, req.End, req.UserID)

	shop, err := s.checkOwnerAccess(ctx, shopSlug, req.UserID)
	if err != nil {
		return nil, err
	}

	weekday, err := models.ToDomainWeekday(req.Weekday)
	if err != nil {
		s.logger.Warn("CreateWorkingHours: invalid weekday=%d", req.Weekday)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	start, end, err := models.ParseTimeRange(req.Start, req.End)
	if err != nil {
		s.logger.Warn("CreateWorkingHours: invalid time range %s-%s: %v", req.Start, req.End, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if !start.IsBefore(end) {
		s.logger.Warn("CreateWorkingHours: end %s is not after start %s", req.End, req.Start)
		return nil, ErrInvalidTimeRange
	}

	// Отклоняем пересечение с существующими активными блоками того же дня
	overlaps, err := s.workingHoursRepo.ExistsOverlapping(ctx, shop.ID, weekday, start.String(), end.String(), nil)
	if err != nil {
		s.logger.Error("CreateWorkingHours: overlap check failed for shop=%d: %v", shop.ID, err)
		return nil, fmt.Errorf("%w: CreateWorkingHours - overlap check failed: %v", ErrInternal, err)
	}
	if overlaps {
		s.logger.Warn("CreateWorkingHours: block %s-%s overlaps existing block for shop=%d, weekday=%d",
			req.Start, req.End, shop.ID, weekday)
		return nil, ErrOverlappingBlock
	}

	block, err := s.workingHoursRepo.Create(ctx, &domain.WorkingHoursBlock{
		ShopID:  shop.ID,
		Weekday: weekday,
		Start:   start,
		End:     end,
		Active:  true,
	})
	if err != nil {
		s.logger.Error("CreateWorkingHours: repository error for shop=%d: %v", shop.ID, err)
		return nil, fmt.Errorf("%w: CreateWorkingHours - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateWorkingHours: successfully created block id=%d for shop=%d", block.ID, shop.ID)
	return models.FromDomainWorkingHours(block), nil
}

// DeleteWorkingHours удаляет блок рабочих часов
// Доступно только владельцу магазина
func (s *Service) DeleteWorkingHours(ctx context.Context, shopSlug string, blockID, userID int64) error {
	s.logger.Info("DeleteWorkingHours: deleting block id=%d for shop=%s by user=%d", blockID, shopSlug, userID)

	shop, err := s.checkOwnerAccess(ctx, shopSlug, userID)
	if err != nil {
		return err
	}

	if err := s.workingHoursRepo.Delete(ctx, shop.ID, blockID); err != nil {
		if errors.Is(err, workinghoursRepo.ErrBlockNotFound) {
			s.logger.Warn("DeleteWorkingHours: block id=%d not found in shop=%d", blockID, shop.ID)
			return ErrBlockNotFound
		}
		s.logger.Error("DeleteWorkingHours: repository error for block id=%d: %v", blockID, err)
		return fmt.Errorf("%w: DeleteWorkingHours - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteWorkingHours: successfully deleted block id=%d", blockID)
	return nil
}

// ListRecurringBlocks получает все повторяющиеся блоки магазина
// Доступно только владельцу магазина
func (s *Service) ListRecurringBlocks(ctx context.Context, shopSlug string, userID int64) (*models.RecurringBlockListResponse, error) {
	s.logger.Info("ListRecurringBlocks: fetching blocks for shop=%s, user=%d", shopSlug, userID)

	shop, err := s.checkOwnerAccess(ctx, shopSlug, userID)
	if err != nil {
		return nil, err
	}

	blocks, err := s.recurringBlockRepo.ListByShop(ctx, shop.ID)
	if err != nil {
		s.logger.Error("ListRecurringBlocks: repository error for shop=%d: %v", shop.ID, err)
		return nil, fmt.Errorf("%w: ListRecurringBlocks - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainRecurringBlockList(blocks), nil
}

// CreateRecurringBlock создает повторяющийся блок.
// В отличие от рабочих часов, пересечение повторяющихся блоков между собой
// допустимо — движок доступности учитывает их объединение.
func (s *Service) CreateRecurringBlock(ctx context.Context, shopSlug string, req *models.CreateRecurringBlockRequest) (*models.RecurringBlockResponse, error) {
	s.logger.Info("CreateRecurringBlock: shop=%s, kind=%s, weekday=%d, %s-%s by user=%d",
		shopSlug, req.Kind, req.Weekday, req.Start, req.End, req.UserID)

	shop, err := s.checkOwnerAccess(ctx, shopSlug, req.UserID)
	if err != nil {
		return nil, err
	}

	kind, err := models.ToDomainBlockKind(req.Kind)
	if err != nil {
		s.logger.Warn("CreateRecurringBlock: invalid kind=%s", req.Kind)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	weekday, err := models.ToDomainWeekday(req.Weekday)
	if err != nil {
		s.logger.Warn("CreateRecurringBlock: invalid weekday=%d", req.Weekday)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	start, end, err := models.ParseTimeRange(req.Start, req.End)
	if err != nil {
		s.logger.Warn("CreateRecurringBlock: invalid time range %s-%s: %v", req.Start, req.End, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if !start.IsBefore(end) {
		s.logger.Warn("CreateRecurringBlock: end %s is not after start %s", req.End, req.Start)
		return nil, ErrInvalidTimeRange
	}

	block, err := s.recurringBlockRepo.Create(ctx, &domain.RecurringBlock{
		ShopID:          shop.ID,
		Kind:            kind,
		Title:           req.Title,
		Weekday:         weekday,
		Start:           start,
		End:             end,
		ServiceID:       req.ServiceID,
		DurationMinutes: req.DurationMinutes,
		Active:          true,
	})
	if err != nil {
		s.logger.Error("CreateRecurringBlock: repository error for shop=%d: %v", shop.ID, err)
		return nil, fmt.Errorf("%w: CreateRecurringBlock - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateRecurringBlock: successfully created block id=%d for shop=%d", block.ID, shop.ID)
	return models.FromDomainRecurringBlock(block), nil
}

// DeleteRecurringBlock удаляет повторяющийся блок
// Доступно только владельцу магазина
func (s *Service) DeleteRecurringBlock(ctx context.Context, shopSlug string, blockID, userID int64) error {
	s.logger.Info("DeleteRecurringBlock: deleting block id=%d for shop=%s by user=%d", blockID, shopSlug, userID)

	shop, err := s.checkOwnerAccess(ctx, shopSlug, userID)
	if err != nil {
		return err
	}

	if err := s.recurringBlockRepo.Delete(ctx, shop.ID, blockID); err != nil {
		if errors.Is(err, recurringblockRepo.ErrBlockNotFound) {
			s.logger.Warn("DeleteRecurringBlock: block id=%d not found in shop=%d", blockID, shop.ID)
			return ErrBlockNotFound
		}
		s.logger.Error("DeleteRecurringBlock: repository error for block id=%d: %v", blockID, err)
		return fmt.Errorf("%w: DeleteRecurringBlock - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteRecurringBlock: successfully deleted block id=%d", blockID)
	return nil
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
