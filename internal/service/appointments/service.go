package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/homemcom/AgendaService/internal/domain"
	appointmentRepo "github.com/homemcom/AgendaService/internal/infra/storage/appointment"
	shopRepo "github.com/homemcom/AgendaService/internal/infra/storage/shop"
	"github.com/homemcom/AgendaService/internal/service/appointments/models"
)

// Service сервис для работы с записями магазина
type Service struct {
	appointmentRepo  AppointmentRepository
	cancellationRepo CancellationRepository
	shopRepo         ShopRepository
	txManager        TransactionManager
	logger           Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	cancellationRepo CancellationRepository,
	shopRepo ShopRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo:  appointmentRepo,
		cancellationRepo: cancellationRepo,
		shopRepo:         shopRepo,
		txManager:        txManager,
		logger:           logger,
	}
}

// GetByID получает запись магазина по ID
// Доступно только владельцу магазина
func (s *Service) GetByID(ctx context.Context, shopSlug string, appointmentID, userID int64) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d for user=%d", appointmentID, userID)

	shop, err := s.checkOwnerAccess(ctx, shopSlug, userID)
	if err != nil {
		return nil, err
	}

	appt, err := s.getShopAppointment(ctx, shop.ID, appointmentID)
	if err != nil {
		return nil, err
	}

	return models.FromDomainAppointment(appt), nil
}

// GetShopAppointments получает записи магазина с гибкой фильтрацией
// по периоду, статусу и включению отменённых записей
// Доступно только владельцу магазина
//
// Примеры использования:
// - Расписание на день: StartDate и EndDate указывают на границы суток
// - Только ожидающие подтверждения: Status = "awaiting"
// - Включая отменённые: IncludeInactive = true
func (s *Service) GetShopAppointments(ctx context.Context, req *models.GetShopAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetShopAppointments: fetching appointments for shop=%s, user=%d", req.ShopSlug, req.UserID)

	shop, err := s.checkOwnerAccess(ctx, req.ShopSlug, req.UserID)
	if err != nil {
		return nil, err
	}

	filter, err := req.ToDomainFilter(shop.ID)
	if err != nil {
		s.logger.Warn("GetShopAppointments: invalid filter for shop=%d: %v", shop.ID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	appointments, err := s.appointmentRepo.ListByShopWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetShopAppointments: repository error for shop=%d: %v", shop.ID, err)
		return nil, fmt.Errorf("%w: GetShopAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetShopAppointments: successfully fetched %d appointments for shop=%d", len(appointments), shop.ID)
	return models.FromDomainAppointmentList(appointments), nil
}

// Confirm подтверждает запись, ожидающую подтверждения.
// Разрешён единственный переход awaiting -> confirmed; подтверждение
// отменённой или уже подтверждённой записи — ошибка.
func (s *Service) Confirm(ctx context.Context, shopSlug string, appointmentID int64, req *models.ConfirmAppointmentRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("Confirm: confirming appointment id=%d by user=%d", appointmentID, req.UserID)

	shop, err := s.checkOwnerAccess(ctx, shopSlug, req.UserID)
	if err != nil {
		return nil, err
	}

	appt, err := s.getShopAppointment(ctx, shop.ID, appointmentID)
	if err != nil {
		return nil, err
	}

	if !appt.CanBeConfirmed() {
		s.logger.Warn("Confirm: appointment id=%d cannot be confirmed, status=%s", appointmentID, appt.Status)
		return nil, ErrCannotConfirm
	}

	if err := s.appointmentRepo.UpdateStatus(ctx, appointmentID, domain.StatusConfirmed); err != nil {
		s.logger.Error("Confirm: repository error for appointment id=%d: %v", appointmentID, err)
		return nil, fmt.Errorf("%w: Confirm - repository error: %v", ErrInternal, err)
	}

	appt.Status = domain.StatusConfirmed

	s.logger.Info("Confirm: successfully confirmed appointment id=%d", appointmentID)
	return models.FromDomainAppointment(appt), nil
}

// Cancel отменяет запись. Статус и запись об отмене пишутся в одной
// транзакции — отмена без аудита не допускается. Отмена терминальна:
// повторная отмена возвращает ошибку, слот записи снова свободен.
func (s *Service) Cancel(ctx context.Context, shopSlug string, appointmentID int64, req *models.CancelAppointmentRequest) error {
	s.logger.Info("Cancel: cancelling appointment id=%d by user=%d, reason=%s", appointmentID, req.UserID, req.Reason)

	shop, err := s.checkOwnerAccess(ctx, shopSlug, req.UserID)
	if err != nil {
		return err
	}

	appt, err := s.getShopAppointment(ctx, shop.ID, appointmentID)
	if err != nil {
		return err
	}

	if !appt.CanBeCancelled() {
		s.logger.Warn("Cancel: appointment id=%d cannot be cancelled, status=%s", appointmentID, appt.Status)
		return ErrCannotCancel
	}

	reason, err := models.ToDomainCancellationReason(req.Reason)
	if err != nil {
		s.logger.Warn("Cancel: invalid reason=%s for appointment id=%d", req.Reason, appointmentID)
		return fmt.Errorf("%w: invalid reason", ErrInvalidInput)
	}

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.appointmentRepo.UpdateStatus(txCtx, appointmentID, domain.StatusCancelled); err != nil {
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}

		cancellation := &domain.Cancellation{
			AppointmentID: appointmentID,
			Reason:        reason,
			Note:          req.Note,
		}
		// Отмена со стороны магазина фиксирует, кто её одобрил
		if reason == domain.CancelledByShop {
			cancellation.ApprovedBy = &req.UserID
		}

		if _, err := s.cancellationRepo.Create(txCtx, cancellation); err != nil {
			return fmt.Errorf("%w: Cancel - failed to create cancellation: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		s.logger.Error("Cancel: failed to cancel appointment id=%d: %v", appointmentID, err)
		return err
	}

	s.logger.Info("Cancel: successfully cancelled appointment id=%d", appointmentID)
	return nil
}

// Вспомогательные методы

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

// getShopAppointment получает запись и проверяет принадлежность магазину
func (s *Service) getShopAppointment(ctx context.Context, shopID, appointmentID int64) (*domain.Appointment, error) {
	appt, err := s.appointmentRepo.GetByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("getShopAppointment: appointment id=%d not found", appointmentID)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("getShopAppointment: repository error for appointment id=%d: %v", appointmentID, err)
		return nil, fmt.Errorf("%w: getShopAppointment - repository error: %v", ErrInternal, err)
	}

	if appt.ShopID != shopID {
		s.logger.Warn("getShopAppointment: appointment id=%d belongs to another shop", appointmentID)
		return nil, ErrAppointmentNotFound
	}

	return appt, nil
}
