package reschedule_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/homemcom/AgendaService/internal/domain"
	appointmentRepo "github.com/homemcom/AgendaService/internal/infra/storage/appointment"
	shopRepo "github.com/homemcom/AgendaService/internal/infra/storage/shop"
	"github.com/homemcom/AgendaService/pkg/ptr"
)

// UseCase use case для переноса записи на другое время
type UseCase struct {
	shopRepo           ShopRepository
	appointmentRepo    AppointmentRepository
	cancellationRepo   CancellationRepository
	workingHoursRepo   WorkingHoursRepository
	recurringBlockRepo RecurringBlockRepository
	txManager          TransactionManager
	newReference       ReferenceGenerator
	logger             Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	shopRepo ShopRepository,
	appointmentRepo AppointmentRepository,
	cancellationRepo CancellationRepository,
	workingHoursRepo WorkingHoursRepository,
	recurringBlockRepo RecurringBlockRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		shopRepo:           shopRepo,
		appointmentRepo:    appointmentRepo,
		cancellationRepo:   cancellationRepo,
		workingHoursRepo:   workingHoursRepo,
		recurringBlockRepo: recurringBlockRepo,
		txManager:          txManager,
		newReference:       uuid.NewString,
		logger:             logger,
	}
}

// Execute выполняет use case переноса записи.
// Перенос — это отмена старой записи и создание новой в одной сериализуемой
// транзакции: либо происходит и то и другое, либо ничего. Старая запись
// исключается из проверки пересечений, поэтому перенос внутри собственного
// слота (например, сдвиг на полчаса с перекрытием) разрешён.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleAppointment: shop=%s, appointment=%d, date=%s, time=%s",
		req.ShopSlug, req.AppointmentID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем магазин по slug
	shop, err := uc.shopRepo.GetBySlug(ctx, req.ShopSlug)
	if err != nil {
		if errors.Is(err, shopRepo.ErrShopNotFound) {
			uc.logger.Warn("RescheduleAppointment: shop slug=%s not found", req.ShopSlug)
			return nil, ErrShopNotFound
		}
		uc.logger.Error("RescheduleAppointment: failed to get shop slug=%s: %v", req.ShopSlug, err)
		return nil, fmt.Errorf("%w: failed to get shop: %v", ErrInternal, err)
	}

	loc, err := shop.Location()
	if err != nil {
		uc.logger.Error("RescheduleAppointment: invalid timezone %q for shop=%d: %v", shop.Timezone, shop.ID, err)
		return nil, fmt.Errorf("%w: invalid shop timezone: %v", ErrInternal, err)
	}

	var result *domain.Appointment

	// 3. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Получаем старую запись и проверяем принадлежность магазину
		old, err := uc.appointmentRepo.GetByID(txCtx, req.AppointmentID)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			uc.logger.Error("RescheduleAppointment: failed to get appointment id=%d: %v", req.AppointmentID, err)
			return fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
		}
		if old.ShopID != shop.ID {
			uc.logger.Warn("RescheduleAppointment: appointment id=%d belongs to another shop", req.AppointmentID)
			return ErrAppointmentNotFound
		}
		if old.IsCancelled() {
			return ErrAppointmentCancelled
		}

		// 3.2. Новый слот той же длительности, что и старый
		startsAt, err := req.StartTime.At(req.Date, loc)
		if err != nil {
			return fmt.Errorf("%w: startTime: %v", ErrInvalidInput, err)
		}
		slot := domain.Interval{Start: startsAt, End: startsAt.Add(old.EndsAt.Sub(old.StartsAt))}
		weekday := domain.WeekdayOf(startsAt)

		// 3.3. Слот должен помещаться в рабочие часы
		workingHours, err := uc.workingHoursRepo.ListActiveByShopAndWeekday(txCtx, shop.ID, weekday)
		if err != nil {
			uc.logger.Error("RescheduleAppointment: failed to get working hours: %v", err)
			return fmt.Errorf("%w: failed to get working hours: %v", ErrInternal, err)
		}
		if err := validateWithinWorkingHours(workingHours, slot, req.Date, loc); err != nil {
			return err
		}

		// 3.4. Слот не должен пересекаться с повторяющимися блоками
		recurringBlocks, err := uc.recurringBlockRepo.ListActiveByShopAndWeekday(txCtx, shop.ID, weekday)
		if err != nil {
			uc.logger.Error("RescheduleAppointment: failed to get recurring blocks: %v", err)
			return fmt.Errorf("%w: failed to get recurring blocks: %v", ErrInternal, err)
		}
		for _, block := range recurringBlocks {
			interval, err := block.IntervalOn(req.Date, loc)
			if err != nil {
				return fmt.Errorf("%w: invalid recurring block id=%d: %v", ErrInternal, block.ID, err)
			}
			if slot.Overlaps(interval) {
				return ErrSlotNotAvailable
			}
		}

		// 3.5. Финальная проверка гонки: пересечение с другими неотменёнными
		// записями, переносимая запись исключается
		taken, err := uc.appointmentRepo.ExistsOverlap(txCtx, shop.ID, slot.Start, slot.End, &old.ID)
		if err != nil {
			uc.logger.Error("RescheduleAppointment: failed to check overlap: %v", err)
			return fmt.Errorf("%w: failed to check overlap: %v", ErrInternal, err)
		}
		if taken {
			uc.logger.Warn("RescheduleAppointment: slot %s-%s already taken for shop=%d",
				slot.Start.Format(domain.TimeFormat), slot.End.Format(domain.TimeFormat), shop.ID)
			return ErrSlotNotAvailable
		}

		// 3.6. Отменяем старую запись с аудитом
		if err := uc.appointmentRepo.UpdateStatus(txCtx, old.ID, domain.StatusCancelled); err != nil {
			uc.logger.Error("RescheduleAppointment: failed to cancel appointment id=%d: %v", old.ID, err)
			return fmt.Errorf("%w: failed to cancel appointment: %v", ErrInternal, err)
		}

		if _, err := uc.cancellationRepo.Create(txCtx, &domain.Cancellation{
			AppointmentID: old.ID,
			Reason:        domain.CancelledByShop,
			Note:          ptr.Ptr("rescheduled"),
		}); err != nil {
			uc.logger.Error("RescheduleAppointment: failed to create cancellation: %v", err)
			return fmt.Errorf("%w: failed to create cancellation: %v", ErrInternal, err)
		}

		// 3.7. Создаем новую запись: услуга, клиент, цена и статус наследуются,
		// цена НЕ пересчитывается по текущему каталогу
		created, err := uc.appointmentRepo.Create(txCtx, &domain.Appointment{
			Reference:      uc.newReference(),
			ShopID:         old.ShopID,
			ClientID:       old.ClientID,
			ServiceID:      old.ServiceID,
			StartsAt:       slot.Start,
			EndsAt:         slot.End,
			Status:         old.Status,
			Origin:         old.Origin,
			PriceAtBooking: old.PriceAtBooking,
			ServiceName:    old.ServiceName,
			ClientName:     old.ClientName,
			ClientPhone:    old.ClientPhone,
		})
		if err != nil {
			uc.logger.Error("RescheduleAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("RescheduleAppointment: appointment id=%d rescheduled to id=%d", req.AppointmentID, result.ID)

	return &Response{
		ID:                     result.ID,
		Reference:              result.Reference,
		ShopID:                 result.ShopID,
		ServiceID:              result.ServiceID,
		ClientID:               result.ClientID,
		StartsAt:               result.StartsAt,
		EndsAt:                 result.EndsAt,
		Status:                 string(result.Status),
		Origin:                 string(result.Origin),
		PriceAtBooking:         result.PriceAtBooking,
		ServiceName:            result.ServiceName,
		ClientName:             result.ClientName,
		ClientPhone:            result.ClientPhone,
		CreatedAt:              result.CreatedAt,
		CancelledAppointmentID: req.AppointmentID,
	}, nil
}
