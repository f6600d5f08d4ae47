package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/homemcom/AgendaService/internal/domain"
	clientRepo "github.com/homemcom/AgendaService/internal/infra/storage/client"
	serviceRepo "github.com/homemcom/AgendaService/internal/infra/storage/service"
	shopRepo "github.com/homemcom/AgendaService/internal/infra/storage/shop"
	billingClient "github.com/homemcom/AgendaService/internal/integrations/billingservice"
)

// UseCase use case для создания записи
type UseCase struct {
	shopRepo           ShopRepository
	serviceRepo        ServiceRepository
	clientRepo         ClientRepository
	appointmentRepo    AppointmentRepository
	workingHoursRepo   WorkingHoursRepository
	recurringBlockRepo RecurringBlockRepository
	billingClient      BillingServiceClient
	txManager          TransactionManager
	newReference       ReferenceGenerator
	logger             Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	shopRepo ShopRepository,
	serviceRepo ServiceRepository,
	clientRepo ClientRepository,
	appointmentRepo AppointmentRepository,
	workingHoursRepo WorkingHoursRepository,
	recurringBlockRepo RecurringBlockRepository,
	billingClient BillingServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		shopRepo:           shopRepo,
		serviceRepo:        serviceRepo,
		clientRepo:         clientRepo,
		appointmentRepo:    appointmentRepo,
		workingHoursRepo:   workingHoursRepo,
		recurringBlockRepo: recurringBlockRepo,
		billingClient:      billingClient,
		txManager:          txManager,
		newReference:       uuid.NewString,
		logger:             logger,
	}
}

// Execute выполняет use case создания записи.
// Проверка пересечений и вставка идут в одной сериализуемой транзакции:
// из двух конкурентных запросов на один слот ровно один получает запись,
// второй — ErrSlotNotAvailable.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: shop=%s, service=%d, date=%s, time=%s, origin=%s",
		req.ShopSlug, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime, req.Origin)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем магазин по slug
	shop, err := uc.shopRepo.GetBySlug(ctx, req.ShopSlug)
	if err != nil {
		if errors.Is(err, shopRepo.ErrShopNotFound) {
			uc.logger.Warn("CreateBooking: shop slug=%s not found", req.ShopSlug)
			return nil, ErrShopNotFound
		}
		uc.logger.Error("CreateBooking: failed to get shop slug=%s: %v", req.ShopSlug, err)
		return nil, fmt.Errorf("%w: failed to get shop: %v", ErrInternal, err)
	}

	loc, err := shop.Location()
	if err != nil {
		uc.logger.Error("CreateBooking: invalid timezone %q for shop=%d: %v", shop.Timezone, shop.ID, err)
		return nil, fmt.Errorf("%w: invalid shop timezone: %v", ErrInternal, err)
	}

	// 3. Публичный поток проверяет подписку магазина
	if req.Origin == domain.OriginPublicLink {
		if err := uc.checkSubscription(ctx, shop.ID); err != nil {
			return nil, err
		}
	}

	// 4. Получаем услугу — фиксируем цену и длительность на момент записи
	service, err := uc.serviceRepo.GetActiveByID(ctx, shop.ID, req.ServiceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%d not found in shop=%d", req.ServiceID, shop.ID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 5. Вычисляем интервал слота в таймзоне магазина
	startsAt, err := req.StartTime.At(req.Date, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: startTime: %v", ErrInvalidInput, err)
	}
	slot := domain.Interval{Start: startsAt, End: startsAt.Add(service.Duration())}

	weekday := domain.WeekdayOf(startsAt)

	// Переменная для хранения результата
	var result *domain.Appointment

	// 6. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Слот должен целиком помещаться в блок рабочих часов
		workingHours, err := uc.workingHoursRepo.ListActiveByShopAndWeekday(txCtx, shop.ID, weekday)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get working hours: %v", err)
			return fmt.Errorf("%w: failed to get working hours: %v", ErrInternal, err)
		}

		if err := validateWithinWorkingHours(workingHours, slot, req.Date, loc); err != nil {
			uc.logger.Warn("CreateBooking: slot %s-%s outside working hours for shop=%d",
				slot.Start.Format(domain.TimeFormat), slot.End.Format(domain.TimeFormat), shop.ID)
			return err
		}

		// 6.2. Слот не должен пересекаться с повторяющимися блоками
		recurringBlocks, err := uc.recurringBlockRepo.ListActiveByShopAndWeekday(txCtx, shop.ID, weekday)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get recurring blocks: %v", err)
			return fmt.Errorf("%w: failed to get recurring blocks: %v", ErrInternal, err)
		}

		for _, block := range recurringBlocks {
			interval, err := block.IntervalOn(req.Date, loc)
			if err != nil {
				return fmt.Errorf("%w: invalid recurring block id=%d: %v", ErrInternal, block.ID, err)
			}
			if slot.Overlaps(interval) {
				uc.logger.Warn("CreateBooking: slot overlaps recurring block id=%d", block.ID)
				return ErrSlotNotAvailable
			}
		}

		// 6.3. Финальная проверка гонки: пересечение с неотменёнными записями
		taken, err := uc.appointmentRepo.ExistsOverlap(txCtx, shop.ID, slot.Start, slot.End, nil)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to check overlap: %v", err)
			return fmt.Errorf("%w: failed to check overlap: %v", ErrInternal, err)
		}
		if taken {
			uc.logger.Warn("CreateBooking: slot %s-%s already taken for shop=%d",
				slot.Start.Format(domain.TimeFormat), slot.End.Format(domain.TimeFormat), shop.ID)
			return ErrSlotNotAvailable
		}

		// 6.4. Разрешаем клиента
		client, err := uc.resolveClient(txCtx, shop.ID, req)
		if err != nil {
			return err
		}

		// 6.5. Создаем запись с денормализацией данных.
		// Публичная запись ждёт подтверждения владельцем, запись владельца
		// подтверждена сразу.
		status := domain.StatusConfirmed
		if req.Origin == domain.OriginPublicLink {
			status = domain.StatusAwaiting
		}

		appt := &domain.Appointment{
			Reference: uc.newReference(),
			ShopID:    shop.ID,
			ServiceID: service.ID,
			StartsAt:  slot.Start,
			EndsAt:    slot.End,
			Status:    status,
			Origin:    req.Origin,
			// Денормализация: цена фиксируется на момент записи
			PriceAtBooking: service.Price,
			ServiceName:    service.Name,
		}

		if client != nil {
			appt.ClientID = &client.ID
			appt.ClientName = &client.Name
			appt.ClientPhone = client.Phone
		} else if req.ClientName != "" {
			appt.ClientName = &req.ClientName
			if req.ClientPhone != "" {
				appt.ClientPhone = &req.ClientPhone
			}
		}

		// 6.6. Сохраняем запись
		created, err := uc.appointmentRepo.Create(txCtx, appt)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created appointment id=%d, reference=%s, status=%s",
		result.ID, result.Reference, result.Status)

	return toResponse(result), nil
}

// checkSubscription проверяет подписку магазина через BillingService.
// При недоступности биллинга бронирование пропускается — падение внешнего
// сервиса не должно останавливать запись клиентов.
func (uc *UseCase) checkSubscription(ctx context.Context, shopID int64) error {
	sub, err := uc.billingClient.GetSubscriptionWithGracefulDegradation(ctx, shopID)
	if err != nil {
		if errors.Is(err, billingClient.ErrSubscriptionNotFound) {
			uc.logger.Warn("CreateBooking: shop=%d has no subscription", shopID)
			return ErrShopNotSubscribed
		}
		if errors.Is(err, billingClient.ErrServiceDegraded) {
			uc.logger.Warn("CreateBooking: billing degraded, allowing booking for shop=%d", shopID)
			return nil
		}
		uc.logger.Error("CreateBooking: failed to check subscription for shop=%d: %v", shopID, err)
		return fmt.Errorf("%w: failed to check subscription: %v", ErrInternal, err)
	}

	if !sub.IsActive() {
		uc.logger.Warn("CreateBooking: subscription for shop=%d is %s", shopID, sub.Status)
		return ErrShopNotSubscribed
	}

	return nil
}

// resolveClient определяет клиента записи.
// Публичный поток ищет клиента по телефону (или заводит нового) и отклоняет
// заблокированных. Владелец может указать существующего клиента по ID либо
// оставить только денормализованные имя и телефон.
func (uc *UseCase) resolveClient(ctx context.Context, shopID int64, req *Request) (*domain.Client, error) {
	if req.Origin == domain.OriginPublicLink {
		client, err := uc.clientRepo.GetOrCreateByPhone(ctx, shopID, req.ClientName, req.ClientPhone)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to resolve client by phone: %v", err)
			return nil, fmt.Errorf("%w: failed to resolve client: %v", ErrInternal, err)
		}
		if client.BlockedOnline {
			uc.logger.Warn("CreateBooking: client id=%d is blocked from online booking", client.ID)
			return nil, ErrClientBlocked
		}
		return client, nil
	}

	if req.ClientID != nil {
		client, err := uc.clientRepo.GetByID(ctx, shopID, *req.ClientID)
		if err != nil {
			if errors.Is(err, clientRepo.ErrClientNotFound) {
				uc.logger.Warn("CreateBooking: client id=%d not found in shop=%d", *req.ClientID, shopID)
				return nil, ErrClientNotFound
			}
			uc.logger.Error("CreateBooking: failed to get client id=%d: %v", *req.ClientID, err)
			return nil, fmt.Errorf("%w: failed to get client: %v", ErrInternal, err)
		}
		return client, nil
	}

	return nil, nil
}

func toResponse(appt *domain.Appointment) *Response {
	return &Response{
		ID:             appt.ID,
		Reference:      appt.Reference,
		ShopID:         appt.ShopID,
		ServiceID:      appt.ServiceID,
		ClientID:       appt.ClientID,
		StartsAt:       appt.StartsAt,
		EndsAt:         appt.EndsAt,
		Status:         string(appt.Status),
		Origin:         string(appt.Origin),
		PriceAtBooking: appt.PriceAtBooking,
		ServiceName:    appt.ServiceName,
		ClientName:     appt.ClientName,
		ClientPhone:    appt.ClientPhone,
		CreatedAt:      appt.CreatedAt,
	}
}
