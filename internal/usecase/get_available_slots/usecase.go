package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/homemcom/AgendaService/internal/domain"
	serviceRepo "github.com/homemcom/AgendaService/internal/infra/storage/service"
	shopRepo "github.com/homemcom/AgendaService/internal/infra/storage/shop"
)

// UseCase use case для получения свободных слотов на дату
type UseCase struct {
	shopRepo           ShopRepository
	serviceRepo        ServiceRepository
	appointmentRepo    AppointmentRepository
	workingHoursRepo   WorkingHoursRepository
	recurringBlockRepo RecurringBlockRepository
	logger             Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	shopRepo ShopRepository,
	serviceRepo ServiceRepository,
	appointmentRepo AppointmentRepository,
	workingHoursRepo WorkingHoursRepository,
	recurringBlockRepo RecurringBlockRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		shopRepo:           shopRepo,
		serviceRepo:        serviceRepo,
		appointmentRepo:    appointmentRepo,
		workingHoursRepo:   workingHoursRepo,
		recurringBlockRepo: recurringBlockRepo,
		logger:             logger,
	}
}

// Execute выполняет use case получения свободных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: shop=%s, service=%d, date=%s",
		req.ShopSlug, req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем магазин по slug
	shop, err := uc.shopRepo.GetBySlug(ctx, req.ShopSlug)
	if err != nil {
		if errors.Is(err, shopRepo.ErrShopNotFound) {
			uc.logger.Warn("GetAvailableSlots: shop slug=%s not found", req.ShopSlug)
			return nil, ErrShopNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get shop slug=%s: %v", req.ShopSlug, err)
		return nil, fmt.Errorf("%w: failed to get shop: %v", ErrInternal, err)
	}

	// 3. Разрешаем таймзону магазина — вся арифметика дня идёт в ней
	loc, err := shop.Location()
	if err != nil {
		uc.logger.Error("GetAvailableSlots: invalid timezone %q for shop=%d: %v", shop.Timezone, shop.ID, err)
		return nil, fmt.Errorf("%w: invalid shop timezone: %v", ErrInternal, err)
	}

	// 4. Получаем услугу — её длительность задаёт шаг и длину слота
	service, err := uc.serviceRepo.GetActiveByID(ctx, shop.ID, req.ServiceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found in shop=%d", req.ServiceID, shop.ID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	duration := service.Duration()

	// 5. Блоки рабочих часов на день недели (в порядке следования)
	weekday := domain.WeekdayOf(req.Date)
	workingHours, err := uc.workingHoursRepo.ListActiveByShopAndWeekday(ctx, shop.ID, weekday)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get working hours: %v", err)
		return nil, fmt.Errorf("%w: failed to get working hours: %v", ErrInternal, err)
	}

	// Нет рабочих часов — выходной, пустой список без ошибки
	if len(workingHours) == 0 {
		uc.logger.Info("GetAvailableSlots: shop=%d has no working hours on %s", shop.ID, req.Date.Format(domain.DateFormat))
		return uc.emptyResponse(req, shop, service, loc), nil
	}

	// 6. Повторяющиеся блоки (постоянные клиенты, перерывы) на день недели
	recurringBlocks, err := uc.recurringBlockRepo.ListActiveByShopAndWeekday(ctx, shop.ID, weekday)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get recurring blocks: %v", err)
		return nil, fmt.Errorf("%w: failed to get recurring blocks: %v", ErrInternal, err)
	}

	// 7. Неотменённые записи за календарные сутки магазина
	dayStart, dayEnd := dayBounds(req.Date, loc)
	appointments, err := uc.appointmentRepo.ListByShopForDay(ctx, shop.ID, dayStart, dayEnd)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	// 8. Собираем занятые интервалы и обходим блоки курсором
	busy, err := buildBusyIntervals(appointments, recurringBlocks, req.Date, loc)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to build busy intervals: %v", err)
		return nil, fmt.Errorf("%w: failed to build busy intervals: %v", ErrInternal, err)
	}

	slots, err := generateSlots(workingHours, duration, busy, req.Date, loc)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
	}

	uc.logger.Info("GetAvailableSlots: %d free slots for shop=%d, service=%d, date=%s",
		len(slots), shop.ID, service.ID, req.Date.Format(domain.DateFormat))

	return &Response{
		Date:            req.Date,
		ShopID:          shop.ID,
		ServiceID:       service.ID,
		DurationMinutes: int(duration.Minutes()),
		Timezone:        loc.String(),
		Slots:           slots,
	}, nil
}

func (uc *UseCase) emptyResponse(req *Request, shop *domain.Shop, service *domain.Service, loc *time.Location) *Response {
	return &Response{
		Date:            req.Date,
		ShopID:          shop.ID,
		ServiceID:       service.ID,
		DurationMinutes: int(service.Duration().Minutes()),
		Timezone:        loc.String(),
		Slots:           []Slot{},
	}
}
