package create_booking

import (
	"fmt"
	"time"

	"github.com/homemcom/AgendaService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ShopSlug == "" {
		return fmt.Errorf("%w: shopSlug is required", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: startTime: %v", ErrInvalidInput, err)
	}

	switch req.Origin {
	case domain.OriginPublicLink, domain.OriginWhatsApp, domain.OriginManual:
	default:
		return fmt.Errorf("%w: unknown origin %q", ErrInvalidInput, req.Origin)
	}

	// Публичный поток идентифицирует клиента именем и телефоном
	if req.Origin == domain.OriginPublicLink {
		if req.ClientName == "" {
			return fmt.Errorf("%w: clientName is required", ErrInvalidInput)
		}
		if req.ClientPhone == "" {
			return fmt.Errorf("%w: clientPhone is required", ErrInvalidInput)
		}
	}

	if len(req.ClientName) > domain.MaxNameLength {
		return fmt.Errorf("%w: clientName exceeds %d characters", ErrInvalidInput, domain.MaxNameLength)
	}

	return nil
}

// validateWithinWorkingHours проверяет, что слот целиком помещается хотя бы
// в один активный блок рабочих часов дня
func validateWithinWorkingHours(
	blocks []*domain.WorkingHoursBlock,
	slot domain.Interval,
	date time.Time,
	loc *time.Location,
) error {
	for _, block := range blocks {
		blockStart, err := block.Start.At(date, loc)
		if err != nil {
			return fmt.Errorf("%w: invalid working hours block id=%d: %v", ErrInternal, block.ID, err)
		}
		blockEnd, err := block.End.At(date, loc)
		if err != nil {
			return fmt.Errorf("%w: invalid working hours block id=%d: %v", ErrInternal, block.ID, err)
		}

		if !slot.Start.Before(blockStart) && !slot.End.After(blockEnd) {
			return nil
		}
	}

	return ErrOutsideWorkingHours
}
