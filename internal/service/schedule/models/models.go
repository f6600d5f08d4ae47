package models

import (
	"errors"
	"time"

	"github.com/homemcom/AgendaService/internal/domain"
	"github.com/homemcom/AgendaService/pkg/types"
)

var (
	// ErrInvalidWeekday возвращается при некорректном дне недели
	ErrInvalidWeekday = errors.New("invalid weekday, expected 0 (Monday) to 6 (Sunday)")

	// ErrInvalidKind возвращается при некорректном типе повторяющегося блока
	ErrInvalidKind = errors.New("invalid block kind")
)

// Request модели

// CreateWorkingHoursRequest запрос на создание блока рабочих часов
type CreateWorkingHoursRequest struct {
	UserID  int64  `json:"userId"`
	Weekday int    `json:"weekday"` // 0=понедельник .. 6=воскресенье
	Start   string `json:"start"`   // "HH:MM"
	End     string `json:"end"`     // "HH:MM"
}

// CreateRecurringBlockRequest запрос на создание повторяющегося блока
type CreateRecurringBlockRequest struct {
	UserID          int64  `json:"userId"`
	Kind            string `json:"kind"` // fixed_client | pause
	Title           string `json:"title"`
	Weekday         int    `json:"weekday"`
	Start           string `json:"start"`
	End             string `json:"end"`
	ServiceID       *int64 `json:"serviceId,omitempty"`
	DurationMinutes *int   `json:"durationMinutes,omitempty"`
}

// Response модели

// WorkingHoursResponse ответ с данными блока рабочих часов
type WorkingHoursResponse struct {
	ID      int64  `json:"id"`
	ShopID  int64  `json:"shopId"`
	Weekday int    `json:"weekday"`
	Start   string `json:"start"`
	End     string `json:"end"`
	Active  bool   `json:"active"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// WorkingHoursListResponse ответ со списком блоков рабочих часов
type WorkingHoursListResponse struct {
	Blocks []WorkingHoursResponse `json:"blocks"`
}

// RecurringBlockResponse ответ с данными повторяющегося блока
type RecurringBlockResponse struct {
	ID              int64  `json:"id"`
	ShopID          int64  `json:"shopId"`
	Kind            string `json:"kind"`
	Title           string `json:"title"`
	Weekday         int    `json:"weekday"`
	Start           string `json:"start"`
	End             string `json:"end"`
	ServiceID       *int64 `json:"serviceId,omitempty"`
	DurationMinutes *int   `json:"durationMinutes,omitempty"`
	Active          bool   `json:"active"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// RecurringBlockListResponse ответ со списком повторяющихся блоков
type RecurringBlockListResponse struct {
	Blocks []RecurringBlockResponse `json:"blocks"`
}

// Методы конвертации

// FromDomainWorkingHours конвертирует domain модель в DTO
func FromDomainWorkingHours(b *domain.WorkingHoursBlock) *WorkingHoursResponse {
	if b == nil {
		return nil
	}
	return &WorkingHoursResponse{
		ID:        b.ID,
		ShopID:    b.ShopID,
		Weekday:   int(b.Weekday),
		Start:     b.Start.String(),
		End:       b.End.String(),
		Active:    b.Active,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

// FromDomainWorkingHoursList конвертирует список domain моделей в DTO
func FromDomainWorkingHoursList(blocks []*domain.WorkingHoursBlock) *WorkingHoursListResponse {
	result := make([]WorkingHoursResponse, 0, len(blocks))
	for _, b := range blocks {
		result = append(result, *FromDomainWorkingHours(b))
	}
	return &WorkingHoursListResponse{Blocks: result}
}

// FromDomainRecurringBlock конвертирует domain модель в DTO
func FromDomainRecurringBlock(b *domain.RecurringBlock) *RecurringBlockResponse {
	if b == nil {
		return nil
	}
	return &RecurringBlockResponse{
		ID:              b.ID,
		ShopID:          b.ShopID,
		Kind:            string(b.Kind),
		Title:           b.Title,
		Weekday:         int(b.Weekday),
		Start:           b.Start.String(),
		End:             b.End.String(),
		ServiceID:       b.ServiceID,
		DurationMinutes: b.DurationMinutes,
		Active:          b.Active,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

// FromDomainRecurringBlockList конвертирует список domain моделей в DTO
func FromDomainRecurringBlockList(blocks []*domain.RecurringBlock) *RecurringBlockListResponse {
	result := make([]RecurringBlockResponse, 0, len(blocks))
	for _, b := range blocks {
		result = append(result, *FromDomainRecurringBlock(b))
	}
	return &RecurringBlockListResponse{Blocks: result}
}

// ToDomainWeekday валидирует и конвертирует день недели
func ToDomainWeekday(weekday int) (domain.Weekday, error) {
	if weekday < int(domain.Monday) || weekday > int(domain.Sunday) {
		return 0, ErrInvalidWeekday
	}
	return domain.Weekday(weekday), nil
}

// ToDomainBlockKind валидирует и конвертирует тип повторяющегося блока
func ToDomainBlockKind(kind string) (domain.BlockKind, error) {
	switch domain.BlockKind(kind) {
	case domain.BlockFixedClient, domain.BlockPause:
		return domain.BlockKind(kind), nil
	default:
		return "", ErrInvalidKind
	}
}

// ParseTimeRange валидирует границы блока: оба времени в формате "HH:MM",
// конец строго позже начала
func ParseTimeRange(start, end string) (types.TimeString, types.TimeString, error) {
	startTS, err := types.NewTimeStringFromString(start)
	if err != nil {
		return "", "", err
	}
	endTS, err := types.NewTimeStringFromString(end)
	if err != nil {
		return "", "", err
	}
	return startTS, endTS, nil
}
