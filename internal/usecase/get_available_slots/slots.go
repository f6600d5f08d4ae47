package get_available_slots

import (
	"time"

	"github.com/homemcom/AgendaService/internal/domain"
)

// buildBusyIntervals собирает занятые интервалы дня: неотменённые записи
// плюс повторяющиеся блоки, материализованные на дату. Интервалы могут
// пересекаться между собой — дедупликация не нужна, каждый проверяется
// независимо.
func buildBusyIntervals(
	appointments []*domain.Appointment,
	blocks []*domain.RecurringBlock,
	date time.Time,
	loc *time.Location,
) ([]domain.Interval, error) {
	busy := make([]domain.Interval, 0, len(appointments)+len(blocks))

	for _, appt := range appointments {
		if !appt.OccupiesCapacity() {
			continue
		}
		busy = append(busy, appt.Interval())
	}

	for _, block := range blocks {
		interval, err := block.IntervalOn(date, loc)
		if err != nil {
			return nil, err
		}
		busy = append(busy, interval)
	}

	return busy, nil
}

// walkBlock обходит один блок рабочих часов курсором с шагом, равным
// длительности услуги, и возвращает свободные слоты.
//
// Инварианты обхода:
//   - слот целиком помещается в блок: последний кандидат — тот, чей конец
//     совпадает с концом блока;
//   - сетки нет: курсор стартует с начала блока, услуга на 25 минут даёт
//     слоты 09:00, 09:25, 09:50, ...;
//   - слот свободен, если не пересекается ни с одним занятым интервалом
//     (полуоткрытая семантика — касание границ не мешает).
func walkBlock(
	block *domain.WorkingHoursBlock,
	duration time.Duration,
	busy []domain.Interval,
	date time.Time,
	loc *time.Location,
) ([]Slot, error) {
	blockStart, err := block.Start.At(date, loc)
	if err != nil {
		return nil, err
	}
	blockEnd, err := block.End.At(date, loc)
	if err != nil {
		return nil, err
	}

	slots := make([]Slot, 0)
	for cursor := blockStart; !cursor.Add(duration).After(blockEnd); cursor = cursor.Add(duration) {
		candidate := domain.Interval{Start: cursor, End: cursor.Add(duration)}
		if candidate.OverlapsAny(busy) {
			continue
		}
		slots = append(slots, Slot{StartsAt: candidate.Start, EndsAt: candidate.End})
	}

	return slots, nil
}

// generateSlots обходит блоки рабочих часов в порядке их следования и
// собирает свободные слоты. Блоки не объединяются: запись и перерыв между
// блоками не порождают слотов, даже если суммарного времени хватило бы.
func generateSlots(
	workingHours []*domain.WorkingHoursBlock,
	duration time.Duration,
	busy []domain.Interval,
	date time.Time,
	loc *time.Location,
) ([]Slot, error) {
	slots := make([]Slot, 0)

	for _, block := range workingHours {
		blockSlots, err := walkBlock(block, duration, busy, date, loc)
		if err != nil {
			return nil, err
		}
		slots = append(slots, blockSlots...)
	}

	return slots, nil
}

// dayBounds возвращает границы календарных суток [начало, конец) в таймзоне магазина
func dayBounds(date time.Time, loc *time.Location) (time.Time, time.Time) {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1)
}
