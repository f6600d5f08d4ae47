package get_available_slots

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homemcom/AgendaService/internal/domain"
	"github.com/homemcom/AgendaService/pkg/types"
)

// 2025-10-13 — понедельник
var testDate = time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)

func testLocation(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)
	return loc
}

func workingBlock(t *testing.T, start, end string) *domain.WorkingHoursBlock {
	t.Helper()
	startTS, err := types.NewTimeStringFromString(start)
	require.NoError(t, err)
	endTS, err := types.NewTimeStringFromString(end)
	require.NoError(t, err)
	return &domain.WorkingHoursBlock{
		ShopID:  1,
		Weekday: domain.Monday,
		Start:   startTS,
		End:     endTS,
		Active:  true,
	}
}

func recurringBlock(t *testing.T, start, end string) *domain.RecurringBlock {
	t.Helper()
	startTS, err := types.NewTimeStringFromString(start)
	require.NoError(t, err)
	endTS, err := types.NewTimeStringFromString(end)
	require.NoError(t, err)
	return &domain.RecurringBlock{
		ShopID:  1,
		Kind:    domain.BlockPause,
		Weekday: domain.Monday,
		Start:   startTS,
		End:     endTS,
		Active:  true,
	}
}

func appointmentAt(t *testing.T, loc *time.Location, start, end string, status domain.AppointmentStatus) *domain.Appointment {
	t.Helper()
	startTS, err := types.NewTimeStringFromString(start)
	require.NoError(t, err)
	endTS, err := types.NewTimeStringFromString(end)
	require.NoError(t, err)
	startsAt, err := startTS.At(testDate, loc)
	require.NoError(t, err)
	endsAt, err := endTS.At(testDate, loc)
	require.NoError(t, err)
	return &domain.Appointment{
		ShopID:   1,
		StartsAt: startsAt,
		EndsAt:   endsAt,
		Status:   status,
	}
}

// slotStarts извлекает времена начала слотов в формате HH:MM
func slotStarts(slots []Slot) []string {
	starts := make([]string, 0, len(slots))
	for _, s := range slots {
		starts = append(starts, s.StartsAt.Format(domain.TimeFormat))
	}
	return starts
}

func TestGenerateSlots(t *testing.T) {
	loc := testLocation(t)

	tests := []struct {
		name            string
		workingHours    []*domain.WorkingHoursBlock
		durationMinutes int
		appointments    []*domain.Appointment
		blocks          []*domain.RecurringBlock
		wantStarts      []string
	}{
		{
			name:            "booked slot splits the morning",
			workingHours:    []*domain.WorkingHoursBlock{workingBlock(t, "09:00", "12:00")},
			durationMinutes: 30,
			appointments: []*domain.Appointment{
				appointmentAt(t, loc, "10:00", "10:30", domain.StatusConfirmed),
			},
			wantStarts: []string{"09:00", "09:30", "10:30", "11:00", "11:30"},
		},
		{
			name:            "no grid: 25 minute service steps from block start",
			workingHours:    []*domain.WorkingHoursBlock{workingBlock(t, "09:00", "10:00")},
			durationMinutes: 25,
			wantStarts:      []string{"09:00", "09:25"},
		},
		{
			name:            "last slot may end exactly at block end",
			workingHours:    []*domain.WorkingHoursBlock{workingBlock(t, "09:00", "10:00")},
			durationMinutes: 30,
			wantStarts:      []string{"09:00", "09:30"},
		},
		{
			name:            "touching boundaries do not conflict",
			workingHours:    []*domain.WorkingHoursBlock{workingBlock(t, "09:00", "10:30")},
			durationMinutes: 30,
			appointments: []*domain.Appointment{
				appointmentAt(t, loc, "09:30", "10:00", domain.StatusAwaiting),
			},
			wantStarts: []string{"09:00", "10:00"},
		},
		{
			name:            "awaiting appointments occupy capacity",
			workingHours:    []*domain.WorkingHoursBlock{workingBlock(t, "09:00", "10:00")},
			durationMinutes: 30,
			appointments: []*domain.Appointment{
				appointmentAt(t, loc, "09:00", "09:30", domain.StatusAwaiting),
			},
			wantStarts: []string{"09:30"},
		},
		{
			name:            "cancelled appointments free their slot",
			workingHours:    []*domain.WorkingHoursBlock{workingBlock(t, "09:00", "10:00")},
			durationMinutes: 30,
			appointments: []*domain.Appointment{
				appointmentAt(t, loc, "09:00", "09:30", domain.StatusCancelled),
			},
			wantStarts: []string{"09:00", "09:30"},
		},
		{
			name: "blocks are never merged across the gap",
			workingHours: []*domain.WorkingHoursBlock{
				workingBlock(t, "09:00", "09:45"),
				workingBlock(t, "09:45", "10:30"),
			},
			durationMinutes: 30,
			wantStarts:      []string{"09:00", "09:45"},
		},
		{
			name: "lunch pause removes overlapping candidates",
			workingHours: []*domain.WorkingHoursBlock{
				workingBlock(t, "09:00", "15:00"),
			},
			durationMinutes: 60,
			blocks:          []*domain.RecurringBlock{recurringBlock(t, "12:00", "13:00")},
			wantStarts:      []string{"09:00", "10:00", "11:00", "13:00", "14:00"},
		},
		{
			name: "partial overlap with pause removes the slot entirely",
			workingHours: []*domain.WorkingHoursBlock{
				workingBlock(t, "09:00", "14:00"),
			},
			durationMinutes: 90,
			blocks:          []*domain.RecurringBlock{recurringBlock(t, "12:00", "12:30")},
			// 10:30+90=12:00 касается паузы и проходит, курсор 12:00 занят
			wantStarts: []string{"09:00", "10:30"},
		},
		{
			name:            "service longer than the block yields nothing",
			workingHours:    []*domain.WorkingHoursBlock{workingBlock(t, "09:00", "09:45")},
			durationMinutes: 60,
			wantStarts:      []string{},
		},
		{
			name: "overlapping working blocks emit duplicate candidates",
			workingHours: []*domain.WorkingHoursBlock{
				workingBlock(t, "09:00", "10:00"),
				workingBlock(t, "09:00", "10:00"),
			},
			durationMinutes: 60,
			wantStarts:      []string{"09:00", "09:00"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			busy, err := buildBusyIntervals(tt.appointments, tt.blocks, testDate, loc)
			require.NoError(t, err)

			duration := time.Duration(tt.durationMinutes) * time.Minute
			slots, err := generateSlots(tt.workingHours, duration, busy, testDate, loc)
			require.NoError(t, err)

			assert.Equal(t, tt.wantStarts, slotStarts(slots))
		})
	}
}

func TestGenerateSlots_SlotLength(t *testing.T) {
	loc := testLocation(t)

	slots, err := generateSlots(
		[]*domain.WorkingHoursBlock{workingBlock(t, "09:00", "12:00")},
		45*time.Minute,
		nil,
		testDate,
		loc,
	)
	require.NoError(t, err)
	require.NotEmpty(t, slots)

	for _, slot := range slots {
		assert.Equal(t, 45*time.Minute, slot.EndsAt.Sub(slot.StartsAt))
	}
}

func TestGenerateSlots_SlotsCarryShopTimezone(t *testing.T) {
	loc := testLocation(t)

	slots, err := generateSlots(
		[]*domain.WorkingHoursBlock{workingBlock(t, "09:00", "10:00")},
		30*time.Minute,
		nil,
		testDate,
		loc,
	)
	require.NoError(t, err)
	require.Len(t, slots, 2)

	assert.Equal(t, loc.String(), slots[0].StartsAt.Location().String())
	assert.Equal(t, "09:00", slots[0].StartsAt.Format(domain.TimeFormat))
}

func TestGenerateSlots_DSTTransitionDay(t *testing.T) {
	// В Сан-Паулу перевода часов больше нет, берём зону с переходом:
	// 2025-11-02 — конец летнего времени в Нью-Йорке
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	date := time.Date(2025, 11, 2, 0, 0, 0, 0, loc)

	slots, err := generateSlots(
		[]*domain.WorkingHoursBlock{workingBlock(t, "09:00", "11:00")},
		30*time.Minute,
		nil,
		date,
		loc,
	)
	require.NoError(t, err)

	assert.Equal(t, []string{"09:00", "09:30", "10:00", "10:30"}, slotStarts(slots))
	for _, slot := range slots {
		assert.Equal(t, 30*time.Minute, slot.EndsAt.Sub(slot.StartsAt))
		_, offset := slot.StartsAt.Zone()
		assert.Equal(t, -5*60*60, offset)
	}
}

func TestBuildBusyIntervals(t *testing.T) {
	loc := testLocation(t)

	appointments := []*domain.Appointment{
		appointmentAt(t, loc, "09:00", "09:30", domain.StatusConfirmed),
		appointmentAt(t, loc, "10:00", "10:30", domain.StatusCancelled),
	}
	blocks := []*domain.RecurringBlock{recurringBlock(t, "12:00", "13:00")}

	busy, err := buildBusyIntervals(appointments, blocks, testDate, loc)
	require.NoError(t, err)

	// Отменённая запись не попадает в занятые интервалы
	require.Len(t, busy, 2)
	assert.Equal(t, "09:00", busy[0].Start.Format(domain.TimeFormat))
	assert.Equal(t, "12:00", busy[1].Start.Format(domain.TimeFormat))
}

func TestDayBounds(t *testing.T) {
	loc := testLocation(t)

	start, end := dayBounds(testDate, loc)

	assert.Equal(t, time.Date(2025, 10, 13, 0, 0, 0, 0, loc), start)
	assert.Equal(t, time.Date(2025, 10, 14, 0, 0, 0, 0, loc), end)
}

func TestWeekdayOf(t *testing.T) {
	assert.Equal(t, domain.Monday, domain.WeekdayOf(testDate))
	assert.Equal(t, domain.Sunday, domain.WeekdayOf(testDate.AddDate(0, 0, 6)))
}
