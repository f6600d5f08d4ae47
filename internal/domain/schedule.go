package domain

import (
	"time"

	"github.com/homemcom/AgendaService/pkg/types"
)

// Weekday numbers blocks the way owners configure them: 0=Monday..6=Sunday.
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// WeekdayOf converts a calendar date to the Monday-based weekday.
func WeekdayOf(t time.Time) Weekday {
	// time.Weekday is Sunday-based
	return Weekday((int(t.Weekday()) + 6) % 7)
}

// WorkingHoursBlock is a recurring weekly interval during which the shop
// accepts bookings. Several blocks per weekday are allowed (e.g. Friday
// 07:00-10:00 and 15:00-18:00); active blocks of one shop+weekday must not
// overlap, which the schedule write side enforces — the availability engine
// assumes it.
type WorkingHoursBlock struct {
	ID      int64
	ShopID  int64
	Weekday Weekday
	Start   types.TimeString
	End     types.TimeString
	Active  bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// BlockKind distinguishes recurring blocks; the availability engine treats
// both kinds identically, the kind only matters for the owner's calendar.
type BlockKind string

const (
	BlockFixedClient BlockKind = "fixed_client"
	BlockPause       BlockKind = "pause"
)

// RecurringBlock is a recurring weekly interval that removes capacity
// without an appointment: a standing client or a pause. Blocks of the same
// weekday may overlap each other; the engine treats their union. Start and
// end are same-day times of day — cross-midnight blocks are not supported.
type RecurringBlock struct {
	ID      int64
	ShopID  int64
	Kind    BlockKind
	Title   string // e.g. "João (package)" / "Lunch"
	Weekday Weekday
	Start   types.TimeString
	End     types.TimeString

	// Optional link to a service, only for fixed-client blocks
	ServiceID       *int64
	DurationMinutes *int

	Active bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IntervalOn materializes the block on a concrete date in the given location.
func (b *RecurringBlock) IntervalOn(date time.Time, loc *time.Location) (Interval, error) {
	start, err := b.Start.At(date, loc)
	if err != nil {
		return Interval{}, err
	}
	end, err := b.End.At(date, loc)
	if err != nil {
		return Interval{}, err
	}
	return Interval{Start: start, End: end}, nil
}
