package domain

import "time"

// ShopKind represents the type of establishment
type ShopKind string

const (
	KindBarbershop ShopKind = "barbershop"
	KindSalon      ShopKind = "salon"
	KindManicure   ShopKind = "manicure"
	KindEyebrows   ShopKind = "eyebrows"
	KindMakeup     ShopKind = "makeup"
	KindOther      ShopKind = "other"
)

// Shop is the tenant root: services, clients, schedule and appointments
// all belong to exactly one shop. Every query is scoped by shop id.
type Shop struct {
	ID       int64
	OwnerID  int64
	Name     string
	Slug     string // unique, used in the public booking link
	Phone    *string
	Address  *string
	Kind     ShopKind
	Timezone string // IANA name, e.g. "America/Sao_Paulo"
	Active   bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Location resolves the shop's configured timezone.
// All wall-clock arithmetic (slot boundaries, overlap tests) happens in it.
func (s *Shop) Location() (*time.Location, error) {
	if s.Timezone == "" {
		return time.LoadLocation(DefaultTimezone)
	}
	return time.LoadLocation(s.Timezone)
}

// Service is a bookable offering of a shop (haircut, beard trim, ...).
// Duration defines both the appointment length and the slot step of the
// availability engine. Inactive services are hidden from booking but keep
// their appointment history.
type Service struct {
	ID              int64
	ShopID          int64
	Name            string
	DurationMinutes int
	Price           float64
	Active          bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Duration returns the service duration, falling back to the default
// when the stored value is not positive.
func (s *Service) Duration() time.Duration {
	minutes := s.DurationMinutes
	if minutes <= 0 {
		minutes = DefaultServiceDurationMinutes
	}
	return time.Duration(minutes) * time.Minute
}

// Client is a person who books appointments at a shop. Phone numbers are
// stored digits-only so the same person found via the public link maps to
// one record.
type Client struct {
	ID            int64
	ShopID        int64
	Name          string
	Phone         *string
	Notes         *string
	BlockedOnline bool // blocked clients cannot book through the public link

	CreatedAt time.Time
	UpdatedAt time.Time
}
