package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homemcom/AgendaService/internal/domain"
	serviceRepo "github.com/homemcom/AgendaService/internal/infra/storage/service"
	shopRepo "github.com/homemcom/AgendaService/internal/infra/storage/shop"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeShopRepo struct {
	shop *domain.Shop
}

func (f *fakeShopRepo) GetBySlug(_ context.Context, _ string) (*domain.Shop, error) {
	if f.shop == nil {
		return nil, shopRepo.ErrShopNotFound
	}
	return f.shop, nil
}

type fakeServiceRepo struct {
	service *domain.Service
}

func (f *fakeServiceRepo) GetActiveByID(_ context.Context, _, _ int64) (*domain.Service, error) {
	if f.service == nil {
		return nil, serviceRepo.ErrServiceNotFound
	}
	return f.service, nil
}

type fakeAppointmentRepo struct {
	appointments []*domain.Appointment
}

func (f *fakeAppointmentRepo) ListByShopForDay(_ context.Context, _ int64, _, _ time.Time) ([]*domain.Appointment, error) {
	return f.appointments, nil
}

type fakeWorkingHoursRepo struct {
	blocks []*domain.WorkingHoursBlock
}

func (f *fakeWorkingHoursRepo) ListActiveByShopAndWeekday(_ context.Context, _ int64, _ domain.Weekday) ([]*domain.WorkingHoursBlock, error) {
	return f.blocks, nil
}

type fakeRecurringBlockRepo struct {
	blocks []*domain.RecurringBlock
}

func (f *fakeRecurringBlockRepo) ListActiveByShopAndWeekday(_ context.Context, _ int64, _ domain.Weekday) ([]*domain.RecurringBlock, error) {
	return f.blocks, nil
}

type ucFixture struct {
	shops        *fakeShopRepo
	services     *fakeServiceRepo
	appointments *fakeAppointmentRepo
	workingHours *fakeWorkingHoursRepo
	recurring    *fakeRecurringBlockRepo
	uc           *UseCase
}

func newUCFixture(t *testing.T) *ucFixture {
	t.Helper()

	f := &ucFixture{
		shops: &fakeShopRepo{shop: &domain.Shop{
			ID:       1,
			OwnerID:  7,
			Slug:     "barber-joe",
			Timezone: "America/Sao_Paulo",
			Active:   true,
		}},
		services: &fakeServiceRepo{service: &domain.Service{
			ID:              3,
			ShopID:          1,
			Name:            "Corte",
			DurationMinutes: 30,
			Price:           50,
			Active:          true,
		}},
		appointments: &fakeAppointmentRepo{},
		workingHours: &fakeWorkingHoursRepo{},
		recurring:    &fakeRecurringBlockRepo{},
	}
	f.uc = NewUseCase(f.shops, f.services, f.appointments, f.workingHours, f.recurring, nopLogger{})
	return f
}

func validRequest() *Request {
	return &Request{ShopSlug: "barber-joe", ServiceID: 3, Date: testDate}
}

func TestExecute(t *testing.T) {
	loc := testLocation(t)

	f := newUCFixture(t)
	f.workingHours.blocks = []*domain.WorkingHoursBlock{workingBlock(t, "09:00", "12:00")}
	f.appointments.appointments = []*domain.Appointment{
		appointmentAt(t, loc, "10:00", "10:30", domain.StatusConfirmed),
	}

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ShopID)
	assert.Equal(t, int64(3), resp.ServiceID)
	assert.Equal(t, 30, resp.DurationMinutes)
	assert.Equal(t, "America/Sao_Paulo", resp.Timezone)
	assert.Equal(t, []string{"09:00", "09:30", "10:30", "11:00", "11:30"}, slotStarts(resp.Slots))
}

func TestExecute_DayOff(t *testing.T) {
	f := newUCFixture(t)

	// Рабочих часов на этот день нет — выходной, а не ошибка
	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Empty(t, resp.Slots)
	assert.NotNil(t, resp.Slots)
	assert.Equal(t, "America/Sao_Paulo", resp.Timezone)
}

func TestExecute_DayOffReportsResolvedTimezone(t *testing.T) {
	f := newUCFixture(t)
	f.shops.shop.Timezone = ""

	// Пустая таймзона магазина разрешается в значение по умолчанию
	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultTimezone, resp.Timezone)
}

func TestExecute_ShopNotFound(t *testing.T) {
	f := newUCFixture(t)
	f.shops.shop = nil

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrShopNotFound)
}

func TestExecute_ServiceNotFound(t *testing.T) {
	f := newUCFixture(t)
	f.services.service = nil

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{name: "missing slug", mutate: func(r *Request) { r.ShopSlug = "" }},
		{name: "non-positive service id", mutate: func(r *Request) { r.ServiceID = 0 }},
		{name: "zero date", mutate: func(r *Request) { r.Date = time.Time{} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newUCFixture(t)
			req := validRequest()
			tt.mutate(req)

			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
