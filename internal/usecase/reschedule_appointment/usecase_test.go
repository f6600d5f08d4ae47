package reschedule_appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homemcom/AgendaService/internal/domain"
	appointmentRepo "github.com/homemcom/AgendaService/internal/infra/storage/appointment"
	"github.com/homemcom/AgendaService/pkg/ptr"
	"github.com/homemcom/AgendaService/pkg/types"
)

// 2025-10-13 — понедельник
var testDate = time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeShopRepo struct {
	shop *domain.Shop
}

func (f *fakeShopRepo) GetBySlug(_ context.Context, _ string) (*domain.Shop, error) {
	return f.shop, nil
}

type fakeAppointmentRepo struct {
	byID     map[int64]*domain.Appointment
	existing []*domain.Appointment

	created       *domain.Appointment
	statusUpdates map[int64]domain.AppointmentStatus
}

func (f *fakeAppointmentRepo) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	appt, ok := f.byID[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	return appt, nil
}

func (f *fakeAppointmentRepo) Create(_ context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	created := *appt
	created.ID = 100
	created.CreatedAt = time.Now()
	f.created = &created
	return &created, nil
}

func (f *fakeAppointmentRepo) ExistsOverlap(_ context.Context, _ int64, start, end time.Time, excludeID *int64) (bool, error) {
	for _, appt := range f.existing {
		if excludeID != nil && appt.ID == *excludeID {
			continue
		}
		if appt.Status == domain.StatusCancelled {
			continue
		}
		if appt.StartsAt.Before(end) && appt.EndsAt.After(start) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAppointmentRepo) UpdateStatus(_ context.Context, id int64, status domain.AppointmentStatus) error {
	if f.statusUpdates == nil {
		f.statusUpdates = make(map[int64]domain.AppointmentStatus)
	}
	f.statusUpdates[id] = status
	return nil
}

type fakeCancellationRepo struct {
	created *domain.Cancellation
}

func (f *fakeCancellationRepo) Create(_ context.Context, c *domain.Cancellation) (*domain.Cancellation, error) {
	created := *c
	created.ID = 1
	f.created = &created
	return &created, nil
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

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func mustTimeString(t *testing.T, s string) types.TimeString {
	t.Helper()
	ts, err := types.NewTimeStringFromString(s)
	require.NoError(t, err)
	return ts
}

type fixture struct {
	shops         *fakeShopRepo
	appointments  *fakeAppointmentRepo
	cancellations *fakeCancellationRepo
	workingHours  *fakeWorkingHoursRepo
	recurring     *fakeRecurringBlockRepo
	uc            *UseCase
	loc           *time.Location
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	old := &domain.Appointment{
		ID:             10,
		Reference:      "ref-old",
		ShopID:         1,
		ClientID:       ptr.Ptr(int64(5)),
		ServiceID:      3,
		StartsAt:       time.Date(2025, 10, 13, 10, 0, 0, 0, loc),
		EndsAt:         time.Date(2025, 10, 13, 10, 30, 0, 0, loc),
		Status:         domain.StatusConfirmed,
		Origin:         domain.OriginManual,
		PriceAtBooking: 40, // цена на момент исходной записи
		ServiceName:    "Corte",
		ClientName:     ptr.Ptr("Ana"),
		ClientPhone:    ptr.Ptr("5511999990000"),
	}

	f := &fixture{
		shops: &fakeShopRepo{shop: &domain.Shop{
			ID:       1,
			OwnerID:  7,
			Slug:     "barber-joe",
			Timezone: "America/Sao_Paulo",
			Active:   true,
		}},
		appointments: &fakeAppointmentRepo{
			byID:     map[int64]*domain.Appointment{10: old},
			existing: []*domain.Appointment{old},
		},
		cancellations: &fakeCancellationRepo{},
		workingHours: &fakeWorkingHoursRepo{blocks: []*domain.WorkingHoursBlock{{
			ShopID:  1,
			Weekday: domain.Monday,
			Start:   mustTimeString(t, "09:00"),
			End:     mustTimeString(t, "18:00"),
			Active:  true,
		}}},
		recurring: &fakeRecurringBlockRepo{},
		loc:       loc,
	}

	f.uc = NewUseCase(
		f.shops,
		f.appointments,
		f.cancellations,
		f.workingHours,
		f.recurring,
		fakeTxManager{},
		nopLogger{},
	)
	return f
}

func request(t *testing.T, startTime string) *Request {
	t.Helper()
	return &Request{
		ShopSlug:      "barber-joe",
		AppointmentID: 10,
		Date:          testDate,
		StartTime:     mustTimeString(t, startTime),
	}
}

func TestExecute_Reschedule(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.Execute(context.Background(), request(t, "14:00"))
	require.NoError(t, err)

	// Старая запись отменена с аудитом
	assert.Equal(t, domain.StatusCancelled, f.appointments.statusUpdates[10])
	require.NotNil(t, f.cancellations.created)
	assert.Equal(t, int64(10), f.cancellations.created.AppointmentID)
	assert.Equal(t, domain.CancelledByShop, f.cancellations.created.Reason)
	require.NotNil(t, f.cancellations.created.Note)
	assert.Equal(t, "rescheduled", *f.cancellations.created.Note)

	// Новая запись наследует услугу, клиента, цену и статус
	assert.Equal(t, int64(10), resp.CancelledAppointmentID)
	assert.Equal(t, int64(3), resp.ServiceID)
	require.NotNil(t, resp.ClientID)
	assert.Equal(t, int64(5), *resp.ClientID)
	assert.Equal(t, 40.0, resp.PriceAtBooking)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.Equal(t, string(domain.OriginManual), resp.Origin)

	// Длительность сохраняется, ссылка новая
	assert.Equal(t, 30*time.Minute, resp.EndsAt.Sub(resp.StartsAt))
	assert.Equal(t, time.Date(2025, 10, 13, 14, 0, 0, 0, f.loc), resp.StartsAt)
	assert.NotEqual(t, "ref-old", resp.Reference)
}

func TestExecute_OldSlotDoesNotBlockItself(t *testing.T) {
	f := newFixture(t)

	// Сдвиг на 15 минут пересекается со старым интервалом записи
	resp, err := f.uc.Execute(context.Background(), request(t, "10:15"))
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 10, 13, 10, 15, 0, 0, f.loc), resp.StartsAt)
}

func TestExecute_ConflictWithOtherAppointment(t *testing.T) {
	f := newFixture(t)
	f.appointments.existing = append(f.appointments.existing, &domain.Appointment{
		ID:       11,
		ShopID:   1,
		StartsAt: time.Date(2025, 10, 13, 14, 0, 0, 0, f.loc),
		EndsAt:   time.Date(2025, 10, 13, 14, 30, 0, 0, f.loc),
		Status:   domain.StatusAwaiting,
	})

	_, err := f.uc.Execute(context.Background(), request(t, "14:00"))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	// Транзакция провалилась до отмены
	assert.Empty(t, f.appointments.statusUpdates)
	assert.Nil(t, f.cancellations.created)
}

func TestExecute_CancelledAppointment(t *testing.T) {
	f := newFixture(t)
	f.appointments.byID[10].Status = domain.StatusCancelled

	_, err := f.uc.Execute(context.Background(), request(t, "14:00"))
	assert.ErrorIs(t, err, ErrAppointmentCancelled)
}

func TestExecute_AppointmentFromAnotherShop(t *testing.T) {
	f := newFixture(t)
	f.appointments.byID[10].ShopID = 2

	_, err := f.uc.Execute(context.Background(), request(t, "14:00"))
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestExecute_OutsideWorkingHours(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Execute(context.Background(), request(t, "17:45"))
	assert.ErrorIs(t, err, ErrOutsideWorkingHours)
}

func TestExecute_RecurringBlockConflict(t *testing.T) {
	f := newFixture(t)
	f.recurring.blocks = []*domain.RecurringBlock{{
		ID:      2,
		ShopID:  1,
		Kind:    domain.BlockFixedClient,
		Weekday: domain.Monday,
		Start:   mustTimeString(t, "14:00"),
		End:     mustTimeString(t, "15:00"),
		Active:  true,
	}}

	_, err := f.uc.Execute(context.Background(), request(t, "14:00"))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_NotFound(t *testing.T) {
	f := newFixture(t)

	req := request(t, "14:00")
	req.AppointmentID = 404

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}
