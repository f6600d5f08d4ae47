package appointments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homemcom/AgendaService/internal/domain"
	appointmentRepo "github.com/homemcom/AgendaService/internal/infra/storage/appointment"
	"github.com/homemcom/AgendaService/internal/service/appointments/models"
	"github.com/homemcom/AgendaService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeAppointmentRepo struct {
	byID   map[int64]*domain.Appointment
	listed []*domain.Appointment

	statusUpdates map[int64]domain.AppointmentStatus
	lastFilter    *domain.ShopAppointmentsFilter
}

func (f *fakeAppointmentRepo) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	appt, ok := f.byID[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	return appt, nil
}

func (f *fakeAppointmentRepo) ListByShopWithFilter(_ context.Context, filter domain.ShopAppointmentsFilter) ([]*domain.Appointment, error) {
	f.lastFilter = &filter
	return f.listed, nil
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

type fakeShopRepo struct {
	shop *domain.Shop
}

func (f *fakeShopRepo) GetBySlug(_ context.Context, _ string) (*domain.Shop, error) {
	return f.shop, nil
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

const ownerID int64 = 7

type fixture struct {
	appointments  *fakeAppointmentRepo
	cancellations *fakeCancellationRepo
	svc           *Service
}

func newFixture(t *testing.T, status domain.AppointmentStatus) *fixture {
	t.Helper()

	f := &fixture{
		appointments: &fakeAppointmentRepo{
			byID: map[int64]*domain.Appointment{10: {
				ID:        10,
				ShopID:    1,
				ServiceID: 3,
				StartsAt:  time.Date(2025, 10, 13, 10, 0, 0, 0, time.UTC),
				EndsAt:    time.Date(2025, 10, 13, 10, 30, 0, 0, time.UTC),
				Status:    status,
				Origin:    domain.OriginPublicLink,
			}},
		},
		cancellations: &fakeCancellationRepo{},
	}

	f.svc = NewService(
		f.appointments,
		f.cancellations,
		&fakeShopRepo{shop: &domain.Shop{ID: 1, OwnerID: ownerID, Slug: "barber-joe", Active: true}},
		fakeTxManager{},
		nopLogger{},
	)
	return f
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		name    string
		status  domain.AppointmentStatus
		wantErr error
	}{
		{name: "awaiting can be confirmed", status: domain.StatusAwaiting},
		{name: "confirmed cannot be confirmed again", status: domain.StatusConfirmed, wantErr: ErrCannotConfirm},
		{name: "cancelled cannot be confirmed", status: domain.StatusCancelled, wantErr: ErrCannotConfirm},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.status)

			resp, err := f.svc.Confirm(context.Background(), "barber-joe", 10, &models.ConfirmAppointmentRequest{UserID: ownerID})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, f.appointments.statusUpdates)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
			assert.Equal(t, domain.StatusConfirmed, f.appointments.statusUpdates[10])
		})
	}
}

func TestCancel(t *testing.T) {
	t.Run("writes audit record with the status flip", func(t *testing.T) {
		f := newFixture(t, domain.StatusConfirmed)

		err := f.svc.Cancel(context.Background(), "barber-joe", 10, &models.CancelAppointmentRequest{
			UserID: ownerID,
			Reason: "shop",
			Note:   ptr.Ptr("client called to cancel"),
		})
		require.NoError(t, err)

		assert.Equal(t, domain.StatusCancelled, f.appointments.statusUpdates[10])
		require.NotNil(t, f.cancellations.created)
		assert.Equal(t, int64(10), f.cancellations.created.AppointmentID)
		assert.Equal(t, domain.CancelledByShop, f.cancellations.created.Reason)

		// Отмена магазином фиксирует одобрившего владельца
		require.NotNil(t, f.cancellations.created.ApprovedBy)
		assert.Equal(t, ownerID, *f.cancellations.created.ApprovedBy)
	})

	t.Run("client-initiated cancellation has no approver", func(t *testing.T) {
		f := newFixture(t, domain.StatusAwaiting)

		err := f.svc.Cancel(context.Background(), "barber-joe", 10, &models.CancelAppointmentRequest{
			UserID: ownerID,
			Reason: "client",
		})
		require.NoError(t, err)

		require.NotNil(t, f.cancellations.created)
		assert.Nil(t, f.cancellations.created.ApprovedBy)
	})

	t.Run("cancellation is terminal", func(t *testing.T) {
		f := newFixture(t, domain.StatusCancelled)

		err := f.svc.Cancel(context.Background(), "barber-joe", 10, &models.CancelAppointmentRequest{
			UserID: ownerID,
			Reason: "shop",
		})
		assert.ErrorIs(t, err, ErrCannotCancel)
		assert.Nil(t, f.cancellations.created)
	})

	t.Run("unknown reason is rejected", func(t *testing.T) {
		f := newFixture(t, domain.StatusConfirmed)

		err := f.svc.Cancel(context.Background(), "barber-joe", 10, &models.CancelAppointmentRequest{
			UserID: ownerID,
			Reason: "mood",
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestOwnerAccess(t *testing.T) {
	f := newFixture(t, domain.StatusAwaiting)

	_, err := f.svc.GetByID(context.Background(), "barber-joe", 10, 999)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_AnotherShop(t *testing.T) {
	f := newFixture(t, domain.StatusAwaiting)
	f.appointments.byID[10].ShopID = 2

	_, err := f.svc.GetByID(context.Background(), "barber-joe", 10, ownerID)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestGetShopAppointments_Filter(t *testing.T) {
	f := newFixture(t, domain.StatusAwaiting)
	f.appointments.listed = []*domain.Appointment{f.appointments.byID[10]}

	resp, err := f.svc.GetShopAppointments(context.Background(), &models.GetShopAppointmentsRequest{
		ShopSlug:  "barber-joe",
		UserID:    ownerID,
		StartDate: ptr.Ptr(time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)),
		EndDate:   ptr.Ptr(time.Date(2025, 10, 14, 0, 0, 0, 0, time.UTC)),
		Status:    ptr.Ptr("awaiting"),
	})
	require.NoError(t, err)
	require.Len(t, resp.Appointments, 1)

	require.NotNil(t, f.appointments.lastFilter)
	assert.Equal(t, int64(1), f.appointments.lastFilter.ShopID)
	require.NotNil(t, f.appointments.lastFilter.Status)
	assert.Equal(t, domain.StatusAwaiting, *f.appointments.lastFilter.Status)
	assert.False(t, f.appointments.lastFilter.IncludeInactive)
}
