package create_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homemcom/AgendaService/internal/domain"
	clientRepo "github.com/homemcom/AgendaService/internal/infra/storage/client"
	shopRepo "github.com/homemcom/AgendaService/internal/infra/storage/shop"
	"github.com/homemcom/AgendaService/internal/integrations/billingservice"
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
	err  error
}

func (f *fakeShopRepo) GetBySlug(_ context.Context, _ string) (*domain.Shop, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.shop, nil
}

type fakeServiceRepo struct {
	service *domain.Service
	err     error
}

func (f *fakeServiceRepo) GetActiveByID(_ context.Context, _, _ int64) (*domain.Service, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.service, nil
}

type fakeClientRepo struct {
	client   *domain.Client
	byIDErr  error
	resolved bool
}

func (f *fakeClientRepo) GetByID(_ context.Context, _, _ int64) (*domain.Client, error) {
	if f.byIDErr != nil {
		return nil, f.byIDErr
	}
	return f.client, nil
}

func (f *fakeClientRepo) GetOrCreateByPhone(_ context.Context, _ int64, _, _ string) (*domain.Client, error) {
	f.resolved = true
	return f.client, nil
}

type fakeAppointmentRepo struct {
	existing []*domain.Appointment
	created  *domain.Appointment
}

func (f *fakeAppointmentRepo) Create(_ context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	created := *appt
	created.ID = int64(42 + len(f.existing))
	created.CreatedAt = time.Now()
	f.created = &created
	f.existing = append(f.existing, &created)
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

type fakeBillingClient struct {
	sub    *billingservice.Subscription
	err    error
	called bool
}

func (f *fakeBillingClient) GetSubscriptionWithGracefulDegradation(_ context.Context, shopID int64) (*billingservice.Subscription, error) {
	f.called = true
	if f.err != nil {
		return nil, f.err
	}
	if f.sub != nil {
		return f.sub, nil
	}
	return &billingservice.Subscription{ShopID: shopID, Status: "active"}, nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixture struct {
	shops        *fakeShopRepo
	services     *fakeServiceRepo
	clients      *fakeClientRepo
	appointments *fakeAppointmentRepo
	workingHours *fakeWorkingHoursRepo
	recurring    *fakeRecurringBlockRepo
	billing      *fakeBillingClient
	uc           *UseCase
}

func mustTimeString(t *testing.T, s string) types.TimeString {
	t.Helper()
	ts, err := types.NewTimeStringFromString(s)
	require.NoError(t, err)
	return ts
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
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
		clients: &fakeClientRepo{client: &domain.Client{
			ID:     5,
			ShopID: 1,
			Name:   "Ana",
			Phone:  ptr.Ptr("5511999990000"),
		}},
		appointments: &fakeAppointmentRepo{},
		workingHours: &fakeWorkingHoursRepo{blocks: []*domain.WorkingHoursBlock{{
			ShopID:  1,
			Weekday: domain.Monday,
			Start:   mustTimeString(t, "09:00"),
			End:     mustTimeString(t, "18:00"),
			Active:  true,
		}}},
		recurring: &fakeRecurringBlockRepo{},
		billing:   &fakeBillingClient{},
	}

	f.uc = NewUseCase(
		f.shops,
		f.services,
		f.clients,
		f.appointments,
		f.workingHours,
		f.recurring,
		f.billing,
		fakeTxManager{},
		nopLogger{},
	)
	return f
}

func publicRequest(t *testing.T, startTime string) *Request {
	t.Helper()
	return &Request{
		ShopSlug:    "barber-joe",
		ServiceID:   3,
		Date:        testDate,
		StartTime:   mustTimeString(t, startTime),
		Origin:      domain.OriginPublicLink,
		ClientName:  "Ana",
		ClientPhone: "5511999990000",
	}
}

func existingAppointment(t *testing.T, f *fixture, start, end string, status domain.AppointmentStatus) *domain.Appointment {
	t.Helper()
	loc, err := f.shops.shop.Location()
	require.NoError(t, err)
	startsAt, err := mustTimeString(t, start).At(testDate, loc)
	require.NoError(t, err)
	endsAt, err := mustTimeString(t, end).At(testDate, loc)
	require.NoError(t, err)
	return &domain.Appointment{ID: 9, ShopID: 1, StartsAt: startsAt, EndsAt: endsAt, Status: status}
}

func TestExecute_PublicBooking(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.Execute(context.Background(), publicRequest(t, "10:00"))
	require.NoError(t, err)

	// Публичная запись ждёт подтверждения владельцем
	assert.Equal(t, string(domain.StatusAwaiting), resp.Status)
	assert.Equal(t, string(domain.OriginPublicLink), resp.Origin)
	assert.NotEmpty(t, resp.Reference)

	// Цена и название услуги фиксируются на момент записи
	assert.Equal(t, 50.0, resp.PriceAtBooking)
	assert.Equal(t, "Corte", resp.ServiceName)

	// Клиент разрешён по телефону и денормализован
	require.NotNil(t, resp.ClientID)
	assert.Equal(t, int64(5), *resp.ClientID)
	require.NotNil(t, resp.ClientName)
	assert.Equal(t, "Ana", *resp.ClientName)

	// Конец слота — начало плюс длительность услуги
	assert.Equal(t, 30*time.Minute, resp.EndsAt.Sub(resp.StartsAt))
	assert.True(t, f.billing.called)
}

func TestExecute_OwnerBookingIsConfirmed(t *testing.T) {
	f := newFixture(t)

	req := publicRequest(t, "10:00")
	req.Origin = domain.OriginManual
	req.ClientID = ptr.Ptr(int64(5))

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	// Запись владельца не проверяет подписку
	assert.False(t, f.billing.called)
}

func TestExecute_SlotConflict(t *testing.T) {
	tests := []struct {
		name    string
		start   string
		end     string
		status  domain.AppointmentStatus
		wantErr error
	}{
		{
			name:    "exact overlap with confirmed appointment",
			start:   "10:00",
			end:     "10:30",
			status:  domain.StatusConfirmed,
			wantErr: ErrSlotNotAvailable,
		},
		{
			name:    "awaiting appointment also occupies the slot",
			start:   "10:15",
			end:     "10:45",
			status:  domain.StatusAwaiting,
			wantErr: ErrSlotNotAvailable,
		},
		{
			name:   "cancelled appointment frees the slot",
			start:  "10:00",
			end:    "10:30",
			status: domain.StatusCancelled,
		},
		{
			name:   "touching boundary is not a conflict",
			start:  "09:30",
			end:    "10:00",
			status: domain.StatusConfirmed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.appointments.existing = []*domain.Appointment{
				existingAppointment(t, f, tt.start, tt.end, tt.status),
			}

			_, err := f.uc.Execute(context.Background(), publicRequest(t, "10:00"))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestExecute_DoubleBookingSameSlot(t *testing.T) {
	f := newFixture(t)

	// Две заявки на один слот: первая создаёт запись, вторая видит её
	// на повторной проверке внутри транзакции и получает конфликт
	first, err := f.uc.Execute(context.Background(), publicRequest(t, "10:00"))
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusAwaiting), first.Status)

	_, err = f.uc.Execute(context.Background(), publicRequest(t, "10:00"))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	// Частично пересекающийся слот тоже занят
	_, err = f.uc.Execute(context.Background(), publicRequest(t, "10:15"))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	// Соседний слот свободен
	_, err = f.uc.Execute(context.Background(), publicRequest(t, "10:30"))
	assert.NoError(t, err)
}

func TestExecute_RecurringBlockConflict(t *testing.T) {
	f := newFixture(t)
	f.recurring.blocks = []*domain.RecurringBlock{{
		ID:      2,
		ShopID:  1,
		Kind:    domain.BlockPause,
		Weekday: domain.Monday,
		Start:   mustTimeString(t, "10:00"),
		End:     mustTimeString(t, "11:00"),
		Active:  true,
	}}

	_, err := f.uc.Execute(context.Background(), publicRequest(t, "10:00"))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_OutsideWorkingHours(t *testing.T) {
	tests := []struct {
		name  string
		start string
	}{
		{name: "before opening", start: "08:30"},
		{name: "slot sticks out past closing", start: "17:45"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			_, err := f.uc.Execute(context.Background(), publicRequest(t, tt.start))
			assert.ErrorIs(t, err, ErrOutsideWorkingHours)
		})
	}
}

func TestExecute_BlockedClient(t *testing.T) {
	f := newFixture(t)
	f.clients.client.BlockedOnline = true

	_, err := f.uc.Execute(context.Background(), publicRequest(t, "10:00"))
	assert.ErrorIs(t, err, ErrClientBlocked)
}

func TestExecute_StaffClientNotFound(t *testing.T) {
	f := newFixture(t)
	f.clients.byIDErr = clientRepo.ErrClientNotFound

	req := publicRequest(t, "10:00")
	req.Origin = domain.OriginManual
	req.ClientID = ptr.Ptr(int64(99))

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrClientNotFound)
}

func TestExecute_Subscription(t *testing.T) {
	t.Run("no subscription blocks public booking", func(t *testing.T) {
		f := newFixture(t)
		f.billing.err = billingservice.ErrSubscriptionNotFound

		_, err := f.uc.Execute(context.Background(), publicRequest(t, "10:00"))
		assert.ErrorIs(t, err, ErrShopNotSubscribed)
	})

	t.Run("inactive subscription blocks public booking", func(t *testing.T) {
		f := newFixture(t)
		f.billing.sub = &billingservice.Subscription{ShopID: 1, Status: "past_due"}

		_, err := f.uc.Execute(context.Background(), publicRequest(t, "10:00"))
		assert.ErrorIs(t, err, ErrShopNotSubscribed)
	})

	t.Run("degraded billing lets the booking through", func(t *testing.T) {
		f := newFixture(t)
		f.billing.err = billingservice.ErrServiceDegraded

		resp, err := f.uc.Execute(context.Background(), publicRequest(t, "10:00"))
		require.NoError(t, err)
		assert.Equal(t, string(domain.StatusAwaiting), resp.Status)
	})
}

func TestExecute_ShopNotFound(t *testing.T) {
	f := newFixture(t)
	f.shops.err = shopRepo.ErrShopNotFound

	_, err := f.uc.Execute(context.Background(), publicRequest(t, "10:00"))
	assert.ErrorIs(t, err, ErrShopNotFound)
}

func TestExecute_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(req *Request)
	}{
		{name: "missing slug", mutate: func(r *Request) { r.ShopSlug = "" }},
		{name: "missing client phone on public booking", mutate: func(r *Request) { r.ClientPhone = "" }},
		{name: "missing client name on public booking", mutate: func(r *Request) { r.ClientName = "" }},
		{name: "unknown origin", mutate: func(r *Request) { r.Origin = "carrier-pigeon" }},
		{name: "zero date", mutate: func(r *Request) { r.Date = time.Time{} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			req := publicRequest(t, "10:00")
			tt.mutate(req)

			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
