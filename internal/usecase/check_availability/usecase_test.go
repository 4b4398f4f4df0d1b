package check_availability

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rkoto/TanaTours-ReservationService/internal/domain"
	"github.com/rkoto/TanaTours-ReservationService/internal/integrations/catalogservice"
	"github.com/rkoto/TanaTours-ReservationService/pkg/ptr"
)

type fakeReservationRepo struct {
	intervals []domain.BookedInterval
	err       error
}

func (f *fakeReservationRepo) GetBookedIntervals(_ context.Context, _ int64) ([]domain.BookedInterval, error) {
	return f.intervals, f.err
}

type fakeCatalog struct {
	vehicle *catalogservice.Vehicle
	err     error
}

func (f *fakeCatalog) GetVehicleWithGracefulDegradation(_ context.Context, id int64) (*catalogservice.Vehicle, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.vehicle != nil {
		return f.vehicle, nil
	}
	return &catalogservice.Vehicle{ID: id}, nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func bookedInterval(t *testing.T, id int64, status domain.ReservationStatus, start, end time.Time) domain.BookedInterval {
	t.Helper()
	r, err := domain.NewDateRange(start, end)
	require.NoError(t, err)
	return domain.BookedInterval{Range: r, ReservationID: id, Status: status}
}

func request() *Request {
	return &Request{
		UserID:    7,
		VehicleID: 5,
		StartDate: date(2024, 6, 11),
		Duration:  ptr.Ptr(2),
	}
}

func TestExecute_Available(t *testing.T) {
	uc := NewUseCase(&fakeReservationRepo{}, &fakeCatalog{}, noopLogger{})

	resp, err := uc.Execute(context.Background(), request())
	require.NoError(t, err)

	assert.True(t, resp.Available)
	assert.False(t, resp.AvailabilityUnknown)
	assert.Nil(t, resp.Conflict)
	// 2 дня включительно: 11-е и 12-е
	assert.Equal(t, date(2024, 6, 11), resp.Period.Start)
	assert.Equal(t, date(2024, 6, 12), resp.Period.End)
}

func TestExecute_ConflictFromLocalStore(t *testing.T) {
	repo := &fakeReservationRepo{intervals: []domain.BookedInterval{
		bookedInterval(t, 100, domain.StatusConfirmed, date(2024, 6, 10), date(2024, 6, 15)),
	}}
	uc := NewUseCase(repo, &fakeCatalog{}, noopLogger{})

	resp, err := uc.Execute(context.Background(), request())
	require.NoError(t, err)

	assert.False(t, resp.Available)
	require.NotNil(t, resp.Conflict)
	assert.Equal(t, int64(100), resp.Conflict.ReservationID)
	assert.Equal(t, date(2024, 6, 10), resp.Conflict.Period.Start)
}

func TestExecute_ConflictFromCatalog(t *testing.T) {
	catalog := &fakeCatalog{vehicle: &catalogservice.Vehicle{
		ID: 5,
		BookedDates: []catalogservice.BookedDate{
			{ReservationID: 300, StartDate: "2024-06-12", EndDate: "2024-06-14", Status: "confirmed"},
		},
	}}
	uc := NewUseCase(&fakeReservationRepo{}, catalog, noopLogger{})

	resp, err := uc.Execute(context.Background(), request())
	require.NoError(t, err)

	assert.False(t, resp.Available, "external-channel bookings from the catalog count too")
	require.NotNil(t, resp.Conflict)
	assert.Equal(t, int64(300), resp.Conflict.ReservationID)
}

func TestExecute_MalformedCatalogDatesAreSkipped(t *testing.T) {
	catalog := &fakeCatalog{vehicle: &catalogservice.Vehicle{
		ID: 5,
		BookedDates: []catalogservice.BookedDate{
			{ReservationID: 300, StartDate: "12/06/2024", EndDate: "2024-06-14", Status: "confirmed"},
			{ReservationID: 301, StartDate: "2024-06-14", EndDate: "2024-06-10", Status: "confirmed"},
		},
	}}
	uc := NewUseCase(&fakeReservationRepo{}, catalog, noopLogger{})

	resp, err := uc.Execute(context.Background(), request())
	require.NoError(t, err, "broken catalog records must not fail the check")
	assert.True(t, resp.Available)
}

func TestExecute_StoreFailureFailsOpen(t *testing.T) {
	repo := &fakeReservationRepo{err: errors.New("connection refused")}
	uc := NewUseCase(repo, &fakeCatalog{}, noopLogger{})

	resp, err := uc.Execute(context.Background(), request())
	require.NoError(t, err)

	// Хранилище недоступно: пользователя не блокируем, но помечаем
	// результат как неизвестный
	assert.True(t, resp.Available)
	assert.True(t, resp.AvailabilityUnknown)
}

func TestExecute_CatalogDegradedFailsOpen(t *testing.T) {
	catalog := &fakeCatalog{err: fmt.Errorf("%w: timeout", catalogservice.ErrServiceDegraded)}

	t.Run("no local conflict", func(t *testing.T) {
		uc := NewUseCase(&fakeReservationRepo{}, catalog, noopLogger{})

		resp, err := uc.Execute(context.Background(), request())
		require.NoError(t, err)
		assert.True(t, resp.Available)
		assert.True(t, resp.AvailabilityUnknown)
	})

	t.Run("local conflict still wins", func(t *testing.T) {
		repo := &fakeReservationRepo{intervals: []domain.BookedInterval{
			bookedInterval(t, 100, domain.StatusPending, date(2024, 6, 10), date(2024, 6, 15)),
		}}
		uc := NewUseCase(repo, catalog, noopLogger{})

		resp, err := uc.Execute(context.Background(), request())
		require.NoError(t, err)
		assert.False(t, resp.Available)
		assert.True(t, resp.AvailabilityUnknown)
	})
}

func TestExecute_VehicleNotFound(t *testing.T) {
	uc := NewUseCase(&fakeReservationRepo{}, &fakeCatalog{err: catalogservice.ErrVehicleNotFound}, noopLogger{})

	_, err := uc.Execute(context.Background(), request())
	assert.ErrorIs(t, err, ErrVehicleNotFound)
}

func TestExecute_Validation(t *testing.T) {
	uc := NewUseCase(&fakeReservationRepo{}, &fakeCatalog{}, noopLogger{})

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"non-positive vehicle id", func(r *Request) { r.VehicleID = 0 }},
		{"zero start date", func(r *Request) { r.StartDate = time.Time{} }},
		{"neither end nor duration", func(r *Request) { r.Duration = nil }},
		{"end and duration together", func(r *Request) { r.EndDate = ptr.Ptr(date(2024, 6, 12)) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := request()
			tt.mutate(req)
			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
