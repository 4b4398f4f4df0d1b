package get_unavailable_dates

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

func TestExecute_MergesLocalAndCatalogDates(t *testing.T) {
	repo := &fakeReservationRepo{intervals: []domain.BookedInterval{
		bookedInterval(t, 100, domain.StatusConfirmed, date(2024, 6, 10), date(2024, 6, 11)),
	}}
	catalog := &fakeCatalog{vehicle: &catalogservice.Vehicle{
		ID: 5,
		BookedDates: []catalogservice.BookedDate{
			// Пересекается с локальной бронью на 11-е: без дублей
			{ReservationID: 300, StartDate: "2024-06-11", EndDate: "2024-06-12", Status: "confirmed"},
			// Отменённая бронь канала дат не держит
			{ReservationID: 301, StartDate: "2024-06-20", EndDate: "2024-06-21", Status: "cancelled_by_client"},
		},
	}}
	uc := NewUseCase(repo, catalog, noopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{VehicleID: 5})
	require.NoError(t, err)

	want := []time.Time{
		date(2024, 6, 10),
		date(2024, 6, 11),
		date(2024, 6, 12),
	}
	assert.Equal(t, want, resp.Dates)
	assert.False(t, resp.AvailabilityUnknown)
}

func TestExecute_StoreFailureFailsOpen(t *testing.T) {
	repo := &fakeReservationRepo{err: errors.New("connection refused")}
	uc := NewUseCase(repo, &fakeCatalog{}, noopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{VehicleID: 5})
	require.NoError(t, err)

	// Календарь показывается пустым с предупреждением, а не заблокированным
	assert.Empty(t, resp.Dates)
	assert.True(t, resp.AvailabilityUnknown)
}

func TestExecute_CatalogDegradedKeepsLocalDates(t *testing.T) {
	repo := &fakeReservationRepo{intervals: []domain.BookedInterval{
		bookedInterval(t, 100, domain.StatusPending, date(2024, 6, 10), date(2024, 6, 10)),
	}}
	catalog := &fakeCatalog{err: fmt.Errorf("%w: timeout", catalogservice.ErrServiceDegraded)}
	uc := NewUseCase(repo, catalog, noopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{VehicleID: 5})
	require.NoError(t, err)

	assert.Equal(t, []time.Time{date(2024, 6, 10)}, resp.Dates)
	assert.True(t, resp.AvailabilityUnknown)
}

func TestExecute_VehicleNotFound(t *testing.T) {
	uc := NewUseCase(&fakeReservationRepo{}, &fakeCatalog{err: catalogservice.ErrVehicleNotFound}, noopLogger{})

	_, err := uc.Execute(context.Background(), &Request{VehicleID: 5})
	assert.ErrorIs(t, err, ErrVehicleNotFound)
}

func TestExecute_InvalidVehicleID(t *testing.T) {
	uc := NewUseCase(&fakeReservationRepo{}, &fakeCatalog{}, noopLogger{})

	_, err := uc.Execute(context.Background(), &Request{VehicleID: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
