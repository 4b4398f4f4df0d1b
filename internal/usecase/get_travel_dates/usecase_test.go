package get_travel_dates

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

type fakeSlotRepo struct {
	slots []*domain.CapacitySlot
	err   error
}

func (f *fakeSlotRepo) GetByTripID(_ context.Context, _ int64) ([]*domain.CapacitySlot, error) {
	return f.slots, f.err
}

type fakeCatalog struct {
	trip *catalogservice.Trip
	err  error
}

func (f *fakeCatalog) GetTripWithGracefulDegradation(_ context.Context, id int64) (*catalogservice.Trip, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.trip != nil {
		return f.trip, nil
	}
	return &catalogservice.Trip{ID: id}, nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestExecute_SlotsFromStore(t *testing.T) {
	period, err := domain.NewDateRange(date(2024, 9, 1), date(2024, 9, 7))
	require.NoError(t, err)

	repo := &fakeSlotRepo{slots: []*domain.CapacitySlot{
		{ID: 9, TripID: 42, Period: period, MaxPeople: 20, RemainingPlaces: 5},
		{ID: 10, TripID: 42, Period: period, MaxPeople: 20, RemainingPlaces: 0},
	}}
	uc := NewUseCase(repo, &fakeCatalog{}, noopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{TripID: 42})
	require.NoError(t, err)

	assert.False(t, resp.CapacityUnknown, "store data is authoritative")
	require.Len(t, resp.Slots, 2)
	assert.Equal(t, int64(9), resp.Slots[0].SlotID)
	assert.Equal(t, 5, resp.Slots[0].RemainingPlaces)
	assert.False(t, resp.Slots[0].IsFull)
	assert.True(t, resp.Slots[1].IsFull)
}

func TestExecute_CatalogFallback(t *testing.T) {
	catalog := &fakeCatalog{trip: &catalogservice.Trip{
		ID: 42,
		TravelDates: []catalogservice.TravelDate{
			{ID: 9, StartDate: "2024-09-01", EndDate: "2024-09-07", MaxPeople: 20, PlacesDisponibles: 5},
			// Битое окно пропускается
			{ID: 10, StartDate: "bad-date", EndDate: "2024-09-14", MaxPeople: 20, PlacesDisponibles: 3},
		},
	}}
	uc := NewUseCase(&fakeSlotRepo{}, catalog, noopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{TripID: 42})
	require.NoError(t, err)

	assert.True(t, resp.CapacityUnknown, "catalog capacity is advisory only")
	require.Len(t, resp.Slots, 1)
	assert.Equal(t, int64(9), resp.Slots[0].SlotID)
	assert.Equal(t, date(2024, 9, 1), resp.Slots[0].Period.Start)
}

func TestExecute_AllSourcesDown(t *testing.T) {
	repo := &fakeSlotRepo{err: errors.New("connection refused")}
	catalog := &fakeCatalog{err: fmt.Errorf("%w: timeout", catalogservice.ErrServiceDegraded)}
	uc := NewUseCase(repo, catalog, noopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{TripID: 42})
	require.NoError(t, err)

	assert.Empty(t, resp.Slots)
	assert.True(t, resp.CapacityUnknown)
}

func TestExecute_TripNotFound(t *testing.T) {
	uc := NewUseCase(&fakeSlotRepo{}, &fakeCatalog{err: catalogservice.ErrTripNotFound}, noopLogger{})

	_, err := uc.Execute(context.Background(), &Request{TripID: 42})
	assert.ErrorIs(t, err, ErrTripNotFound)
}

func TestExecute_InvalidTripID(t *testing.T) {
	uc := NewUseCase(&fakeSlotRepo{}, &fakeCatalog{}, noopLogger{})

	_, err := uc.Execute(context.Background(), &Request{TripID: -1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
