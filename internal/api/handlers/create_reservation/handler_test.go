package create_reservation

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rkoto/TanaTours-ReservationService/internal/api/middleware"
	"github.com/rkoto/TanaTours-ReservationService/internal/domain"
	createReservation "github.com/rkoto/TanaTours-ReservationService/internal/usecase/create_reservation"
)

type fakeUseCase struct {
	resp    *createReservation.Response
	err     error
	lastReq *createReservation.Request
}

func (f *fakeUseCase) Execute(_ context.Context, req *createReservation.Request) (*createReservation.Response, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func serve(t *testing.T, uc *fakeUseCase, userID string, body string) *httptest.ResponseRecorder {
	t.Helper()
	h := NewHandler(uc, noopLogger{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations", strings.NewReader(body))
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}

	rec := httptest.NewRecorder()
	middleware.Auth(http.HandlerFunc(h.Handle)).ServeHTTP(rec, req)
	return rec
}

func successResponse(t *testing.T) *createReservation.Response {
	t.Helper()
	period, err := domain.NewDateRange(
		time.Date(2024, 8, 13, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 8, 14, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	return &createReservation.Response{
		ID:            1,
		Reference:     "8a9d7c3e-0000-0000-0000-000000000000",
		UserID:        7,
		ResType:       domain.ResourceVehicle,
		ResourceID:    5,
		Period:        &period,
		PartySize:     2,
		Adults:        2,
		CustomerName:  "Hery Rakoto",
		CustomerEmail: "hery@example.mg",
		Status:        domain.StatusPending,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
}

const vehicleBody = `{
	"resType": "vehicle",
	"resourceId": 5,
	"startDate": "2024-08-13",
	"durationDays": 2,
	"adults": 2,
	"customerName": "Hery Rakoto",
	"customerEmail": "hery@example.mg"
}`

func TestHandle_Created(t *testing.T) {
	uc := &fakeUseCase{resp: successResponse(t)}

	rec := serve(t, uc, "7", vehicleBody)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp ReservationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "pending", resp.Status)
	require.NotNil(t, resp.StartDate)
	assert.Equal(t, "2024-08-13", *resp.StartDate)
	require.NotNil(t, resp.DurationDays)
	assert.Equal(t, 2, *resp.DurationDays)

	require.NotNil(t, uc.lastReq)
	assert.Equal(t, int64(7), uc.lastReq.UserID, "user id comes from the auth header, not the body")
}

func TestHandle_PeriodConflict(t *testing.T) {
	busy, err := domain.NewDateRange(
		time.Date(2024, 8, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 8, 12, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)

	uc := &fakeUseCase{err: &createReservation.PeriodConflictError{
		ReservationID: 100,
		Period:        busy,
	}}

	rec := serve(t, uc, "7", vehicleBody)
	require.Equal(t, http.StatusConflict, rec.Code)

	var resp ConflictResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	// Пользователю показывается занятый период для выбора других дат
	assert.Equal(t, int64(100), resp.ReservationID)
	assert.Equal(t, "2024-08-10", resp.StartDate)
	assert.Equal(t, "2024-08-12", resp.EndDate)
}

func TestHandle_CapacityExceeded(t *testing.T) {
	uc := &fakeUseCase{err: &createReservation.CapacityError{Requested: 4, Available: 3}}

	rec := serve(t, uc, "7", `{
		"resType": "trip",
		"resourceId": 42,
		"slotId": 9,
		"adults": 4,
		"customerName": "Hery Rakoto",
		"customerEmail": "hery@example.mg"
	}`)
	require.Equal(t, http.StatusConflict, rec.Code)

	var resp ConflictResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Available)
	assert.Equal(t, 3, *resp.Available)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"resource not found", createReservation.ErrResourceNotFound, http.StatusNotFound},
		{"slot not found", createReservation.ErrSlotNotFound, http.StatusNotFound},
		{"invalid input", createReservation.ErrInvalidInput, http.StatusBadRequest},
		{"internal error", createReservation.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, &fakeUseCase{err: tt.err}, "7", vehicleBody)
			assert.Equal(t, tt.code, rec.Code)
		})
	}
}

func TestHandle_Unauthorized(t *testing.T) {
	rec := serve(t, &fakeUseCase{}, "", vehicleBody)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandle_BadRequests(t *testing.T) {
	t.Run("broken json", func(t *testing.T) {
		rec := serve(t, &fakeUseCase{}, "7", `{"resType": `)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown field", func(t *testing.T) {
		rec := serve(t, &fakeUseCase{}, "7", `{"resType": "vehicle", "unknownField": true}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("bad date format", func(t *testing.T) {
		rec := serve(t, &fakeUseCase{}, "7", `{
			"resType": "vehicle",
			"resourceId": 5,
			"startDate": "13/08/2024",
			"durationDays": 2,
			"adults": 2,
			"customerName": "Hery Rakoto",
			"customerEmail": "hery@example.mg"
		}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
