package catalogservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент каталога ресурсов (машины и круизы)
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента каталога
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetVehicle получает машину с занятыми периодами
func (c *Client) GetVehicle(ctx context.Context, vehicleID int64) (*Vehicle, error) {
	url := fmt.Sprintf("%s/internal/vehicles/%d", c.baseURL, vehicleID)

	var vehicle Vehicle
	if err := c.getJSON(ctx, url, ErrVehicleNotFound, &vehicle); err != nil {
		return nil, err
	}

	// Защита от устаревшего ответа: каталог должен вернуть именно тот ресурс,
	// который запрашивали. Иначе ответ отбрасываем.
	if vehicle.ID != vehicleID {
		return nil, fmt.Errorf("%w: requested=%d got=%d", ErrStaleResponse, vehicleID, vehicle.ID)
	}

	return &vehicle, nil
}

// GetTrip получает круиз с окнами путешествий и остатком мест
func (c *Client) GetTrip(ctx context.Context, tripID int64) (*Trip, error) {
	url := fmt.Sprintf("%s/internal/trips/%d", c.baseURL, tripID)

	var trip Trip
	if err := c.getJSON(ctx, url, ErrTripNotFound, &trip); err != nil {
		return nil, err
	}

	if trip.ID != tripID {
		return nil, fmt.Errorf("%w: requested=%d got=%d", ErrStaleResponse, tripID, trip.ID)
	}

	return &trip, nil
}

// GetVehicleWithGracefulDegradation получает машину с graceful degradation.
// При недоступности каталога возвращает ErrServiceDegraded: вызывающий код
// трактует доступность как неизвестную (fail open) и не блокирует пользователя.
func (c *Client) GetVehicleWithGracefulDegradation(ctx context.Context, vehicleID int64) (*Vehicle, error) {
	vehicle, err := c.GetVehicle(ctx, vehicleID)
	if err != nil {
		// Бизнес-ошибку (ресурс не найден) пробрасываем как есть
		if errors.Is(err, ErrVehicleNotFound) {
			c.log.Info("Vehicle id=%d not found in catalog", vehicleID)
			return nil, err
		}

		// Недоступность сервиса, timeout, битый или чужой ответ: деградация.
		// Уровень ERROR, чтобы проблему с каталогом заметили быстро.
		c.log.Error("CatalogService unavailable, applying graceful degradation for vehicle id=%d: %v", vehicleID, err)
		return nil, fmt.Errorf("%w: vehicle_id=%d, error=%v", ErrServiceDegraded, vehicleID, err)
	}

	return vehicle, nil
}

// GetTripWithGracefulDegradation получает круиз с graceful degradation
func (c *Client) GetTripWithGracefulDegradation(ctx context.Context, tripID int64) (*Trip, error) {
	trip, err := c.GetTrip(ctx, tripID)
	if err != nil {
		if errors.Is(err, ErrTripNotFound) {
			c.log.Info("Trip id=%d not found in catalog", tripID)
			return nil, err
		}

		c.log.Error("CatalogService unavailable, applying graceful degradation for trip id=%d: %v", tripID, err)
		return nil, fmt.Errorf("%w: trip_id=%d, error=%v", ErrServiceDegraded, tripID, err)
	}

	return trip, nil
}

// getJSON выполняет GET запрос и декодирует JSON ответ
func (c *Client) getJSON(ctx context.Context, url string, notFound error, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return notFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}
