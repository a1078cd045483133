package service

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/dispatch-dashboard/internal/backend"
	"github.com/spec-kit/dispatch-dashboard/internal/domain"
)

// MaintenanceService exposes the driver-record CRUD behind the maintenance
// screen. The backend reports write outcomes in the message text rather
// than the HTTP status alone, so write envelopes are normalized here: a 2xx
// whose message does not confirm the action is folded into a failure.
type MaintenanceService struct {
	client *backend.Client
	logger *zap.Logger
}

// NewMaintenanceService builds the service.
func NewMaintenanceService(client *backend.Client, logger *zap.Logger) *MaintenanceService {
	return &MaintenanceService{client: client, logger: logger}
}

// ListDrivers fetches the full driver roster.
func (s *MaintenanceService) ListDrivers(ctx context.Context) backend.Envelope {
	return s.client.Get(ctx, "/maintenance/drivers", backend.Options{Timeout: listTimeout})
}

// Drivers unwraps a roster envelope: the list arrives either wrapped as
// data.drivers or as the body itself.
func (s *MaintenanceService) Drivers(env backend.Envelope) ([]domain.MaintenanceDriver, error) {
	if m, ok := env.Data.(map[string]any); ok {
		if _, ok := m["drivers"]; ok {
			var payload struct {
				Drivers []domain.MaintenanceDriver `json:"drivers"`
			}
			if err := env.DecodeData(&payload); err != nil {
				return nil, err
			}
			return payload.Drivers, nil
		}
	}
	var drivers []domain.MaintenanceDriver
	if env.Data == nil {
		return drivers, nil
	}
	if err := env.DecodeData(&drivers); err != nil {
		return nil, err
	}
	return drivers, nil
}

// CreateDriver adds a driver record.
func (s *MaintenanceService) CreateDriver(ctx context.Context, d domain.NewDriver) backend.Envelope {
	if d.Status == "" {
		d.Status = domain.DriverStatusAvailable
	}
	env := s.client.Post(ctx, "/maintenance/drivers", d, backend.Options{Timeout: assignTimeout})
	return confirmWrite(env, "created")
}

// BatchUpdate applies the edited rows in one call.
func (s *MaintenanceService) BatchUpdate(ctx context.Context, updates []domain.DriverUpdate) backend.Envelope {
	body := map[string]any{"updates": updates}
	env := s.client.Do(ctx, "/maintenance/drivers/batch-update", backend.Options{
		Method:  http.MethodPatch,
		Body:    body,
		Timeout: assignTimeout,
	})
	return confirmWrite(env, "success")
}

// DeleteDriver removes one driver record.
func (s *MaintenanceService) DeleteDriver(ctx context.Context, driverID int64) backend.Envelope {
	path := "/maintenance/drivers/" + strconv.FormatInt(driverID, 10)
	env := s.client.Do(ctx, path, backend.Options{Method: http.MethodDelete, Timeout: assignTimeout})
	return confirmWrite(env, "deleted")
}

// UniqueConstraintField returns the conflicting field name when the backend
// rejected a write over a uniqueness constraint, or "" otherwise.
func UniqueConstraintField(env backend.Envelope) string {
	m, ok := env.Data.(map[string]any)
	if !ok {
		return ""
	}
	field, _ := m["field"].(string)
	return field
}

// confirmWrite folds a 2xx response whose message does not contain the
// confirmation word into a failed envelope carrying the backend's error
// or message text.
func confirmWrite(env backend.Envelope, confirmation string) backend.Envelope {
	if !env.Success {
		return env
	}
	if m, ok := env.Data.(map[string]any); ok {
		if msg, ok := m["message"].(string); ok && strings.Contains(strings.ToLower(msg), confirmation) {
			return env
		}
		if errText, ok := m["error"].(string); ok && errText != "" {
			env.Error = errText
		} else if msg, ok := m["message"].(string); ok && msg != "" {
			env.Error = msg
		}
	}
	env.Success = false
	if env.Error == "" {
		env.Error = "unexpected response"
	}
	return env
}
