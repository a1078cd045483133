package service

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/dispatch-dashboard/internal/backend"
	"github.com/spec-kit/dispatch-dashboard/internal/domain"
)

// List endpoints can return large result sets, so they get a longer
// deadline than the client default; assignment writes get a bit more, and
// the spreadsheet export gets the maximum the client allows.
const (
	listTimeout   = 12 * time.Second
	assignTimeout = 15 * time.Second
	exportTimeout = 40 * time.Second
)

// TasksService exposes the dispatch task, driver and telemetry operations.
type TasksService struct {
	client *backend.Client
	logger *zap.Logger
}

// NewTasksService builds the service.
func NewTasksService(client *backend.Client, logger *zap.Logger) *TasksService {
	return &TasksService{client: client, logger: logger}
}

// GetCompleted lists finished deliveries.
func (s *TasksService) GetCompleted(ctx context.Context) backend.Envelope {
	return s.client.Get(ctx, "/tasks/getCompletedTasks", backend.Options{Timeout: listTimeout})
}

// GetOngoing lists deliveries in progress.
func (s *TasksService) GetOngoing(ctx context.Context) backend.Envelope {
	return s.client.Get(ctx, "/tasks/getTasksInProgress", backend.Options{Timeout: listTimeout})
}

// GetUnassigned lists tasks waiting for a driver.
func (s *TasksService) GetUnassigned(ctx context.Context) backend.Envelope {
	return s.client.Get(ctx, "/tasks/getUnassignedTasks", backend.Options{Timeout: listTimeout})
}

// GetDrivers lists available drivers.
func (s *TasksService) GetDrivers(ctx context.Context) backend.Envelope {
	return s.client.Get(ctx, "/tasks/getAvailableDrivers", backend.Options{Timeout: listTimeout})
}

// AssignTasks posts a bulk assignment.
func (s *TasksService) AssignTasks(ctx context.Context, assignments []domain.Assignment) backend.Envelope {
	body := map[string]any{"tasks": assignments}
	return s.client.Post(ctx, "/tasks/assignTasks", body, backend.Options{Timeout: assignTimeout})
}

// DeallocateTask returns an assigned task to the unassigned pool.
func (s *TasksService) DeallocateTask(ctx context.Context, assignedTaskID int64) backend.Envelope {
	body := map[string]any{"assignedTaskId": assignedTaskID}
	return s.client.Post(ctx, "/tasks/deallocateTask", body, backend.Options{Timeout: assignTimeout})
}

// GetVehicleLocations fetches the Netstar telemetry snapshot. The vehicle
// list arrives wrapped as data.Vehicles.
func (s *TasksService) GetVehicleLocations(ctx context.Context) backend.Envelope {
	return s.client.Get(ctx, "/tasks/getLocation", backend.Options{Timeout: listTimeout})
}

// Vehicles unwraps the telemetry envelope into typed records.
func (s *TasksService) Vehicles(env backend.Envelope) ([]domain.Vehicle, error) {
	var payload struct {
		Vehicles []domain.Vehicle `json:"Vehicles"`
	}
	if err := env.DecodeData(&payload); err != nil {
		return nil, err
	}
	return payload.Vehicles, nil
}

// ExportTasksWithoutInvoice streams the binary spreadsheet export. The
// caller must close the response body and invoke cancel when done.
func (s *TasksService) ExportTasksWithoutInvoice(ctx context.Context) (*http.Response, context.CancelFunc, error) {
	return s.client.Raw(ctx, "/tasks/getTaskWithoutInvoice", backend.Options{Timeout: exportTimeout})
}
