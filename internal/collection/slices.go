package collection

import (
	"context"

	"github.com/spec-kit/dispatch-dashboard/internal/backend"
	"github.com/spec-kit/dispatch-dashboard/internal/domain"
	"github.com/spec-kit/dispatch-dashboard/internal/persistence"
	"github.com/spec-kit/dispatch-dashboard/internal/service"
)

// Slices aggregates the per-resource collections behind the feature screens.
type Slices struct {
	tasks *service.TasksService
	cache *persistence.ScreenCache

	Completed  Slice[domain.Task]
	Ongoing    Slice[domain.Task]
	Unassigned Slice[domain.Task]
	Drivers    Slice[domain.Driver]
	Vehicles   Slice[domain.Vehicle]
}

// NewSlices builds the aggregate. cache may be nil-backed; it only serves
// the counts screen.
func NewSlices(tasks *service.TasksService, cache *persistence.ScreenCache) *Slices {
	return &Slices{tasks: tasks, cache: cache}
}

// FetchCompleted refreshes the completed-tasks collection.
func (s *Slices) FetchCompleted(ctx context.Context) View[domain.Task] {
	return fetchInto(ctx, &s.Completed, s.tasks.GetCompleted, decodeList[domain.Task])
}

// FetchOngoing refreshes the ongoing-tasks collection.
func (s *Slices) FetchOngoing(ctx context.Context) View[domain.Task] {
	return fetchInto(ctx, &s.Ongoing, s.tasks.GetOngoing, decodeList[domain.Task])
}

// FetchUnassigned refreshes the unassigned-tasks collection.
func (s *Slices) FetchUnassigned(ctx context.Context) View[domain.Task] {
	return fetchInto(ctx, &s.Unassigned, s.tasks.GetUnassigned, decodeList[domain.Task])
}

// FetchDrivers refreshes the available-drivers collection.
func (s *Slices) FetchDrivers(ctx context.Context) View[domain.Driver] {
	return fetchInto(ctx, &s.Drivers, s.tasks.GetDrivers, decodeList[domain.Driver])
}

// FetchVehicles refreshes the telemetry snapshot. The list arrives wrapped
// as data.Vehicles rather than as the body itself.
func (s *Slices) FetchVehicles(ctx context.Context) View[domain.Vehicle] {
	return fetchInto(ctx, &s.Vehicles, s.tasks.GetVehicleLocations, func(env backend.Envelope) ([]domain.Vehicle, error) {
		return s.tasks.Vehicles(env)
	})
}

// Assign posts a bulk assignment. On success the assigned task ids are
// filtered out of the unassigned collection locally: a bulk assign removes
// exactly the ids it named, so the client-side effect is fully known and a
// re-fetch would buy nothing.
func (s *Slices) Assign(ctx context.Context, assignments []domain.Assignment) backend.Envelope {
	env := s.tasks.AssignTasks(ctx, assignments)
	if !env.Success {
		return env
	}

	assigned := make(map[int64]bool, len(assignments))
	for _, a := range assignments {
		assigned[a.TaskID] = true
	}
	s.Unassigned.RemoveWhere(func(t domain.Task) bool {
		return assigned[t.TaskID]
	})
	s.cache.Invalidate(ctx, countsCacheKey)
	return env
}

// Deallocate returns a task to the unassigned pool. On success both the
// ongoing and unassigned collections are re-fetched: the server recomputes
// task state on deallocation, so the local view cannot be patched reliably.
func (s *Slices) Deallocate(ctx context.Context, assignedTaskID int64) backend.Envelope {
	env := s.tasks.DeallocateTask(ctx, assignedTaskID)
	if !env.Success {
		return env
	}

	s.FetchOngoing(ctx)
	s.FetchUnassigned(ctx)
	s.cache.Invalidate(ctx, countsCacheKey)
	return env
}
