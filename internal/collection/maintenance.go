package collection

import (
	"context"

	"github.com/spec-kit/dispatch-dashboard/internal/backend"
	"github.com/spec-kit/dispatch-dashboard/internal/domain"
	"github.com/spec-kit/dispatch-dashboard/internal/service"
)

// Maintenance holds the driver-roster collection behind the maintenance
// screen. Writes follow the screen's refresh rules: create and batch
// update re-fetch the roster, a confirmed delete removes the row locally.
type Maintenance struct {
	svc *service.MaintenanceService

	Drivers Slice[domain.MaintenanceDriver]
}

// NewMaintenance builds the aggregate.
func NewMaintenance(svc *service.MaintenanceService) *Maintenance {
	return &Maintenance{svc: svc}
}

// FetchDrivers refreshes the roster.
func (m *Maintenance) FetchDrivers(ctx context.Context) View[domain.MaintenanceDriver] {
	return fetchInto(ctx, &m.Drivers, m.svc.ListDrivers, func(env backend.Envelope) ([]domain.MaintenanceDriver, error) {
		return m.svc.Drivers(env)
	})
}

// CreateDriver adds a record; a confirmed create re-fetches the roster so
// the new row carries its server-assigned id.
func (m *Maintenance) CreateDriver(ctx context.Context, d domain.NewDriver) backend.Envelope {
	env := m.svc.CreateDriver(ctx, d)
	if env.Success {
		m.FetchDrivers(ctx)
	}
	return env
}

// BatchUpdate applies edited rows; on success the roster is re-fetched
// since the server may normalize values the patch sent.
func (m *Maintenance) BatchUpdate(ctx context.Context, updates []domain.DriverUpdate) backend.Envelope {
	env := m.svc.BatchUpdate(ctx, updates)
	if env.Success {
		m.FetchDrivers(ctx)
	}
	return env
}

// DeleteDriver removes a record. A confirmed delete removes exactly the
// named row, so it is filtered out locally without a re-fetch.
func (m *Maintenance) DeleteDriver(ctx context.Context, driverID int64) backend.Envelope {
	env := m.svc.DeleteDriver(ctx, driverID)
	if env.Success {
		m.Drivers.RemoveWhere(func(d domain.MaintenanceDriver) bool {
			return d.DriverID == driverID
		})
	}
	return env
}
