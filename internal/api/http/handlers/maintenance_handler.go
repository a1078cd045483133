package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/dispatch-dashboard/internal/api/dto"
	"github.com/spec-kit/dispatch-dashboard/internal/collection"
	"github.com/spec-kit/dispatch-dashboard/internal/domain"
	"github.com/spec-kit/dispatch-dashboard/internal/service"
	apperrors "github.com/spec-kit/dispatch-dashboard/pkg/util"
)

// MaintenanceHandler serves the driver-maintenance screen: roster listing,
// add, batch edit and delete.
type MaintenanceHandler struct {
	maintenance *collection.Maintenance
}

// NewMaintenanceHandler constructs handler.
func NewMaintenanceHandler(maintenance *collection.Maintenance) *MaintenanceHandler {
	return &MaintenanceHandler{maintenance: maintenance}
}

// Drivers handles GET /api/maintenance/drivers.
func (h *MaintenanceHandler) Drivers(c *fiber.Ctx) error {
	return listJSON(c, h.maintenance.FetchDrivers(c.UserContext()))
}

// Create handles POST /api/maintenance/drivers.
func (h *MaintenanceHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateDriverRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Status != "" && !domain.ValidDriverStatus(req.Status) {
		return apperrors.NewValidationError("status must be available, unavailable or maintenance", nil)
	}

	env := h.maintenance.CreateDriver(c.UserContext(), req.NewDriver)
	if !env.Success {
		if field := service.UniqueConstraintField(env); field != "" {
			return apperrors.NewValidationError(env.Message(), map[string]any{"field": field})
		}
		return apperrors.NewUpstreamError(env.Message())
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": env.Data})
}

// BatchUpdate handles PATCH /api/maintenance/drivers/batch-update.
func (h *MaintenanceHandler) BatchUpdate(c *fiber.Ctx) error {
	var req dto.BatchUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if len(req.Updates) == 0 {
		return apperrors.NewValidationError("no changes to save", nil)
	}
	for _, u := range req.Updates {
		if u.DriverID == 0 {
			return apperrors.NewValidationError("each update needs driverId", nil)
		}
		if u.Status != nil && !domain.ValidDriverStatus(*u.Status) {
			return apperrors.NewValidationError("status must be available, unavailable or maintenance", nil)
		}
	}

	env := h.maintenance.BatchUpdate(c.UserContext(), req.Updates)
	if !env.Success {
		return apperrors.NewUpstreamError(env.Message())
	}
	return c.JSON(fiber.Map{"data": env.Data})
}

// Delete handles DELETE /api/maintenance/drivers/:driverId.
func (h *MaintenanceHandler) Delete(c *fiber.Ctx) error {
	driverID, err := c.ParamsInt("driverId")
	if err != nil || driverID <= 0 {
		return apperrors.NewValidationError("driverId must be a positive integer", nil)
	}

	env := h.maintenance.DeleteDriver(c.UserContext(), int64(driverID))
	if !env.Success {
		return apperrors.NewUpstreamError(env.Message())
	}
	return c.JSON(fiber.Map{"data": env.Data})
}
