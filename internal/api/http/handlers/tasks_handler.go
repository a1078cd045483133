package handlers

import (
	"context"
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/dispatch-dashboard/internal/api/dto"
	"github.com/spec-kit/dispatch-dashboard/internal/collection"
	"github.com/spec-kit/dispatch-dashboard/internal/service"
	apperrors "github.com/spec-kit/dispatch-dashboard/pkg/util"
)

// TasksHandler serves the feature screens: task tables, driver list,
// vehicle map data, assignment actions and the spreadsheet export.
type TasksHandler struct {
	slices *collection.Slices
	tasks  *service.TasksService
}

// NewTasksHandler constructs handler.
func NewTasksHandler(slices *collection.Slices, tasks *service.TasksService) *TasksHandler {
	return &TasksHandler{slices: slices, tasks: tasks}
}

// listJSON renders a slice view. A failed fetch is not fatal: the last
// good items are served with the error message alongside so the UI can
// show a dismissible notification and offer a retry.
func listJSON[T any](c *fiber.Ctx, view collection.View[T]) error {
	resp := fiber.Map{"data": view.Items}
	if view.Err != "" {
		resp["error"] = view.Err
	}
	return c.JSON(resp)
}

// Completed handles GET /api/tasks/completed.
func (h *TasksHandler) Completed(c *fiber.Ctx) error {
	return listJSON(c, h.slices.FetchCompleted(c.UserContext()))
}

// Ongoing handles GET /api/tasks/ongoing.
func (h *TasksHandler) Ongoing(c *fiber.Ctx) error {
	return listJSON(c, h.slices.FetchOngoing(c.UserContext()))
}

// Unassigned handles GET /api/tasks/unassigned.
func (h *TasksHandler) Unassigned(c *fiber.Ctx) error {
	return listJSON(c, h.slices.FetchUnassigned(c.UserContext()))
}

// Drivers handles GET /api/drivers.
func (h *TasksHandler) Drivers(c *fiber.Ctx) error {
	return listJSON(c, h.slices.FetchDrivers(c.UserContext()))
}

// Vehicles handles GET /api/vehicles.
func (h *TasksHandler) Vehicles(c *fiber.Ctx) error {
	return listJSON(c, h.slices.FetchVehicles(c.UserContext()))
}

// Counts handles GET /api/counts. ?refresh=1 bypasses the screen cache.
func (h *TasksHandler) Counts(c *fiber.Ctx) error {
	force := c.Query("refresh") == "1"
	counts, fromCache := h.slices.FetchCounts(c.UserContext(), force)
	return c.JSON(fiber.Map{"data": dto.CountsResponse{
		Unassigned: counts.Unassigned,
		Ongoing:    counts.Ongoing,
		Completed:  counts.Completed,
		Drivers:    counts.Drivers,
		FromCache:  fromCache,
	}})
}

// Assign handles POST /api/tasks/assign.
func (h *TasksHandler) Assign(c *fiber.Ctx) error {
	var req dto.AssignRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if len(req.Tasks) == 0 {
		return apperrors.NewValidationError("no assignments selected", nil)
	}
	for _, a := range req.Tasks {
		if a.TaskID == 0 || a.DriverName == "" {
			return apperrors.NewValidationError("each assignment needs taskId and driverName", nil)
		}
	}

	env := h.slices.Assign(c.UserContext(), req.Tasks)
	if !env.Success {
		return apperrors.NewUpstreamError(env.Message())
	}
	return c.JSON(fiber.Map{"data": env.Data})
}

// Deallocate handles POST /api/tasks/deallocate.
func (h *TasksHandler) Deallocate(c *fiber.Ctx) error {
	var req dto.DeallocateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.AssignedTaskID == 0 {
		return apperrors.NewValidationError("assignedTaskId required", nil)
	}

	env := h.slices.Deallocate(c.UserContext(), req.AssignedTaskID)
	if !env.Success {
		return apperrors.NewUpstreamError(env.Message())
	}
	return c.JSON(fiber.Map{"data": env.Data})
}

// exportBody ties the backend response lifetime to the outgoing stream:
// fiber closes it once the body has been sent, which releases both the
// connection and its deadline.
type exportBody struct {
	body   io.ReadCloser
	cancel context.CancelFunc
}

func (e *exportBody) Read(p []byte) (int, error) { return e.body.Read(p) }

func (e *exportBody) Close() error {
	e.cancel()
	return e.body.Close()
}

// Export handles GET /api/export/tasks-without-invoice, streaming the
// backend spreadsheet through untouched.
func (h *TasksHandler) Export(c *fiber.Ctx) error {
	resp, cancel, err := h.tasks.ExportTasksWithoutInvoice(c.UserContext())
	if err != nil {
		return apperrors.NewUpstreamError(err.Error())
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close() //nolint:errcheck
		cancel()
		return apperrors.NewUpstreamError("export failed: " + resp.Status)
	}

	if ct := resp.Header.Get("Content-Type"); ct != "" {
		c.Set(fiber.HeaderContentType, ct)
	}
	if cd := resp.Header.Get("Content-Disposition"); cd != "" {
		c.Set(fiber.HeaderContentDisposition, cd)
	} else {
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="tasks-without-invoice.xlsx"`)
	}

	size := -1
	if resp.ContentLength > 0 {
		size = int(resp.ContentLength)
	}
	return c.SendStream(&exportBody{body: resp.Body, cancel: cancel}, size)
}
