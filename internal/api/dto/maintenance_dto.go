package dto

import "github.com/spec-kit/dispatch-dashboard/internal/domain"

// CreateDriverRequest payload for POST /api/maintenance/drivers; the body
// is the driver record itself.
type CreateDriverRequest struct {
	domain.NewDriver
}

// BatchUpdateRequest payload for PATCH /api/maintenance/drivers/batch-update.
type BatchUpdateRequest struct {
	Updates []domain.DriverUpdate `json:"updates"`
}
