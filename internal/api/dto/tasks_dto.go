package dto

import "github.com/spec-kit/dispatch-dashboard/internal/domain"

// AssignRequest payload for POST /api/tasks/assign, mirroring the backend
// bulk-assign shape.
type AssignRequest struct {
	Tasks []domain.Assignment `json:"tasks"`
}

// DeallocateRequest payload for POST /api/tasks/deallocate.
type DeallocateRequest struct {
	AssignedTaskID int64 `json:"assignedTaskId"`
}

// CountsResponse wraps the landing-screen counters.
type CountsResponse struct {
	Unassigned int  `json:"unassigned"`
	Ongoing    int  `json:"ongoing"`
	Completed  int  `json:"completed"`
	Drivers    int  `json:"drivers"`
	FromCache  bool `json:"from_cache"`
}
