package domain

import "encoding/json"

// Task is a delivery job as reported by the dispatch backend.
type Task struct {
	TaskID         int64
	AssignedTaskID int64
	Zone           string
	Invoice        string
	Order          string
	Postcode       string
	Description    string
	PodURL         string
	DriverName     string
	Status         string
}

// UnmarshalJSON tolerates the alternate keys the backend uses across
// endpoints (taskId vs id, zoneNo vs zone, invoiceId vs invoice, ...).
func (t *Task) UnmarshalJSON(data []byte) error {
	var raw struct {
		TaskID         flexInt    `json:"taskId"`
		ID             flexInt    `json:"id"`
		AssignedTaskID flexInt    `json:"assignedTaskId"`
		ZoneNo         flexString `json:"zoneNo"`
		Zone           flexString `json:"zone"`
		InvoiceID      flexString `json:"invoiceId"`
		Invoice        flexString `json:"invoice"`
		Order          flexString `json:"order"`
		OrderNo        flexString `json:"orderNo"`
		Postcode       flexString `json:"postcode"`
		Description    flexString `json:"description"`
		PodURL         flexString `json:"podUrl"`
		DriverName     flexString `json:"driverName"`
		Driver         flexString `json:"driver"`
		Status         flexString `json:"status"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	t.TaskID = firstInt(raw.TaskID, raw.ID)
	t.AssignedTaskID = int64(raw.AssignedTaskID)
	t.Zone = firstString(raw.ZoneNo, raw.Zone)
	t.Invoice = firstString(raw.InvoiceID, raw.Invoice)
	t.Order = firstString(raw.Order, raw.OrderNo)
	t.Postcode = string(raw.Postcode)
	t.Description = string(raw.Description)
	t.PodURL = string(raw.PodURL)
	t.DriverName = firstString(raw.DriverName, raw.Driver)
	t.Status = string(raw.Status)
	return nil
}

// Assignment is a single task-to-driver pairing posted to the backend.
type Assignment struct {
	TaskID     int64   `json:"taskId"`
	TruckNo    string  `json:"truckNo,omitempty"`
	Cubic      float64 `json:"cubic,omitempty"`
	DriverName string  `json:"driverName"`
	TruckType  string  `json:"truckType,omitempty"`
}
