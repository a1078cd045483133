package domain

import "encoding/json"

// Driver availability states accepted by the maintenance endpoints.
const (
	DriverStatusAvailable   = "available"
	DriverStatusUnavailable = "unavailable"
	DriverStatusMaintenance = "maintenance"
)

// ValidDriverStatus reports whether s is one of the accepted states.
func ValidDriverStatus(s string) bool {
	switch s {
	case DriverStatusAvailable, DriverStatusUnavailable, DriverStatusMaintenance:
		return true
	}
	return false
}

// MaintenanceDriver is the full driver record managed on the maintenance
// screen. Unlike the assignment Driver view it carries the account fields;
// the password is write-only and never comes back from the backend.
type MaintenanceDriver struct {
	DriverID   int64
	DriverName string
	TruckNo    int64
	Cubic      float64
	TruckType  string
	Status     string
	Username   string
	TrackerID  int64
}

// UnmarshalJSON tolerates driverId vs id and the PascalCase TrackerID.
func (d *MaintenanceDriver) UnmarshalJSON(data []byte) error {
	var raw struct {
		DriverID   flexInt    `json:"driverId"`
		ID         flexInt    `json:"id"`
		DriverName flexString `json:"driverName"`
		TruckNo    flexInt    `json:"truckNo"`
		Cubic      flexFloat  `json:"cubic"`
		TruckType  flexString `json:"truckType"`
		Status     flexString `json:"status"`
		Username   flexString `json:"username"`
		TrackerID  flexInt    `json:"TrackerID"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	d.DriverID = firstInt(raw.DriverID, raw.ID)
	d.DriverName = string(raw.DriverName)
	d.TruckNo = int64(raw.TruckNo)
	d.Cubic = float64(raw.Cubic)
	d.TruckType = string(raw.TruckType)
	d.Status = string(raw.Status)
	d.Username = string(raw.Username)
	d.TrackerID = int64(raw.TrackerID)
	return nil
}

// NewDriver is the create payload. Every field is optional on the backend
// schema; nil pointers serialize as null, which the backend treats as unset.
// The status defaults to available when empty.
type NewDriver struct {
	DriverName *string  `json:"driverName"`
	TruckNo    *int64   `json:"truckNo"`
	Cubic      *float64 `json:"cubic"`
	TruckType  *string  `json:"truckType"`
	Status     string   `json:"status"`
	Username   *string  `json:"username"`
	Password   *string  `json:"password"`
	TrackerID  *int64   `json:"TrackerID"`
}

// DriverUpdate is one sparse row patch for the batch update: only the
// driver id is required, nil fields stay untouched on the backend.
type DriverUpdate struct {
	DriverID   int64    `json:"driverId"`
	DriverName *string  `json:"driverName,omitempty"`
	TruckNo    *int64   `json:"truckNo,omitempty"`
	Cubic      *float64 `json:"cubic,omitempty"`
	TruckType  *string  `json:"truckType,omitempty"`
	Status     *string  `json:"status,omitempty"`
	Username   *string  `json:"username,omitempty"`
	Password   *string  `json:"password,omitempty"`
	TrackerID  *int64   `json:"TrackerID,omitempty"`
}
