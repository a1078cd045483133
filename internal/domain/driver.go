package domain

import "encoding/json"

// Driver is an available driver record from the dispatch backend.
type Driver struct {
	DriverID   int64
	DriverName string
	TruckNo    string
	TruckType  string
	Cubic      float64
}

// UnmarshalJSON tolerates driverId vs id and driverName vs name.
func (d *Driver) UnmarshalJSON(data []byte) error {
	var raw struct {
		DriverID   flexInt    `json:"driverId"`
		ID         flexInt    `json:"id"`
		DriverName flexString `json:"driverName"`
		Name       flexString `json:"name"`
		TruckNo    flexString `json:"truckNo"`
		TruckType  flexString `json:"truckType"`
		Cubic      flexFloat  `json:"cubic"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	d.DriverID = firstInt(raw.DriverID, raw.ID)
	d.DriverName = firstString(raw.DriverName, raw.Name)
	d.TruckNo = string(raw.TruckNo)
	d.TruckType = string(raw.TruckType)
	d.Cubic = float64(raw.Cubic)
	return nil
}
