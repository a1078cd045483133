package domain

import "encoding/json"

// Vehicle is a Netstar telemetry snapshot entry.
type Vehicle struct {
	TrackerID    int64
	Registration string
	DriverName   string
	Latitude     float64
	Longitude    float64
	Speed        float64
	Heading      float64
	LastSeen     string
}

// UnmarshalJSON tolerates the PascalCase telemetry keys and their
// DriverShortName vs Driver alternates.
func (v *Vehicle) UnmarshalJSON(data []byte) error {
	var raw struct {
		TrackerID       flexInt    `json:"TrackerID"`
		Registration    flexString `json:"Registration"`
		DriverShortName flexString `json:"DriverShortName"`
		Driver          flexString `json:"Driver"`
		Latitude        flexFloat  `json:"Latitude"`
		Longitude       flexFloat  `json:"Longitude"`
		Speed           flexFloat  `json:"Speed"`
		Heading         flexFloat  `json:"Heading"`
		LastSeen        flexString `json:"LastSeen"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	v.TrackerID = int64(raw.TrackerID)
	v.Registration = string(raw.Registration)
	v.DriverName = firstString(raw.DriverShortName, raw.Driver)
	v.Latitude = float64(raw.Latitude)
	v.Longitude = float64(raw.Longitude)
	v.Speed = float64(raw.Speed)
	v.Heading = float64(raw.Heading)
	v.LastSeen = string(raw.LastSeen)
	return nil
}
