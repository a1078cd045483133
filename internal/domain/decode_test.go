package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskDecodeAlternateKeys(t *testing.T) {
	cases := []struct {
		name string
		body string
		want Task
	}{
		{
			name: "primary keys",
			body: `{"taskId":101,"zoneNo":"North","invoiceId":"2001","driverName":"Adam"}`,
			want: Task{TaskID: 101, Zone: "North", Invoice: "2001", DriverName: "Adam"},
		},
		{
			name: "fallback keys",
			body: `{"id":"102","zone":"South","invoice":2002,"driver":"Mark"}`,
			want: Task{TaskID: 102, Zone: "South", Invoice: "2002", DriverName: "Mark"},
		},
		{
			name: "primary wins over fallback",
			body: `{"taskId":103,"id":999,"zoneNo":"ww","zone":"ignored"}`,
			want: Task{TaskID: 103, Zone: "ww"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var got Task
			require.NoError(t, json.Unmarshal([]byte(tc.body), &got))
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestDriverDecode(t *testing.T) {
	var d Driver
	require.NoError(t, json.Unmarshal([]byte(`{"id":"d1","name":"Adam","truckNo":"T-7","cubic":"12.5"}`), &d))
	// Non-numeric ids are tolerated and left at zero.
	assert.EqualValues(t, 0, d.DriverID)
	assert.Equal(t, "Adam", d.DriverName)
	assert.Equal(t, "T-7", d.TruckNo)
	assert.InDelta(t, 12.5, d.Cubic, 0.0001)

	require.NoError(t, json.Unmarshal([]byte(`{"driverId":41,"driverName":"Lucy"}`), &d))
	assert.EqualValues(t, 41, d.DriverID)
	assert.Equal(t, "Lucy", d.DriverName)
}

func TestVehicleDecodeNumericStrings(t *testing.T) {
	var v Vehicle
	body := `{"TrackerID":"88","Registration":"XYZ-123","Driver":"Adam","Latitude":"-33.87","Longitude":151.21,"Speed":null}`
	require.NoError(t, json.Unmarshal([]byte(body), &v))
	assert.EqualValues(t, 88, v.TrackerID)
	assert.Equal(t, "Adam", v.DriverName)
	assert.InDelta(t, -33.87, v.Latitude, 0.0001)
	assert.InDelta(t, 151.21, v.Longitude, 0.0001)
}

func TestProfileFromPayload(t *testing.T) {
	wrapped := map[string]any{"user": map[string]any{"id": "7", "username": "kay"}}
	profile := ProfileFromPayload(wrapped)
	require.NotNil(t, profile)
	assert.Equal(t, "kay", profile.Username)

	bare := map[string]any{"id": "8", "username": "mel"}
	profile = ProfileFromPayload(bare)
	require.NotNil(t, profile)
	assert.Equal(t, "mel", profile.Username)

	assert.Nil(t, ProfileFromPayload(nil))
	assert.Nil(t, ProfileFromPayload(map[string]any{"unrelated": true}))
}
