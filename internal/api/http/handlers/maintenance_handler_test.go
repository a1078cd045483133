package handlers_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func maintenanceBackend() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.URL.Path == "/maintenance/drivers" && r.Method == http.MethodGet:
			_, _ = w.Write([]byte(`{"drivers":[{"driverId":7,"driverName":"Kay","status":"available"}]}`))
		case r.URL.Path == "/maintenance/drivers" && r.Method == http.MethodPost:
			_, _ = w.Write([]byte(`{"message":"Driver created","driverId":8}`))
		case r.URL.Path == "/maintenance/drivers/batch-update":
			_, _ = w.Write([]byte(`{"message":"Drivers updated successfully"}`))
		case strings.HasPrefix(r.URL.Path, "/maintenance/drivers/"):
			_, _ = w.Write([]byte(`{"message":"Driver deleted"}`))
		default:
			_, _ = w.Write([]byte(`{}`))
		}
	})
}

func TestMaintenanceDriversListing(t *testing.T) {
	app, store := newTestApp(t, maintenanceBackend())
	store.LoginSuccess(nil, "tok")

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/maintenance/drivers", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Data []struct {
			DriverName string
			Status     string
		} `json:"data"`
	}
	raw, _ := io.ReadAll(resp.Body)
	require.NoError(t, json.Unmarshal(raw, &body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, "Kay", body.Data[0].DriverName)
	assert.Equal(t, "available", body.Data[0].Status)
}

func TestCreateDriverRejectsUnknownStatus(t *testing.T) {
	app, store := newTestApp(t, maintenanceBackend())
	store.LoginSuccess(nil, "tok")

	req := httptest.NewRequest(http.MethodPost, "/api/maintenance/drivers",
		strings.NewReader(`{"driverName":"Kay","status":"busy"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCreateDriverReturnsCreated(t *testing.T) {
	app, store := newTestApp(t, maintenanceBackend())
	store.LoginSuccess(nil, "tok")

	req := httptest.NewRequest(http.MethodPost, "/api/maintenance/drivers",
		strings.NewReader(`{"driverName":"Lee","truckNo":12,"status":"available"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestBatchUpdateRequiresChanges(t *testing.T) {
	app, store := newTestApp(t, maintenanceBackend())
	store.LoginSuccess(nil, "tok")

	req := httptest.NewRequest(http.MethodPatch, "/api/maintenance/drivers/batch-update",
		strings.NewReader(`{"updates":[]}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestBatchUpdateAppliesEdits(t *testing.T) {
	app, store := newTestApp(t, maintenanceBackend())
	store.LoginSuccess(nil, "tok")

	req := httptest.NewRequest(http.MethodPatch, "/api/maintenance/drivers/batch-update",
		strings.NewReader(`{"updates":[{"driverId":7,"status":"maintenance"}]}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestDeleteDriverValidatesID(t *testing.T) {
	app, store := newTestApp(t, maintenanceBackend())
	store.LoginSuccess(nil, "tok")

	resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/api/maintenance/drivers/abc", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodDelete, "/api/maintenance/drivers/7", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestMaintenanceRoutesAreProtected(t *testing.T) {
	app, _ := newTestApp(t, maintenanceBackend())

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/maintenance/drivers", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}
