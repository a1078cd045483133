package handlers_test

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportStreamsSpreadsheetThrough(t *testing.T) {
	payload := bytes.Repeat([]byte("cell,"), 4096)
	app, store := newTestApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/tasks/getTaskWithoutInvoice" {
			w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
			_, _ = w.Write(payload)
			return
		}
		_, _ = w.Write([]byte(`{}`))
	}))
	store.LoginSuccess(nil, "tok")

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/export/tasks-without-invoice", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "spreadsheetml")
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "attachment")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, payload, body)
}

func TestExportBackendFailureMapsToUpstreamError(t *testing.T) {
	app, store := newTestApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	store.LoginSuccess(nil, "tok")

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/export/tasks-without-invoice", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}
