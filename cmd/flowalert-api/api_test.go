package main

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dukex/flowalert/pkg/composer"
	"github.com/dukex/flowalert/pkg/models"
	"github.com/dukex/flowalert/pkg/registry"
	"github.com/dukex/flowalert/pkg/web"
	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestApp() *fiber.App {
	reg := registry.NewRegistry(slog.Default(), composer.NewDefault(
		composer.WithServer(composer.ServerInfo{Name: "staging", Host: "flows.example.com"}),
	))

	return NewAPI(slog.Default(), reg).App()
}

func readBody(t *testing.T, resp *http.Response) []byte {
	t.Helper()

	defer func() {
		err := resp.Body.Close()
		if err != nil {
			t.Logf("Failed to close response body: %v", err)
		}
	}()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return body
}

func TestAPI_RootEndpoint(t *testing.T) {
	app := setupTestApp()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "flowalert API", string(readBody(t, resp)))
}

func TestAPI_HealthCheck(t *testing.T) {
	app := setupTestApp()

	for _, endpoint := range []string{"/livez", "/readyz"} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, endpoint, nil))
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "OK", string(readBody(t, resp)))
	}
}

func TestAPI_Composers(t *testing.T) {
	app := setupTestApp()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/composers", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var response web.ComposersResponse
	require.NoError(t, json.Unmarshal(readBody(t, resp), &response))
	assert.Equal(t, []string{registry.DefaultName}, response.Composers)
}

func TestAPI_PreviewUsesServerInfo(t *testing.T) {
	app := setupTestApp()

	payload, err := json.Marshal(web.FlowAlertRequest{Flow: &models.FlowExecution{
		ExecutionID: 9,
		FlowID:      "nightly",
		ProjectName: "billing",
		Status:      models.StatusSucceeded,
		StartTime:   1000,
		EndTime:     2000,
		Options:     &models.ExecutionOptions{SuccessEmails: []string{"team@x.org"}},
	}})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/alerts/preview/success", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var response web.PreviewResponse
	require.NoError(t, json.Unmarshal(readBody(t, resp), &response))
	assert.Equal(t, "Flow 'nightly' has succeeded on staging", response.Subject)
	assert.Contains(t, response.Body, "https://flows.example.com/executor?execid=9")
}
