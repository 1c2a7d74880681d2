package main

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/dukex/flowalert/pkg/composer"
	"github.com/dukex/flowalert/pkg/registry"
	"github.com/dukex/flowalert/pkg/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const failedFlowJSON = `{
  "flow": {
    "execution_id": 42,
    "flow_id": "daily-etl",
    "project_name": "warehouse",
    "status": "FAILED",
    "start_time": 1000,
    "end_time": 1050,
    "nodes": [{"id": "load", "status": "FAILED"}],
    "options": {
      "failure_emails": ["ops@x.org"],
      "failure_action": "CANCEL_ALL"
    }
  },
  "reasons": ["node load failed"]
}`

func newTestAlerts() *services.Alerts {
	return services.NewAlerts(registry.NewRegistry(slog.Default(), nil), nil)
}

func TestRender_Text(t *testing.T) {
	var out bytes.Buffer

	err := render(t.Context(), &out, newTestAlerts(), renderOptions{kind: "failure", format: "text"}, []byte(failedFlowJSON))
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Composer: default\n")
	assert.Contains(t, out.String(), "To: ops@x.org\n")
	assert.Contains(t, out.String(), "Subject: Flow 'daily-etl' has failed\n")
	assert.Contains(t, out.String(), "node load failed")
	assert.Contains(t, out.String(), "50 ms")
}

func TestRender_HTML(t *testing.T) {
	var out bytes.Buffer

	err := render(t.Context(), &out, newTestAlerts(), renderOptions{kind: "first-failure", format: "html"}, []byte(failedFlowJSON))
	require.NoError(t, err)

	assert.Contains(t, out.String(), `<h2 style="color:#FF0000">`)
	assert.Contains(t, out.String(), "cancel all currently running jobs")
}

func TestRender_NothingToNotify(t *testing.T) {
	var out bytes.Buffer

	err := render(t.Context(), &out, newTestAlerts(), renderOptions{kind: "success", format: "text"}, []byte(failedFlowJSON))
	require.NoError(t, err)

	assert.Equal(t, nothingToNotify+"\n", out.String())
}

func TestRender_Errors(t *testing.T) {
	alerts := newTestAlerts()

	var out bytes.Buffer

	err := render(t.Context(), &out, alerts, renderOptions{kind: "weekly", format: "text"}, []byte(failedFlowJSON))
	assert.ErrorIs(t, err, composer.ErrUnknownKind)

	err = render(t.Context(), &out, alerts, renderOptions{kind: "failure", format: "pdf"}, []byte(failedFlowJSON))
	assert.ErrorIs(t, err, errUnknownFormat)

	err = render(t.Context(), &out, alerts, renderOptions{kind: "failure", format: "text"}, []byte("{"))
	assert.ErrorContains(t, err, "decode failure input")

	err = render(t.Context(), &out, alerts, renderOptions{kind: "executor-update-failure", format: "text"}, []byte(`{"flows": []}`))
	assert.ErrorContains(t, err, "invalid executor-update-failure input")

	assert.Empty(t, out.String())
}
