package events

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/dukex/flowalert/pkg/models"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvents_GetType(t *testing.T) {
	assert.Equal(t, FlowFirstFailureEvent, FlowFirstFailure{}.GetType())
	assert.Equal(t, FlowFailedEvent, FlowFailed{}.GetType())
	assert.Equal(t, FlowSucceededEvent, FlowSucceeded{}.GetType())
	assert.Equal(t, ExecutorUpdateFailedEventType, ExecutorUpdateFailed{}.GetType())
	assert.Equal(t, AlertComposedEvent, AlertComposed{}.GetType())
}

func TestNewBaseEvent(t *testing.T) {
	first := NewBaseEvent(FlowFailedEvent)
	second := NewBaseEvent(FlowFailedEvent)

	assert.Equal(t, FlowFailedEvent, first.Type)
	assert.NotEmpty(t, first.ID)
	assert.NotEqual(t, first.ID, second.ID)
	assert.False(t, first.Timestamp.IsZero())
}

func TestFlowFailed_JSONSerialization(t *testing.T) {
	original := &FlowFailed{
		BaseEvent: NewBaseEvent(FlowFailedEvent),
		Flow: &models.FlowExecution{
			ExecutionID: 9,
			FlowID:      "daily-etl",
			ProjectName: "warehouse",
			Status:      models.StatusFailed,
			Options: &models.ExecutionOptions{
				FailureEmails: []string{"a@x.org"},
				FailureAction: models.FailureActionCancelAll,
			},
		},
		Reasons: []string{"load failed"},
	}

	jsonData, err := json.Marshal(original)
	require.NoError(t, err)
	assert.Contains(t, string(jsonData), `"type":"flow.failed"`)
	assert.Contains(t, string(jsonData), `"execution_id":9`)
	assert.Contains(t, string(jsonData), `"failure_action":"CANCEL_ALL"`)

	var deserialized FlowFailed

	err = json.Unmarshal(jsonData, &deserialized)
	require.NoError(t, err)
	assert.Equal(t, original.ID, deserialized.ID)
	assert.Equal(t, original.Flow, deserialized.Flow)
	assert.Equal(t, original.Reasons, deserialized.Reasons)
}

func TestUpdateError_Format(t *testing.T) {
	cause := errors.New("connection refused")

	updateErr := NewUpdateError(cause)
	require.NotNil(t, updateErr)

	assert.Equal(t, "connection refused", updateErr.Error())
	assert.Equal(t, "connection refused", fmt.Sprintf("%v", updateErr))
	assert.Equal(t, "connection refused", fmt.Sprintf("%s", updateErr))
	assert.Contains(t, fmt.Sprintf("%+v", updateErr), "TestUpdateError_Format")

	assert.Nil(t, NewUpdateError(nil))
}

func TestUpdateError_FormatOtherVerbs(t *testing.T) {
	updateErr := &UpdateError{Message: "timeout", Trace: "timeout\n\tat poller.go:88"}

	assert.Equal(t, `"timeout"`, fmt.Sprintf("%q", updateErr))
	assert.Equal(t, "timeout", fmt.Sprintf("%x", updateErr))
	assert.Equal(t, "timeout", fmt.Sprintf("%d", updateErr))
}

func TestExecutorUpdateFailed_RoundTrip(t *testing.T) {
	event := ExecutorUpdateFailed{
		BaseEvent: NewBaseEvent(ExecutorUpdateFailedEventType),
		Flows:     []*models.FlowExecution{{ExecutionID: 1, FlowID: "a", ProjectName: "p"}},
		Executor:  &models.Executor{Host: "exec-1"},
		Error:     &UpdateError{Message: "timeout", Trace: "timeout\n\tat poller.go:88"},
	}

	jsonData, err := json.Marshal(event)
	require.NoError(t, err)

	var decoded ExecutorUpdateFailed
	require.NoError(t, json.Unmarshal(jsonData, &decoded))

	require.Error(t, decoded.Err())
	assert.Equal(t, "timeout\n\tat poller.go:88", fmt.Sprintf("%+v", decoded.Err()))

	decoded.Error = nil
	assert.NoError(t, decoded.Err())
}
