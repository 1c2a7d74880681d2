package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Node represents one task within a flow execution.
type Node struct {
	ID     string `json:"id"     validate:"required"`
	Status Status `json:"status" validate:"required"`
}

// Status is the lifecycle state of a flow execution or one of its nodes.
type Status string

const (
	StatusReady           Status = "READY"
	StatusPreparing       Status = "PREPARING"
	StatusRunning         Status = "RUNNING"
	StatusPaused          Status = "PAUSED"
	StatusSucceeded       Status = "SUCCEEDED"
	StatusKilling         Status = "KILLING"
	StatusKilled          Status = "KILLED"
	StatusFailed          Status = "FAILED"
	StatusFailedFinishing Status = "FAILED_FINISHING"
	StatusSkipped         Status = "SKIPPED"
	StatusDisabled        Status = "DISABLED"
	StatusQueued          Status = "QUEUED"
	StatusFailedSucceeded Status = "FAILED_SUCCEEDED"
	StatusCancelled       Status = "CANCELLED"
)

var knownStatuses = map[Status]struct{}{
	StatusReady:           {},
	StatusPreparing:       {},
	StatusRunning:         {},
	StatusPaused:          {},
	StatusSucceeded:       {},
	StatusKilling:         {},
	StatusKilled:          {},
	StatusFailed:          {},
	StatusFailedFinishing: {},
	StatusSkipped:         {},
	StatusDisabled:        {},
	StatusQueued:          {},
	StatusFailedSucceeded: {},
	StatusCancelled:       {},
}

func (s Status) String() string {
	return string(s)
}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	_, ok := knownStatuses[s]

	return ok
}

// IsTerminal reports whether no further transitions are expected.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusSucceeded, StatusKilled, StatusFailed, StatusSkipped,
		StatusDisabled, StatusFailedSucceeded, StatusCancelled:
		return true
	default:
		return false
	}
}

// UnmarshalJSON accepts status names in any case.
func (s *Status) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	status := Status(strings.ToUpper(strings.TrimSpace(raw)))
	if !status.Valid() {
		return fmt.Errorf("unknown status %q", raw)
	}

	*s = status

	return nil
}
