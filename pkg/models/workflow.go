// Package models defines the read-only execution state views consumed by alert composers.
package models

// UnsetTime marks a start or end timestamp that has not been recorded yet.
const UnsetTime int64 = -1

// FlowExecution represents one run of a workflow ("flow").
// Timestamps are epoch milliseconds.
type FlowExecution struct {
	ExecutionID int               `json:"execution_id" validate:"gte=0"`
	FlowID      string            `json:"flow_id"      validate:"required"`
	ProjectName string            `json:"project_name" validate:"required"`
	Status      Status            `json:"status"       validate:"required"`
	StartTime   int64             `json:"start_time"`
	EndTime     int64             `json:"end_time"`
	Nodes       []*Node           `json:"nodes,omitempty"   validate:"omitempty,dive"`
	Options     *ExecutionOptions `json:"options,omitempty" validate:"omitempty"`
}

// ExecutionOptions returns the flow's notification policy, never nil.
func (f *FlowExecution) ExecutionOptions() *ExecutionOptions {
	if f == nil || f.Options == nil {
		return &ExecutionOptions{}
	}

	return f.Options
}

// FailedNodes returns the ids of the nodes that ended in FAILED, in node order.
func (f *FlowExecution) FailedNodes() []string {
	if f == nil {
		return nil
	}

	failed := make([]string, 0, len(f.Nodes))

	for _, node := range f.Nodes {
		if node != nil && node.Status == StatusFailed {
			failed = append(failed, node.ID)
		}
	}

	return failed
}

// IsFinished reports whether the flow reached a terminal status.
func (f *FlowExecution) IsFinished() bool {
	return f != nil && f.Status.IsTerminal()
}
