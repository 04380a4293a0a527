package types

import "time"

// NodeStatus is the terminal state of a single node execution.
type NodeStatus string

const (
	NodeStatusSuccess NodeStatus = "success"
	NodeStatusError   NodeStatus = "error"
	NodeStatusSkipped NodeStatus = "skipped"
)

// RunStatus is the terminal state of a whole workflow run.
type RunStatus string

const (
	RunStatusSuccess RunStatus = "success"
	RunStatusError   RunStatus = "error"
)

// NodeResult is the outcome of executing one node. The executor always
// returns a NodeResult; failures are captured as StatusError with a
// message rather than propagating out.
type NodeResult struct {
	NodeID string     `json:"node_id"`
	Status NodeStatus `json:"status"`
	// Output is the node's produced key/value mapping; nil on error.
	Output map[string]any `json:"output_data,omitempty"`
	// ErrorMessage describes the failure when Status is error.
	ErrorMessage string `json:"error_message,omitempty"`
	// DurationMS is the node's wall-clock execution time in milliseconds.
	DurationMS int64 `json:"execution_time"`
}

// WorkflowRunResult is the outcome of a full workflow run.
type WorkflowRunResult struct {
	RunID  string    `json:"execution_id"`
	Status RunStatus `json:"status"`
	// Result is the final output-node value, or the "No output generated"
	// sentinel when the graph contains no output node.
	Result any `json:"result,omitempty"`
	// Error describes the failure when Status is error.
	Error      string    `json:"error,omitempty"`
	DurationMS int64     `json:"execution_time"`
	Timestamp  time.Time `json:"timestamp"`
}

// ValidationError is one constraint violation found during graph or
// node-config validation.
type ValidationError struct {
	// NodeID names the offending node, or "current" for standalone
	// config validation.
	NodeID  string `json:"node_id"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationReport accumulates every violation found by a validation
// pass. Validators never short-circuit on the first error.
type ValidationReport struct {
	IsValid  bool              `json:"is_valid"`
	Errors   []ValidationError `json:"errors"`
	Warnings []string          `json:"warnings"`
}
