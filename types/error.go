package types

import "fmt"

// ErrorCode classifies engine errors across validation and execution.
type ErrorCode string

// Graph structure error codes
const (
	ErrGraphEmpty       ErrorCode = "GRAPH_EMPTY"
	ErrGraphDuplicateID ErrorCode = "GRAPH_DUPLICATE_ID"
	ErrGraphUnknownKind ErrorCode = "GRAPH_UNKNOWN_KIND"
	ErrGraphDanglingEdge ErrorCode = "GRAPH_DANGLING_EDGE"
	ErrGraphCycle        ErrorCode = "GRAPH_CYCLE"
)

// Node and run error codes
const (
	ErrNodeConfigInvalid   ErrorCode = "NODE_CONFIG_INVALID"
	ErrNodeExecutionFailed ErrorCode = "NODE_EXECUTION_FAILED"
	ErrRunFailed           ErrorCode = "RUN_FAILED"
)

// Error is a structured error with a code, message and optional cause.
type Error struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	NodeID  string    `json:"node_id,omitempty"`
	Cause   error     `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates a new Error with the given code and message.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WithCause adds a cause to the error.
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// WithNodeID names the node the error originated from.
func (e *Error) WithNodeID(nodeID string) *Error {
	e.NodeID = nodeID
	return e
}

// GetErrorCode extracts the error code from an error.
func GetErrorCode(err error) ErrorCode {
	if e, ok := err.(*Error); ok {
		return e.Code
	}
	return ""
}
