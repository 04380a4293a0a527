package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_Error(t *testing.T) {
	e := NewError(ErrGraphCycle, "workflow contains cycles")
	assert.Equal(t, "[GRAPH_CYCLE] workflow contains cycles", e.Error())
}

func TestError_WithCause(t *testing.T) {
	cause := errors.New("boom")
	e := NewError(ErrNodeExecutionFailed, "node failed").WithCause(cause)

	assert.Contains(t, e.Error(), "boom")
	assert.ErrorIs(t, e, cause)
}

func TestError_WithNodeID(t *testing.T) {
	e := NewError(ErrNodeExecutionFailed, "node failed").WithNodeID("llm-1")
	assert.Equal(t, "llm-1", e.NodeID)
}

func TestError_Wrapping(t *testing.T) {
	inner := NewError(ErrGraphCycle, "cycle")
	outer := fmt.Errorf("validate: %w", inner)

	var target *Error
	assert.ErrorAs(t, outer, &target)
	assert.Equal(t, ErrGraphCycle, target.Code)
}

func TestGetErrorCode(t *testing.T) {
	assert.Equal(t, ErrGraphEmpty, GetErrorCode(NewError(ErrGraphEmpty, "no nodes")))
	assert.Equal(t, ErrorCode(""), GetErrorCode(errors.New("plain")))
}
