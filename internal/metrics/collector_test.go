package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCollector(t *testing.T) {
	c := NewCollector("test", prometheus.NewRegistry(), nil)

	require.NotNil(t, c)
	assert.NotNil(t, c.runsTotal)
	assert.NotNil(t, c.runDuration)
	assert.NotNil(t, c.nodeExecutionsTotal)
	assert.NotNil(t, c.nodeExecutionDuration)
	assert.NotNil(t, c.collaboratorCallsTotal)
	assert.NotNil(t, c.llmTokensUsed)
}

func TestCollector_RecordRun(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector("test", reg, nil)

	c.RecordRun("success", 250*time.Millisecond)
	c.RecordRun("success", 100*time.Millisecond)
	c.RecordRun("error", 10*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.runsTotal.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.runsTotal.WithLabelValues("error")))
}

func TestCollector_RecordNodeExecution(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector("test", reg, nil)

	c.RecordNodeExecution("llm", "success", 50*time.Millisecond)
	c.RecordNodeExecution("llm", "error", 5*time.Millisecond)
	c.RecordNodeExecution("output", "success", time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.nodeExecutionsTotal.WithLabelValues("llm", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.nodeExecutionsTotal.WithLabelValues("llm", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.nodeExecutionsTotal.WithLabelValues("output", "success")))
}

func TestCollector_RecordLLMTokens(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector("test", reg, nil)

	c.RecordLLMTokens("gpt-4", 120)
	c.RecordLLMTokens("gpt-4", 80)
	c.RecordLLMTokens("gpt-4", 0) // ignored

	assert.Equal(t, 200.0, testutil.ToFloat64(c.llmTokensUsed.WithLabelValues("gpt-4")))
}

func TestCollector_RecordCollaboratorCall(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector("test", reg, nil)

	c.RecordCollaboratorCall("vector_search", "success")
	c.RecordCollaboratorCall("web_search", "error")

	assert.Equal(t, 1.0, testutil.ToFloat64(c.collaboratorCallsTotal.WithLabelValues("vector_search", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.collaboratorCallsTotal.WithLabelValues("web_search", "error")))
}
