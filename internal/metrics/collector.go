package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

// Collector registers and records the engine's Prometheus metrics.
type Collector struct {
	// Workflow run metrics
	runsTotal   *prometheus.CounterVec
	runDuration *prometheus.HistogramVec

	// Node execution metrics
	nodeExecutionsTotal   *prometheus.CounterVec
	nodeExecutionDuration *prometheus.HistogramVec

	// Collaborator metrics
	collaboratorCallsTotal *prometheus.CounterVec
	llmTokensUsed          *prometheus.CounterVec

	logger *zap.Logger
}

// NewCollector creates a collector registered against reg. A nil reg
// uses the default registerer; a nil logger falls back to zap.NewNop().
func NewCollector(namespace string, reg prometheus.Registerer, logger *zap.Logger) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	factory := promauto.With(reg)

	c := &Collector{
		logger: logger.With(zap.String("component", "metrics")),
	}

	c.runsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "workflow_runs_total",
			Help:      "Total number of workflow runs",
		},
		[]string{"status"},
	)

	c.runDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "workflow_run_duration_seconds",
			Help:      "Workflow run duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"status"},
	)

	c.nodeExecutionsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "node_executions_total",
			Help:      "Total number of node executions",
		},
		[]string{"kind", "status"},
	)

	c.nodeExecutionDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "node_execution_duration_seconds",
			Help:      "Node execution duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"kind"},
	)

	c.collaboratorCallsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "collaborator_calls_total",
			Help:      "Total number of external collaborator calls",
		},
		[]string{"collaborator", "status"},
	)

	c.llmTokensUsed = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "llm_tokens_used_total",
			Help:      "Total LLM tokens consumed",
		},
		[]string{"model"},
	)

	return c
}

// RecordRun records one completed workflow run.
func (c *Collector) RecordRun(status string, duration time.Duration) {
	c.runsTotal.WithLabelValues(status).Inc()
	c.runDuration.WithLabelValues(status).Observe(duration.Seconds())
}

// RecordNodeExecution records one node execution.
func (c *Collector) RecordNodeExecution(kind, status string, duration time.Duration) {
	c.nodeExecutionsTotal.WithLabelValues(kind, status).Inc()
	c.nodeExecutionDuration.WithLabelValues(kind).Observe(duration.Seconds())
}

// RecordCollaboratorCall records one external collaborator call.
func (c *Collector) RecordCollaboratorCall(collaborator, status string) {
	c.collaboratorCallsTotal.WithLabelValues(collaborator, status).Inc()
}

// RecordLLMTokens records token consumption for a model.
func (c *Collector) RecordLLMTokens(model string, tokens int) {
	if tokens <= 0 {
		return
	}
	c.llmTokensUsed.WithLabelValues(model).Add(float64(tokens))
}
