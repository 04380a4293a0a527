package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/BaSui01/flowforge/internal/metrics"
	"github.com/BaSui01/flowforge/types"
)

// NoOutputSentinel is the run result when the graph has no output node.
const NoOutputSentinel = "No output generated"

const tracerName = "github.com/BaSui01/flowforge/engine"

// WorkflowExecutor orchestrates a full workflow run: it computes the
// execution order, runs nodes sequentially, threads outputs forward and
// assembles the final result.
//
// A WorkflowExecutor holds no per-run state and is safe to share across
// concurrent callers; each Run owns its own execution context.
type WorkflowExecutor struct {
	nodes  *NodeExecutor
	logger *zap.Logger
	tracer trace.Tracer

	// Metrics is optional; nil disables recording.
	Metrics *metrics.Collector
}

// NewWorkflowExecutor creates the orchestrator around a node executor.
// A nil logger falls back to zap.NewNop().
func NewWorkflowExecutor(nodes *NodeExecutor, logger *zap.Logger) *WorkflowExecutor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WorkflowExecutor{
		nodes:  nodes,
		logger: logger.With(zap.String("component", "workflow_executor")),
		tracer: otel.Tracer(tracerName),
	}
}

// Run executes the whole graph against the given input payload and
// returns the run result. The graph is treated as immutable for the
// duration of the run.
//
// Each node sees the union of the original input and every previously
// produced node output, with later outputs shadowing earlier keys on
// collision. The final result is the last output node's value, or
// NoOutputSentinel when the graph has no output node. A node finishing
// with an error status aborts the run; already accumulated outputs are
// not exposed.
func (w *WorkflowExecutor) Run(ctx context.Context, graph *types.WorkflowGraph, input map[string]any) types.WorkflowRunResult {
	start := time.Now()
	runID := uuid.NewString()

	ctx, span := w.tracer.Start(ctx, "workflow.run", trace.WithAttributes(
		attribute.String("workflow.run_id", runID),
		attribute.Int("workflow.node_count", len(graph.Nodes)),
	))
	defer span.End()

	w.logger.Info("starting workflow run",
		zap.String("run_id", runID),
		zap.Int("nodes", len(graph.Nodes)),
		zap.Int("edges", len(graph.Edges)))

	result := w.execute(ctx, runID, graph, input)
	result.DurationMS = time.Since(start).Milliseconds()
	result.Timestamp = time.Now().UTC()

	if w.Metrics != nil {
		w.Metrics.RecordRun(string(result.Status), time.Since(start))
	}

	if result.Status == types.RunStatusError {
		span.SetAttributes(attribute.String("workflow.error", result.Error))
		w.logger.Error("workflow run failed",
			zap.String("run_id", runID),
			zap.String("error", result.Error),
			zap.Int64("duration_ms", result.DurationMS))
	} else {
		w.logger.Info("workflow run completed",
			zap.String("run_id", runID),
			zap.Int64("duration_ms", result.DurationMS))
	}
	return result
}

func (w *WorkflowExecutor) execute(ctx context.Context, runID string, graph *types.WorkflowGraph, input map[string]any) types.WorkflowRunResult {
	if len(graph.Nodes) == 0 {
		return runError(runID, "Workflow has no nodes")
	}

	order, err := Schedule(graph.Nodes, graph.Edges)
	if err != nil {
		return runError(runID, err.Error())
	}

	// The execution context: the run's input plus every output produced
	// so far. Only this loop writes to it; node handlers just read.
	view := make(map[string]any, len(input)+len(order)+2)
	for k, v := range input {
		view[k] = v
	}
	if _, ok := view["user_query"]; !ok {
		if msg, ok := getString(input, "user_message"); ok {
			view["user_query"] = msg
		}
	}
	view["execution_id"] = runID

	var finalResult any
	haveOutput := false

	for _, node := range order {
		nodeCtx, nodeSpan := w.tracer.Start(ctx, "workflow.node", trace.WithAttributes(
			attribute.String("node.id", node.ID),
			attribute.String("node.kind", string(node.Kind)),
		))

		result := w.nodes.Execute(nodeCtx, node, view)
		nodeSpan.SetAttributes(attribute.String("node.status", string(result.Status)))
		nodeSpan.End()

		if result.Status == types.NodeStatusError {
			return runError(runID, fmt.Sprintf("Error executing node %s (%s): %s",
				node.ID, node.Kind, result.ErrorMessage))
		}

		for k, v := range result.Output {
			view[k] = v
		}

		if node.Kind == types.NodeKindOutput {
			if out, ok := result.Output["output"]; ok {
				finalResult = out
				haveOutput = true
			}
		}
	}

	if !haveOutput {
		finalResult = NoOutputSentinel
	}

	return types.WorkflowRunResult{
		RunID:  runID,
		Status: types.RunStatusSuccess,
		Result: finalResult,
	}
}

func runError(runID, message string) types.WorkflowRunResult {
	return types.WorkflowRunResult{
		RunID:  runID,
		Status: types.RunStatusError,
		Error:  message,
	}
}
