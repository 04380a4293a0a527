// Package flowforge provides the top-level entry point for validating
// and executing visual workflows.
//
// Usage:
//
//	import "github.com/BaSui01/flowforge"
//
//	eng, err := flowforge.New(
//	    flowforge.WithProvider(myProvider),
//	    flowforge.WithRetriever(myStore),
//	)
//	result := eng.ExecuteWorkflow(ctx, graph, input)
//
// Collaborators are optional; a workflow whose nodes never touch a
// missing collaborator runs fine, and a node that needs one fails as
// that single node.
package flowforge

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/BaSui01/flowforge/config"
	"github.com/BaSui01/flowforge/engine"
	"github.com/BaSui01/flowforge/internal/metrics"
	"github.com/BaSui01/flowforge/llm"
	"github.com/BaSui01/flowforge/retrieval"
	"github.com/BaSui01/flowforge/search"
	"github.com/BaSui01/flowforge/types"
)

// Engine bundles the workflow machinery behind one façade: kind
// registry, graph validator, node executor and orchestrator.
type Engine struct {
	registry  *engine.Registry
	validator *engine.Validator
	nodes     *engine.NodeExecutor
	workflows *engine.WorkflowExecutor
}

type options struct {
	cfg         *config.Config
	logger      *zap.Logger
	provider    llm.Provider
	retriever   retrieval.Searcher
	webSearcher search.Searcher
	registerer  prometheus.Registerer
}

// Option configures the engine created by [New].
type Option func(*options)

// WithConfig supplies a loaded configuration; absent, defaults apply.
func WithConfig(cfg *config.Config) Option {
	return func(o *options) { o.cfg = cfg }
}

// WithLogger sets a custom zap logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithProvider wires the language model provider used by llm nodes.
func WithProvider(p llm.Provider) Option {
	return func(o *options) { o.provider = p }
}

// WithRetriever wires the knowledge base used by knowledgeBase nodes.
func WithRetriever(r retrieval.Searcher) Option {
	return func(o *options) { o.retriever = r }
}

// WithWebSearcher wires the search client used by webSearch nodes.
func WithWebSearcher(s search.Searcher) Option {
	return func(o *options) { o.webSearcher = s }
}

// WithMetrics registers Prometheus collectors on the given registerer
// and enables metric recording.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(o *options) { o.registerer = reg }
}

// New assembles an engine from the given options.
func New(opts ...Option) (*Engine, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	cfg := o.cfg
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := o.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	var collector *metrics.Collector
	if o.registerer != nil {
		collector = metrics.NewCollector(cfg.Engine.MetricsNamespace, o.registerer, logger)
	}

	registry := engine.NewRegistry(cfg.Engine.AllowedModels)
	validator := engine.NewValidator(registry, logger)

	nodes := engine.NewNodeExecutor(registry, engine.Collaborators{
		Retriever:   o.retriever,
		Provider:    o.provider,
		WebSearcher: o.webSearcher,
	}, logger)
	nodes.NodeTimeout = cfg.Engine.NodeTimeout
	nodes.Metrics = collector

	workflows := engine.NewWorkflowExecutor(nodes, logger)
	workflows.Metrics = collector

	return &Engine{
		registry:  registry,
		validator: validator,
		nodes:     nodes,
		workflows: workflows,
	}, nil
}

// ValidateGraph checks a workflow's structure and every node's
// configuration, returning all violations at once.
func (e *Engine) ValidateGraph(graph *types.WorkflowGraph) types.ValidationReport {
	return e.validator.ValidateWorkflow(graph)
}

// ValidateNodeConfig checks a single node configuration against its
// kind's schema.
func (e *Engine) ValidateNodeConfig(kind types.NodeKind, cfg map[string]any) types.ValidationReport {
	return e.registry.ValidateConfig(kind, cfg)
}

// ExecuteNode runs a single node in isolation, outside any workflow.
// Useful for per-node testing from a builder UI.
func (e *Engine) ExecuteNode(ctx context.Context, kind types.NodeKind, cfg, input map[string]any) types.NodeResult {
	node := types.NodeSpec{ID: "standalone", Kind: kind, Config: cfg}
	return e.nodes.Execute(ctx, node, input)
}

// ExecuteWorkflow runs a whole graph against the given input.
func (e *Engine) ExecuteWorkflow(ctx context.Context, graph *types.WorkflowGraph, input map[string]any) types.WorkflowRunResult {
	return e.workflows.Run(ctx, graph, input)
}
