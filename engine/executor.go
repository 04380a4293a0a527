package engine

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/BaSui01/flowforge/internal/metrics"
	"github.com/BaSui01/flowforge/llm"
	"github.com/BaSui01/flowforge/retrieval"
	"github.com/BaSui01/flowforge/search"
	"github.com/BaSui01/flowforge/types"
)

// noResponseSentinel is the response an output node formats when no
// upstream node produced one.
const noResponseSentinel = "No response generated"

// Collaborators bundles the external services the executor calls.
// Any of them may be nil; executing a node that needs a missing
// collaborator yields an error result, not a crash.
type Collaborators struct {
	Retriever   retrieval.Searcher
	Provider    llm.Provider
	WebSearcher search.Searcher
}

// NodeExecutor runs single nodes with per-node failure isolation: it
// always returns a NodeResult and never panics outward.
type NodeExecutor struct {
	registry *Registry
	collab   Collaborators
	logger   *zap.Logger

	// NodeTimeout bounds each collaborator call; 0 disables the
	// deadline, restoring the original unbounded-wait behavior.
	NodeTimeout time.Duration

	// Metrics is optional; nil disables recording.
	Metrics *metrics.Collector
}

// NewNodeExecutor creates a node executor. A nil logger falls back to
// zap.NewNop().
func NewNodeExecutor(registry *Registry, collab Collaborators, logger *zap.Logger) *NodeExecutor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NodeExecutor{
		registry: registry,
		collab:   collab,
		logger:   logger.With(zap.String("component", "node_executor")),
	}
}

// Execute runs one node and returns its result. Failures of any kind —
// collaborator errors, bad input, panics — are converted to a result
// with status error; a single node can never crash the process.
//
// input is the node's merged view: the run's original input plus every
// previously produced node output.
func (e *NodeExecutor) Execute(ctx context.Context, node types.NodeSpec, input map[string]any) (result types.NodeResult) {
	start := time.Now()
	config := e.registry.ApplyDefaults(node.Kind, node.Config)

	defer func() {
		if r := recover(); r != nil {
			result = e.finish(node, types.NodeResult{
				NodeID:       node.ID,
				Status:       types.NodeStatusError,
				ErrorMessage: fmt.Sprintf("panic in node handler: %v", r),
			}, start)
		}
	}()

	if e.NodeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.NodeTimeout)
		defer cancel()
	}

	var output map[string]any
	var err error

	switch node.Kind {
	case types.NodeKindQuery:
		output, err = e.executeQuery(config, input)
	case types.NodeKindKnowledgeBase:
		output, err = e.executeKnowledgeBase(ctx, config, input)
	case types.NodeKindLLM:
		output, err = e.executeLLM(ctx, config, input)
	case types.NodeKindWebSearch:
		output, err = e.executeWebSearch(ctx, config, input)
	case types.NodeKindOutput:
		output, err = e.executeOutput(config, input)
	default:
		err = fmt.Errorf("unknown node type: %s", node.Kind)
	}

	if err != nil {
		return e.finish(node, types.NodeResult{
			NodeID:       node.ID,
			Status:       types.NodeStatusError,
			ErrorMessage: err.Error(),
		}, start)
	}

	return e.finish(node, types.NodeResult{
		NodeID: node.ID,
		Status: types.NodeStatusSuccess,
		Output: output,
	}, start)
}

func (e *NodeExecutor) finish(node types.NodeSpec, result types.NodeResult, start time.Time) types.NodeResult {
	duration := time.Since(start)
	result.DurationMS = duration.Milliseconds()

	if e.Metrics != nil {
		e.Metrics.RecordNodeExecution(string(node.Kind), string(result.Status), duration)
	}

	if result.Status == types.NodeStatusError {
		e.logger.Warn("node execution failed",
			zap.String("node_id", node.ID),
			zap.String("node_type", string(node.Kind)),
			zap.Duration("duration", duration),
			zap.String("error", result.ErrorMessage))
	} else {
		e.logger.Debug("node execution completed",
			zap.String("node_id", node.ID),
			zap.String("node_type", string(node.Kind)),
			zap.Duration("duration", duration))
	}
	return result
}

// --- kind handlers ---

func (e *NodeExecutor) executeQuery(config, input map[string]any) (map[string]any, error) {
	userInput, _ := getString(input, "user_query")
	userInput = strings.TrimSpace(userInput)
	if userInput == "" {
		return nil, fmt.Errorf("user query is required")
	}

	placeholder, _ := getStringDefault(config, "placeholder", "")
	return map[string]any{
		"query":       userInput,
		"validated":   true,
		"placeholder": placeholder,
	}, nil
}

func (e *NodeExecutor) executeKnowledgeBase(ctx context.Context, config, input map[string]any) (map[string]any, error) {
	query := queryFromInput(input)
	if query == "" {
		// An empty query is not an error: retrieval simply has nothing
		// to look up.
		return map[string]any{"documents": []retrieval.Match{}, "context": ""}, nil
	}

	if e.collab.Retriever == nil {
		return nil, fmt.Errorf("no knowledge base retriever configured")
	}

	maxResults, _ := getIntDefault(config, "max_results", 5)
	threshold, _ := getFloatDefault(config, "similarity_threshold", 0.7)
	scope, _ := getString(input, "workflow_id")

	matches, err := e.collab.Retriever.SimilaritySearch(ctx, query, maxResults, threshold, scope)
	e.recordCollaborator("vector_search", err)
	if err != nil {
		return nil, fmt.Errorf("similarity search failed: %w", err)
	}

	entries := make([]string, 0, len(matches))
	for _, m := range matches {
		title := m.Title
		if title == "" {
			title = "Unknown"
		}
		entries = append(entries, fmt.Sprintf("Document: %s\nContent: %s", title, m.Content))
	}

	return map[string]any{
		"documents":            matches,
		"context":              strings.Join(entries, "\n\n"),
		"document_count":       len(matches),
		"similarity_threshold": threshold,
	}, nil
}

func (e *NodeExecutor) executeLLM(ctx context.Context, config, input map[string]any) (map[string]any, error) {
	if e.collab.Provider == nil {
		return nil, fmt.Errorf("no language model provider configured")
	}

	query := queryFromInput(input)
	docContext, _ := getString(input, "context")

	model, _ := getStringDefault(config, "model", "gpt-3.5-turbo")
	prompt, _ := getStringDefault(config, "prompt", "You are a helpful assistant.")
	temperature, _ := getFloatDefault(config, "temperature", 0.7)
	maxTokens, _ := getIntDefault(config, "max_tokens", 0)

	req := llm.GenerateRequest{
		Query:        query,
		Context:      docContext,
		SystemPrompt: prompt,
		Model:        model,
		Temperature:  temperature,
		MaxTokens:    maxTokens,
	}

	e.logger.Debug("invoking language model",
		zap.String("model", model),
		zap.Int("prompt_tokens_estimate", llm.EstimateRequestTokens(req)))

	resp, err := e.collab.Provider.Generate(ctx, req)
	e.recordCollaborator("llm", err)
	if err != nil {
		return nil, fmt.Errorf("generation failed: %w", err)
	}

	if e.Metrics != nil {
		e.Metrics.RecordLLMTokens(resp.Model, resp.TokensUsed)
	}

	finishReason := resp.FinishReason
	if finishReason == "" {
		finishReason = "stop"
	}

	return map[string]any{
		"response":      resp.Content,
		"model_used":    resp.Model,
		"tokens_used":   resp.TokensUsed,
		"finish_reason": finishReason,
	}, nil
}

func (e *NodeExecutor) executeWebSearch(ctx context.Context, config, input map[string]any) (map[string]any, error) {
	query := queryFromInput(input)
	if query == "" {
		return map[string]any{"results": []search.Result{}, "context": ""}, nil
	}

	if e.collab.WebSearcher == nil {
		return nil, fmt.Errorf("no web search client configured")
	}

	maxResults, _ := getIntDefault(config, "max_results", 5)
	engine, _ := getStringDefault(config, "search_engine", "google")

	results, err := e.collab.WebSearcher.Search(ctx, query, maxResults, engine)
	e.recordCollaborator("web_search", err)
	if err != nil {
		return nil, fmt.Errorf("web search failed: %w", err)
	}

	entries := make([]string, 0, len(results))
	for _, r := range results {
		entries = append(entries, fmt.Sprintf("Title: %s\nSnippet: %s\nURL: %s", r.Title, r.Snippet, r.URL))
	}

	return map[string]any{
		"results":       results,
		"context":       strings.Join(entries, "\n\n"),
		"result_count":  len(results),
		"search_engine": engine,
	}, nil
}

func (e *NodeExecutor) executeOutput(config, input map[string]any) (map[string]any, error) {
	response, ok := getString(input, "response")
	if !ok || response == "" {
		response = noResponseSentinel
	}

	format, _ := getStringDefault(config, "format", "text")
	includeSources := getBoolDefault(config, "include_sources", true)

	formatted := response
	if template, ok := getString(config, "template"); ok && template != "" {
		formatted = renderTemplate(template, response, input)
	}

	titles := sourceTitles(input["documents"])

	var output any
	switch format {
	case "json":
		envelope := map[string]any{
			"response": formatted,
			"metadata": input["context"],
		}
		if includeSources {
			envelope["sources"] = input["documents"]
		}
		output = envelope

	case "markdown":
		text := "# Response\n\n" + formatted
		if includeSources && len(titles) > 0 {
			bullets := make([]string, len(titles))
			for i, t := range titles {
				bullets[i] = "- " + t
			}
			text += "\n\n## Sources\n\n" + strings.Join(bullets, "\n")
		}
		output = text

	default: // text
		text := formatted
		if includeSources && len(titles) > 0 {
			text += "\n\nSources: " + strings.Join(titles, ", ")
		}
		output = text
	}

	return map[string]any{
		"output":          output,
		"format":          format,
		"include_sources": includeSources,
	}, nil
}

func (e *NodeExecutor) recordCollaborator(name string, err error) {
	if e.Metrics == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	e.Metrics.RecordCollaboratorCall(name, status)
}

// queryFromInput resolves the effective query: a query node's validated
// output when present, otherwise the raw user query.
func queryFromInput(input map[string]any) string {
	if q, ok := getString(input, "query"); ok && q != "" {
		return q
	}
	q, _ := getString(input, "user_query")
	return q
}

var templateVarPattern = regexp.MustCompile(`\{([a-zA-Z_][a-zA-Z0-9_]*)\}`)

// renderTemplate substitutes {response} and other {variable} references
// from the merged input. An unresolved variable degrades the whole
// rendering to an inline error string instead of failing the node.
func renderTemplate(template, response string, input map[string]any) string {
	var missing string
	rendered := templateVarPattern.ReplaceAllStringFunc(template, func(ref string) string {
		name := ref[1 : len(ref)-1]
		if name == "response" {
			return response
		}
		if v, ok := input[name]; ok {
			return fmt.Sprintf("%v", v)
		}
		if missing == "" {
			missing = name
		}
		return ref
	})

	if missing != "" {
		return fmt.Sprintf("Template error: missing variable '%s'", missing)
	}
	return rendered
}

// sourceTitles extracts document titles from a knowledge-base node's
// output, tolerating both typed matches and decoded-JSON maps.
func sourceTitles(docs any) []string {
	var titles []string
	appendTitle := func(title string) {
		if title == "" {
			title = "Unknown"
		}
		titles = append(titles, title)
	}

	switch list := docs.(type) {
	case []retrieval.Match:
		for _, m := range list {
			appendTitle(m.Title)
		}
	case []map[string]any:
		for _, m := range list {
			t, _ := m["title"].(string)
			appendTitle(t)
		}
	case []any:
		for _, item := range list {
			switch m := item.(type) {
			case retrieval.Match:
				appendTitle(m.Title)
			case map[string]any:
				t, _ := m["title"].(string)
				appendTitle(t)
			}
		}
	}
	return titles
}
