package engine

import (
	"fmt"

	"github.com/BaSui01/flowforge/types"
)

// Configuration bounds per node kind.
const (
	maxPlaceholderLen = 500
	minChunkSize      = 100
	maxChunkSize      = 10000
	minMaxResultsKB   = 1
	maxMaxResultsKB   = 50
	maxPromptLen      = 4000
	maxTemperature    = 2.0
	maxTokensLimit    = 4000
	minMaxResultsWeb  = 1
	maxMaxResultsWeb  = 20
	maxTemplateLen    = 2000
)

// DefaultModels is the language-model allow-list used when no override
// is configured.
var DefaultModels = []string{
	"gpt-3.5-turbo",
	"gpt-4",
	"gpt-4-turbo",
	"text-davinci-003",
	"gemini-pro",
	"gemini-1.5-pro",
}

var supportedEngines = []string{"google", "bing", "duckduckgo"}
var supportedFormats = []string{"text", "json", "markdown"}

// validateFunc checks one kind's configuration and returns every
// violated constraint; it never stops at the first.
type validateFunc func(config map[string]any) []types.ValidationError

// KindSchema describes one node kind: its configuration defaults and
// its pure validation function.
type KindSchema struct {
	Kind     types.NodeKind
	Defaults map[string]any
	validate validateFunc
}

// Registry maps every recognized node kind to its schema. It is
// stateless after construction and safe for concurrent use.
type Registry struct {
	schemas map[types.NodeKind]KindSchema
	models  map[string]bool
}

// NewRegistry builds the registry. allowedModels overrides the
// language-model allow-list; nil or empty keeps DefaultModels.
func NewRegistry(allowedModels []string) *Registry {
	if len(allowedModels) == 0 {
		allowedModels = DefaultModels
	}
	models := make(map[string]bool, len(allowedModels))
	for _, m := range allowedModels {
		models[m] = true
	}

	r := &Registry{models: models}
	r.schemas = map[types.NodeKind]KindSchema{
		types.NodeKindQuery: {
			Kind: types.NodeKindQuery,
			Defaults: map[string]any{
				"placeholder": "Enter your question here...",
			},
			validate: validateQueryConfig,
		},
		types.NodeKindKnowledgeBase: {
			Kind: types.NodeKindKnowledgeBase,
			Defaults: map[string]any{
				"chunk_size":           1000,
				"chunk_overlap":        200,
				"similarity_threshold": 0.7,
				"max_results":          5,
			},
			validate: validateKnowledgeBaseConfig,
		},
		types.NodeKindLLM: {
			Kind: types.NodeKindLLM,
			Defaults: map[string]any{
				"model":       "gpt-3.5-turbo",
				"prompt":      "You are a helpful assistant.",
				"temperature": 0.7,
			},
			validate: r.validateLLMConfig,
		},
		types.NodeKindWebSearch: {
			Kind: types.NodeKindWebSearch,
			Defaults: map[string]any{
				"max_results":   5,
				"search_engine": "google",
			},
			validate: validateWebSearchConfig,
		},
		types.NodeKindOutput: {
			Kind: types.NodeKindOutput,
			Defaults: map[string]any{
				"format":          "text",
				"include_sources": true,
			},
			validate: validateOutputConfig,
		},
	}
	return r
}

// Schema returns the schema for a kind.
func (r *Registry) Schema(kind types.NodeKind) (KindSchema, bool) {
	s, ok := r.schemas[kind]
	return s, ok
}

// ApplyDefaults returns config with the kind's defaults filled in for
// absent keys. The input map is not mutated.
func (r *Registry) ApplyDefaults(kind types.NodeKind, config map[string]any) map[string]any {
	merged := make(map[string]any, len(config)+4)
	if s, ok := r.schemas[kind]; ok {
		for k, v := range s.Defaults {
			merged[k] = v
		}
	}
	for k, v := range config {
		merged[k] = v
	}
	return merged
}

// ValidateConfig checks a node configuration against its kind's schema
// and returns every violation. A missing or empty label is an error for
// every kind. Unknown kinds yield a single kind error.
func (r *Registry) ValidateConfig(kind types.NodeKind, config map[string]any) types.ValidationReport {
	var errs []types.ValidationError

	schema, ok := r.schemas[kind]
	if !ok {
		errs = append(errs, configError("type", fmt.Sprintf("Invalid node type: %s", kind)))
		return report(errs)
	}

	if label, _ := getString(config, "label"); label == "" {
		errs = append(errs, configError("label", "Node must have a label"))
	}

	errs = append(errs, schema.validate(config)...)
	return report(errs)
}

func report(errs []types.ValidationError) types.ValidationReport {
	return types.ValidationReport{
		IsValid:  len(errs) == 0,
		Errors:   errs,
		Warnings: []string{},
	}
}

func configError(field, message string) types.ValidationError {
	return types.ValidationError{NodeID: "current", Field: field, Message: message}
}

// --- per-kind validators ---

func validateQueryConfig(config map[string]any) []types.ValidationError {
	var errs []types.ValidationError

	if placeholder, ok := getString(config, "placeholder"); ok && len(placeholder) > maxPlaceholderLen {
		errs = append(errs, configError("placeholder",
			fmt.Sprintf("Placeholder text too long (max %d characters)", maxPlaceholderLen)))
	}
	return errs
}

func validateKnowledgeBaseConfig(config map[string]any) []types.ValidationError {
	var errs []types.ValidationError

	chunkSize, sizeOK := getIntDefault(config, "chunk_size", 1000)
	if !sizeOK || chunkSize < minChunkSize || chunkSize > maxChunkSize {
		errs = append(errs, configError("chunk_size",
			fmt.Sprintf("Chunk size must be between %d and %d", minChunkSize, maxChunkSize)))
	}

	chunkOverlap, overlapOK := getIntDefault(config, "chunk_overlap", 200)
	if !overlapOK || chunkOverlap < 0 || chunkOverlap >= chunkSize {
		errs = append(errs, configError("chunk_overlap",
			"Chunk overlap must be non-negative and less than chunk size"))
	}

	threshold, thresholdOK := getFloatDefault(config, "similarity_threshold", 0.7)
	if !thresholdOK || threshold < 0 || threshold > 1 {
		errs = append(errs, configError("similarity_threshold",
			"Similarity threshold must be between 0 and 1"))
	}

	maxResults, resultsOK := getIntDefault(config, "max_results", 5)
	if !resultsOK || maxResults < minMaxResultsKB || maxResults > maxMaxResultsKB {
		errs = append(errs, configError("max_results",
			fmt.Sprintf("Max results must be between %d and %d", minMaxResultsKB, maxMaxResultsKB)))
	}
	return errs
}

func (r *Registry) validateLLMConfig(config map[string]any) []types.ValidationError {
	var errs []types.ValidationError

	model, _ := getString(config, "model")
	if model == "" {
		errs = append(errs, configError("model", "Model is required"))
	} else if !r.models[model] {
		errs = append(errs, configError("model", fmt.Sprintf("Unsupported model: %s", model)))
	}

	prompt, _ := getString(config, "prompt")
	if prompt == "" {
		errs = append(errs, configError("prompt", "Prompt is required"))
	} else if len(prompt) > maxPromptLen {
		errs = append(errs, configError("prompt",
			fmt.Sprintf("Prompt too long (max %d characters)", maxPromptLen)))
	}

	temperature, temperatureOK := getFloatDefault(config, "temperature", 0.7)
	if !temperatureOK || temperature < 0 || temperature > maxTemperature {
		errs = append(errs, configError("temperature",
			fmt.Sprintf("Temperature must be between 0 and %g", maxTemperature)))
	}

	if _, present := config["max_tokens"]; present {
		maxTokens, tokensOK := getInt(config, "max_tokens")
		if !tokensOK || maxTokens < 1 || maxTokens > maxTokensLimit {
			errs = append(errs, configError("max_tokens",
				fmt.Sprintf("Max tokens must be between 1 and %d", maxTokensLimit)))
		}
	}
	return errs
}

func validateWebSearchConfig(config map[string]any) []types.ValidationError {
	var errs []types.ValidationError

	maxResults, resultsOK := getIntDefault(config, "max_results", 5)
	if !resultsOK || maxResults < minMaxResultsWeb || maxResults > maxMaxResultsWeb {
		errs = append(errs, configError("max_results",
			fmt.Sprintf("Max results must be between %d and %d", minMaxResultsWeb, maxMaxResultsWeb)))
	}

	engine, _ := getStringDefault(config, "search_engine", "google")
	if !contains(supportedEngines, engine) {
		errs = append(errs, configError("search_engine",
			fmt.Sprintf("Unsupported search engine: %s", engine)))
	}
	return errs
}

func validateOutputConfig(config map[string]any) []types.ValidationError {
	var errs []types.ValidationError

	format, _ := getStringDefault(config, "format", "text")
	if !contains(supportedFormats, format) {
		errs = append(errs, configError("format",
			fmt.Sprintf("Unsupported output format: %s", format)))
	}

	if template, ok := getString(config, "template"); ok && len(template) > maxTemplateLen {
		errs = append(errs, configError("template",
			fmt.Sprintf("Template too long (max %d characters)", maxTemplateLen)))
	}
	return errs
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
