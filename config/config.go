package config

import "time"

// Config is the complete engine configuration.
type Config struct {
	// Engine tunes workflow execution.
	Engine EngineConfig `yaml:"engine" env:"ENGINE"`

	// LLM configures the language model provider.
	LLM LLMConfig `yaml:"llm" env:"LLM"`

	// Retrieval configures the knowledge base store.
	Retrieval RetrievalConfig `yaml:"retrieval" env:"RETRIEVAL"`

	// Search configures the web search client.
	Search SearchConfig `yaml:"search" env:"SEARCH"`

	// Log configures structured logging.
	Log LogConfig `yaml:"log" env:"LOG"`
}

// EngineConfig tunes workflow execution.
type EngineConfig struct {
	// NodeTimeout bounds each node's collaborator calls; 0 disables
	// the per-node deadline.
	NodeTimeout time.Duration `yaml:"node_timeout" env:"NODE_TIMEOUT"`
	// AllowedModels overrides the language-model allow-list; empty
	// keeps the built-in list.
	AllowedModels []string `yaml:"allowed_models" env:"ALLOWED_MODELS"`
	// MetricsNamespace prefixes all Prometheus metric names.
	MetricsNamespace string `yaml:"metrics_namespace" env:"METRICS_NAMESPACE"`
}

// LLMConfig configures the language model provider.
type LLMConfig struct {
	// APIKey authenticates against the provider.
	APIKey string `yaml:"api_key" env:"API_KEY"`
	// BaseURL points at an OpenAI-compatible endpoint.
	BaseURL string `yaml:"base_url" env:"BASE_URL"`
	// DefaultModel is used when a node names no model.
	DefaultModel string `yaml:"default_model" env:"DEFAULT_MODEL"`
	// Timeout bounds a single generation request.
	Timeout time.Duration `yaml:"timeout" env:"TIMEOUT"`
	// MaxRetries caps retry attempts on transient failures.
	MaxRetries int `yaml:"max_retries" env:"MAX_RETRIES"`
}

// RetrievalConfig configures the knowledge base store.
type RetrievalConfig struct {
	// ChunkSize is the default document chunk size in characters.
	ChunkSize int `yaml:"chunk_size" env:"CHUNK_SIZE"`
	// ChunkOverlap is the default overlap between adjacent chunks.
	ChunkOverlap int `yaml:"chunk_overlap" env:"CHUNK_OVERLAP"`
	// SimilarityThreshold is the default minimum match score.
	SimilarityThreshold float64 `yaml:"similarity_threshold" env:"SIMILARITY_THRESHOLD"`
	// MaxResults is the default number of matches returned.
	MaxResults int `yaml:"max_results" env:"MAX_RESULTS"`
}

// SearchConfig configures the web search client.
type SearchConfig struct {
	// BaseURL points at the search API endpoint.
	BaseURL string `yaml:"base_url" env:"BASE_URL"`
	// Timeout bounds a single search request.
	Timeout time.Duration `yaml:"timeout" env:"TIMEOUT"`
	// RateLimitRPS caps outbound search requests per second.
	RateLimitRPS float64 `yaml:"rate_limit_rps" env:"RATE_LIMIT_RPS"`
}

// LogConfig configures structured logging.
type LogConfig struct {
	// Level: debug, info, warn, error.
	Level string `yaml:"level" env:"LEVEL"`
	// Format: json or console.
	Format string `yaml:"format" env:"FORMAT"`
	// OutputPaths are zap sink URLs.
	OutputPaths []string `yaml:"output_paths" env:"OUTPUT_PATHS"`
}

// DefaultConfig returns the configuration used when nothing overrides it.
func DefaultConfig() *Config {
	return &Config{
		Engine: EngineConfig{
			NodeTimeout:      60 * time.Second,
			MetricsNamespace: "flowforge",
		},
		LLM: LLMConfig{
			DefaultModel: "gpt-3.5-turbo",
			Timeout:      2 * time.Minute,
			MaxRetries:   3,
		},
		Retrieval: RetrievalConfig{
			ChunkSize:           1000,
			ChunkOverlap:        200,
			SimilarityThreshold: 0.7,
			MaxResults:          5,
		},
		Search: SearchConfig{
			Timeout:      10 * time.Second,
			RateLimitRPS: 2,
		},
		Log: LogConfig{
			Level:       "info",
			Format:      "json",
			OutputPaths: []string{"stdout"},
		},
	}
}
