package llm

import "context"

// GenerateRequest carries one generation call from an llm node.
type GenerateRequest struct {
	// Query is the user's question.
	Query string `json:"query"`
	// Context is accumulated retrieval/search context; may be empty.
	Context string `json:"context,omitempty"`
	// SystemPrompt is the node's configured system prompt.
	SystemPrompt string `json:"system_prompt"`
	// Model names the model to use.
	Model string `json:"model"`
	// Temperature in [0,2].
	Temperature float64 `json:"temperature"`
	// MaxTokens caps the completion length; 0 leaves it to the provider.
	MaxTokens int `json:"max_tokens,omitempty"`
}

// GenerateResponse is the provider's answer.
type GenerateResponse struct {
	// Content is the generated text.
	Content string `json:"content"`
	// Model is the model the provider actually used.
	Model string `json:"model"`
	// TokensUsed is total token usage as reported by the provider,
	// 0 when unreported.
	TokensUsed int `json:"tokens_used"`
	// FinishReason is the provider's stop reason ("stop", "length", …).
	FinishReason string `json:"finish_reason,omitempty"`
}

// Provider is the generation contract the engine calls for llm nodes.
type Provider interface {
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)
}
