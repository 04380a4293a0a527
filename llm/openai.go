package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// OpenAICompatConfig configures the chat-completions client. It works
// against api.openai.com and any endpoint speaking the same protocol
// (Azure OpenAI, vLLM, llama.cpp server, LiteLLM proxies).
type OpenAICompatConfig struct {
	// BaseURL is the API root, e.g. "https://api.openai.com/v1".
	BaseURL string `json:"base_url" yaml:"base_url"`
	// APIKey is sent as a bearer token when non-empty.
	APIKey string `json:"api_key" yaml:"api_key"`
	// Timeout bounds one completion request.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// OpenAICompatProvider implements Provider over an OpenAI-compatible
// chat completions endpoint.
type OpenAICompatProvider struct {
	config OpenAICompatConfig
	client *http.Client
	logger *zap.Logger
}

// NewOpenAICompatProvider creates the provider. A nil logger falls
// back to zap.NewNop().
func NewOpenAICompatProvider(config OpenAICompatConfig, logger *zap.Logger) *OpenAICompatProvider {
	if config.Timeout <= 0 {
		config.Timeout = 60 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OpenAICompatProvider{
		config: config,
		client: &http.Client{Timeout: config.Timeout},
		logger: logger.With(zap.String("component", "openai_provider")),
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatCompletionResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message      chatMessage `json:"message"`
		FinishReason string      `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		TotalTokens int `json:"total_tokens"`
	} `json:"usage"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// Generate implements Provider. Context, when present, is injected as
// a second system message ahead of the user query.
func (p *OpenAICompatProvider) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	messages := []chatMessage{{Role: "system", Content: req.SystemPrompt}}
	if req.Context != "" {
		messages = append(messages, chatMessage{
			Role:    "system",
			Content: "Context information:\n" + req.Context,
		})
	}
	messages = append(messages, chatMessage{Role: "user", Content: req.Query})

	body, err := json.Marshal(chatCompletionRequest{
		Model:       req.Model,
		Messages:    messages,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		p.config.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if p.config.APIKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+p.config.APIKey)
	}

	start := time.Now()
	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("completion request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var completion chatCompletionResponse
	if err := json.Unmarshal(raw, &completion); err != nil {
		return nil, fmt.Errorf("decode response (status %d): %w", resp.StatusCode, err)
	}

	if completion.Error != nil {
		return nil, fmt.Errorf("provider error (%s): %s", completion.Error.Type, completion.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("provider returned status %d", resp.StatusCode)
	}
	if len(completion.Choices) == 0 {
		return nil, fmt.Errorf("provider returned no choices")
	}

	model := completion.Model
	if model == "" {
		model = req.Model
	}

	tokensUsed := completion.Usage.TotalTokens
	if tokensUsed == 0 {
		// Some compatible servers omit usage; estimate so downstream
		// accounting still sees a number.
		tokensUsed = EstimateRequestTokens(req) +
			EstimateTokens(model, completion.Choices[0].Message.Content)
	}

	p.logger.Debug("completion finished",
		zap.String("model", model),
		zap.Int("tokens_used", tokensUsed),
		zap.Duration("duration", time.Since(start)))

	return &GenerateResponse{
		Content:      completion.Choices[0].Message.Content,
		Model:        model,
		TokensUsed:   tokensUsed,
		FinishReason: completion.Choices[0].FinishReason,
	}, nil
}
