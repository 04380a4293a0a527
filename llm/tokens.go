package llm

import (
	"github.com/pkoukk/tiktoken-go"
)

// fallbackEncoding covers models tiktoken has no mapping for.
const fallbackEncoding = "cl100k_base"

// EstimateTokens counts the tokens of text under the given model's
// encoding. Unknown models fall back to cl100k_base; if even that
// fails (offline first use without the embedded BPE), a rough
// 4-characters-per-token estimate is returned so callers always get a
// usable number.
func EstimateTokens(model, text string) int {
	if text == "" {
		return 0
	}

	enc, err := tiktoken.EncodingForModel(model)
	if err != nil {
		enc, err = tiktoken.GetEncoding(fallbackEncoding)
	}
	if err != nil {
		return (len(text) + 3) / 4
	}

	return len(enc.Encode(text, nil, nil))
}

// EstimateRequestTokens approximates the prompt-side token count of a
// generation request: system prompt, context block and query.
func EstimateRequestTokens(req GenerateRequest) int {
	total := EstimateTokens(req.Model, req.SystemPrompt) + EstimateTokens(req.Model, req.Query)
	if req.Context != "" {
		total += EstimateTokens(req.Model, req.Context)
	}
	return total
}
