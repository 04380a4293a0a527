package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimateTokens(t *testing.T) {
	assert.Zero(t, EstimateTokens("gpt-4", ""))

	short := EstimateTokens("gpt-4", "hello world")
	long := EstimateTokens("gpt-4", "hello world, this is a much longer sentence about workflows")
	assert.Greater(t, short, 0)
	assert.Greater(t, long, short)

	// Unknown models still produce a usable estimate via the fallback.
	assert.Greater(t, EstimateTokens("some-local-model", "hello world"), 0)
}

func TestEstimateRequestTokens(t *testing.T) {
	base := GenerateRequest{
		Model:        "gpt-4",
		Query:        "what is Go?",
		SystemPrompt: "You are a helpful assistant.",
	}
	withContext := base
	withContext.Context = "Go is a programming language designed at Google."

	assert.Greater(t, EstimateRequestTokens(base), 0)
	assert.Greater(t, EstimateRequestTokens(withContext), EstimateRequestTokens(base))
}
