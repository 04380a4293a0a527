package engine

import (
	"strings"
	"testing"

	"pgregory.net/rapid"

	"github.com/BaSui01/flowforge/types"
)

// A chunk overlap at or above the chunk size is invalid no matter what
// the rest of the configuration looks like.
func TestRegistry_ChunkOverlapNeverReachesChunkSize(t *testing.T) {
	r := NewRegistry(nil)

	rapid.Check(t, func(t *rapid.T) {
		chunkSize := rapid.IntRange(minChunkSize, maxChunkSize).Draw(t, "chunk_size")
		overlapExcess := rapid.IntRange(0, 5000).Draw(t, "overlap_excess")

		cfg := map[string]any{
			"label":                rapid.StringMatching(`[a-zA-Z ]{1,20}`).Draw(t, "label"),
			"chunk_size":           chunkSize,
			"chunk_overlap":        chunkSize + overlapExcess,
			"similarity_threshold": rapid.Float64Range(0, 1).Draw(t, "threshold"),
			"max_results":          rapid.IntRange(1, 50).Draw(t, "max_results"),
		}

		result := r.ValidateConfig(types.NodeKindKnowledgeBase, cfg)
		if result.IsValid {
			t.Fatalf("overlap %d >= chunk size %d accepted", chunkSize+overlapExcess, chunkSize)
		}

		found := false
		for _, e := range result.Errors {
			if e.Field == "chunk_overlap" {
				found = true
			}
		}
		if !found {
			t.Fatalf("no chunk_overlap error in %v", result.Errors)
		}
	})
}

// In-range knowledge base configurations are always accepted.
func TestRegistry_InRangeKnowledgeBaseConfigAlwaysValid(t *testing.T) {
	r := NewRegistry(nil)

	rapid.Check(t, func(t *rapid.T) {
		chunkSize := rapid.IntRange(minChunkSize, maxChunkSize).Draw(t, "chunk_size")

		cfg := map[string]any{
			"label":                "KB",
			"chunk_size":           chunkSize,
			"chunk_overlap":        rapid.IntRange(0, chunkSize-1).Draw(t, "chunk_overlap"),
			"similarity_threshold": rapid.Float64Range(0, 1).Draw(t, "threshold"),
			"max_results":          rapid.IntRange(1, 50).Draw(t, "max_results"),
		}

		result := r.ValidateConfig(types.NodeKindKnowledgeBase, cfg)
		if !result.IsValid {
			t.Fatalf("in-range config rejected: %v", result.Errors)
		}
	})
}

// Validation reports every violated constraint, not just the first:
// the error count never shrinks when one more field goes out of range.
func TestRegistry_ValidationAccumulates(t *testing.T) {
	r := NewRegistry(nil)

	rapid.Check(t, func(t *rapid.T) {
		cfg := map[string]any{
			"label":  "LLM",
			"model":  "gpt-4",
			"prompt": "assist",
		}
		before := len(r.ValidateConfig(types.NodeKindLLM, cfg).Errors)

		cfg["temperature"] = rapid.Float64Range(2.01, 100).Draw(t, "bad_temperature")
		after := len(r.ValidateConfig(types.NodeKindLLM, cfg).Errors)

		if after != before+1 {
			t.Fatalf("expected %d errors, got %d", before+1, after)
		}

		cfg["prompt"] = strings.Repeat("p", maxPromptLen+1)
		final := len(r.ValidateConfig(types.NodeKindLLM, cfg).Errors)
		if final != after+1 {
			t.Fatalf("expected %d errors, got %d", after+1, final)
		}
	})
}
