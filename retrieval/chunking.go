package retrieval

import (
	"strings"
	"unicode/utf8"
)

// ChunkerConfig controls how documents are split before embedding.
// Bounds mirror the knowledgeBase node configuration: ChunkSize in
// [100,10000] characters, ChunkOverlap in [0,ChunkSize).
type ChunkerConfig struct {
	ChunkSize    int `json:"chunk_size" yaml:"chunk_size"`
	ChunkOverlap int `json:"chunk_overlap" yaml:"chunk_overlap"`
}

// DefaultChunkerConfig returns the builder defaults.
func DefaultChunkerConfig() ChunkerConfig {
	return ChunkerConfig{
		ChunkSize:    1000,
		ChunkOverlap: 200,
	}
}

// Chunker splits text into overlapping fixed-size chunks, preferring to
// break at whitespace near the chunk boundary.
type Chunker struct {
	config ChunkerConfig
}

// NewChunker creates a chunker. Out-of-range values are clamped to the
// defaults rather than rejected; config validation happens upstream in
// the node registry.
func NewChunker(config ChunkerConfig) *Chunker {
	if config.ChunkSize <= 0 {
		config.ChunkSize = DefaultChunkerConfig().ChunkSize
	}
	if config.ChunkOverlap < 0 || config.ChunkOverlap >= config.ChunkSize {
		config.ChunkOverlap = 0
	}
	return &Chunker{config: config}
}

// Split returns the chunks of text. Empty or whitespace-only input
// yields no chunks.
func (c *Chunker) Split(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	runes := []rune(text)
	if len(runes) <= c.config.ChunkSize {
		return []string{text}
	}

	var chunks []string
	start := 0
	for start < len(runes) {
		end := start + c.config.ChunkSize
		if end > len(runes) {
			end = len(runes)
		}

		// Break at the last whitespace inside the window when one exists
		// reasonably close to the boundary.
		if end < len(runes) {
			if cut := lastSpaceWithin(runes[start:end]); cut > c.config.ChunkSize/2 {
				end = start + cut
			}
		}

		chunk := strings.TrimSpace(string(runes[start:end]))
		if chunk != "" {
			chunks = append(chunks, chunk)
		}
		if end == len(runes) {
			break
		}

		// Overlap must never stall the scan when a whitespace cut
		// shortened the window below the overlap size.
		next := end - c.config.ChunkOverlap
		if next <= start {
			next = end
		}
		start = next
	}
	return chunks
}

// ChunkCount estimates how many chunks Split would produce without
// materializing them.
func (c *Chunker) ChunkCount(text string) int {
	n := utf8.RuneCountInString(strings.TrimSpace(text))
	if n == 0 {
		return 0
	}
	if n <= c.config.ChunkSize {
		return 1
	}
	step := c.config.ChunkSize - c.config.ChunkOverlap
	return (n + step - 1) / step
}

func lastSpaceWithin(runes []rune) int {
	for i := len(runes) - 1; i >= 0; i-- {
		switch runes[i] {
		case ' ', '\n', '\t':
			return i
		}
	}
	return -1
}
