package retrieval

import "context"

// Match is one retrieved passage, ranked by similarity score.
type Match struct {
	// Content is the passage text.
	Content string `json:"content"`
	// Title names the source document.
	Title string `json:"title"`
	// Score is the similarity in [0,1], higher is more similar.
	Score float64 `json:"similarity"`
	// Metadata carries source-specific fields (document id, chunk index).
	Metadata map[string]any `json:"metadata,omitempty"`
}

// Searcher is the similarity-search contract the engine calls for
// knowledgeBase nodes.
type Searcher interface {
	// SimilaritySearch returns up to k passages relevant to query with
	// score >= threshold, most similar first. scope restricts the search
	// to one workflow's documents; empty means no restriction.
	SimilaritySearch(ctx context.Context, query string, k int, threshold float64, scope string) ([]Match, error)
}

// EmbedFunc produces a vector embedding for a piece of text. It
// decouples the in-memory store from any concrete embedding provider.
type EmbedFunc func(ctx context.Context, text string) ([]float64, error)

// Document is an embedded chunk held by the in-memory store.
type Document struct {
	ID        string         `json:"id"`
	Title     string         `json:"title"`
	Content   string         `json:"content"`
	Scope     string         `json:"scope,omitempty"`
	Embedding []float64      `json:"embedding,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}
