package retrieval

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"go.uber.org/zap"
)

// InMemoryStore is a Searcher over documents held in memory, ranked by
// cosine similarity. Suitable for tests and small single-process
// deployments; larger installations put a vector database behind the
// Searcher interface instead.
type InMemoryStore struct {
	embed  EmbedFunc
	logger *zap.Logger

	mu        sync.RWMutex
	documents []Document
}

// NewInMemoryStore creates an empty store. embed is required; a nil
// logger falls back to zap.NewNop().
func NewInMemoryStore(embed EmbedFunc, logger *zap.Logger) *InMemoryStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InMemoryStore{
		embed:  embed,
		logger: logger.With(zap.String("component", "memory_store")),
	}
}

// AddDocuments stores pre-embedded documents.
func (s *InMemoryStore) AddDocuments(ctx context.Context, docs []Document) error {
	for _, doc := range docs {
		if len(doc.Embedding) == 0 {
			return fmt.Errorf("document %s has no embedding", doc.ID)
		}
	}

	s.mu.Lock()
	s.documents = append(s.documents, docs...)
	total := len(s.documents)
	s.mu.Unlock()

	s.logger.Info("documents added",
		zap.Int("count", len(docs)),
		zap.Int("total", total))
	return nil
}

// AddText chunks text with the given chunker, embeds each chunk and
// stores the results under the given title and scope.
func (s *InMemoryStore) AddText(ctx context.Context, title, text, scope string, chunker *Chunker) error {
	chunks := chunker.Split(text)
	docs := make([]Document, 0, len(chunks))

	for i, chunk := range chunks {
		embedding, err := s.embed(ctx, chunk)
		if err != nil {
			return fmt.Errorf("embed chunk %d of %q: %w", i, title, err)
		}
		docs = append(docs, Document{
			ID:        fmt.Sprintf("%s-%d", title, i),
			Title:     title,
			Content:   chunk,
			Scope:     scope,
			Embedding: embedding,
			Metadata:  map[string]any{"chunk_index": i},
		})
	}

	return s.AddDocuments(ctx, docs)
}

// SimilaritySearch implements Searcher.
func (s *InMemoryStore) SimilaritySearch(ctx context.Context, query string, k int, threshold float64, scope string) ([]Match, error) {
	if k <= 0 {
		return []Match{}, nil
	}

	queryEmbedding, err := s.embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	matches := make([]Match, 0, len(s.documents))
	for _, doc := range s.documents {
		if scope != "" && doc.Scope != scope {
			continue
		}
		score := cosineSimilarity(queryEmbedding, doc.Embedding)
		if score < threshold {
			continue
		}
		matches = append(matches, Match{
			Content:  doc.Content,
			Title:    doc.Title,
			Score:    score,
			Metadata: doc.Metadata,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	if len(matches) > k {
		matches = matches[:k]
	}

	s.logger.Debug("similarity search",
		zap.String("scope", scope),
		zap.Int("k", k),
		zap.Float64("threshold", threshold),
		zap.Int("matches", len(matches)))

	return matches, nil
}

// Count returns the number of stored documents.
func (s *InMemoryStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.documents)
}

// cosineSimilarity computes the cosine similarity of two vectors.
// Mismatched or zero-length vectors score 0.
func cosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
