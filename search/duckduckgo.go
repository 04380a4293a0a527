package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const defaultDuckDuckGoURL = "https://api.duckduckgo.com/"

// DuckDuckGoConfig configures the Instant Answer client.
type DuckDuckGoConfig struct {
	// BaseURL overrides the API endpoint; empty uses the public API.
	BaseURL string `json:"base_url" yaml:"base_url"`
	// Timeout bounds one search request.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
	// RateLimitRPS throttles outbound requests; 0 disables throttling.
	RateLimitRPS float64 `json:"rate_limit_rps" yaml:"rate_limit_rps"`
}

// DefaultDuckDuckGoConfig returns production defaults.
func DefaultDuckDuckGoConfig() DuckDuckGoConfig {
	return DuckDuckGoConfig{
		BaseURL:      defaultDuckDuckGoURL,
		Timeout:      10 * time.Second,
		RateLimitRPS: 2,
	}
}

// DuckDuckGo implements Searcher against the DuckDuckGo Instant Answer
// API. The engine argument of Search is accepted but ignored: this
// client always answers from DuckDuckGo, which keeps it usable as the
// no-credential fallback for every configured engine.
type DuckDuckGo struct {
	config  DuckDuckGoConfig
	client  *http.Client
	limiter *rate.Limiter
	logger  *zap.Logger
}

// NewDuckDuckGo creates the client. A nil logger falls back to
// zap.NewNop().
func NewDuckDuckGo(config DuckDuckGoConfig, logger *zap.Logger) *DuckDuckGo {
	if config.BaseURL == "" {
		config.BaseURL = defaultDuckDuckGoURL
	}
	if config.Timeout <= 0 {
		config.Timeout = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	var limiter *rate.Limiter
	if config.RateLimitRPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(config.RateLimitRPS), 1)
	}

	return &DuckDuckGo{
		config:  config,
		client:  &http.Client{Timeout: config.Timeout},
		limiter: limiter,
		logger:  logger.With(zap.String("component", "duckduckgo_search")),
	}
}

// instantAnswer is the subset of the Instant Answer payload we consume.
type instantAnswer struct {
	Heading       string `json:"Heading"`
	Abstract      string `json:"Abstract"`
	AbstractURL   string `json:"AbstractURL"`
	RelatedTopics []struct {
		Text     string `json:"Text"`
		FirstURL string `json:"FirstURL"`
	} `json:"RelatedTopics"`
}

// Search implements Searcher.
func (d *DuckDuckGo) Search(ctx context.Context, query string, maxResults int, engine string) ([]Result, error) {
	if strings.TrimSpace(query) == "" || maxResults <= 0 {
		return []Result{}, nil
	}

	if d.limiter != nil {
		if err := d.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
	}

	params := url.Values{
		"q":             {query},
		"format":        {"json"},
		"no_html":       {"1"},
		"skip_disambig": {"1"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.config.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("duckduckgo request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("duckduckgo returned status %d", resp.StatusCode)
	}

	var answer instantAnswer
	if err := json.NewDecoder(resp.Body).Decode(&answer); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	results := make([]Result, 0, maxResults)

	if answer.Abstract != "" {
		title := answer.Heading
		if title == "" {
			title = query
		}
		results = append(results, Result{
			Title:    title,
			URL:      answer.AbstractURL,
			Snippet:  answer.Abstract,
			Position: 1,
			Source:   "duckduckgo_instant",
		})
	}

	for _, topic := range answer.RelatedTopics {
		if len(results) >= maxResults {
			break
		}
		if topic.Text == "" {
			continue
		}
		results = append(results, Result{
			Title:    topicTitle(topic.FirstURL),
			URL:      topic.FirstURL,
			Snippet:  topic.Text,
			Position: len(results) + 1,
			Source:   "duckduckgo_related",
		})
	}

	d.logger.Debug("web search completed",
		zap.String("query", query),
		zap.Int("results", len(results)))

	return results, nil
}

// topicTitle derives a readable title from a topic URL, the way the
// Instant Answer API encodes article names in the path.
func topicTitle(topicURL string) string {
	if topicURL == "" {
		return ""
	}
	parts := strings.Split(strings.TrimRight(topicURL, "/"), "/")
	return strings.ReplaceAll(parts[len(parts)-1], "_", " ")
}
