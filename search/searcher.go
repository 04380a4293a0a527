package search

import "context"

// Supported engine names. Node configuration validates against these.
const (
	EngineGoogle     = "google"
	EngineBing       = "bing"
	EngineDuckDuckGo = "duckduckgo"
)

// Result is one ranked web search hit.
type Result struct {
	Title    string `json:"title"`
	URL      string `json:"link"`
	Snippet  string `json:"snippet"`
	Position int    `json:"position"`
	Source   string `json:"source"`
}

// Searcher is the web-search contract the engine calls for webSearch
// nodes. engine selects the backend ("google", "bing", "duckduckgo");
// implementations may route or fall back as they see fit.
type Searcher interface {
	Search(ctx context.Context, query string, maxResults int, engine string) ([]Result, error)
}
