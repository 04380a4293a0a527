// Package search defines the web-search collaborator port used by
// webSearch nodes, plus a reference DuckDuckGo Instant Answer client
// that needs no API key.
package search
