// Package llm defines the text-generation collaborator port used by
// llm nodes, plus a reference client for OpenAI-compatible chat
// completion endpoints and tiktoken-based token estimation.
package llm
