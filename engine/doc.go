// Package engine implements the workflow execution engine: node-kind
// configuration validation, graph validation, deterministic topological
// scheduling, per-node execution with failure isolation, and the
// orchestrator that runs a whole graph and assembles its final result.
//
// The engine calls its external collaborators (vector search, language
// model, web search) through the narrow ports defined in the retrieval,
// llm and search packages; it owns no storage and no HTTP surface.
package engine
