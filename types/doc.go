// Package types defines the shared data model of the FlowForge engine:
// node kinds, workflow graphs, execution results and structured errors.
//
// The package is intentionally dependency-free so that every other
// package (engine, collaborator adapters, embedding applications) can
// import it without pulling in the engine itself.
package types
