// Package metrics provides internal Prometheus metrics collection for
// workflow runs, node executions and collaborator calls.
// This package is internal and should not be imported by external projects.
package metrics
