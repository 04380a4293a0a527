// Package config loads the engine configuration from defaults, an
// optional YAML file, an optional .env file and environment variable
// overrides, in that order of precedence.
package config
