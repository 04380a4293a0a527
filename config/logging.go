package config

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// BuildLogger constructs a zap logger from the log configuration.
// Format json yields production encoding, console yields development
// encoding.
func (c LogConfig) BuildLogger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", c.Level, err)
	}

	var zcfg zap.Config
	switch c.Format {
	case "console":
		zcfg = zap.NewDevelopmentConfig()
	case "json", "":
		zcfg = zap.NewProductionConfig()
	default:
		return nil, fmt.Errorf("invalid log format %q", c.Format)
	}

	zcfg.Level = zap.NewAtomicLevelAt(level)
	if len(c.OutputPaths) > 0 {
		zcfg.OutputPaths = c.OutputPaths
	}
	return zcfg.Build()
}
