// Package telemetry holds the small pieces of ambient instrumentation
// shared by every entry point: a zap logger built from a level name, and
// a correlation ID generator used to tag interpreter runs and HTTP
// requests for logs that otherwise carry no other way to group them.
package telemetry

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// NewLogger builds a production zap logger at the given level name
// ("debug", "info", "warn", "error").
func NewLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return cfg.Build()
}

// NewRunID returns a fresh correlation ID for one interpreter run or
// HTTP request.
func NewRunID() string {
	return uuid.NewString()
}
