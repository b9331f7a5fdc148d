// Package config holds the shared, mutable configuration of an ailisp run:
// where characters go, how output wraps, and which debug flags are active.
package config

import (
	"io"
	"os"

	"go.uber.org/zap"
)

// Column width and indent of the printer, fixed by the reference
// interpreter (see arena.PrintList).
const (
	WrapColumn = 50
	Indent     = 12
)

// A Config holds the configuration of one interpreter run. The zero value
// is usable and writes to os.Stdout/os.Stderr with no debug flags set.
type Config struct {
	output    io.Writer
	errOutput io.Writer
	prompt    string
	debug     map[string]bool
	logger    *zap.SugaredLogger

	// runID identifies this interpreter run in logs (see telemetry.NewRunID).
	runID string
}

// New returns a Config that writes to stdout/stderr and logs through the
// given logger. A nil logger installs zap's no-op logger.
func New(logger *zap.Logger) *Config {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Config{
		output:    os.Stdout,
		errOutput: os.Stderr,
		logger:    logger.Sugar(),
	}
}

func (c *Config) Output() io.Writer {
	if c == nil || c.output == nil {
		return os.Stdout
	}
	return c.output
}

func (c *Config) SetOutput(w io.Writer) {
	c.output = w
}

func (c *Config) ErrOutput() io.Writer {
	if c == nil || c.errOutput == nil {
		return os.Stderr
	}
	return c.errOutput
}

func (c *Config) SetErrOutput(w io.Writer) {
	c.errOutput = w
}

func (c *Config) Prompt() string {
	if c == nil {
		return ""
	}
	return c.prompt
}

func (c *Config) SetPrompt(prompt string) {
	c.prompt = prompt
}

func (c *Config) Debug(name string) bool {
	if c == nil {
		return false
	}
	return c.debug[name]
}

func (c *Config) SetDebug(name string, state bool) {
	if c.debug == nil {
		c.debug = make(map[string]bool)
	}
	c.debug[name] = state
}

// Logger returns the ambient structured logger, never nil.
func (c *Config) Logger() *zap.SugaredLogger {
	if c == nil || c.logger == nil {
		return zap.NewNop().Sugar()
	}
	return c.logger
}

func (c *Config) SetRunID(id string) {
	c.runID = id
}

func (c *Config) RunID() string {
	if c == nil {
		return ""
	}
	return c.runID
}
