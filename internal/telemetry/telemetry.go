// Package telemetry wraps zerolog into the small, domain-specific
// logging facade the minimizer needs: one structured event per rule
// attempt and per pass transition, with --quiet/--verbose mapped to
// levels rather than ad-hoc print statements scattered across the
// engine.
package telemetry

import (
	"io"

	"github.com/rs/zerolog"
)

// Logger is the minimizer's structured logging facade. It exists so
// the rest of the engine depends on this package, never on zerolog
// directly — the same separation the example pack's logiface backends
// give their callers, collapsed to a single concrete backend since the
// minimizer never needs to swap logging implementations at runtime.
type Logger struct {
	zl zerolog.Logger
}

// Level selects the logging floor a Logger writes at.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
)

// New builds a Logger writing to w at the given floor.
func New(w io.Writer, level Level) *Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zl := zerolog.New(w).With().Timestamp().Logger().Level(toZerolog(level))
	return &Logger{zl: zl}
}

// NewFromFlags maps the --quiet/--verbose CLI flags to a logging
// floor: verbose lowers it to debug, quiet raises it to warn, the
// default is info.
func NewFromFlags(w io.Writer, quiet, verbose bool) *Logger {
	level := LevelInfo
	switch {
	case verbose:
		level = LevelDebug
	case quiet:
		level = LevelWarn
	}
	return New(w, level)
}

func toZerolog(level Level) zerolog.Level {
	switch level {
	case LevelDebug:
		return zerolog.DebugLevel
	case LevelWarn:
		return zerolog.WarnLevel
	default:
		return zerolog.InfoLevel
	}
}

// PassStarted logs a granularity transition in the Driver's pipeline.
func (l *Logger) PassStarted(pass string, length, maxAttempts int) {
	l.zl.Info().Str("pass", pass).Int("length", length).Int("max_attempts", maxAttempts).Msg("pass started")
}

// RuleAttempted logs one rule evaluation at debug level: the common
// case, since a full run may attempt many thousands of these.
func (l *Logger) RuleAttempted(pass, rule string, accepted bool, resultLength int) {
	l.zl.Debug().
		Str("pass", pass).
		Str("rule", rule).
		Bool("accepted", accepted).
		Int("length", resultLength).
		Msg("rule attempted")
}

// OracleOutput logs the combined stdout/stderr/status text for a
// single oracle invocation, gated behind --print-command-output since
// it can be large and noisy.
func (l *Logger) OracleOutput(command, output string) {
	l.zl.Info().Str("command", command).Str("output", output).Msg("oracle output")
}

// Warn logs a non-fatal diagnostic, e.g. the flaky-oracle notice from
// spec.md §4.6 step 5.
func (l *Logger) Warn(msg string) {
	l.zl.Warn().Msg(msg)
}

// Discard is a Logger that drops everything, useful as a test default.
func Discard() *Logger {
	return New(io.Discard, LevelWarn)
}
