// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package diag carries diagnostic messages from query operations to the
// host: the process log, an MCP client session, or both.
package diag

import (
	"context"

	"github.com/rs/zerolog"
)

// Level is the severity of a diagnostic.
type Level string

const (
	LevelDebug   Level = "debug"
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Sink receives diagnostics. Implementations must not block for long and
// must ignore delivery failures.
type Sink interface {
	Emit(ctx context.Context, level Level, msg string)
}

// Nop discards everything.
type Nop struct{}

func (Nop) Emit(context.Context, Level, string) {}

// Logger writes diagnostics to a zerolog logger.
type Logger struct {
	Log zerolog.Logger
}

// NewLogger returns a Sink writing to log.
func NewLogger(log zerolog.Logger) Logger {
	return Logger{Log: log}
}

func (l Logger) Emit(_ context.Context, level Level, msg string) {
	l.Log.WithLevel(zerologLevel(level)).Str("source", "diagnostic").Msg(msg)
}

func zerologLevel(level Level) zerolog.Level {
	switch level {
	case LevelDebug:
		return zerolog.DebugLevel
	case LevelWarning:
		return zerolog.WarnLevel
	case LevelError:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Tee fans a diagnostic out to every non-nil sink.
type Tee []Sink

func (t Tee) Emit(ctx context.Context, level Level, msg string) {
	for _, s := range t {
		if s != nil {
			s.Emit(ctx, level, msg)
		}
	}
}

// Func adapts a function to a Sink.
type Func func(ctx context.Context, level Level, msg string)

func (f Func) Emit(ctx context.Context, level Level, msg string) { f(ctx, level, msg) }
