// Package slog bridges log/slog into the SDK's logging contract, for
// applications that already route everything through an slog handler.
package slog

import (
	"log/slog"

	"github.com/notehq/notehq.go/pkg/logger"
)

// Adapter forwards Logger calls to an slog.Logger. Key/value args pass
// through unchanged since both sides share the alternating-args
// convention.
type Adapter struct {
	logger *slog.Logger
}

var _ logger.Logger = (*Adapter)(nil)

// New wraps the given handler. Level filtering stays with the handler;
// the adapter forwards every call.
func New(h slog.Handler) *Adapter {
	return &Adapter{logger: slog.New(h)}
}

// FromLogger wraps an existing slog.Logger.
func FromLogger(l *slog.Logger) *Adapter {
	return &Adapter{logger: l}
}

func (a *Adapter) Debug(msg string, args ...any) {
	a.logger.Debug(msg, args...)
}

func (a *Adapter) Info(msg string, args ...any) {
	a.logger.Info(msg, args...)
}

func (a *Adapter) Warn(msg string, args ...any) {
	a.logger.Warn(msg, args...)
}

func (a *Adapter) Error(msg string, args ...any) {
	a.logger.Error(msg, args...)
}
