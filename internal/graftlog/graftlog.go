// Copyright (c) 2023 Uber Technologies, Inc.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

// Package graftlog emits structured events for container configuration.
package graftlog

import (
	"go.uber.org/zap"
)

// Logger defines the interface used for logging container events.
type Logger interface {
	// LogEvent is called when a logging event is emitted.
	LogEvent(Event)
}

// Event is a container configuration event.
type Event interface{}

// BoundEvent is emitted for every identity a bind call registers.
type BoundEvent struct {
	Key      string
	Provider string
	Scope    string
}

// ScopeRegisteredEvent is emitted when a scope tag is registered.
type ScopeRegisteredEvent struct {
	Scope string
}

// SealedEvent is emitted after the dependency graph validates cleanly.
type SealedEvent struct {
	Components int
}

// SealFailedEvent is emitted when graph validation fails.
type SealFailedEvent struct {
	Err error
}

var _ Logger = (*zapLogger)(nil)

type zapLogger struct {
	logger *zap.Logger
}

// NewZapLogger constructs a Logger that writes events to the given zap
// logger.
func NewZapLogger(logger *zap.Logger) Logger {
	return &zapLogger{logger: logger}
}

// Nop returns a Logger that discards all events.
func Nop() Logger {
	return &zapLogger{logger: zap.NewNop()}
}

func (l *zapLogger) LogEvent(event Event) {
	switch e := event.(type) {
	case BoundEvent:
		fields := []zap.Field{
			zap.String("key", e.Key),
			zap.String("provider", e.Provider),
		}
		if e.Scope != "" {
			fields = append(fields, zap.String("scope", e.Scope))
		}
		l.logger.Info("bound", fields...)
	case ScopeRegisteredEvent:
		l.logger.Info("scope registered", zap.String("scope", e.Scope))
	case SealedEvent:
		l.logger.Info("sealed", zap.Int("components", e.Components))
	case SealFailedEvent:
		l.logger.Error("seal failed", zap.Error(e.Err))
	}
}
