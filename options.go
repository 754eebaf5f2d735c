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

package graft

import (
	"go.uber.org/zap"

	"go.uber.org/graft/internal/graftlog"
)

// Option configures a Config during New.
type Option func(*Config)

// WithClassifier replaces the marker classifier consulted by binds and
// injection-point discovery.
func WithClassifier(cl Classifier) Option {
	return func(c *Config) {
		c.classifier = cl
	}
}

// WithZapLogger emits configuration events (binds, scope registrations,
// seal outcomes) to the given zap logger. Events are discarded by default.
func WithZapLogger(logger *zap.Logger) Option {
	return func(c *Config) {
		c.logger = graftlog.NewZapLogger(logger)
	}
}

// withLogger is the test seam for capturing events with a graftlog.Spy.
func withLogger(logger graftlog.Logger) Option {
	return func(c *Config) {
		c.logger = logger
	}
}
