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
	"sort"

	"go.uber.org/multierr"

	"go.uber.org/graft/internal/graftlog"
)

// Seal validates the full dependency graph — every registered identity,
// including ones nothing depends on — and freezes the configuration into a
// read-only Context. Validation failures across independent roots are
// aggregated so one Seal reports every broken root; a failed Seal leaves no
// usable Context. Seal succeeds at most once.
func (c *Config) Seal() (Context, error) {
	if c.sealed {
		return nil, ErrSealed
	}

	keys := make([]Key, 0, len(c.providers))
	for k := range c.providers {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return keys[i].String() < keys[j].String()
	})

	var errs error
	for _, k := range keys {
		if err := c.checkDependencies(k, []Key{k}); err != nil {
			errs = multierr.Append(errs, err)
		}
	}
	if errs != nil {
		c.logger.LogEvent(graftlog.SealFailedEvent{Err: errs})
		return nil, errs
	}

	c.sealed = true

	providers := make(map[Key]Provider, len(c.providers))
	for k, p := range c.providers {
		providers[k] = p
	}
	c.logger.LogEvent(graftlog.SealedEvent{Components: len(providers)})
	return &container{providers: providers}, nil
}

// checkDependencies walks k's declared dependencies depth-first, carrying
// the path from the seal root. Deferred dependencies must exist but are not
// recursed into and are excluded from the cycle check: their resolution is
// postponed past sealing time, which is what lets a deferred edge point
// back into the path legally.
func (c *Config) checkDependencies(k Key, path []Key) error {
	for _, dep := range c.providers[k].Dependencies() {
		dk := dep.key()
		if _, ok := c.providers[dk]; !ok {
			return &MissingDependencyError{Component: k, Dependency: dk}
		}
		if dep.Deferred() {
			continue
		}

		for _, seen := range path {
			if seen == dk {
				cycle := make([]Key, 0, len(path)+1)
				cycle = append(append(cycle, path...), dk)
				return &CycleError{Path: cycle}
			}
		}
		if err := c.checkDependencies(dk, append(path, dk)); err != nil {
			return err
		}
	}
	return nil
}
