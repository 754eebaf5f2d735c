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
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrIllegalComponent is returned when a bind declares a structurally
	// invalid component: an abstract implementation type, more than one
	// marked constructor, an un-assignable injected field, an injected
	// method the container cannot invoke, more than one scope tag, an
	// annotation that is neither qualifier nor scope, or an unregistered
	// scope tag.
	ErrIllegalComponent = errors.New("illegal component definition")

	// ErrAlreadyBound is returned when a bind targets an identity that
	// already has a provider.
	ErrAlreadyBound = errors.New("identity already bound")

	// ErrSealed is returned when Bind or Seal is called after the
	// configuration has been sealed.
	ErrSealed = errors.New("configuration already sealed")
)

// MissingDependencyError reports a declared dependency with no registered
// provider, detected during Seal. It names both ends of the broken edge.
type MissingDependencyError struct {
	Component  Key
	Dependency Key
}

func (e *MissingDependencyError) Error() string {
	return fmt.Sprintf("dependency not found: %v requires %v", e.Component, e.Dependency)
}

// CycleError reports a non-deferred dependency chain that revisits an
// identity already on the active validation path. Path holds the full
// chain, ending with the repeated identity.
type CycleError struct {
	Path []Key
}

func (e *CycleError) Error() string {
	chain := make([]string, len(e.Path))
	for i, k := range e.Path {
		chain[i] = k.String()
	}
	return "circular dependency detected: " + strings.Join(chain, " -> ")
}
