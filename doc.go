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

// Package graft is a dependency injection container kernel.
//
// There are two sides of graft: configuration and resolution. A Config
// accumulates component bindings; Seal validates the full dependency
// graph — detecting missing providers and circular dependencies before any
// object is built — and returns a read-only Context that constructs objects
// on demand.
//
// # Binding
//
// Bind a pre-built value, a pointer-to-struct implementation, or a
// constructor function:
//
//	c := graft.New()
//	graft.BindInstance[*Config](c, cfg)
//	graft.Bind[Service, *ServiceImpl](c, graft.InSingleton)
//	graft.BindFunc[*Database](c, NewDatabase)
//
//	ctx, err := c.Seal()
//
// # Injection points
//
// An implementation type declares its dependencies with markers the
// container discovers at bind time:
//
//	type ServiceImpl struct {
//	    DB    *Database `inject:""`
//	    Cache *Cache    `inject:"local"`
//	}
//
//	func (s *ServiceImpl) InjectLogger(l Logger) { s.log = l }
//
// Construction order is constructor, then tagged fields, then marked
// methods, base embeds before the outer struct.
//
// # Lifecycles
//
// A binding tagged graft.InSingleton caches its first instance for the
// lifetime of the Context; unscoped bindings produce a fresh instance per
// request. Additional scopes are registered with RegisterScope.
//
// # Deferred references
//
// A dependency declared as func() T is resolved to a lazy supplier instead
// of an eagerly constructed value, which is what lets such an edge legally
// point into what would otherwise be a cycle.
package graft
