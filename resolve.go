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
	"fmt"
)

// Resolve is a generic helper that resolves the unqualified binding for T.
// Request a lazy supplier by resolving the deferred form:
//
//	svc, ok, err := graft.Resolve[Service](ctx)
//	lazy, ok, err := graft.Resolve[func() Service](ctx)
//
// ok is false when nothing is bound for T; that is not an error.
func Resolve[T any](ctx Context) (T, bool, error) {
	return resolveRef[T](ctx, refOf(typeOf[T](), ""))
}

// ResolveNamed resolves the binding for T under the given qualifier name:
//
//	db, ok, err := graft.ResolveNamed[*Database](ctx, "primary")
func ResolveNamed[T any](ctx Context, name string) (T, bool, error) {
	return resolveRef[T](ctx, refOf(typeOf[T](), name))
}

func resolveRef[T any](ctx Context, ref Ref) (T, bool, error) {
	var zero T

	v, ok, err := ctx.Get(ref)
	if err != nil || !ok {
		return zero, false, err
	}
	if v == nil {
		return zero, true, nil
	}

	out, castOK := v.(T)
	if !castOK {
		return zero, false, fmt.Errorf("cannot convert %T to %v", v, typeOf[T]())
	}
	return out, true, nil
}
