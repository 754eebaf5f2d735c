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

// Provider produces instances for one binding.
//
// Dependencies is a static, order-preserving declaration consulted only by
// the Seal validator; it never changes after the provider is created.
type Provider interface {
	// Produce constructs (or retrieves) the instance, resolving any
	// dependencies through ctx. A non-nil error is fatal for the resolve
	// that triggered it and is never retried.
	Produce(ctx Context) (interface{}, error)

	// Dependencies returns the references this provider resolves during
	// Produce, in resolution order.
	Dependencies() []Ref
}

// instanceProvider wraps a fixed, pre-built value.
type instanceProvider struct {
	value interface{}
}

func (p *instanceProvider) Produce(Context) (interface{}, error) {
	return p.value, nil
}

func (p *instanceProvider) Dependencies() []Ref {
	return nil
}

func (p *instanceProvider) String() string {
	return fmt.Sprintf("instance %T", p.value)
}
