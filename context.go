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
	"reflect"

	"github.com/pkg/errors"
)

// Context is the read-only resolution facade produced by Seal.
type Context interface {
	// Get resolves ref against the sealed bindings. It returns
	// (nil, false, nil) when no binding matches — an absent binding is not
	// an error. A non-nil error reports a construction failure.
	//
	// For a deferred ref whose Container is the recognized supplier form
	// func() T, Get returns a function of exactly that type which produces
	// the value when called. A deferred ref with any other Container
	// resolves to nothing.
	Get(ref Ref) (interface{}, bool, error)
}

// container is the sealed provider set. The identity set is frozen; only
// scope wrapper caches mutate after sealing.
type container struct {
	providers map[Key]Provider
}

var _ Context = (*container)(nil)

func (c *container) Get(ref Ref) (interface{}, bool, error) {
	p, ok := c.providers[ref.key()]
	if !ok {
		return nil, false, nil
	}

	if ref.Deferred() {
		elem, ok := supplierElem(ref.Container)
		if !ok || elem != ref.Type {
			return nil, false, nil
		}
		return c.supplier(ref, p), true, nil
	}

	v, err := p.Produce(c)
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

// supplier builds the lazy wrapper for a deferred reference: a function of
// the declared Container type that invokes the provider only when called.
// The supplier form carries no error channel, so a construction failure
// inside it panics.
func (c *container) supplier(ref Ref, p Provider) interface{} {
	fn := reflect.MakeFunc(ref.Container, func([]reflect.Value) []reflect.Value {
		v, err := p.Produce(c)
		if err != nil {
			panic(errors.Wrapf(err, "deferred construction of %v", ref.key()))
		}

		out := reflect.New(ref.Container.Out(0)).Elem()
		if v != nil {
			out.Set(reflect.ValueOf(v))
		}
		return []reflect.Value{out}
	})
	return fn.Interface()
}
