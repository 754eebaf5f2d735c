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
	"reflect"
)

// Key identifies one binding slot: a service type plus an optional
// qualifier name. Keys are value types and compare by value; the registry
// holds exactly one provider per Key.
type Key struct {
	Type reflect.Type
	Name string
}

func (k Key) String() string {
	if k.Name == "" {
		return k.Type.String()
	}
	return fmt.Sprintf("%v[name=%q]", k.Type, k.Name)
}

// Ref is a dependency request: a service type, an optional qualifier name,
// and, for deferred requests, the declared wrapper type.
//
// The one wrapper form the container recognizes is a zero-argument,
// single-result function type func() T — the Go supplier. A Ref with any
// other Container type resolves to nothing.
type Ref struct {
	Type      reflect.Type
	Name      string
	Container reflect.Type
}

// Deferred reports whether the request asks for a lazy supplier instead of
// an eagerly constructed value.
func (r Ref) Deferred() bool {
	return r.Container != nil
}

func (r Ref) key() Key {
	return Key{Type: r.Type, Name: r.Name}
}

func (r Ref) String() string {
	k := r.key()
	if r.Deferred() {
		return fmt.Sprintf("%v (deferred)", k)
	}
	return k.String()
}

// refOf builds the Ref for an injection site of type site. A supplier type
// func() T is unwrapped into a deferred reference to T.
func refOf(site reflect.Type, name string) Ref {
	if elem, ok := supplierElem(site); ok {
		return Ref{Type: elem, Name: name, Container: site}
	}
	return Ref{Type: site, Name: name}
}

// supplierElem unwraps the recognized deferred wrapper form, returning the
// element type carried by the supplier.
func supplierElem(t reflect.Type) (reflect.Type, bool) {
	if t.Kind() == reflect.Func && !t.IsVariadic() && t.NumIn() == 0 && t.NumOut() == 1 {
		return t.Out(0), true
	}
	return nil, false
}
