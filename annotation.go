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
	"strings"
)

// Annotation is a marker value attached to a binding. The configured
// Classifier sorts annotations into qualifiers and scope tags; anything it
// recognizes as neither aborts the bind with ErrIllegalComponent.
type Annotation interface{}

// Qualifier distinguishes multiple bindings of the same service type. Any
// value implementing Qualifier is accepted by the default classifier;
// Named is the built-in constructor.
type Qualifier interface {
	QualifierName() string
}

type named string

func (n named) QualifierName() string { return string(n) }

// Named returns a qualifier annotation carrying the given name.
func Named(name string) Qualifier { return named(name) }

// ScopeTag selects a caching lifecycle policy for a binding. Tags are
// matched against the scope registry by their dynamic type, so each scope
// is declared as its own Go type.
type ScopeTag interface {
	ScopeName() string
}

type singletonTag struct{}

func (singletonTag) ScopeName() string { return "singleton" }

// InSingleton is the built-in cache-forever scope tag. It is pre-registered
// with every Config.
var InSingleton ScopeTag = singletonTag{}

// DefaultScoped lets an implementation type declare its own lifecycle, used
// when a binding carries no explicit scope tag.
type DefaultScoped interface {
	DefaultScope() ScopeTag
}

// Classifier answers which marker category an annotation, method, or struct
// field belongs to. The registry and the injection analyzer consult it
// without depending on its representation; swap it with WithClassifier to
// change the marker conventions.
type Classifier interface {
	// Qualifier returns the qualifier name carried by a, if a is a
	// qualifier annotation.
	Qualifier(a Annotation) (name string, ok bool)

	// Scope returns the scope tag carried by a, if a is a scope annotation.
	Scope(a Annotation) (ScopeTag, bool)

	// Constructor reports whether m is marked as a constructor injection
	// point.
	Constructor(m reflect.Method) bool

	// InjectionPoint reports whether m is marked as a method injection
	// point.
	InjectionPoint(m reflect.Method) bool

	// Field returns the qualifier name of a field injection point, if f is
	// marked as one.
	Field(f reflect.StructField) (name string, ok bool)
}

// DefaultClassifier returns the classifier used when no WithClassifier
// option is given. It recognizes:
//
//   - qualifiers: values implementing Qualifier
//   - scopes: values implementing ScopeTag
//   - constructors: exported methods named with the Construct prefix
//   - injected methods: exported methods named with the Inject prefix
//   - injected fields: struct fields carrying an `inject` tag, whose value
//     is the qualifier name
func DefaultClassifier() Classifier { return defaultClassifier{} }

type defaultClassifier struct{}

func (defaultClassifier) Qualifier(a Annotation) (string, bool) {
	if q, ok := a.(Qualifier); ok {
		return q.QualifierName(), true
	}
	return "", false
}

func (defaultClassifier) Scope(a Annotation) (ScopeTag, bool) {
	s, ok := a.(ScopeTag)
	return s, ok
}

func (defaultClassifier) Constructor(m reflect.Method) bool {
	return strings.HasPrefix(m.Name, "Construct")
}

func (defaultClassifier) InjectionPoint(m reflect.Method) bool {
	return strings.HasPrefix(m.Name, "Inject")
}

func (defaultClassifier) Field(f reflect.StructField) (string, bool) {
	return f.Tag.Lookup("inject")
}
