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

	"go.uber.org/graft/internal/graftlog"
)

// Config accumulates component bindings and scope registrations. Binding
// and sealing are a single-threaded startup phase: configure once, Seal
// once, then share the resulting Context.
type Config struct {
	classifier Classifier
	logger     graftlog.Logger

	providers map[Key]Provider
	scopes    map[reflect.Type]ScopeFactory

	sealed bool
}

// New creates an empty Config ready for binding. The built-in InSingleton
// scope tag is pre-registered.
func New(opts ...Option) *Config {
	c := &Config{
		classifier: DefaultClassifier(),
		logger:     graftlog.Nop(),
		providers:  make(map[Key]Provider),
		scopes:     make(map[reflect.Type]ScopeFactory),
	}
	c.scopes[reflect.TypeOf(InSingleton)] = newSingletonProvider

	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BindInstance registers a pre-built value under the service type T, once
// per qualifier. With no qualifiers the unqualified identity is used. Any
// annotation that is not a qualifier aborts the call.
func BindInstance[T any](c *Config, value T, qualifiers ...Annotation) error {
	return c.BindInstanceOf(typeOf[T](), value, qualifiers...)
}

// Bind registers the pointer-to-struct implementation Impl under the
// service type T. Annotations are classified into qualifiers and at most
// one scope tag; anything else aborts the whole bind. Without an explicit
// scope tag the implementation's own DefaultScope declaration applies, if
// any; otherwise the binding is unscoped and produces a fresh instance per
// request.
func Bind[T any, Impl any](c *Config, annotations ...Annotation) error {
	return c.BindTypeOf(typeOf[T](), typeOf[Impl](), annotations...)
}

// BindFunc registers a constructor function func(deps...) (Impl[, error])
// under the service type T. The function's parameters are resolved through
// the context; when its result is a pointer to struct, field and method
// injection apply to the constructed value as well.
func BindFunc[T any](c *Config, constructor interface{}, annotations ...Annotation) error {
	return c.BindFuncOf(typeOf[T](), constructor, annotations...)
}

// BindInstanceOf is the reflect-typed form of BindInstance.
func (c *Config) BindInstanceOf(t reflect.Type, value interface{}, qualifiers ...Annotation) error {
	if c.sealed {
		return ErrSealed
	}

	names, err := c.qualifierNames(qualifiers)
	if err != nil {
		return err
	}
	if value != nil && !reflect.TypeOf(value).AssignableTo(t) {
		return fmt.Errorf("%w: %T is not assignable to %v", ErrIllegalComponent, value, t)
	}

	p := &instanceProvider{value: value}
	return c.register(t, names, func() Provider { return p }, "")
}

// BindTypeOf is the reflect-typed form of Bind.
func (c *Config) BindTypeOf(t, impl reflect.Type, annotations ...Annotation) error {
	if c.sealed {
		return ErrSealed
	}
	if impl != nil && !impl.AssignableTo(t) {
		return fmt.Errorf("%w: %v is not assignable to %v", ErrIllegalComponent, impl, t)
	}

	inner, err := newInjectionProvider(impl, c.classifier)
	if err != nil {
		return err
	}
	return c.bindScoped(t, inner, annotations)
}

// BindFuncOf is the reflect-typed form of BindFunc.
func (c *Config) BindFuncOf(t reflect.Type, constructor interface{}, annotations ...Annotation) error {
	if c.sealed {
		return ErrSealed
	}

	inner, err := newFuncProvider(constructor, c.classifier)
	if err != nil {
		return err
	}
	if out := inner.ctor.Type().Out(0); !out.AssignableTo(t) {
		return fmt.Errorf("%w: %v is not assignable to %v", ErrIllegalComponent, out, t)
	}
	return c.bindScoped(t, inner, annotations)
}

// RegisterScope extends the set of recognized scope tags. Tags are keyed by
// their dynamic type; registering a tag type again replaces its factory.
func (c *Config) RegisterScope(tag ScopeTag, factory ScopeFactory) error {
	if c.sealed {
		return ErrSealed
	}
	if tag == nil || factory == nil {
		return fmt.Errorf("%w: scope registration requires a tag and a factory", ErrIllegalComponent)
	}

	c.scopes[reflect.TypeOf(tag)] = factory
	c.logger.LogEvent(graftlog.ScopeRegisteredEvent{Scope: tag.ScopeName()})
	return nil
}

// bindScoped classifies annotations, resolves the effective scope, and
// registers the (possibly wrapped) provider under each identity. Each
// identity gets its own scope wrapper, so qualified bindings never share a
// cache.
func (c *Config) bindScoped(t reflect.Type, inner *injectionProvider, annotations []Annotation) error {
	names, scopes, err := c.classify(annotations)
	if err != nil {
		return err
	}
	if len(scopes) > 1 {
		return fmt.Errorf("%w: binding for %v carries %d scope tags", ErrIllegalComponent, t, len(scopes))
	}

	var tag ScopeTag
	if len(scopes) == 1 {
		tag = scopes[0]
	} else if inner.implType != nil {
		tag = defaultScopeOf(inner.implType)
	}

	var factory ScopeFactory
	var scopeName string
	if tag != nil {
		f, ok := c.scopes[reflect.TypeOf(tag)]
		if !ok {
			return fmt.Errorf("%w: unregistered scope tag %q", ErrIllegalComponent, tag.ScopeName())
		}
		factory = f
		scopeName = tag.ScopeName()
	}

	return c.register(t, names, func() Provider {
		if factory != nil {
			return factory(inner)
		}
		return inner
	}, scopeName)
}

// register stores one provider per identity, rejecting identities that are
// already bound before mutating anything.
func (c *Config) register(t reflect.Type, names []string, build func() Provider, scope string) error {
	keys := []Key{{Type: t}}
	if len(names) > 0 {
		keys = keys[:0]
		for _, name := range names {
			keys = append(keys, Key{Type: t, Name: name})
		}
	}

	for _, k := range keys {
		if _, exists := c.providers[k]; exists {
			return fmt.Errorf("%w: %v", ErrAlreadyBound, k)
		}
	}

	for _, k := range keys {
		p := build()
		c.providers[k] = p
		c.logger.LogEvent(graftlog.BoundEvent{
			Key:      k.String(),
			Provider: fmt.Sprint(p),
			Scope:    scope,
		})
	}
	return nil
}

// classify sorts annotations into qualifier names and scope tags; anything
// the classifier recognizes as neither is illegal.
func (c *Config) classify(annotations []Annotation) ([]string, []ScopeTag, error) {
	var names []string
	var scopes []ScopeTag
	for _, a := range annotations {
		if name, ok := c.classifier.Qualifier(a); ok {
			names = append(names, name)
			continue
		}
		if tag, ok := c.classifier.Scope(a); ok {
			scopes = append(scopes, tag)
			continue
		}
		return nil, nil, fmt.Errorf("%w: annotation %v is neither qualifier nor scope", ErrIllegalComponent, a)
	}
	return names, scopes, nil
}

// qualifierNames is classify restricted to qualifiers only.
func (c *Config) qualifierNames(qualifiers []Annotation) ([]string, error) {
	var names []string
	for _, a := range qualifiers {
		name, ok := c.classifier.Qualifier(a)
		if !ok {
			return nil, fmt.Errorf("%w: annotation %v is not a qualifier", ErrIllegalComponent, a)
		}
		names = append(names, name)
	}
	return names, nil
}

var defaultScopedType = reflect.TypeOf((*DefaultScoped)(nil)).Elem()

// defaultScopeOf returns the lifecycle the implementation type declares for
// itself, if any. The declaration is read off a zero value.
func defaultScopeOf(impl reflect.Type) ScopeTag {
	if !impl.Implements(defaultScopedType) {
		return nil
	}
	return reflect.New(impl.Elem()).Interface().(DefaultScoped).DefaultScope()
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}
