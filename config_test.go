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
	"testing"

	"github.com/stretchr/testify/require"

	"go.uber.org/graft/internal/graftlog"
)

func TestBindInstance(t *testing.T) {
	c := New()
	db := &database{DSN: "sqlite://"}
	require.NoError(t, BindInstance(c, db))

	ctx, err := c.Seal()
	require.NoError(t, err)

	got, ok, err := Resolve[*database](ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Same(t, db, got)
}

func TestBindInstanceQualified(t *testing.T) {
	c := New()
	primary := &database{DSN: "primary"}
	backup := &database{DSN: "backup"}
	require.NoError(t, BindInstance(c, primary, Named("primary")))
	require.NoError(t, BindInstance(c, backup, Named("backup")))

	ctx, err := c.Seal()
	require.NoError(t, err)

	got, ok, err := ResolveNamed[*database](ctx, "primary")
	require.NoError(t, err)
	require.True(t, ok)
	require.Same(t, primary, got)

	got, ok, err = ResolveNamed[*database](ctx, "backup")
	require.NoError(t, err)
	require.True(t, ok)
	require.Same(t, backup, got)

	// Qualified binds do not occupy the unqualified slot.
	_, ok, err = Resolve[*database](ctx)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestBindInstanceSharedAcrossQualifiers(t *testing.T) {
	c := New()
	db := &database{}
	require.NoError(t, BindInstance(c, db, Named("a"), Named("b")))

	ctx, err := c.Seal()
	require.NoError(t, err)

	a, _, err := ResolveNamed[*database](ctx, "a")
	require.NoError(t, err)
	b, _, err := ResolveNamed[*database](ctx, "b")
	require.NoError(t, err)
	require.Same(t, a, b)
}

func TestBindIllegalAnnotations(t *testing.T) {
	tts := []struct {
		name string
		bind func(c *Config) error
	}{
		{
			"non-qualifier on instance bind",
			func(c *Config) error { return BindInstance(c, &database{}, InSingleton) },
		},
		{
			"unclassifiable annotation on type bind",
			func(c *Config) error { return Bind[*repo, *repo](c, "bogus") },
		},
		{
			"two scope tags",
			func(c *Config) error { return Bind[*repo, *repo](c, InSingleton, InSingleton) },
		},
		{
			"unregistered scope tag",
			func(c *Config) error { return Bind[*repo, *repo](c, fifoTag{}) },
		},
		{
			"value not assignable to service type",
			func(c *Config) error { return c.BindInstanceOf(typeOf[service](), 42) },
		},
	}

	for _, tc := range tts {
		t.Run(tc.name, func(t *testing.T) {
			c := New()
			require.ErrorIs(t, tc.bind(c), ErrIllegalComponent)
		})
	}
}

func TestRebindRejected(t *testing.T) {
	c := New()
	require.NoError(t, BindInstance(c, &database{}))
	require.ErrorIs(t, BindInstance(c, &database{}), ErrAlreadyBound)
}

func TestRebindRejectedBeforeAnyRegistration(t *testing.T) {
	// A multi-qualifier bind that collides on one identity must not
	// register the others.
	c := New()
	require.NoError(t, BindInstance(c, &database{}, Named("a")))
	require.ErrorIs(t, BindInstance(c, &database{}, Named("b"), Named("a")), ErrAlreadyBound)

	ctx, err := c.Seal()
	require.NoError(t, err)
	_, ok, err := ResolveNamed[*database](ctx, "b")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestSealedConfigRejectsMutation(t *testing.T) {
	c := New()
	_, err := c.Seal()
	require.NoError(t, err)

	require.ErrorIs(t, BindInstance(c, &database{}), ErrSealed)
	require.ErrorIs(t, Bind[*repo, *repo](c), ErrSealed)
	require.ErrorIs(t, BindFunc[*repo](c, func() *repo { return &repo{} }), ErrSealed)
	require.ErrorIs(t, c.RegisterScope(fifoTag{}, newSingletonProvider), ErrSealed)
}

func TestDefaultScopeFromImplementation(t *testing.T) {
	c := New()
	require.NoError(t, Bind[*sharedWidget, *sharedWidget](c))

	ctx, err := c.Seal()
	require.NoError(t, err)

	first, _, err := Resolve[*sharedWidget](ctx)
	require.NoError(t, err)
	second, _, err := Resolve[*sharedWidget](ctx)
	require.NoError(t, err)
	require.Same(t, first, second)
}

func TestExplicitScopeOverridesNothingDeclared(t *testing.T) {
	c := New()
	require.NoError(t, BindInstance(c, &database{}))
	require.NoError(t, Bind[*repo, *repo](c, InSingleton))

	ctx, err := c.Seal()
	require.NoError(t, err)

	first, _, err := Resolve[*repo](ctx)
	require.NoError(t, err)
	second, _, err := Resolve[*repo](ctx)
	require.NoError(t, err)
	require.Same(t, first, second)
}

func TestConfigEvents(t *testing.T) {
	spy := &graftlog.Spy{}
	c := New(withLogger(spy))

	require.NoError(t, BindInstance(c, &database{}))
	require.NoError(t, c.RegisterScope(fifoTag{}, newSingletonProvider))
	_, err := c.Seal()
	require.NoError(t, err)

	require.Equal(t,
		[]string{"BoundEvent", "ScopeRegisteredEvent", "SealedEvent"},
		spy.EventTypes())
}

func TestSealFailureEvent(t *testing.T) {
	spy := &graftlog.Spy{}
	c := New(withLogger(spy))

	require.NoError(t, Bind[service, *serviceImpl](c))
	_, err := c.Seal()
	require.Error(t, err)
	require.Contains(t, spy.EventTypes(), "SealFailedEvent")
}

// fifoTag is a scope tag with no special semantics, used to exercise scope
// registration paths.
type fifoTag struct{}

func (fifoTag) ScopeName() string { return "fifo" }
