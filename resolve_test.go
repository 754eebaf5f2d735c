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
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveMissingIsNotAnError(t *testing.T) {
	c := New()
	ctx, err := c.Seal()
	require.NoError(t, err)

	db, ok, err := Resolve[*database](ctx)
	require.NoError(t, err)
	require.False(t, ok)
	require.Nil(t, db)

	_, ok, err = ResolveNamed[*database](ctx, "primary")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestResolveDeferredSupplier(t *testing.T) {
	c := New()
	db := &database{DSN: "sqlite://"}
	require.NoError(t, BindInstance(c, db))

	ctx, err := c.Seal()
	require.NoError(t, err)

	lazy, ok, err := Resolve[func() *database](ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.NotNil(t, lazy)

	require.Same(t, db, lazy())
}

func TestResolveDeferredSupplierIsLazy(t *testing.T) {
	var built int
	c := New()
	require.NoError(t, BindFunc[*database](c, func() *database {
		built++
		return &database{}
	}))

	ctx, err := c.Seal()
	require.NoError(t, err)

	lazy, _, err := Resolve[func() *database](ctx)
	require.NoError(t, err)
	require.Zero(t, built)

	lazy()
	lazy()
	require.Equal(t, 2, built)
}

func TestResolveDeferredSupplierPanicsOnFailure(t *testing.T) {
	c := New()
	require.NoError(t, BindFunc[*database](c, func() (*database, error) {
		return nil, errTransient
	}))

	ctx, err := c.Seal()
	require.NoError(t, err)

	lazy, ok, err := Resolve[func() *database](ctx)
	require.NoError(t, err)
	require.True(t, ok)

	require.Panics(t, func() { lazy() })
}

func TestGetUnrecognizedWrapperResolvesToNothing(t *testing.T) {
	c := New()
	require.NoError(t, BindInstance(c, &database{}))

	ctx, err := c.Seal()
	require.NoError(t, err)

	// func(int) *database is not the supplier form.
	_, ok, err := ctx.Get(Ref{
		Type:      reflect.TypeOf(&database{}),
		Container: reflect.TypeOf((func(int) *database)(nil)),
	})
	require.NoError(t, err)
	require.False(t, ok)
}

func TestResolveTypeMismatch(t *testing.T) {
	// Drive Resolve against a hand-built context whose stored value does not
	// match the requested type.
	ctx := &container{providers: map[Key]Provider{
		{Type: reflect.TypeOf(0)}: &stubProvider{value: "not an int"},
	}}

	_, _, err := Resolve[int](ctx)
	require.ErrorContains(t, err, "cannot convert")
}

func TestResolveNilInstance(t *testing.T) {
	c := New()
	require.NoError(t, BindInstance[*database](c, nil))

	ctx, err := c.Seal()
	require.NoError(t, err)

	db, ok, err := Resolve[*database](ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Nil(t, db)
}
