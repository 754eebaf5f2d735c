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
)

func TestDefaultConfig(t *testing.T) {
	t.Cleanup(Reset)
	Reset()

	db := &database{}
	require.NoError(t, BindInstance(Default(), db))

	ctx, err := Seal()
	require.NoError(t, err)

	got, ok, err := Resolve[*database](ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Same(t, db, got)
}

func TestResetReplacesDefaultConfig(t *testing.T) {
	t.Cleanup(Reset)
	Reset()

	require.NoError(t, BindInstance(Default(), &database{}))
	before := Default()

	Reset()
	require.NotSame(t, before, Default())

	// The fresh default is empty again.
	ctx, err := Seal()
	require.NoError(t, err)
	_, ok, err := Resolve[*database](ctx)
	require.NoError(t, err)
	require.False(t, ok)
}
