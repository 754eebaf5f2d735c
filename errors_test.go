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

	"github.com/stretchr/testify/assert"
)

func TestErrorMessages(t *testing.T) {
	dbKey := Key{Type: reflect.TypeOf(&database{})}
	repoKey := Key{Type: reflect.TypeOf(&repo{})}

	missing := &MissingDependencyError{Component: repoKey, Dependency: dbKey}
	assert.Equal(t,
		"dependency not found: *graft.repo requires *graft.database",
		missing.Error())

	cycle := &CycleError{Path: []Key{repoKey, dbKey, repoKey}}
	assert.Equal(t,
		"circular dependency detected: *graft.repo -> *graft.database -> *graft.repo",
		cycle.Error())
}

func TestKeyString(t *testing.T) {
	k := Key{Type: reflect.TypeOf(&database{})}
	assert.Equal(t, "*graft.database", k.String())

	k.Name = "primary"
	assert.Equal(t, `*graft.database[name="primary"]`, k.String())
}

func TestRefString(t *testing.T) {
	r := refOf(reflect.TypeOf(&database{}), "primary")
	assert.Equal(t, `*graft.database[name="primary"]`, r.String())

	r = refOf(reflect.TypeOf((func() *database)(nil)), "")
	assert.Equal(t, "*graft.database (deferred)", r.String())
}
