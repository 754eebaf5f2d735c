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
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// ScopeFactory decorates a provider with a lifecycle policy. A fresh
// wrapper is created per bound identity, so identities registered under
// different qualifiers never share a cache.
//
// Wrappers must pass Dependencies through unchanged: scoping never alters
// the declared dependency set.
type ScopeFactory func(Provider) Provider

// singletonProvider caches the first produced instance for the lifetime of
// the Context. Resolution is a single-threaded startup phase; concurrent
// Produce calls on a shared wrapper after publication are a race.
type singletonProvider struct {
	inner Provider

	produced bool
	value    interface{}
}

func newSingletonProvider(inner Provider) Provider {
	return &singletonProvider{inner: inner}
}

func (p *singletonProvider) Produce(ctx Context) (interface{}, error) {
	if p.produced {
		return p.value, nil
	}

	v, err := p.inner.Produce(ctx)
	if err != nil {
		return nil, err
	}

	p.produced = true
	p.value = v
	return v, nil
}

func (p *singletonProvider) Dependencies() []Ref {
	return p.inner.Dependencies()
}

func (p *singletonProvider) String() string {
	return fmt.Sprintf("singleton %v", p.inner)
}

const expiringCacheKey = "instance"

// Expiring returns a ScopeFactory whose wrappers cache the produced
// instance for ttl, after which the next Produce constructs a fresh one.
// Register it under a custom scope tag:
//
//	c.RegisterScope(refreshed{}, graft.Expiring(time.Minute))
func Expiring(ttl time.Duration) ScopeFactory {
	return func(inner Provider) Provider {
		// No cleanup interval: the single entry is re-checked on access,
		// and a janitor goroutine would outlive the container.
		return &expiringProvider{
			inner: inner,
			cache: gocache.New(ttl, 0),
		}
	}
}

type expiringProvider struct {
	inner Provider
	cache *gocache.Cache
}

func (p *expiringProvider) Produce(ctx Context) (interface{}, error) {
	if v, ok := p.cache.Get(expiringCacheKey); ok {
		return v, nil
	}

	v, err := p.inner.Produce(ctx)
	if err != nil {
		return nil, err
	}

	p.cache.Set(expiringCacheKey, v, gocache.DefaultExpiration)
	return v, nil
}

func (p *expiringProvider) Dependencies() []Ref {
	return p.inner.Dependencies()
}

func (p *expiringProvider) String() string {
	return fmt.Sprintf("expiring %v", p.inner)
}
