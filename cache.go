// Copyright (c) 2026 Uber Technologies, Inc.
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

package yoke

import (
	"reflect"
	"sync"

	"github.com/pkg/errors"
)

// cacheEntry tracks the at-most-once construction of a single component. The
// winning builder closes done once the value (or error) is final; every other
// caller blocks on done and returns the shared result.
type cacheEntry struct {
	done  chan struct{}
	value reflect.Value
	err   error
}

// instanceCache is per-lifetime storage keyed by component identity. The
// container owns one for singletons; each custom scope owns its own.
type instanceCache struct {
	mu      sync.Mutex
	entries map[int]*cacheEntry
}

func newInstanceCache() *instanceCache {
	return &instanceCache{entries: make(map[int]*cacheEntry)}
}

// get returns the cached instance for the component, constructing it via
// build at most once. Competing first accesses serialize: all but the winning
// caller block until the value is available.
func (ic *instanceCache) get(comp *Component, build func() (reflect.Value, error)) (reflect.Value, error) {
	ic.mu.Lock()
	if e, ok := ic.entries[comp.order]; ok {
		ic.mu.Unlock()
		<-e.done
		return e.value, e.err
	}

	e := &cacheEntry{done: make(chan struct{})}
	ic.entries[comp.order] = e
	ic.mu.Unlock()

	e.value, e.err = build()
	if e.err != nil {
		// Leave failed constructions retryable.
		ic.mu.Lock()
		delete(ic.entries, comp.order)
		ic.mu.Unlock()
	}
	close(e.done)
	return e.value, e.err
}

// peek reports the cached instance without constructing or blocking. An
// in-flight construction is not visible.
func (ic *instanceCache) peek(comp *Component) (reflect.Value, bool) {
	ic.mu.Lock()
	e, ok := ic.entries[comp.order]
	ic.mu.Unlock()
	if !ok {
		return reflect.Value{}, false
	}
	select {
	case <-e.done:
		return e.value, e.err == nil
	default:
		return reflect.Value{}, false
	}
}

// put stores a finished value, displacing nothing: seeding an already-built
// component is an error left to the caller to detect via the return.
func (ic *instanceCache) put(comp *Component, v reflect.Value) bool {
	ic.mu.Lock()
	defer ic.mu.Unlock()
	if _, ok := ic.entries[comp.order]; ok {
		return false
	}
	e := &cacheEntry{done: make(chan struct{}), value: v}
	close(e.done)
	ic.entries[comp.order] = e
	return true
}

func (ic *instanceCache) reset() {
	ic.mu.Lock()
	ic.entries = make(map[int]*cacheEntry)
	ic.mu.Unlock()
}

// Scope is a custom-scope instance cache. Components with the Scoped lifetime
// are constructed at most once per scope and shared by every resolution that
// goes through it. Scopes are cheap; create one per request, session, or
// whatever unit the application shares instances across.
type Scope struct {
	token string
	c     *Container
	cache *instanceCache
}

// Token returns the externally supplied scope key.
func (s *Scope) Token() string { return s.token }

// Seed places a value built outside the container into the scope's cache,
// satisfying resolutions of comp within this scope. This is how components
// declared with NewExpected get their instances. Seeding the same component
// twice, or a value of the wrong type, is an error.
func (s *Scope) Seed(comp *Component, value interface{}) error {
	if comp == nil {
		return errors.New("component must not be nil")
	}
	if comp.lifetime != Scoped {
		return errors.Errorf("cannot seed %s component %s", comp.lifetime, comp)
	}
	v := reflect.ValueOf(value)
	if !v.IsValid() || !v.Type().AssignableTo(comp.concrete) {
		return errors.Errorf("seed value for %s must be assignable to %s", comp, comp.concrete)
	}
	if !s.cache.put(comp, v) {
		return errors.Errorf("%s is already cached in scope %q", comp, s.token)
	}
	return nil
}

// Release drops the scope and its cached instances. Resolving through a
// released scope constructs into a fresh cache.
func (s *Scope) Release() {
	s.c.releaseScope(s)
	s.cache.reset()
}
