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

import "reflect"

// Visibility restricts candidate lookup to components visible from a caller's
// registration scope. The module/bundle system computes the predicate; the
// registry only applies it. A nil Visibility sees everything.
type Visibility func(*Component) bool

// registry owns the set of registered components and the abstraction index
// used for lookup. It is not safe for concurrent mutation; the container
// freezes it before the first resolution.
type registry struct {
	components []*Component
	index      map[reflect.Type][]*Component
}

func newRegistry() *registry {
	return &registry{index: make(map[reflect.Type][]*Component)}
}

// register appends the component and indexes every abstraction it satisfies.
// The component's registration order is its identity.
func (r *registry) register(c *Component) {
	c.order = len(r.components)
	r.components = append(r.components, c)

	for _, a := range c.abstractions {
		if !containsComponent(r.index[a.Type], c) {
			r.index[a.Type] = append(r.index[a.Type], c)
		}
	}
}

// allComponents returns every registered component in registration order.
func (r *registry) allComponents() []*Component {
	return r.components
}

// find returns all components with an abstraction matching the triple, in
// registration order. An empty name or tag matches any registration. Zero
// matches is not an error at this layer; callers decide what it means.
func (r *registry) find(t reflect.Type, name, tag string, visible Visibility) []*Component {
	var out []*Component
	for _, c := range r.index[t] {
		if !c.satisfies(t, name, tag) {
			continue
		}
		if visible != nil && !visible(c) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func containsComponent(cs []*Component, c *Component) bool {
	for _, have := range cs {
		if have == c {
			return true
		}
	}
	return false
}
