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

// Package yoke is a runtime dependency-injection container. Callers register
// components (a concrete type, an optional constructor, a lifetime policy,
// and the abstractions the component satisfies) and then request fully wired
// instances by type:
//
//	c := yoke.New()
//	err := c.Register(
//		yoke.MustComponent(NewEngine,
//			yoke.As((*Motor)(nil)),
//			yoke.WithLifetime(yoke.Singleton)),
//		yoke.MustComponent(NewCar),
//	)
//	...
//	car, err := yoke.Resolve[*Car](c)
//
// Components may be registered under names or tags to disambiguate several
// implementations of the same abstraction, flagged as the default tie-break
// winner, or collected wholesale through a slice parameter. Four lifetimes
// control sharing: Prototype (fresh per resolution), ObjectGraph (shared
// within one top-level resolve call), Singleton (shared for the container's
// lifetime, constructed at most once even under concurrent first access), and
// Scoped (shared per externally supplied scope token).
//
// Circular dependencies are closed through late injections: an injection
// marked [Late] may resolve a dependency whose construction depends on the
// instance currently being injected into, because that instance is registered
// in its lifetime cache before injections run.
//
// [Container.Validate] checks a registered configuration without constructing
// anything: every dependency must have a satisfiable candidate and every cycle
// a valid break point, so configuration errors surface at startup instead of
// mid-request. [Container.MaterializeSingletons] goes one step further and
// eagerly constructs every singleton.
package yoke
