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

// Package yoketest provides utilities for testing code that uses a yoke
// container.
package yoketest

import (
	"go.uber.org/yoke"
	"go.uber.org/yoke/yokeevent"
)

// TB is a subset of the standard library's testing.TB interface. It's
// satisfied by both *testing.T and *testing.B.
type TB interface {
	Errorf(string, ...interface{})
	FailNow()
}

// New creates a container whose diagnostics stay out of the test output.
func New(tb TB, opts ...yoke.Option) *yoke.Container {
	opts = append([]yoke.Option{yoke.WithLogger(yokeevent.NopLogger)}, opts...)
	return yoke.New(opts...)
}

// RequireRegister registers the components, failing the test on error.
func RequireRegister(tb TB, c *yoke.Container, comps ...*yoke.Component) {
	if err := c.Register(comps...); err != nil {
		tb.Errorf("registration failed: %v", err)
		tb.FailNow()
	}
}

// RequireResolve resolves T, failing the test on error.
func RequireResolve[T any](tb TB, c *yoke.Container) T {
	out, err := yoke.Resolve[T](c)
	if err != nil {
		tb.Errorf("resolve failed: %v", err)
		tb.FailNow()
	}
	return out
}

// RequireResolveNamed resolves the component registered under name, failing
// the test on error.
func RequireResolveNamed[T any](tb TB, c *yoke.Container, name string) T {
	out, err := yoke.ResolveNamed[T](c, name)
	if err != nil {
		tb.Errorf("resolve of name %q failed: %v", name, err)
		tb.FailNow()
	}
	return out
}

// RequireValid runs validation, failing the test if the configuration is not
// resolvable.
func RequireValid(tb TB, c *yoke.Container) {
	if !c.Validate() {
		tb.Errorf("container configuration failed validation")
		tb.FailNow()
	}
}

// RequireMaterialize eagerly constructs every singleton, failing the test on
// error.
func RequireMaterialize(tb TB, c *yoke.Container) {
	if err := c.MaterializeSingletons(); err != nil {
		tb.Errorf("singleton materialization failed: %v", err)
		tb.FailNow()
	}
}
