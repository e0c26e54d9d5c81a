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

import "errors"

var (
	// ErrMissingDependency is returned when no registered component can
	// satisfy a required dependency.
	ErrMissingDependency = errors.New("no component registered for dependency")

	// ErrAmbiguousDependency is returned when several components satisfy a
	// dependency and none of them is an unambiguous default.
	ErrAmbiguousDependency = errors.New("ambiguous dependency")

	// ErrUnconstructibleCycle is returned when resolution re-enters a
	// component whose construction has not progressed far enough to hand out
	// a partially built instance. The cycle has no valid break point.
	ErrUnconstructibleCycle = errors.New("unconstructible dependency cycle")

	// ErrConstructionFailure is returned when a user-supplied constructor or
	// injection callable reports an error.
	ErrConstructionFailure = errors.New("construction failed")

	// ErrFrozen is returned by Register once the container has served its
	// first resolution.
	ErrFrozen = errors.New("container is frozen; registration is closed")

	// ErrNoScope is returned when a Scoped component is resolved outside an
	// active scope.
	ErrNoScope = errors.New("scoped component resolved outside a scope")

	// ErrShutdown is returned when the container is used after Shutdown.
	ErrShutdown = errors.New("container has been shut down")
)
