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

// Lifetime controls how instances of a component are shared between
// resolutions.
type Lifetime int

const (
	// Prototype components are constructed fresh on every resolution and
	// never cached.
	Prototype Lifetime = iota

	// ObjectGraph components are constructed at most once per top-level
	// resolve call. Every path that reaches the component during that call
	// observes the same instance; an unrelated call observes a new one.
	ObjectGraph

	// Singleton components are constructed at most once for the lifetime of
	// the container, even under concurrent first access.
	Singleton

	// Scoped components are constructed at most once per externally supplied
	// scope token. See [Container.Scope].
	Scoped
)

// String returns the human-readable name of the lifetime.
func (l Lifetime) String() string {
	switch l {
	case Prototype:
		return "prototype"
	case ObjectGraph:
		return "objectGraph"
	case Singleton:
		return "singleton"
	case Scoped:
		return "scoped"
	default:
		return "unknown"
	}
}
