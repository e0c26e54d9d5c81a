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

// Package yokeevent defines the diagnostic events the container emits and the
// Logger interface that consumes them. The engine owns no formatting or
// output policy; plug in the ConsoleLogger, the ZapLogger, or your own sink.
package yokeevent

import "time"

// Event defines an event emitted by the container.
type Event interface {
	event() // Only this package can implement the interface.
}

// Passing events by type to make Event hashable in the future.
func (*Registered) event()             {}
func (*Frozen) event()                 {}
func (*Resolved) event()               {}
func (*ResolveError) event()           {}
func (*OptionalFallback) event()       {}
func (*ScopeCreated) event()           {}
func (*ScopeReleased) event()          {}
func (*ValidationStarted) event()      {}
func (*ValidationFinding) event()      {}
func (*ValidationDone) event()         {}
func (*SingletonsMaterialized) event() {}
func (*ShutdownExecuted) event()       {}

// Registered is emitted when a component is added to the registry.
type Registered struct {
	// ComponentName is the component's concrete type.
	ComponentName string
	// Abstractions are the keys the component can be resolved as.
	Abstractions []string
	// Lifetime is the component's instance-sharing policy.
	Lifetime string
	// Initializer names the constructor callable, if the component has one.
	Initializer string
}

// Frozen is emitted when the container seals the registry before its first
// resolution.
type Frozen struct {
	ComponentCount int
}

// Resolved is emitted after a top-level resolve call succeeds.
type Resolved struct {
	TypeName string
	Name     string
	Tag      string
	Runtime  time.Duration
}

// ResolveError is emitted when a top-level resolve call fails.
type ResolveError struct {
	TypeName string
	Name     string
	Tag      string
	Err      error
}

// OptionalFallback is emitted when an optional parameter could not be
// resolved and fell back to its zero value. The enclosing resolution
// continues.
type OptionalFallback struct {
	TypeName string
	Name     string
	Tag      string
	Err      error
}

// ScopeCreated is emitted when a custom scope is first used.
type ScopeCreated struct{ Token string }

// ScopeReleased is emitted when a custom scope is dropped along with its
// cached instances.
type ScopeReleased struct{ Token string }

// ValidationStarted opens a validation pass. Every ValidationFinding until
// the matching ValidationDone belongs to the same pass.
type ValidationStarted struct {
	ComponentCount int
}

// ValidationFinding is one finding of the validation pass.
type ValidationFinding struct {
	// Severity is "warning" or "failure".
	Severity string
	// Component is the component the finding is about.
	Component string
	Message   string
}

// ValidationDone closes a validation pass.
type ValidationDone struct {
	Succeeded bool
	Warnings  int
	Failures  int
	Runtime   time.Duration
}

// SingletonsMaterialized is emitted after an eager singleton-materialization
// pass. Err is nil when every singleton constructed; Count is the number that
// did.
type SingletonsMaterialized struct {
	Count int
	Err   error
}

// ShutdownExecuted is emitted after the container has been shut down.
type ShutdownExecuted struct {
	Err error
}

// Logger is the sink for container events.
type Logger interface {
	LogEvent(Event)
}

// NopLogger discards every event.
var NopLogger Logger = nopLogger{}

type nopLogger struct{}

func (nopLogger) LogEvent(Event) {}
