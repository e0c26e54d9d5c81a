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

// Package yokestats reports container metrics to a tally scope. Attach it as
// the container's event logger, or tee it alongside another logger:
//
//	c := yoke.New(yoke.WithLogger(yokestats.New(scope)))
package yokestats

import (
	"github.com/uber-go/tally"
	"go.uber.org/yoke/yokeevent"
)

// Logger translates container events into tally counters and timers.
type Logger struct {
	resolves           tally.Counter
	resolveErrors      tally.Counter
	optionalFallbacks  tally.Counter
	validationWarnings tally.Counter
	validationFailures tally.Counter
	singletons         tally.Counter
	resolveLatency     tally.Timer

	// next receives every event after metrics are recorded; nil is allowed.
	next yokeevent.Logger
}

var _ yokeevent.Logger = (*Logger)(nil)

// New creates a metrics logger reporting to the given scope.
func New(scope tally.Scope) *Logger {
	return &Logger{
		resolves:           scope.Counter("resolves"),
		resolveErrors:      scope.Counter("resolve_errors"),
		optionalFallbacks:  scope.Counter("optional_fallbacks"),
		validationWarnings: scope.Counter("validation_warnings"),
		validationFailures: scope.Counter("validation_failures"),
		singletons:         scope.Counter("singletons_materialized"),
		resolveLatency:     scope.Timer("resolve_latency"),
	}
}

// Tee forwards every event to next after recording metrics, so metrics can be
// layered over a real logging sink.
func (l *Logger) Tee(next yokeevent.Logger) *Logger {
	l.next = next
	return l
}

// LogEvent records metrics for the given event.
func (l *Logger) LogEvent(event yokeevent.Event) {
	switch e := event.(type) {
	case *yokeevent.Resolved:
		l.resolves.Inc(1)
		l.resolveLatency.Record(e.Runtime)
	case *yokeevent.ResolveError:
		l.resolveErrors.Inc(1)
	case *yokeevent.OptionalFallback:
		l.optionalFallbacks.Inc(1)
	case *yokeevent.ValidationDone:
		l.validationWarnings.Inc(int64(e.Warnings))
		l.validationFailures.Inc(int64(e.Failures))
	case *yokeevent.SingletonsMaterialized:
		l.singletons.Inc(int64(e.Count))
	}

	if l.next != nil {
		l.next.LogEvent(event)
	}
}
