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

package yokeevent

import (
	"fmt"
	"io"
	"strings"
)

// ConsoleLogger is an event logger that writes human-readable messages.
//
// Use this during development.
type ConsoleLogger struct {
	W io.Writer
}

var _ Logger = (*ConsoleLogger)(nil)

func (l *ConsoleLogger) logf(msg string, args ...interface{}) {
	fmt.Fprintf(l.W, "[Yoke] "+msg+"\n", args...)
}

// LogEvent logs the given event to the logger's writer.
func (l *ConsoleLogger) LogEvent(event Event) {
	switch e := event.(type) {
	case *Registered:
		l.logf("REGISTER\t%s (%s) as %s", e.ComponentName, e.Lifetime, strings.Join(e.Abstractions, ", "))
	case *Frozen:
		l.logf("FROZEN\t%d components", e.ComponentCount)
	case *Resolved:
		l.logf("RESOLVE\t%s in %s", describe(e.TypeName, e.Name, e.Tag), e.Runtime)
	case *ResolveError:
		l.logf("ERROR\t\tFailed to resolve %s: %v", describe(e.TypeName, e.Name, e.Tag), e.Err)
	case *OptionalFallback:
		l.logf("OPTIONAL\t%s unresolved, using zero value: %v", describe(e.TypeName, e.Name, e.Tag), e.Err)
	case *ScopeCreated:
		l.logf("SCOPE\t%q created", e.Token)
	case *ScopeReleased:
		l.logf("SCOPE\t%q released", e.Token)
	case *ValidationStarted:
		l.logf("VALIDATE\tchecking %d components", e.ComponentCount)
	case *ValidationFinding:
		l.logf("VALIDATE\t%s: %s: %s", strings.ToUpper(e.Severity), e.Component, e.Message)
	case *ValidationDone:
		if e.Succeeded {
			l.logf("VALIDATE\tpassed with %d warning(s) in %s", e.Warnings, e.Runtime)
		} else {
			l.logf("VALIDATE\tfailed: %d failure(s), %d warning(s) in %s", e.Failures, e.Warnings, e.Runtime)
		}
	case *SingletonsMaterialized:
		if e.Err != nil {
			l.logf("ERROR\t\tMaterialized %d singleton(s), then: %v", e.Count, e.Err)
		} else {
			l.logf("SINGLETONS\t%d materialized", e.Count)
		}
	case *ShutdownExecuted:
		if e.Err != nil {
			l.logf("ERROR\t\tFailed to shut down cleanly: %v", e.Err)
		} else {
			l.logf("SHUTDOWN")
		}
	}
}

func describe(typeName, name, tag string) string {
	s := typeName
	if name != "" {
		s += fmt.Sprintf(" (name %q)", name)
	}
	if tag != "" {
		s += fmt.Sprintf(" (tag %q)", tag)
	}
	return s
}
