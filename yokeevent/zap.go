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
	"strings"

	"go.uber.org/zap"
)

// ZapLogger is an event logger that logs events to Zap.
type ZapLogger struct {
	Logger *zap.Logger
}

var _ Logger = (*ZapLogger)(nil)

// LogEvent logs the given event to the provided Zap logger.
func (l *ZapLogger) LogEvent(event Event) {
	switch e := event.(type) {
	case *Registered:
		l.Logger.Info("registered",
			zap.String("component", e.ComponentName),
			zap.String("lifetime", e.Lifetime),
			zap.Strings("abstractions", e.Abstractions),
			zap.String("initializer", e.Initializer),
		)
	case *Frozen:
		l.Logger.Info("container frozen",
			zap.Int("components", e.ComponentCount))
	case *Resolved:
		l.Logger.Info("resolved",
			zap.String("type", e.TypeName),
			zap.String("name", e.Name),
			zap.String("tag", e.Tag),
			zap.String("runtime", e.Runtime.String()),
		)
	case *ResolveError:
		l.Logger.Error("resolve failed",
			zap.String("type", e.TypeName),
			zap.String("name", e.Name),
			zap.String("tag", e.Tag),
			zap.Error(e.Err),
		)
	case *OptionalFallback:
		l.Logger.Warn("optional dependency unresolved, using zero value",
			zap.String("type", e.TypeName),
			zap.String("name", e.Name),
			zap.String("tag", e.Tag),
			zap.Error(e.Err),
		)
	case *ScopeCreated:
		l.Logger.Info("scope created", zap.String("token", e.Token))
	case *ScopeReleased:
		l.Logger.Info("scope released", zap.String("token", e.Token))
	case *ValidationStarted:
		l.Logger.Info("validation started",
			zap.Int("components", e.ComponentCount))
	case *ValidationFinding:
		msg := "validation warning"
		log := l.Logger.Warn
		if strings.EqualFold(e.Severity, "failure") {
			msg = "validation failure"
			log = l.Logger.Error
		}
		log(msg,
			zap.String("component", e.Component),
			zap.String("finding", e.Message),
		)
	case *ValidationDone:
		if e.Succeeded {
			l.Logger.Info("validation passed",
				zap.Int("warnings", e.Warnings),
				zap.String("runtime", e.Runtime.String()),
			)
		} else {
			l.Logger.Error("validation failed",
				zap.Int("failures", e.Failures),
				zap.Int("warnings", e.Warnings),
				zap.String("runtime", e.Runtime.String()),
			)
		}
	case *SingletonsMaterialized:
		if e.Err != nil {
			l.Logger.Error("singleton materialization failed",
				zap.Int("materialized", e.Count),
				zap.Error(e.Err),
			)
		} else {
			l.Logger.Info("singletons materialized",
				zap.Int("materialized", e.Count))
		}
	case *ShutdownExecuted:
		if e.Err != nil {
			l.Logger.Error("shutdown failed", zap.Error(e.Err))
		} else {
			l.Logger.Info("shutdown complete")
		}
	}
}
