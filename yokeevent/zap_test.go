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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLogger(t *testing.T) {
	tests := []struct {
		desc        string
		give        Event
		wantMessage string
		wantLevel   zapcore.Level
		wantFields  map[string]interface{}
	}{
		{
			desc: "Registered",
			give: &Registered{
				ComponentName: "*car.Engine",
				Abstractions:  []string{"car.Motor"},
				Lifetime:      "singleton",
				Initializer:   "car.NewEngine()",
			},
			wantMessage: "registered",
			wantLevel:   zapcore.InfoLevel,
			wantFields: map[string]interface{}{
				"component":    "*car.Engine",
				"lifetime":     "singleton",
				"abstractions": []interface{}{"car.Motor"},
				"initializer":  "car.NewEngine()",
			},
		},
		{
			desc:        "Frozen",
			give:        &Frozen{ComponentCount: 2},
			wantMessage: "container frozen",
			wantLevel:   zapcore.InfoLevel,
			wantFields:  map[string]interface{}{"components": int64(2)},
		},
		{
			desc:        "ResolveError",
			give:        &ResolveError{TypeName: "car.Motor", Err: errors.New("missing dependency")},
			wantMessage: "resolve failed",
			wantLevel:   zapcore.ErrorLevel,
			wantFields: map[string]interface{}{
				"type":  "car.Motor",
				"name":  "",
				"tag":   "",
				"error": "missing dependency",
			},
		},
		{
			desc:        "OptionalFallback",
			give:        &OptionalFallback{TypeName: "*car.Radio", Err: errors.New("missing dependency")},
			wantMessage: "optional dependency unresolved, using zero value",
			wantLevel:   zapcore.WarnLevel,
			wantFields: map[string]interface{}{
				"type":  "*car.Radio",
				"name":  "",
				"tag":   "",
				"error": "missing dependency",
			},
		},
		{
			desc:        "ValidationFinding warning",
			give:        &ValidationFinding{Severity: "warning", Component: "*car.Car", Message: "only cache-satisfiable"},
			wantMessage: "validation warning",
			wantLevel:   zapcore.WarnLevel,
			wantFields: map[string]interface{}{
				"component": "*car.Car",
				"finding":   "only cache-satisfiable",
			},
		},
		{
			desc:        "ValidationFinding failure",
			give:        &ValidationFinding{Severity: "failure", Component: "*car.Car", Message: "missing dependency"},
			wantMessage: "validation failure",
			wantLevel:   zapcore.ErrorLevel,
			wantFields: map[string]interface{}{
				"component": "*car.Car",
				"finding":   "missing dependency",
			},
		},
		{
			desc:        "ValidationDone failed",
			give:        &ValidationDone{Failures: 1, Warnings: 2},
			wantMessage: "validation failed",
			wantLevel:   zapcore.ErrorLevel,
			wantFields: map[string]interface{}{
				"failures": int64(1),
				"warnings": int64(2),
				"runtime":  "0s",
			},
		},
		{
			desc:        "ScopeCreated",
			give:        &ScopeCreated{Token: "request-1"},
			wantMessage: "scope created",
			wantLevel:   zapcore.InfoLevel,
			wantFields:  map[string]interface{}{"token": "request-1"},
		},
		{
			desc:        "ShutdownExecuted",
			give:        &ShutdownExecuted{},
			wantMessage: "shutdown complete",
			wantLevel:   zapcore.InfoLevel,
			wantFields:  map[string]interface{}{},
		},
		{
			desc:        "ShutdownExecuted error",
			give:        &ShutdownExecuted{Err: errors.New("already gone")},
			wantMessage: "shutdown failed",
			wantLevel:   zapcore.ErrorLevel,
			wantFields:  map[string]interface{}{"error": "already gone"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			core, observed := observer.New(zap.DebugLevel)
			(&ZapLogger{Logger: zap.New(core)}).LogEvent(tt.give)

			logs := observed.TakeAll()
			require.Len(t, logs, 1)

			got := logs[0]
			assert.Equal(t, tt.wantMessage, got.Message)
			assert.Equal(t, tt.wantLevel, got.Level)
			assert.Equal(t, tt.wantFields, got.ContextMap())
		})
	}
}
