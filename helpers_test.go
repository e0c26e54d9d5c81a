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

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/yoke/yokeevent"
)

// Shared fixture types for the engine tests.

type Motor interface {
	Drive() string
}

type Engine struct{}

func (e *Engine) Drive() string { return "vroom" }

func NewEngine() *Engine { return &Engine{} }

type TurboEngine struct{}

func (e *TurboEngine) Drive() string { return "VROOM" }

func NewTurboEngine() *TurboEngine { return &TurboEngine{} }

type Radio struct {
	Station string
}

func NewRadio() *Radio { return &Radio{Station: "KUOW"} }

type Car struct {
	Motor Motor
	Radio *Radio
}

func NewCar(m Motor, r *Radio) *Car { return &Car{Motor: m, Radio: r} }

// Parent and Child reference each other in the cycle tests.

type Parent struct {
	Child *Child
}

type Child struct {
	Parent *Parent
}

func newTestContainer(t *testing.T, comps ...*Component) *Container {
	t.Helper()
	c := New(WithLogger(yokeevent.NopLogger))
	require.NoError(t, c.Register(comps...))
	return c
}
