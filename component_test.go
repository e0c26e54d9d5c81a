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

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewComponentRejectsBadConstructors(t *testing.T) {
	tests := []struct {
		desc        string
		constructor interface{}
	}{
		{"nil", nil},
		{"not a function", 42},
		{"variadic", func(ms ...Motor) *Car { return nil }},
		{"no return value", func() {}},
		{"too many return values", func() (*Car, *Radio, error) { return nil, nil, nil }},
		{"second return not an error", func() (*Car, *Radio) { return nil, nil }},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			_, err := NewComponent(tt.constructor)
			assert.Error(t, err)
		})
	}
}

func TestNewComponentAcceptsErrorReturn(t *testing.T) {
	comp, err := NewComponent(func() (*Engine, error) { return &Engine{}, nil })
	require.NoError(t, err)
	assert.NotNil(t, comp)
}

func TestAsRejectsUnassignableAbstraction(t *testing.T) {
	_, err := NewComponent(NewRadio, As((*Motor)(nil)))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not assignable")
}

func TestAsRejectsNonPointerAbstraction(t *testing.T) {
	_, err := NewComponent(NewEngine, As(Engine{}))
	assert.Error(t, err)
}

func TestParamOptionsValidateIndex(t *testing.T) {
	_, err := NewComponent(NewCar, ParamNamed(5, "spare"))
	assert.Error(t, err)

	_, err = NewComponent(NewCar, ParamOptional(-1))
	assert.Error(t, err)

	_, err = NewComponent(NewCar, ParamTagged(0, "sport"))
	assert.NoError(t, err)
}

func TestInjectRejectsBadCallables(t *testing.T) {
	tests := []struct {
		desc string
		fn   interface{}
	}{
		{"nil", nil},
		{"not a function", "nope"},
		{"no parameters", func() {}},
		{"first parameter is not the concrete type", func(r *Radio) {}},
		{"non-error return", func(p *Parent) int { return 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			_, err := NewComponent(func() *Parent { return &Parent{} }, Inject(tt.fn))
			assert.Error(t, err)
		})
	}
}

func TestInjectRequiresPointerConcreteType(t *testing.T) {
	_, err := NewComponent(func() Engine { return Engine{} },
		Inject(func(e Engine) {}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pointer")
}

func TestNewInstanceRejectsNil(t *testing.T) {
	_, err := NewInstance(nil)
	assert.Error(t, err)
}

func TestMustComponentPanics(t *testing.T) {
	assert.Panics(t, func() { MustComponent(42) })
	assert.NotPanics(t, func() { MustComponent(NewEngine) })
}

func TestManyParameterDetection(t *testing.T) {
	comp, err := NewComponent(func(ms []Motor, raw []byte) *Radio { return &Radio{} })
	require.NoError(t, err)

	params := comp.initializer.params
	require.Len(t, params, 2)
	assert.True(t, params[0].Many, "a slice parameter collects all candidates")
	assert.False(t, params[1].Many, "byte slices are plain values")
}

func TestNamedAndTaggedSelfRegistration(t *testing.T) {
	comp, err := NewComponent(NewEngine, Named("primary"), Tagged("petrol"))
	require.NoError(t, err)
	assert.Equal(t, "primary", comp.abstractions[0].Name)
	assert.Equal(t, "petrol", comp.abstractions[0].Tag)
}
