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
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryFind(t *testing.T) {
	motorType := reflect.TypeOf((*Motor)(nil)).Elem()

	plain := MustComponent(NewEngine, As((*Motor)(nil)))
	named := MustComponent(NewTurboEngine, AsNamed((*Motor)(nil), "turbo"))
	tagged := MustComponent(NewEngine, AsTagged((*Motor)(nil), "economy"))

	r := newRegistry()
	r.register(plain)
	r.register(named)
	r.register(tagged)

	t.Run("empty discriminators match any registration", func(t *testing.T) {
		got := r.find(motorType, "", "", nil)
		assert.Equal(t, []*Component{plain, named, tagged}, got)
	})

	t.Run("a requested name narrows the match", func(t *testing.T) {
		got := r.find(motorType, "turbo", "", nil)
		require.Len(t, got, 1)
		assert.Same(t, named, got[0])
	})

	t.Run("a requested tag narrows the match", func(t *testing.T) {
		got := r.find(motorType, "", "economy", nil)
		require.Len(t, got, 1)
		assert.Same(t, tagged, got[0])
	})

	t.Run("no match for an unknown name", func(t *testing.T) {
		assert.Empty(t, r.find(motorType, "diesel", "", nil))
	})

	t.Run("visibility filters candidates", func(t *testing.T) {
		got := r.find(motorType, "", "", func(c *Component) bool { return c != plain })
		assert.Equal(t, []*Component{named, tagged}, got)
	})
}

func TestRegistryAssignsOrder(t *testing.T) {
	r := newRegistry()
	first := MustComponent(NewEngine)
	second := MustComponent(NewRadio)
	r.register(first)
	r.register(second)

	assert.Equal(t, 0, first.order)
	assert.Equal(t, 1, second.order)
	assert.Equal(t, []*Component{first, second}, r.allComponents())
}
