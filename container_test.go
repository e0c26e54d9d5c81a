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
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.uber.org/yoke/internal/yokelog"
	"go.uber.org/yoke/yokeevent"
)

func TestRegistrationRejectedAfterFirstResolve(t *testing.T) {
	c := newTestContainer(t,
		MustComponent(NewEngine),
	)

	_, err := Resolve[*Engine](c)
	require.NoError(t, err)

	err = c.Register(MustComponent(NewRadio))
	assert.ErrorIs(t, err, ErrFrozen)
}

func TestRegisterRejectsNilComponent(t *testing.T) {
	c := New(WithLogger(yokeevent.NopLogger))
	assert.Error(t, c.Register(nil))
}

func TestMaterializeSingletons(t *testing.T) {
	var constructed int
	c := newTestContainer(t,
		MustComponent(func() *Engine {
			constructed++
			return &Engine{}
		}, WithLifetime(Singleton)),
		MustComponent(NewRadio),
	)

	require.NoError(t, c.MaterializeSingletons())
	assert.Equal(t, 1, constructed, "only singletons are materialized")

	_, err := Resolve[*Engine](c)
	require.NoError(t, err)
	assert.Equal(t, 1, constructed, "resolution must hit the cache")
}

func TestMaterializeSingletonsFailsFast(t *testing.T) {
	c := newTestContainer(t,
		MustComponent(func() (*Engine, error) {
			return nil, errors.New("no fuel")
		}, WithLifetime(Singleton)),
	)

	err := c.MaterializeSingletons()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "materializing")
}

func TestEagerSingletonsConfig(t *testing.T) {
	var constructed int
	spy := new(yokelog.Spy)
	c := New(WithLogger(spy), WithConfig(Config{EagerSingletons: true}))
	require.NoError(t, c.Register(
		MustComponent(func() *Engine {
			constructed++
			return &Engine{}
		}, WithLifetime(Singleton)),
		MustComponent(NewRadio),
	))

	// The first resolution freezes the container and triggers the eager pass.
	_, err := Resolve[*Radio](c)
	require.NoError(t, err)
	assert.Equal(t, 1, constructed)
	assert.Contains(t, spy.EventTypes(), "SingletonsMaterialized")
}

type closeRecorder struct {
	name   string
	order  *[]string
	err    error
	closed bool
}

func (r *closeRecorder) Close() error {
	r.closed = true
	*r.order = append(*r.order, r.name)
	return r.err
}

func TestShutdownClosesSingletonsInReverseOrder(t *testing.T) {
	var order []string
	c := newTestContainer(t,
		MustComponent(func() *closeRecorder {
			return &closeRecorder{name: "first", order: &order}
		}, WithLifetime(Singleton), Named("first")),
		MustComponent(func() *closeRecorder {
			return &closeRecorder{name: "second", order: &order}
		}, WithLifetime(Singleton), Named("second")),
	)

	require.NoError(t, c.MaterializeSingletons())
	require.NoError(t, c.Shutdown(context.Background()))

	assert.Equal(t, []string{"second", "first"}, order)
}

func TestShutdownCollectsCloseErrors(t *testing.T) {
	errClose := errors.New("already gone")
	var order []string
	c := newTestContainer(t,
		MustComponent(func() *closeRecorder {
			return &closeRecorder{name: "bad", order: &order, err: errClose}
		}, WithLifetime(Singleton)),
	)

	require.NoError(t, c.MaterializeSingletons())

	err := c.Shutdown(context.Background())
	assert.ErrorIs(t, err, errClose)
}

func TestShutdownHonorsContext(t *testing.T) {
	var order []string
	c := newTestContainer(t,
		MustComponent(func() *closeRecorder {
			return &closeRecorder{name: "never", order: &order}
		}, WithLifetime(Singleton)),
	)
	require.NoError(t, c.MaterializeSingletons())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := c.Shutdown(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, order, "expired context must skip the remaining closers")
}

func TestUseAfterShutdown(t *testing.T) {
	c := newTestContainer(t,
		MustComponent(NewEngine),
	)
	require.NoError(t, c.Shutdown(context.Background()))

	_, err := Resolve[*Engine](c)
	assert.ErrorIs(t, err, ErrShutdown)
	assert.ErrorIs(t, c.Register(MustComponent(NewRadio)), ErrShutdown)
	assert.ErrorIs(t, c.Shutdown(context.Background()), ErrShutdown)
}

func TestScopeIdentityByToken(t *testing.T) {
	c := newTestContainer(t)

	first := c.Scope("session")
	assert.Same(t, first, c.Scope("session"))

	first.Release()
	assert.NotSame(t, first, c.Scope("session"))
}

func TestContainerEventStream(t *testing.T) {
	spy := new(yokelog.Spy)
	c := New(WithLogger(spy))
	require.NoError(t, c.Register(MustComponent(NewEngine, WithLifetime(Singleton))))

	_, err := Resolve[*Engine](c)
	require.NoError(t, err)

	types := spy.EventTypes()
	assert.Equal(t, []string{"Registered", "Frozen", "Resolved"}, types)
}
