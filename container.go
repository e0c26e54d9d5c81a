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
	"io"
	"os"
	"reflect"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/yoke/internal/yokereflect"
	"go.uber.org/yoke/yokeevent"
)

// Container owns the component registry and the per-lifetime instance caches.
// Registration must complete before the first resolution; the container
// freezes itself when it serves one, and resolution is safe for concurrent
// use from then on.
type Container struct {
	mu      sync.Mutex
	reg     *registry
	frozen  bool
	down    bool
	logger  yokeevent.Logger
	config  Config
	visible Visibility

	singletons *instanceCache
	scopes     map[string]*Scope

	// closers holds singleton instances implementing io.Closer, in
	// construction-completion order. Shutdown iterates them in reverse.
	closers []io.Closer
}

// New creates an empty container ready for registration.
func New(opts ...Option) *Container {
	c := &Container{
		reg:        newRegistry(),
		logger:     &yokeevent.ConsoleLogger{W: os.Stderr},
		singletons: newInstanceCache(),
		scopes:     make(map[string]*Scope),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Option configures a container.
type Option func(*Container)

// WithLogger sets the sink for the container's diagnostic events. The default
// writes human-readable lines to stderr.
func WithLogger(l yokeevent.Logger) Option {
	return func(c *Container) { c.logger = l }
}

// WithConfig applies behavior settings, typically loaded via [ParseConfig].
func WithConfig(cfg Config) Option {
	return func(c *Container) { c.config = cfg }
}

// WithVisibility restricts every lookup to components the predicate accepts.
// The module/bundle system computes the predicate; the container only applies
// it.
func WithVisibility(v Visibility) Option {
	return func(c *Container) { c.visible = v }
}

func (c *Container) log(e yokeevent.Event) {
	if c.logger != nil {
		c.logger.LogEvent(e)
	}
}

// Register adds components to the container. Registration is not safe for
// concurrent use and is rejected once the container has served its first
// resolution.
func (c *Container) Register(comps ...*Component) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.down {
		return ErrShutdown
	}
	if c.frozen {
		return ErrFrozen
	}

	for _, comp := range comps {
		if comp == nil {
			return errors.New("component must not be nil")
		}
		c.reg.register(comp)

		abstractions := make([]string, len(comp.abstractions))
		for i, a := range comp.abstractions {
			abstractions[i] = a.String()
		}
		initializer := ""
		if comp.initializer != nil {
			initializer = yokereflect.FuncName(comp.initializer.fn.Interface())
		}
		c.log(&yokeevent.Registered{
			ComponentName: comp.concrete.String(),
			Abstractions:  abstractions,
			Lifetime:      comp.lifetime.String(),
			Initializer:   initializer,
		})
	}
	return nil
}

// freeze seals the registry before the first resolution. Once frozen, the
// component set is immutable; only the caches mutate.
func (c *Container) freeze() error {
	c.mu.Lock()
	if c.down {
		c.mu.Unlock()
		return ErrShutdown
	}
	first := !c.frozen
	c.frozen = true
	c.mu.Unlock()

	if !first {
		return nil
	}
	c.log(&yokeevent.Frozen{ComponentCount: len(c.reg.allComponents())})
	if c.config.EagerSingletons {
		return c.materialize()
	}
	return nil
}

// MaterializeSingletons eagerly resolves every Singleton component once.
// Invoke it at application startup to fail fast instead of on first use; the
// first unresolvable singleton aborts the pass.
func (c *Container) MaterializeSingletons() error {
	if err := c.freeze(); err != nil {
		return err
	}
	return c.materialize()
}

func (c *Container) materialize() error {
	count := 0
	for _, comp := range c.reg.allComponents() {
		if comp.lifetime != Singleton {
			continue
		}
		// Each singleton gets its own session: object-graph dependencies must
		// not be shared across top-level resolutions.
		s := newSession(c, nil)
		_, err := s.resolveComponent(comp)
		if err == nil {
			err = s.drainDeferred()
		}
		if err != nil {
			err = errors.Wrapf(err, "materializing %s", comp)
			c.log(&yokeevent.SingletonsMaterialized{Count: count, Err: err})
			return err
		}
		count++
	}
	c.log(&yokeevent.SingletonsMaterialized{Count: count})
	return nil
}

// Scope returns the scope for the given token, creating it on first use.
// Components with the Scoped lifetime resolved through it are constructed at
// most once per token.
func (c *Container) Scope(token string) *Scope {
	c.mu.Lock()
	defer c.mu.Unlock()

	if s, ok := c.scopes[token]; ok {
		return s
	}
	s := &Scope{token: token, c: c, cache: newInstanceCache()}
	c.scopes[token] = s
	c.log(&yokeevent.ScopeCreated{Token: token})
	return s
}

func (c *Container) releaseScope(s *Scope) {
	c.mu.Lock()
	if c.scopes[s.token] == s {
		delete(c.scopes, s.token)
	}
	c.mu.Unlock()
	c.log(&yokeevent.ScopeReleased{Token: s.token})
}

// noteSingleton records a completed singleton for Shutdown.
func (c *Container) noteSingleton(v reflect.Value) {
	if !v.IsValid() || !v.CanInterface() {
		return
	}
	if closer, ok := v.Interface().(io.Closer); ok {
		c.mu.Lock()
		c.closers = append(c.closers, closer)
		c.mu.Unlock()
	}
}

// Shutdown releases every cache and closes singleton instances implementing
// io.Closer, in reverse construction order. The context bounds the overall
// deadline; once it expires the remaining closers are skipped and the context
// error is included in the result. Further use of the container returns
// ErrShutdown.
func (c *Container) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	if c.down {
		c.mu.Unlock()
		return ErrShutdown
	}
	c.down = true
	closers := c.closers
	scopes := c.scopes
	c.scopes = make(map[string]*Scope)
	c.closers = nil
	c.mu.Unlock()

	for _, s := range scopes {
		s.cache.reset()
	}
	c.singletons.reset()

	var errs error
	for i := len(closers) - 1; i >= 0; i-- {
		if err := ctx.Err(); err != nil {
			errs = multierr.Append(errs, err)
			break
		}
		if err := closers[i].Close(); err != nil {
			errs = multierr.Append(errs, err)
		}
	}
	c.log(&yokeevent.ShutdownExecuted{Err: errs})
	return errs
}
