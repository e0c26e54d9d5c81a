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
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/yoke/yokeevent"
)

// session is the state of one top-level resolve call: the object-graph cache,
// partially constructed instances awaiting injection, and the resolution path
// used for cycle detection. Instances in the graph cache are dropped when the
// call returns; they never leak into a subsequent resolution.
type session struct {
	c     *Container
	scope *Scope

	// mu guards graph, partial, stack and deferred; a single resolve call may
	// fan out across goroutines inside user callables.
	mu       sync.Mutex
	graph    map[int]reflect.Value
	partial  map[int]reflect.Value
	stack    []*Component
	onStack  map[int]bool
	deferred []deferredInjection
}

// deferredInjection is a late injection queued until the top-level resolve
// call has finished constructing. By then every cycle participant exists in
// its lifetime cache, so the injection can resolve dependencies that were
// mid-construction when it was queued.
type deferredInjection struct {
	comp   *Component
	sig    *MethodSignature
	idx    int
	target reflect.Value
}

func newSession(c *Container, scope *Scope) *session {
	return &session{
		c:       c,
		scope:   scope,
		graph:   make(map[int]reflect.Value),
		partial: make(map[int]reflect.Value),
		onStack: make(map[int]bool),
	}
}

func (s *session) graphFor(comp *Component) (reflect.Value, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.graph[comp.order]
	return v, ok
}

func (s *session) setGraph(comp *Component, v reflect.Value) {
	s.mu.Lock()
	s.graph[comp.order] = v
	s.mu.Unlock()
}

func (s *session) clearGraph(comp *Component) {
	s.mu.Lock()
	delete(s.graph, comp.order)
	s.mu.Unlock()
}

func (s *session) partialFor(comp *Component) (reflect.Value, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.partial[comp.order]
	return v, ok
}

func (s *session) setPartial(comp *Component, v reflect.Value) {
	s.mu.Lock()
	s.partial[comp.order] = v
	s.mu.Unlock()
}

func (s *session) clearPartial(comp *Component) {
	s.mu.Lock()
	delete(s.partial, comp.order)
	s.mu.Unlock()
}

func (s *session) push(comp *Component) {
	s.mu.Lock()
	s.stack = append(s.stack, comp)
	s.onStack[comp.order] = true
	s.mu.Unlock()
}

func (s *session) pop(comp *Component) {
	s.mu.Lock()
	s.stack = s.stack[:len(s.stack)-1]
	delete(s.onStack, comp.order)
	s.mu.Unlock()
}

func (s *session) isOnStack(comp *Component) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.onStack[comp.order]
}

// hasPartialInstance reports whether a re-entry into comp can observe a
// partially constructed instance instead of recursing forever.
func (s *session) hasPartialInstance(comp *Component) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.partial[comp.order]; ok {
		return true
	}
	_, ok := s.graph[comp.order]
	return ok
}

func (s *session) cycleError(comp *Component) error {
	s.mu.Lock()
	chain := make([]string, 0, len(s.stack)+1)
	for _, on := range s.stack {
		chain = append(chain, on.concrete.String())
	}
	s.mu.Unlock()
	chain = append(chain, comp.concrete.String())
	return errors.Wrap(ErrUnconstructibleCycle, strings.Join(chain, " -> "))
}

// resolveComponent obtains an instance of comp per its lifetime policy.
func (s *session) resolveComponent(comp *Component) (reflect.Value, error) {
	// A re-entry that can observe a partially constructed instance closes a
	// cycle; one that cannot has no valid break point.
	if v, ok := s.partialFor(comp); ok {
		return v, nil
	}

	switch comp.lifetime {
	case ObjectGraph:
		if v, ok := s.graphFor(comp); ok {
			return v, nil
		}
	case Scoped:
		if s.scope == nil {
			return reflect.Value{}, errors.Wrap(ErrNoScope, comp.String())
		}
	}

	if s.isOnStack(comp) {
		return reflect.Value{}, s.cycleError(comp)
	}

	switch comp.lifetime {
	case Singleton:
		return s.c.singletons.get(comp, func() (reflect.Value, error) {
			v, err := s.construct(comp)
			if err == nil {
				s.c.noteSingleton(v)
			}
			return v, err
		})
	case Scoped:
		return s.scope.cache.get(comp, func() (reflect.Value, error) {
			return s.construct(comp)
		})
	default:
		return s.construct(comp)
	}
}

// construct instantiates comp and runs its injections. For cached lifetimes
// the fresh instance is registered before injections run, so a late injection
// further down the path can observe it and close a cycle.
func (s *session) construct(comp *Component) (reflect.Value, error) {
	if comp.initializer == nil {
		if comp.hasInstance {
			return comp.instance, nil
		}
		return reflect.Value{}, errors.Wrapf(ErrMissingDependency,
			"%s has no initializer and no cached instance", comp)
	}

	s.push(comp)
	defer s.pop(comp)

	v, err := s.instantiate(comp)
	if err != nil {
		return reflect.Value{}, err
	}

	switch comp.lifetime {
	case ObjectGraph:
		s.setGraph(comp, v)
	case Singleton, Scoped:
		s.setPartial(comp, v)
		defer s.clearPartial(comp)
	}

	if err := s.runInjections(comp, v); err != nil {
		s.clearGraph(comp)
		return reflect.Value{}, err
	}
	return v, nil
}

func (s *session) instantiate(comp *Component) (reflect.Value, error) {
	sig := comp.initializer
	args := make([]reflect.Value, len(sig.params))
	for i, p := range sig.params {
		v, err := s.resolveParam(p)
		if err != nil {
			return reflect.Value{}, errors.Wrapf(err, "argument %d of %s", i, comp)
		}
		args[i] = v
	}

	v, err := sig.construct(args)
	if err != nil {
		return reflect.Value{}, errors.Wrapf(ErrConstructionFailure,
			"initializer of %s: %v", comp, err)
	}
	return v, nil
}

// runInjections applies comp's injections to a fresh instance. Late
// injections are not applied inline: their dependencies may still be under
// construction higher up the path, so they are queued and drained once the
// top-level call has finished constructing.
func (s *session) runInjections(comp *Component, target reflect.Value) error {
	for i, sig := range comp.injections {
		if sig.late {
			s.mu.Lock()
			s.deferred = append(s.deferred, deferredInjection{
				comp:   comp,
				sig:    sig,
				idx:    i,
				target: target,
			})
			s.mu.Unlock()
			continue
		}
		if err := s.applyInjection(comp, sig, i, target); err != nil {
			return err
		}
	}
	return nil
}

func (s *session) applyInjection(comp *Component, sig *MethodSignature, i int, target reflect.Value) error {
	args := make([]reflect.Value, len(sig.params))
	for j, p := range sig.params {
		v, err := s.resolveParam(p)
		if err != nil {
			return errors.Wrapf(err, "injection %d argument %d of %s", i, j, comp)
		}
		args[j] = v
	}
	if err := sig.apply(target, args); err != nil {
		return errors.Wrapf(ErrConstructionFailure,
			"injection %d of %s: %v", i, comp, err)
	}
	return nil
}

// drainDeferred applies queued late injections until none remain. A drained
// injection may construct further components and queue more late injections
// of its own.
func (s *session) drainDeferred() error {
	for {
		s.mu.Lock()
		if len(s.deferred) == 0 {
			s.mu.Unlock()
			return nil
		}
		d := s.deferred[0]
		s.deferred = s.deferred[1:]
		s.mu.Unlock()

		if err := s.applyInjection(d.comp, d.sig, d.idx, d.target); err != nil {
			return err
		}
	}
}

// resolveParam is one full application of candidate matching plus the
// lifetime-dispatched instantiation algorithm.
func (s *session) resolveParam(p Parameter) (reflect.Value, error) {
	var (
		v   reflect.Value
		err error
	)
	if p.Many {
		v, err = s.resolveMany(p)
	} else {
		var comp *Component
		comp, err = s.match(p)
		if err == nil {
			v, err = s.resolveComponent(comp)
		}
	}
	if err != nil {
		if p.Optional {
			s.c.log(&yokeevent.OptionalFallback{
				TypeName: p.Type.String(),
				Name:     p.Name,
				Tag:      p.Tag,
				Err:      err,
			})
			return zeroFor(p), nil
		}
		return reflect.Value{}, err
	}
	return v, nil
}

func zeroFor(p Parameter) reflect.Value {
	if p.Many {
		return reflect.MakeSlice(reflect.SliceOf(p.Type), 0, 0)
	}
	return reflect.Zero(p.Type)
}

// match applies the candidate-matching and disambiguation rules for a
// single-valued parameter.
func (s *session) match(p Parameter) (*Component, error) {
	raw := s.c.reg.find(p.Type, p.Name, p.Tag, s.c.visible)
	if len(raw) == 0 {
		return nil, errors.Wrap(ErrMissingDependency, describeRequest(p))
	}

	usable := raw[:0:0]
	for _, comp := range raw {
		if s.usable(comp) {
			usable = append(usable, comp)
		}
	}
	if len(usable) == 0 {
		return nil, errors.Wrapf(ErrMissingDependency,
			"%s: %d candidate(s) registered but none is constructible or cached",
			describeRequest(p), len(raw))
	}
	if len(usable) == 1 {
		return usable[0], nil
	}

	var defaults []*Component
	for _, comp := range usable {
		if comp.isDefault {
			defaults = append(defaults, comp)
		}
	}
	if len(defaults) == 1 {
		return defaults[0], nil
	}
	return nil, errors.Wrapf(ErrAmbiguousDependency,
		"%s: %d candidates, %d defaults", describeRequest(p), len(usable), len(defaults))
}

// usable reports whether a candidate can satisfy a construction request: it
// either has an initializer or is already resident in some cache visible to
// this session.
func (s *session) usable(comp *Component) bool {
	if comp.initializer != nil || comp.hasInstance {
		return true
	}
	if s.hasPartialInstance(comp) {
		return true
	}
	if _, ok := s.c.singletons.peek(comp); ok {
		return true
	}
	if s.scope != nil {
		if _, ok := s.scope.cache.peek(comp); ok {
			return true
		}
	}
	return false
}

// resolveMany resolves every surviving candidate, in registration order, into
// a slice. Disambiguation does not apply. A member currently mid-construction
// on this path is skipped: collecting many tolerates an as-yet-incomplete
// member set, which is what lets a many edge break a cycle.
func (s *session) resolveMany(p Parameter) (reflect.Value, error) {
	cands := s.c.reg.find(p.Type, p.Name, p.Tag, s.c.visible)
	out := reflect.MakeSlice(reflect.SliceOf(p.Type), 0, len(cands))
	for _, comp := range cands {
		if !s.usable(comp) {
			continue
		}
		if s.isOnStack(comp) && !s.hasPartialInstance(comp) {
			continue
		}
		v, err := s.resolveComponent(comp)
		if err != nil {
			return reflect.Value{}, errors.Wrapf(err, "collecting %s", describeRequest(p))
		}
		out = reflect.Append(out, v)
	}
	return out, nil
}

func describeRequest(p Parameter) string {
	s := p.Type.String()
	if p.Name != "" {
		s += fmt.Sprintf(" (name %q)", p.Name)
	}
	if p.Tag != "" {
		s += fmt.Sprintf(" (tag %q)", p.Tag)
	}
	return s
}

// Resolve populates ptr with a fully wired instance of its element type. A
// slice pointer collects every matching candidate in registration order.
// Resolution fails with a structured error if a required, unambiguous match
// cannot be constructed.
func (c *Container) Resolve(ptr interface{}) error {
	return c.resolveRequest(ptr, "", "", nil)
}

// ResolveNamed is Resolve restricted to components registered under name.
func (c *Container) ResolveNamed(ptr interface{}, name string) error {
	return c.resolveRequest(ptr, name, "", nil)
}

// ResolveTagged is Resolve restricted to components registered under tag.
func (c *Container) ResolveTagged(ptr interface{}, tag string) error {
	return c.resolveRequest(ptr, "", tag, nil)
}

// Resolve populates ptr through the scope: Scoped components are cached per
// scope token rather than per call.
func (s *Scope) Resolve(ptr interface{}) error {
	return s.c.resolveRequest(ptr, "", "", s)
}

// ResolveNamed is Resolve restricted to components registered under name.
func (s *Scope) ResolveNamed(ptr interface{}, name string) error {
	return s.c.resolveRequest(ptr, name, "", s)
}

// ResolveTagged is Resolve restricted to components registered under tag.
func (s *Scope) ResolveTagged(ptr interface{}, tag string) error {
	return s.c.resolveRequest(ptr, "", tag, s)
}

func (c *Container) resolveRequest(ptr interface{}, name, tag string, scope *Scope) error {
	if err := c.freeze(); err != nil {
		return err
	}

	v := reflect.ValueOf(ptr)
	if !v.IsValid() || v.Kind() != reflect.Ptr || v.IsNil() {
		return errors.New("resolve target must be a non-nil pointer")
	}
	elem := v.Elem()

	p := Parameter{Type: elem.Type(), Name: name, Tag: tag}
	if elem.Kind() == reflect.Slice && elem.Type().Elem().Kind() != reflect.Uint8 {
		p.Many = true
		p.Type = elem.Type().Elem()
	}

	start := time.Now()
	s := newSession(c, scope)
	val, err := s.resolveParam(p)
	if err == nil {
		err = s.drainDeferred()
	}
	if err != nil {
		c.log(&yokeevent.ResolveError{
			TypeName: elem.Type().String(),
			Name:     name,
			Tag:      tag,
			Err:      err,
		})
		return err
	}

	elem.Set(val)
	c.log(&yokeevent.Resolved{
		TypeName: elem.Type().String(),
		Name:     name,
		Tag:      tag,
		Runtime:  time.Since(start),
	})
	return nil
}

// Resolve is a generic helper over [Container.Resolve]:
//
//	motor, err := yoke.Resolve[Motor](c)
func Resolve[T any](c *Container) (T, error) {
	var out T
	err := c.Resolve(&out)
	return out, err
}

// ResolveNamed resolves the component registered under name.
func ResolveNamed[T any](c *Container, name string) (T, error) {
	var out T
	err := c.ResolveNamed(&out, name)
	return out, err
}

// ResolveTagged resolves the component registered under tag.
func ResolveTagged[T any](c *Container, tag string) (T, error) {
	var out T
	err := c.ResolveTagged(&out, tag)
	return out, err
}

// ResolveAll resolves every registered candidate for T, in registration
// order. Zero candidates yields an empty slice, not an error.
func ResolveAll[T any](c *Container) ([]T, error) {
	var out []T
	err := c.Resolve(&out)
	return out, err
}

// ResolveOptional resolves T if a single unambiguous candidate can be
// constructed, and otherwise returns the zero value. Failures are recovered
// locally and reported through the container's logger only.
func ResolveOptional[T any](c *Container) (T, bool) {
	var out T
	if err := c.Resolve(&out); err != nil {
		var zero T
		return zero, false
	}
	return out, true
}

// ResolveIn resolves T through a scope.
func ResolveIn[T any](s *Scope) (T, error) {
	var out T
	err := s.Resolve(&out)
	return out, err
}
