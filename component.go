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

	"github.com/pkg/errors"
)

var _errType = reflect.TypeOf((*error)(nil)).Elem()

// Abstraction is a (type, name, tag) key a component can be resolved as. Name
// and tag are optional discriminators; the zero values match any request that
// doesn't ask for one.
type Abstraction struct {
	Type reflect.Type
	Name string
	Tag  string
}

func (a Abstraction) String() string {
	s := a.Type.String()
	if a.Name != "" {
		s += fmt.Sprintf(" (name %q)", a.Name)
	}
	if a.Tag != "" {
		s += fmt.Sprintf(" (tag %q)", a.Tag)
	}
	return s
}

// Parameter describes a single dependency of a constructor or injection
// callable.
type Parameter struct {
	// Type is the dependency's target type. For Many parameters this is the
	// element type of the collecting slice.
	Type reflect.Type

	// Name and Tag restrict candidate matching to components registered
	// under the same discriminator.
	Name string
	Tag  string

	// Many collects every matching candidate into a slice, in registration
	// order, instead of requiring exactly one.
	Many bool

	// Optional parameters resolve to their zero value when no unambiguous
	// candidate exists, instead of failing the enclosing resolution.
	Optional bool
}

// MethodSignature describes a constructor or injection callable together with
// the ordered dependencies it needs.
type MethodSignature struct {
	params []Parameter
	fn     reflect.Value

	// injections only
	late bool
}

// Parameters returns the signature's ordered dependency descriptors.
func (m *MethodSignature) Parameters() []Parameter { return m.params }

// construct invokes an initializer signature with the resolved arguments.
func (m *MethodSignature) construct(args []reflect.Value) (reflect.Value, error) {
	out := m.fn.Call(args)
	if len(out) == 2 && !out[1].IsNil() {
		return reflect.Value{}, out[1].Interface().(error)
	}
	return out[0], nil
}

// apply invokes an injection signature against an already built target.
func (m *MethodSignature) apply(target reflect.Value, args []reflect.Value) error {
	in := make([]reflect.Value, 0, len(args)+1)
	in = append(in, target)
	in = append(in, args...)
	out := m.fn.Call(in)
	if len(out) == 1 && !out[0].IsNil() {
		return out[0].Interface().(error)
	}
	return nil
}

// Component is one registered buildable unit: a concrete type, an optional
// initializer, the abstractions it satisfies, its lifetime, and zero or more
// post-construction injections.
//
// A component is identified by its registration, never by type alone; several
// components may share a concrete type or abstraction.
type Component struct {
	// order is assigned at registration time and doubles as identity.
	order int

	concrete     reflect.Type
	initializer  *MethodSignature
	instance     reflect.Value
	hasInstance  bool
	abstractions []Abstraction
	lifetime     Lifetime
	injections   []*MethodSignature
	isDefault    bool
}

// ConcreteType returns the type the component constructs.
func (c *Component) ConcreteType() reflect.Type { return c.concrete }

// Lifetime returns the component's instance-sharing policy.
func (c *Component) Lifetime() Lifetime { return c.lifetime }

// Abstractions returns the keys the component can be resolved as. The
// component's concrete type is always the first entry.
func (c *Component) Abstractions() []Abstraction { return c.abstractions }

func (c *Component) String() string {
	return fmt.Sprintf("%s (%s)", c.concrete, c.lifetime)
}

func (c *Component) satisfies(t reflect.Type, name, tag string) bool {
	for _, a := range c.abstractions {
		if a.Type != t {
			continue
		}
		if name != "" && a.Name != name {
			continue
		}
		if tag != "" && a.Tag != tag {
			continue
		}
		return true
	}
	return false
}

// signatures returns the initializer (if any) followed by the injections, in
// declaration order.
func (c *Component) signatures() []*MethodSignature {
	sigs := make([]*MethodSignature, 0, len(c.injections)+1)
	if c.initializer != nil {
		sigs = append(sigs, c.initializer)
	}
	return append(sigs, c.injections...)
}

// ComponentOption configures a component at construction time.
type ComponentOption func(*Component) error

// InjectOption configures a single injection added via Inject.
type InjectOption func(*MethodSignature) error

// NewComponent builds a component from a constructor function. The
// constructor must have the form func(deps...) T or func(deps...) (T, error);
// dependencies are expressed as parameters and resolved by type. A slice
// parameter collects every matching candidate ("many" resolution).
func NewComponent(constructor interface{}, opts ...ComponentOption) (*Component, error) {
	init, concrete, err := newInitializer(constructor)
	if err != nil {
		return nil, err
	}

	comp := &Component{
		concrete:    concrete,
		initializer: init,
		lifetime:    ObjectGraph,
	}
	comp.abstractions = []Abstraction{{Type: concrete}}

	return comp, comp.applyOptions(opts)
}

// NewInstance registers a pre-built value. The component has no initializer
// and is satisfied from cache only; its lifetime is Singleton.
func NewInstance(value interface{}, opts ...ComponentOption) (*Component, error) {
	if value == nil {
		return nil, errors.New("instance must not be nil")
	}

	v := reflect.ValueOf(value)
	comp := &Component{
		concrete:     v.Type(),
		instance:     v,
		hasInstance:  true,
		lifetime:     Singleton,
		abstractions: []Abstraction{{Type: v.Type()}},
	}

	return comp, comp.applyOptions(opts)
}

// NewExpected declares a component that the container cannot construct
// itself: it has no initializer and no pre-built value, and is satisfied only
// from a cache that outside code seeds, typically via Scope.Seed. Pass a
// pointer to name the concrete type: yoke.NewExpected((*http.Request)(nil)).
// The lifetime defaults to Scoped.
func NewExpected(target interface{}, opts ...ComponentOption) (*Component, error) {
	if target == nil {
		return nil, errors.New("expected target must not be nil")
	}
	t := reflect.TypeOf(target)
	if t.Kind() == reflect.Ptr && t.Elem().Kind() == reflect.Interface {
		t = t.Elem()
	}

	comp := &Component{
		concrete:     t,
		lifetime:     Scoped,
		abstractions: []Abstraction{{Type: t}},
	}

	return comp, comp.applyOptions(opts)
}

// MustComponent is NewComponent, panicking on error. Intended for
// registration blocks that run at process startup.
func MustComponent(constructor interface{}, opts ...ComponentOption) *Component {
	comp, err := NewComponent(constructor, opts...)
	if err != nil {
		panic(err)
	}
	return comp
}

// MustInstance is NewInstance, panicking on error.
func MustInstance(value interface{}, opts ...ComponentOption) *Component {
	comp, err := NewInstance(value, opts...)
	if err != nil {
		panic(err)
	}
	return comp
}

func (c *Component) applyOptions(opts []ComponentOption) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	if len(c.injections) > 0 && c.concrete.Kind() != reflect.Ptr {
		return errors.Errorf("injections require a pointer concrete type, got %s", c.concrete)
	}
	return nil
}

func newInitializer(constructor interface{}) (*MethodSignature, reflect.Type, error) {
	if constructor == nil {
		return nil, nil, errors.New("constructor must not be nil")
	}

	v := reflect.ValueOf(constructor)
	t := v.Type()

	if t.Kind() != reflect.Func {
		return nil, nil, errors.Errorf("constructor must be a function, got %s", t)
	}
	if t.IsVariadic() {
		return nil, nil, errors.New("constructor must not be variadic")
	}
	if t.NumOut() == 0 || t.NumOut() > 2 {
		return nil, nil, errors.New("constructor must return (T) or (T, error)")
	}
	if t.NumOut() == 2 && !t.Out(1).Implements(_errType) {
		return nil, nil, errors.New("constructor's second return value must be an error")
	}

	return &MethodSignature{fn: v, params: paramsOf(t, 0)}, t.Out(0), nil
}

// paramsOf derives parameter descriptors from a callable's inputs, skipping
// the first skip inputs. A slice input (other than []byte) is a "many"
// parameter collecting all candidates of the element type.
func paramsOf(t reflect.Type, skip int) []Parameter {
	params := make([]Parameter, 0, t.NumIn()-skip)
	for i := skip; i < t.NumIn(); i++ {
		in := t.In(i)
		p := Parameter{Type: in}
		if in.Kind() == reflect.Slice && in.Elem().Kind() != reflect.Uint8 {
			p.Many = true
			p.Type = in.Elem()
		}
		params = append(params, p)
	}
	return params
}

// abstractionType extracts the abstraction key from an interface pointer like
// (*Motor)(nil). A pointer to a non-interface type is used as-is.
func abstractionType(iface interface{}) (reflect.Type, error) {
	if iface == nil {
		return nil, errors.New("abstraction must not be nil")
	}
	t := reflect.TypeOf(iface)
	if t.Kind() != reflect.Ptr {
		return nil, errors.Errorf("abstraction must be an interface pointer like (*Motor)(nil), got %s", t)
	}
	if t.Elem().Kind() == reflect.Interface {
		return t.Elem(), nil
	}
	return t, nil
}

func (c *Component) addAbstraction(iface interface{}, name, tag string) error {
	t, err := abstractionType(iface)
	if err != nil {
		return err
	}
	if !c.concrete.AssignableTo(t) {
		return errors.Errorf("%s is not assignable to abstraction %s", c.concrete, t)
	}
	c.abstractions = append(c.abstractions, Abstraction{Type: t, Name: name, Tag: tag})
	return nil
}

// As registers an additional abstraction the component satisfies. Pass an
// interface pointer: yoke.As((*Motor)(nil)).
func As(iface interface{}) ComponentOption {
	return func(c *Component) error { return c.addAbstraction(iface, "", "") }
}

// AsNamed registers an abstraction under a name discriminator.
func AsNamed(iface interface{}, name string) ComponentOption {
	return func(c *Component) error { return c.addAbstraction(iface, name, "") }
}

// AsTagged registers an abstraction under a tag discriminator.
func AsTagged(iface interface{}, tag string) ComponentOption {
	return func(c *Component) error { return c.addAbstraction(iface, "", tag) }
}

// Named sets the name discriminator of the component's self-registration.
func Named(name string) ComponentOption {
	return func(c *Component) error {
		c.abstractions[0].Name = name
		return nil
	}
}

// Tagged sets the tag discriminator of the component's self-registration.
func Tagged(tag string) ComponentOption {
	return func(c *Component) error {
		c.abstractions[0].Tag = tag
		return nil
	}
}

// WithLifetime sets the component's lifetime. The default is ObjectGraph.
func WithLifetime(l Lifetime) ComponentOption {
	return func(c *Component) error {
		c.lifetime = l
		return nil
	}
}

// AsDefault marks the component as the tie-break winner among ambiguous
// candidates for its abstractions.
func AsDefault() ComponentOption {
	return func(c *Component) error {
		c.isDefault = true
		return nil
	}
}

func (c *Component) paramAt(i int) (*Parameter, error) {
	if c.initializer == nil {
		return nil, errors.New("component has no initializer")
	}
	if i < 0 || i >= len(c.initializer.params) {
		return nil, errors.Errorf("constructor has no parameter %d", i)
	}
	return &c.initializer.params[i], nil
}

// ParamNamed restricts constructor parameter i to candidates registered under
// the given name.
func ParamNamed(i int, name string) ComponentOption {
	return func(c *Component) error {
		p, err := c.paramAt(i)
		if err != nil {
			return err
		}
		p.Name = name
		return nil
	}
}

// ParamTagged restricts constructor parameter i to candidates registered
// under the given tag.
func ParamTagged(i int, tag string) ComponentOption {
	return func(c *Component) error {
		p, err := c.paramAt(i)
		if err != nil {
			return err
		}
		p.Tag = tag
		return nil
	}
}

// ParamOptional marks constructor parameter i as optional: a missing or
// ambiguous match resolves to the zero value instead of failing.
func ParamOptional(i int) ComponentOption {
	return func(c *Component) error {
		p, err := c.paramAt(i)
		if err != nil {
			return err
		}
		p.Optional = true
		return nil
	}
}

// Inject appends a post-construction injection. The callable must have the
// form func(target *T, deps...) or func(target *T, deps...) error, where *T
// is the component's concrete type. Injections run in declaration order after
// the instance has been registered in its lifetime cache.
func Inject(fn interface{}, opts ...InjectOption) ComponentOption {
	return func(c *Component) error {
		sig, err := newInjection(fn, c.concrete)
		if err != nil {
			return err
		}
		for _, opt := range opts {
			if err := opt(sig); err != nil {
				return err
			}
		}
		c.injections = append(c.injections, sig)
		return nil
	}
}

func newInjection(fn interface{}, concrete reflect.Type) (*MethodSignature, error) {
	if fn == nil {
		return nil, errors.New("injection must not be nil")
	}

	v := reflect.ValueOf(fn)
	t := v.Type()

	if t.Kind() != reflect.Func {
		return nil, errors.Errorf("injection must be a function, got %s", t)
	}
	if t.IsVariadic() {
		return nil, errors.New("injection must not be variadic")
	}
	if t.NumIn() == 0 || t.In(0) != concrete {
		return nil, errors.Errorf("injection's first parameter must be the component's concrete type %s", concrete)
	}
	if t.NumOut() > 1 || (t.NumOut() == 1 && !t.Out(0).Implements(_errType)) {
		return nil, errors.New("injection must return nothing or an error")
	}

	return &MethodSignature{fn: v, params: paramsOf(t, 1)}, nil
}

// Late marks an injection as a cycle break point: it is permitted to resolve
// a dependency whose own construction transitively depends on the instance
// currently being injected into. The referencing instance is registered in
// its lifetime cache before injections run, which is what makes this safe.
func Late() InjectOption {
	return func(m *MethodSignature) error {
		m.late = true
		return nil
	}
}

func injectParamAt(m *MethodSignature, i int) (*Parameter, error) {
	if i < 0 || i >= len(m.params) {
		return nil, errors.Errorf("injection has no dependency parameter %d", i)
	}
	return &m.params[i], nil
}

// InjectParamNamed restricts the injection's dependency parameter i (counted
// after the target) to candidates registered under the given name.
func InjectParamNamed(i int, name string) InjectOption {
	return func(m *MethodSignature) error {
		p, err := injectParamAt(m, i)
		if err != nil {
			return err
		}
		p.Name = name
		return nil
	}
}

// InjectParamTagged restricts the injection's dependency parameter i to
// candidates registered under the given tag.
func InjectParamTagged(i int, tag string) InjectOption {
	return func(m *MethodSignature) error {
		p, err := injectParamAt(m, i)
		if err != nil {
			return err
		}
		p.Tag = tag
		return nil
	}
}

// InjectParamOptional marks the injection's dependency parameter i as
// optional.
func InjectParamOptional(i int) InjectOption {
	return func(m *MethodSignature) error {
		p, err := injectParamAt(m, i)
		if err != nil {
			return err
		}
		p.Optional = true
		return nil
	}
}
