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
	"time"

	"go.uber.org/yoke/yokeevent"
)

// _rawObjectType is the escape-hatch placeholder: parameters of this type are
// excluded from validation, the surrounding code wires them by hand.
var _rawObjectType = reflect.TypeOf((*interface{})(nil)).Elem()

type severity int

const (
	severityWarning severity = iota
	severityFailure
)

func (s severity) String() string {
	if s == severityFailure {
		return "failure"
	}
	return "warning"
}

type finding struct {
	severity severity
	comp     *Component
	message  string
}

// Validate statically checks that the registered configuration is resolvable:
// every declared dependency has a satisfiable candidate, and every cycle in
// the dependency graph has a valid break point. All findings are logged;
// nothing aborts. It returns true when no required dependency is unresolved
// and no cycle is unconstructible (and, under StrictValidation, when there
// are no warnings either).
func (c *Container) Validate() bool {
	start := time.Now()
	components := c.reg.allComponents()
	c.log(&yokeevent.ValidationStarted{ComponentCount: len(components)})

	findings := c.checkReachability()
	findings = append(findings, c.checkCycles()...)

	var warnings, failures int
	for _, f := range findings {
		if f.severity == severityFailure {
			failures++
		} else {
			warnings++
		}
		c.log(&yokeevent.ValidationFinding{
			Severity:  f.severity.String(),
			Component: f.comp.String(),
			Message:   f.message,
		})
	}

	ok := failures == 0
	if c.config.StrictValidation && warnings > 0 {
		ok = false
	}
	c.log(&yokeevent.ValidationDone{
		Succeeded: ok,
		Warnings:  warnings,
		Failures:  failures,
		Runtime:   time.Since(start),
	})
	return ok
}

// checkReachability classifies every parameter of every signature of every
// component: missing, only cache-satisfiable, or ambiguous. Missing and
// ambiguous findings on required parameters are failures; on optional
// parameters, and for cache-only and empty-many findings always, warnings.
func (c *Container) checkReachability() []finding {
	var findings []finding
	for _, comp := range c.reg.allComponents() {
		for si, sig := range comp.signatures() {
			where := describeSignature(comp, si)
			for pi, p := range sig.params {
				if f, ok := c.classifyParam(comp, p, where, pi); ok {
					findings = append(findings, f)
				}
			}
		}
	}
	return findings
}

func describeSignature(comp *Component, si int) string {
	if comp.initializer != nil {
		if si == 0 {
			return "initializer"
		}
		return fmt.Sprintf("injection %d", si-1)
	}
	return fmt.Sprintf("injection %d", si)
}

func (c *Container) classifyParam(comp *Component, p Parameter, where string, pi int) (finding, bool) {
	if p.Type == _rawObjectType {
		return finding{}, false
	}

	raw := c.reg.find(p.Type, p.Name, p.Tag, c.visible)

	if p.Many {
		// A many parameter tolerates any candidate count, including zero, so
		// an empty collection is never fatal. It is still worth a warning: a
		// typo'd abstraction would otherwise yield a silently empty slice.
		if len(raw) == 0 {
			return finding{
				severity: severityWarning,
				comp:     comp,
				message: fmt.Sprintf("%s parameter %d (%s) collects zero candidates",
					where, pi, describeRequest(p)),
			}, true
		}
		return finding{}, false
	}

	// A candidate with no initializer and no pre-built instance can only ever
	// be satisfied from cache; a prototype among them can never be cached at
	// all and is dead weight.
	var constructible, cacheOnly []*Component
	for _, cand := range raw {
		switch {
		case cand.initializer != nil || cand.hasInstance:
			constructible = append(constructible, cand)
		case cand.lifetime != Prototype:
			cacheOnly = append(cacheOnly, cand)
		}
	}

	requiredSeverity := severityFailure
	if p.Optional {
		requiredSeverity = severityWarning
	}

	switch {
	case len(constructible) == 0 && len(cacheOnly) == 0:
		return finding{
			severity: requiredSeverity,
			comp:     comp,
			message: fmt.Sprintf("missing dependency: %s parameter %d (%s) has no candidate",
				where, pi, describeRequest(p)),
		}, true
	case len(constructible) == 0:
		// Non-fatal even for required parameters: an instance may already be
		// materialized by the time this parameter is actually requested. The
		// validator cannot verify call order on its own.
		return finding{
			severity: severityWarning,
			comp:     comp,
			message: fmt.Sprintf("%s parameter %d (%s) is only cache-satisfiable: %d candidate(s) with no initializer",
				where, pi, describeRequest(p), len(cacheOnly)),
		}, true
	case len(constructible) > 1:
		var defaults int
		for _, cand := range constructible {
			if cand.isDefault {
				defaults++
			}
		}
		if defaults != 1 {
			return finding{
				severity: requiredSeverity,
				comp:     comp,
				message: fmt.Sprintf("ambiguous dependency: %s parameter %d (%s) has %d candidates and %d defaults",
					where, pi, describeRequest(p), len(constructible), defaults),
			}, true
		}
	}
	return finding{}, false
}

// depEdge is one candidate edge of the dependency graph: comp's signature
// parameter may be satisfied by to.
type depEdge struct {
	from, to    *Component
	initializer bool
	many        bool
	late        bool
}

func (c *Container) dependencyEdges() map[int][]depEdge {
	edges := make(map[int][]depEdge)
	for _, comp := range c.reg.allComponents() {
		for si, sig := range comp.signatures() {
			isInit := comp.initializer != nil && si == 0
			for _, p := range sig.params {
				if p.Type == _rawObjectType {
					continue
				}
				for _, cand := range c.reg.find(p.Type, p.Name, p.Tag, c.visible) {
					edges[comp.order] = append(edges[comp.order], depEdge{
						from:        comp,
						to:          cand,
						initializer: isInit,
						many:        p.Many,
						late:        sig.late,
					})
				}
			}
		}
	}
	return edges
}

// checkCycles runs a depth-first traversal from every component as a root. A
// cycle is evaluated only when the walk returns to the root of the current
// path; re-entering a non-root ancestor is left for that ancestor's own
// traversal. Cycles are deduplicated across roots by their member set.
func (c *Container) checkCycles() []finding {
	edges := c.dependencyEdges()
	seen := make(map[string]bool)

	var findings []finding
	for _, root := range c.reg.allComponents() {
		w := &cycleWalk{
			edges:  edges,
			root:   root,
			onPath: map[int]bool{root.order: true},
			seen:   seen,
		}
		w.walk(root)
		findings = append(findings, w.findings...)
	}
	return findings
}

type cycleWalk struct {
	edges    map[int][]depEdge
	root     *Component
	path     []depEdge
	onPath   map[int]bool
	seen     map[string]bool
	findings []finding
}

func (w *cycleWalk) walk(cur *Component) {
	for _, e := range w.edges[cur.order] {
		if e.to == w.root {
			w.evaluate(append(w.path, e))
			continue
		}
		if w.onPath[e.to.order] {
			continue
		}
		w.path = append(w.path, e)
		w.onPath[e.to.order] = true
		w.walk(e.to)
		w.onPath[e.to.order] = false
		w.path = w.path[:len(w.path)-1]
	}
}

// evaluate applies the cycle validity rules to one cyclic segment:
//
//  1. at least one edge must be an injection edge or a single-valued edge;
//  2. at least one discontinuity must exist: a late injection, or an
//     initializer edge collecting a many parameter;
//  3. not every participant may be a prototype.
//
// Violating any of the three is fatal. A mix of prototype and non-prototype
// participants is accepted with a warning: the prototype member will differ
// from the instance the other participants share.
func (w *cycleWalk) evaluate(cycle []depEdge) {
	key := cycleKey(cycle)
	if w.seen[key] {
		return
	}
	w.seen[key] = true

	var (
		breakableEdge bool
		discontinuity bool
		prototypes    int
	)
	for _, e := range cycle {
		if !e.initializer || !e.many {
			breakableEdge = true
		}
		if e.late || (e.initializer && e.many) {
			discontinuity = true
		}
		if e.from.lifetime == Prototype {
			prototypes++
		}
	}

	chain := cycleChain(cycle)
	switch {
	case !breakableEdge:
		w.fail(chain, "every edge is a many-collecting initializer parameter")
	case !discontinuity:
		w.fail(chain, "no late injection or many-collecting initializer breaks the construction order")
	case prototypes == len(cycle):
		w.fail(chain, "every participant is a prototype; the cycle can never close")
	case prototypes > 0:
		w.findings = append(w.findings, finding{
			severity: severityWarning,
			comp:     w.root,
			message: fmt.Sprintf("cycle %s mixes prototype and shared lifetimes; the prototype member will not be the instance the others share",
				chain),
		})
	}
}

func (w *cycleWalk) fail(chain, reason string) {
	w.findings = append(w.findings, finding{
		severity: severityFailure,
		comp:     w.root,
		message:  fmt.Sprintf("unconstructible cycle %s: %s", chain, reason),
	})
}

func cycleChain(cycle []depEdge) string {
	parts := make([]string, 0, len(cycle)+1)
	for _, e := range cycle {
		parts = append(parts, e.from.concrete.String())
	}
	parts = append(parts, cycle[0].from.concrete.String())
	return strings.Join(parts, " -> ")
}

// cycleKey canonicalizes a cycle to its edge sequence, rotated to its
// lexicographically smallest form. The same cycle found from different roots
// produces rotations of one sequence and is reported once; distinct cycles
// over the same participants (differing in which edges they take) stay
// distinct.
func cycleKey(cycle []depEdge) string {
	enc := make([]string, len(cycle))
	for i, e := range cycle {
		enc[i] = fmt.Sprintf("%d>%d:%t:%t:%t",
			e.from.order, e.to.order, e.initializer, e.many, e.late)
	}

	var best string
	for i := range enc {
		rot := strings.Join(append(append([]string(nil), enc[i:]...), enc[:i]...), ",")
		if best == "" || rot < best {
			best = rot
		}
	}
	return best
}
