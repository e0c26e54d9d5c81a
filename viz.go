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
	"io"

	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"
	"github.com/pkg/errors"
)

// Visualize writes the registered dependency graph to w in DOT format. Nodes
// are components labeled with their concrete type and lifetime; solid edges
// are initializer dependencies, dashed edges are injections. Useful for
// eyeballing a configuration that Validate rejected.
func (c *Container) Visualize(w io.Writer) error {
	g := graphviz.New()
	defer g.Close()

	graph, err := g.Graph()
	if err != nil {
		return errors.Wrap(err, "creating graph")
	}
	defer graph.Close()

	nodes := make(map[int]*cgraph.Node)
	for _, comp := range c.reg.allComponents() {
		n, err := graph.CreateNode(fmt.Sprintf("c%d", comp.order))
		if err != nil {
			return errors.Wrapf(err, "node for %s", comp)
		}
		n.SetLabel(fmt.Sprintf("%s\n%s", comp.concrete, comp.lifetime))
		nodes[comp.order] = n
	}

	for _, comp := range c.reg.allComponents() {
		for si, sig := range comp.signatures() {
			isInit := comp.initializer != nil && si == 0
			for _, p := range sig.params {
				if p.Type == _rawObjectType {
					continue
				}
				for _, cand := range c.reg.find(p.Type, p.Name, p.Tag, c.visible) {
					e, err := graph.CreateEdge("", nodes[comp.order], nodes[cand.order])
					if err != nil {
						return errors.Wrapf(err, "edge %s -> %s", comp, cand)
					}
					if !isInit {
						e.SetStyle(cgraph.DashedEdgeStyle)
					}
					if label := edgeLabel(p); label != "" {
						e.SetLabel(label)
					}
				}
			}
		}
	}

	return errors.Wrap(g.Render(graph, graphviz.Format("dot"), w), "rendering graph")
}

func edgeLabel(p Parameter) string {
	switch {
	case p.Name != "":
		return fmt.Sprintf("name %q", p.Name)
	case p.Tag != "":
		return fmt.Sprintf("tag %q", p.Tag)
	case p.Many:
		return "many"
	default:
		return ""
	}
}
