package graph

import (
	"context"

	"github.com/vk/flowc/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
)

// Builder is the only way to grow a graph. The statement compiler holds one
// per routine body it is compiling; the scope engine uses the same builder to
// synthesize boundary ports during capture.
type Builder struct {
	g *Graph
}

// NewBuilder returns a builder that appends to g.
func NewBuilder(g *Graph) *Builder {
	return &Builder{g: g}
}

// Graph returns the graph the builder appends to.
func (b *Builder) Graph() *Graph { return b.g }

// Const creates a literal node holding v and returns its value.
func (b *Builder) Const(ctx context.Context, v cty.Value) *Value {
	n := b.g.newNode(OpConst, v.Type())
	n.lit = v
	ctxlog.FromContext(ctx).Debug("Builder: created const node.", "graph", b.g.name, "node", n.String())
	return &Value{node: n}
}

// Op creates an operation node wired to the given argument values and
// returns its value. All arguments must belong to the builder's graph; the
// statement compiler guarantees this, so a mismatch is a programming error.
func (b *Builder) Op(ctx context.Context, op string, typ cty.Type, args ...*Value) *Value {
	ins := make([]*Node, len(args))
	for i, a := range args {
		if a.node.graph != b.g {
			panic("graph: operation argument belongs to a different graph")
		}
		ins[i] = a.node
	}
	n := b.g.newNode(op, typ, ins...)
	ctxlog.FromContext(ctx).Debug("Builder: created op node.", "graph", b.g.name, "node", n.String(), "args", len(args))
	return &Value{node: n}
}

// PassthroughInput appends a parameter port named name to the graph's
// interface and returns the value readable inside the graph. Used both for
// declared routine parameters and for read-captured outer variables.
func (b *Builder) PassthroughInput(ctx context.Context, name string, typ cty.Type) *Value {
	n := b.g.newNode(OpParam, typ)
	b.g.params = append(b.g.params, &Port{Name: name, Node: n})
	ctxlog.FromContext(ctx).Debug("Builder: synthesized input port.", "graph", b.g.name, "name", name, "type", typ.FriendlyName())
	return &Value{node: n}
}

// OutputPort appends a result port named name carrying val out of the graph
// and returns the pass-through value seen on the outside of the boundary.
func (b *Builder) OutputPort(ctx context.Context, name string, val *Value) *Value {
	if val.node.graph != b.g {
		panic("graph: output port value belongs to a different graph")
	}
	n := b.g.newNode(OpResult, val.Type(), val.node)
	b.g.results = append(b.g.results, &Port{Name: name, Node: n})
	ctxlog.FromContext(ctx).Debug("Builder: synthesized output port.", "graph", b.g.name, "name", name, "type", val.Type().FriendlyName())
	return &Value{node: n}
}
