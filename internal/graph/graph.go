package graph

import (
	"github.com/zclconf/go-cty/cty"
)

// Graph is one compiled routine body: a flat list of nodes plus the explicit
// parameter/result interface that connects the body to its caller. Ports are
// append-only for the lifetime of the graph; nothing is ever removed.
//
// A Graph is not safe for concurrent mutation. Compilation is single-threaded
// and call-stack-shaped, so no locking is needed.
type Graph struct {
	name    string
	parent  *Graph
	nodes   []*Node
	params  []*Port
	results []*Port
	nextID  int
}

// Port is a single entry in a graph's parameter or result interface.
type Port struct {
	// Name is the source-level identifier the port carries.
	Name string
	// Node anchors the port inside the graph: a param node for inputs, a
	// result node for outputs.
	Node *Node
}

// New creates an empty top-level graph.
func New(name string) *Graph {
	return &Graph{name: name}
}

// NewSubgraph creates an empty graph for a routine nested inside g.
func (g *Graph) NewSubgraph(name string) *Graph {
	return &Graph{name: name, parent: g}
}

// Name returns the graph's routine name.
func (g *Graph) Name() string { return g.name }

// Parent returns the enclosing graph, or nil for a top-level graph.
func (g *Graph) Parent() *Graph { return g.parent }

// Nodes returns all nodes in creation order.
func (g *Graph) Nodes() []*Node { return g.nodes }

// Params returns the parameter interface in declaration/capture order.
func (g *Graph) Params() []*Port { return g.params }

// Results returns the result interface in capture order.
func (g *Graph) Results() []*Port { return g.results }

// newNode allocates a node inside g and registers it.
func (g *Graph) newNode(op string, typ cty.Type, ins ...*Node) *Node {
	n := &Node{
		id:    g.nextID,
		op:    op,
		typ:   typ,
		graph: g,
		ins:   ins,
	}
	g.nextID++
	g.nodes = append(g.nodes, n)
	return n
}

// Value is the immutable handle the resolution engine stores and returns. It
// carries identity (the underlying node), a data type, and the owning graph;
// it is never mutated after creation.
type Value struct {
	node *Node
}

// Type returns the value's data type.
func (v *Value) Type() cty.Type { return v.node.typ }

// Graph returns the graph that owns the value.
func (v *Value) Graph() *Graph { return v.node.graph }

// Node returns the node the value refers to.
func (v *Value) Node() *Node { return v.node }
