package graph

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
)

// Node op names for the structural node kinds the builder creates itself.
// Operation nodes carry whatever op name the statement compiler passes in.
const (
	OpParam  = "param"
	OpResult = "result"
	OpConst  = "const"
)

// Node is a single vertex in a dataflow graph: an operation, a literal, or
// one of the anchor nodes behind an interface port.
type Node struct {
	// id is unique within the owning graph and stable for its lifetime.
	id int
	// op names what the node does, e.g. "param", "const", "add".
	op string
	// typ is the data type of the value the node produces.
	typ cty.Type
	// graph is the graph the node belongs to. A node never moves.
	graph *Graph
	// ins are the wired input nodes, in operand order.
	ins []*Node
	// lit holds the literal for const nodes; cty.NilVal otherwise.
	lit cty.Value
}

// ID returns the node's graph-local identifier.
func (n *Node) ID() int { return n.id }

// Op returns the node's operation name.
func (n *Node) Op() string { return n.op }

// Type returns the data type of the value the node produces.
func (n *Node) Type() cty.Type { return n.typ }

// Graph returns the owning graph.
func (n *Node) Graph() *Graph { return n.graph }

// Inputs returns the wired input nodes in operand order.
func (n *Node) Inputs() []*Node { return n.ins }

// Literal returns the constant value of a const node, or cty.NilVal for any
// other node kind.
func (n *Node) Literal() cty.Value { return n.lit }

// String renders a short human-readable form, e.g. "add#3 in main".
func (n *Node) String() string {
	return fmt.Sprintf("%s#%d in %s", n.op, n.id, n.graph.name)
}
