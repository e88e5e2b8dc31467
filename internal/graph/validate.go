package graph

import (
	"context"
	"fmt"

	"github.com/vk/flowc/internal/ctxlog"
)

// Validate checks the structural integrity of a finished graph: every wired
// input must belong to the same graph, and the dataflow edges must form a
// DAG. It returns a non-nil error naming the first offending node.
//
// Builders cannot normally produce a cycle, but code emission relies on a
// topological order existing, so the check runs once after compilation the
// same way cycle detection runs after dependency linking.
func (g *Graph) Validate(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	for _, n := range g.nodes {
		for _, in := range n.ins {
			if in.graph != g {
				return fmt.Errorf("node %s wired to foreign node %s", n, in)
			}
		}
	}

	// Classic depth-first search with two sets:
	// permanent: nodes fully visited and known to be cycle-free.
	// temporary: nodes in the recursion stack of the current traversal.
	permanent := make(map[int]bool)
	temporary := make(map[int]bool)

	var visit func(n *Node) error
	visit = func(n *Node) error {
		if permanent[n.id] {
			return nil
		}
		if temporary[n.id] {
			return fmt.Errorf("cycle detected involving node %s", n)
		}

		temporary[n.id] = true
		for _, in := range n.ins {
			if err := visit(in); err != nil {
				return err
			}
		}
		delete(temporary, n.id)
		permanent[n.id] = true

		return nil
	}

	for _, n := range g.nodes {
		if !permanent[n.id] {
			if err := visit(n); err != nil {
				return err
			}
		}
	}

	logger.Debug("Validate: graph is well-formed.", "graph", g.name, "nodes", len(g.nodes))
	return nil
}
