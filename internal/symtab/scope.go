package symtab

import (
	"context"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/flowc/internal/ctxlog"
	"github.com/vk/flowc/internal/graph"
)

// scopeKind tags the two scope variants. They share one struct and one set
// of operations; only capture behavior diverges, keyed off the tag.
type scopeKind int

const (
	// blockScope is transparent: lookups and assignments pass straight
	// through to the parent.
	blockScope scopeKind = iota
	// graphScope is an interface boundary: crossing it synthesizes
	// pass-through ports on the owning sub-graph.
	graphScope
)

// Scope is one level of the lexical chain: a binding table, a const-name
// set, and a non-owning parent link used for lookup only. Graph scopes
// additionally carry a capture frame.
type Scope struct {
	kind   scopeKind
	parent *Scope
	vars   map[string]*graph.Value
	consts map[string]struct{}
	funcs  []*FunctionEntry

	// frame is non-nil exactly when kind == graphScope.
	frame *captureFrame
}

// captureFrame holds the per-graph-scope capture state. The two caches are
// deliberately kept apart from the ordinary bindings map: captured values
// are visible to lookup/assign but are not checked by Declare's duplicate
// guard. Downstream graph generation relies on exactly this behavior.
type captureFrame struct {
	builder         *graph.Builder
	capturedInputs  map[string]*graph.Value
	capturedOutputs map[string]*graph.Value
}

func newScope(kind scopeKind, parent *Scope) *Scope {
	s := &Scope{
		kind:   kind,
		parent: parent,
		vars:   make(map[string]*graph.Value),
		consts: make(map[string]struct{}),
	}
	if kind == graphScope {
		s.frame = &captureFrame{
			capturedInputs:  make(map[string]*graph.Value),
			capturedOutputs: make(map[string]*graph.Value),
		}
	}
	return s
}

// Parent returns the enclosing scope, or nil at the root.
func (s *Scope) Parent() *Scope { return s.parent }

// Declare binds name to val in this scope's own bindings. It fails with
// DuplicateDeclaration if the name is already bound here; the same name may
// legally shadow a binding at an outer nesting level.
func (s *Scope) Declare(ctx context.Context, name string, val *graph.Value, isConst bool, rng hcl.Range) error {
	if _, ok := s.vars[name]; ok {
		return newError(DuplicateDeclaration, rng, "variable %q is already declared in this scope", name)
	}
	s.vars[name] = val
	if isConst {
		s.consts[name] = struct{}{}
	}
	ctxlog.FromContext(ctx).Debug("Scope: declared variable.", "name", name, "const", isConst)
	return nil
}

// Lookup resolves name against this scope and its ancestors. Crossing a
// graph-scope boundary on the way up read-captures the outer value: a
// pass-through input port is synthesized once per name per scope lifetime,
// and every later lookup of the same name returns the cached port value.
//
// The parent is always consulted before the capture cache, so each nesting
// level re-resolves independently and multi-level nesting produces one port
// per level.
//
// Known limitation: ascent order ignores declaration order across sibling
// branches, so a captured outer name can resolve ahead of a same-named
// local that an unrelated sibling branch declares later. Changing this
// would change which ports existing programs get; leave as is until the
// resolution order is revisited.
func (s *Scope) Lookup(ctx context.Context, name string, rng hcl.Range) (*graph.Value, error) {
	if v, ok := s.vars[name]; ok {
		return v, nil
	}
	if s.parent == nil {
		return nil, newError(UndefinedVariable, rng, "variable %q is not defined", name)
	}
	outer, err := s.parent.Lookup(ctx, name, rng)
	if err != nil {
		return nil, err
	}
	if s.kind != graphScope {
		return outer, nil
	}
	if v, ok := s.frame.capturedInputs[name]; ok {
		return v, nil
	}
	in := s.frame.builder.PassthroughInput(ctx, name, outer.Type())
	s.frame.capturedInputs[name] = in
	ctxlog.FromContext(ctx).Debug("Scope: read-captured outer variable.", "name", name, "graph", s.frame.builder.Graph().Name())
	return in, nil
}

// Assign rebinds name to val. A locally bound const fails with
// ConstAssignment; a locally bound mutable is overwritten in place. A name
// not bound locally write-captures at a graph-scope boundary: the first
// assignment synthesizes an output port, later assignments only rebind the
// cached entry. Write capture neither requires a prior read of the name nor
// propagates further up the chain; carrying the captured output into the
// parent scope is the driver's job at exit time.
func (s *Scope) Assign(ctx context.Context, name string, val *graph.Value, rng hcl.Range) error {
	if _, ok := s.vars[name]; ok {
		if _, isConst := s.consts[name]; isConst {
			return newError(ConstAssignment, rng, "cannot assign to constant %q", name)
		}
		s.vars[name] = val
		return nil
	}
	if s.kind == graphScope {
		if _, ok := s.frame.capturedOutputs[name]; ok {
			s.frame.capturedOutputs[name] = val
			return nil
		}
		out := s.frame.builder.OutputPort(ctx, name, val)
		s.frame.capturedOutputs[name] = out
		ctxlog.FromContext(ctx).Debug("Scope: write-captured variable.", "name", name, "graph", s.frame.builder.Graph().Name())
		return nil
	}
	if s.parent == nil {
		return newError(UndefinedVariable, rng, "variable %q is not defined", name)
	}
	return s.parent.Assign(ctx, name, val, rng)
}

// IsDeclared reports whether name resolves anywhere on the chain. It is
// Lookup wrapped to return a boolean instead of an error, side effects
// included: probing an outer name from inside a graph scope captures it.
func (s *Scope) IsDeclared(ctx context.Context, name string) bool {
	_, err := s.Lookup(ctx, name, hcl.Range{})
	return err == nil
}
