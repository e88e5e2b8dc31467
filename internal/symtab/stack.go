package symtab

import (
	"context"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/flowc/internal/ctxlog"
	"github.com/vk/flowc/internal/graph"
	"github.com/zclconf/go-cty/cty"
)

// Param is one declared routine parameter in a GraphDescriptor.
type Param struct {
	Name string
	Type cty.Type
}

// GraphDescriptor describes the sub-routine interface handed to
// EnterGraphScope: the builder for the routine's own sub-graph plus its
// declared parameters, in order.
type GraphDescriptor struct {
	Builder *graph.Builder
	Params  []Param
}

// Stack is the driver-owned resolution context: the current-scope pointer
// plus the paired enter/exit operations that must mirror the driver's
// recursive descent. It is deliberately an injected object rather than
// package-level state, so independent compile runs and tests stay isolated.
//
// Enter and exit calls must nest in strict LIFO order. An out-of-order exit
// is a bug in the driver, not a recoverable compile error, so it panics.
type Stack struct {
	root    *Scope
	current *Scope
	globals map[string]*graph.Value
}

// NewStack returns a stack holding a single fresh root scope.
func NewStack() *Stack {
	root := newScope(blockScope, nil)
	return &Stack{
		root:    root,
		current: root,
		globals: make(map[string]*graph.Value),
	}
}

// Current returns the current scope.
func (st *Stack) Current() *Scope { return st.current }

// Reset reinitializes the stack to a single fresh root scope, discarding all
// bindings, functions, and globals, for starting an independent compile run.
func (st *Stack) Reset(ctx context.Context) {
	st.root = newScope(blockScope, nil)
	st.current = st.root
	st.globals = make(map[string]*graph.Value)
	ctxlog.FromContext(ctx).Debug("Stack: reset to fresh root scope.")
}

// EnterBlockScope pushes a transparent scope for a lexical block.
func (st *Stack) EnterBlockScope(ctx context.Context) {
	st.current = newScope(blockScope, st.current)
	ctxlog.FromContext(ctx).Debug("Stack: entered block scope.")
}

// ExitBlockScope pops the current block scope and restores its parent.
func (st *Stack) ExitBlockScope(ctx context.Context) {
	if st.current.parent == nil {
		panic("symtab: unbalanced scope nesting: exit of root scope")
	}
	if st.current.kind != blockScope {
		panic("symtab: unbalanced scope nesting: ExitBlockScope inside a graph scope")
	}
	st.current = st.current.parent
	ctxlog.FromContext(ctx).Debug("Stack: exited block scope.")
}

// EnterGraphScope pushes an interface-boundary scope for a routine body and
// seeds it with one binding per declared parameter, each wired through a
// pass-through input port on the routine's sub-graph.
func (st *Stack) EnterGraphScope(ctx context.Context, desc GraphDescriptor) error {
	s := newScope(graphScope, st.current)
	s.frame.builder = desc.Builder
	for _, p := range desc.Params {
		v := desc.Builder.PassthroughInput(ctx, p.Name, p.Type)
		if err := s.Declare(ctx, p.Name, v, false, hcl.Range{}); err != nil {
			return err
		}
	}
	st.current = s
	ctxlog.FromContext(ctx).Debug("Stack: entered graph scope.", "graph", desc.Builder.Graph().Name(), "params", len(desc.Params))
	return nil
}

// ExitGraphScope pops the current graph scope and returns its captured
// outputs: exactly the names write-captured since the matching enter. The
// engine does not wire these into the parent; re-assigning each returned
// name into the now-current scope is the driver's side of the contract.
func (st *Stack) ExitGraphScope(ctx context.Context) map[string]*graph.Value {
	if st.current.parent == nil {
		panic("symtab: unbalanced scope nesting: exit of root scope")
	}
	if st.current.kind != graphScope {
		panic("symtab: unbalanced scope nesting: ExitGraphScope inside a block scope")
	}
	outputs := st.current.frame.capturedOutputs
	st.current = st.current.parent
	ctxlog.FromContext(ctx).Debug("Stack: exited graph scope.", "captured_outputs", len(outputs))
	return outputs
}

// Declare binds name in the current scope.
func (st *Stack) Declare(ctx context.Context, name string, val *graph.Value, isConst bool, rng hcl.Range) error {
	return st.current.Declare(ctx, name, val, isConst, rng)
}

// Lookup resolves name from the current scope outward.
func (st *Stack) Lookup(ctx context.Context, name string, rng hcl.Range) (*graph.Value, error) {
	return st.current.Lookup(ctx, name, rng)
}

// Assign rebinds name from the current scope outward.
func (st *Stack) Assign(ctx context.Context, name string, val *graph.Value, rng hcl.Range) error {
	return st.current.Assign(ctx, name, val, rng)
}

// IsDeclared reports whether name resolves from the current scope.
func (st *Stack) IsDeclared(ctx context.Context, name string) bool {
	return st.current.IsDeclared(ctx, name)
}

// AddFunction appends an overload signature to the current scope's table.
func (st *Stack) AddFunction(entry *FunctionEntry) {
	st.current.AddFunction(entry)
}

// Functions resolves q from the current scope outward.
func (st *Stack) Functions(q FunctionQuery) []*FunctionEntry {
	return st.current.Functions(q)
}

// Function resolves q to exactly one overload from the current scope outward.
func (st *Stack) Function(q FunctionQuery, rng hcl.Range) (*FunctionEntry, error) {
	return st.current.Function(q, rng)
}

// AddGlobal records an externally supplied value in the root-only global
// table. Globals are write-once and must be supplied before compilation
// descends into any nested scope.
func (st *Stack) AddGlobal(name string, val *graph.Value, rng hcl.Range) error {
	if st.current.parent != nil {
		return newError(GlobalOutsideTopScope, rng, "global %q can only be added at the top scope", name)
	}
	if _, ok := st.globals[name]; ok {
		return newError(DuplicateDeclaration, rng, "global %q is already defined", name)
	}
	st.globals[name] = val
	return nil
}

// GetGlobal returns the global under name. Globals are reachable only
// directly from the root: a nested scope that needs one must have it
// supplied through ordinary declaration, the engine never walks to the root
// on its own.
func (st *Stack) GetGlobal(name string, rng hcl.Range) (*graph.Value, error) {
	if st.current.parent != nil {
		return nil, newError(GlobalOutsideTopScope, rng, "global %q is not reachable from a nested scope", name)
	}
	v, ok := st.globals[name]
	if !ok {
		return nil, newError(MissingGlobalValue, rng, "no value supplied for global %q", name)
	}
	return v, nil
}
