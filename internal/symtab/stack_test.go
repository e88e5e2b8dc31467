package symtab

import (
	"context"
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/flowc/internal/graph"
	"github.com/zclconf/go-cty/cty"
)

func TestGlobals(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	v := env.num(ctx, 1)
	require.NoError(t, env.stack.AddGlobal("threshold", v, hcl.Range{}))

	t.Run("readable at the root", func(t *testing.T) {
		got, err := env.stack.GetGlobal("threshold", hcl.Range{})
		require.NoError(t, err)
		assert.Same(t, v, got)
	})

	t.Run("write-once", func(t *testing.T) {
		err := env.stack.AddGlobal("threshold", env.num(ctx, 2), hcl.Range{})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrDuplicateDeclaration)
	})

	t.Run("missing name at root", func(t *testing.T) {
		_, err := env.stack.GetGlobal("ghost", hcl.Range{})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMissingGlobalValue)
	})

	t.Run("unreachable from nested scopes", func(t *testing.T) {
		env.stack.EnterBlockScope(ctx)
		defer env.stack.ExitBlockScope(ctx)

		_, err := env.stack.GetGlobal("threshold", hcl.Range{})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrGlobalOutsideTopScope)

		err = env.stack.AddGlobal("other", env.num(ctx, 3), hcl.Range{})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrGlobalOutsideTopScope)
	})
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	require.NoError(t, env.stack.Declare(ctx, "x", env.num(ctx, 1), false, hcl.Range{}))
	require.NoError(t, env.stack.AddGlobal("g", env.num(ctx, 2), hcl.Range{}))
	env.stack.AddFunction(entry("f", cty.Number))
	env.stack.EnterBlockScope(ctx)

	env.stack.Reset(ctx)

	assert.False(t, env.stack.IsDeclared(ctx, "x"))
	_, err := env.stack.GetGlobal("g", hcl.Range{})
	assert.ErrorIs(t, err, ErrMissingGlobalValue)
	assert.Empty(t, env.stack.Functions(FunctionQuery{Name: "f"}))
	assert.Nil(t, env.stack.Current().Parent(), "reset leaves a single fresh root")
}

func TestUnbalancedNestingPanics(t *testing.T) {
	ctx := context.Background()

	t.Run("block exit at root", func(t *testing.T) {
		env := newTestEnv()
		assert.Panics(t, func() { env.stack.ExitBlockScope(ctx) })
	})

	t.Run("graph exit at root", func(t *testing.T) {
		env := newTestEnv()
		assert.Panics(t, func() { env.stack.ExitGraphScope(ctx) })
	})

	t.Run("block exit inside a graph scope", func(t *testing.T) {
		env := newTestEnv()
		env.enterRoutine(ctx, t, "body")
		assert.Panics(t, func() { env.stack.ExitBlockScope(ctx) })
	})

	t.Run("graph exit inside a block scope", func(t *testing.T) {
		env := newTestEnv()
		env.stack.EnterBlockScope(ctx)
		assert.Panics(t, func() { env.stack.ExitGraphScope(ctx) })
	})
}

func TestErrorDiagnostic(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	rng := hcl.Range{
		Filename: "main.flow",
		Start:    hcl.Pos{Line: 3, Column: 5, Byte: 40},
		End:      hcl.Pos{Line: 3, Column: 9, Byte: 44},
	}
	_, err := env.stack.Lookup(ctx, "ghost", rng)
	require.Error(t, err)

	var serr *Error
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, rng, serr.Subject)

	diag := serr.Diagnostic()
	assert.Equal(t, hcl.DiagError, diag.Severity)
	assert.Equal(t, "undefined variable", diag.Summary)
	require.NotNil(t, diag.Subject)
	assert.Equal(t, rng, *diag.Subject)

	t.Run("zero range leaves the subject unset", func(t *testing.T) {
		_, err := env.stack.Lookup(ctx, "ghost", hcl.Range{})
		var serr *Error
		require.ErrorAs(t, err, &serr)
		assert.Nil(t, serr.Diagnostic().Subject)
	})
}

func TestStackIsolation(t *testing.T) {
	ctx := context.Background()

	// Two stacks never share state; the current-scope pointer is per-stack,
	// not process-wide.
	a := newTestEnv()
	b := newTestEnv()

	require.NoError(t, a.stack.Declare(ctx, "x", a.num(ctx, 1), false, hcl.Range{}))
	assert.False(t, b.stack.IsDeclared(ctx, "x"))

	a.stack.EnterBlockScope(ctx)
	assert.Nil(t, b.stack.Current().Parent())
	a.stack.ExitBlockScope(ctx)
}

func TestEnterGraphScopeSeedsThroughBuilder(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	sub := env.main.NewSubgraph("body")
	require.NoError(t, env.stack.EnterGraphScope(ctx, GraphDescriptor{
		Builder: graph.NewBuilder(sub),
		Params:  []Param{{Name: "n", Type: cty.Number}},
	}))
	defer env.stack.ExitGraphScope(ctx)

	got, err := env.stack.Lookup(ctx, "n", hcl.Range{})
	require.NoError(t, err)
	require.Len(t, sub.Params(), 1)
	assert.Same(t, sub.Params()[0].Node, got.Node())
}
