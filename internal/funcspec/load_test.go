package funcspec

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

const manifestSrc = `
function "min" {
  params  = [number, number]
  returns = [number]
}

function "min" {
  params  = [string, string]
  returns = [string]
}

function "cast" {
  template = true
  params   = [any]
  returns  = [any]
}

function "now" {
  returns = [number]
}
`

func TestLoad(t *testing.T) {
	ctx := context.Background()

	entries, err := Load(ctx, []byte(manifestSrc), "builtins.hcl")
	require.NoError(t, err)
	require.Len(t, entries, 4)

	minNum := entries[0]
	assert.Equal(t, "min", minNum.Name)
	require.Len(t, minNum.Params, 2)
	assert.True(t, minNum.Params[0].Equals(cty.Number))
	require.Len(t, minNum.Returns, 1)
	assert.True(t, minNum.Returns[0].Equals(cty.Number))
	assert.False(t, minNum.Template)

	minStr := entries[1]
	assert.Equal(t, "min", minStr.Name)
	assert.True(t, minStr.Params[0].Equals(cty.String))

	cast := entries[2]
	assert.True(t, cast.Template)
	require.Len(t, cast.Params, 1)
	assert.True(t, cast.Params[0].Equals(cty.DynamicPseudoType))

	now := entries[3]
	assert.Equal(t, "now", now.Name)
	assert.Empty(t, now.Params)
}

func TestLoadErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("syntax error", func(t *testing.T) {
		_, err := Load(ctx, []byte(`function "x" {`), "broken.hcl")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "broken.hcl")
	})

	t.Run("bad type expression", func(t *testing.T) {
		_, err := Load(ctx, []byte(`
function "x" {
  params = [integer]
}
`), "bad.hcl")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown primitive type")
		assert.Contains(t, err.Error(), `"x"`)
	})

	t.Run("params must be a list", func(t *testing.T) {
		_, err := Load(ctx, []byte(`
function "x" {
  params = number
}
`), "bad.hcl")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "list of type expressions")
	})
}

func TestLoadDir(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.hcl"), []byte(`
function "second" {
  params = [bool]
}
`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.hcl"), []byte(`
function "first" {
  params = [string]
}
`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	entries, err := LoadDir(ctx, dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Files load in sorted path order, so a.hcl comes first.
	assert.Equal(t, "first", entries[0].Name)
	assert.Equal(t, "second", entries[1].Name)
}
