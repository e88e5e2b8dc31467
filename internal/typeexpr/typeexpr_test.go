package typeexpr

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func TestParse(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		src  string
		want cty.Type
	}{
		{"string", cty.String},
		{"number", cty.Number},
		{"bool", cty.Bool},
		{"any", cty.DynamicPseudoType},
		{"list(string)", cty.List(cty.String)},
		{"map(number)", cty.Map(cty.Number)},
		{"set(bool)", cty.Set(cty.Bool)},
		{"list(list(number))", cty.List(cty.List(cty.Number))},
		{"object({a = string, b = number})", cty.Object(map[string]cty.Type{"a": cty.String, "b": cty.Number})},
	}
	for _, tc := range cases {
		t.Run(tc.src, func(t *testing.T) {
			got, err := Parse(ctx, tc.src, "test.hcl")
			require.NoError(t, err)
			assert.True(t, tc.want.Equals(got), "want %s, got %s", tc.want.FriendlyName(), got.FriendlyName())
		})
	}
}

func TestParseErrors(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		name    string
		src     string
		wantErr string
	}{
		{"unknown primitive", "integer", "unknown primitive type"},
		{"unknown constructor", "tuple(string)", "unknown type constructor"},
		{"collection of any", "list(any)", "cannot contain type 'any'"},
		{"constructor arity", "list(string, number)", "exactly one argument"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(ctx, tc.src, "test.hcl")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestTypeNilExpression(t *testing.T) {
	got, err := Type(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, cty.DynamicPseudoType, got)
}
