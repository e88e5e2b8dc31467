// Package typeexpr parses HCL type expressions (e.g. `string`,
// `list(number)`, `object({a = bool})`) into their cty.Type equivalents.
// Function signature manifests and routine parameter declarations both use
// this form.
package typeexpr

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/vk/flowc/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
)

// Type converts an HCL type expression into its cty.Type equivalent.
func Type(ctx context.Context, expr hcl.Expression) (cty.Type, error) {
	logger := ctxlog.FromContext(ctx)

	if expr == nil {
		logger.Debug("Type expression is nil, defaulting to any.")
		return cty.DynamicPseudoType, nil
	}

	// A type switch over the concrete syntax forms is the correct way to
	// handle the various expression kinds behind the hcl.Expression interface.
	switch v := expr.(type) {
	case *hclsyntax.FunctionCallExpr:
		switch v.Name {
		case "list", "map", "set":
			if len(v.Args) != 1 {
				return cty.DynamicPseudoType, fmt.Errorf("type constructors (list, map, set) require exactly one argument, got %d", len(v.Args))
			}
			elementType, err := Type(ctx, v.Args[0])
			if err != nil {
				return cty.DynamicPseudoType, err
			}
			if elementType == cty.DynamicPseudoType {
				return cty.DynamicPseudoType, fmt.Errorf("collection types cannot contain type 'any'")
			}
			switch v.Name {
			case "list":
				return cty.List(elementType), nil
			case "map":
				return cty.Map(elementType), nil
			default:
				return cty.Set(elementType), nil
			}

		case "object":
			if len(v.Args) != 1 {
				return cty.DynamicPseudoType, fmt.Errorf("object type constructor requires exactly one argument, got %d", len(v.Args))
			}
			return objectType(ctx, v.Args[0])

		default:
			return cty.DynamicPseudoType, fmt.Errorf("unknown type constructor function %q", v.Name)
		}

	case *hclsyntax.ScopeTraversalExpr:
		// This handles primitive type identifiers like `string` or `number`.
		if len(v.Traversal) != 1 {
			return cty.DynamicPseudoType, fmt.Errorf("invalid type keyword: traversal path is not a single identifier")
		}
		switch rootName := v.Traversal.RootName(); rootName {
		case "string":
			return cty.String, nil
		case "number":
			return cty.Number, nil
		case "bool":
			return cty.Bool, nil
		case "any":
			return cty.DynamicPseudoType, nil
		default:
			return cty.DynamicPseudoType, fmt.Errorf("unknown primitive type %q", rootName)
		}

	default:
		return cty.DynamicPseudoType, fmt.Errorf("unsupported expression for type definition: %T", v)
	}
}

// objectType handles the `object({name = type, ...})` constructor argument.
func objectType(ctx context.Context, expr hcl.Expression) (cty.Type, error) {
	cons, ok := expr.(*hclsyntax.ObjectConsExpr)
	if !ok {
		return cty.DynamicPseudoType, fmt.Errorf("object type constructor requires an attribute map, got %T", expr)
	}

	attrs := make(map[string]cty.Type, len(cons.Items))
	for _, item := range cons.Items {
		name := hcl.ExprAsKeyword(item.KeyExpr)
		if name == "" {
			return cty.DynamicPseudoType, fmt.Errorf("object attribute names must be keywords")
		}
		attrType, err := Type(ctx, item.ValueExpr)
		if err != nil {
			return cty.DynamicPseudoType, fmt.Errorf("object attribute %q: %w", name, err)
		}
		attrs[name] = attrType
	}
	return cty.Object(attrs), nil
}

// Parse converts type-expression source text, e.g. "list(string)", into a
// cty.Type. The filename is used in diagnostics only.
func Parse(ctx context.Context, src, filename string) (cty.Type, error) {
	expr, diags := hclsyntax.ParseExpression([]byte(src), filename, hcl.InitialPos)
	if diags.HasErrors() {
		return cty.DynamicPseudoType, fmt.Errorf("parsing type expression %q: %w", src, diags)
	}
	return Type(ctx, expr)
}
