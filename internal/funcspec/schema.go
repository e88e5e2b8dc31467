// Package funcspec loads builtin function signatures from HCL manifests into
// the resolution engine's overload tables. Manifests look like:
//
//	function "min" {
//	  params  = [number, number]
//	  returns = [number]
//	}
//
//	function "cast" {
//	  template = true
//	  params   = [any]
//	  returns  = [any]
//	}
//
// Several blocks may share a name; each becomes one overload entry.
package funcspec

import (
	"github.com/hashicorp/hcl/v2"
)

// FunctionBlock is the schema for one `function` block in a manifest.
type FunctionBlock struct {
	Name     string         `hcl:"name,label"`
	Params   hcl.Expression `hcl:"params,optional"`
	Returns  hcl.Expression `hcl:"returns,optional"`
	Template bool           `hcl:"template,optional"`
}

// Manifest is the top-level structure of a signature manifest file.
type Manifest struct {
	Functions []*FunctionBlock `hcl:"function,block"`
}
