package funcspec

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/flowc/internal/ctxlog"
	"github.com/vk/flowc/internal/fsutil"
	"github.com/vk/flowc/internal/symtab"
	"github.com/vk/flowc/internal/typeexpr"
	"github.com/zclconf/go-cty/cty"
)

// Load parses one manifest from source text and returns its overload
// entries in declaration order. The filename is used in diagnostics only.
func Load(ctx context.Context, src []byte, filename string) ([]*symtab.FunctionEntry, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", filename, diags)
	}
	return decode(ctx, file, filename)
}

// LoadDir finds all .hcl manifests under rootPath and returns their entries,
// files in path order, entries in declaration order within each file.
func LoadDir(ctx context.Context, rootPath string) ([]*symtab.FunctionEntry, error) {
	logger := ctxlog.FromContext(ctx)

	files, err := fsutil.FindFilesByExtension(rootPath, ".hcl")
	if err != nil {
		return nil, fmt.Errorf("failed to find manifests in %s: %w", rootPath, err)
	}
	if len(files) == 0 {
		logger.Warn("No .hcl manifests found in path.", "path", rootPath)
	}

	parser := hclparse.NewParser()
	var entries []*symtab.FunctionEntry
	for _, path := range files {
		file, diags := parser.ParseHCLFile(path)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse manifest %s: %w", path, diags)
		}
		fileEntries, err := decode(ctx, file, path)
		if err != nil {
			return nil, err
		}
		entries = append(entries, fileEntries...)
	}
	logger.Debug("Loaded function manifests.", "path", rootPath, "files", len(files), "entries", len(entries))
	return entries, nil
}

// decode translates one parsed manifest file into overload entries.
func decode(ctx context.Context, file *hcl.File, filename string) ([]*symtab.FunctionEntry, error) {
	var manifest Manifest
	if diags := gohcl.DecodeBody(file.Body, nil, &manifest); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode manifest %s: %w", filename, diags)
	}

	entries := make([]*symtab.FunctionEntry, 0, len(manifest.Functions))
	for _, block := range manifest.Functions {
		params, err := typeList(ctx, block.Params)
		if err != nil {
			return nil, fmt.Errorf("function %q in %s: params: %w", block.Name, filename, err)
		}
		returns, err := typeList(ctx, block.Returns)
		if err != nil {
			return nil, fmt.Errorf("function %q in %s: returns: %w", block.Name, filename, err)
		}
		entries = append(entries, &symtab.FunctionEntry{
			Name:     block.Name,
			Params:   params,
			Returns:  returns,
			Template: block.Template,
		})
	}
	return entries, nil
}

// typeList translates a `[type, type, ...]` expression into cty types. A nil
// or absent expression means an empty list.
func typeList(ctx context.Context, expr hcl.Expression) ([]cty.Type, error) {
	if expr == nil {
		return nil, nil
	}
	items, diags := hcl.ExprList(expr)
	if diags.HasErrors() {
		return nil, fmt.Errorf("expected a list of type expressions: %w", diags)
	}
	types := make([]cty.Type, 0, len(items))
	for _, item := range items {
		typ, err := typeexpr.Type(ctx, item)
		if err != nil {
			return nil, err
		}
		types = append(types, typ)
	}
	return types, nil
}
