package symtab

import (
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// FunctionEntry is one overload signature in a scope's function table.
type FunctionEntry struct {
	// Name is the function's source-level name; several entries may share it.
	Name string
	// Params are the declared parameter types in order.
	Params []cty.Type
	// Returns are the candidate return types the overload can produce.
	Returns []cty.Type
	// Template marks signatures that take an explicit type argument at the
	// call site, e.g. cast<number>(x).
	Template bool
}

// Signature renders the entry in call form, e.g. "min(number, number)".
func (f *FunctionEntry) Signature() string {
	params := make([]string, len(f.Params))
	for i, p := range f.Params {
		params[i] = p.FriendlyName()
	}
	return fmt.Sprintf("%s(%s)", f.Name, strings.Join(params, ", "))
}

// FunctionQuery describes a call site for overload resolution. Zero-valued
// optional fields mean "don't filter on this".
type FunctionQuery struct {
	// Name is the called function's name. Required.
	Name string
	// TemplateType is the explicit type argument, or cty.NilType when the
	// call has none. Its presence must match the entry's Template flag.
	TemplateType cty.Type
	// Returns, when non-empty, restricts matches to entries that can produce
	// one of these types.
	Returns []cty.Type
	// Args, when non-nil, restricts matches by arity and argument types.
	Args []cty.Type
	// StrictArgs requires exact argument types; when false, arguments that
	// cty can convert to the parameter type also match.
	StrictArgs bool
}

// String renders the attempted call for diagnostics, e.g. "min(number, bool)".
func (q FunctionQuery) String() string {
	if q.Args == nil {
		return q.Name + "(...)"
	}
	args := make([]string, len(q.Args))
	for i, a := range q.Args {
		args[i] = a.FriendlyName()
	}
	return fmt.Sprintf("%s(%s)", q.Name, strings.Join(args, ", "))
}

// overloadAgnostic lists function names whose overload choice is
// behaviorally irrelevant: every matching signature compiles to the same
// node, so an ambiguous match deterministically takes the first candidate.
var overloadAgnostic = map[string]bool{
	"print":  true,
	"trace":  true,
	"assert": true,
}

// matches reports whether the entry satisfies the query.
func (f *FunctionEntry) matches(q FunctionQuery) bool {
	if f.Name != q.Name {
		return false
	}
	if f.Template != (q.TemplateType != cty.NilType) {
		return false
	}
	if len(q.Returns) > 0 && !anyTypeCompatible(f.Returns, q.Returns) {
		return false
	}
	if q.Args != nil {
		if len(q.Args) != len(f.Params) {
			return false
		}
		for i, arg := range q.Args {
			if !argCompatible(arg, f.Params[i], q.StrictArgs) {
				return false
			}
		}
	}
	return true
}

// argCompatible checks one argument against one declared parameter.
func argCompatible(arg, param cty.Type, strict bool) bool {
	if param == cty.DynamicPseudoType || arg == cty.DynamicPseudoType {
		return true
	}
	if arg.Equals(param) {
		return true
	}
	if strict {
		return false
	}
	return convert.GetConversion(arg, param) != nil
}

// anyTypeCompatible reports whether any produced type satisfies any
// candidate type.
func anyTypeCompatible(produced, candidates []cty.Type) bool {
	for _, p := range produced {
		for _, c := range candidates {
			if p == cty.DynamicPseudoType || c == cty.DynamicPseudoType || p.Equals(c) {
				return true
			}
		}
	}
	return false
}

// AddFunction appends an overload signature to this scope's own table.
func (s *Scope) AddFunction(entry *FunctionEntry) {
	s.funcs = append(s.funcs, entry)
}

// Functions resolves q against the chain. It filters this scope's own list;
// only when the local list yields zero matches does it delegate the entire
// query to the parent, so resolution always completes at exactly one scope
// level and candidates are never merged across levels.
func (s *Scope) Functions(q FunctionQuery) []*FunctionEntry {
	var matches []*FunctionEntry
	for _, f := range s.funcs {
		if f.matches(q) {
			matches = append(matches, f)
		}
	}
	if len(matches) == 0 && s.parent != nil {
		return s.parent.Functions(q)
	}
	return matches
}

// Function resolves q to exactly one overload. Zero matches fail with
// UndefinedFunction naming the attempted signature; multiple matches fail
// with AmbiguousFunctionCall listing the candidates, unless the name is
// overload-agnostic, in which case the first match wins.
func (s *Scope) Function(q FunctionQuery, rng hcl.Range) (*FunctionEntry, error) {
	matches := s.Functions(q)
	switch len(matches) {
	case 0:
		return nil, newError(UndefinedFunction, rng, "no function matches %s", q)
	case 1:
		return matches[0], nil
	}
	if overloadAgnostic[q.Name] {
		return matches[0], nil
	}
	sigs := make([]string, len(matches))
	for i, m := range matches {
		sigs[i] = m.Signature()
	}
	return nil, newError(AmbiguousFunctionCall, rng, "%s matches multiple overloads: %s", q, strings.Join(sigs, "; "))
}
