package symtab

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
)

// Kind enumerates the compile-error categories the engine can report. Every
// failure aborts compilation of the current unit; the engine never recovers
// locally.
type Kind int

const (
	// DuplicateDeclaration: a name is already bound in this scope's own
	// bindings (shadowing in a child scope is fine).
	DuplicateDeclaration Kind = iota
	// UndefinedVariable: the name is bound nowhere on the scope chain.
	UndefinedVariable
	// ConstAssignment: assignment to a name declared const.
	ConstAssignment
	// UndefinedFunction: no signature on the chain matches the call.
	UndefinedFunction
	// AmbiguousFunctionCall: more than one signature matches and the name is
	// not overload-agnostic.
	AmbiguousFunctionCall
	// GlobalOutsideTopScope: a global-table operation from a nested scope.
	GlobalOutsideTopScope
	// MissingGlobalValue: the root scope has no global under that name.
	MissingGlobalValue
)

func (k Kind) String() string {
	switch k {
	case DuplicateDeclaration:
		return "duplicate declaration"
	case UndefinedVariable:
		return "undefined variable"
	case ConstAssignment:
		return "assignment to constant"
	case UndefinedFunction:
		return "undefined function"
	case AmbiguousFunctionCall:
		return "ambiguous function call"
	case GlobalOutsideTopScope:
		return "global access outside top scope"
	case MissingGlobalValue:
		return "missing global value"
	default:
		return "unknown error"
	}
}

// Error is a compile error raised by the resolution engine. Subject carries
// the source location when the driver supplied one; a zero range means the
// location is unknown.
type Error struct {
	Kind    Kind
	Detail  string
	Subject hcl.Range
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

// Is reports kind-level equality, so callers can match against the exported
// sentinels with errors.Is without caring about message details.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind && t.Detail == ""
}

// Diagnostic converts the error into an hcl.Diagnostic for the driver's
// reporting layer.
func (e *Error) Diagnostic() *hcl.Diagnostic {
	diag := &hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  e.Kind.String(),
		Detail:   e.Detail,
	}
	if e.Subject != (hcl.Range{}) {
		rng := e.Subject
		diag.Subject = &rng
	}
	return diag
}

// Kind-level sentinels for errors.Is matching.
var (
	ErrDuplicateDeclaration  = &Error{Kind: DuplicateDeclaration}
	ErrUndefinedVariable     = &Error{Kind: UndefinedVariable}
	ErrConstAssignment       = &Error{Kind: ConstAssignment}
	ErrUndefinedFunction     = &Error{Kind: UndefinedFunction}
	ErrAmbiguousFunctionCall = &Error{Kind: AmbiguousFunctionCall}
	ErrGlobalOutsideTopScope = &Error{Kind: GlobalOutsideTopScope}
	ErrMissingGlobalValue    = &Error{Kind: MissingGlobalValue}
)

func newError(kind Kind, rng hcl.Range, format string, args ...any) *Error {
	return &Error{
		Kind:    kind,
		Detail:  fmt.Sprintf(format, args...),
		Subject: rng,
	}
}
