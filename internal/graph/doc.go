// Package graph implements the dataflow intermediate representation that
// compiled routines target.
//
// # Why Graph Package Exists
//
// Every routine body in a flow script compiles into its own Graph: a set of
// operation nodes plus an explicit interface made of parameter ports (values
// flowing in) and result ports (values flowing out). Sub-graphs have no
// native closures, so any outer value a routine touches must enter and leave
// through that interface. The symtab package synthesizes those ports; this
// package owns the structures they are synthesized on.
//
// # Responsibilities
//
//   - Graph: one compiled routine body, with append-only param/result ports
//   - Node: a single operation, literal, or port anchor in a graph
//   - Value: the immutable handle (identity + type + owning graph) that the
//     resolution engine stores in its binding tables
//   - Builder: the only way to grow a graph; used by the statement compiler
//     and by scope capture
//
// # Lifecycle
//
// A Graph is created when compilation of a routine begins, grown through a
// Builder while the routine's statements compile, validated once at the end
// (Validate), and then treated as read-only by code emission.
package graph
