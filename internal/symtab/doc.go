// Package symtab implements nested-scope variable and function resolution
// for the flow compiler.
//
// # Why Symtab Package Exists
//
// Routine bodies compile into their own dataflow sub-graphs, which have no
// native closures: a sub-graph can only see values that arrive through its
// parameter ports and can only publish values through its result ports. When
// compiled code inside a routine references a variable owned by an enclosing
// scope, something has to synthesize the boundary ports that make the
// sub-graph behave as if it had captured the outer variable. That something
// is this package.
//
// # Responsibilities
//
//   - Scope: one level of the lexical chain; block scopes are transparent,
//     graph scopes are interface boundaries that capture on first use
//   - Stack: the driver-owned current-scope pointer with paired enter/exit
//     operations mirroring the driver's recursive descent
//   - Function table: per-scope overload lists resolved along the same chain
//   - Global table: root-only, write-once externally supplied values
//
// # Lifecycle
//
// The statement compiler (the driver) owns a Stack per compile run. It calls
// EnterBlockScope/ExitBlockScope and EnterGraphScope/ExitGraphScope around
// each lexical block or routine body, and Declare/Lookup/Assign while
// processing identifiers. The engine never initiates calls itself; enter and
// exit must pair in strict LIFO order, and a mismatched exit is a driver bug
// (panic), not a compile error.
package symtab
