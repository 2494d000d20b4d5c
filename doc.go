/*
Package gembalac compiles a small imperative language's abstract syntax
tree down to assembly text for an eight-register, word-addressed virtual
machine.

A program is an optional list of procedures followed by a main block.
Every declared name resolves to a scalar word or a fixed-size array of
words; procedures are inlined at each call site rather than compiled once
and invoked, with formal parameters bound by reference to the caller's own
storage. Compilation proceeds in four stages: alpha-renaming of
procedure-local identifiers to their fully-qualified name@proc form
(rename.go), memory layout and reference resolution against a symbol
table (symbols.go), lowering commands and expressions to a vector of
pseudo-instructions with self-relative branch offsets (package pseudo),
and a final textual pass that expands the inline arithmetic templates and
resolves every branch to an absolute line number (package asmtext).

Compile is the sole entry point. It either returns finished assembly text
plus any uninitialised-read warnings, or stops at the first compile error
encountered — there is no error recovery and no partial output.
*/
package gembalac
