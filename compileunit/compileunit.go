// Package compileunit decodes the JSON boundary format an external parser
// produces: source text paired with the ast.Program it parsed from it
// (spec.md §6). Nothing upstream of this package is this repository's
// concern; this is purely the wire format for handing a finished AST to
// the code generator.
package compileunit

import (
	"encoding/json"
	"io"

	"gembalac/ast"
)

// CompileUnit is one compilation's input: the original source (kept only
// for diagnostics line-mapping) and the AST parsed from it.
type CompileUnit struct {
	Source  string      `json:"source"`
	Program ast.Program `json:"program"`
}

// Decode reads one CompileUnit as JSON from r.
func Decode(r io.Reader) (CompileUnit, error) {
	var cu CompileUnit
	err := json.NewDecoder(r).Decode(&cu)
	return cu, err
}
