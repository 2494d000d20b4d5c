// Package diagnostics maps the byte offsets recorded on ast.Pos fields
// back to 1-based source line numbers, for presenting compile errors and
// warnings to a user (spec.md §6). It is an offline counterpart to
// internal/fileinput's streaming scanner: the whole source is available up
// front, so the mapping is built once and queried by binary search rather
// than tracked incrementally.
package diagnostics

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"gembalac"
	"gembalac/internal/fileinput"
)

// SourceMap maps byte offsets into a source text to 1-based line numbers.
type SourceMap struct {
	lineStarts []int
}

// NewSourceMap scans source once, recording where each line begins.
// Scanning goes through internal/fileinput rather than a hand-rolled byte
// loop so line tracking matches the rest of this codebase's notion of a
// "line" exactly.
func NewSourceMap(source string) *SourceMap {
	sm := &SourceMap{lineStarts: []int{0}}
	in := fileinput.Input{Queue: []io.Reader{strings.NewReader(source)}}
	offset := 0
	for {
		r, n, err := in.ReadRune()
		if err != nil {
			break
		}
		offset += n
		if r == '\n' {
			sm.lineStarts = append(sm.lineStarts, offset)
		}
	}
	return sm
}

// LineOf returns the 1-based line number containing byte offset pos.
func (sm *SourceMap) LineOf(pos int) int {
	return sort.Search(len(sm.lineStarts), func(i int) bool {
		return sm.lineStarts[i] > pos
	})
}

// Locate formats a compile error with its source line, reusing
// CompileError.Error's own "@proc" stripping.
func Locate(err error, sm *SourceMap) string {
	if ce, ok := err.(gembalac.CompileError); ok {
		return fmt.Sprintf("line %d: %s", sm.LineOf(ce.Pos), ce.Error())
	}
	return err.Error()
}

// LocateWarning formats an uninitialised-read warning with its source line.
func LocateWarning(w gembalac.Warning, sm *SourceMap) string {
	return fmt.Sprintf("line %d: %s", sm.LineOf(w.Pos), w.String())
}
