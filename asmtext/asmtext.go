// Package asmtext textualises a pseudo-instruction vector into the target
// machine's assembly format: one mnemonic per line, relative branch offsets
// resolved to absolute line numbers, and MUL/DIV/MOD expanded to their
// fixed-width blocks (spec.md §4.8).
package asmtext

import (
	"fmt"
	"strings"

	"gembalac/pseudo"
)

// Emit walks instrs in order and returns the finished assembly text,
// newline-terminated, with a trailing HALT. Jump/Jpos/Jzero offsets are
// resolved against the textual line index of the branch instruction itself,
// exactly as MUL/DIV/MOD's internal branches are once their block is
// flattened into the same walk.
func Emit(instrs []pseudo.Instruction) string {
	var lines []string
	var walk func([]pseudo.Instruction)
	walk = func(ins []pseudo.Instruction) {
		for _, instr := range ins {
			switch instr.Op {
			case pseudo.OpMul:
				walk(pseudo.MulTemplate())
			case pseudo.OpDiv:
				walk(pseudo.DivTemplate())
			case pseudo.OpMod:
				walk(pseudo.ModTemplate())
			case pseudo.OpJump, pseudo.OpJpos, pseudo.OpJzero:
				target := instr.Offset + len(lines)
				lines = append(lines, branchMnemonic(instr.Op, target))
			default:
				lines = append(lines, plainMnemonic(instr))
			}
		}
	}
	walk(instrs)
	lines = append(lines, "HALT")
	return strings.Join(lines, "\n") + "\n"
}

func branchMnemonic(op pseudo.Op, target int) string {
	return fmt.Sprintf("%s %d", branchNames[op], target)
}

func plainMnemonic(instr pseudo.Instruction) string {
	if name, ok := plainNames[instr.Op]; ok {
		return name
	}
	return fmt.Sprintf("%s %c", regNames[instr.Op], instr.Reg)
}

var branchNames = map[pseudo.Op]string{
	pseudo.OpJump:  "JUMP",
	pseudo.OpJpos:  "JPOS",
	pseudo.OpJzero: "JZERO",
}

var plainNames = map[pseudo.Op]string{
	pseudo.OpRead:  "READ",
	pseudo.OpWrite: "WRITE",
	pseudo.OpHalt:  "HALT",
}

var regNames = map[pseudo.Op]string{
	pseudo.OpLoad:  "LOAD",
	pseudo.OpStore: "STORE",
	pseudo.OpAdd:   "ADD",
	pseudo.OpSub:   "SUB",
	pseudo.OpGet:   "GET",
	pseudo.OpPut:   "PUT",
	pseudo.OpRst:   "RST",
	pseudo.OpInc:   "INC",
	pseudo.OpDec:   "DEC",
	pseudo.OpShl:   "SHL",
	pseudo.OpShr:   "SHR",
}
