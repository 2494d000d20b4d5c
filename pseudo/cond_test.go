package pseudo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// runFull executes instrs from pc 0 exactly like run, but exposes every
// register's final state instead of just RegA, so tests can plant markers
// inside a condition's guarded body.
func runFull(instrs []Instruction) map[Register]int {
	regs := map[Register]int{}
	pc := 0
	steps := 0
	for pc >= 0 && pc < len(instrs) {
		steps++
		if steps > 100000 {
			panic("program did not terminate")
		}
		instr := instrs[pc]
		switch instr.Op {
		case OpGet:
			regs[RegA] = regs[instr.Reg]
			pc++
		case OpPut:
			regs[instr.Reg] = regs[RegA]
			pc++
		case OpRst:
			regs[instr.Reg] = 0
			pc++
		case OpInc:
			regs[instr.Reg]++
			pc++
		case OpDec:
			regs[instr.Reg]--
			pc++
		case OpShl:
			regs[instr.Reg] *= 2
			pc++
		case OpShr:
			regs[instr.Reg] /= 2
			pc++
		case OpAdd:
			regs[RegA] += regs[instr.Reg]
			pc++
		case OpSub:
			regs[RegA] -= regs[instr.Reg]
			if regs[RegA] < 0 {
				regs[RegA] = 0
			}
			pc++
		case OpJump:
			pc = pc + instr.Offset
		case OpJpos:
			if regs[RegA] > 0 {
				pc = pc + instr.Offset
			} else {
				pc++
			}
		case OpJzero:
			if regs[RegA] == 0 {
				pc = pc + instr.Offset
			} else {
				pc++
			}
		default:
			panic("unsupported op in condition test runner")
		}
	}
	return regs
}

func TestEmitCondition(t *testing.T) {
	body := []Instruction{Inc(RegD), Inc(RegD)}
	marker := Inc(RegE)

	cases := []struct {
		op       CmpOp
		x, y     int
		wantBody bool
	}{
		{CmpGT, 5, 3, true}, {CmpGT, 3, 5, false}, {CmpGT, 4, 4, false},
		{CmpLT, 3, 5, true}, {CmpLT, 5, 3, false}, {CmpLT, 4, 4, false},
		{CmpGE, 5, 3, true}, {CmpGE, 4, 4, true}, {CmpGE, 3, 5, false},
		{CmpLE, 3, 5, true}, {CmpLE, 4, 4, true}, {CmpLE, 5, 3, false},
		{CmpEQ, 4, 4, true}, {CmpEQ, 4, 5, false}, {CmpEQ, 5, 4, false},
		{CmpNE, 4, 5, true}, {CmpNE, 5, 4, true}, {CmpNE, 4, 4, false},
	}
	for _, tc := range cases {
		instrs := EmitCondition(tc.op, Const(tc.x), Const(tc.y), Len(body))
		instrs = append(instrs, body...)
		instrs = append(instrs, marker)

		regs := runFull(instrs)
		assert.Equalf(t, 1, regs[RegE], "op=%d x=%d y=%d: marker must always run", tc.op, tc.x, tc.y)
		if tc.wantBody {
			assert.Equalf(t, 2, regs[RegD], "op=%d x=%d y=%d: body should have run", tc.op, tc.x, tc.y)
		} else {
			assert.Equalf(t, 0, regs[RegD], "op=%d x=%d y=%d: body should have been skipped", tc.op, tc.x, tc.y)
		}
	}
}

// runOnce executes instrs from pc 0 and stops the instant control returns to
// pc 0 a second time, reporting that as a backward loop-back, or stops when
// pc runs off the end, reporting that as a fall-through exit. x and y are
// fixed per case, so a real Repeat/Until loop here would spin forever; this
// lets the test see which way the single available branch goes without
// needing the fixture to ever actually converge.
func runOnce(instrs []Instruction) (regs map[Register]int, loopedBack bool) {
	regs = map[Register]int{}
	pc := 0
	seenZero := false
	steps := 0
	for {
		if pc < 0 || pc >= len(instrs) {
			return regs, false
		}
		if pc == 0 {
			if seenZero {
				return regs, true
			}
			seenZero = true
		}
		steps++
		if steps > 1000 {
			panic("program did not terminate")
		}
		instr := instrs[pc]
		switch instr.Op {
		case OpGet:
			regs[RegA] = regs[instr.Reg]
			pc++
		case OpPut:
			regs[instr.Reg] = regs[RegA]
			pc++
		case OpRst:
			regs[instr.Reg] = 0
			pc++
		case OpInc:
			regs[instr.Reg]++
			pc++
		case OpDec:
			regs[instr.Reg]--
			pc++
		case OpShl:
			regs[instr.Reg] *= 2
			pc++
		case OpShr:
			regs[instr.Reg] /= 2
			pc++
		case OpAdd:
			regs[RegA] += regs[instr.Reg]
			pc++
		case OpSub:
			regs[RegA] -= regs[instr.Reg]
			if regs[RegA] < 0 {
				regs[RegA] = 0
			}
			pc++
		case OpJump:
			pc = pc + instr.Offset
		case OpJpos:
			if regs[RegA] > 0 {
				pc = pc + instr.Offset
			} else {
				pc++
			}
		case OpJzero:
			if regs[RegA] == 0 {
				pc = pc + instr.Offset
			} else {
				pc++
			}
		default:
			panic("unsupported op in loop-back test runner")
		}
	}
}

func TestEmitUntilCondition(t *testing.T) {
	cases := []struct {
		op        CmpOp
		x, y      int
		wantExits bool
	}{
		{CmpGT, 5, 3, true}, {CmpGT, 3, 5, false},
		{CmpLT, 3, 5, true}, {CmpLT, 5, 3, false},
		{CmpGE, 5, 3, true}, {CmpGE, 4, 4, true}, {CmpGE, 3, 5, false},
		{CmpLE, 3, 5, true}, {CmpLE, 4, 4, true}, {CmpLE, 5, 3, false},
		{CmpEQ, 4, 4, true}, {CmpEQ, 4, 5, false},
		{CmpNE, 4, 5, true}, {CmpNE, 4, 4, false},
	}
	for _, tc := range cases {
		body := []Instruction{Inc(RegD)}
		marker := Inc(RegE)
		instrs := append([]Instruction{}, body...)
		instrs = append(instrs, EmitUntilCondition(tc.op, Const(tc.x), Const(tc.y), Len(body))...)
		instrs = append(instrs, marker)

		regs, loopedBack := runOnce(instrs)
		assert.Equalf(t, 1, regs[RegD], "op=%d x=%d y=%d: body must run once before the test", tc.op, tc.x, tc.y)
		assert.Equalf(t, tc.wantExits, !loopedBack, "op=%d x=%d y=%d", tc.op, tc.x, tc.y)
	}
}
