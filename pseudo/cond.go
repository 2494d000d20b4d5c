package pseudo

// CmpOp names one of the six comparisons, mirroring ast.CondOp without this
// package needing to import the ast package.
type CmpOp int

const (
	CmpEQ CmpOp = iota
	CmpNE
	CmpGT
	CmpLT
	CmpGE
	CmpLE
)

// EmitCondition evaluates lhs <op> rhs and branches past a block of length
// bodyLen when the comparison is false, landing on whatever the caller
// appends right after that block (spec.md §4.5). It relies on SUB's
// saturating-at-zero semantics: with d1 = lhs-rhs and d2 = rhs-lhs (at most
// one of the two is positive), GT/LT/GE/LE reduce to a single zero-test;
// EQ and NE need both.
func EmitCondition(op CmpOp, lhs, rhs []Instruction, bodyLen int) []Instruction {
	instrs := append([]Instruction{}, lhs...)
	instrs = append(instrs, Put(RegB))
	instrs = append(instrs, rhs...)
	instrs = append(instrs, Put(RegC))

	switch op {
	case CmpGT:
		// a>b: branch-if-positive straight into the body (skipping the
		// fall-through JUMP), else fall through to the JUMP that carries
		// control past it (spec.md §4.5, mirrored by the while-loop
		// prologue in scenario S4).
		instrs = append(instrs, Get(RegB), Sub(RegC), Jpos(2), Jump(1+bodyLen))
	case CmpLT: // symmetric to GT with operands swapped
		instrs = append(instrs, Get(RegC), Sub(RegB), Jpos(2), Jump(1+bodyLen))
	case CmpLE: // false (lhs>rhs) iff d1>0: branch-if-positive straight over the body
		instrs = append(instrs, Get(RegB), Sub(RegC), Jpos(1+bodyLen))
	case CmpGE: // false (lhs<rhs) iff d2>0: branch-if-positive straight over the body
		instrs = append(instrs, Get(RegC), Sub(RegB), Jpos(1+bodyLen))
	case CmpEQ: // false iff d1>0 or d2>0
		instrs = append(instrs, Get(RegB), Sub(RegC), Jpos(4+bodyLen))
		instrs = append(instrs, Get(RegC), Sub(RegB), Jpos(1+bodyLen))
	default: // CmpNE: false iff d1==0 and d2==0
		instrs = append(instrs, Get(RegB), Sub(RegC), Jpos(4))
		instrs = append(instrs, Get(RegC), Sub(RegB), Jzero(1+bodyLen))
	}
	return instrs
}

// EmitUntilCondition evaluates lhs <op> rhs after bodyLen instructions have
// already run, and branches backward to the start of that block (bodyLen
// lines before the first returned instruction) when the comparison is
// false — the
// Repeat/Until loop-back test (spec.md §4.6). Unlike EmitCondition it
// returns only the test instructions; the caller has already emitted the
// body.
func EmitUntilCondition(op CmpOp, lhs, rhs []Instruction, bodyLen int) []Instruction {
	instrs := append([]Instruction{}, lhs...)
	instrs = append(instrs, Put(RegB))
	instrs = append(instrs, rhs...)
	instrs = append(instrs, Put(RegC))
	pos := bodyLen + Len(instrs)

	back := func(ownPos int) int { return -ownPos }

	switch op {
	case CmpGT: // loop back while lhs<=rhs, i.e. d1==0
		instrs = append(instrs, Get(RegB), Sub(RegC), Jzero(back(pos+2)))
	case CmpLE: // loop back while lhs>rhs, i.e. d1>0
		instrs = append(instrs, Get(RegB), Sub(RegC), Jpos(back(pos+2)))
	case CmpLT: // loop back while lhs>=rhs, i.e. d2==0
		instrs = append(instrs, Get(RegC), Sub(RegB), Jzero(back(pos+2)))
	case CmpGE: // loop back while lhs<rhs, i.e. d2>0
		instrs = append(instrs, Get(RegC), Sub(RegB), Jpos(back(pos+2)))
	case CmpEQ: // loop back while d1>0 or d2>0
		instrs = append(instrs, Get(RegB), Sub(RegC), Jpos(back(pos+2)))
		instrs = append(instrs, Get(RegC), Sub(RegB), Jpos(back(pos+5)))
	default: // CmpNE: loop back while d1==0 and d2==0
		instrs = append(instrs, Get(RegB), Sub(RegC), Jpos(4))
		instrs = append(instrs, Get(RegC), Sub(RegB), Jzero(back(pos+5)))
	}
	return instrs
}
