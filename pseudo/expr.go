package pseudo

// ArithOp names a binary arithmetic operator, mirroring ast.ExprOp without
// this package needing to import the ast package.
type ArithOp int

const (
	ArithAdd ArithOp = iota
	ArithSub
	ArithMul
	ArithDiv
	ArithMod
)

// EmitValue evaluates a bare operand (no operator): valueInstrs must
// already leave the operand's value in RegA.
func EmitValue(valueInstrs []Instruction) []Instruction {
	return valueInstrs
}

// EmitBinary evaluates lhs <op> rhs, leaving the result in RegA. lhs and
// rhs are each a self-contained instruction sequence that leaves its
// operand's value in RegA when run on its own (spec.md §4.4).
func EmitBinary(op ArithOp, lhs, rhs []Instruction) []Instruction {
	switch op {
	case ArithSub:
		// Sub is not commutative: materialise the second operand first so
		// the first operand's evaluation is the one sitting in A right
		// before the SUB.
		instrs := append(append([]Instruction{}, rhs...), Put(RegB))
		instrs = append(instrs, lhs...)
		instrs = append(instrs, Sub(RegB))
		return instrs
	case ArithMul, ArithDiv, ArithMod:
		instrs := append(append([]Instruction{}, lhs...), Put(RegB))
		instrs = append(instrs, rhs...)
		instrs = append(instrs, Put(RegC))
		switch op {
		case ArithMul:
			instrs = append(instrs, Mul())
		case ArithDiv:
			instrs = append(instrs, Div())
		default:
			instrs = append(instrs, Mod())
		}
		return instrs
	default: // ArithAdd, commutative
		instrs := append(append([]Instruction{}, lhs...), Put(RegB))
		instrs = append(instrs, rhs...)
		instrs = append(instrs, Add(RegB))
		return instrs
	}
}
