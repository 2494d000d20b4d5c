package pseudo

// EmitAssign stores the value produced by valueInstrs into the address
// produced by addrInstrs. The address is stashed in RegG before valueInstrs
// runs, since evaluating an expression is free to clobber RegA-RegF
// (spec.md §4.3).
func EmitAssign(addrInstrs, valueInstrs []Instruction) []Instruction {
	instrs := append([]Instruction{}, addrInstrs...)
	instrs = append(instrs, Put(RegG))
	instrs = append(instrs, valueInstrs...)
	instrs = append(instrs, Store(RegG))
	return instrs
}

// EmitRead stores the next input value into the address produced by
// addrInstrs.
func EmitRead(addrInstrs []Instruction) []Instruction {
	instrs := append([]Instruction{}, addrInstrs...)
	instrs = append(instrs, Put(RegG), Read(), Store(RegG))
	return instrs
}

// EmitWrite prints the value produced by valueInstrs.
func EmitWrite(valueInstrs []Instruction) []Instruction {
	instrs := append([]Instruction{}, valueInstrs...)
	instrs = append(instrs, Write())
	return instrs
}

// EmitIf assembles an IF command. With no else branch the condition skips
// straight over thenInstrs; with one, the condition skips over thenInstrs
// plus the unconditional jump that carries control past elseInstrs
// (spec.md §4.6).
func EmitIf(op CmpOp, lhs, rhs, thenInstrs, elseInstrs []Instruction, hasElse bool) []Instruction {
	if !hasElse {
		instrs := EmitCondition(op, lhs, rhs, Len(thenInstrs))
		return append(instrs, thenInstrs...)
	}
	instrs := EmitCondition(op, lhs, rhs, Len(thenInstrs)+1)
	instrs = append(instrs, thenInstrs...)
	instrs = append(instrs, Jump(1+Len(elseInstrs)))
	instrs = append(instrs, elseInstrs...)
	return instrs
}

// EmitWhile assembles a WHILE command: test, body, unconditional jump back
// to the test. The condition's false branch skips the body plus that
// trailing jump, exiting the loop (spec.md §4.6).
func EmitWhile(op CmpOp, lhs, rhs, bodyInstrs []Instruction) []Instruction {
	cond := EmitCondition(op, lhs, rhs, Len(bodyInstrs)+1)
	instrs := append([]Instruction{}, cond...)
	instrs = append(instrs, bodyInstrs...)
	backOwn := Len(cond) + Len(bodyInstrs)
	instrs = append(instrs, Jump(-backOwn))
	return instrs
}

// EmitRepeat assembles a REPEAT/UNTIL command: the body always runs once,
// then the condition decides whether to loop back to its start
// (spec.md §4.6).
func EmitRepeat(op CmpOp, lhs, rhs, bodyInstrs []Instruction) []Instruction {
	instrs := append([]Instruction{}, bodyInstrs...)
	test := EmitUntilCondition(op, lhs, rhs, Len(bodyInstrs))
	instrs = append(instrs, test...)
	return instrs
}
