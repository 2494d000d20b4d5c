package pseudo

// PlainAddress returns the instructions that leave a fixed memory address
// in RegA: the address of a scalar, a whole array, or a literally-indexed
// array element (the index having already been folded into addr by the
// caller).
func PlainAddress(addr int) []Instruction {
	return Const(addr)
}

// IndexedAddress returns the instructions that compute, at runtime, the
// address of an array element indexed by another scalar variable: load the
// index variable's value, then add it to the array's base address. The
// computed address is left in RegA; RegH is clobbered as scratch
// (spec.md §4.3).
func IndexedAddress(indexVarAddr, base int) []Instruction {
	instrs := Const(indexVarAddr)
	instrs = append(instrs, Load(RegA), Put(RegH))
	instrs = append(instrs, Const(base)...)
	instrs = append(instrs, Add(RegH))
	return instrs
}

// Deref returns the single instruction that turns an address sitting in
// RegA into the value stored there.
func Deref() Instruction {
	return Load(RegA)
}
