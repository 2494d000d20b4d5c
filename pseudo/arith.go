package pseudo

// Fixed widths of the three arithmetic templates (spec.md §4.7, §4.9). These
// are an authoritative contract: every caller that reasons about jump
// offsets across a Mul/Div/Mod instruction must go through Len(), never a
// literal 1.
const (
	mulWidth = 18
	divWidth = 23
	modWidth = 24
)

// MulTemplate expands the MUL pseudo-instruction into its fixed 18-line
// shift-and-add block. Inputs are RegB (multiplicand) and RegC (multiplier);
// the product is left in RegA by the final instruction. RegD and RegE are
// used as the running accumulator and a shifted copy of the multiplier used
// to test its low bit.
//
// RegE is seeded from whatever is already in RegA when the block starts
// (the multiplier, left there by the caller's preceding "PUT c"), saving a
// redundant reload.
func MulTemplate() []Instruction {
	return []Instruction{
		Put(RegE),          // 0: e := c (seed bit-test scratch from the caller's leftover a)
		Rst(RegD),          // 1: d := 0
		Get(RegC),          // 2: LOOP: a := c
		Jzero(14),          // 3: if c == 0, done (target 17)
		Shr(RegE),          // 4: e := e >> 1
		Shl(RegE),          // 5: e := e << 1 (c's current low bit cleared)
		Get(RegC),          // 6: a := c
		Sub(RegE),          // 7: a := c - e (c's low bit, 0 or 1)
		Jzero(4),           // 8: if even, skip the add (target 12)
		Get(RegD),          // 9: a := d
		Add(RegB),          // 10: a := d + b
		Put(RegD),          // 11: d := a
		Shl(RegB),          // 12: SKIP_ADD: b := b << 1
		Shr(RegC),          // 13: c := c >> 1
		Get(RegC),          // 14: a := c (refresh bit-test scratch for next iteration)
		Put(RegE),          // 15: e := a
		Jump(-14),          // 16: back to LOOP (target 2)
		Get(RegD),          // 17: DONE: a := d
	}
}

// DivTemplate expands the DIV pseudo-instruction into its fixed 23-line
// restoring-division block. Inputs are RegB (dividend) and RegC (divisor);
// the quotient is left in RegA. Per spec.md §4.7, a zero divisor yields 0.
//
// RegE tracks the divisor scaled up by doubling; RegF tracks the matching
// power-of-two bit. The quotient itself is assembled MSB-first in RegD by
// shifting left once per restoring step and incrementing when that step
// subtracts — cheaper than re-adding RegF's value each time.
func DivTemplate() []Instruction {
	return []Instruction{
		Rst(RegD),          // 0: d := 0 (quotient)
		Jzero(21),          // 1: divisor == 0 (a still holds c): done with d=0 (target 22)
		Put(RegE),          // 2: e := c
		Rst(RegF),          // 3: f := 0
		Inc(RegF),          // 4: f := 1
		Shl(RegE),          // 5: SCALE: e := e << 1
		Shl(RegF),          // 6: f := f << 1
		Get(RegB),          // 7: a := b
		Sub(RegE),          // 8: a := b - e
		Jpos(-4),           // 9: while e < b, keep scaling (target 5)
		Shl(RegD),          // 10: RESTORE: d := d << 1 (room for the next bit)
		Get(RegE),          // 11: a := e
		Sub(RegB),          // 12: a := e - b
		Jpos(5),            // 13: if e > b, can't subtract (target 18)
		Get(RegB),          // 14: a := b
		Sub(RegE),          // 15: a := b - e
		Put(RegB),          // 16: b := a (subtract the scaled divisor out)
		Inc(RegD),          // 17: d := d + 1 (record the bit)
		Shr(RegE),          // 18: SKIP: e := e >> 1
		Shr(RegF),          // 19: f := f >> 1
		Get(RegF),          // 20: a := f
		Jpos(-11),          // 21: while f != 0, keep restoring (target 10)
		Get(RegD),          // 22: DONE: a := d
	}
}

// ModTemplate expands the MOD pseudo-instruction into its fixed 24-line
// block. Inputs are RegB (dividend) and RegC (divisor); the remainder is
// left in RegA. It mirrors DivTemplate's restoring loop but tracks no
// quotient, reading RegB itself out at the end; a zero divisor forces RegB
// to 0 before that read, one instruction DivTemplate does not need since
// its result register (RegD) already starts at zero regardless of path.
func ModTemplate() []Instruction {
	return []Instruction{
		Rst(RegE),          // 0: e := 0 (placeholder, overwritten below)
		Jzero(21),          // 1: divisor == 0 (a still holds c): target 22 (force b=0)
		Put(RegE),          // 2: e := c
		Rst(RegF),          // 3: f := 0
		Inc(RegF),          // 4: f := 1
		Get(RegE),          // 5: SCALE: a := e
		Sub(RegB),          // 6: a := e - b
		Jpos(4),            // 7: if e > b, stop scaling (target 11)
		Shl(RegE),          // 8: e := e << 1
		Shl(RegF),          // 9: f := f << 1
		Jump(-5),           // 10: back to SCALE (target 5)
		Get(RegF),          // 11: RESTORE: a := f
		Jzero(11),          // 12: if f == 0, done (target 23)
		Get(RegE),          // 13: a := e
		Sub(RegB),          // 14: a := e - b
		Jpos(4),            // 15: if e > b, can't subtract (target 19)
		Get(RegB),          // 16: a := b
		Sub(RegE),          // 17: a := b - e
		Put(RegB),          // 18: b := a
		Shr(RegE),          // 19: SKIP: e := e >> 1
		Shr(RegF),          // 20: f := f >> 1
		Jump(-10),          // 21: back to RESTORE (target 11)
		Rst(RegB),          // 22: ZERO: b := 0 (divisor was zero)
		Get(RegB),          // 23: DONE: a := b
	}
}
