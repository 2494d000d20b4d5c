// Package refmachine is a minimal, test-only interpreter for the assembly
// text produced by package asmtext. It exists so tests can execute a
// compiled program and assert on final register/memory state rather than
// pattern-matching the emitted text, without this repository taking on a
// dependency on the real target machine's execution semantics.
package refmachine

import (
	"fmt"
	"strconv"
	"strings"

	"gembalac/internal/mem"
)

// Machine holds the eight named registers, a word-addressed memory, and the
// input/output queues a READ/WRITE program consumes.
type Machine struct {
	Regs   map[byte]int
	Mem    mem.Ints
	Input  []int
	inPos  int
	Output []int

	steps    int
	maxSteps int
}

// New returns a machine ready to run a program against the given input
// queue. maxSteps bounds runaway programs (a defect in the compiler under
// test, not a property of the target machine); 0 picks a generous default.
func New(input []int, maxSteps int) *Machine {
	if maxSteps <= 0 {
		maxSteps = 1_000_000
	}
	return &Machine{
		Regs:     map[byte]int{'a': 0, 'b': 0, 'c': 0, 'd': 0, 'e': 0, 'f': 0, 'g': 0, 'h': 0},
		Input:    input,
		maxSteps: maxSteps,
	}
}

type line struct {
	mnemonic string
	reg      byte
	n        int
}

// Run parses and executes program, an assembly text as produced by
// asmtext.Emit, starting at line 0 and stopping at HALT.
func (m *Machine) Run(program string) error {
	lines, err := parse(program)
	if err != nil {
		return err
	}

	pc := 0
	for {
		if pc < 0 || pc >= len(lines) {
			return fmt.Errorf("refmachine: pc %d out of range [0,%d)", pc, len(lines))
		}
		m.steps++
		if m.steps > m.maxSteps {
			return fmt.Errorf("refmachine: exceeded %d steps, probable infinite loop", m.maxSteps)
		}

		ln := lines[pc]
		switch ln.mnemonic {
		case "HALT":
			return nil
		case "READ":
			if m.inPos >= len(m.Input) {
				return fmt.Errorf("refmachine: READ past end of input at line %d", pc)
			}
			m.Regs['a'] = m.Input[m.inPos]
			m.inPos++
			pc++
		case "WRITE":
			m.Output = append(m.Output, m.Regs['a'])
			pc++
		case "LOAD":
			v, err := m.Mem.Load(uint(m.Regs[ln.reg]))
			if err != nil {
				return err
			}
			m.Regs['a'] = v
			pc++
		case "STORE":
			if err := m.Mem.Stor(uint(m.Regs[ln.reg]), m.Regs['a']); err != nil {
				return err
			}
			pc++
		case "ADD":
			m.Regs['a'] += m.Regs[ln.reg]
			pc++
		case "SUB":
			m.Regs['a'] -= m.Regs[ln.reg]
			if m.Regs['a'] < 0 {
				m.Regs['a'] = 0
			}
			pc++
		case "GET":
			m.Regs['a'] = m.Regs[ln.reg]
			pc++
		case "PUT":
			m.Regs[ln.reg] = m.Regs['a']
			pc++
		case "RST":
			m.Regs[ln.reg] = 0
			pc++
		case "INC":
			m.Regs[ln.reg]++
			pc++
		case "DEC":
			m.Regs[ln.reg]--
			pc++
		case "SHL":
			m.Regs[ln.reg] *= 2
			pc++
		case "SHR":
			m.Regs[ln.reg] /= 2
			pc++
		case "JUMP":
			pc = ln.n
		case "JPOS":
			if m.Regs['a'] > 0 {
				pc = ln.n
			} else {
				pc++
			}
		case "JZERO":
			if m.Regs['a'] == 0 {
				pc = ln.n
			} else {
				pc++
			}
		default:
			return fmt.Errorf("refmachine: unknown mnemonic %q at line %d", ln.mnemonic, pc)
		}
	}
}

func parse(program string) ([]line, error) {
	raw := strings.Split(strings.TrimRight(program, "\n"), "\n")
	lines := make([]line, 0, len(raw))
	for i, text := range raw {
		fields := strings.Fields(text)
		if len(fields) == 0 {
			return nil, fmt.Errorf("refmachine: blank line %d", i)
		}
		ln := line{mnemonic: fields[0]}
		if len(fields) > 1 {
			switch ln.mnemonic {
			case "JUMP", "JPOS", "JZERO":
				n, err := strconv.Atoi(fields[1])
				if err != nil {
					return nil, fmt.Errorf("refmachine: bad target at line %d: %w", i, err)
				}
				ln.n = n
			default:
				ln.reg = fields[1][0]
			}
		}
		lines = append(lines, ln)
	}
	return lines, nil
}
