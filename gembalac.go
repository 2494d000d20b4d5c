// Package gembalac compiles the abstract syntax tree in package ast into
// assembly text for the eight-register word-addressed target machine
// (spec.md §1). Compile is the single entry point; everything else in this
// package is internal plumbing it drives.
package gembalac

import (
	"strings"

	"gembalac/asmtext"
	"gembalac/ast"
	"gembalac/pseudo"
)

// compiler holds the state threaded through one Compile call: the memory
// layout and initialisation tracking (symbols), the renamed procedure
// table keyed by unqualified name, and the warnings accumulated in
// emission order.
type compiler struct {
	sym        *symbols
	procedures map[string]renamedProc
	warnings   []Warning
}

type renamedProc struct {
	head ast.ProcedureHead
	body ast.Block
}

// Compile lowers prog to assembly text, returning any uninitialised-read
// warnings alongside it. Compilation stops at the first CompileError
// (spec.md §7); there is no error recovery or partial output.
func Compile(prog ast.Program) (string, []Warning, error) {
	c := &compiler{
		sym:        newSymbols(),
		procedures: make(map[string]renamedProc),
	}

	for _, p := range prog.Procedures {
		head, body := renameProcedure(p)
		if _, exists := c.procedures[head.Name]; exists {
			return "", nil, CompileError{Kind: ErrDuplicateProcedure, Name: head.Name, Pos: head.Pos}
		}
		c.procedures[head.Name] = renamedProc{head: head, body: body}
	}

	for _, d := range prog.Main.Declarations {
		if err := c.declareMain(d); err != nil {
			return "", nil, err
		}
	}

	instrs, err := c.emitCommands(prog.Main.Commands)
	if err != nil {
		return "", nil, err
	}

	return asmtext.Emit(instrs), c.warnings, nil
}

// declareMain installs a main-scope (unqualified) declaration, reporting
// ErrDuplicateVariable with the declaration's own position on collision.
func (c *compiler) declareMain(d ast.Declaration) error {
	var err error
	switch d.Kind {
	case ast.DeclArray:
		err = c.sym.declareArray(d.Name, d.Size)
	default:
		err = c.sym.declareScalar(d.Name)
	}
	if ce, ok := err.(CompileError); ok {
		ce.Pos = d.Pos
		return ce
	}
	return err
}

// emitCommands lowers a command list in order, threading warnings and
// symbol-table state through each command in turn.
func (c *compiler) emitCommands(cmds []ast.Command) ([]pseudo.Instruction, error) {
	var out []pseudo.Instruction
	for _, cmd := range cmds {
		instrs, err := c.emitCommand(cmd)
		if err != nil {
			return nil, err
		}
		out = append(out, instrs...)
	}
	return out, nil
}

func (c *compiler) emitCommand(cmd ast.Command) ([]pseudo.Instruction, error) {
	switch cmd.Kind {
	case ast.CmdAssign:
		addr, err := c.addrOf(cmd.AssignTo)
		if err != nil {
			return nil, err
		}
		expr, err := c.emitExpr(cmd.AssignExpr)
		if err != nil {
			return nil, err
		}
		c.sym.markInitialized(cmd.AssignTo.Name)
		return pseudo.EmitAssign(addr, expr), nil

	case ast.CmdRead:
		addr, err := c.addrOf(cmd.ReadTo)
		if err != nil {
			return nil, err
		}
		c.sym.markInitialized(cmd.ReadTo.Name)
		return pseudo.EmitRead(addr), nil

	case ast.CmdWrite:
		v, err := c.emitValue(cmd.WriteValue)
		if err != nil {
			return nil, err
		}
		return pseudo.EmitWrite(v), nil

	case ast.CmdIf:
		op, lhs, rhs, err := c.condOperands(cmd.Cond)
		if err != nil {
			return nil, err
		}
		then, err := c.emitCommands(cmd.Then)
		if err != nil {
			return nil, err
		}
		var els []pseudo.Instruction
		if cmd.HasElse {
			els, err = c.emitCommands(cmd.Else)
			if err != nil {
				return nil, err
			}
		}
		return pseudo.EmitIf(op, lhs, rhs, then, els, cmd.HasElse), nil

	case ast.CmdWhile:
		op, lhs, rhs, err := c.condOperands(cmd.Cond)
		if err != nil {
			return nil, err
		}
		body, err := c.emitCommands(cmd.Then)
		if err != nil {
			return nil, err
		}
		return pseudo.EmitWhile(op, lhs, rhs, body), nil

	case ast.CmdRepeat:
		// Body runs before the condition is ever evaluated, both at
		// runtime and for emission-order warnings, so it is lowered first.
		body, err := c.emitCommands(cmd.Then)
		if err != nil {
			return nil, err
		}
		op, lhs, rhs, err := c.condOperands(cmd.Cond)
		if err != nil {
			return nil, err
		}
		return pseudo.EmitRepeat(op, lhs, rhs, body), nil

	case ast.CmdProcCall:
		return c.emitProcCall(cmd)
	}
	panic("gembalac: unhandled command kind")
}

func (c *compiler) condOperands(cond ast.Condition) (pseudo.CmpOp, []pseudo.Instruction, []pseudo.Instruction, error) {
	lhs, err := c.emitValue(cond.LHS)
	if err != nil {
		return 0, nil, nil, err
	}
	rhs, err := c.emitValue(cond.RHS)
	if err != nil {
		return 0, nil, nil, err
	}
	return mapCondOp(cond.Op), lhs, rhs, nil
}

func (c *compiler) emitExpr(e ast.Expression) ([]pseudo.Instruction, error) {
	lhs, err := c.emitValue(e.LHS)
	if err != nil {
		return nil, err
	}
	if e.Op == ast.ExprVal {
		return pseudo.EmitValue(lhs), nil
	}
	rhs, err := c.emitValue(e.RHS)
	if err != nil {
		return nil, err
	}
	return pseudo.EmitBinary(mapExprOp(e.Op), lhs, rhs), nil
}

// emitValue lowers a literal or an identifier read. Identifier reads are
// checked against the initialisation set first, recording a warning
// without blocking emission (spec.md §3).
func (c *compiler) emitValue(v ast.Value) ([]pseudo.Instruction, error) {
	if v.Kind == ast.ValueNum {
		return pseudo.Const(v.Num), nil
	}
	c.checkRead(v.Ident)
	addr, err := c.addrOf(v.Ident)
	if err != nil {
		return nil, err
	}
	return append(addr, pseudo.Deref()), nil
}

func (c *compiler) checkRead(id ast.Identifier) {
	if !c.sym.isInitialized(id.Name) {
		c.warnings = append(c.warnings, Warning{Name: id.Name, Pos: id.Pos})
	}
	if id.Kind == ast.IdentPidIndexed && !c.sym.isInitialized(id.IndexName) {
		c.warnings = append(c.warnings, Warning{Name: id.IndexName, Pos: id.Pos})
	}
}

// addrOf resolves an identifier to the instructions that leave its address
// in RegA, enforcing the scalar/array/index shape rules of spec.md §3.
func (c *compiler) addrOf(id ast.Identifier) ([]pseudo.Instruction, error) {
	entry, ok := c.sym.lookup(id.Name)
	if !ok {
		return nil, CompileError{Kind: ErrUndeclaredVariable, Name: id.Name, Pos: id.Pos}
	}

	switch id.Kind {
	case ast.IdentPlain:
		if entry.kind != symScalar {
			return nil, CompileError{Kind: ErrIncorrectUseOfVariable, Name: id.Name, Pos: id.Pos}
		}
		return pseudo.PlainAddress(entry.addr), nil

	case ast.IdentNumIndexed:
		if entry.kind != symArray {
			return nil, CompileError{Kind: ErrIncorrectUseOfVariable, Name: id.Name, Pos: id.Pos}
		}
		if id.Index < 0 || id.Index >= entry.size {
			return nil, CompileError{Kind: ErrIndexOutOfBounds, Name: id.Name, Pos: id.Pos}
		}
		return pseudo.PlainAddress(entry.addr + id.Index), nil

	default: // ast.IdentPidIndexed
		if entry.kind != symArray {
			return nil, CompileError{Kind: ErrIncorrectUseOfVariable, Name: id.Name, Pos: id.Pos}
		}
		idxEntry, ok := c.sym.lookup(id.IndexName)
		if !ok {
			return nil, CompileError{Kind: ErrUndeclaredVariable, Name: id.IndexName, Pos: id.Pos}
		}
		if idxEntry.kind != symScalar {
			return nil, CompileError{Kind: ErrArrayUsedAsIndex, Name: id.IndexName, Pos: id.Pos}
		}
		return pseudo.IndexedAddress(idxEntry.addr, entry.addr), nil
	}
}

// emitProcCall inlines one call to a declared procedure: its locals are
// freshly laid out, its formals are bound by reference to the call's
// arguments, and its (already-renamed) body is lowered in place
// (spec.md §4.1, §4.6). A procedure is never compiled once and shared;
// each call site gets its own copy of the generated code.
func (c *compiler) emitProcCall(cmd ast.Command) ([]pseudo.Instruction, error) {
	proc, ok := c.procedures[cmd.ProcName]
	if !ok {
		return nil, CompileError{Kind: ErrUndeclaredProcedure, Name: cmd.ProcName, Pos: cmd.Pos}
	}
	if len(cmd.ProcArgs) != len(proc.head.Args) {
		return nil, CompileError{Kind: ErrWrongNumberOfArguments, Name: cmd.ProcName, Pos: cmd.Pos}
	}

	// A call with an argument already qualified for this callee is
	// recursive: renaming stamps "@proc" onto every name a procedure body
	// touches, so an argument naming one of the callee's own locals or
	// formals can only appear here if we are already somewhere inside a
	// call to that same procedure (spec.md §4.6, §9).
	suffix := "@" + proc.head.Name
	for _, a := range cmd.ProcArgs {
		if strings.HasSuffix(a, suffix) {
			return nil, CompileError{Kind: ErrRecursiveProcedureCall, Name: proc.head.Name, Pos: cmd.Pos}
		}
	}
	// A self-call passing no arguments carries no qualified name, so the
	// callee's body is also searched for a call to itself. A cycle through
	// another procedure is caught by neither check.
	var callsSelf func([]ast.Command) bool
	callsSelf = func(cmds []ast.Command) bool {
		for _, c := range cmds {
			if (c.Kind == ast.CmdProcCall && c.ProcName == proc.head.Name) || callsSelf(c.Then) || callsSelf(c.Else) {
				return true
			}
		}
		return false
	}
	if callsSelf(proc.body.Commands) {
		return nil, CompileError{Kind: ErrRecursiveProcedureCall, Name: proc.head.Name, Pos: cmd.Pos}
	}

	// A procedure's formals and locals share one scope (spec.md §9): seen
	// tracks every name declared in it so far, catching both a local that
	// shadows a formal and two locals sharing a name.
	seen := make(map[string]bool, len(proc.head.Args)+len(proc.body.Declarations))
	for _, f := range proc.head.Args {
		seen[f.Name] = true
	}
	for _, d := range proc.body.Declarations {
		if seen[d.Name] {
			return nil, CompileError{Kind: ErrDuplicateVariable, Name: d.Name, Pos: d.Pos}
		}
		seen[d.Name] = true
		switch d.Kind {
		case ast.DeclArray:
			c.sym.declareLocal(d.Name, symArray, d.Size)
		default:
			c.sym.declareLocal(d.Name, symScalar, 0)
		}
	}

	for i, argName := range cmd.ProcArgs {
		formal := proc.head.Args[i]
		argEntry, ok := c.sym.lookup(argName)
		if !ok {
			return nil, CompileError{Kind: ErrUndeclaredVariable, Name: argName, Pos: cmd.Pos}
		}
		wantArray := formal.Kind == ast.ArgArray
		if (argEntry.kind == symArray) != wantArray {
			return nil, CompileError{Kind: ErrWrongArgumentType, Name: formal.Name, Pos: cmd.Pos}
		}
		c.sym.alias(formal.Name, argEntry)
		if c.sym.isInitialized(argName) {
			c.sym.markInitialized(formal.Name)
		}
		// alias clears any stale initialisation bit the formal's qualified
		// name carried from a previous call, so a fresh false here is
		// correct when argName itself is not yet initialized.
	}

	return c.emitCommands(proc.body.Commands)
}

func mapCondOp(op ast.CondOp) pseudo.CmpOp {
	switch op {
	case ast.CondNE:
		return pseudo.CmpNE
	case ast.CondGT:
		return pseudo.CmpGT
	case ast.CondLT:
		return pseudo.CmpLT
	case ast.CondGE:
		return pseudo.CmpGE
	case ast.CondLE:
		return pseudo.CmpLE
	default:
		return pseudo.CmpEQ
	}
}

func mapExprOp(op ast.ExprOp) pseudo.ArithOp {
	switch op {
	case ast.ExprSub:
		return pseudo.ArithSub
	case ast.ExprMul:
		return pseudo.ArithMul
	case ast.ExprDiv:
		return pseudo.ArithDiv
	case ast.ExprMod:
		return pseudo.ArithMod
	default:
		return pseudo.ArithAdd
	}
}
