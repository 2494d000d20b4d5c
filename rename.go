package gembalac

import (
	"fmt"

	"gembalac/ast"
)

// qualify turns a raw identifier name into its fully-qualified form for
// procedure proc. The main (global) scope passes proc == "" and qualify is
// the identity.
func qualify(name, proc string) string {
	if proc == "" {
		return name
	}
	return fmt.Sprintf("%s@%s", name, proc)
}

// renameProcedure returns a clone of proc's head and body with every
// identifier reference rewritten to its fully-qualified name@proc form.
// This is pure syntactic rewriting: it does not consult the symbol table,
// matching spec.md §4.2.
func renameProcedure(proc ast.Procedure) (ast.ProcedureHead, ast.Block) {
	name := proc.Head.Name

	head := proc.Head
	head.Args = make([]ast.ArgDecl, len(proc.Head.Args))
	for i, a := range proc.Head.Args {
		a.Name = qualify(a.Name, name)
		head.Args[i] = a
	}

	body := renameBlock(proc.Body, name)
	return head, body
}

func renameBlock(b ast.Block, proc string) ast.Block {
	out := ast.Block{
		Declarations: make([]ast.Declaration, len(b.Declarations)),
		Commands:     make([]ast.Command, len(b.Commands)),
	}
	for i, d := range b.Declarations {
		d.Name = qualify(d.Name, proc)
		out.Declarations[i] = d
	}
	for i, c := range b.Commands {
		out.Commands[i] = renameCommand(c, proc)
	}
	return out
}

func renameCommand(c ast.Command, proc string) ast.Command {
	switch c.Kind {
	case ast.CmdAssign:
		c.AssignTo = renameIdent(c.AssignTo, proc)
		c.AssignExpr = renameExpr(c.AssignExpr, proc)
	case ast.CmdIf:
		c.Cond = renameCond(c.Cond, proc)
		c.Then = renameCommands(c.Then, proc)
		if c.HasElse {
			c.Else = renameCommands(c.Else, proc)
		}
	case ast.CmdWhile, ast.CmdRepeat:
		c.Cond = renameCond(c.Cond, proc)
		c.Then = renameCommands(c.Then, proc)
	case ast.CmdProcCall:
		args := make([]string, len(c.ProcArgs))
		for i, a := range c.ProcArgs {
			args[i] = qualify(a, proc)
		}
		c.ProcArgs = args
	case ast.CmdRead:
		c.ReadTo = renameIdent(c.ReadTo, proc)
	case ast.CmdWrite:
		c.WriteValue = renameValue(c.WriteValue, proc)
	}
	return c
}

func renameCommands(cs []ast.Command, proc string) []ast.Command {
	out := make([]ast.Command, len(cs))
	for i, c := range cs {
		out[i] = renameCommand(c, proc)
	}
	return out
}

func renameExpr(e ast.Expression, proc string) ast.Expression {
	e.LHS = renameValue(e.LHS, proc)
	if e.Op != ast.ExprVal {
		e.RHS = renameValue(e.RHS, proc)
	}
	return e
}

func renameCond(c ast.Condition, proc string) ast.Condition {
	c.LHS = renameValue(c.LHS, proc)
	c.RHS = renameValue(c.RHS, proc)
	return c
}

func renameValue(v ast.Value, proc string) ast.Value {
	if v.Kind == ast.ValueIdent {
		v.Ident = renameIdent(v.Ident, proc)
	}
	return v
}

func renameIdent(id ast.Identifier, proc string) ast.Identifier {
	id.Name = qualify(id.Name, proc)
	if id.Kind == ast.IdentPidIndexed {
		id.IndexName = qualify(id.IndexName, proc)
	}
	return id
}
