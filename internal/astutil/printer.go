// Package astutil provides a lossless pretty-printer for the AST and a
// round-trip helper for the isomorphism property of spec §8: parsing the
// printed form of a Program back through internal/lexer and
// internal/parser must yield a structurally equivalent tree.
//
// Node.String() methods in internal/ast are debug-oriented (an `if`
// prints "then ... end", eliding its branches) and are not meant to be
// reparsed. Sprint below walks the full tree instead, the way the
// teacher's pkg/printer renders a complete, reparseable source form.
package astutil

import (
	"strconv"
	"strings"

	"github.com/ilcc/ilc/internal/ast"
)

// Sprint renders prog as IL source text that internal/parser can read
// back into an isomorphic tree.
func Sprint(prog *ast.Program) string {
	var p printer
	p.stmtList(prog.Statements)
	return p.sb.String()
}

type printer struct {
	sb    strings.Builder
	depth int
}

func (p *printer) indent() string { return strings.Repeat("    ", p.depth) }

func (p *printer) stmtList(stmts []ast.Statement) {
	for _, s := range stmts {
		p.stmt(s)
	}
}

func (p *printer) stmt(s ast.Statement) {
	p.sb.WriteString(p.indent())
	switch n := s.(type) {
	case *ast.VarDecl:
		p.sb.WriteString("var " + n.Name + ": " + typeExpr(n.Type))
		if n.Init != nil {
			p.sb.WriteString(" is " + expr(n.Init))
		}
		p.sb.WriteString(";\n")
	case *ast.ArrayDecl:
		p.sb.WriteString("var " + n.Name + ": " + typeExpr(n.Type) + ";\n")
	case *ast.TypeDecl:
		p.sb.WriteString("type " + n.Name + " is " + typeExpr(n.Type) + ";\n")
	case *ast.RoutineDecl:
		p.routineDecl(n)
	case *ast.Assignment:
		if n.Index != nil {
			p.sb.WriteString(n.Target + "[" + expr(n.Index) + "] := " + expr(n.Value))
		} else {
			p.sb.WriteString(n.Target + " := " + expr(n.Value))
		}
		p.sb.WriteString(";\n")
	case *ast.IfStmt:
		p.ifStmt(n)
	case *ast.WhileStmt:
		p.sb.WriteString("while " + expr(n.Cond) + " loop\n")
		p.depth++
		p.stmtList(n.Body)
		p.depth--
		p.sb.WriteString(p.indent() + "end;\n")
	case *ast.ForLoop:
		dir := ""
		if n.Reverse {
			dir = "reverse "
		}
		p.sb.WriteString("for " + n.Var + " in " + dir + expr(n.Start) + ".." + expr(n.End_) + " loop\n")
		p.depth++
		p.stmtList(n.Body)
		p.depth--
		p.sb.WriteString(p.indent() + "end;\n")
	case *ast.PrintStmt:
		p.sb.WriteString("print(" + expr(n.Expr) + ");\n")
	case *ast.ReadStmt:
		p.sb.WriteString("read(" + n.Var + ");\n")
	case *ast.ReturnStmt:
		if n.Expr != nil {
			p.sb.WriteString("return " + expr(n.Expr) + ";\n")
		} else {
			p.sb.WriteString("return;\n")
		}
	case *ast.RoutineCallStmt:
		p.sb.WriteString(n.Name + "(" + exprList(n.Args) + ");\n")
	case *ast.EmptyStmt:
		p.sb.WriteString(";\n")
	default:
		p.sb.WriteString(s.String() + ";\n")
	}
}

func (p *printer) ifStmt(n *ast.IfStmt) {
	p.sb.WriteString("if " + expr(n.Cond) + " then\n")
	p.depth++
	p.stmtList(n.Then)
	p.depth--
	if n.Else != nil {
		p.sb.WriteString(p.indent() + "else\n")
		p.depth++
		p.stmtList(n.Else)
		p.depth--
	}
	p.sb.WriteString(p.indent() + "end;\n")
}

func (p *printer) routineDecl(n *ast.RoutineDecl) {
	params := make([]string, len(n.Params))
	for i, prm := range n.Params {
		params[i] = prm.Name + ": " + typeExpr(prm.Type)
	}
	p.sb.WriteString("routine " + n.Name + "(" + strings.Join(params, ", ") + ")")
	if n.ReturnType != nil {
		p.sb.WriteString(": " + typeExpr(n.ReturnType))
	}
	p.sb.WriteString(" is\n")
	p.depth++
	p.stmtList(n.Body)
	p.depth--
	p.sb.WriteString(p.indent() + "end;\n")
}

func typeExpr(t ast.TypeExpr) string {
	switch te := t.(type) {
	case *ast.SimpleTypeExpr:
		return te.Name
	case *ast.ArrayTypeExpr:
		return "array [" + strconv.Itoa(int(te.Size)) + "] " + typeExpr(te.Element)
	case *ast.RecordTypeExpr:
		var sb strings.Builder
		sb.WriteString("record ")
		for _, f := range te.Fields {
			sb.WriteString("var " + f.Name + ": " + typeExpr(f.Type) + "; ")
		}
		sb.WriteString("end")
		return sb.String()
	default:
		return t.String()
	}
}

func expr(e ast.Expression) string {
	switch n := e.(type) {
	case *ast.IntegerLit:
		return strconv.Itoa(int(n.Value))
	case *ast.RealLit:
		return strconv.FormatFloat(n.Value, 'g', -1, 64)
	case *ast.BooleanLit:
		return strconv.FormatBool(n.Value)
	case *ast.StringLit:
		return strconv.Quote(n.Value)
	case *ast.VarRef:
		return n.Name
	case *ast.ArrayAccess:
		return n.Name + "[" + expr(n.Index) + "]"
	case *ast.RecordAccess:
		return expr(n.Record) + "." + n.Field
	case *ast.Unary:
		if n.Op == ast.UnaryNot {
			return "not " + expr(n.Operand)
		}
		return "-" + expr(n.Operand)
	case *ast.Binary:
		return "(" + expr(n.Left) + " " + string(n.Op) + " " + expr(n.Right) + ")"
	case *ast.RoutineCall:
		return n.Name + "(" + exprList(n.Args) + ")"
	case *ast.TypeCast:
		return "(" + expr(n.Expr) + " as " + typeExpr(n.Target) + ")"
	default:
		return e.String()
	}
}

func exprList(args []ast.Expression) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = expr(a)
	}
	return strings.Join(parts, ", ")
}
