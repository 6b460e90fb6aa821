package astutil

import (
	"fmt"
	"reflect"

	"github.com/ilcc/ilc/internal/ast"
	"github.com/ilcc/ilc/internal/lexer"
	"github.com/ilcc/ilc/internal/parser"
)

// Reparse lexes and parses src, the way the CLI's `ilc parse` path does.
// It returns the first parser error, if any, as a plain error.
func Reparse(src string) (*ast.Program, error) {
	l := lexer.New(src)
	p := parser.New(l)
	prog := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		return nil, fmt.Errorf("%s", errs[0].Error())
	}
	return prog, nil
}

// Isomorphic reports whether a and b have the same shape: same statement
// and expression kinds in the same order carrying equal literal values,
// names, and operators. Source spans and the semantic analyzer's
// ResolvedType annotations are deliberately ignored, since re-parsed text
// was never re-analyzed.
func Isomorphic(a, b *ast.Program) bool {
	return stmtListEq(a.Statements, b.Statements)
}

func stmtListEq(a, b []ast.Statement) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !stmtEq(a[i], b[i]) {
			return false
		}
	}
	return true
}

func stmtEq(a, b ast.Statement) bool {
	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false
	}
	switch x := a.(type) {
	case *ast.VarDecl:
		y := b.(*ast.VarDecl)
		return x.Name == y.Name && typeExprEq(x.Type, y.Type) && exprEqOpt(x.Init, y.Init)
	case *ast.ArrayDecl:
		y := b.(*ast.ArrayDecl)
		return x.Name == y.Name && typeExprEq(x.Type, y.Type)
	case *ast.TypeDecl:
		y := b.(*ast.TypeDecl)
		return x.Name == y.Name && typeExprEq(x.Type, y.Type)
	case *ast.RoutineDecl:
		y := b.(*ast.RoutineDecl)
		if x.Name != y.Name || len(x.Params) != len(y.Params) {
			return false
		}
		for i := range x.Params {
			if x.Params[i].Name != y.Params[i].Name || !typeExprEq(x.Params[i].Type, y.Params[i].Type) {
				return false
			}
		}
		if (x.ReturnType == nil) != (y.ReturnType == nil) {
			return false
		}
		if x.ReturnType != nil && !typeExprEq(x.ReturnType, y.ReturnType) {
			return false
		}
		return stmtListEq(x.Body, y.Body)
	case *ast.Assignment:
		y := b.(*ast.Assignment)
		return x.Target == y.Target && exprEqOpt(x.Index, y.Index) && exprEq(x.Value, y.Value)
	case *ast.IfStmt:
		y := b.(*ast.IfStmt)
		return exprEq(x.Cond, y.Cond) && stmtListEq(x.Then, y.Then) && stmtListEq(x.Else, y.Else)
	case *ast.WhileStmt:
		y := b.(*ast.WhileStmt)
		return exprEq(x.Cond, y.Cond) && stmtListEq(x.Body, y.Body)
	case *ast.ForLoop:
		y := b.(*ast.ForLoop)
		return x.Var == y.Var && x.Reverse == y.Reverse && exprEq(x.Start, y.Start) &&
			exprEq(x.End_, y.End_) && stmtListEq(x.Body, y.Body)
	case *ast.PrintStmt:
		y := b.(*ast.PrintStmt)
		return exprEq(x.Expr, y.Expr)
	case *ast.ReadStmt:
		y := b.(*ast.ReadStmt)
		return x.Var == y.Var
	case *ast.ReturnStmt:
		y := b.(*ast.ReturnStmt)
		return exprEqOpt(x.Expr, y.Expr)
	case *ast.RoutineCallStmt:
		y := b.(*ast.RoutineCallStmt)
		return x.Name == y.Name && exprListEq(x.Args, y.Args)
	case *ast.EmptyStmt:
		return true
	default:
		return a.String() == b.String()
	}
}

func exprEqOpt(a, b ast.Expression) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	if a == nil {
		return true
	}
	return exprEq(a, b)
}

func exprListEq(a, b []ast.Expression) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !exprEq(a[i], b[i]) {
			return false
		}
	}
	return true
}

func exprEq(a, b ast.Expression) bool {
	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false
	}
	switch x := a.(type) {
	case *ast.IntegerLit:
		return x.Value == b.(*ast.IntegerLit).Value
	case *ast.RealLit:
		return x.Value == b.(*ast.RealLit).Value
	case *ast.BooleanLit:
		return x.Value == b.(*ast.BooleanLit).Value
	case *ast.StringLit:
		return x.Value == b.(*ast.StringLit).Value
	case *ast.VarRef:
		return x.Name == b.(*ast.VarRef).Name
	case *ast.ArrayAccess:
		y := b.(*ast.ArrayAccess)
		return x.Name == y.Name && exprEq(x.Index, y.Index)
	case *ast.RecordAccess:
		y := b.(*ast.RecordAccess)
		return x.Field == y.Field && exprEq(x.Record, y.Record)
	case *ast.Unary:
		y := b.(*ast.Unary)
		return x.Op == y.Op && exprEq(x.Operand, y.Operand)
	case *ast.Binary:
		y := b.(*ast.Binary)
		return x.Op == y.Op && exprEq(x.Left, y.Left) && exprEq(x.Right, y.Right)
	case *ast.RoutineCall:
		y := b.(*ast.RoutineCall)
		return x.Name == y.Name && exprListEq(x.Args, y.Args)
	case *ast.TypeCast:
		y := b.(*ast.TypeCast)
		return typeExprEq(x.Target, y.Target) && exprEq(x.Expr, y.Expr)
	default:
		return a.String() == b.String()
	}
}

func typeExprEq(a, b ast.TypeExpr) bool {
	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false
	}
	switch x := a.(type) {
	case *ast.SimpleTypeExpr:
		return x.Name == b.(*ast.SimpleTypeExpr).Name
	case *ast.ArrayTypeExpr:
		y := b.(*ast.ArrayTypeExpr)
		return x.Size == y.Size && typeExprEq(x.Element, y.Element)
	case *ast.RecordTypeExpr:
		y := b.(*ast.RecordTypeExpr)
		if len(x.Fields) != len(y.Fields) {
			return false
		}
		for i := range x.Fields {
			if x.Fields[i].Name != y.Fields[i].Name || !typeExprEq(x.Fields[i].Type, y.Fields[i].Type) {
				return false
			}
		}
		return true
	default:
		return a.String() == b.String()
	}
}
