package parser

import (
	"testing"

	"github.com/ilcc/ilc/internal/ast"
	"github.com/ilcc/ilc/internal/lexer"
)

func parseProgram(t *testing.T, src string) *ast.Program {
	t.Helper()
	p := New(lexer.New(src))
	prog := p.ParseProgram()
	if errs := p.Errors(); len(errs) != 0 {
		t.Fatalf("unexpected parse error for %q: %v", src, errs[0])
	}
	return prog
}

func parseProgramExpectError(t *testing.T, src string) *ParserError {
	t.Helper()
	p := New(lexer.New(src))
	p.ParseProgram()
	errs := p.Errors()
	if len(errs) == 0 {
		t.Fatalf("expected a parse error for %q, got none", src)
	}
	return errs[0]
}

func TestParseVarDecl(t *testing.T) {
	prog := parseProgram(t, "var x: integer is 5;")
	if len(prog.Statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(prog.Statements))
	}
	decl, ok := prog.Statements[0].(*ast.VarDecl)
	if !ok {
		t.Fatalf("expected *ast.VarDecl, got %T", prog.Statements[0])
	}
	if decl.Name != "x" || decl.Type.String() != "integer" {
		t.Fatalf("unexpected decl: %+v", decl)
	}
	lit, ok := decl.Init.(*ast.IntegerLit)
	if !ok || lit.Value != 5 {
		t.Fatalf("expected initializer 5, got %v", decl.Init)
	}
}

func TestParseVarDeclNoInitializer(t *testing.T) {
	prog := parseProgram(t, "var x: boolean;")
	decl := prog.Statements[0].(*ast.VarDecl)
	if decl.Init != nil {
		t.Fatalf("expected no initializer, got %v", decl.Init)
	}
}

func TestParseArrayDecl(t *testing.T) {
	prog := parseProgram(t, "var a: array [10] integer;")
	decl, ok := prog.Statements[0].(*ast.ArrayDecl)
	if !ok {
		t.Fatalf("expected *ast.ArrayDecl, got %T", prog.Statements[0])
	}
	if decl.Name != "a" || decl.Type.Size != 10 || decl.Type.Element.String() != "integer" {
		t.Fatalf("unexpected decl: %+v", decl.Type)
	}
}

func TestParseTypeDeclRecord(t *testing.T) {
	prog := parseProgram(t, "type Point is record x: integer; y: integer end;")
	decl, ok := prog.Statements[0].(*ast.TypeDecl)
	if !ok {
		t.Fatalf("expected *ast.TypeDecl, got %T", prog.Statements[0])
	}
	rec, ok := decl.Type.(*ast.RecordTypeExpr)
	if !ok || len(rec.Fields) != 2 {
		t.Fatalf("expected a 2-field record, got %+v", decl.Type)
	}
	if rec.Fields[0].Name != "x" || rec.Fields[1].Name != "y" {
		t.Fatalf("unexpected field order: %+v", rec.Fields)
	}
}

func TestParseTypeDeclArray(t *testing.T) {
	prog := parseProgram(t, "type Row is array [3] real;")
	decl := prog.Statements[0].(*ast.TypeDecl)
	arr, ok := decl.Type.(*ast.ArrayTypeExpr)
	if !ok || arr.Size != 3 {
		t.Fatalf("expected array[3] real, got %+v", decl.Type)
	}
}

func TestParseRoutineDecl(t *testing.T) {
	prog := parseProgram(t, "routine add(a: integer, b: integer): integer is return a + b end;")
	decl, ok := prog.Statements[0].(*ast.RoutineDecl)
	if !ok {
		t.Fatalf("expected *ast.RoutineDecl, got %T", prog.Statements[0])
	}
	if decl.Name != "add" || len(decl.Params) != 2 || decl.ReturnType.String() != "integer" {
		t.Fatalf("unexpected decl: %+v", decl)
	}
	if len(decl.Body) != 1 {
		t.Fatalf("expected 1 body statement, got %d", len(decl.Body))
	}
	ret, ok := decl.Body[0].(*ast.ReturnStmt)
	if !ok {
		t.Fatalf("expected return statement, got %T", decl.Body[0])
	}
	bin, ok := ret.Expr.(*ast.Binary)
	if !ok || bin.Op != ast.OpAdd {
		t.Fatalf("expected a+b, got %v", ret.Expr)
	}
}

func TestParseRoutineDeclVoidNoParams(t *testing.T) {
	prog := parseProgram(t, "routine greet() is print(1) end;")
	decl := prog.Statements[0].(*ast.RoutineDecl)
	if decl.ReturnType != nil {
		t.Fatalf("expected void routine, got return type %v", decl.ReturnType)
	}
	if len(decl.Params) != 0 {
		t.Fatalf("expected no params, got %v", decl.Params)
	}
}

func TestParseAssignmentSimple(t *testing.T) {
	prog := parseProgram(t, "x := 1 + 2;")
	a, ok := prog.Statements[0].(*ast.Assignment)
	if !ok {
		t.Fatalf("expected *ast.Assignment, got %T", prog.Statements[0])
	}
	if a.Target != "x" || a.Index != nil {
		t.Fatalf("unexpected assignment: %+v", a)
	}
}

func TestParseAssignmentArrayIndex(t *testing.T) {
	prog := parseProgram(t, "a[i] := 0;")
	a := prog.Statements[0].(*ast.Assignment)
	if a.Target != "a" || a.Index == nil {
		t.Fatalf("expected indexed assignment to 'a', got %+v", a)
	}
}

func TestParseAssignmentRecordField(t *testing.T) {
	prog := parseProgram(t, "p.x := 1;")
	a := prog.Statements[0].(*ast.Assignment)
	if a.Target != "p.x" {
		t.Fatalf("expected target 'p.x', got %q", a.Target)
	}
}

func TestParseCallStatement(t *testing.T) {
	prog := parseProgram(t, "doStuff(1, 2);")
	call, ok := prog.Statements[0].(*ast.RoutineCallStmt)
	if !ok {
		t.Fatalf("expected *ast.RoutineCallStmt, got %T", prog.Statements[0])
	}
	if call.Name != "doStuff" || len(call.Args) != 2 {
		t.Fatalf("unexpected call: %+v", call)
	}
}

func TestParseIfElse(t *testing.T) {
	prog := parseProgram(t, "if x > 0 then print(1) else print(2) end;")
	ifs, ok := prog.Statements[0].(*ast.IfStmt)
	if !ok {
		t.Fatalf("expected *ast.IfStmt, got %T", prog.Statements[0])
	}
	if len(ifs.Then) != 1 || len(ifs.Else) != 1 {
		t.Fatalf("expected one statement per branch, got then=%d else=%d", len(ifs.Then), len(ifs.Else))
	}
}

func TestParseIfNoElse(t *testing.T) {
	prog := parseProgram(t, "if x then print(1) end;")
	ifs := prog.Statements[0].(*ast.IfStmt)
	if ifs.Else != nil {
		t.Fatalf("expected nil else branch, got %v", ifs.Else)
	}
}

func TestParseWhile(t *testing.T) {
	prog := parseProgram(t, "while x > 0 loop x := x - 1 end;")
	w, ok := prog.Statements[0].(*ast.WhileStmt)
	if !ok || len(w.Body) != 1 {
		t.Fatalf("unexpected while: %+v", prog.Statements[0])
	}
}

func TestParseForReverse(t *testing.T) {
	prog := parseProgram(t, "for i in reverse 1 .. 10 loop print(i) end;")
	f, ok := prog.Statements[0].(*ast.ForLoop)
	if !ok || !f.Reverse || f.Var != "i" {
		t.Fatalf("unexpected for: %+v", prog.Statements[0])
	}
}

func TestParseForAscending(t *testing.T) {
	prog := parseProgram(t, "for i in 1 .. 10 loop print(i) end;")
	f := prog.Statements[0].(*ast.ForLoop)
	if f.Reverse {
		t.Fatal("expected ascending for-loop")
	}
}

func TestParseReturnBare(t *testing.T) {
	prog := parseProgram(t, "routine f() is return end;")
	decl := prog.Statements[0].(*ast.RoutineDecl)
	ret := decl.Body[0].(*ast.ReturnStmt)
	if ret.Expr != nil {
		t.Fatalf("expected bare return, got %v", ret.Expr)
	}
}

func TestParseReadStmt(t *testing.T) {
	prog := parseProgram(t, "read(x);")
	r, ok := prog.Statements[0].(*ast.ReadStmt)
	if !ok || r.Var != "x" {
		t.Fatalf("unexpected read statement: %+v", prog.Statements[0])
	}
}

func TestParseExpressionPrecedence(t *testing.T) {
	prog := parseProgram(t, "x := 1 + 2 * 3;")
	a := prog.Statements[0].(*ast.Assignment)
	bin := a.Value.(*ast.Binary)
	if bin.Op != ast.OpAdd {
		t.Fatalf("expected '+' at the top, got %v", bin.Op)
	}
	rhs, ok := bin.Right.(*ast.Binary)
	if !ok || rhs.Op != ast.OpMul {
		t.Fatalf("expected '*' nested on the right, got %v", bin.Right)
	}
}

func TestParseExpressionLogicalPrecedence(t *testing.T) {
	prog := parseProgram(t, "x := a = b and c or d;")
	a := prog.Statements[0].(*ast.Assignment)
	top := a.Value.(*ast.Binary)
	if top.Op != ast.OpOr {
		t.Fatalf("expected 'or' at the top, got %v", top.Op)
	}
	left, ok := top.Left.(*ast.Binary)
	if !ok || left.Op != ast.OpAnd {
		t.Fatalf("expected 'and' nested under 'or', got %v", top.Left)
	}
}

func TestParseUnaryMinusNotLexed(t *testing.T) {
	prog := parseProgram(t, "x := -5;")
	a := prog.Statements[0].(*ast.Assignment)
	u, ok := a.Value.(*ast.Unary)
	if !ok || u.Op != ast.UnaryNeg {
		t.Fatalf("expected a parser-level unary minus, got %T", a.Value)
	}
}

func TestParseNotFactor(t *testing.T) {
	prog := parseProgram(t, "x := not y;")
	a := prog.Statements[0].(*ast.Assignment)
	u, ok := a.Value.(*ast.Unary)
	if !ok || u.Op != ast.UnaryNot {
		t.Fatalf("expected unary not, got %T", a.Value)
	}
}

func TestParseParenthesizedExpression(t *testing.T) {
	prog := parseProgram(t, "x := (1 + 2) * 3;")
	a := prog.Statements[0].(*ast.Assignment)
	bin := a.Value.(*ast.Binary)
	if bin.Op != ast.OpMul {
		t.Fatalf("expected '*' at the top, got %v", bin.Op)
	}
	if _, ok := bin.Left.(*ast.Binary); !ok {
		t.Fatalf("expected a parenthesized '+' on the left, got %T", bin.Left)
	}
}

func TestParseArrayAccessExpression(t *testing.T) {
	prog := parseProgram(t, "x := a[0] + 1;")
	a := prog.Statements[0].(*ast.Assignment)
	bin := a.Value.(*ast.Binary)
	acc, ok := bin.Left.(*ast.ArrayAccess)
	if !ok || acc.Name != "a" {
		t.Fatalf("expected array access on the left, got %T", bin.Left)
	}
}

func TestParseRecordAccessExpression(t *testing.T) {
	prog := parseProgram(t, "x := p.height;")
	a := prog.Statements[0].(*ast.Assignment)
	rec, ok := a.Value.(*ast.RecordAccess)
	if !ok || rec.Field != "height" {
		t.Fatalf("expected record access on 'height', got %T", a.Value)
	}
}

func TestParseCallExpression(t *testing.T) {
	prog := parseProgram(t, "x := square(4);")
	a := prog.Statements[0].(*ast.Assignment)
	call, ok := a.Value.(*ast.RoutineCall)
	if !ok || call.Name != "square" || len(call.Args) != 1 {
		t.Fatalf("expected call expression, got %T", a.Value)
	}
}

func TestParseTypeCastPostfix(t *testing.T) {
	prog := parseProgram(t, "x := y as real;")
	a := prog.Statements[0].(*ast.Assignment)
	cast, ok := a.Value.(*ast.TypeCast)
	if !ok || cast.Target.String() != "real" {
		t.Fatalf("expected a cast to real, got %T", a.Value)
	}
}

func TestParseMultipleStatementsTrailingSemicolonOptional(t *testing.T) {
	prog := parseProgram(t, "var x: integer; var y: integer")
	if len(prog.Statements) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(prog.Statements))
	}
}

func TestParseErrorUnexpectedToken(t *testing.T) {
	err := parseProgramExpectError(t, "var x integer;")
	if err.Message == "" {
		t.Fatal("expected a non-empty error message")
	}
}

func TestParseErrorMissingEnd(t *testing.T) {
	parseProgramExpectError(t, "if true then print(1);")
}

func TestParseErrorAbortsAfterFirstError(t *testing.T) {
	p := New(lexer.New("var x integer; routine also broken"))
	p.ParseProgram()
	if len(p.Errors()) != 1 {
		t.Fatalf("expected exactly one recorded error, got %d", len(p.Errors()))
	}
}
