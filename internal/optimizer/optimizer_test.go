package optimizer

import (
	"testing"

	"github.com/ilcc/ilc/internal/ast"
	"github.com/ilcc/ilc/internal/lexer"
	"github.com/ilcc/ilc/internal/parser"
)

func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	p := parser.New(lexer.New(src))
	prog := p.ParseProgram()
	if errs := p.Errors(); len(errs) != 0 {
		t.Fatalf("unexpected parse error for %q: %v", src, errs[0])
	}
	return prog
}

func TestConstantFoldingIntegerArithmetic(t *testing.T) {
	prog := mustParse(t, "var x: integer is 1 + 2 * 3;")
	res := Run(prog)
	decl := res.Program.Statements[0].(*ast.VarDecl)
	lit, ok := decl.Init.(*ast.IntegerLit)
	if !ok || lit.Value != 7 {
		t.Fatalf("expected folded literal 7, got %v", decl.Init)
	}
	if res.Count == 0 {
		t.Fatal("expected a nonzero transformation count")
	}
}

func TestConstantFoldingSkipsDivisionByZero(t *testing.T) {
	prog := mustParse(t, "var x: integer is 1 / 0;")
	res := Run(prog)
	decl := res.Program.Statements[0].(*ast.VarDecl)
	bin, ok := decl.Init.(*ast.Binary)
	if !ok || bin.Op != ast.OpDiv {
		t.Fatalf("expected division by zero left unfolded, got %v", decl.Init)
	}
}

func TestConstantFoldingMixedPromotesToReal(t *testing.T) {
	prog := mustParse(t, "var x: real is 1 + 2.5;")
	res := Run(prog)
	decl := res.Program.Statements[0].(*ast.VarDecl)
	lit, ok := decl.Init.(*ast.RealLit)
	if !ok || lit.Value != 3.5 {
		t.Fatalf("expected folded real literal 3.5, got %v", decl.Init)
	}
}

func TestConstantFoldingBoolean(t *testing.T) {
	prog := mustParse(t, "var x: boolean is true and false;")
	res := Run(prog)
	decl := res.Program.Statements[0].(*ast.VarDecl)
	lit, ok := decl.Init.(*ast.BooleanLit)
	if !ok || lit.Value != false {
		t.Fatalf("expected folded literal false, got %v", decl.Init)
	}
}

func TestDeadCodeDropsAfterReturn(t *testing.T) {
	prog := mustParse(t, "routine f(): integer is return 1; print(2) end;")
	res := Run(prog)
	decl := res.Program.Statements[0].(*ast.RoutineDecl)
	if len(decl.Body) != 1 {
		t.Fatalf("expected dead code after return to be dropped, got %d statements", len(decl.Body))
	}
}

func TestDeadCodeCollapsesIfTrue(t *testing.T) {
	prog := mustParse(t, "if true then print(1) else print(2) end;")
	res := Run(prog)
	_, ok := res.Program.Statements[0].(*ast.PrintStmt)
	if !ok {
		t.Fatalf("expected 'if true' collapsed to its then-branch, got %T", res.Program.Statements[0])
	}
}

func TestDeadCodeCollapsesIfFalseNoElse(t *testing.T) {
	prog := mustParse(t, "if false then print(1) end;")
	res := Run(prog)
	_, ok := res.Program.Statements[0].(*ast.EmptyStmt)
	if !ok {
		t.Fatalf("expected 'if false' with no else to collapse to an empty statement, got %T", res.Program.Statements[0])
	}
}

func TestDeadCodeEmptiesWhileFalse(t *testing.T) {
	prog := mustParse(t, "while false loop print(1) end;")
	res := Run(prog)
	w := res.Program.Statements[0].(*ast.WhileStmt)
	if w.Body != nil {
		t.Fatalf("expected 'while false' body emptied, got %v", w.Body)
	}
}

func TestUnusedGlobalVarDropped(t *testing.T) {
	prog := mustParse(t, "var unused: integer; var used: integer is 1; print(used);")
	res := Run(prog)
	for _, s := range res.Program.Statements {
		if decl, ok := s.(*ast.VarDecl); ok && decl.Name == "unused" {
			t.Fatal("expected unused global to be dropped")
		}
	}
}

func TestUnusedLocalVarDropped(t *testing.T) {
	prog := mustParse(t, "routine f() is var unused: integer; print(1) end;")
	res := Run(prog)
	decl := res.Program.Statements[0].(*ast.RoutineDecl)
	for _, s := range decl.Body {
		if v, ok := s.(*ast.VarDecl); ok && v.Name == "unused" {
			t.Fatal("expected unused local to be dropped")
		}
	}
}

func TestUsedVariableSurvives(t *testing.T) {
	prog := mustParse(t, "var x: integer is 1; print(x);")
	res := Run(prog)
	found := false
	for _, s := range res.Program.Statements {
		if decl, ok := s.(*ast.VarDecl); ok && decl.Name == "x" {
			found = true
		}
	}
	if !found {
		t.Fatal("expected used variable 'x' to survive")
	}
}

func TestWithPassDisablesConstantFolding(t *testing.T) {
	prog := mustParse(t, "var x: integer is 1 + 2;")
	res := Run(prog, WithPass(PassConstantFold, false))
	decl := res.Program.Statements[0].(*ast.VarDecl)
	if _, ok := decl.Init.(*ast.Binary); !ok {
		t.Fatalf("expected folding disabled to leave the binary expression intact, got %T", decl.Init)
	}
}
