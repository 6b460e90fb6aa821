package semantic

import (
	"testing"

	"github.com/ilcc/ilc/internal/diag"
	"github.com/ilcc/ilc/internal/lexer"
	"github.com/ilcc/ilc/internal/parser"
)

func analyze(t *testing.T, src string) *diag.Sink {
	t.Helper()
	p := parser.New(lexer.New(src))
	prog := p.ParseProgram()
	if errs := p.Errors(); len(errs) != 0 {
		t.Fatalf("unexpected parse error for %q: %v", src, errs[0])
	}
	_, sink := New().Run(prog)
	return sink
}

func expectNoErrors(t *testing.T, src string) {
	t.Helper()
	sink := analyze(t, src)
	if sink.HasErrors() {
		t.Fatalf("unexpected semantic errors for %q: %v", src, sink.Messages())
	}
}

func expectError(t *testing.T, src string) {
	t.Helper()
	sink := analyze(t, src)
	if !sink.HasErrors() {
		t.Fatalf("expected a semantic error for %q, got none", src)
	}
}

func TestVarDeclWithCompatibleInitializer(t *testing.T) {
	expectNoErrors(t, `var x: real is 5;`)
}

func TestVarDeclWithIncompatibleInitializer(t *testing.T) {
	expectError(t, `var x: integer is true;`)
}

func TestDuplicateVariableInSameScope(t *testing.T) {
	expectError(t, `var x: integer; var x: real;`)
}

func TestDuplicateRoutine(t *testing.T) {
	expectError(t, `routine f() is end; routine f() is end;`)
}

func TestForwardReferenceToLaterRoutine(t *testing.T) {
	expectNoErrors(t, `
		routine a(): integer is return b() end;
		routine b(): integer is return 1 end;
	`)
}

func TestForwardReferenceToLaterType(t *testing.T) {
	expectNoErrors(t, `
		var p: Point;
		type Point is record x: integer; y: integer end;
	`)
}

func TestArrayOutOfBoundsConstantIndex(t *testing.T) {
	expectError(t, `
		var a: array [3] integer;
		a[3] := 1;
	`)
}

func TestArrayInBoundsConstantIndex(t *testing.T) {
	expectNoErrors(t, `
		var a: array [3] integer;
		a[2] := 1;
	`)
}

func TestRecordFieldAssignment(t *testing.T) {
	expectNoErrors(t, `
		type Point is record x: integer; y: integer end;
		var p: Point;
		p.x := 1;
	`)
}

func TestRecordFieldAssignmentWrongType(t *testing.T) {
	expectError(t, `
		type Point is record x: integer end;
		var p: Point;
		p.x := true;
	`)
}

func TestIfConditionMustBeBoolean(t *testing.T) {
	expectError(t, `if 1 then print(1) end;`)
}

func TestForLoopAutoDeclaresVariable(t *testing.T) {
	expectNoErrors(t, `for i in 1 .. 10 loop print(i) end;`)
}

func TestRoutineMustReturnOnEveryPath(t *testing.T) {
	expectError(t, `routine f(): integer is print(1) end;`)
}

func TestRoutineReturnsThroughIfElse(t *testing.T) {
	expectNoErrors(t, `
		routine f(x: boolean): integer is
			if x then return 1 else return 2 end
		end;
	`)
}

func TestVoidRoutineCannotReturnValue(t *testing.T) {
	expectError(t, `routine f() is return 1 end;`)
}

func TestCallArgCountMismatch(t *testing.T) {
	expectError(t, `
		routine add(a: integer, b: integer): integer is return a + b end;
		var x: integer is add(1);
	`)
}

func TestCallArgTypeMismatch(t *testing.T) {
	expectError(t, `
		routine f(a: integer): integer is return a end;
		var x: integer is f(true);
	`)
}

func TestTypeCastBetweenNumericTypes(t *testing.T) {
	expectNoErrors(t, `var x: real is 1 as real;`)
}

func TestTypeCastInvalidFromString(t *testing.T) {
	expectError(t, `var s: string; var x: integer is s as integer;`)
}

func TestIntegerAndRealMixedArithmeticPromotesToReal(t *testing.T) {
	expectNoErrors(t, `var x: real is 1 + 2.5;`)
}

func TestUndefinedVariableReference(t *testing.T) {
	expectError(t, `print(missing);`)
}
