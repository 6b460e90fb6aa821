package semantic

import (
	"github.com/ilcc/ilc/internal/ast"
	"github.com/ilcc/ilc/internal/diag"
	"github.com/ilcc/ilc/internal/types"
)

// analyzeStmtList walks a block's statements in source order. It is
// shared by routine bodies (pass 4) and the remaining top-level
// statements (pass 5): both contexts declare into whatever scope is
// currently active and type-check in a single left-to-right pass.
func analyzeStmtList(body []ast.Statement, ctx *Context) {
	for _, stmt := range body {
		analyzeStmt(stmt, ctx)
	}
}

// analyzeStmt dispatches on stmt's concrete type. Unlike the top-level
// hoisting passes, a VarDecl/ArrayDecl reached here is declared
// immediately into the currently active scope — nested blocks are not
// hoisted, matching a single left-to-right walk of the body.
func analyzeStmt(stmt ast.Statement, ctx *Context) {
	switch s := stmt.(type) {
	case *ast.VarDecl:
		(&varHoistPass{}).runVarDecl(s, ctx)
	case *ast.ArrayDecl:
		(&varHoistPass{}).runArrayDecl(s, ctx)
	case *ast.TypeDecl, *ast.RoutineDecl:
		ctx.Sink.Addf(diag.Semantic, stmt.Pos(), "Nested type and routine declarations are not supported.")
	case *ast.Assignment:
		analyzeAssignment(s, ctx)
	case *ast.IfStmt:
		analyzeIf(s, ctx)
	case *ast.WhileStmt:
		analyzeWhile(s, ctx)
	case *ast.ForLoop:
		analyzeFor(s, ctx)
	case *ast.PrintStmt:
		analyzePrint(s, ctx)
	case *ast.ReadStmt:
		analyzeRead(s, ctx)
	case *ast.ReturnStmt:
		analyzeReturn(s, ctx)
	case *ast.RoutineCallStmt:
		typeOfCall(s.Pos(), s.Name, s.Args, ctx, nil)
	case *ast.EmptyStmt:
		// nothing to check
	default:
		ctx.Sink.Addf(diag.Semantic, stmt.Pos(), "Unsupported statement type %T.", stmt)
	}
}

func analyzeAssignment(s *ast.Assignment, ctx *Context) {
	valueType := typeOfExpr(s.Value, ctx)

	if s.Index != nil {
		analyzeIndexedAssignment(s, valueType, ctx)
		return
	}

	// Dotted record-field targets are encoded as "record.field" in
	// Target; a plain identifier has no '.'.
	if rec, field, ok := splitDotted(s.Target); ok {
		analyzeFieldAssignment(s, rec, field, valueType, ctx)
		return
	}

	targetType, ok := ctx.Table.LookupVar(s.Target)
	if !ok {
		ctx.Sink.Addf(diag.Semantic, s.Pos(), "Undefined variable '%s'.", s.Target)
		return
	}
	if valueType != nil && !types.Compatible(targetType, valueType) {
		ctx.Sink.Addf(diag.Semantic, s.Value.Pos(), "Type mismatch: cannot assign %s to '%s' of type %s.", valueType, s.Target, targetType)
	}
}

func analyzeIndexedAssignment(s *ast.Assignment, valueType types.Type, ctx *Context) {
	arrType, ok := ctx.Table.LookupVar(s.Target)
	if !ok {
		ctx.Sink.Addf(diag.Semantic, s.Pos(), "Undefined variable '%s'.", s.Target)
		return
	}
	arr, ok := arrType.(*types.Array)
	if !ok {
		ctx.Sink.Addf(diag.Semantic, s.Pos(), "'%s' is not an array.", s.Target)
		return
	}
	idxType := typeOfExpr(s.Index, ctx)
	if idxType != nil && idxType.String() != types.Integer {
		ctx.Sink.Addf(diag.Semantic, s.Index.Pos(), "Array index must be of type integer.")
	}
	if lit, ok := s.Index.(*ast.IntegerLit); ok {
		if lit.Value < 0 || lit.Value > arr.Size-1 {
			ctx.Sink.Addf(diag.Semantic, lit.Pos(), "Array index %d out of bounds for '%s' (size %d).", lit.Value, s.Target, arr.Size)
		}
	}
	if valueType != nil && !types.Compatible(arr.Element, valueType) {
		ctx.Sink.Addf(diag.Semantic, s.Value.Pos(), "Cannot assign %s to element of '%s' (element type %s).", valueType, s.Target, arr.Element)
	}
}

func analyzeFieldAssignment(s *ast.Assignment, recName, field string, valueType types.Type, ctx *Context) {
	recType, ok := ctx.Table.LookupVar(recName)
	if !ok {
		ctx.Sink.Addf(diag.Semantic, s.Pos(), "Undefined variable '%s'.", recName)
		return
	}
	rec, ok := resolveRecordType(ctx, recType)
	if !ok {
		ctx.Sink.Addf(diag.Semantic, s.Pos(), "'%s' is not a record.", recName)
		return
	}
	fieldType, ok := rec.FieldType(field)
	if !ok {
		ctx.Sink.Addf(diag.Semantic, s.Pos(), "Field '%s' does not exist on record '%s'.", field, recName)
		return
	}
	if valueType != nil && !types.Compatible(fieldType, valueType) {
		ctx.Sink.Addf(diag.Semantic, s.Value.Pos(), "Cannot assign %s to field '%s' of type %s.", valueType, field, fieldType)
	}
}

// splitDotted splits a "record.field" assignment target produced by the
// parser. It returns ok=false for a plain identifier.
func splitDotted(target string) (rec, field string, ok bool) {
	for i := 0; i < len(target); i++ {
		if target[i] == '.' {
			return target[:i], target[i+1:], true
		}
	}
	return "", "", false
}

func analyzeIf(s *ast.IfStmt, ctx *Context) {
	requireBoolean(s.Cond, ctx)
	analyzeStmtList(s.Then, ctx)
	if s.Else != nil {
		analyzeStmtList(s.Else, ctx)
	}
}

func analyzeWhile(s *ast.WhileStmt, ctx *Context) {
	requireBoolean(s.Cond, ctx)
	analyzeStmtList(s.Body, ctx)
}

// analyzeFor implements the resolved Open Question: the loop variable is
// auto-declared as integer in a fresh inner scope spanning the loop
// body, rather than requiring it to already exist in an enclosing scope.
func analyzeFor(s *ast.ForLoop, ctx *Context) {
	requireNumeric(s.Start, ctx)
	requireNumeric(s.End_, ctx)

	ctx.Table.PushScope()
	ctx.Table.DeclareVar(s.Var, types.NewSimple(types.Integer))
	analyzeStmtList(s.Body, ctx)
	ctx.Table.PopScope()
}

func analyzePrint(s *ast.PrintStmt, ctx *Context) {
	typeOfExpr(s.Expr, ctx)
}

func analyzeRead(s *ast.ReadStmt, ctx *Context) {
	if _, ok := ctx.Table.LookupVar(s.Var); !ok {
		ctx.Sink.Addf(diag.Semantic, s.Pos(), "Undefined variable '%s'.", s.Var)
	}
}

func analyzeReturn(s *ast.ReturnStmt, ctx *Context) {
	expected, inRoutine := ctx.currentReturnType()
	if !inRoutine {
		ctx.Sink.Addf(diag.Semantic, s.Pos(), "'return' outside of a routine body.")
		return
	}
	if s.Expr == nil {
		if expected != nil {
			ctx.Sink.Addf(diag.Semantic, s.Pos(), "Routine expects a return value of type %s.", expected)
		}
		return
	}
	actual := typeOfExpr(s.Expr, ctx)
	if expected == nil {
		ctx.Sink.Addf(diag.Semantic, s.Expr.Pos(), "Void routine cannot return a value.")
		return
	}
	if actual != nil && !types.Compatible(expected, actual) {
		ctx.Sink.Addf(diag.Semantic, s.Expr.Pos(), "Cannot return %s, expected %s.", actual, expected)
	}
}

func requireBoolean(e ast.Expression, ctx *Context) {
	t := typeOfExpr(e, ctx)
	if t == nil {
		return
	}
	if simple, ok := t.(*types.Simple); !ok || simple.Name != types.Boolean {
		ctx.Sink.Addf(diag.Semantic, e.Pos(), "Condition must be boolean, got %s.", t)
	}
}

func requireNumeric(e ast.Expression, ctx *Context) {
	t := typeOfExpr(e, ctx)
	if t == nil {
		return
	}
	if simple, ok := t.(*types.Simple); !ok || !simple.IsNumeric() {
		ctx.Sink.Addf(diag.Semantic, e.Pos(), "Expected a numeric value, got %s.", t)
	}
}
