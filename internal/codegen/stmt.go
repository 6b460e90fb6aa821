package codegen

import (
	"github.com/ilcc/ilc/internal/ast"
	"github.com/ilcc/ilc/internal/types"
)

// lowerStmtList emits every statement of body in order.
func (g *Generator) lowerStmtList(e *emitter, env *localEnv, body []ast.Statement) {
	for _, stmt := range body {
		g.lowerStmt(e, env, stmt)
	}
}

func (g *Generator) lowerStmt(e *emitter, env *localEnv, stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.VarDecl:
		t := resolveTypeExpr(g.table, s.Type)
		slot := env.allocate(s.Name, t)
		if s.Init != nil {
			g.lowerExpr(e, env, s.Init)
		} else {
			g.emitDefaultValue(e, t)
		}
		e.linef("    %s %d", storeOp(t), slot)
	case *ast.ArrayDecl:
		t := resolveTypeExpr(g.table, s.Type)
		slot := env.allocate(s.Name, t)
		g.emitDefaultValue(e, t)
		e.linef("    astore %d", slot)
	case *ast.Assignment:
		g.lowerAssignment(e, env, s)
	case *ast.IfStmt:
		g.lowerIf(e, env, s)
	case *ast.WhileStmt:
		g.lowerWhile(e, env, s)
	case *ast.ForLoop:
		g.lowerFor(e, env, s)
	case *ast.PrintStmt:
		g.lowerPrint(e, env, s)
	case *ast.ReadStmt:
		g.lowerRead(e, env, s)
	case *ast.ReturnStmt:
		g.lowerReturn(e, env, s)
	case *ast.RoutineCallStmt:
		for _, a := range s.Args {
			g.lowerExpr(e, env, a)
		}
		e.linef("    invokestatic Main/%s%s", s.Name, g.routineDescriptorByName(s.Name))
		if ret := g.routineReturnType(s.Name); ret != nil {
			e.line("    " + popOp(ret))
		}
	case *ast.EmptyStmt:
		// nothing to emit
	}
}

func popOp(t types.Type) string {
	if isRealType(t) {
		return "pop2"
	}
	return "pop"
}

func (g *Generator) lowerAssignment(e *emitter, env *localEnv, s *ast.Assignment) {
	if s.Index != nil {
		t := varTypeOf(g, env, s.Target)
		g.loadVar(e, env, s.Target, t)
		g.lowerExpr(e, env, s.Index)
		g.lowerExpr(e, env, s.Value)
		arr, _ := t.(*types.Array)
		elem := types.Type(types.NewSimple(types.Integer))
		if arr != nil {
			elem = arr.Element
		}
		e.line("    " + arrayStoreOp(elem))
		return
	}

	if recName, field, ok := splitDottedTarget(s.Target); ok {
		recType := varTypeOf(g, env, recName)
		g.loadVar(e, env, recName, recType)
		g.lowerExpr(e, env, s.Value)
		className := g.recordNameOf(recType)
		fieldType := fieldTypeOf(recType, field)
		e.linef("    putfield %s/%s %s", className, field, structuralDescriptor(fieldType))
		return
	}

	t := varTypeOf(g, env, s.Target)
	g.lowerExpr(e, env, s.Value)
	g.storeVar(e, env, s.Target, t)
}

func fieldTypeOf(t types.Type, field string) types.Type {
	rec, ok := t.(*types.Record)
	if !ok {
		return nil
	}
	ft, _ := rec.FieldType(field)
	return ft
}

func splitDottedTarget(target string) (rec, field string, ok bool) {
	for i := 0; i < len(target); i++ {
		if target[i] == '.' {
			return target[:i], target[i+1:], true
		}
	}
	return "", "", false
}

func (g *Generator) lowerIf(e *emitter, env *localEnv, s *ast.IfStmt) {
	elseLabel := e.label("if_else")
	endLabel := e.label("if_end")

	g.lowerExpr(e, env, s.Cond)
	e.linef("    ifeq %s", elseLabel)
	g.lowerStmtList(e, env, s.Then)
	thenReturns := endsInReturn(s.Then)
	if !thenReturns {
		e.linef("    goto %s", endLabel)
	}
	e.linef("%s:", elseLabel)
	if s.Else != nil {
		g.lowerStmtList(e, env, s.Else)
	}
	if !thenReturns {
		e.linef("%s:", endLabel)
	}
}

func endsInReturn(stmts []ast.Statement) bool {
	if len(stmts) == 0 {
		return false
	}
	_, ok := stmts[len(stmts)-1].(*ast.ReturnStmt)
	return ok
}

func (g *Generator) lowerWhile(e *emitter, env *localEnv, s *ast.WhileStmt) {
	startLabel := e.label("while_start")
	endLabel := e.label("while_end")

	e.linef("%s:", startLabel)
	g.lowerExpr(e, env, s.Cond)
	e.linef("    ifeq %s", endLabel)
	g.lowerStmtList(e, env, s.Body)
	e.linef("    goto %s", startLabel)
	e.linef("%s:", endLabel)
}

func (g *Generator) lowerFor(e *emitter, env *localEnv, s *ast.ForLoop) {
	slot := env.allocate(s.Var, types.NewSimple(types.Integer))
	startLabel := e.label("for_start")
	endLabel := e.label("for_end")

	g.lowerExpr(e, env, s.Start)
	e.linef("    istore %d", slot)

	e.linef("%s:", startLabel)
	e.linef("    iload %d", slot)
	g.lowerExpr(e, env, s.End_)
	if s.Reverse {
		e.linef("    if_icmplt %s", endLabel)
	} else {
		e.linef("    if_icmpgt %s", endLabel)
	}

	g.lowerStmtList(e, env, s.Body)

	if s.Reverse {
		e.linef("    iinc %d -1", slot)
	} else {
		e.linef("    iinc %d 1", slot)
	}
	e.linef("    goto %s", startLabel)
	e.linef("%s:", endLabel)
}

func (g *Generator) lowerPrint(e *emitter, env *localEnv, s *ast.PrintStmt) {
	e.line("    getstatic java/lang/System/out Ljava/io/PrintStream;")
	g.lowerExpr(e, env, s.Expr)
	e.line("    " + printlnSignature(resolvedTypeOf(s.Expr)))
}

func printlnSignature(t types.Type) string {
	switch v := t.(type) {
	case *types.Simple:
		switch v.Name {
		case types.Integer:
			return "invokevirtual java/io/PrintStream/println(I)V"
		case types.RealT:
			return "invokevirtual java/io/PrintStream/println(D)V"
		case types.Boolean:
			return "invokevirtual java/io/PrintStream/println(Z)V"
		default:
			return "invokevirtual java/io/PrintStream/println(Ljava/lang/String;)V"
		}
	default:
		return "invokevirtual java/io/PrintStream/println(Ljava/lang/String;)V"
	}
}

// lowerRead reads one whitespace-delimited token from standard input,
// coerced to the target variable's declared type, per spec §4.5.
func (g *Generator) lowerRead(e *emitter, env *localEnv, s *ast.ReadStmt) {
	t := varTypeOf(g, env, s.Var)
	e.line("    getstatic Main/in_ Ljava/util/Scanner;")
	e.line("    " + scannerReadCall(t))
	g.storeVar(e, env, s.Var, t)
}

func scannerReadCall(t types.Type) string {
	switch v := t.(type) {
	case *types.Simple:
		switch v.Name {
		case types.Integer:
			return "invokevirtual java/util/Scanner/nextInt()I"
		case types.RealT:
			return "invokevirtual java/util/Scanner/nextDouble()D"
		case types.Boolean:
			return "invokevirtual java/util/Scanner/nextBoolean()Z"
		default:
			return "invokevirtual java/util/Scanner/next()Ljava/lang/String;"
		}
	default:
		return "invokevirtual java/util/Scanner/next()Ljava/lang/String;"
	}
}

func (g *Generator) lowerReturn(e *emitter, env *localEnv, s *ast.ReturnStmt) {
	if s.Expr == nil {
		e.line("    return")
		return
	}
	g.lowerExpr(e, env, s.Expr)
	t := resolvedTypeOf(s.Expr)
	switch {
	case isRealType(t):
		e.line("    dreturn")
	case isStringType(t) || isRecordOrArray(t):
		e.line("    areturn")
	default:
		e.line("    ireturn")
	}
}

func isRecordOrArray(t types.Type) bool {
	switch t.(type) {
	case *types.Record, *types.Array:
		return true
	default:
		return false
	}
}
