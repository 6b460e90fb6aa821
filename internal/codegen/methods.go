package codegen

import (
	"fmt"

	"github.com/ilcc/ilc/internal/ast"
	"github.com/ilcc/ilc/internal/types"
)

func (g *Generator) routineByName(name string) *ast.RoutineDecl {
	for _, r := range g.routines {
		if r.Name == name {
			return r
		}
	}
	return nil
}

func (g *Generator) routineDescriptorByName(name string) string {
	r := g.routineByName(name)
	if r == nil {
		return "()V"
	}
	return methodDescriptor(g.table, r.Params, r.ReturnType)
}

func (g *Generator) routineReturnType(name string) types.Type {
	r := g.routineByName(name)
	if r == nil || r.ReturnType == nil {
		return nil
	}
	return resolveTypeExpr(g.table, r.ReturnType)
}

// emitRoutineMethod emits one static method for a RoutineDecl other than
// a void main (a main with a return type is emitted here too),
// with parameters occupying the first slots of the local-variable
// table and a stack/locals limit computed conservatively.
func (g *Generator) emitRoutineMethod(e *emitter, decl *ast.RoutineDecl) error {
	env := newLocalEnv()
	for _, p := range decl.Params {
		env.allocate(p.Name, resolveTypeExpr(g.table, p.Type))
	}

	body := newEmitter()
	body.labelNum = e.labelNum
	g.lowerStmtList(body, env, decl.Body)
	if decl.ReturnType == nil && !endsInReturn(decl.Body) {
		body.line("    return")
	}
	e.labelNum = body.labelNum

	e.linef(".method static public %s%s", decl.Name, methodDescriptor(g.table, decl.Params, decl.ReturnType))
	e.linef("    .limit stack %d", stackLimitFor(decl.Body))
	e.linef("    .limit locals %d", env.limit())
	e.buf.WriteString(body.String())
	e.line(".end method")
	return nil
}

// stackLimitFor is a conservative, fixed generous bound: the generator
// never tracks precise operand-stack depth per instruction, matching
// the spec's "computed conservatively" instruction rather than a
// least-fixed-point stack analysis.
func stackLimitFor(body []ast.Statement) int {
	depth := 8 + 4*maxNestingDepth(body)
	if depth > 64 {
		return 64
	}
	return depth
}

func maxNestingDepth(body []ast.Statement) int {
	max := 0
	for _, stmt := range body {
		d := 0
		switch s := stmt.(type) {
		case *ast.IfStmt:
			d = 1 + maxOf(maxNestingDepth(s.Then), maxNestingDepth(s.Else))
		case *ast.WhileStmt:
			d = 1 + maxNestingDepth(s.Body)
		case *ast.ForLoop:
			d = 1 + maxNestingDepth(s.Body)
		}
		if d > max {
			max = d
		}
	}
	return max
}

func maxOf(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// emitEntryPoint emits the JVM-visible `public static void main(String[])`.
// A void IL main routine is inlined directly into it; a typed main is
// emitted as its own static method and invoked here with its result
// discarded, per spec §4.5.
func (g *Generator) emitEntryPoint(e *emitter, mainRoutine *ast.RoutineDecl) error {
	if mainRoutine == nil {
		return fmt.Errorf("codegen: program has no 'main' routine")
	}

	if mainRoutine.ReturnType == nil {
		env := newLocalEnv()
		env.allocate("args", types.NewArray(types.NewSimple(types.StringT), 0))
		body := newEmitter()
		g.lowerStmtList(body, env, mainRoutine.Body)
		if !endsInReturn(mainRoutine.Body) {
			body.line("    return")
		}

		e.line(".method static public main([Ljava/lang/String;)V")
		e.linef("    .limit stack %d", stackLimitFor(mainRoutine.Body))
		e.linef("    .limit locals %d", env.limit())
		e.buf.WriteString(body.String())
		e.line(".end method")
		return nil
	}

	if err := g.emitRoutineMethod(e, mainRoutine); err != nil {
		return err
	}
	e.line("")

	e.line(".method static public main([Ljava/lang/String;)V")
	e.line("    .limit stack 2")
	e.line("    .limit locals 1")
	e.linef("    invokestatic Main/main%s", methodDescriptor(g.table, mainRoutine.Params, mainRoutine.ReturnType))
	e.line("    " + popOp(resolveTypeExpr(g.table, mainRoutine.ReturnType)))
	e.line("    return")
	e.line(".end method")
	return nil
}
