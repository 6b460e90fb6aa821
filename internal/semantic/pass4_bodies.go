package semantic

import (
	"github.com/ilcc/ilc/internal/ast"
	"github.com/ilcc/ilc/internal/diag"
	"github.com/ilcc/ilc/internal/types"
)

// routineBodyPass is pass 4: for each top-level RoutineDecl, resolve its
// signature (deferred from pass 1 until every type was hoisted), push a
// scope, declare its parameters, push the expected return type, walk the
// body, then pop both.
type routineBodyPass struct{}

func (p *routineBodyPass) Name() string { return "routine bodies" }

func (p *routineBodyPass) Run(prog *ast.Program, ctx *Context) {
	for _, stmt := range prog.Statements {
		decl, ok := stmt.(*ast.RoutineDecl)
		if !ok {
			continue
		}
		p.runRoutine(decl, ctx)
	}
}

func (p *routineBodyPass) runRoutine(decl *ast.RoutineDecl, ctx *Context) {
	sig, _ := ctx.Table.LookupRoutine(decl.Name)

	var expected types.Type
	if decl.ReturnType != nil {
		if rt, ok := resolveType(ctx, decl.ReturnType); ok {
			expected = rt
			if sig != nil {
				sig.ReturnType = rt
			}
		}
	}

	ctx.Table.PushScope()
	for _, param := range decl.Params {
		pt, ok := resolveType(ctx, param.Type)
		if !ok {
			continue
		}
		if sig != nil {
			sig.Params = append(sig.Params, pt)
		}
		if err := ctx.Table.DeclareVar(param.Name, pt); err != nil {
			ctx.Sink.Addf(diag.Semantic, decl.Pos(), "Parameter '%s' already declared.", param.Name)
		}
	}

	ctx.pushReturnType(expected)
	analyzeStmtList(decl.Body, ctx)
	ctx.popReturnType()
	ctx.Table.PopScope()

	if expected != nil && !hasReturn(decl.Body) {
		ctx.Sink.Addf(diag.Semantic, decl.Pos(), "Routine '%s' must return a value of type %s on every path.", decl.Name, expected)
	}
}
