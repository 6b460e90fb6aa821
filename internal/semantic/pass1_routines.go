package semantic

import (
	"github.com/ilcc/ilc/internal/ast"
	"github.com/ilcc/ilc/internal/diag"
	"github.com/ilcc/ilc/internal/symtab"
)

// routineHoistPass is pass 1: register every top-level RoutineDecl's name
// in the routines namespace, by itself, before any type is known to
// exist. Parameter and return types are left unresolved here — a
// routine's signature may name a type that pass 2 has not hoisted yet —
// and are filled in at the start of pass 4, once every type is
// registered.
type routineHoistPass struct{}

func (p *routineHoistPass) Name() string { return "routine hoisting" }

func (p *routineHoistPass) Run(prog *ast.Program, ctx *Context) {
	for _, stmt := range prog.Statements {
		decl, ok := stmt.(*ast.RoutineDecl)
		if !ok {
			continue
		}
		sig := &symtab.RoutineSignature{Name: decl.Name}
		if err := ctx.Table.DeclareRoutine(sig); err != nil {
			ctx.Sink.Addf(diag.Semantic, decl.Pos(), "Routine %s already defined.", decl.Name)
		}
	}
}
