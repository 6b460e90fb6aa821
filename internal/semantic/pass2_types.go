package semantic

import (
	"github.com/ilcc/ilc/internal/ast"
	"github.com/ilcc/ilc/internal/diag"
)

// typeHoistPass is pass 2: register every top-level TypeDecl in the
// types namespace, rejecting duplicates and collisions with the
// preloaded built-in names. For record types, every field's type must
// itself already resolve (built-in, a user type declared earlier, or
// structural array/record) — this implementation does not support
// forward references between user type declarations, matching the
// grammar's single-pass `type_body` structure.
type typeHoistPass struct{}

func (p *typeHoistPass) Name() string { return "type hoisting" }

func (p *typeHoistPass) Run(prog *ast.Program, ctx *Context) {
	for _, stmt := range prog.Statements {
		decl, ok := stmt.(*ast.TypeDecl)
		if !ok {
			continue
		}

		resolved, ok := resolveType(ctx, decl.Type)
		if !ok {
			continue
		}
		if err := ctx.Table.DeclareType(decl.Name, resolved); err != nil {
			ctx.Sink.Addf(diag.Semantic, decl.Pos(), "%s", err.Error())
		}
	}
}
