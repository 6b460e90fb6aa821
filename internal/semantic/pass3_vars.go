package semantic

import (
	"github.com/ilcc/ilc/internal/ast"
	"github.com/ilcc/ilc/internal/diag"
	"github.com/ilcc/ilc/internal/types"
)

// varHoistPass is pass 3: add every top-level VarDecl/ArrayDecl to the
// global scope, validating the declared type and, for a var with an
// initializer, checking the initializer's type against it.
type varHoistPass struct{}

func (p *varHoistPass) Name() string { return "variable/array hoisting" }

func (p *varHoistPass) Run(prog *ast.Program, ctx *Context) {
	for _, stmt := range prog.Statements {
		switch s := stmt.(type) {
		case *ast.VarDecl:
			p.runVarDecl(s, ctx)
		case *ast.ArrayDecl:
			p.runArrayDecl(s, ctx)
		}
	}
}

func (p *varHoistPass) runVarDecl(decl *ast.VarDecl, ctx *Context) {
	declared, ok := resolveType(ctx, decl.Type)
	if !ok {
		return
	}
	if err := ctx.Table.DeclareVar(decl.Name, declared); err != nil {
		ctx.Sink.Addf(diag.Semantic, decl.Pos(), "Variable '%s' already defined in this scope.", decl.Name)
		return
	}
	if decl.Init == nil {
		return
	}
	initType := typeOfExpr(decl.Init, ctx)
	if initType != nil && !types.Compatible(declared, initType) {
		ctx.Sink.Addf(diag.Semantic, decl.Init.Pos(),
			"Cannot initialize '%s' of type %s with a value of type %s.", decl.Name, declared, initType)
	}
}

func (p *varHoistPass) runArrayDecl(decl *ast.ArrayDecl, ctx *Context) {
	if decl.Type.Size <= 0 {
		ctx.Sink.Addf(diag.Semantic, decl.Pos(), "Array size must be greater than zero.")
	}
	declared, ok := resolveType(ctx, decl.Type)
	if !ok {
		return
	}
	if err := ctx.Table.DeclareVar(decl.Name, declared); err != nil {
		ctx.Sink.Addf(diag.Semantic, decl.Pos(), "Variable '%s' already defined in this scope.", decl.Name)
	}
}
