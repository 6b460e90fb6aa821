package codegen

import "github.com/ilcc/ilc/internal/ast"

// emitRecordUnit emits one record type's translation unit: a public
// class with one public field per declared field, plus a default
// (no-argument) constructor, per spec §4.5.
func (g *Generator) emitRecordUnit(decl *ast.TypeDecl) (string, error) {
	rt := decl.Type.(*ast.RecordTypeExpr)
	e := newEmitter()
	e.linef(".class public %s", decl.Name)
	e.line(".super java/lang/Object")
	e.line("")

	for _, f := range rt.Fields {
		e.linef(".field public %s %s", f.Name, descriptor(g.table, f.Type))
	}
	e.line("")

	e.linef(".method public <init>()V")
	e.line("    .limit stack 1")
	e.line("    .limit locals 1")
	e.line("    aload_0")
	e.line("    invokespecial java/lang/Object/<init>()V")
	e.line("    return")
	e.line(".end method")

	return e.String(), nil
}
