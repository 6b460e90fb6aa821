// Package codegen lowers an optimized program to the line-oriented
// textual assembly of spec §4.5: one record translation unit per
// user-declared record type, plus a single "Main" unit carrying the
// static fields, default initializer, one method per routine, and the
// JVM-style entry point.
//
// Re-designed per the source's global mutable state note (§4.5/§9):
// every emission run owns its own emitter (label counter) and
// localEnv (slot allocator) rather than reaching for package globals.
package codegen

import (
	"github.com/ilcc/ilc/internal/ast"
	"github.com/ilcc/ilc/internal/symtab"
	"github.com/ilcc/ilc/internal/types"
)

// Output is the generator's product: the main unit's assembly text
// plus one entry per record translation unit, keyed by record name.
type Output struct {
	MainUnit    string
	RecordUnits map[string]string
	// RecordOrder preserves declaration order, since the handoff to the
	// assembler must process records before the main unit (spec §4.5).
	RecordOrder []string
}

// Generator walks one Program's declarations once and emits assembly.
type Generator struct {
	table       *symtab.Table
	recordDecls []*ast.TypeDecl
	globals     []ast.Statement
	routines    []*ast.RoutineDecl

	globalDesc map[string]string
	globalType map[string]types.Type
}

// Generate lowers prog (already semantically analyzed against table,
// and ideally optimized) to textual assembly.
func Generate(prog *ast.Program, table *symtab.Table) (*Output, error) {
	g := &Generator{
		table:      table,
		globalDesc: make(map[string]string),
		globalType: make(map[string]types.Type),
	}
	for _, stmt := range prog.Statements {
		switch s := stmt.(type) {
		case *ast.TypeDecl:
			if _, ok := s.Type.(*ast.RecordTypeExpr); ok {
				g.recordDecls = append(g.recordDecls, s)
			}
		case *ast.VarDecl, *ast.ArrayDecl:
			g.globals = append(g.globals, s)
			name, desc := g.globalDescriptor(s)
			_, typ := g.resolveGlobalType(s)
			g.globalDesc[name] = desc
			g.globalType[name] = typ
		case *ast.RoutineDecl:
			g.routines = append(g.routines, s)
		}
	}

	out := &Output{RecordUnits: make(map[string]string)}
	for _, d := range g.recordDecls {
		unit, err := g.emitRecordUnit(d)
		if err != nil {
			return nil, err
		}
		out.RecordUnits[d.Name] = unit
		out.RecordOrder = append(out.RecordOrder, d.Name)
	}

	mainUnit, err := g.emitMainUnit()
	if err != nil {
		return nil, err
	}
	out.MainUnit = mainUnit
	return out, nil
}

func (g *Generator) emitMainUnit() (string, error) {
	e := newEmitter()
	e.line(".class public Main")
	e.line(".super java/lang/Object")
	e.line("")

	for _, stmt := range g.globals {
		g.emitFieldDecl(e, stmt)
	}
	e.line(".field static private in_ Ljava/util/Scanner;")
	e.line("")

	g.emitClassInit(e)
	e.line("")

	g.emitDefaultConstructor(e)

	var mainRoutine *ast.RoutineDecl
	for _, r := range g.routines {
		if r.Name == "main" {
			mainRoutine = r
			continue
		}
		if err := g.emitRoutineMethod(e, r); err != nil {
			return "", err
		}
		e.line("")
	}

	if err := g.emitEntryPoint(e, mainRoutine); err != nil {
		return "", err
	}

	return e.String(), nil
}

func (g *Generator) emitDefaultConstructor(e *emitter) {
	e.line(".method public <init>()V")
	e.line("    .limit stack 1")
	e.line("    .limit locals 1")
	e.line("    aload_0")
	e.line("    invokespecial java/lang/Object/<init>()V")
	e.line("    return")
	e.line(".end method")
	e.line("")
}

// resolveGlobalType resolves a top-level var/array declaration's type.
func (g *Generator) resolveGlobalType(stmt ast.Statement) (string, types.Type) {
	switch s := stmt.(type) {
	case *ast.VarDecl:
		return s.Name, resolveTypeExpr(g.table, s.Type)
	case *ast.ArrayDecl:
		return s.Name, resolveTypeExpr(g.table, s.Type)
	}
	return "", nil
}

// globalDescriptor renders a top-level declaration's field descriptor
// using its original ast.TypeExpr, so record fields still render as
// L<Name>; rather than the nameless structural fallback.
func (g *Generator) globalDescriptor(stmt ast.Statement) (string, string) {
	switch s := stmt.(type) {
	case *ast.VarDecl:
		return s.Name, descriptor(g.table, s.Type)
	case *ast.ArrayDecl:
		return s.Name, descriptor(g.table, s.Type)
	}
	return "", ""
}

func (g *Generator) emitFieldDecl(e *emitter, stmt ast.Statement) {
	name, desc := g.globalDescriptor(stmt)
	e.linef(".field static public %s %s", name, desc)
}
