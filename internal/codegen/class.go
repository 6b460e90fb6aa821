package codegen

import (
	"github.com/ilcc/ilc/internal/ast"
	"github.com/ilcc/ilc/internal/types"
)

// emitClassInit emits Main's <clinit>, the default initializer of spec
// §4.5: integer/boolean fields to zero, string fields to the empty
// string, record fields via their default constructor, and fixed-size
// arrays via newarray/anewarray sized to the declared bound.
func (g *Generator) emitClassInit(e *emitter) {
	e.line(".method static public <clinit>()V")
	e.line("    .limit stack 4")
	e.line("    .limit locals 0")

	for _, stmt := range g.globals {
		name, t := g.resolveGlobalType(stmt)
		_, desc := g.globalDescriptor(stmt)
		if decl, ok := stmt.(*ast.VarDecl); ok && decl.Init != nil {
			g.lowerExpr(e, nil, decl.Init)
		} else {
			g.emitDefaultValue(e, t)
		}
		e.linef("    putstatic Main/%s %s", name, desc)
	}

	e.line(`    new java/util/Scanner`)
	e.line(`    dup`)
	e.line(`    getstatic java/lang/System/in Ljava/io/InputStream;`)
	e.line(`    invokespecial java/util/Scanner/<init>(Ljava/io/InputStream;)V`)
	e.line(`    putstatic Main/in_ Ljava/util/Scanner;`)

	e.line("    return")
	e.line(".end method")
}

// emitDefaultValue pushes t's zero value (or a freshly-allocated
// instance for a record/array) onto the stack.
func (g *Generator) emitDefaultValue(e *emitter, t types.Type) {
	switch v := t.(type) {
	case *types.Simple:
		switch v.Name {
		case types.RealT:
			e.line("    dconst_0")
		case types.StringT:
			e.line(`    ldc ""`)
		default: // integer, boolean
			e.line("    iconst_0")
		}
	case *types.Record:
		name, ok := recordTypeName(g.table, v, g.recordDecls)
		if !ok {
			name = "Record"
		}
		e.linef("    new %s", name)
		e.line("    dup")
		e.linef("    invokespecial %s/<init>()V", name)
	case *types.Array:
		pushInt(e, v.Size)
		switch elem := v.Element.(type) {
		case *types.Simple:
			e.linef("    newarray %s", arrayTypeTag(elem.Name))
		default:
			elemDesc := structuralDescriptor(v.Element)
			e.linef("    anewarray %s", elemDesc)
		}
	default:
		e.line("    aconst_null")
	}
}

// arrayTypeTag returns the JVM newarray primitive-type tag for a
// builtin simple type.
func arrayTypeTag(name string) string {
	switch name {
	case types.Integer:
		return "int"
	case types.Boolean:
		return "boolean"
	case types.RealT:
		return "double"
	default:
		return "int"
	}
}
