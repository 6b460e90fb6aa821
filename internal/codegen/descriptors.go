package codegen

import (
	"github.com/ilcc/ilc/internal/ast"
	"github.com/ilcc/ilc/internal/symtab"
	"github.com/ilcc/ilc/internal/types"
)

var builtinDescriptors = map[string]string{
	types.Integer: "I",
	types.Boolean: "Z",
	types.RealT:   "D",
	types.StringT: "Ljava/lang/String;",
}

// descriptor renders texpr using the field/parameter descriptor grammar
// of spec §4.5: I integer, Z boolean, D real, Ljava/lang/String; string,
// L<Name>; record, [<elem> array. A SimpleTypeExpr's name is resolved
// through the type namespace only to decide which of those four shapes
// applies (a builtin alias renders as its underlying builtin, not as
// L<Name>;); the name itself is what gets spelled in the record form.
func descriptor(table *symtab.Table, texpr ast.TypeExpr) string {
	switch t := texpr.(type) {
	case *ast.SimpleTypeExpr:
		if d, ok := builtinDescriptors[t.Name]; ok {
			return d
		}
		resolved, ok := table.LookupType(t.Name)
		if !ok {
			return "L" + capitalize(t.Name) + ";"
		}
		switch v := resolved.(type) {
		case *types.Record:
			return "L" + capitalize(t.Name) + ";"
		case *types.Simple:
			if d, ok := builtinDescriptors[v.Name]; ok {
				return d
			}
			return "L" + capitalize(v.Name) + ";"
		case *types.Array:
			return "[" + structuralDescriptor(v.Element)
		}
		return "L" + capitalize(t.Name) + ";"

	case *ast.ArrayTypeExpr:
		return "[" + descriptor(table, t.Element)

	default:
		return "V"
	}
}

// structuralDescriptor renders an already-resolved types.Type (used for
// an array element reached through a chain of named aliases, where no
// further ast.TypeExpr is available).
func structuralDescriptor(t types.Type) string {
	switch v := t.(type) {
	case *types.Simple:
		if d, ok := builtinDescriptors[v.Name]; ok {
			return d
		}
		return "L" + capitalize(v.Name) + ";"
	case *types.Array:
		return "[" + structuralDescriptor(v.Element)
	case *types.Record:
		return "Lrecord;"
	default:
		return "V"
	}
}

// returnDescriptor renders a routine's return type, or "V" for void.
func returnDescriptor(table *symtab.Table, ret ast.TypeExpr) string {
	if ret == nil {
		return "V"
	}
	return descriptor(table, ret)
}

// methodDescriptor renders `(<param-descriptors>)<return-descriptor>`.
func methodDescriptor(table *symtab.Table, params []ast.Param, ret ast.TypeExpr) string {
	s := "("
	for _, p := range params {
		s += descriptor(table, p.Type)
	}
	return s + ")" + returnDescriptor(table, ret)
}

// slotWidth returns how many local-variable slots a resolved type
// occupies: reals take two consecutive indices, everything else one.
func slotWidth(t types.Type) int {
	if s, ok := t.(*types.Simple); ok && s.Name == types.RealT {
		return 2
	}
	return 1
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'a' && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}
	return string(b)
}
