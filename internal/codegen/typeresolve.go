package codegen

import (
	"github.com/ilcc/ilc/internal/ast"
	"github.com/ilcc/ilc/internal/symtab"
	"github.com/ilcc/ilc/internal/types"
)

// resolveTypeExpr mirrors the semantic analyzer's own type resolution
// (kept private to that package) since the generator needs resolved
// types.Type values to pick instructions, not just descriptor strings.
func resolveTypeExpr(table *symtab.Table, texpr ast.TypeExpr) types.Type {
	switch t := texpr.(type) {
	case *ast.SimpleTypeExpr:
		if resolved, ok := table.LookupType(t.Name); ok {
			return resolved
		}
		return types.NewSimple(t.Name)
	case *ast.ArrayTypeExpr:
		return types.NewArray(resolveTypeExpr(table, t.Element), t.Size)
	default:
		return nil
	}
}

// recordTypeName finds the declared name of a resolved record type by
// scanning the top-level type declarations; it only ever needs to
// succeed for types a SimpleTypeExpr could have named, since records
// never appear as anonymous field/array-element types.
func recordTypeName(table *symtab.Table, rec *types.Record, decls []*ast.TypeDecl) (string, bool) {
	for _, d := range decls {
		if resolved, ok := table.LookupType(d.Name); ok {
			if r, ok := resolved.(*types.Record); ok && r.Equals(rec) {
				return d.Name, true
			}
		}
	}
	return "", false
}

func isStringType(t types.Type) bool {
	s, ok := t.(*types.Simple)
	return ok && s.Name == types.StringT
}

func isRealType(t types.Type) bool {
	s, ok := t.(*types.Simple)
	return ok && s.Name == types.RealT
}

