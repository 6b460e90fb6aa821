package semantic

import (
	"github.com/ilcc/ilc/internal/ast"
	"github.com/ilcc/ilc/internal/diag"
	"github.com/ilcc/ilc/internal/types"
)

// resolveType turns an AST-level TypeExpr (as written in source) into a
// resolved types.Type, consulting ctx.Table's type namespace for names
// and recursing into array/record structure. It reports an error and
// returns (nil, false) for an unknown type name.
func resolveType(ctx *Context, texpr ast.TypeExpr) (types.Type, bool) {
	switch t := texpr.(type) {
	case *ast.SimpleTypeExpr:
		resolved, ok := ctx.Table.LookupType(t.Name)
		if !ok {
			ctx.Sink.Addf(diag.Semantic, t.Pos(), "Unknown type '%s'.", t.Name)
			return nil, false
		}
		return resolved, true

	case *ast.ArrayTypeExpr:
		elem, ok := resolveType(ctx, t.Element)
		if !ok {
			return nil, false
		}
		if t.Size <= 0 {
			ctx.Sink.Addf(diag.Semantic, t.Pos(), "Array size must be greater than zero.")
			return nil, false
		}
		return types.NewArray(elem, t.Size), true

	case *ast.RecordTypeExpr:
		fields := make([]types.Field, 0, len(t.Fields))
		ok := true
		for _, f := range t.Fields {
			ft, fok := resolveType(ctx, f.Type)
			if !fok {
				ok = false
				continue
			}
			fields = append(fields, types.Field{Name: f.Name, Type: ft})
		}
		if !ok {
			return nil, false
		}
		return types.NewRecord(fields), true

	default:
		return nil, false
	}
}

// resolveRecordType resolves texpr to a *types.Record reached by
// following Simple-type aliases, for a[.]record field-access chain.
func resolveRecordType(ctx *Context, t types.Type) (*types.Record, bool) {
	for {
		switch v := t.(type) {
		case *types.Record:
			return v, true
		case *types.Simple:
			next, ok := ctx.Table.LookupType(v.Name)
			if !ok || next.Equals(v) {
				return nil, false
			}
			t = next
		default:
			return nil, false
		}
	}
}

// hasReturn reports whether the body of a routine is guaranteed to reach
// a return on every path, per spec §4.3: true iff the body contains a
// top-level ReturnStmt, or ends in an if/else whose both branches
// satisfy hasReturn.
func hasReturn(body []ast.Statement) bool {
	for _, stmt := range body {
		if _, ok := stmt.(*ast.ReturnStmt); ok {
			return true
		}
	}
	if n := len(body); n > 0 {
		if ifs, ok := body[n-1].(*ast.IfStmt); ok {
			return ifs.Else != nil && hasReturn(ifs.Then) && hasReturn(ifs.Else)
		}
	}
	return false
}
