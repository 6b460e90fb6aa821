package semantic

import "github.com/ilcc/ilc/internal/ast"

// topLevelPass is pass 5: visit every top-level statement that is not a
// declaration already handled by passes 1-4 (assignments, if/while/for,
// print/read, and top-level calls), in source order.
type topLevelPass struct{}

func (p *topLevelPass) Name() string { return "remaining top-level statements" }

func (p *topLevelPass) Run(prog *ast.Program, ctx *Context) {
	for _, stmt := range prog.Statements {
		switch stmt.(type) {
		case *ast.VarDecl, *ast.ArrayDecl, *ast.TypeDecl, *ast.RoutineDecl:
			continue // already handled by passes 1-4
		default:
			analyzeStmt(stmt, ctx)
		}
	}
}
