package optimizer

import "github.com/ilcc/ilc/internal/ast"

// eliminateUnusedVars drops any VarDecl/ArrayDecl whose name never
// appears as a use, per spec §4.4. The global use-set is collected over
// the whole program, routine bodies included, so a name used inside any
// routine keeps a top-level declaration of the same name alive. A local
// is kept when its name is in its routine's own use-set or in the
// global one.
func (o *optimizerState) eliminateUnusedVars(stmts []ast.Statement) []ast.Statement {
	globalUses := make(map[string]bool)
	for _, stmt := range stmts {
		if decl, ok := stmt.(*ast.RoutineDecl); ok {
			collectUsesFromStmts(decl.Body, globalUses)
			continue
		}
		collectUsesFromStmt(stmt, globalUses)
	}

	out := make([]ast.Statement, 0, len(stmts))
	for _, stmt := range stmts {
		switch s := stmt.(type) {
		case *ast.VarDecl:
			if !globalUses[s.Name] {
				o.record(PassUnusedVars, s.Pos().Line, s.String(), "", "dropped unused global variable")
				continue
			}
		case *ast.ArrayDecl:
			if !globalUses[s.Name] {
				o.record(PassUnusedVars, s.Pos().Line, s.String(), "", "dropped unused global array")
				continue
			}
		case *ast.RoutineDecl:
			s.Body = o.eliminateLocalUnusedVars(s.Body, globalUses)
		}
		out = append(out, stmt)
	}
	return out
}

// eliminateLocalUnusedVars drops locals inside one routine body whose
// name is not in the union of that body's own uses and the program's
// global uses.
func (o *optimizerState) eliminateLocalUnusedVars(body []ast.Statement, globalUses map[string]bool) []ast.Statement {
	localUses := make(map[string]bool)
	collectUsesFromStmts(body, localUses)

	live := func(name string) bool { return localUses[name] || globalUses[name] }

	out := make([]ast.Statement, 0, len(body))
	for _, stmt := range body {
		switch s := stmt.(type) {
		case *ast.VarDecl:
			if !live(s.Name) {
				o.record(PassUnusedVars, s.Pos().Line, s.String(), "", "dropped unused local variable")
				continue
			}
		case *ast.ArrayDecl:
			if !live(s.Name) {
				o.record(PassUnusedVars, s.Pos().Line, s.String(), "", "dropped unused local array")
				continue
			}
		}
		out = append(out, stmt)
	}
	return out
}

func collectUsesFromStmts(stmts []ast.Statement, uses map[string]bool) {
	for _, stmt := range stmts {
		collectUsesFromStmt(stmt, uses)
	}
}

func collectUsesFromStmt(stmt ast.Statement, uses map[string]bool) {
	switch s := stmt.(type) {
	case *ast.VarDecl:
		if s.Init != nil {
			collectUsesFromExpr(s.Init, uses)
		}
	case *ast.Assignment:
		uses[assignmentRootName(s.Target)] = true
		if s.Index != nil {
			collectUsesFromExpr(s.Index, uses)
		}
		collectUsesFromExpr(s.Value, uses)
	case *ast.IfStmt:
		collectUsesFromExpr(s.Cond, uses)
		collectUsesFromStmts(s.Then, uses)
		collectUsesFromStmts(s.Else, uses)
	case *ast.WhileStmt:
		collectUsesFromExpr(s.Cond, uses)
		collectUsesFromStmts(s.Body, uses)
	case *ast.ForLoop:
		uses[s.Var] = true
		collectUsesFromExpr(s.Start, uses)
		collectUsesFromExpr(s.End_, uses)
		collectUsesFromStmts(s.Body, uses)
	case *ast.PrintStmt:
		collectUsesFromExpr(s.Expr, uses)
	case *ast.ReadStmt:
		uses[s.Var] = true
	case *ast.ReturnStmt:
		if s.Expr != nil {
			collectUsesFromExpr(s.Expr, uses)
		}
	case *ast.RoutineCallStmt:
		for _, a := range s.Args {
			collectUsesFromExpr(a, uses)
		}
	}
}

func collectUsesFromExpr(expr ast.Expression, uses map[string]bool) {
	switch e := expr.(type) {
	case *ast.VarRef:
		uses[e.Name] = true
	case *ast.ArrayAccess:
		uses[e.Name] = true
		collectUsesFromExpr(e.Index, uses)
	case *ast.RecordAccess:
		collectUsesFromExpr(e.Record, uses)
	case *ast.Unary:
		collectUsesFromExpr(e.Operand, uses)
	case *ast.Binary:
		collectUsesFromExpr(e.Left, uses)
		collectUsesFromExpr(e.Right, uses)
	case *ast.RoutineCall:
		for _, a := range e.Args {
			collectUsesFromExpr(a, uses)
		}
	case *ast.TypeCast:
		collectUsesFromExpr(e.Expr, uses)
	}
}

// assignmentRootName returns the base variable name of an assignment
// target, stripping a dotted ".field" suffix for record assignments.
func assignmentRootName(target string) string {
	for i := 0; i < len(target); i++ {
		if target[i] == '.' {
			return target[:i]
		}
	}
	return target
}
