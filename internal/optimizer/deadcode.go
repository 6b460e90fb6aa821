package optimizer

import "github.com/ilcc/ilc/internal/ast"

// eliminateDeadCode implements the statement-rewrite pass of spec §4.4:
// it drops statements after an unconditional return, collapses an `if`
// with a literal-boolean condition to whichever branch runs (splicing
// that branch's statements in place), and empties a `while false` body.
func (o *optimizerState) eliminateDeadCode(stmts []ast.Statement) []ast.Statement {
	out := make([]ast.Statement, 0, len(stmts))
	for i, stmt := range stmts {
		rewritten := o.rewriteStmt(stmt)
		out = append(out, rewritten...)

		if endsInReturn(rewritten) && i < len(stmts)-1 {
			o.record(PassDeadCode, stmt.Pos().Line, "", "", "dropped unreachable code after return")
			break
		}
	}
	return out
}

func endsInReturn(stmts []ast.Statement) bool {
	if len(stmts) == 0 {
		return false
	}
	_, ok := stmts[len(stmts)-1].(*ast.ReturnStmt)
	return ok
}

// rewriteStmt rewrites one statement, returning the statements that
// should replace it — usually exactly one, but an `if true`/`if false`
// collapse splices in its surviving branch's whole statement list.
func (o *optimizerState) rewriteStmt(stmt ast.Statement) []ast.Statement {
	switch s := stmt.(type) {
	case *ast.IfStmt:
		return o.rewriteIf(s)
	case *ast.WhileStmt:
		s.Body = o.eliminateDeadCode(s.Body)
		if lit, ok := s.Cond.(*ast.BooleanLit); ok && !lit.Value && len(s.Body) > 0 {
			o.record(PassDeadCode, s.Pos().Line, s.String(), "", "eliminated 'while false' body")
			s.Body = nil
		}
		return []ast.Statement{s}
	case *ast.ForLoop:
		s.Body = o.eliminateDeadCode(s.Body)
		return []ast.Statement{s}
	case *ast.RoutineDecl:
		s.Body = o.eliminateDeadCode(s.Body)
		return []ast.Statement{s}
	default:
		return []ast.Statement{stmt}
	}
}

func (o *optimizerState) rewriteIf(s *ast.IfStmt) []ast.Statement {
	s.Then = o.eliminateDeadCode(s.Then)
	if s.Else != nil {
		s.Else = o.eliminateDeadCode(s.Else)
	}

	lit, ok := s.Cond.(*ast.BooleanLit)
	if !ok {
		return []ast.Statement{s}
	}

	if lit.Value {
		o.record(PassDeadCode, s.Pos().Line, s.String(), "", "collapsed 'if true' to its then-branch")
		return asBlock(s.BaseNode, s.Then)
	}

	o.record(PassDeadCode, s.Pos().Line, s.String(), "", "collapsed 'if false' to its else-branch")
	return asBlock(s.BaseNode, s.Else)
}

// asBlock returns body as-is, or a single EmptyStmt placeholder when
// body is empty, so an eliminated branch never vanishes into nothing
// when it is itself the last statement a caller checks with
// endsInReturn.
func asBlock(base ast.BaseNode, body []ast.Statement) []ast.Statement {
	if len(body) == 0 {
		return []ast.Statement{&ast.EmptyStmt{BaseNode: base}}
	}
	return body
}
