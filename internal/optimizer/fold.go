package optimizer

import "github.com/ilcc/ilc/internal/ast"

// foldStatements recurses through every statement form, folding
// contained expressions bottom-up.
func (o *optimizerState) foldStatements(stmts []ast.Statement) []ast.Statement {
	for i, stmt := range stmts {
		stmts[i] = o.foldStatement(stmt)
	}
	return stmts
}

func (o *optimizerState) foldStatement(stmt ast.Statement) ast.Statement {
	switch s := stmt.(type) {
	case *ast.VarDecl:
		if s.Init != nil {
			s.Init = o.foldExpr(s.Init)
		}
	case *ast.Assignment:
		if s.Index != nil {
			s.Index = o.foldExpr(s.Index)
		}
		s.Value = o.foldExpr(s.Value)
	case *ast.IfStmt:
		s.Cond = o.foldExpr(s.Cond)
		s.Then = o.foldStatements(s.Then)
		if s.Else != nil {
			s.Else = o.foldStatements(s.Else)
		}
	case *ast.WhileStmt:
		s.Cond = o.foldExpr(s.Cond)
		s.Body = o.foldStatements(s.Body)
	case *ast.ForLoop:
		s.Start = o.foldExpr(s.Start)
		s.End_ = o.foldExpr(s.End_)
		s.Body = o.foldStatements(s.Body)
	case *ast.PrintStmt:
		s.Expr = o.foldExpr(s.Expr)
	case *ast.ReturnStmt:
		if s.Expr != nil {
			s.Expr = o.foldExpr(s.Expr)
		}
	case *ast.RoutineCallStmt:
		for i, a := range s.Args {
			s.Args[i] = o.foldExpr(a)
		}
	case *ast.RoutineDecl:
		s.Body = o.foldStatements(s.Body)
	}
	return stmt
}

// foldExpr recurses bottom-up, folding purely-literal subexpressions of
// the supported operators into a single literal node.
func (o *optimizerState) foldExpr(expr ast.Expression) ast.Expression {
	switch e := expr.(type) {
	case *ast.Unary:
		e.Operand = o.foldExpr(e.Operand)
		return o.foldUnary(e)
	case *ast.Binary:
		e.Left = o.foldExpr(e.Left)
		e.Right = o.foldExpr(e.Right)
		return o.foldBinary(e)
	case *ast.ArrayAccess:
		e.Index = o.foldExpr(e.Index)
		return e
	case *ast.RecordAccess:
		e.Record = o.foldExpr(e.Record)
		return e
	case *ast.RoutineCall:
		for i, a := range e.Args {
			e.Args[i] = o.foldExpr(a)
		}
		return e
	case *ast.TypeCast:
		e.Expr = o.foldExpr(e.Expr)
		return e
	default:
		return expr
	}
}

func (o *optimizerState) foldUnary(e *ast.Unary) ast.Expression {
	switch operand := e.Operand.(type) {
	case *ast.IntegerLit:
		if e.Op == ast.UnaryNeg {
			lit := &ast.IntegerLit{BaseNode: e.BaseNode, Value: -operand.Value}
			o.record(PassConstantFold, e.Pos().Line, e.String(), lit.String(), "folded constant unary minus")
			return lit
		}
	case *ast.RealLit:
		if e.Op == ast.UnaryNeg {
			lit := &ast.RealLit{BaseNode: e.BaseNode, Value: -operand.Value}
			o.record(PassConstantFold, e.Pos().Line, e.String(), lit.String(), "folded constant unary minus")
			return lit
		}
	case *ast.BooleanLit:
		if e.Op == ast.UnaryNot {
			lit := &ast.BooleanLit{BaseNode: e.BaseNode, Value: !operand.Value}
			o.record(PassConstantFold, e.Pos().Line, e.String(), lit.String(), "folded constant 'not'")
			return lit
		}
	}
	return e
}

func (o *optimizerState) foldBinary(e *ast.Binary) ast.Expression {
	if li, lok := e.Left.(*ast.IntegerLit); lok {
		if ri, rok := e.Right.(*ast.IntegerLit); rok {
			if folded, ok := foldIntInt(e.BaseNode, li.Value, e.Op, ri.Value); ok {
				o.record(PassConstantFold, e.Pos().Line, e.String(), folded.String(), "folded constant integer expression")
				return folded
			}
		}
	}
	if lb, lok := numericValue(e.Left); lok {
		if rb, rok := numericValue(e.Right); rok {
			if folded, ok := foldNumeric(e.BaseNode, lb, e.Op, rb); ok {
				o.record(PassConstantFold, e.Pos().Line, e.String(), folded.String(), "folded constant numeric expression")
				return folded
			}
		}
	}
	if lbo, lok := e.Left.(*ast.BooleanLit); lok {
		if rbo, rok := e.Right.(*ast.BooleanLit); rok {
			if folded, ok := foldBoolBool(e.BaseNode, lbo.Value, e.Op, rbo.Value); ok {
				o.record(PassConstantFold, e.Pos().Line, e.String(), folded.String(), "folded constant boolean expression")
				return folded
			}
		}
	}
	return e
}

// numericValue extracts a literal's numeric value as a float64 for
// mixed integer/real folding, reporting whether expr is a numeric
// literal at all.
func numericValue(expr ast.Expression) (float64, bool) {
	switch e := expr.(type) {
	case *ast.IntegerLit:
		return float64(e.Value), true
	case *ast.RealLit:
		return e.Value, true
	default:
		return 0, false
	}
}

// foldIntInt folds two integer literals for arithmetic/comparison ops,
// skipping division and modulo by zero (left for the semantic analyzer
// or runtime to diagnose, not a constant-folding concern).
func foldIntInt(base ast.BaseNode, a int32, op ast.BinaryOp, b int32) (ast.Expression, bool) {
	switch op {
	case ast.OpAdd:
		return &ast.IntegerLit{BaseNode: base, Value: a + b}, true
	case ast.OpSub:
		return &ast.IntegerLit{BaseNode: base, Value: a - b}, true
	case ast.OpMul:
		return &ast.IntegerLit{BaseNode: base, Value: a * b}, true
	case ast.OpDiv:
		if b == 0 {
			return nil, false
		}
		return &ast.IntegerLit{BaseNode: base, Value: a / b}, true
	case ast.OpMod:
		if b == 0 {
			return nil, false
		}
		return &ast.IntegerLit{BaseNode: base, Value: a % b}, true
	case ast.OpEq:
		return &ast.BooleanLit{BaseNode: base, Value: a == b}, true
	case ast.OpNotEq:
		return &ast.BooleanLit{BaseNode: base, Value: a != b}, true
	case ast.OpLt:
		return &ast.BooleanLit{BaseNode: base, Value: a < b}, true
	case ast.OpLtEq:
		return &ast.BooleanLit{BaseNode: base, Value: a <= b}, true
	case ast.OpGt:
		return &ast.BooleanLit{BaseNode: base, Value: a > b}, true
	case ast.OpGtEq:
		return &ast.BooleanLit{BaseNode: base, Value: a >= b}, true
	default:
		return nil, false
	}
}

// foldNumeric folds a mixed integer/real (or real/real) pair, promoting
// the result to real per the non-integer/integer rule. It is only
// reached once foldIntInt has already handled the pure-integer case.
func foldNumeric(base ast.BaseNode, a float64, op ast.BinaryOp, b float64) (ast.Expression, bool) {
	switch op {
	case ast.OpAdd:
		return &ast.RealLit{BaseNode: base, Value: a + b}, true
	case ast.OpSub:
		return &ast.RealLit{BaseNode: base, Value: a - b}, true
	case ast.OpMul:
		return &ast.RealLit{BaseNode: base, Value: a * b}, true
	case ast.OpDiv:
		if b == 0 {
			return nil, false
		}
		return &ast.RealLit{BaseNode: base, Value: a / b}, true
	case ast.OpEq:
		return &ast.BooleanLit{BaseNode: base, Value: a == b}, true
	case ast.OpNotEq:
		return &ast.BooleanLit{BaseNode: base, Value: a != b}, true
	case ast.OpLt:
		return &ast.BooleanLit{BaseNode: base, Value: a < b}, true
	case ast.OpLtEq:
		return &ast.BooleanLit{BaseNode: base, Value: a <= b}, true
	case ast.OpGt:
		return &ast.BooleanLit{BaseNode: base, Value: a > b}, true
	case ast.OpGtEq:
		return &ast.BooleanLit{BaseNode: base, Value: a >= b}, true
	default:
		return nil, false
	}
}

func foldBoolBool(base ast.BaseNode, a bool, op ast.BinaryOp, b bool) (ast.Expression, bool) {
	switch op {
	case ast.OpAnd:
		return &ast.BooleanLit{BaseNode: base, Value: a && b}, true
	case ast.OpOr:
		return &ast.BooleanLit{BaseNode: base, Value: a || b}, true
	case ast.OpXor:
		return &ast.BooleanLit{BaseNode: base, Value: a != b}, true
	case ast.OpEq:
		return &ast.BooleanLit{BaseNode: base, Value: a == b}, true
	case ast.OpNotEq:
		return &ast.BooleanLit{BaseNode: base, Value: a != b}, true
	default:
		return nil, false
	}
}
