package semantic

import (
	"github.com/ilcc/ilc/internal/ast"
	"github.com/ilcc/ilc/internal/diag"
	"github.com/ilcc/ilc/internal/lexer"
	"github.com/ilcc/ilc/internal/types"
)

// typeOfExpr computes expr's type, recording its resolved type on the
// node (where the node has a ResolvedType field) and reporting any
// violation to ctx.Sink. It returns nil on error, which callers treat as
// "already reported, do not cascade".
func typeOfExpr(expr ast.Expression, ctx *Context) types.Type {
	switch e := expr.(type) {
	case *ast.IntegerLit:
		return types.NewSimple(types.Integer)
	case *ast.RealLit:
		return types.NewSimple(types.RealT)
	case *ast.BooleanLit:
		return types.NewSimple(types.Boolean)
	case *ast.StringLit:
		return types.NewSimple(types.StringT)

	case *ast.VarRef:
		t, ok := ctx.Table.LookupVar(e.Name)
		if !ok {
			ctx.Sink.Addf(diag.Semantic, e.Pos(), "Undefined variable '%s'.", e.Name)
			return nil
		}
		e.ResolvedType = t
		return t

	case *ast.ArrayAccess:
		return typeOfArrayAccess(e, ctx)

	case *ast.RecordAccess:
		return typeOfRecordAccess(e, ctx)

	case *ast.Unary:
		return typeOfUnary(e, ctx)

	case *ast.Binary:
		return typeOfBinary(e, ctx)

	case *ast.RoutineCall:
		return typeOfCall(e.Pos(), e.Name, e.Args, ctx, func(t types.Type) { e.ResolvedType = t })

	case *ast.TypeCast:
		return typeOfCast(e, ctx)

	default:
		return nil
	}
}

func typeOfArrayAccess(e *ast.ArrayAccess, ctx *Context) types.Type {
	arrType, ok := ctx.Table.LookupVar(e.Name)
	if !ok {
		ctx.Sink.Addf(diag.Semantic, e.Pos(), "Undefined variable '%s'.", e.Name)
		return nil
	}
	arr, ok := arrType.(*types.Array)
	if !ok {
		ctx.Sink.Addf(diag.Semantic, e.Pos(), "'%s' is not an array.", e.Name)
		return nil
	}
	idxType := typeOfExpr(e.Index, ctx)
	if idxType != nil && idxType.String() != types.Integer {
		ctx.Sink.Addf(diag.Semantic, e.Index.Pos(), "Array index must be of type integer.")
	}
	if lit, ok := e.Index.(*ast.IntegerLit); ok {
		if lit.Value < 0 || lit.Value > arr.Size-1 {
			ctx.Sink.Addf(diag.Semantic, lit.Pos(), "Array index %d out of bounds for '%s' (size %d).", lit.Value, e.Name, arr.Size)
		}
	}
	e.ResolvedType = arr.Element
	return arr.Element
}

func typeOfRecordAccess(e *ast.RecordAccess, ctx *Context) types.Type {
	baseType := typeOfExpr(e.Record, ctx)
	if baseType == nil {
		return nil
	}
	rec, ok := resolveRecordType(ctx, baseType)
	if !ok {
		ctx.Sink.Addf(diag.Semantic, e.Pos(), "'%s' is not a record type.", baseType.String())
		return nil
	}
	ft, ok := rec.FieldType(e.Field)
	if !ok {
		ctx.Sink.Addf(diag.Semantic, e.Pos(), "Field '%s' does not exist on this record.", e.Field)
		return nil
	}
	e.ResolvedType = ft
	return ft
}

func typeOfUnary(e *ast.Unary, ctx *Context) types.Type {
	operandType := typeOfExpr(e.Operand, ctx)
	if operandType == nil {
		return nil
	}
	simple, ok := operandType.(*types.Simple)
	if !ok {
		ctx.Sink.Addf(diag.Semantic, e.Pos(), "Operator '%s' requires a scalar operand.", e.Op)
		return nil
	}
	switch e.Op {
	case ast.UnaryNot:
		if simple.Name != types.Boolean {
			ctx.Sink.Addf(diag.Semantic, e.Pos(), "Operator 'not' requires a boolean operand, got %s.", simple)
			return nil
		}
		e.ResolvedType = operandType
		return operandType
	case ast.UnaryNeg:
		if !simple.IsNumeric() {
			ctx.Sink.Addf(diag.Semantic, e.Pos(), "Unary '-' requires a numeric operand, got %s.", simple)
			return nil
		}
		e.ResolvedType = operandType
		return operandType
	}
	return nil
}

var logicalOps = map[ast.BinaryOp]bool{ast.OpAnd: true, ast.OpOr: true, ast.OpXor: true}
var comparisonOps = map[ast.BinaryOp]bool{
	ast.OpEq: true, ast.OpNotEq: true, ast.OpLt: true, ast.OpLtEq: true, ast.OpGt: true, ast.OpGtEq: true,
}

func typeOfBinary(e *ast.Binary, ctx *Context) types.Type {
	left := typeOfExpr(e.Left, ctx)
	right := typeOfExpr(e.Right, ctx)
	if left == nil || right == nil {
		return nil
	}

	switch {
	case logicalOps[e.Op]:
		ls, lok := left.(*types.Simple)
		rs, rok := right.(*types.Simple)
		if !lok || !rok || ls.Name != types.Boolean || rs.Name != types.Boolean {
			ctx.Sink.Addf(diag.Semantic, e.Pos(), "Operator '%s' requires boolean operands.", e.Op)
			return nil
		}
		e.ResolvedType = types.NewSimple(types.Boolean)
		return e.ResolvedType

	case comparisonOps[e.Op]:
		if !left.Equals(right) {
			if _, ok := types.ResultOfBinaryNumeric(left, right); !ok {
				ctx.Sink.Addf(diag.Semantic, e.Pos(), "Cannot compare %s with %s.", left, right)
				return nil
			}
		}
		e.ResolvedType = types.NewSimple(types.Boolean)
		return e.ResolvedType

	default: // '+' '-' '*' '/' '%'
		result, ok := types.ResultOfBinaryNumeric(left, right)
		if !ok {
			ctx.Sink.Addf(diag.Semantic, e.Pos(), "Operator '%s' requires numeric operands, got %s and %s.", e.Op, left, right)
			return nil
		}
		e.ResolvedType = result
		return result
	}
}

func typeOfCast(e *ast.TypeCast, ctx *Context) types.Type {
	src := typeOfExpr(e.Expr, ctx)
	target, ok := resolveType(ctx, e.Target)
	if src == nil || !ok {
		return nil
	}
	if !types.CastableBetween(src, target) {
		ctx.Sink.Addf(diag.Semantic, e.Pos(), "Cannot cast %s to %s.", src, target)
		return nil
	}
	e.ResolvedType = target
	return target
}

// typeOfCall type-checks a routine invocation (used both in expression
// position via RoutineCall and statement position via RoutineCallStmt)
// and reports the routine's resolved return type through onResolved,
// which the caller uses to set ResolvedType on whichever node kind it
// has.
func typeOfCall(pos lexer.Position, name string, args []ast.Expression, ctx *Context, onResolved func(types.Type)) types.Type {
	sig, ok := ctx.Table.LookupRoutine(name)
	if !ok {
		ctx.Sink.Addf(diag.Semantic, pos, "Undefined routine '%s'.", name)
		return nil
	}
	if len(args) != len(sig.Params) {
		ctx.Sink.Addf(diag.Semantic, pos, "Wrong number of arguments to '%s': expects %d, got %d.", name, len(sig.Params), len(args))
	}
	n := len(args)
	if len(sig.Params) < n {
		n = len(sig.Params)
	}
	for i := 0; i < n; i++ {
		argType := typeOfExpr(args[i], ctx)
		if argType != nil && !types.Compatible(sig.Params[i], argType) {
			ctx.Sink.Addf(diag.Semantic, args[i].Pos(), "Argument %d to '%s' has type %s, expected %s.", i+1, name, argType, sig.Params[i])
		}
	}
	if onResolved != nil && sig.ReturnType != nil {
		onResolved(sig.ReturnType)
	}
	return sig.ReturnType
}
