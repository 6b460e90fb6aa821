package codegen

import (
	"strconv"

	"github.com/ilcc/ilc/internal/ast"
	"github.com/ilcc/ilc/internal/types"
)

// pushInt emits the narrowest literal-push instruction for an integer
// constant, per spec §4.5: small values use the constant-pool-free
// iconst/bipush/sipush forms, anything larger falls back to ldc.
func pushInt(e *emitter, v int32) {
	switch {
	case v >= -1 && v <= 5:
		e.linef("    iconst_%d", v)
	case v >= -128 && v <= 127:
		e.linef("    bipush %d", v)
	case v >= -32768 && v <= 32767:
		e.linef("    sipush %d", v)
	default:
		e.linef("    ldc %d", v)
	}
}

// pushReal emits the wide-constant load for a real literal.
func pushReal(e *emitter, v float64) {
	switch v {
	case 0:
		e.line("    dconst_0")
	case 1:
		e.line("    dconst_1")
	default:
		e.linef("    ldc2_w %s", strconv.FormatFloat(v, 'g', -1, 64))
	}
}

func pushBool(e *emitter, v bool) {
	if v {
		e.line("    iconst_1")
	} else {
		e.line("    iconst_0")
	}
}

// lowerExpr emits the stack-pushing code for expr. env is nil in the
// class initializer, where every name is necessarily a global.
func (g *Generator) lowerExpr(e *emitter, env *localEnv, expr ast.Expression) {
	switch n := expr.(type) {
	case *ast.IntegerLit:
		pushInt(e, n.Value)
	case *ast.RealLit:
		pushReal(e, n.Value)
	case *ast.BooleanLit:
		pushBool(e, n.Value)
	case *ast.StringLit:
		e.linef("    ldc %s", strconv.Quote(n.Value))
	case *ast.VarRef:
		g.loadVar(e, env, n.Name, n.ResolvedType)
	case *ast.ArrayAccess:
		g.loadVar(e, env, n.Name, varTypeOf(g, env, n.Name))
		g.lowerExpr(e, env, n.Index)
		e.line("    " + arrayLoadOp(n.ResolvedType))
	case *ast.RecordAccess:
		g.lowerExpr(e, env, n.Record)
		recName := g.recordNameOf(recordResolvedType(n.Record))
		e.linef("    getfield %s/%s %s", recName, n.Field, structuralDescriptor(n.ResolvedType))
	case *ast.Unary:
		g.lowerUnary(e, env, n)
	case *ast.Binary:
		g.lowerBinary(e, env, n)
	case *ast.RoutineCall:
		for _, a := range n.Args {
			g.lowerExpr(e, env, a)
		}
		e.linef("    invokestatic Main/%s%s", n.Name, g.routineDescriptorByName(n.Name))
	case *ast.TypeCast:
		g.lowerExpr(e, env, n.Expr)
		lowerCast(e, resolvedTypeOf(n.Expr), n.ResolvedType)
	}
}

func resolvedTypeOf(expr ast.Expression) types.Type {
	switch n := expr.(type) {
	case *ast.IntegerLit:
		return types.NewSimple(types.Integer)
	case *ast.RealLit:
		return types.NewSimple(types.RealT)
	case *ast.BooleanLit:
		return types.NewSimple(types.Boolean)
	case *ast.StringLit:
		return types.NewSimple(types.StringT)
	case *ast.VarRef:
		return n.ResolvedType
	case *ast.ArrayAccess:
		return n.ResolvedType
	case *ast.RecordAccess:
		return n.ResolvedType
	case *ast.Unary:
		return n.ResolvedType
	case *ast.Binary:
		return n.ResolvedType
	case *ast.RoutineCall:
		return n.ResolvedType
	case *ast.TypeCast:
		return n.ResolvedType
	}
	return nil
}

func recordResolvedType(expr ast.Expression) types.Type { return resolvedTypeOf(expr) }

func (g *Generator) recordNameOf(t types.Type) string {
	rec, ok := t.(*types.Record)
	if !ok {
		return "Record"
	}
	if name, ok := recordTypeName(g.table, rec, g.recordDecls); ok {
		return name
	}
	return "Record"
}

// varTypeOf returns the declared type of name: the local binding in env
// when there is one, otherwise the global's type. Callers use it to pick
// load/store instructions for variables, array references and record
// targets.
func varTypeOf(g *Generator, env *localEnv, name string) types.Type {
	if env != nil {
		if t, ok := env.typeOf(name); ok {
			return t
		}
	}
	return g.globalType[name]
}

func arrayLoadOp(elem types.Type) string {
	switch v := elem.(type) {
	case *types.Simple:
		switch v.Name {
		case types.Integer:
			return "iaload"
		case types.Boolean:
			return "baload"
		case types.RealT:
			return "daload"
		default:
			return "aaload"
		}
	default:
		return "aaload"
	}
}

func arrayStoreOp(elem types.Type) string {
	switch v := elem.(type) {
	case *types.Simple:
		switch v.Name {
		case types.Integer:
			return "iastore"
		case types.Boolean:
			return "bastore"
		case types.RealT:
			return "dastore"
		default:
			return "aastore"
		}
	default:
		return "aastore"
	}
}

// loadVar pushes a named variable's value: a local load if the name is
// bound in env, otherwise a getstatic against Main's field of that
// name.
func (g *Generator) loadVar(e *emitter, env *localEnv, name string, t types.Type) {
	if env != nil {
		if slot, ok := env.slot(name); ok {
			e.line("    " + loadOp(t) + " " + strconv.Itoa(slot))
			return
		}
	}
	e.linef("    getstatic Main/%s %s", name, g.globalDesc[name])
}

// storeVar pops the top of stack into a named variable.
func (g *Generator) storeVar(e *emitter, env *localEnv, name string, t types.Type) {
	if env != nil {
		if slot, ok := env.slot(name); ok {
			e.line("    " + storeOp(t) + " " + strconv.Itoa(slot))
			return
		}
	}
	e.linef("    putstatic Main/%s %s", name, g.globalDesc[name])
}

func loadOp(t types.Type) string {
	switch v := t.(type) {
	case *types.Simple:
		switch v.Name {
		case types.RealT:
			return "dload"
		case types.StringT:
			return "aload"
		default:
			return "iload"
		}
	default:
		return "aload"
	}
}

func storeOp(t types.Type) string {
	switch v := t.(type) {
	case *types.Simple:
		switch v.Name {
		case types.RealT:
			return "dstore"
		case types.StringT:
			return "astore"
		default:
			return "istore"
		}
	default:
		return "astore"
	}
}

func (g *Generator) lowerUnary(e *emitter, env *localEnv, n *ast.Unary) {
	g.lowerExpr(e, env, n.Operand)
	switch n.Op {
	case ast.UnaryNeg:
		if isRealType(n.ResolvedType) {
			e.line("    dneg")
		} else {
			e.line("    ineg")
		}
	case ast.UnaryNot:
		e.line("    iconst_1")
		e.line("    ixor")
	}
}

func (g *Generator) lowerBinary(e *emitter, env *localEnv, n *ast.Binary) {
	if isStringConcat(n) {
		g.lowerStringConcat(e, env, n)
		return
	}
	switch n.Op {
	case ast.OpAnd:
		g.lowerShortCircuit(e, env, n, false)
		return
	case ast.OpOr:
		g.lowerShortCircuit(e, env, n, true)
		return
	}

	leftType := resolvedTypeOf(n.Left)
	g.lowerExpr(e, env, n.Left)
	g.lowerExpr(e, env, n.Right)

	switch n.Op {
	case ast.OpAdd, ast.OpSub, ast.OpMul, ast.OpDiv, ast.OpMod:
		e.line("    " + arithOp(n.Op, n.ResolvedType))
	case ast.OpXor:
		e.line("    ixor")
	case ast.OpEq, ast.OpNotEq, ast.OpLt, ast.OpLtEq, ast.OpGt, ast.OpGtEq:
		lowerComparison(e, n.Op, leftType)
	}
}

func arithOp(op ast.BinaryOp, result types.Type) string {
	real := isRealType(result)
	switch op {
	case ast.OpAdd:
		if real {
			return "dadd"
		}
		return "iadd"
	case ast.OpSub:
		if real {
			return "dsub"
		}
		return "isub"
	case ast.OpMul:
		if real {
			return "dmul"
		}
		return "imul"
	case ast.OpDiv:
		if real {
			return "ddiv"
		}
		return "idiv"
	case ast.OpMod:
		if real {
			return "drem"
		}
		return "irem"
	}
	return ""
}

// lowerComparison lowers a relational operator to the bracketing
// conditional-branch-around-a-0/1-push form of spec §4.5. leftType
// decides whether an integer or real compare instruction is used.
func lowerComparison(e *emitter, op ast.BinaryOp, leftType types.Type) {
	trueLabel := e.label("cmp_true")
	endLabel := e.label("cmp_end")

	if isRealType(leftType) {
		e.line("    dcmpg")
		e.linef("    %s %s", jumpOpForReal(op), trueLabel)
	} else {
		e.linef("    %s %s", jumpOpForInt(op), trueLabel)
	}
	e.line("    iconst_0")
	e.linef("    goto %s", endLabel)
	e.linef("%s:", trueLabel)
	e.line("    iconst_1")
	e.linef("%s:", endLabel)
}

// jumpOpForInt returns the two-operand if_icmp<cond> branch, since both
// integer operands are still individually on the stack at this point.
func jumpOpForInt(op ast.BinaryOp) string {
	switch op {
	case ast.OpEq:
		return "if_icmpeq"
	case ast.OpNotEq:
		return "if_icmpne"
	case ast.OpLt:
		return "if_icmplt"
	case ast.OpLtEq:
		return "if_icmple"
	case ast.OpGt:
		return "if_icmpgt"
	case ast.OpGtEq:
		return "if_icmpge"
	}
	return "if_icmpeq"
}

// jumpOpForReal returns the single-operand branch consuming dcmpg's
// int result (-1/0/1 already pushed).
func jumpOpForReal(op ast.BinaryOp) string {
	switch op {
	case ast.OpEq:
		return "ifeq"
	case ast.OpNotEq:
		return "ifne"
	case ast.OpLt:
		return "iflt"
	case ast.OpLtEq:
		return "ifle"
	case ast.OpGt:
		return "ifgt"
	case ast.OpGtEq:
		return "ifge"
	}
	return "ifeq"
}

// lowerShortCircuit lowers 'and'/'or' without evaluating the right
// operand unless necessary. shortOnTrue is true for 'or' (short-circuit
// as soon as the left side is true), false for 'and'.
func (g *Generator) lowerShortCircuit(e *emitter, env *localEnv, n *ast.Binary, shortOnTrue bool) {
	shortLabel := e.label("sc_short")
	endLabel := e.label("sc_end")

	g.lowerExpr(e, env, n.Left)
	if shortOnTrue {
		e.linef("    ifne %s", shortLabel)
	} else {
		e.linef("    ifeq %s", shortLabel)
	}
	g.lowerExpr(e, env, n.Right)
	e.linef("    goto %s", endLabel)
	e.linef("%s:", shortLabel)
	pushBool(e, shortOnTrue)
	e.linef("%s:", endLabel)
}

func isStringConcat(n *ast.Binary) bool {
	return n.Op == ast.OpAdd && isStringType(n.ResolvedType)
}

// lowerStringConcat flattens left-first nested '+' concatenations into
// a single StringBuilder allocate/append-chain/toString, per spec §4.5.
func (g *Generator) lowerStringConcat(e *emitter, env *localEnv, n *ast.Binary) {
	e.line("    new java/lang/StringBuilder")
	e.line("    dup")
	e.line("    invokespecial java/lang/StringBuilder/<init>()V")
	g.appendConcatOperands(e, env, n)
	e.line("    invokevirtual java/lang/StringBuilder/toString()Ljava/lang/String;")
}

func (g *Generator) appendConcatOperands(e *emitter, env *localEnv, n *ast.Binary) {
	if lb, ok := n.Left.(*ast.Binary); ok && isStringConcat(lb) {
		g.appendConcatOperands(e, env, lb)
	} else {
		g.lowerExpr(e, env, n.Left)
		e.line("    " + appendSignature(resolvedTypeOf(n.Left)))
	}
	g.lowerExpr(e, env, n.Right)
	e.line("    " + appendSignature(resolvedTypeOf(n.Right)))
}

func appendSignature(t types.Type) string {
	switch v := t.(type) {
	case *types.Simple:
		switch v.Name {
		case types.Integer:
			return "invokevirtual java/lang/StringBuilder/append(I)Ljava/lang/StringBuilder;"
		case types.RealT:
			return "invokevirtual java/lang/StringBuilder/append(D)Ljava/lang/StringBuilder;"
		case types.Boolean:
			return "invokevirtual java/lang/StringBuilder/append(Z)Ljava/lang/StringBuilder;"
		default:
			return "invokevirtual java/lang/StringBuilder/append(Ljava/lang/String;)Ljava/lang/StringBuilder;"
		}
	default:
		return "invokevirtual java/lang/StringBuilder/append(Ljava/lang/String;)Ljava/lang/StringBuilder;"
	}
}

// lowerCast implements the `as` conversion of spec §4.3 between
// integer/real/boolean (a boolean is represented as a JVM int, so a
// boolean<->integer cast is a no-op conversion instruction-wise).
func lowerCast(e *emitter, from, to types.Type) {
	if from == nil || to == nil {
		return
	}
	f, fok := from.(*types.Simple)
	t, tok := to.(*types.Simple)
	if !fok || !tok || f.Name == t.Name {
		return
	}
	switch {
	case f.Name == types.Integer && t.Name == types.RealT:
		e.line("    i2d")
	case f.Name == types.RealT && t.Name == types.Integer:
		e.line("    d2i")
	case f.Name == types.Boolean && t.Name == types.RealT:
		e.line("    i2d")
	case f.Name == types.RealT && t.Name == types.Boolean:
		e.line("    d2i")
	}
}
