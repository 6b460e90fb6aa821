package ast

import (
	"strconv"
	"strings"

	"github.com/ilcc/ilc/internal/types"
)

// IntegerLit is an integer literal.
type IntegerLit struct {
	BaseNode
	Value int32
}

func (n *IntegerLit) expressionNode() {}
func (n *IntegerLit) String() string  { return strconv.Itoa(int(n.Value)) }

// RealLit is a floating-point literal.
type RealLit struct {
	BaseNode
	Value float64
}

func (n *RealLit) expressionNode() {}
func (n *RealLit) String() string  { return strconv.FormatFloat(n.Value, 'g', -1, 64) }

// BooleanLit is a `true`/`false` literal.
type BooleanLit struct {
	BaseNode
	Value bool
}

func (n *BooleanLit) expressionNode() {}
func (n *BooleanLit) String() string  { return strconv.FormatBool(n.Value) }

// StringLit is a (already-unescaped) string literal.
type StringLit struct {
	BaseNode
	Value string
}

func (n *StringLit) expressionNode() {}
func (n *StringLit) String() string  { return strconv.Quote(n.Value) }

// VarRef references a plain variable or parameterless routine by name.
type VarRef struct {
	BaseNode
	Name         string
	ResolvedType types.Type // filled in by the semantic analyzer
}

func (n *VarRef) expressionNode() {}
func (n *VarRef) String() string  { return n.Name }

// ArrayAccess is `Name [ Index ]`.
type ArrayAccess struct {
	BaseNode
	Name         string
	Index        Expression
	ResolvedType types.Type
}

func (n *ArrayAccess) expressionNode() {}
func (n *ArrayAccess) String() string  { return n.Name + "[" + n.Index.String() + "]" }

// RecordAccess is `Record . Field`.
type RecordAccess struct {
	BaseNode
	Record       Expression
	Field        string
	ResolvedType types.Type
}

func (n *RecordAccess) expressionNode() {}
func (n *RecordAccess) String() string  { return n.Record.String() + "." + n.Field }

// UnaryOp identifies the operator of a Unary expression.
type UnaryOp string

const (
	UnaryNeg UnaryOp = "-"
	UnaryNot UnaryOp = "not"
)

// Unary is a prefix unary operation.
type Unary struct {
	BaseNode
	Op           UnaryOp
	Operand      Expression
	ResolvedType types.Type
}

func (n *Unary) expressionNode() {}
func (n *Unary) String() string  { return string(n.Op) + " " + n.Operand.String() }

// BinaryOp identifies the operator of a Binary expression.
type BinaryOp string

const (
	OpAdd   BinaryOp = "+"
	OpSub   BinaryOp = "-"
	OpMul   BinaryOp = "*"
	OpDiv   BinaryOp = "/"
	OpMod   BinaryOp = "%"
	OpEq    BinaryOp = "="
	OpNotEq BinaryOp = "/="
	OpLt    BinaryOp = "<"
	OpLtEq  BinaryOp = "<="
	OpGt    BinaryOp = ">"
	OpGtEq  BinaryOp = ">="
	OpAnd   BinaryOp = "and"
	OpOr    BinaryOp = "or"
	OpXor   BinaryOp = "xor"
)

// Binary is an infix binary operation.
type Binary struct {
	BaseNode
	Left, Right  Expression
	Op           BinaryOp
	ResolvedType types.Type
}

func (n *Binary) expressionNode() {}
func (n *Binary) String() string {
	return "(" + n.Left.String() + " " + string(n.Op) + " " + n.Right.String() + ")"
}

// RoutineCall is `Name ( Args... )`, used wherever a call appears in
// expression position (it produces a value).
type RoutineCall struct {
	BaseNode
	Name         string
	Args         []Expression
	ResolvedType types.Type
}

func (n *RoutineCall) expressionNode() {}
func (n *RoutineCall) String() string {
	args := make([]string, len(n.Args))
	for i, a := range n.Args {
		args[i] = a.String()
	}
	return n.Name + "(" + strings.Join(args, ", ") + ")"
}

// TypeCast is `Expr as Target`.
type TypeCast struct {
	BaseNode
	Expr         Expression
	Target       TypeExpr
	ResolvedType types.Type
}

func (n *TypeCast) expressionNode() {}
func (n *TypeCast) String() string  { return "(" + n.Expr.String() + " as " + n.Target.String() + ")" }
