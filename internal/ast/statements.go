package ast

import "strings"

// VarDecl is `var Name : Type (is Init)?`.
type VarDecl struct {
	BaseNode
	Name string
	Type TypeExpr
	Init Expression // nil if no initializer
}

func (n *VarDecl) statementNode() {}
func (n *VarDecl) String() string {
	s := "var " + n.Name + ": " + n.Type.String()
	if n.Init != nil {
		s += " is " + n.Init.String()
	}
	return s
}

// ArrayDecl is `var Name : array [ Size ] Element`.
type ArrayDecl struct {
	BaseNode
	Name string
	Type *ArrayTypeExpr
}

func (n *ArrayDecl) statementNode() {}
func (n *ArrayDecl) String() string { return "var " + n.Name + ": " + n.Type.String() }

// TypeDecl is `type Name is Body`.
type TypeDecl struct {
	BaseNode
	Name string
	Type TypeExpr
}

func (n *TypeDecl) statementNode() {}
func (n *TypeDecl) String() string { return "type " + n.Name + " is " + n.Type.String() }

// Param is one `Name : Type` routine parameter.
type Param struct {
	Name string
	Type TypeExpr
}

// RoutineDecl is `routine Name ( Params ) (: ReturnType)? is Body end`.
type RoutineDecl struct {
	BaseNode
	Name       string
	Params     []Param
	ReturnType TypeExpr // nil for a void routine
	Body       []Statement
}

func (n *RoutineDecl) statementNode() {}
func (n *RoutineDecl) String() string {
	params := make([]string, len(n.Params))
	for i, p := range n.Params {
		params[i] = p.Name + ": " + p.Type.String()
	}
	s := "routine " + n.Name + "(" + strings.Join(params, ", ") + ")"
	if n.ReturnType != nil {
		s += ": " + n.ReturnType.String()
	}
	s += " is ... end"
	return s
}

// Assignment is `Target (: = Value)` where Target is a plain variable name,
// an array-index target (Index non-nil), or a dotted `record.field` form
// (encoded directly in Target, e.g. "p.height").
type Assignment struct {
	BaseNode
	Target string
	Index  Expression // non-nil only for `target[Index] := Value`
	Value  Expression
}

func (n *Assignment) statementNode() {}
func (n *Assignment) String() string {
	if n.Index != nil {
		return n.Target + "[" + n.Index.String() + "] := " + n.Value.String()
	}
	return n.Target + " := " + n.Value.String()
}

// IfStmt is `if Cond then Then (else Else)? end`.
type IfStmt struct {
	BaseNode
	Cond Expression
	Then []Statement
	Else []Statement // nil if no else branch
}

func (n *IfStmt) statementNode() {}
func (n *IfStmt) String() string {
	s := "if " + n.Cond.String() + " then ... "
	if n.Else != nil {
		s += "else ... "
	}
	return s + "end"
}

// WhileStmt is `while Cond loop Body end`.
type WhileStmt struct {
	BaseNode
	Cond Expression
	Body []Statement
}

func (n *WhileStmt) statementNode() {}
func (n *WhileStmt) String() string { return "while " + n.Cond.String() + " loop ... end" }

// ForLoop is `for Var in (reverse)? Start .. End loop Body end`.
type ForLoop struct {
	BaseNode
	Var     string
	Reverse bool
	Start   Expression
	End_    Expression
	Body    []Statement
}

func (n *ForLoop) statementNode() {}
func (n *ForLoop) String() string {
	dir := ""
	if n.Reverse {
		dir = "reverse "
	}
	return "for " + n.Var + " in " + dir + n.Start.String() + " .. " + n.End_.String() + " loop ... end"
}

// PrintStmt is `print(Expr)`.
type PrintStmt struct {
	BaseNode
	Expr Expression
}

func (n *PrintStmt) statementNode() {}
func (n *PrintStmt) String() string { return "print(" + n.Expr.String() + ")" }

// ReadStmt is `read(Var)`.
type ReadStmt struct {
	BaseNode
	Var string
}

func (n *ReadStmt) statementNode() {}
func (n *ReadStmt) String() string { return "read(" + n.Var + ")" }

// ReturnStmt is `return (Expr)?`.
type ReturnStmt struct {
	BaseNode
	Expr Expression // nil for a bare `return`
}

func (n *ReturnStmt) statementNode() {}
func (n *ReturnStmt) String() string {
	if n.Expr != nil {
		return "return " + n.Expr.String()
	}
	return "return"
}

// RoutineCallStmt is a call used in statement position, discarding any
// result.
type RoutineCallStmt struct {
	BaseNode
	Name string
	Args []Expression
}

func (n *RoutineCallStmt) statementNode() {}
func (n *RoutineCallStmt) String() string {
	args := make([]string, len(n.Args))
	for i, a := range n.Args {
		args[i] = a.String()
	}
	return n.Name + "(" + strings.Join(args, ", ") + ")"
}

// EmptyStmt is the no-op statement the optimizer substitutes for an elided
// branch (e.g. a `while false` body, or an absent `if false` else-branch).
type EmptyStmt struct {
	BaseNode
}

func (n *EmptyStmt) statementNode() {}
func (n *EmptyStmt) String() string { return "" }
