// Package ast defines the abstract syntax tree produced by the parser.
//
// Per the source's deep class hierarchies being re-designed as tagged
// variants: Expression and Statement are marker interfaces implemented by a
// closed set of concrete struct types. Passes that need to branch on node
// kind use a Go type switch (the idiomatic analogue of exhaustive pattern
// matching on a sum type) rather than virtual dispatch or reflection.
package ast

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/ilcc/ilc/internal/lexer"
)

// Node is the base interface every AST node implements.
type Node interface {
	TokenLiteral() string
	String() string
	Pos() lexer.Position
	End() lexer.Position
}

// Expression is any node that produces a value.
type Expression interface {
	Node
	expressionNode()
}

// Statement is any node that performs an action.
type Statement interface {
	Node
	statementNode()
}

// BaseNode carries the token a node starts on and its computed end
// position; every concrete node embeds it to get Pos()/End()/TokenLiteral()
// for free.
type BaseNode struct {
	Token  lexer.Token
	EndPos lexer.Position
}

func (b BaseNode) TokenLiteral() string { return b.Token.Literal }
func (b BaseNode) Pos() lexer.Position  { return b.Token.Pos }
func (b BaseNode) End() lexer.Position {
	if b.EndPos != (lexer.Position{}) {
		return b.EndPos
	}
	return b.Token.EndPos
}

// Program is the root node: an ordered sequence of top-level statements.
type Program struct {
	Statements []Statement
}

func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}

func (p *Program) Pos() lexer.Position {
	if len(p.Statements) > 0 {
		return p.Statements[0].Pos()
	}
	return lexer.Position{Line: 1, Column: 1}
}

func (p *Program) End() lexer.Position {
	if n := len(p.Statements); n > 0 {
		return p.Statements[n-1].End()
	}
	return p.Pos()
}

func (p *Program) String() string {
	var out bytes.Buffer
	for _, s := range p.Statements {
		out.WriteString(s.String())
		out.WriteString(";\n")
	}
	return out.String()
}

// ---- Type expressions (unresolved, as written in source) ----

// TypeExpr is the AST-level spelling of a type before the semantic
// analyzer resolves it against the type namespace.
type TypeExpr interface {
	Node
	typeExprNode()
}

// SimpleTypeExpr names a built-in or user-declared type by identifier.
type SimpleTypeExpr struct {
	BaseNode
	Name string
}

func (s *SimpleTypeExpr) typeExprNode()  {}
func (s *SimpleTypeExpr) String() string { return s.Name }

// ArrayTypeExpr is `array [ Size ] Element`. Size is always a parsed
// integer literal per the grammar (array_decl / type_body productions).
type ArrayTypeExpr struct {
	BaseNode
	Element TypeExpr
	Size    int32
}

func (a *ArrayTypeExpr) typeExprNode() {}
func (a *ArrayTypeExpr) String() string {
	return "array [" + strconv.Itoa(int(a.Size)) + "] " + a.Element.String()
}

// RecordField is one `ID : Type` member inside a record type body.
type RecordField struct {
	Name string
	Type TypeExpr
}

// RecordTypeExpr is `record FieldDecl* end`.
type RecordTypeExpr struct {
	BaseNode
	Fields []RecordField
}

func (r *RecordTypeExpr) typeExprNode() {}
func (r *RecordTypeExpr) String() string {
	var parts []string
	for _, f := range r.Fields {
		parts = append(parts, f.Name+": "+f.Type.String())
	}
	return "record " + strings.Join(parts, "; ") + " end"
}
