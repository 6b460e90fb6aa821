package parser

import (
	"strconv"

	"github.com/ilcc/ilc/internal/ast"
	"github.com/ilcc/ilc/internal/lexer"
)

// parseExpr is the grammar's `expr` entry point: `expr := logic_or`.
func (p *Parser) parseExpr() ast.Expression {
	return p.parseLogicOr()
}

// parseLogicOr parses `logic_and (('or'|'xor') logic_and)*`.
func (p *Parser) parseLogicOr() ast.Expression {
	left := p.parseLogicAnd()
	for !p.failed() && (p.at(lexer.OR) || p.at(lexer.XOR)) {
		opTok := p.cur
		p.advance()
		right := p.parseLogicAnd()
		if p.failed() {
			return nil
		}
		left = &ast.Binary{BaseNode: ast.BaseNode{Token: opTok}, Left: left, Op: binOpOf(opTok.Type), Right: right}
	}
	return left
}

// parseLogicAnd parses `rel ('and' rel)*`.
func (p *Parser) parseLogicAnd() ast.Expression {
	left := p.parseRel()
	for !p.failed() && p.at(lexer.AND) {
		opTok := p.cur
		p.advance()
		right := p.parseRel()
		if p.failed() {
			return nil
		}
		left = &ast.Binary{BaseNode: ast.BaseNode{Token: opTok}, Left: left, Op: ast.OpAnd, Right: right}
	}
	return left
}

var relOps = map[lexer.TokenType]bool{
	lexer.ASSIGN_EQ: true,
	lexer.NOT_EQ:    true,
	lexer.LT:        true,
	lexer.LT_EQ:     true,
	lexer.GT:        true,
	lexer.GT_EQ:     true,
}

// parseRel parses
// `sum (('='|'/='|'!='|'<'|'<='|'>'|'>=') sum)*`.
func (p *Parser) parseRel() ast.Expression {
	left := p.parseSum()
	for !p.failed() && relOps[p.cur.Type] {
		opTok := p.cur
		p.advance()
		right := p.parseSum()
		if p.failed() {
			return nil
		}
		left = &ast.Binary{BaseNode: ast.BaseNode{Token: opTok}, Left: left, Op: binOpOf(opTok.Type), Right: right}
	}
	return left
}

// parseSum parses `term (('+'|'-') term)*`.
func (p *Parser) parseSum() ast.Expression {
	left := p.parseTerm()
	for !p.failed() && (p.at(lexer.PLUS) || p.at(lexer.MINUS)) {
		opTok := p.cur
		p.advance()
		right := p.parseTerm()
		if p.failed() {
			return nil
		}
		left = &ast.Binary{BaseNode: ast.BaseNode{Token: opTok}, Left: left, Op: binOpOf(opTok.Type), Right: right}
	}
	return left
}

// parseTerm parses `factor (('*'|'/'|'%') factor)*`.
func (p *Parser) parseTerm() ast.Expression {
	left := p.parseFactor()
	for !p.failed() && (p.at(lexer.STAR) || p.at(lexer.SLASH) || p.at(lexer.PERCENT)) {
		opTok := p.cur
		p.advance()
		right := p.parseFactor()
		if p.failed() {
			return nil
		}
		left = &ast.Binary{BaseNode: ast.BaseNode{Token: opTok}, Left: left, Op: binOpOf(opTok.Type), Right: right}
	}
	return left
}

// parseFactor parses `'not' factor | '-' factor | primary`.
func (p *Parser) parseFactor() ast.Expression {
	switch p.cur.Type {
	case lexer.NOT:
		opTok := p.cur
		p.advance()
		operand := p.parseFactor()
		if p.failed() {
			return nil
		}
		return &ast.Unary{BaseNode: ast.BaseNode{Token: opTok}, Op: ast.UnaryNot, Operand: operand}
	case lexer.MINUS:
		opTok := p.cur
		p.advance()
		operand := p.parseFactor()
		if p.failed() {
			return nil
		}
		return &ast.Unary{BaseNode: ast.BaseNode{Token: opTok}, Op: ast.UnaryNeg, Operand: operand}
	default:
		return p.parsePrimary()
	}
}

// parsePrimary parses `literal | ID | ID '[' expr ']' | ID '.' ID |
// ID '(' arg_list? ')' | '(' expr ')'`, then applies any trailing
// `'as' type` casts (the grammar's `expr 'as' type` primary alternative,
// implemented here as a postfix operator so it composes with parens
// instead of reintroducing left recursion into primary).
func (p *Parser) parsePrimary() ast.Expression {
	base := p.parseAtom()
	for !p.failed() && p.at(lexer.AS) {
		asTok := p.cur
		p.advance()
		target := p.parseSimpleType()
		if p.failed() {
			return nil
		}
		base = &ast.TypeCast{BaseNode: ast.BaseNode{Token: asTok}, Expr: base, Target: target}
	}
	return base
}

func (p *Parser) parseAtom() ast.Expression {
	tok := p.cur
	switch tok.Type {
	case lexer.INT:
		p.advance()
		v, _ := strconv.ParseInt(tok.Literal, 10, 32)
		return &ast.IntegerLit{BaseNode: ast.BaseNode{Token: tok}, Value: int32(v)}

	case lexer.FLOAT:
		p.advance()
		v, _ := strconv.ParseFloat(tok.Literal, 64)
		return &ast.RealLit{BaseNode: ast.BaseNode{Token: tok}, Value: v}

	case lexer.TRUE_LIT:
		p.advance()
		return &ast.BooleanLit{BaseNode: ast.BaseNode{Token: tok}, Value: true}

	case lexer.FALSE_LIT:
		p.advance()
		return &ast.BooleanLit{BaseNode: ast.BaseNode{Token: tok}, Value: false}

	case lexer.STRING:
		p.advance()
		return &ast.StringLit{BaseNode: ast.BaseNode{Token: tok}, Value: tok.Literal}

	case lexer.LPAREN:
		p.advance()
		expr := p.parseExpr()
		p.expect(lexer.RPAREN)
		if p.failed() {
			return nil
		}
		return expr

	case lexer.IDENT:
		p.advance()
		switch p.cur.Type {
		case lexer.LPAREN:
			args := p.parseArgs()
			if p.failed() {
				return nil
			}
			return &ast.RoutineCall{BaseNode: ast.BaseNode{Token: tok}, Name: tok.Literal, Args: args}
		case lexer.LBRACK:
			p.advance()
			idx := p.parseExpr()
			p.expect(lexer.RBRACK)
			if p.failed() {
				return nil
			}
			return &ast.ArrayAccess{BaseNode: ast.BaseNode{Token: tok}, Name: tok.Literal, Index: idx}
		case lexer.DOT:
			p.advance()
			fieldTok := p.expect(lexer.IDENT)
			if p.failed() {
				return nil
			}
			return &ast.RecordAccess{
				BaseNode: ast.BaseNode{Token: tok},
				Record:   &ast.VarRef{BaseNode: ast.BaseNode{Token: tok}, Name: tok.Literal},
				Field:    fieldTok.Literal,
			}
		default:
			return &ast.VarRef{BaseNode: ast.BaseNode{Token: tok}, Name: tok.Literal}
		}

	default:
		p.fail("unexpected token %s %q in expression", tok.Type, tok.Literal)
		return nil
	}
}

func binOpOf(tt lexer.TokenType) ast.BinaryOp {
	switch tt {
	case lexer.PLUS:
		return ast.OpAdd
	case lexer.MINUS:
		return ast.OpSub
	case lexer.STAR:
		return ast.OpMul
	case lexer.SLASH:
		return ast.OpDiv
	case lexer.PERCENT:
		return ast.OpMod
	case lexer.ASSIGN_EQ:
		return ast.OpEq
	case lexer.NOT_EQ:
		return ast.OpNotEq
	case lexer.LT:
		return ast.OpLt
	case lexer.LT_EQ:
		return ast.OpLtEq
	case lexer.GT:
		return ast.OpGt
	case lexer.GT_EQ:
		return ast.OpGtEq
	case lexer.OR:
		return ast.OpOr
	case lexer.XOR:
		return ast.OpXor
	}
	return ""
}
