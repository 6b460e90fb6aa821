package parser

import (
	"github.com/ilcc/ilc/internal/ast"
	"github.com/ilcc/ilc/internal/lexer"
)

var builtinTypeTokens = map[lexer.TokenType]bool{
	lexer.INTEGER:     true,
	lexer.REAL:        true,
	lexer.BOOLEAN:     true,
	lexer.STRING_TYPE: true,
}

// parseSimpleType parses the `type` nonterminal as used by var_decl,
// params, a routine's return type, and an array's element type: a
// built-in type keyword or a user-declared type name.
func (p *Parser) parseSimpleType() ast.TypeExpr {
	tok := p.cur
	if builtinTypeTokens[tok.Type] {
		p.advance()
		return &ast.SimpleTypeExpr{BaseNode: ast.BaseNode{Token: tok}, Name: tok.Literal}
	}
	if tok.Type == lexer.IDENT {
		p.advance()
		return &ast.SimpleTypeExpr{BaseNode: ast.BaseNode{Token: tok}, Name: tok.Literal}
	}
	p.fail("expected a type name, got %s %q", tok.Type, tok.Literal)
	return nil
}

// parseArrayType parses `'array' '[' INT ']' type`, used by both
// array_decl and the array arm of type_body.
func (p *Parser) parseArrayType() *ast.ArrayTypeExpr {
	start := p.cur
	p.expect(lexer.ARRAY)
	p.expect(lexer.LBRACK)
	sizeTok := p.expect(lexer.INT)
	p.expect(lexer.RBRACK)
	elem := p.parseSimpleType()
	if p.failed() {
		return nil
	}
	size := parseIntLiteral(sizeTok.Literal)
	return &ast.ArrayTypeExpr{BaseNode: ast.BaseNode{Token: start}, Element: elem, Size: size}
}

// parseTypeBody parses `type_body := simple_type | 'record' var_decl*
// 'end' | 'array' '[' INT ']' type`, the right-hand side of a type_decl.
//
// Record fields are parsed as `['var'] ID ':' type`: the leading `var` is
// optional, and no initializer is accepted, since ast.RecordField has no
// initializer slot and §3's Record type descriptor never carries default
// values.
func (p *Parser) parseTypeBody() ast.TypeExpr {
	switch p.cur.Type {
	case lexer.ARRAY:
		return p.parseArrayType()
	case lexer.RECORD:
		return p.parseRecordType()
	default:
		return p.parseSimpleType()
	}
}

func (p *Parser) parseRecordType() *ast.RecordTypeExpr {
	start := p.cur
	p.expect(lexer.RECORD)
	var fields []ast.RecordField
	for !p.failed() && !p.at(lexer.END) {
		if p.at(lexer.VAR) {
			p.advance()
		}
		name := p.expect(lexer.IDENT)
		p.expect(lexer.COLON)
		typ := p.parseSimpleType()
		if p.failed() {
			return nil
		}
		fields = append(fields, ast.RecordField{Name: name.Literal, Type: typ})
		if p.at(lexer.SEMICOLON) {
			p.advance()
		}
	}
	p.expect(lexer.END)
	if p.failed() {
		return nil
	}
	return &ast.RecordTypeExpr{BaseNode: ast.BaseNode{Token: start}, Fields: fields}
}

// parseIntLiteral converts an already-lexed INT literal's digits to an
// int32; the lexer guarantees the literal is all-digit, so this never
// needs to report an error of its own.
func parseIntLiteral(digits string) int32 {
	var v int32
	for _, r := range digits {
		v = v*10 + int32(r-'0')
	}
	return v
}
