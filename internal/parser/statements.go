package parser

import (
	"github.com/ilcc/ilc/internal/ast"
	"github.com/ilcc/ilc/internal/lexer"
)

// parseStmt dispatches on the current token to one of the stmt
// alternatives in §4.2's grammar.
func (p *Parser) parseStmt() ast.Statement {
	switch p.cur.Type {
	case lexer.VAR:
		return p.parseVarOrArrayDecl()
	case lexer.TYPE:
		return p.parseTypeDecl()
	case lexer.ROUTINE:
		return p.parseRoutineDecl()
	case lexer.IF:
		return p.parseIfStmt()
	case lexer.WHILE:
		return p.parseWhileStmt()
	case lexer.FOR:
		return p.parseForStmt()
	case lexer.PRINT:
		return p.parsePrintStmt()
	case lexer.READ:
		return p.parseReadStmt()
	case lexer.RETURN:
		return p.parseReturnStmt()
	case lexer.IDENT:
		return p.parseIdentStmt()
	default:
		p.fail("unexpected token %s %q at start of statement", p.cur.Type, p.cur.Literal)
		return nil
	}
}

// parseVarOrArrayDecl parses `'var' ID ':' type ('is' expr)?` or
// `'var' ID ':' 'array' '[' INT ']' type`, disambiguated by peeking past
// the colon for the `array` keyword.
func (p *Parser) parseVarOrArrayDecl() ast.Statement {
	start := p.cur
	p.expect(lexer.VAR)
	name := p.expect(lexer.IDENT)
	p.expect(lexer.COLON)
	if p.failed() {
		return nil
	}

	if p.at(lexer.ARRAY) {
		arrType := p.parseArrayType()
		if p.failed() {
			return nil
		}
		return &ast.ArrayDecl{BaseNode: ast.BaseNode{Token: start}, Name: name.Literal, Type: arrType}
	}

	typ := p.parseSimpleType()
	if p.failed() {
		return nil
	}
	var init ast.Expression
	if p.at(lexer.IS) {
		p.advance()
		init = p.parseExpr()
		if p.failed() {
			return nil
		}
	}
	return &ast.VarDecl{BaseNode: ast.BaseNode{Token: start}, Name: name.Literal, Type: typ, Init: init}
}

// parseTypeDecl parses `'type' ID 'is' type_body`.
func (p *Parser) parseTypeDecl() ast.Statement {
	start := p.cur
	p.expect(lexer.TYPE)
	name := p.expect(lexer.IDENT)
	p.expect(lexer.IS)
	body := p.parseTypeBody()
	if p.failed() {
		return nil
	}
	return &ast.TypeDecl{BaseNode: ast.BaseNode{Token: start}, Name: name.Literal, Type: body}
}

// parseRoutineDecl parses
// `'routine' ID '(' params? ')' (':' type)? 'is' stmt_list 'end'`.
func (p *Parser) parseRoutineDecl() ast.Statement {
	start := p.cur
	p.expect(lexer.ROUTINE)
	name := p.expect(lexer.IDENT)
	p.expect(lexer.LPAREN)

	var params []ast.Param
	if !p.at(lexer.RPAREN) {
		params = p.parseParams()
	}
	p.expect(lexer.RPAREN)

	var ret ast.TypeExpr
	if p.at(lexer.COLON) {
		p.advance()
		ret = p.parseSimpleType()
	}
	p.expect(lexer.IS)
	body := p.parseStmtList(lexer.END)
	p.expect(lexer.END)
	if p.failed() {
		return nil
	}
	return &ast.RoutineDecl{
		BaseNode:   ast.BaseNode{Token: start},
		Name:       name.Literal,
		Params:     params,
		ReturnType: ret,
		Body:       body,
	}
}

// parseParams parses `ID ':' type (',' ID ':' type)*`.
func (p *Parser) parseParams() []ast.Param {
	var params []ast.Param
	for {
		name := p.expect(lexer.IDENT)
		p.expect(lexer.COLON)
		typ := p.parseSimpleType()
		if p.failed() {
			return nil
		}
		params = append(params, ast.Param{Name: name.Literal, Type: typ})
		if !p.at(lexer.COMMA) {
			break
		}
		p.advance()
	}
	return params
}

// parseIfStmt parses `'if' expr 'then' stmt_list ('else' stmt_list)? 'end'`.
func (p *Parser) parseIfStmt() ast.Statement {
	start := p.cur
	p.expect(lexer.IF)
	cond := p.parseExpr()
	p.expect(lexer.THEN)
	then := p.parseStmtList(lexer.ELSE, lexer.END)
	var els []ast.Statement
	if p.at(lexer.ELSE) {
		p.advance()
		els = p.parseStmtList(lexer.END)
	}
	p.expect(lexer.END)
	if p.failed() {
		return nil
	}
	return &ast.IfStmt{BaseNode: ast.BaseNode{Token: start}, Cond: cond, Then: then, Else: els}
}

// parseWhileStmt parses `'while' expr 'loop' stmt_list 'end'`.
func (p *Parser) parseWhileStmt() ast.Statement {
	start := p.cur
	p.expect(lexer.WHILE)
	cond := p.parseExpr()
	p.expect(lexer.LOOP)
	body := p.parseStmtList(lexer.END)
	p.expect(lexer.END)
	if p.failed() {
		return nil
	}
	return &ast.WhileStmt{BaseNode: ast.BaseNode{Token: start}, Cond: cond, Body: body}
}

// parseForStmt parses
// `'for' ID 'in' 'reverse'? expr '..' expr 'loop' stmt_list 'end'`.
func (p *Parser) parseForStmt() ast.Statement {
	start := p.cur
	p.expect(lexer.FOR)
	name := p.expect(lexer.IDENT)
	p.expect(lexer.IN)
	reverse := false
	if p.at(lexer.REVERSE) {
		reverse = true
		p.advance()
	}
	from := p.parseExpr()
	p.expect(lexer.DOTDOT)
	to := p.parseExpr()
	p.expect(lexer.LOOP)
	body := p.parseStmtList(lexer.END)
	p.expect(lexer.END)
	if p.failed() {
		return nil
	}
	return &ast.ForLoop{
		BaseNode: ast.BaseNode{Token: start},
		Var:      name.Literal,
		Reverse:  reverse,
		Start:    from,
		End_:     to,
		Body:     body,
	}
}

// parsePrintStmt parses `'print' '(' expr ')'`.
func (p *Parser) parsePrintStmt() ast.Statement {
	start := p.cur
	p.expect(lexer.PRINT)
	p.expect(lexer.LPAREN)
	expr := p.parseExpr()
	p.expect(lexer.RPAREN)
	if p.failed() {
		return nil
	}
	return &ast.PrintStmt{BaseNode: ast.BaseNode{Token: start}, Expr: expr}
}

// parseReadStmt parses `'read' '(' ID ')'`.
func (p *Parser) parseReadStmt() ast.Statement {
	start := p.cur
	p.expect(lexer.READ)
	p.expect(lexer.LPAREN)
	name := p.expect(lexer.IDENT)
	p.expect(lexer.RPAREN)
	if p.failed() {
		return nil
	}
	return &ast.ReadStmt{BaseNode: ast.BaseNode{Token: start}, Var: name.Literal}
}

// parseReturnStmt parses `'return' expr?`. An expression follows unless
// the statement ends at a ';', 'end', or 'else' boundary.
func (p *Parser) parseReturnStmt() ast.Statement {
	start := p.cur
	p.expect(lexer.RETURN)
	var expr ast.Expression
	if !p.atAny(lexer.SEMICOLON, lexer.END, lexer.ELSE, lexer.EOF) {
		expr = p.parseExpr()
	}
	if p.failed() {
		return nil
	}
	return &ast.ReturnStmt{BaseNode: ast.BaseNode{Token: start}, Expr: expr}
}

// parseIdentStmt parses whichever of `assignment` or `call_stmt` the
// identifier turns out to begin, per `lvalue := ID | ID '[' expr ']' |
// ID '.' ID` and the primary production's `ID '(' arg_list? ')'`.
func (p *Parser) parseIdentStmt() ast.Statement {
	start := p.cur
	name := p.expect(lexer.IDENT)

	switch p.cur.Type {
	case lexer.LPAREN:
		args := p.parseArgs()
		if p.failed() {
			return nil
		}
		return &ast.RoutineCallStmt{BaseNode: ast.BaseNode{Token: start}, Name: name.Literal, Args: args}

	case lexer.LBRACK:
		p.advance()
		idx := p.parseExpr()
		p.expect(lexer.RBRACK)
		p.expect(lexer.ASSIGN)
		val := p.parseExpr()
		if p.failed() {
			return nil
		}
		return &ast.Assignment{BaseNode: ast.BaseNode{Token: start}, Target: name.Literal, Index: idx, Value: val}

	case lexer.DOT:
		p.advance()
		field := p.expect(lexer.IDENT)
		p.expect(lexer.ASSIGN)
		val := p.parseExpr()
		if p.failed() {
			return nil
		}
		return &ast.Assignment{BaseNode: ast.BaseNode{Token: start}, Target: name.Literal + "." + field.Literal, Value: val}

	case lexer.ASSIGN:
		p.advance()
		val := p.parseExpr()
		if p.failed() {
			return nil
		}
		return &ast.Assignment{BaseNode: ast.BaseNode{Token: start}, Target: name.Literal, Value: val}

	default:
		p.fail("expected ':=', '(', '[' or '.' after identifier %q, got %s %q", name.Literal, p.cur.Type, p.cur.Literal)
		return nil
	}
}

// parseArgs parses `'(' arg_list? ')'` where arg_list is a comma-separated
// expression list.
func (p *Parser) parseArgs() []ast.Expression {
	p.expect(lexer.LPAREN)
	var args []ast.Expression
	if !p.at(lexer.RPAREN) {
		for {
			args = append(args, p.parseExpr())
			if p.failed() || !p.at(lexer.COMMA) {
				break
			}
			p.advance()
		}
	}
	p.expect(lexer.RPAREN)
	return args
}
