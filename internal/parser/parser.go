// Package parser implements the recursive-descent parser that reduces a
// token stream to a Program per spec grammar in §4.2.
//
// Re-designed per the source's LALR(1) table-driven grammar: rather than
// generating parse tables, this parser is hand-written recursive descent
// for the statement grammar and precedence climbing for expressions.
// Every choice is made from the current token alone (var_decl vs
// array_decl after the colon, a bare call statement vs an assignment
// after the identifier); no token is looked ahead or backtracked over.
//
// Error recovery is intentionally minimal: on the first syntax error the
// parser records one ParserError and stops: panic-mode recovery across
// statement boundaries is a non-goal, so callers must not invoke later
// passes once Errors() is non-empty.
package parser

import (
	"fmt"

	"github.com/ilcc/ilc/internal/ast"
	"github.com/ilcc/ilc/internal/lexer"
)

// Parser turns a token stream into an AST, stopping at the first error.
type Parser struct {
	l   *lexer.Lexer
	cur lexer.Token
	err *ParserError
}

// New creates a Parser over l, priming the first current token.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}
	p.cur = p.l.NextToken()
	return p
}

// Errors returns the single recorded parse error, or nil if parsing
// completed without one.
func (p *Parser) Errors() []*ParserError {
	if p.err == nil {
		return nil
	}
	return []*ParserError{p.err}
}

func (p *Parser) failed() bool { return p.err != nil }

func (p *Parser) fail(format string, args ...any) {
	if p.err != nil {
		return
	}
	p.err = &ParserError{Message: fmt.Sprintf(format, args...), Pos: p.cur.Pos}
}

// advance consumes the current token and fetches the next one, unless
// parsing has already failed (in which case the cursor is frozen so the
// offending token's position stays available for diagnostics).
func (p *Parser) advance() {
	if p.failed() {
		return
	}
	p.cur = p.l.NextToken()
}

// expect checks the current token's type, consumes it, and returns it; on
// mismatch it records the single parse error and returns the offending
// token without consuming it.
func (p *Parser) expect(tt lexer.TokenType) lexer.Token {
	tok := p.cur
	if tok.Type != tt {
		p.fail("expected %s, got %s %q", tt, tok.Type, tok.Literal)
		return tok
	}
	p.advance()
	return tok
}

func (p *Parser) at(tt lexer.TokenType) bool { return p.cur.Type == tt }

// ParseProgram parses stmt_list as the root production and returns the
// resulting Program. Check Errors() before trusting the result: on
// failure the returned Program may be partial.
func (p *Parser) ParseProgram() *ast.Program {
	return &ast.Program{Statements: p.parseStmtList(lexer.EOF)}
}

// parseStmtList parses `stmt (';' stmt)* ';'?`, stopping once the current
// token is one of stop (without consuming it). It is shared by the
// top-level program and every block body (routine/if/while/for), which
// differ only in their terminating keyword(s).
func (p *Parser) parseStmtList(stop ...lexer.TokenType) []ast.Statement {
	var stmts []ast.Statement
	for !p.failed() && !p.atAny(stop...) {
		stmt := p.parseStmt()
		if p.failed() {
			break
		}
		stmts = append(stmts, stmt)
		if p.at(lexer.SEMICOLON) {
			p.advance()
			continue
		}
		if !p.atAny(stop...) {
			p.fail("expected ';' after statement, got %s %q", p.cur.Type, p.cur.Literal)
		}
	}
	return stmts
}

func (p *Parser) atAny(tts ...lexer.TokenType) bool {
	for _, tt := range tts {
		if p.cur.Type == tt {
			return true
		}
	}
	return false
}
