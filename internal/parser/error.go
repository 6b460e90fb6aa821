package parser

import (
	"fmt"

	"github.com/ilcc/ilc/internal/lexer"
)

// ParserError is a single syntactic diagnostic with its source position.
// Per spec §4.2, the parser emits exactly one of these and aborts: there
// is no panic-mode recovery, so at most one ParserError is ever produced.
type ParserError struct {
	Message string
	Pos     lexer.Position
}

func (e *ParserError) Error() string {
	return fmt.Sprintf("%s at %d:%d", e.Message, e.Pos.Line, e.Pos.Column)
}
