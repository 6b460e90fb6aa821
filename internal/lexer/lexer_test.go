package lexer

import "testing"

func TestNextToken(t *testing.T) {
	input := `var x : integer is 5;
	x := x + 10;
	`

	tests := []struct {
		expectedLiteral string
		expectedType    TokenType
	}{
		{"var", VAR},
		{"x", IDENT},
		{":", COLON},
		{"integer", INTEGER},
		{"is", IS},
		{"5", INT},
		{";", SEMICOLON},
		{"x", IDENT},
		{":=", ASSIGN},
		{"x", IDENT},
		{"+", PLUS},
		{"10", INT},
		{";", SEMICOLON},
		{"", EOF},
	}

	l := New(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%s, got=%s (literal=%q)",
				i, tt.expectedType, tok.Type, tok.Literal)
		}
		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q", i, tt.expectedLiteral, tok.Literal)
		}
	}
}

func TestKeywords(t *testing.T) {
	input := `var type routine is end if then else while loop for in reverse
		return print read record array and or xor not as true false`

	tests := []TokenType{
		VAR, TYPE, ROUTINE, IS, END, IF, THEN, ELSE, WHILE, LOOP, FOR, IN, REVERSE,
		RETURN, PRINT, READ, RECORD, ARRAY, AND, OR, XOR, NOT, AS, TRUE_LIT, FALSE_LIT,
	}

	l := New(input)
	for i, want := range tests {
		tok := l.NextToken()
		if tok.Type != want {
			t.Fatalf("tests[%d]: expected %s got %s (%q)", i, want, tok.Type, tok.Literal)
		}
	}
}

func TestTwoCharOperators(t *testing.T) {
	input := ":= <= >= /= .. != <>"
	tests := []TokenType{ASSIGN, LT_EQ, GT_EQ, NOT_EQ, DOTDOT, NOT_EQ, NOT_EQ}

	l := New(input)
	for i, want := range tests {
		tok := l.NextToken()
		if tok.Type != want {
			t.Fatalf("tests[%d]: expected %s got %s (%q)", i, want, tok.Type, tok.Literal)
		}
	}
}

func TestFloatPromotion(t *testing.T) {
	l := New("3 3.14 3.")
	tok := l.NextToken()
	if tok.Type != INT || tok.Literal != "3" {
		t.Fatalf("expected INT 3, got %s %q", tok.Type, tok.Literal)
	}
	tok = l.NextToken()
	if tok.Type != FLOAT || tok.Literal != "3.14" {
		t.Fatalf("expected FLOAT 3.14, got %s %q", tok.Type, tok.Literal)
	}
	// "3." with no trailing digit: the '.' does not promote, so this is
	// INT(3) followed by DOT, not an (invalid) FLOAT.
	tok = l.NextToken()
	if tok.Type != INT || tok.Literal != "3" {
		t.Fatalf("expected INT 3, got %s %q", tok.Type, tok.Literal)
	}
	tok = l.NextToken()
	if tok.Type != DOT {
		t.Fatalf("expected DOT, got %s %q", tok.Type, tok.Literal)
	}
}

func TestNegativeLiteralIsNotLexed(t *testing.T) {
	// Per the spec's resolved open question, '-5' lexes as MINUS, INT(5),
	// never as a single negative INT token.
	l := New("-5")
	tok := l.NextToken()
	if tok.Type != MINUS {
		t.Fatalf("expected MINUS, got %s", tok.Type)
	}
	tok = l.NextToken()
	if tok.Type != INT || tok.Literal != "5" {
		t.Fatalf("expected INT 5, got %s %q", tok.Type, tok.Literal)
	}
}

func TestStringLiteralEscapes(t *testing.T) {
	l := New(`"hello\nworld\t\"quoted\""`)
	tok := l.NextToken()
	if tok.Type != STRING {
		t.Fatalf("expected STRING, got %s", tok.Type)
	}
	want := "hello\nworld\t\"quoted\""
	if tok.Literal != want {
		t.Fatalf("expected %q got %q", want, tok.Literal)
	}
}

func TestUnterminatedString(t *testing.T) {
	l := New("\"hello\nworld")
	tok := l.NextToken()
	if tok.Type != ILLEGAL {
		t.Fatalf("expected ILLEGAL for unterminated string, got %s", tok.Type)
	}
	if len(l.Errors()) == 0 {
		t.Fatalf("expected a lexer error for unterminated string")
	}
}

func TestLineCommentsSkipped(t *testing.T) {
	l := New("var x // a comment\n# another comment\nis 1;")
	tok := l.NextToken()
	if tok.Type != VAR {
		t.Fatalf("expected VAR, got %s", tok.Type)
	}
	tok = l.NextToken()
	if tok.Type != IDENT {
		t.Fatalf("expected IDENT, got %s", tok.Type)
	}
	tok = l.NextToken()
	if tok.Type != IS {
		t.Fatalf("expected IS after comments skipped, got %s (%q)", tok.Type, tok.Literal)
	}
}

func TestIllegalCharacters(t *testing.T) {
	for _, src := range []string{"@", "x%y", "%1"} {
		l := New(src)
		for {
			tok := l.NextToken()
			if tok.Type == EOF {
				break
			}
		}
		if len(l.Errors()) == 0 {
			t.Fatalf("expected lexer error for %q", src)
		}
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	l := New("var x")
	first := l.Peek(0)
	if first.Type != VAR {
		t.Fatalf("expected VAR from Peek(0), got %s", first.Type)
	}
	second := l.Peek(1)
	if second.Type != IDENT {
		t.Fatalf("expected IDENT from Peek(1), got %s", second.Type)
	}
	// Consuming should still return VAR first.
	tok := l.NextToken()
	if tok.Type != VAR {
		t.Fatalf("expected VAR from NextToken after Peek, got %s", tok.Type)
	}
}

func TestSaveRestoreState(t *testing.T) {
	l := New("var x is 1")
	state := l.SaveState()
	l.NextToken()
	l.NextToken()
	l.RestoreState(state)
	tok := l.NextToken()
	if tok.Type != VAR {
		t.Fatalf("expected VAR after restore, got %s", tok.Type)
	}
}

func TestEOFIsSticky(t *testing.T) {
	l := New("")
	for i := 0; i < 3; i++ {
		tok := l.NextToken()
		if tok.Type != EOF {
			t.Fatalf("call %d: expected EOF, got %s", i, tok.Type)
		}
	}
}

func TestUnicodeIdentifiers(t *testing.T) {
	l := New("var Δx is 1")
	l.NextToken() // var
	tok := l.NextToken()
	if tok.Type != IDENT || tok.Literal != "Δx" {
		t.Fatalf("expected IDENT Δx, got %s %q", tok.Type, tok.Literal)
	}
}
