package cmd

import (
	"testing"

	"github.com/ilcc/ilc/internal/diag"
	"github.com/ilcc/ilc/internal/driver"
	"github.com/ilcc/ilc/internal/lexer"
)

func TestOutDirForDefaultsToInputDir(t *testing.T) {
	flagOutDir = ""
	if got := outDirFor("a/b/prog.il"); got != "a/b" {
		t.Errorf("outDirFor = %q, want %q", got, "a/b")
	}
	flagOutDir = "build"
	if got := outDirFor("a/b/prog.il"); got != "build" {
		t.Errorf("outDirFor with explicit --out = %q, want %q", got, "build")
	}
	flagOutDir = ""
}

func TestIsParseFailureClassification(t *testing.T) {
	sink := diag.NewSink()
	sink.Addf(diag.Syntactic, lexer.Position{}, "unexpected token")
	syntactic := &driver.Result{Sink: sink}
	if !isParseFailure(syntactic) {
		t.Error("expected a syntactic diagnostic to classify as a parse failure")
	}

	sink2 := diag.NewSink()
	sink2.Addf(diag.Semantic, lexer.Position{}, "Undefined variable 'y'.")
	semantic := &driver.Result{Sink: sink2}
	if isParseFailure(semantic) {
		t.Error("expected a semantic-only diagnostic to not classify as a parse failure")
	}

	if isParseFailure(nil) {
		t.Error("expected nil result to not classify as a parse failure")
	}
}
