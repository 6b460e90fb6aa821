package visualize

import (
	"strings"
	"testing"

	"github.com/ilcc/ilc/internal/lexer"
	"github.com/ilcc/ilc/internal/optimizer"
	"github.com/ilcc/ilc/internal/parser"
)

func TestBuildProducesHTMLAndDOT(t *testing.T) {
	src := `routine main() is var x: integer is 5; print(x); end;`
	l := lexer.New(src)
	p := parser.New(l)
	prog := p.ParseProgram()
	if len(p.Errors()) != 0 {
		t.Fatalf("unexpected parse errors: %v", p.Errors())
	}

	details := []optimizer.Detail{
		{Kind: optimizer.PassConstantFold, Line: 1, Before: "2 + 3", After: "5", Description: "folded constant addition"},
	}

	report, err := Build("Main", prog, details)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if !strings.Contains(report.HTML, "Main") {
		t.Errorf("HTML report missing unit name: %s", report.HTML)
	}
	if !strings.Contains(report.HTML, "folded constant addition") {
		t.Errorf("HTML report missing optimization description: %s", report.HTML)
	}
	if !strings.Contains(report.DOT, "digraph") {
		t.Errorf("DOT report missing digraph header: %s", report.DOT)
	}
	if !strings.Contains(report.DOT, "RoutineDecl") {
		t.Errorf("DOT report missing statement node: %s", report.DOT)
	}
}
