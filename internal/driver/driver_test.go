package driver

import (
	"context"
	"strings"
	"testing"
)

func TestRunCompilesSimpleProgram(t *testing.T) {
	src := `routine main() is var x: integer is 2+3; print(x); end;`

	res, err := Run(context.Background(), Ctx{Optimize: true, SkipAssemble: true}, "prog.il", src)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if res.Codegen == nil {
		t.Fatal("expected codegen output")
	}
	if res.OptimizeCount < 1 {
		t.Errorf("expected at least one optimization, got %d", res.OptimizeCount)
	}
	if !strings.Contains(res.Codegen.MainUnit, "Main") {
		t.Errorf("expected main unit assembly to mention Main, got:\n%s", res.Codegen.MainUnit)
	}
}

func TestRunReportsUndefinedVariable(t *testing.T) {
	src := `routine main() is print(y); end;`

	res, err := Run(context.Background(), Ctx{SkipAssemble: true}, "prog.il", src)
	if err == nil {
		t.Fatal("expected a semantic error")
	}
	found := false
	for _, m := range res.Sink.Messages() {
		if strings.Contains(m, "Undefined variable") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected an 'Undefined variable' diagnostic, got %v", res.Sink.Messages())
	}
}

func TestRunReportsParseError(t *testing.T) {
	src := `routine main() is var x integer; end;`

	res, err := Run(context.Background(), Ctx{SkipAssemble: true}, "prog.il", src)
	if err == nil {
		t.Fatal("expected a parse error")
	}
	if len(res.Sink.Diagnostics()) == 0 {
		t.Error("expected at least one diagnostic recorded for the parse failure")
	}
}

func TestRunVisualize(t *testing.T) {
	src := `routine main() is var x: integer is 2+3; print(x); end;`

	res, err := Run(context.Background(), Ctx{Optimize: true, Visualize: true, SkipAssemble: true}, "prog.il", src)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if res.Report == nil {
		t.Fatal("expected a visualize report")
	}
	if !strings.Contains(res.Report.DOT, "digraph") {
		t.Errorf("expected DOT output, got: %s", res.Report.DOT)
	}
}
