package assemble

import (
	"context"
	"errors"
	"testing"
)

func TestAssembleAllStopsAtFirstFailure(t *testing.T) {
	var calls []string
	tool := &Tool{
		Path: "assembler",
		Runner: func(_ context.Context, name string, args ...string) ([]byte, error) {
			calls = append(calls, args[len(args)-1])
			if args[len(args)-1] == "Bad.j" {
				return []byte("bad unit\n"), errors.New("exit status 1")
			}
			return nil, nil
		},
	}

	err := tool.AssembleAll(context.Background(), "out", []string{"P.j", "Bad.j", "Main.j"})
	if err == nil {
		t.Fatal("expected an error from the failing unit")
	}
	if len(calls) != 2 {
		t.Fatalf("expected assembler to stop after the failing unit, got calls=%v", calls)
	}
}

func TestAssembleSuccess(t *testing.T) {
	tool := &Tool{
		Path: "assembler",
		Runner: func(_ context.Context, name string, args ...string) ([]byte, error) {
			return nil, nil
		},
	}
	if err := tool.Assemble(context.Background(), "out", "Main.j"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNewDefaultPath(t *testing.T) {
	tool := New("/opt/ilc", "")
	if tool.Path != "/opt/ilc/lib/assembler.jar" {
		t.Fatalf("unexpected default path: %s", tool.Path)
	}
}
