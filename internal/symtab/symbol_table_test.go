package symtab

import (
	"testing"

	"github.com/ilcc/ilc/internal/types"
)

func TestBuiltinTypesPreloaded(t *testing.T) {
	tab := New()
	for _, name := range []string{types.Integer, types.RealT, types.Boolean, types.StringT, types.Void} {
		if _, ok := tab.LookupType(name); !ok {
			t.Errorf("expected builtin type %q to be preloaded", name)
		}
	}
}

func TestDeclareVarDuplicateInScope(t *testing.T) {
	tab := New()
	if err := tab.DeclareVar("x", types.NewSimple(types.Integer)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := tab.DeclareVar("x", types.NewSimple(types.Integer)); err == nil {
		t.Fatal("expected duplicate declaration error")
	}
}

func TestShadowingAcrossScopesAllowed(t *testing.T) {
	tab := New()
	if err := tab.DeclareVar("x", types.NewSimple(types.Integer)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tab.PushScope()
	if err := tab.DeclareVar("x", types.NewSimple(types.RealT)); err != nil {
		t.Fatalf("shadowing in an inner scope should be allowed: %v", err)
	}
	typ, _ := tab.LookupVar("x")
	if typ.String() != types.RealT {
		t.Fatalf("expected inner 'x' to shadow outer, got %s", typ)
	}
	tab.PopScope()
	typ, _ = tab.LookupVar("x")
	if typ.String() != types.Integer {
		t.Fatalf("expected outer 'x' to resurface after pop, got %s", typ)
	}
}

func TestLookupVarSearchesOuterScopes(t *testing.T) {
	tab := New()
	tab.DeclareVar("g", types.NewSimple(types.Integer))
	tab.PushScope()
	if _, ok := tab.LookupVar("g"); !ok {
		t.Fatal("expected to find outer-scope variable from inner scope")
	}
	tab.PopScope()
	if _, ok := tab.LookupVar("nope"); ok {
		t.Fatal("did not expect to find undeclared variable")
	}
}

func TestPopGlobalScopePanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected panic when popping the global scope")
		}
	}()
	tab := New()
	tab.PopScope()
}

func TestDeclareRoutineUniqueness(t *testing.T) {
	tab := New()
	sig := &RoutineSignature{Name: "f", ReturnType: types.NewSimple(types.Integer)}
	if err := tab.DeclareRoutine(sig); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := tab.DeclareRoutine(sig); err == nil {
		t.Fatal("expected duplicate routine error")
	}
	got, ok := tab.LookupRoutine("f")
	if !ok || got != sig {
		t.Fatal("expected to look up the declared routine")
	}
}

func TestDeclareTypeDisjointFromBuiltins(t *testing.T) {
	tab := New()
	if err := tab.DeclareType(types.Integer, types.NewSimple(types.Integer)); err == nil {
		t.Fatal("expected error declaring a type that collides with a builtin")
	}
	if err := tab.DeclareType("Point", types.NewRecord(nil)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := tab.DeclareType("Point", types.NewRecord(nil)); err == nil {
		t.Fatal("expected duplicate user type error")
	}
}

func TestScopeDepth(t *testing.T) {
	tab := New()
	if tab.ScopeDepth() != 0 {
		t.Fatalf("expected depth 0, got %d", tab.ScopeDepth())
	}
	tab.PushScope()
	tab.PushScope()
	if tab.ScopeDepth() != 2 {
		t.Fatalf("expected depth 2, got %d", tab.ScopeDepth())
	}
	tab.PopScope()
	if tab.ScopeDepth() != 1 {
		t.Fatalf("expected depth 1, got %d", tab.ScopeDepth())
	}
}
