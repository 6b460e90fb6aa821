// Package symtab implements the lexically-scoped symbol table used by the
// semantic analyzer: three separate namespaces (variables, routines,
// types) with the scoping rules of spec §3.
//
// Re-designed per the source's note on global mutable state: a Table is an
// explicit value owned by one analysis pass, never a package-level
// singleton. Re-designed per the note on scope stacks: scopes are a linked
// chain of maps searched from innermost outward, with popped scopes simply
// dropped (no free-list is needed at this scale).
package symtab

import (
	"fmt"

	"github.com/ilcc/ilc/internal/types"
)

// RoutineSignature is a routine's globally-visible shape: ordered
// parameter types and an optional return type (nil means void).
type RoutineSignature struct {
	Name       string
	Params     []types.Type
	ReturnType types.Type
}

type varScope struct {
	vars  map[string]types.Type
	outer *varScope
}

// Table is the symbol table for one analysis pass over one Program.
type Table struct {
	vars     *varScope
	routines map[string]*RoutineSignature
	userdefd map[string]struct{} // user-declared type names, for builtin-disjointness checks
	typesNS  map[string]types.Type
}

// New creates a Table with the global scope pushed and the built-in type
// names preloaded: integer, real, boolean, string, void.
func New() *Table {
	t := &Table{
		vars:     &varScope{vars: make(map[string]types.Type)},
		routines: make(map[string]*RoutineSignature),
		userdefd: make(map[string]struct{}),
		typesNS:  make(map[string]types.Type),
	}
	for _, name := range []string{types.Integer, types.RealT, types.Boolean, types.StringT, types.Void} {
		t.typesNS[name] = types.NewSimple(name)
	}
	return t
}

// PushScope enters a new lexical scope (routine body, for-loop, block).
func (t *Table) PushScope() {
	t.vars = &varScope{vars: make(map[string]types.Type), outer: t.vars}
}

// PopScope exits the current scope, discarding its bindings. It is a
// programming error to pop the global scope; callers must balance every
// PushScope with exactly one PopScope.
func (t *Table) PopScope() {
	if t.vars.outer == nil {
		panic("symtab: cannot pop the global scope")
	}
	t.vars = t.vars.outer
}

// DeclareVar adds name to the current scope. It returns an error if name
// is already declared in that same scope (shadowing an outer scope is
// allowed; redeclaring within one scope is not).
func (t *Table) DeclareVar(name string, typ types.Type) error {
	if _, exists := t.vars.vars[name]; exists {
		return fmt.Errorf("variable '%s' already defined in this scope", name)
	}
	t.vars.vars[name] = typ
	return nil
}

// LookupVar searches the scope chain from innermost to outermost.
func (t *Table) LookupVar(name string) (types.Type, bool) {
	for s := t.vars; s != nil; s = s.outer {
		if typ, ok := s.vars[name]; ok {
			return typ, true
		}
	}
	return nil, false
}

// DeclareRoutine registers a routine signature. Routine names are
// process-wide unique within a Program (flat namespace, no overloading).
func (t *Table) DeclareRoutine(sig *RoutineSignature) error {
	if _, exists := t.routines[sig.Name]; exists {
		return fmt.Errorf("routine '%s' already defined", sig.Name)
	}
	t.routines[sig.Name] = sig
	return nil
}

// LookupRoutine finds a routine signature by name.
func (t *Table) LookupRoutine(name string) (*RoutineSignature, bool) {
	sig, ok := t.routines[name]
	return sig, ok
}

// DeclareType registers a user type name. Type names are globally unique
// within a Program and disjoint from the preloaded built-ins.
func (t *Table) DeclareType(name string, typ types.Type) error {
	if _, isBuiltin := t.typesNS[name]; isBuiltin {
		if _, isUser := t.userdefd[name]; !isUser {
			return fmt.Errorf("type '%s' conflicts with a built-in type name", name)
		}
		return fmt.Errorf("type '%s' already defined", name)
	}
	t.typesNS[name] = typ
	t.userdefd[name] = struct{}{}
	return nil
}

// LookupType resolves a type name through the flat types namespace
// (built-ins plus user-declared).
func (t *Table) LookupType(name string) (types.Type, bool) {
	typ, ok := t.typesNS[name]
	return typ, ok
}

// ScopeDepth reports how many scopes are currently pushed past the global
// scope; used by tests to assert push/pop balance.
func (t *Table) ScopeDepth() int {
	depth := 0
	for s := t.vars; s.outer != nil; s = s.outer {
		depth++
	}
	return depth
}
