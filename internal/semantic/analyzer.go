// Package semantic implements the five-pass semantic analyzer of spec
// §4.3: routine hoisting, type hoisting, variable/array hoisting, routine
// bodies, then the remaining top-level statements.
//
// Re-designed per the source's pass-list architecture (PassContext +
// named Pass.Run steps): each
// pass here is a small struct with a Run method over a shared *Context,
// rather than one monolithic recursive walk. Unlike the source's passes,
// which each stop the pipeline on its own errors, the analyzer collects
// diagnostics across all five passes and lets the caller decide whether
// to abort — per spec §4.3's "collects ALL errors... never aborts on the
// first."
package semantic

import (
	"github.com/ilcc/ilc/internal/ast"
	"github.com/ilcc/ilc/internal/diag"
	"github.com/ilcc/ilc/internal/symtab"
	"github.com/ilcc/ilc/internal/types"
)

// Context is the shared state threaded through every pass: the symbol
// table being built, the diagnostic sink collecting violations, and the
// bookkeeping a routine body walk needs (its expected return type).
type Context struct {
	Table *symtab.Table
	Sink  *diag.Sink

	returnStack []types.Type // nil entry means void
}

func newContext() *Context {
	return &Context{Table: symtab.New(), Sink: diag.NewSink()}
}

func (c *Context) pushReturnType(t types.Type) { c.returnStack = append(c.returnStack, t) }
func (c *Context) popReturnType()              { c.returnStack = c.returnStack[:len(c.returnStack)-1] }
func (c *Context) currentReturnType() (types.Type, bool) {
	if len(c.returnStack) == 0 {
		return nil, false
	}
	return c.returnStack[len(c.returnStack)-1], true
}

// pass is one of the analyzer's five ordered steps.
type pass interface {
	Name() string
	Run(prog *ast.Program, ctx *Context)
}

// Analyzer runs the five passes in order over one Program.
type Analyzer struct {
	passes []pass
}

// New creates an Analyzer with the five passes wired in declared order.
func New() *Analyzer {
	return &Analyzer{
		passes: []pass{
			&routineHoistPass{},
			&typeHoistPass{},
			&varHoistPass{},
			&routineBodyPass{},
			&topLevelPass{},
		},
	}
}

// Run executes all five passes and returns the populated symbol table
// (useful to the code generator for static-field layout) and the
// diagnostic sink. The caller checks sink.HasErrors() before proceeding
// to optimization, per spec §4.3/§5's pipeline ordering.
func (a *Analyzer) Run(prog *ast.Program) (*symtab.Table, *diag.Sink) {
	ctx := newContext()
	for _, p := range a.passes {
		p.Run(prog, ctx)
	}
	return ctx.Table, ctx.Sink
}
