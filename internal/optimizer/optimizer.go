// Package optimizer implements the three AST-rewrite passes of spec
// §4.4: constant folding, dead-code elimination, and unused-variable
// elimination, run in that order over the validated AST.
//
// Re-designed per internal/bytecode's chunkOptimizer: a named Pass enum,
// a config toggling which passes run, and a per-run counter of
// transformations applied — generalized here from bytecode instructions
// to AST rewrites.
package optimizer

import "github.com/ilcc/ilc/internal/ast"

// Pass identifies one of the optimizer's three AST-rewrite stages.
type Pass string

const (
	PassConstantFold Pass = "constant-fold"
	PassDeadCode     Pass = "dead-code"
	PassUnusedVars   Pass = "unused-vars"
)

// Option toggles optimizer behavior.
type Option func(*config)

type config struct {
	enabled map[Pass]bool
}

func defaultConfig() config {
	return config{enabled: map[Pass]bool{PassConstantFold: true, PassDeadCode: true, PassUnusedVars: true}}
}

func (c config) isEnabled(p Pass) bool {
	if c.enabled == nil {
		return true
	}
	v, ok := c.enabled[p]
	return !ok || v
}

// WithPass enables or disables one pass, for tests that want to isolate
// one pass; without options (as `ilc --optimize` calls Run) all three run.
func WithPass(p Pass, enabled bool) Option {
	return func(c *config) {
		if c.enabled == nil {
			c.enabled = make(map[Pass]bool)
		}
		c.enabled[p] = enabled
	}
}

// Detail records one transformation for an external reporter (the
// `--visualize` HTML/DOT report).
type Detail struct {
	Kind        Pass
	Line        int
	Before      string
	After       string
	Description string
}

// Result is the outcome of running the optimizer over one Program.
type Result struct {
	Program *ast.Program
	Count   int
	Details []Detail
}

// Run applies the enabled passes, in declared order, to prog and returns
// the rewritten program plus transformation counters.
func Run(prog *ast.Program, opts ...Option) Result {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	o := &optimizerState{cfg: cfg}

	if cfg.isEnabled(PassConstantFold) {
		prog.Statements = o.foldStatements(prog.Statements)
	}
	if cfg.isEnabled(PassDeadCode) {
		prog.Statements = o.eliminateDeadCode(prog.Statements)
	}
	if cfg.isEnabled(PassUnusedVars) {
		prog.Statements = o.eliminateUnusedVars(prog.Statements)
	}

	return Result{Program: prog, Count: o.count, Details: o.details}
}

type optimizerState struct {
	cfg     config
	count   int
	details []Detail
}

func (o *optimizerState) record(kind Pass, line int, before, after, desc string) {
	o.count++
	o.details = append(o.details, Detail{Kind: kind, Line: line, Before: before, After: after, Description: desc})
}
