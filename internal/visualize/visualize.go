// Package visualize implements the `--visualize|-V` external-reporter
// collaborator of spec §6: an HTML summary plus a Graphviz `.dot` file
// of the program's top-level statement tree and the optimizer's
// transformation log.
//
// No Graphviz-binding library appears anywhere in the retrieval pack, so
// `.dot` text is hand-emitted (a stdlib choice recorded in DESIGN.md).
// The HTML side builds its data model as a JSON document via
// tidwall/sjson (mirroring the teacher's go-snaps dependency chain) and
// reads it back with tidwall/gjson before driving an html/template, the
// way a report pipeline that treats its data model as "JSON on the way
// to a template" would in the rest of the retrieval pack.
package visualize

import (
	"fmt"
	"html/template"
	"strconv"
	"strings"

	"github.com/ilcc/ilc/internal/ast"
	"github.com/ilcc/ilc/internal/optimizer"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Report is the rendered pair of artifacts the `-V` flag writes to disk.
type Report struct {
	HTML string
	DOT  string
}

// Build renders prog and the optimizer's transformation details into an
// HTML report and a Graphviz `.dot` file.
func Build(unitName string, prog *ast.Program, details []optimizer.Detail) (*Report, error) {
	model, err := buildModel(unitName, prog, details)
	if err != nil {
		return nil, err
	}

	html, err := renderHTML(model)
	if err != nil {
		return nil, err
	}

	return &Report{HTML: html, DOT: renderDOT(unitName, prog)}, nil
}

// buildModel assembles the report's JSON data model incrementally via
// sjson.Set, the pattern a hand-rolled struct-then-marshal wouldn't
// exercise: each field is patched into the document independently so a
// future reporter addition is a single Set call.
func buildModel(unitName string, prog *ast.Program, details []optimizer.Detail) (string, error) {
	doc := "{}"
	var err error
	set := func(path string, value any) {
		if err != nil {
			return
		}
		doc, err = sjson.Set(doc, path, value)
	}

	set("unit", unitName)
	set("statementCount", len(prog.Statements))
	set("optimizationCount", len(details))
	for i, d := range details {
		set(fmt.Sprintf("optimizations.%d.kind", i), string(d.Kind))
		set(fmt.Sprintf("optimizations.%d.line", i), d.Line)
		set(fmt.Sprintf("optimizations.%d.before", i), d.Before)
		set(fmt.Sprintf("optimizations.%d.after", i), d.After)
		set(fmt.Sprintf("optimizations.%d.description", i), d.Description)
	}
	for i, s := range prog.Statements {
		set(fmt.Sprintf("statements.%d.kind", i), statementKind(s))
		set(fmt.Sprintf("statements.%d.text", i), s.String())
	}

	return doc, err
}

const reportTemplate = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>ilc report: {{.Unit}}</title></head>
<body>
<h1>{{.Unit}}</h1>
<p>{{.StatementCount}} top-level statement(s), {{.OptimizationCount}} optimization(s) applied.</p>
<h2>Top-level statements</h2>
<ul>
{{range .Statements}}<li>[{{.Kind}}] {{.Text}}</li>
{{end}}</ul>
<h2>Optimizations</h2>
<ul>
{{range .Optimizations}}<li>{{.Kind}} (line {{.Line}}): {{.Description}} ({{.Before}} -&gt; {{.After}})</li>
{{end}}</ul>
</body>
</html>
`

type htmlStatement struct {
	Kind string
	Text string
}

type htmlOptimization struct {
	Kind        string
	Line        int64
	Before      string
	After       string
	Description string
}

type htmlModel struct {
	Unit              string
	StatementCount    int64
	OptimizationCount int64
	Statements        []htmlStatement
	Optimizations     []htmlOptimization
}

// renderHTML reads the JSON model back out with gjson rather than
// unmarshaling into the template struct directly, so the report's
// shape stays decoupled from Go's encoding/json struct tags.
func renderHTML(doc string) (string, error) {
	m := htmlModel{
		Unit:              gjson.Get(doc, "unit").String(),
		StatementCount:    gjson.Get(doc, "statementCount").Int(),
		OptimizationCount: gjson.Get(doc, "optimizationCount").Int(),
	}
	for _, s := range gjson.Get(doc, "statements").Array() {
		m.Statements = append(m.Statements, htmlStatement{
			Kind: s.Get("kind").String(),
			Text: s.Get("text").String(),
		})
	}
	for _, o := range gjson.Get(doc, "optimizations").Array() {
		m.Optimizations = append(m.Optimizations, htmlOptimization{
			Kind:        o.Get("kind").String(),
			Line:        o.Get("line").Int(),
			Before:      o.Get("before").String(),
			After:       o.Get("after").String(),
			Description: o.Get("description").String(),
		})
	}

	tmpl, err := template.New("report").Parse(reportTemplate)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	if err := tmpl.Execute(&sb, m); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// renderDOT emits a flat Graphviz digraph with one node per top-level
// statement, labeled with its kind; structurally this mirrors the
// "statement list" shape of a Program without attempting a full
// expression-level CFG, which spec §4.5 never asks the core to surface.
func renderDOT(unitName string, prog *ast.Program) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "digraph %q {\n", unitName)
	sb.WriteString("  rankdir=TB;\n")
	prev := "start"
	sb.WriteString("  start [shape=circle label=\"\"];\n")
	for i, s := range prog.Statements {
		node := "n" + strconv.Itoa(i)
		fmt.Fprintf(&sb, "  %s [shape=box label=%q];\n", node, statementKind(s)+": "+truncate(s.String(), 40))
		fmt.Fprintf(&sb, "  %s -> %s;\n", prev, node)
		prev = node
	}
	sb.WriteString("}\n")
	return sb.String()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

func statementKind(s ast.Statement) string {
	switch s.(type) {
	case *ast.VarDecl:
		return "VarDecl"
	case *ast.ArrayDecl:
		return "ArrayDecl"
	case *ast.TypeDecl:
		return "TypeDecl"
	case *ast.RoutineDecl:
		return "RoutineDecl"
	case *ast.Assignment:
		return "Assignment"
	case *ast.IfStmt:
		return "IfStmt"
	case *ast.WhileStmt:
		return "WhileStmt"
	case *ast.ForLoop:
		return "ForLoop"
	case *ast.PrintStmt:
		return "PrintStmt"
	case *ast.ReadStmt:
		return "ReadStmt"
	case *ast.ReturnStmt:
		return "ReturnStmt"
	case *ast.RoutineCallStmt:
		return "RoutineCallStmt"
	case *ast.EmptyStmt:
		return "EmptyStmt"
	default:
		return "Unknown"
	}
}
