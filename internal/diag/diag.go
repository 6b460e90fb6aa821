// Package diag implements the compiler's diagnostic sink: structured error
// records with source locations, classified by the four kinds of spec §7.
package diag

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ilcc/ilc/internal/lexer"
	"github.com/maruel/natural"
)

// Kind identifies which subsystem raised a diagnostic.
type Kind int

const (
	Lexical Kind = iota
	Syntactic
	Semantic
	CodegenIO
)

func (k Kind) String() string {
	switch k {
	case Lexical:
		return "lexical"
	case Syntactic:
		return "syntactic"
	case Semantic:
		return "semantic"
	case CodegenIO:
		return "codegen/io"
	default:
		return "unknown"
	}
}

// Diagnostic is one error with its source position and the kind of pass
// that raised it.
type Diagnostic struct {
	Kind    Kind
	Message string
	Pos     lexer.Position
	File    string
	Source  string
}

// NewDiagnostic builds a Diagnostic.
func NewDiagnostic(kind Kind, pos lexer.Position, message, source, file string) *Diagnostic {
	return &Diagnostic{Kind: kind, Message: message, Pos: pos, File: file, Source: source}
}

func (d *Diagnostic) Error() string { return d.Line() }

// Line renders the one-line `<kind>: <message>` form required by §7 for
// stderr output.
func (d *Diagnostic) Line() string {
	return fmt.Sprintf("%s: %s", d.Kind, d.Message)
}

// Format renders the diagnostic with a source-line-and-caret context block,
// the way the teacher's error reporter annotates terminal output.
func (d *Diagnostic) Format() string {
	var sb strings.Builder

	if d.File != "" {
		fmt.Fprintf(&sb, "%s in %s:%d:%d\n", d.Kind, d.File, d.Pos.Line, d.Pos.Column)
	} else {
		fmt.Fprintf(&sb, "%s at %d:%d\n", d.Kind, d.Pos.Line, d.Pos.Column)
	}

	if line := sourceLine(d.Source, d.Pos.Line); line != "" {
		prefix := fmt.Sprintf("%4d | ", d.Pos.Line)
		sb.WriteString(prefix)
		sb.WriteString(line)
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(" ", len(prefix)+d.Pos.Column-1))
		sb.WriteString("^\n")
	}

	sb.WriteString(d.Message)
	return sb.String()
}

func sourceLine(source string, lineNum int) string {
	if source == "" || lineNum < 1 {
		return ""
	}
	lines := strings.Split(source, "\n")
	if lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}

// Sink collects diagnostics across a compilation pass. It never aborts on
// the first error: per spec §4.3 the semantic analyzer gathers every
// violation before the pipeline decides to abort.
type Sink struct {
	diags []*Diagnostic
}

// NewSink creates an empty Sink.
func NewSink() *Sink { return &Sink{} }

// Add records a diagnostic.
func (s *Sink) Add(d *Diagnostic) { s.diags = append(s.diags, d) }

// Addf is a convenience wrapper that builds and records a Diagnostic.
func (s *Sink) Addf(kind Kind, pos lexer.Position, format string, args ...any) {
	s.Add(&Diagnostic{Kind: kind, Message: fmt.Sprintf(format, args...), Pos: pos})
}

// HasErrors reports whether any diagnostic has been recorded.
func (s *Sink) HasErrors() bool { return len(s.diags) > 0 }

// Diagnostics returns all recorded diagnostics in the order they were added.
func (s *Sink) Diagnostics() []*Diagnostic { return s.diags }

// Messages returns just the `<kind>: <message>` lines, for §8's "semantic
// error list contains ..." testable properties.
func (s *Sink) Messages() []string {
	msgs := make([]string, len(s.diags))
	for i, d := range s.diags {
		msgs[i] = d.Line()
	}
	return msgs
}

// FormatAll renders every diagnostic in its Format() form (the message
// plus, when the source is known, the source line and a caret),
// blank-line separated.
func (s *Sink) FormatAll() string {
	lines := make([]string, len(s.diags))
	for i, d := range s.diags {
		lines[i] = d.Format()
	}
	return strings.Join(lines, "\n\n")
}

// SetSource backfills Source/File on every already-recorded diagnostic, for
// passes (like the lexer) that run before the caller knows the file name.
func (s *Sink) SetSource(source, file string) {
	for _, d := range s.diags {
		d.Source = source
		d.File = file
	}
}

// SortFileNamesNatural sorts a list of test file names in natural order
// (case10.txt after case2.txt, not before it), the way `ilc --test-all`
// presents its per-file summary.
func SortFileNamesNatural(names []string) {
	sort.Slice(names, func(i, j int) bool {
		return natural.Less(names[i], names[j])
	})
}
