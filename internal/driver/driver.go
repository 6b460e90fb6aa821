// Package driver orchestrates the full pipeline of spec §5: lex, parse,
// analyze, optimize, generate, assemble, archive, strictly in that
// order, aborting at the first stage that fails. It owns the
// process-wide config the source kept as static globals (§9's
// "CompilerCtx" redesign note) and the scoped filesystem resources
// (temp directory, output directory) that must be released on every
// exit path per §5.
package driver

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ilcc/ilc/internal/archive"
	"github.com/ilcc/ilc/internal/assemble"
	"github.com/ilcc/ilc/internal/ast"
	"github.com/ilcc/ilc/internal/codegen"
	"github.com/ilcc/ilc/internal/diag"
	"github.com/ilcc/ilc/internal/lexer"
	"github.com/ilcc/ilc/internal/optimizer"
	"github.com/ilcc/ilc/internal/parser"
	"github.com/ilcc/ilc/internal/semantic"
	"github.com/ilcc/ilc/internal/visualize"
)

// Ctx is the explicit configuration value threaded through one
// compilation, replacing the source's process-wide static flags and
// label counter (§9).
type Ctx struct {
	// Optimize enables the optimizer's three passes (`--optimize|-O`).
	Optimize bool
	// Debug prints a stack trace on an internal invariant panic
	// (`--debug`).
	Debug bool
	// Verbose expands diagnostic output (`--verbose|-v`).
	Verbose bool
	// Visualize emits the HTML/DOT report (`--visualize|-V`).
	Visualize bool
	// OutDir is the output root; temp and final artifacts are written
	// under it. Created lazily by Run and never assumed to pre-exist.
	OutDir string
	// AssemblerPath overrides the assembler tool location; empty uses
	// assemble.DefaultRelativePath.
	AssemblerPath string
	// SkipAssemble and SkipArchive let callers (tests, `ilc --test-all`)
	// stop the pipeline before the out-of-core collaborators,
	// without the core itself branching on CLI subcommand identity.
	SkipAssemble bool
	SkipArchive  bool
}

// Result carries every artifact a caller might want to inspect after a
// successful Run: the sink always reflects whatever diagnostics were
// raised even when they did not abort the pipeline (currently none do,
// once semantic analysis passes).
type Result struct {
	Program       *ast.Program
	OptimizeCount int
	Codegen       *codegen.Output
	ArchivePath   string
	Report        *visualize.Report
	Sink          *diag.Sink
}

// Run executes one compilation of source (named filename for
// diagnostics) according to ctx. It returns the first diagnostic-kind
// failure as an error; callers map that to the binary exit code of §7.
func Run(ctx context.Context, cctx Ctx, filename, source string) (*Result, error) {
	sink := diag.NewSink()

	l := lexer.New(source)
	p := parser.New(l)
	prog := p.ParseProgram()

	for _, lerr := range l.Errors() {
		sink.Addf(diag.Lexical, lerr.Pos, "%s", lerr.Message)
	}
	if perrs := p.Errors(); len(perrs) > 0 {
		for _, perr := range perrs {
			sink.Addf(diag.Syntactic, perr.Pos, "%s", perr.Message)
		}
		sink.SetSource(source, filename)
		return &Result{Sink: sink}, fmt.Errorf("parsing failed:\n%s", sink.FormatAll())
	}
	if sink.HasErrors() {
		// Lexical errors without a syntax error are still fatal to the
		// pipeline per §7: the parser likely limped through on error
		// tokens, but the source is not well-formed.
		sink.SetSource(source, filename)
		return &Result{Program: prog, Sink: sink}, fmt.Errorf("lexical errors:\n%s", sink.FormatAll())
	}

	analyzer := semantic.New()
	table, semSink := analyzer.Run(prog)
	for _, d := range semSink.Diagnostics() {
		sink.Add(d)
	}
	if sink.HasErrors() {
		sink.SetSource(source, filename)
		return &Result{Program: prog, Sink: sink}, fmt.Errorf("semantic analysis failed:\n%s", sink.FormatAll())
	}

	optCount := 0
	var optDetails []optimizer.Detail
	if cctx.Optimize {
		res := optimizer.Run(prog)
		prog = res.Program
		optCount = res.Count
		optDetails = res.Details
	}

	out, err := codegen.Generate(prog, table)
	if err != nil {
		sink.Addf(diag.CodegenIO, lexer.Position{}, "%s", err.Error())
		return &Result{Program: prog, OptimizeCount: optCount, Sink: sink}, fmt.Errorf("code generation failed: %w", err)
	}

	result := &Result{Program: prog, OptimizeCount: optCount, Codegen: out, Sink: sink}

	if cctx.Visualize {
		unitName := unitNameFor(filename)
		report, verr := visualize.Build(unitName, prog, optDetails)
		if verr != nil {
			sink.Addf(diag.CodegenIO, lexer.Position{}, "visualize: %s", verr.Error())
			return result, fmt.Errorf("visualize failed: %w", verr)
		}
		result.Report = report
	}

	if cctx.SkipAssemble {
		return result, nil
	}

	workDir, cleanup, err := acquireOutDir(cctx.OutDir)
	if err != nil {
		sink.Addf(diag.CodegenIO, lexer.Position{}, "%s", err.Error())
		return result, fmt.Errorf("failed to acquire output directory: %w", err)
	}
	defer cleanup()

	unitFiles, err := writeUnits(workDir, out)
	if err != nil {
		sink.Addf(diag.CodegenIO, lexer.Position{}, "%s", err.Error())
		return result, fmt.Errorf("failed to write assembly units: %w", err)
	}

	tool := assemble.New(filepath.Dir(os.Args[0]), cctx.AssemblerPath)
	if err := tool.AssembleAll(ctx, workDir, unitFiles); err != nil {
		sink.Addf(diag.CodegenIO, lexer.Position{}, "%s", err.Error())
		return result, err
	}

	if cctx.SkipArchive {
		return result, nil
	}

	archivePath := filepath.Join(cctx.outDirOrDefault(), unitNameFor(filename)+".ilarc")
	if err := archive.Package(archivePath, workDir, archive.DefaultManifest()); err != nil {
		sink.Addf(diag.CodegenIO, lexer.Position{}, "%s", err.Error())
		return result, fmt.Errorf("archiving failed: %w", err)
	}
	result.ArchivePath = archivePath

	return result, nil
}

func (c Ctx) outDirOrDefault() string {
	if c.OutDir != "" {
		return c.OutDir
	}
	return "."
}

// acquireOutDir implements §5's scoped-acquisition-with-guaranteed-release
// pattern for the temporary assembly directory: created lazily, and
// always removed by the returned cleanup func regardless of how the
// caller exits (success or any error path).
func acquireOutDir(outDir string) (dir string, cleanup func(), err error) {
	base := outDir
	if base == "" {
		base = "."
	}
	if err := os.MkdirAll(base, 0o755); err != nil {
		return "", nil, err
	}
	workDir, err := os.MkdirTemp(base, "ilc-asm-*")
	if err != nil {
		return "", nil, err
	}
	return workDir, func() { os.RemoveAll(workDir) }, nil
}

// writeUnits writes each record translation unit plus the main unit to
// `<Name>.j` files under dir, in the record-then-main order spec §4.5
// and §6 require the assembler to see them.
func writeUnits(dir string, out *codegen.Output) ([]string, error) {
	var files []string
	for _, name := range out.RecordOrder {
		path := filepath.Join(dir, name+".j")
		if err := os.WriteFile(path, []byte(out.RecordUnits[name]), 0o644); err != nil {
			return nil, err
		}
		files = append(files, path)
	}
	mainPath := filepath.Join(dir, "Main.j")
	if err := os.WriteFile(mainPath, []byte(out.MainUnit), 0o644); err != nil {
		return nil, err
	}
	files = append(files, mainPath)
	return files, nil
}

func unitNameFor(filename string) string {
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
