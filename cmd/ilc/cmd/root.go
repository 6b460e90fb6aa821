package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/ilcc/ilc/internal/driver"
	"github.com/spf13/cobra"
)

var (
	flagDebug     bool
	flagOptimize  bool
	flagVerbose   bool
	flagVisualize bool
	flagTestAll   bool
	flagOutDir    string
)

var rootCmd = &cobra.Command{
	Use:   "ilc [input-file]",
	Short: "ilc compiles IL source files to stack-machine assembly",
	Long: `ilc is a batch compiler for the IL language: it lexes, parses,
semantically analyzes, optionally optimizes, and lowers one source file to
stack-machine textual assembly, then hands the result to the external
assembler and archiver.

Examples:
  # Compile a single file
  ilc program.il

  # Compile with the optimizer and an HTML/DOT report
  ilc program.il --optimize --visualize

  # Compile every fixture under tests/
  ilc --test-all`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRoot,
}

func init() {
	rootCmd.Flags().BoolVar(&flagDebug, "debug", false, "print a stack trace on an internal invariant panic")
	rootCmd.Flags().BoolVarP(&flagOptimize, "optimize", "O", false, "run the constant-fold/dead-code/unused-variable optimizer passes")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "expand diagnostics with source-line context")
	rootCmd.Flags().BoolVarP(&flagVisualize, "visualize", "V", false, "emit an HTML+DOT report alongside the compiled output")
	rootCmd.Flags().BoolVar(&flagTestAll, "test-all", false, "compile every *.txt fixture under tests/ and summarize outcomes")
	rootCmd.Flags().StringVarP(&flagOutDir, "out", "o", "", "output directory for assembly/archive artifacts (default: alongside the input)")
}

// Execute runs the ilc command tree, returning a non-nil error for any
// failure; main() maps that to the binary exit code of spec §7.
func Execute() error {
	return rootCmd.Execute()
}

func runRoot(cmd *cobra.Command, args []string) (err error) {
	if flagDebug {
		defer func() {
			if r := recover(); r != nil {
				fmt.Fprintf(os.Stderr, "panic: %v\n%s\n", r, debug.Stack())
				err = fmt.Errorf("internal error: %v", r)
			}
		}()
	}

	if flagTestAll {
		return runTestAll(cmd.Context())
	}

	if len(args) != 1 {
		return fmt.Errorf("either provide an input file or use --test-all")
	}
	return compileFile(cmd.Context(), args[0])
}

func compileFile(ctx context.Context, filename string) error {
	content, readErr := os.ReadFile(filename)
	if readErr != nil {
		fmt.Fprintf(os.Stderr, "codegen/io: failed to read file %s: %v\n", filename, readErr)
		return readErr
	}

	cctx := driver.Ctx{
		Optimize:  flagOptimize,
		Debug:     flagDebug,
		Verbose:   flagVerbose,
		Visualize: flagVisualize,
		OutDir:    outDirFor(filename),
	}

	res, runErr := driver.Run(ctx, cctx, filename, string(content))
	printDiagnostics(res)

	if runErr != nil {
		return runErr
	}

	if res.Report != nil {
		if werr := writeReport(cctx.OutDir, filename, res); werr != nil {
			fmt.Fprintf(os.Stderr, "codegen/io: %v\n", werr)
			return werr
		}
	}

	if res.ArchivePath != "" {
		fmt.Printf("wrote %s\n", res.ArchivePath)
	}
	return nil
}

func outDirFor(filename string) string {
	if flagOutDir != "" {
		return flagOutDir
	}
	return filepath.Dir(filename)
}

func printDiagnostics(res *driver.Result) {
	if res == nil || res.Sink == nil {
		return
	}
	if flagVerbose || flagDebug {
		if out := res.Sink.FormatAll(); out != "" {
			fmt.Fprintln(os.Stderr, out)
		}
		return
	}
	for _, msg := range res.Sink.Messages() {
		fmt.Fprintln(os.Stderr, msg)
	}
}

func writeReport(outDir, filename string, res *driver.Result) error {
	dir := outDir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	base := filepath.Base(filename)
	ext := filepath.Ext(base)
	name := base[:len(base)-len(ext)]

	htmlPath := filepath.Join(dir, name+".report.html")
	if err := os.WriteFile(htmlPath, []byte(res.Report.HTML), 0o644); err != nil {
		return err
	}
	dotPath := filepath.Join(dir, name+".dot")
	if err := os.WriteFile(dotPath, []byte(res.Report.DOT), 0o644); err != nil {
		return err
	}
	fmt.Printf("wrote %s and %s\n", htmlPath, dotPath)
	return nil
}
