package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ilcc/ilc/internal/diag"
	"github.com/ilcc/ilc/internal/driver"
)

// runTestAll implements `ilc --test-all` (spec §6): compile every *.txt
// fixture under tests/, classify each outcome as OK, "(parse error)", or
// a count of semantic errors (the messages themselves are listed under
// --verbose), and print a natural-ordered summary. The assembler/archiver collaborators are skipped: test-all
// classifies front-end/analyzer/codegen outcomes, not packaging.
func runTestAll(ctx context.Context) error {
	paths, err := filepath.Glob(filepath.Join("tests", "*.txt"))
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		fmt.Fprintln(os.Stderr, "no fixtures found under tests/*.txt")
		return nil
	}

	names := make([]string, len(paths))
	byName := make(map[string]string, len(paths))
	for i, p := range paths {
		name := filepath.Base(p)
		names[i] = name
		byName[name] = p
	}
	diag.SortFileNamesNatural(names)

	failures := 0
	for _, name := range names {
		path := byName[name]
		content, rerr := os.ReadFile(path)
		if rerr != nil {
			fmt.Printf("%-30s FAIL (could not read: %v)\n", name, rerr)
			failures++
			continue
		}

		cctx := driver.Ctx{Optimize: flagOptimize, Visualize: false, SkipAssemble: true, SkipArchive: true}
		res, runErr := driver.Run(ctx, cctx, path, string(content))

		switch {
		case runErr == nil:
			fmt.Printf("%-30s OK\n", name)
		case isParseFailure(res):
			fmt.Printf("%-30s (parse error)\n", name)
			failures++
			if flagVerbose {
				for _, msg := range res.Sink.Messages() {
					fmt.Printf("  %s\n", msg)
				}
			}
		default:
			fmt.Printf("%-30s %d semantic error(s)\n", name, len(res.Sink.Messages()))
			failures++
			if flagVerbose {
				for _, msg := range res.Sink.Messages() {
					fmt.Printf("  %s\n", msg)
				}
			}
		}
	}

	if failures > 0 {
		return fmt.Errorf("%d/%d fixture(s) failed", failures, len(names))
	}
	return nil
}

// isParseFailure distinguishes a syntactic failure (at most one
// diagnostic, per §4.2's no-recovery grammar) from the analyzer's
// potentially-many semantic diagnostics, per §7's outcome taxonomy.
func isParseFailure(res *driver.Result) bool {
	if res == nil || res.Sink == nil {
		return false
	}
	for _, d := range res.Sink.Diagnostics() {
		if d.Kind == diag.Syntactic || d.Kind == diag.Lexical {
			return true
		}
	}
	return false
}
