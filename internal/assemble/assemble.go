// Package assemble wraps the external assembler collaborator of spec §6:
// a subprocess invoked as `assembler -d <out-dir> <file.j>` per unit. The
// core only knows its invocation contract (args in, exit code and
// stderr out); the assembler itself is out of scope for this repository.
//
// Per §5's resource model, invocation is synchronous: the pipeline
// blocks on the subprocess's exit code with no timeout of its own (the
// child is killed only if the caller's ctx is cancelled), and streams the
// child's stderr through only on failure.
package assemble

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// DefaultRelativePath is the fixed, build-time-constant location spec §6
// specifies for the bundled assembler tool, relative to the ilc binary.
const DefaultRelativePath = "lib/assembler.jar"

// Tool locates and invokes the external assembler.
type Tool struct {
	// Path to the assembler executable or jar, resolved by New; the
	// driver builds one Tool per compilation.
	Path string
	// Runner invokes name with args and returns combined stderr plus any
	// exec error. Overridden in tests to avoid spawning a real process.
	Runner func(ctx context.Context, name string, args ...string) (stderr []byte, err error)
}

// New builds a Tool resolved against path, falling back to the fixed
// relative location under dir (typically the directory containing the
// ilc executable) when path is empty.
func New(dir, path string) *Tool {
	if path == "" {
		path = filepath.Join(dir, DefaultRelativePath)
	}
	return &Tool{Path: path, Runner: runSubprocess}
}

// Assemble invokes the assembler on one `.j` unit, writing its output
// under outDir. A non-zero exit is reported as an error carrying the
// child's stderr, per §7's "Code-gen / I/O" diagnostic kind.
func (t *Tool) Assemble(ctx context.Context, outDir, unitFile string) error {
	runner := t.Runner
	if runner == nil {
		runner = runSubprocess
	}
	stderr, err := runner(ctx, t.Path, "-d", outDir, unitFile)
	if err != nil {
		if len(stderr) > 0 {
			return fmt.Errorf("assembler failed on %s: %w\n%s", unitFile, err, stderr)
		}
		return fmt.Errorf("assembler failed on %s: %w", unitFile, err)
	}
	return nil
}

// AssembleAll assembles every unit file in order (records first, main
// unit last, per §4.5/§6), stopping at the first failure.
func (t *Tool) AssembleAll(ctx context.Context, outDir string, unitFiles []string) error {
	for _, f := range unitFiles {
		if err := t.Assemble(ctx, outDir, f); err != nil {
			return err
		}
	}
	return nil
}

func runSubprocess(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	cmd.Stdout = os.Stdout
	err := cmd.Run()
	return stderr.Bytes(), err
}
