// Command ilc is the batch compiler's CLI entry point (spec §6): it
// lexes, parses, semantically analyzes, optionally optimizes, and
// lowers one IL source file to stack-machine assembly, then hands the
// result to the external assembler and archiver collaborators.
package main

import (
	"os"

	"github.com/ilcc/ilc/cmd/ilc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
