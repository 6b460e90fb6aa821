package cmd

import (
	"fmt"
	"os"

	"github.com/ilcc/ilc/internal/astutil"
	"github.com/ilcc/ilc/internal/lexer"
	"github.com/ilcc/ilc/internal/parser"
	"github.com/spf13/cobra"
)

var dumpAST bool

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a source file and print its AST (debug aid)",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().BoolVar(&dumpAST, "dump-ast", false, "print the full reparseable tree instead of one line per statement")
	rootCmd.AddCommand(parseCmd)
}

func runParse(_ *cobra.Command, args []string) error {
	content, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	l := lexer.New(string(content))
	p := parser.New(l)
	prog := p.ParseProgram()

	if errs := p.Errors(); len(errs) > 0 {
		for _, perr := range errs {
			fmt.Fprintf(os.Stderr, "syntactic: %s\n", perr.Error())
		}
		return fmt.Errorf("parsing failed with %d error(s)", len(errs))
	}

	if dumpAST {
		fmt.Print(astutil.Sprint(prog))
		return nil
	}

	for _, stmt := range prog.Statements {
		fmt.Println(stmt.String())
	}
	return nil
}
