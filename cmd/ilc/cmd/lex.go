package cmd

import (
	"fmt"
	"os"

	"github.com/ilcc/ilc/internal/lexer"
	"github.com/spf13/cobra"
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a source file and print its tokens (debug aid)",
	Args:  cobra.ExactArgs(1),
	RunE:  runLex,
}

func init() {
	rootCmd.AddCommand(lexCmd)
}

func runLex(_ *cobra.Command, args []string) error {
	content, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	l := lexer.New(string(content))
	for {
		tok := l.NextToken()
		fmt.Printf("%-12s %-20q %d:%d\n", tok.Type, tok.Literal, tok.Pos.Line, tok.Pos.Column)
		if tok.Type == lexer.EOF {
			break
		}
	}
	for _, lerr := range l.Errors() {
		fmt.Fprintf(os.Stderr, "lexical: %s at %d:%d\n", lerr.Message, lerr.Pos.Line, lerr.Pos.Column)
	}
	return nil
}
