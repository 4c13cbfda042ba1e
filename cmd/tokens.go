package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnolang/symbal/internal/symbol"
	"github.com/gnolang/symbal/internal/tokenizer"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens <file>",
	Short: "Print the symbols the checker sees in a file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		f, err := os.Open(args[0])
		if err != nil {
			logger.Fatal("Failed to open file", zap.String("file", args[0]), zap.Error(err))
		}
		defer f.Close()

		if err := printTokens(os.Stdout, f); err != nil {
			logger.Fatal("Failed to read file", zap.String("file", args[0]), zap.Error(err))
		}
	},
}

// printTokens writes one symbol per line as "line:column symbol".
// Line terminators are left out.
func printTokens(w io.Writer, r io.Reader) error {
	s := tokenizer.New(r)
	for {
		tok, ok := s.Next()
		if !ok {
			break
		}
		if tok.Symbol == symbol.LineEnd {
			continue
		}
		fmt.Fprintf(w, "%d:%d\t%s\n", tok.Line, tok.Column, tok.Symbol)
	}
	return s.Err()
}
