package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnolang/symbal/internal/balance"
)

var showCode bool

// reportCmd prints the one-line verdict for each file. The exit status is
// the highest result code seen (0 balanced, 1 unclosed opener,
// 2 unmatched closer, 3 mismatch).
var reportCmd = &cobra.Command{
	Use:   "report <files...>",
	Short: "Print a one-line balance verdict per file",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		code, err := writeReports(os.Stdout, args, showCode)
		if err != nil {
			logger.Error("Error checking file", zap.Error(err))
			os.Exit(1)
		}
		os.Exit(code)
	},
}

func init() {
	reportCmd.Flags().BoolVar(&showCode, "code", false, "Prefix each verdict with its numeric result code")
}

// writeReports checks each file and writes its verdict to w, prefixed by
// the file name when there is more than one. It returns the highest
// result code. Files after an unreadable one are still checked.
func writeReports(w io.Writer, paths []string, withCode bool) (int, error) {
	var (
		maxCode  int
		firstErr error
	)
	for _, path := range paths {
		result, err := balance.CheckFile(path)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}

		line := result.String()
		if withCode {
			line = fmt.Sprintf("[%d] %s", result.Code(), line)
		}
		if len(paths) > 1 {
			line = path + ": " + line
		}
		fmt.Fprintln(w, line)

		maxCode = max(maxCode, result.Code())
	}
	return maxCode, firstErr
}
