package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnolang/symbal/formatter"
	"github.com/gnolang/symbal/internal"
	tt "github.com/gnolang/symbal/internal/types"
	"github.com/gnolang/symbal/lint"
)

var (
	ignoreRules     string
	ignorePaths     string
	checkJsonOutput bool
	outPath         string
	cacheDir        string
)

var checkCmd = &cobra.Command{
	Use:   "check [paths...]",
	Short: "Check files or directories for unbalanced symbols",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: Please provide file or directory paths")
			os.Exit(1)
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		engine, err := newEngine()
		if err != nil {
			logger.Fatal("Failed to initialize lint engine", zap.Error(err))
		}

		applyIgnores(engine, ignoreRules, ignorePaths)

		runNormalCheckProcess(ctx, logger, engine, args, checkJsonOutput, outPath)
	},
}

func init() {
	checkCmd.Flags().StringVar(&ignoreRules, "ignore", "", "Comma-separated list of rules to ignore")
	checkCmd.Flags().StringVar(&ignorePaths, "ignore-paths", "", "Comma-separated list of paths to ignore")
	checkCmd.Flags().BoolVar(&checkJsonOutput, "json", false, "Output issues in JSON format")
	checkCmd.Flags().StringVarP(&outPath, "output", "o", "", "Output path (when using JSON)")
	checkCmd.Flags().StringVar(&cacheDir, "cache-dir", "", "Directory for cached results (disabled when empty)")
}

// newEngine builds an engine from the configuration file, with a result
// cache when --cache-dir is set.
func newEngine() (*internal.Engine, error) {
	opts := []internal.Option{internal.WithLogger(logger)}
	if cacheDir != "" {
		cache, err := internal.NewCache(cacheDir)
		if err != nil {
			return nil, err
		}
		// a changed configuration invalidates every cached result
		if _, err := os.Stat(cfgFile); err == nil {
			if err := cache.SetDependencies(cfgFile); err != nil {
				return nil, err
			}
		}
		opts = append(opts, internal.WithCache(cache))
	}
	return lint.New(cfgFile, opts...)
}

func applyIgnores(engine lint.LintEngine, rules, paths string) {
	for _, rule := range splitList(rules) {
		engine.IgnoreRule(rule)
	}
	for _, path := range splitList(paths) {
		engine.IgnorePath(path)
	}
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func runNormalCheckProcess(ctx context.Context, logger *zap.Logger, engine lint.LintEngine, paths []string, isJson bool, jsonOutput string) {
	if failed := checkPaths(ctx, os.Stdout, logger, engine, paths, isJson, jsonOutput); failed {
		os.Exit(1)
	}
}

// checkPaths processes paths and prints every issue found, including
// those from paths processed alongside one that failed. It reports
// whether the run should fail: any issue or any error.
func checkPaths(ctx context.Context, w io.Writer, logger *zap.Logger, engine lint.LintEngine, paths []string, isJson bool, jsonOutput string) bool {
	issues, procErr := lint.ProcessFiles(ctx, logger, engine, paths, lint.ProcessFile)
	if procErr != nil {
		logger.Error("Error processing files", zap.Error(procErr))
	}

	if err := printIssues(w, logger, issues, isJson, jsonOutput); err != nil {
		logger.Error("Error printing issues", zap.Error(err))
		return true
	}

	return procErr != nil || len(issues) > 0
}

func printIssues(w io.Writer, logger *zap.Logger, issues []tt.Issue, isJson bool, jsonOutput string) error {
	issuesByFile := make(map[string][]tt.Issue)
	for _, issue := range issues {
		issuesByFile[issue.Filename] = append(issuesByFile[issue.Filename], issue)
	}

	if isJson {
		d, err := json.Marshal(issuesByFile)
		if err != nil {
			return fmt.Errorf("marshalling issues to JSON: %w", err)
		}
		if jsonOutput == "" {
			_, err = fmt.Fprintln(w, string(d))
			return err
		}
		return os.WriteFile(jsonOutput, d, 0o644)
	}

	sortedFiles := make([]string, 0, len(issuesByFile))
	for filename := range issuesByFile {
		sortedFiles = append(sortedFiles, filename)
	}
	sort.Strings(sortedFiles)

	for _, filename := range sortedFiles {
		sourceCode, err := internal.ReadSourceCode(filename)
		if err != nil {
			logger.Error("Error reading source file", zap.String("file", filename), zap.Error(err))
			continue
		}
		fmt.Fprint(w, formatter.GenerateFormattedIssue(issuesByFile[filename], sourceCode))
	}
	return nil
}
