package lint

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/gnolang/symbal/internal"
	"github.com/gnolang/symbal/internal/balance"
	tt "github.com/gnolang/symbal/internal/types"
	"github.com/gnolang/symbal/scanner"
)

const (
	DefaultConfigFile = ".symbal.yaml"

	maxShowRecentFiles = 5
)

type LintEngine interface {
	Run(filePath string) ([]tt.Issue, error)
	RunSource(source []byte) ([]tt.Issue, error)
	IgnoreRule(rule string)
	IgnorePath(path string)
	Extensions() []string
}

// CheckBalance reports whether the brackets, block comments and string
// quotes in source are balanced.
func CheckBalance(source string) balance.Result {
	return balance.CheckBalance(source)
}

// New creates an engine configured from the file at configurationPath.
// A missing configuration file yields the default configuration.
func New(configurationPath string, opts ...internal.Option) (*internal.Engine, error) {
	config, err := LoadConfig(configurationPath)
	if err != nil {
		return nil, err
	}

	opts = append([]internal.Option{internal.WithExtensions(config.Extensions...)}, opts...)
	engine, err := internal.NewEngine(config.Rules, opts...)
	if err != nil {
		return nil, err
	}
	for _, p := range config.IgnorePaths {
		engine.IgnorePath(p)
	}
	return engine, nil
}

func ProcessSources(
	ctx context.Context,
	logger *zap.Logger,
	engine LintEngine,
	sources [][]byte,
	processor func(LintEngine, []byte) ([]tt.Issue, error),
) ([]tt.Issue, error) {
	var allIssues []tt.Issue
	for i, source := range sources {
		if err := ctx.Err(); err != nil {
			return allIssues, err
		}
		issues, err := processor(engine, source)
		if err != nil {
			if logger != nil {
				logger.Error("Error processing source", zap.Int("source", i), zap.Error(err))
			}
			return nil, err
		}
		allIssues = append(allIssues, issues...)
	}

	return allIssues, nil
}

// ProcessFiles runs ProcessPath over every path. A path that fails does
// not stop the others; the issues found so far are returned with the
// joined errors.
func ProcessFiles(
	ctx context.Context,
	logger *zap.Logger,
	engine LintEngine,
	paths []string,
	processor func(LintEngine, string) ([]tt.Issue, error),
) ([]tt.Issue, error) {
	var (
		allIssues []tt.Issue
		errs      []error
	)
	for _, path := range paths {
		issues, err := ProcessPath(ctx, logger, engine, path, processor)
		allIssues = append(allIssues, issues...)
		if err != nil {
			if logger != nil {
				logger.Error("Error processing path", zap.String("path", path), zap.Error(err))
			}
			errs = append(errs, err)
			if ctx.Err() != nil {
				break
			}
		}
	}

	return allIssues, errors.Join(errs...)
}

// ProcessPath checks a single file, or every matching file under a
// directory using up to runtime.NumCPU() workers. A file that fails to
// process does not stop the others; its error is returned alongside the
// issues collected from the rest.
func ProcessPath(
	ctx context.Context,
	logger *zap.Logger,
	engine LintEngine,
	path string,
	processor func(LintEngine, string) ([]tt.Issue, error),
) ([]tt.Issue, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing %s: %w", path, err)
	}

	if !info.IsDir() {
		issues := []tt.Issue{}
		fileIssues, err := processor(engine, path)
		if err != nil {
			return issues, err
		}
		return append(issues, fileIssues...), nil
	}

	found, err := scanner.New(path, engine.Extensions()...).Skip(isHiddenDir(path)).Scan()
	if err != nil {
		return nil, fmt.Errorf("error walking directory %s: %w", path, err)
	}
	files := make([]string, 0, len(found))
	for _, f := range found {
		files = append(files, f.Path)
	}

	bar := progressbar.NewOptions(len(files),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetVisibility(len(files) > 1),
		progressbar.OptionSetDescription(path),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetMaxDetailRow(maxShowRecentFiles),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))
	defer bar.Close()

	var (
		mu     sync.Mutex
		issues = []tt.Issue{}
		errs   []error
	)

	// limit the number of workers
	g := new(errgroup.Group)
	g.SetLimit(runtime.NumCPU())

	for _, filePath := range files {
		if ctx.Err() != nil {
			break
		}
		filePath := filePath
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			_ = bar.AddDetail(filepath.Base(filePath))

			fileIssues, err := processor(engine, filePath)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if logger != nil {
					logger.Error("Error processing file", zap.String("file", filePath), zap.Error(err))
				}
				errs = append(errs, err)
			} else {
				issues = append(issues, fileIssues...)
			}
			_ = bar.Add(1)
			return nil
		})
	}
	_ = g.Wait()

	sortIssues(issues)

	if err := ctx.Err(); err != nil {
		return issues, err
	}
	return issues, errors.Join(errs...)
}

func ProcessFile(engine LintEngine, filePath string) ([]tt.Issue, error) {
	return engine.Run(filePath)
}

func ProcessSource(engine LintEngine, source []byte) ([]tt.Issue, error) {
	return engine.RunSource(source)
}

// isHiddenDir skips dot-directories such as .git below root.
func isHiddenDir(root string) func(string) bool {
	root = filepath.Clean(root)
	return func(path string) bool {
		if filepath.Clean(path) == root {
			return false
		}
		base := filepath.Base(path)
		return strings.HasPrefix(base, ".") && base != "." && base != ".."
	}
}

func sortIssues(issues []tt.Issue) {
	sort.SliceStable(issues, func(i, j int) bool {
		if issues[i].Filename != issues[j].Filename {
			return issues[i].Filename < issues[j].Filename
		}
		return issues[i].Start.Line < issues[j].Start.Line
	})
}

// Config is the content of the configuration file.
type Config struct {
	Name        string                   `yaml:"name"`
	Extensions  []string                 `yaml:"extensions,omitempty"`
	IgnorePaths []string                 `yaml:"ignore_paths,omitempty"`
	Rules       map[string]tt.ConfigRule `yaml:"rules"`
}

// DefaultConfig returns the configuration written by `symbal init`.
func DefaultConfig() Config {
	rules := make(map[string]tt.ConfigRule)
	for _, name := range internal.Rules() {
		rules[name] = tt.ConfigRule{Severity: tt.SeverityError}
	}
	return Config{
		Name:       "symbal",
		Extensions: append([]string(nil), internal.DefaultExtensions...),
		Rules:      rules,
	}
}

// LoadConfig reads the configuration file at configurationPath. An empty
// path or a missing file yields the default configuration.
func LoadConfig(configurationPath string) (Config, error) {
	if configurationPath == "" {
		return DefaultConfig(), nil
	}

	f, err := os.Open(configurationPath)
	if os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return Config{}, err
	}
	defer f.Close()

	var config Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&config); err != nil {
		if errors.Is(err, io.EOF) {
			return DefaultConfig(), nil
		}
		return Config{}, fmt.Errorf("parsing %s: %w", configurationPath, err)
	}

	return config, nil
}

// WriteConfig writes config as YAML to path.
func WriteConfig(path string, config Config) error {
	d, err := yaml.Marshal(config)
	if err != nil {
		return err
	}
	return os.WriteFile(path, d, 0o644)
}
