package internal

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/gnolang/symbal/internal/balance"
	"github.com/gnolang/symbal/internal/nolint"
	tt "github.com/gnolang/symbal/internal/types"
)

// DefaultExtensions lists the file extensions checked when none are configured.
// These are languages using C-style brackets, block comments and strings.
var DefaultExtensions = []string{
	".c", ".cc", ".cpp", ".cs", ".css", ".go", ".gno", ".h", ".hpp",
	".java", ".js", ".kt", ".rs", ".scala", ".swift", ".ts",
}

// Engine manages the balance checking process.
type Engine struct {
	ignoredRules map[string]bool
	ignoredPaths []string
	rules        map[string]LintRule
	extensions   map[string]bool
	cache        *Cache
	logger       *zap.Logger

	checkCounter metric.Int64Counter

	// watch state, see watch.go
	mu         sync.Mutex
	watcher    *fsnotify.Watcher
	isWatching bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithCache makes the engine reuse results stored in c.
func WithCache(c *Cache) Option {
	return func(e *Engine) { e.cache = c }
}

func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithExtensions restricts the files the engine handles.
func WithExtensions(exts ...string) Option {
	return func(e *Engine) {
		if len(exts) == 0 {
			return
		}
		e.extensions = make(map[string]bool, len(exts))
		for _, ext := range exts {
			if !strings.HasPrefix(ext, ".") {
				ext = "." + ext
			}
			e.extensions[ext] = true
		}
	}
}

// NewEngine creates a new engine with the given per-rule configuration.
func NewEngine(rules map[string]tt.ConfigRule, opts ...Option) (*Engine, error) {
	engine := &Engine{
		ignoredRules: make(map[string]bool),
		logger:       zap.NewNop(),
	}
	WithExtensions(DefaultExtensions...)(engine)
	for _, opt := range opts {
		opt(engine)
	}

	engine.applyRules(rules)

	counter, err := otel.Meter("symbal-engine").Int64Counter(
		"symbal_checks_total",
		metric.WithDescription("Total number of balance checks by result kind"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating check counter: %w", err)
	}
	engine.checkCounter = counter

	return engine, nil
}

type ruleConstructor func() LintRule

var allRuleConstructors = map[string]ruleConstructor{
	balance.UnclosedOpener.String():  NewUnclosedOpenerRule,
	balance.UnmatchedCloser.String(): NewUnmatchedCloserRule,
	balance.Mismatch.String():        NewMismatchRule,
}

func (e *Engine) applyRules(rules map[string]tt.ConfigRule) {
	e.rules = make(map[string]LintRule, len(allRuleConstructors))
	for key, newRule := range allRuleConstructors {
		e.rules[key] = newRule()
	}

	for key, cfg := range rules {
		r, ok := e.rules[key]
		if !ok {
			// Unknown rule, continue to the next one
			e.logger.Warn("Unknown rule in configuration", zap.String("rule", key))
			continue
		}
		r.SetSeverity(cfg.Severity)
		if cfg.Severity == tt.SeverityOff {
			e.IgnoreRule(key)
		}
	}
}

// Rules returns the names of all known rules.
func Rules() []string {
	names := make([]string, 0, len(allRuleConstructors))
	for name := range allRuleConstructors {
		names = append(names, name)
	}
	return names
}

// Run checks the given file and returns its issues.
// A balanced file yields no issues; a scan never reports more than one.
func (e *Engine) Run(filename string) ([]tt.Issue, error) {
	if e.isIgnoredPath(filename) {
		return nil, nil
	}

	if e.cache != nil {
		if issues, ok := e.cache.Get(filename); ok {
			return e.filterIgnored(issues), nil
		}
	}

	result, err := balance.CheckFile(filename)
	if err != nil {
		return nil, err
	}
	e.record(result)

	issues := e.issuesFor(filename, result)
	if len(issues) > 0 {
		source, err := ReadSourceCode(filename)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", filename, err)
		}
		issues = filterNolint(filename, source, issues)
	}
	if e.cache != nil {
		if err := e.cache.Set(filename, issues); err != nil {
			e.logger.Warn("Failed to cache result", zap.String("file", filename), zap.Error(err))
		}
	}

	return e.filterIgnored(issues), nil
}

// RunSource checks source held in memory.
func (e *Engine) RunSource(source []byte) ([]tt.Issue, error) {
	result := balance.CheckBalance(string(source))
	e.record(result)
	issues := filterNolint("", NewSourceCode(source), e.issuesFor("", result))
	return e.filterIgnored(issues), nil
}

// filterNolint drops issues suppressed by a nolint directive in source.
func filterNolint(filename string, source *SourceCode, issues []tt.Issue) []tt.Issue {
	if len(issues) == 0 {
		return issues
	}
	manager := nolint.Parse(filename, source.Lines)
	filtered := issues[:0]
	for _, issue := range issues {
		if !manager.IsNolint(issue.Start, issue.Rule) {
			filtered = append(filtered, issue)
		}
	}
	return filtered
}

// issuesFor converts a result into issues, before ignore filtering so that
// cached entries stay valid when the ignore list changes.
func (e *Engine) issuesFor(filename string, result balance.Result) []tt.Issue {
	if result.IsBalanced() {
		return nil
	}
	rule, ok := e.rules[result.Kind.String()]
	if !ok {
		return nil
	}
	return []tt.Issue{rule.Issue(filename, result)}
}

func (e *Engine) filterIgnored(issues []tt.Issue) []tt.Issue {
	if len(issues) == 0 {
		return nil
	}
	filtered := make([]tt.Issue, 0, len(issues))
	for _, issue := range issues {
		if e.ignoredRules[issue.Rule] {
			continue
		}
		if r, ok := e.rules[issue.Rule]; ok {
			issue.Severity = r.Severity()
		}
		filtered = append(filtered, issue)
	}
	if len(filtered) == 0 {
		return nil
	}
	return filtered
}

func (e *Engine) record(result balance.Result) {
	e.checkCounter.Add(context.Background(), 1,
		metric.WithAttributes(attribute.String("kind", result.Kind.String())))
}

func (e *Engine) IgnoreRule(rule string) {
	e.ignoredRules[rule] = true
}

// IgnorePath skips files matching the glob pattern or lying under the
// directory path.
func (e *Engine) IgnorePath(path string) {
	e.ignoredPaths = append(e.ignoredPaths, filepath.Clean(path))
}

func (e *Engine) isIgnoredPath(filename string) bool {
	clean := filepath.Clean(filename)
	for _, p := range e.ignoredPaths {
		if clean == p || strings.HasPrefix(clean, p+string(filepath.Separator)) {
			return true
		}
		if ok, _ := filepath.Match(p, clean); ok {
			return true
		}
		if ok, _ := filepath.Match(p, filepath.Base(clean)); ok {
			return true
		}
	}
	return false
}

// HasDesiredExtension reports whether the engine handles files like path.
func (e *Engine) HasDesiredExtension(path string) bool {
	return e.extensions[filepath.Ext(path)]
}

// Extensions returns the handled file extensions.
func (e *Engine) Extensions() []string {
	exts := make([]string, 0, len(e.extensions))
	for ext := range e.extensions {
		exts = append(exts, ext)
	}
	return exts
}
