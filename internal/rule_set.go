package internal

import (
	"fmt"
	"go/token"

	"github.com/gnolang/symbal/internal/balance"
	tt "github.com/gnolang/symbal/internal/types"
)

const balanceCategory = "balance"

// LintRule turns one kind of unbalanced result into an issue.
type LintRule interface {
	// Name returns the name of the lint rule.
	Name() string

	// Kind returns the result kind the rule reports.
	Kind() balance.Kind

	// Issue builds the issue for a result of the rule's kind.
	Issue(filename string, r balance.Result) tt.Issue

	Severity() tt.Severity
	SetSeverity(tt.Severity)
}

type baseRule struct {
	severity tt.Severity
}

func (r *baseRule) Severity() tt.Severity {
	return r.severity
}

func (r *baseRule) SetSeverity(s tt.Severity) {
	r.severity = s
}

type UnclosedOpenerRule struct {
	baseRule
}

func NewUnclosedOpenerRule() LintRule {
	return &UnclosedOpenerRule{baseRule{severity: tt.SeverityError}}
}

func (r *UnclosedOpenerRule) Name() string       { return balance.UnclosedOpener.String() }
func (r *UnclosedOpenerRule) Kind() balance.Kind { return balance.UnclosedOpener }

func (r *UnclosedOpenerRule) Issue(filename string, res balance.Result) tt.Issue {
	issue := newIssue(r, filename, res)
	issue.Message = fmt.Sprintf("symbol %s has no matching closing symbol", res.OpenSymbol)
	switch res.OpenSymbol {
	case `"`:
		issue.Note = "string literals must be closed on the line they start"
	case "/*":
		issue.Note = "block comment runs to the end of the file"
	}
	return issue
}

type UnmatchedCloserRule struct {
	baseRule
}

func NewUnmatchedCloserRule() LintRule {
	return &UnmatchedCloserRule{baseRule{severity: tt.SeverityError}}
}

func (r *UnmatchedCloserRule) Name() string       { return balance.UnmatchedCloser.String() }
func (r *UnmatchedCloserRule) Kind() balance.Kind { return balance.UnmatchedCloser }

func (r *UnmatchedCloserRule) Issue(filename string, res balance.Result) tt.Issue {
	issue := newIssue(r, filename, res)
	issue.Message = fmt.Sprintf("symbol %s has no matching opening symbol", res.CloseSymbol)
	return issue
}

type MismatchRule struct {
	baseRule
}

func NewMismatchRule() LintRule {
	return &MismatchRule{baseRule{severity: tt.SeverityError}}
}

func (r *MismatchRule) Name() string       { return balance.Mismatch.String() }
func (r *MismatchRule) Kind() balance.Kind { return balance.Mismatch }

func (r *MismatchRule) Issue(filename string, res balance.Result) tt.Issue {
	issue := newIssue(r, filename, res)
	issue.Message = fmt.Sprintf("symbol %s does not match closing symbol %s", res.OpenSymbol, res.CloseSymbol)
	issue.Note = fmt.Sprintf("%s was opened at line %d, column %d", res.OpenSymbol, res.OpenLine, res.OpenColumn)
	return issue
}

// newIssue fills the fields shared by every rule: location and severity.
// The issue spans the reported symbol.
func newIssue(r LintRule, filename string, res balance.Result) tt.Issue {
	sym := res.Symbol()
	return tt.Issue{
		Rule:     r.Name(),
		Category: balanceCategory,
		Filename: filename,
		Start:    token.Position{Filename: filename, Line: res.Line, Column: res.Column},
		End:      token.Position{Filename: filename, Line: res.Line, Column: res.Column + len(sym) - 1},
		Severity: r.Severity(),
	}
}
