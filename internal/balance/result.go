package balance

import (
	"fmt"

	"github.com/gnolang/symbal/internal/symbol"
)

// Kind classifies the outcome of a balance check.
type Kind int

const (
	Balanced Kind = iota
	UnclosedOpener
	UnmatchedCloser
	Mismatch
)

var kindNames = map[Kind]string{
	Balanced:        "balanced",
	UnclosedOpener:  "unclosed-opener",
	UnmatchedCloser: "unmatched-closer",
	Mismatch:        "mismatch",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	for kind, name := range kindNames {
		if name == string(text) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown result kind %q", text)
}

// Result is the terminal outcome of one scan.
//
// Line and Column locate the reported symbol: the opener for
// UnclosedOpener, the closer otherwise. For Mismatch, OpenLine and
// OpenColumn locate the opener the closer failed to match.
type Result struct {
	Kind        Kind          `json:"kind"`
	OpenSymbol  symbol.Symbol `json:"open_symbol,omitempty"`
	CloseSymbol symbol.Symbol `json:"close_symbol,omitempty"`
	Line        int           `json:"line,omitempty"`
	Column      int           `json:"column,omitempty"`
	OpenLine    int           `json:"open_line,omitempty"`
	OpenColumn  int           `json:"open_column,omitempty"`
}

func balanced() Result {
	return Result{Kind: Balanced}
}

func unclosedOpener(e Entry) Result {
	return Result{
		Kind:       UnclosedOpener,
		OpenSymbol: e.Symbol,
		Line:       e.Line,
		Column:     e.Column,
		OpenLine:   e.Line,
		OpenColumn: e.Column,
	}
}

func unmatchedCloser(s symbol.Symbol, line, column int) Result {
	return Result{
		Kind:        UnmatchedCloser,
		CloseSymbol: s,
		Line:        line,
		Column:      column,
	}
}

func mismatch(open Entry, closer symbol.Symbol, line, column int) Result {
	return Result{
		Kind:        Mismatch,
		OpenSymbol:  open.Symbol,
		CloseSymbol: closer,
		Line:        line,
		Column:      column,
		OpenLine:    open.Line,
		OpenColumn:  open.Column,
	}
}

func (r Result) IsBalanced() bool {
	return r.Kind == Balanced
}

// Symbol returns the symbol the result points at.
func (r Result) Symbol() symbol.Symbol {
	if r.Kind == UnclosedOpener {
		return r.OpenSymbol
	}
	return r.CloseSymbol
}

// Code returns the numeric report code: 0 balanced, 1 unclosed opener,
// 2 unmatched closer, 3 mismatch.
func (r Result) Code() int {
	return int(r.Kind)
}

func (r Result) String() string {
	switch r.Kind {
	case Balanced:
		return "Success! Symbols are balanced."
	case UnclosedOpener:
		return fmt.Sprintf("Unbalanced! At line %d symbol %s has no matching closing symbol.", r.Line, r.OpenSymbol)
	case UnmatchedCloser:
		return fmt.Sprintf("Unbalanced! At line %d symbol %s has no matching opening symbol.", r.Line, r.CloseSymbol)
	case Mismatch:
		return fmt.Sprintf("Unbalanced! At line %d symbol %s does not match closing symbol %s.", r.Line, r.OpenSymbol, r.CloseSymbol)
	default:
		return "Invalid result kind!"
	}
}
