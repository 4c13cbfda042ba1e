package balance

import "github.com/gnolang/symbal/internal/symbol"

// action is what the checker does with one token.
type action int

const (
	actionIgnore action = iota
	actionPush
	actionPop
	actionEmit
)

func (a action) String() string {
	switch a {
	case actionPush:
		return "push"
	case actionPop:
		return "pop"
	case actionEmit:
		return "emit"
	default:
		return "ignore"
	}
}

type decision struct {
	action action
	result Result
}

// classify decides what to do with sym given the current stack top.
// hasTop is false when the stack is empty. line and column locate sym.
//
// Rules, first match wins:
//  1. inside a comment or string only the matching terminator counts;
//  2. on an empty stack a closer is unmatched, anything else opens;
//  3. under a bracket a closer must match it, anything else opens.
//
// A line end only matters while a string is open: strings may not span lines.
func classify(top Entry, hasTop bool, sym symbol.Symbol, line, column int) decision {
	if sym == symbol.LineEnd {
		if hasTop && top.Symbol == symbol.Quote {
			return decision{action: actionEmit, result: unclosedOpener(top)}
		}
		return decision{action: actionIgnore}
	}

	switch {
	case hasTop && symbol.IsLiteral(top.Symbol):
		if closer, _ := symbol.LiteralCloser(top.Symbol); sym == closer {
			return decision{action: actionPop}
		}
		return decision{action: actionIgnore}

	case !hasTop:
		if symbol.IsCloser(sym) {
			return decision{action: actionEmit, result: unmatchedCloser(sym, line, column)}
		}
		return decision{action: actionPush}

	default:
		opener, isCloser := symbol.Opener(sym)
		if !isCloser {
			return decision{action: actionPush}
		}
		if opener == top.Symbol {
			return decision{action: actionPop}
		}
		return decision{action: actionEmit, result: mismatch(top, sym, line, column)}
	}
}
