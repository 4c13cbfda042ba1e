package balance

import "github.com/gnolang/symbal/internal/symbol"

// Checker holds the state of a single scan. A Checker is not safe for
// concurrent use; create one per source.
type Checker struct {
	stack  Stack
	line   int
	result Result
	done   bool
}

func NewChecker() *Checker {
	return &Checker{line: 1}
}

// Feed processes one token and reports whether the scan has reached a
// result. Once a result is set further tokens are ignored.
//
// The reported line comes from the checker's own counter, which starts
// at 1 and advances on every LineEnd; tok.Line is not consulted.
// Symbols outside the recognized alphabet are skipped, so only openers
// are ever pushed.
func (c *Checker) Feed(tok symbol.Token) bool {
	if c.done {
		return true
	}
	if !symbol.Valid(tok.Symbol) {
		return false
	}

	top, hasTop := c.stack.top()
	d := classify(top, hasTop, tok.Symbol, c.line, tok.Column)

	switch d.action {
	case actionPush:
		c.stack.Push(Entry{Symbol: tok.Symbol, Line: c.line, Column: tok.Column})
	case actionPop:
		c.stack.Pop()
	case actionEmit:
		c.result = d.result
		c.done = true
		return true
	}

	if tok.Symbol == symbol.LineEnd {
		c.line++
	}
	return false
}

// Done reports whether a result has been set.
func (c *Checker) Done() bool {
	return c.done
}

// Finish ends the scan. Without an earlier result the outcome depends on
// the stack: empty means balanced, otherwise the top opener is unclosed.
func (c *Checker) Finish() Result {
	if c.done {
		return c.result
	}
	if top, ok := c.stack.top(); ok {
		c.result = unclosedOpener(top)
	} else {
		c.result = balanced()
	}
	c.done = true
	return c.result
}

// Line returns the line the checker is currently on.
func (c *Checker) Line() int {
	return c.line
}

// Depth returns the number of pending openers.
func (c *Checker) Depth() int {
	return c.stack.Len()
}
