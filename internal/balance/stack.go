package balance

import "github.com/gnolang/symbal/internal/symbol"

// Entry is an opener that has not been closed yet.
type Entry struct {
	Symbol symbol.Symbol
	Line   int
	Column int
}

// Stack holds pending openers, most recent last.
// The zero value is an empty stack ready for use.
type Stack struct {
	entries []Entry
}

func (s *Stack) Push(e Entry) {
	s.entries = append(s.entries, e)
}

// Pop removes and returns the most recently pushed entry.
// It panics on an empty stack; callers check IsEmpty first.
func (s *Stack) Pop() Entry {
	e := s.Peek()
	s.entries = s.entries[:len(s.entries)-1]
	return e
}

// Peek returns the most recently pushed entry without removing it.
// It panics on an empty stack.
func (s *Stack) Peek() Entry {
	if len(s.entries) == 0 {
		panic("balance: peek on empty stack")
	}
	return s.entries[len(s.entries)-1]
}

func (s *Stack) IsEmpty() bool {
	return len(s.entries) == 0
}

func (s *Stack) Len() int {
	return len(s.entries)
}

// top returns the top entry and whether there is one.
func (s *Stack) top() (Entry, bool) {
	if s.IsEmpty() {
		return Entry{}, false
	}
	return s.entries[len(s.entries)-1], true
}
