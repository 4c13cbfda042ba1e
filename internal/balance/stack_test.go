package balance

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gnolang/symbal/internal/symbol"
)

func TestStack(t *testing.T) {
	t.Parallel()
	var s Stack
	assert.True(t, s.IsEmpty())
	assert.Equal(t, 0, s.Len())

	s.Push(Entry{Symbol: symbol.OpenBrace, Line: 1, Column: 1})
	s.Push(Entry{Symbol: symbol.OpenParen, Line: 2, Column: 4})
	assert.False(t, s.IsEmpty())
	assert.Equal(t, 2, s.Len())

	assert.Equal(t, Entry{Symbol: symbol.OpenParen, Line: 2, Column: 4}, s.Peek())
	assert.Equal(t, 2, s.Len(), "peek must not remove")

	assert.Equal(t, symbol.OpenParen, s.Pop().Symbol)
	assert.Equal(t, symbol.OpenBrace, s.Pop().Symbol)
	assert.True(t, s.IsEmpty())

	_, ok := s.top()
	assert.False(t, ok)
}

func TestStackEmptyPanics(t *testing.T) {
	t.Parallel()
	var s Stack
	assert.Panics(t, func() { s.Pop() })
	assert.Panics(t, func() { s.Peek() })
}
