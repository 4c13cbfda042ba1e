package balance

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gnolang/symbal/internal/symbol"
	"github.com/gnolang/symbal/internal/tokenizer"
)

// TokenSource yields tokens in source order.
type TokenSource interface {
	Next() (symbol.Token, bool)
}

// Run drives a fresh Checker over src, stopping at the first result.
func Run(src TokenSource) Result {
	c := NewChecker()
	for {
		tok, ok := src.Next()
		if !ok {
			break
		}
		if c.Feed(tok) {
			break
		}
	}
	return c.Finish()
}

// CheckBalance reports whether the symbols in source are balanced.
func CheckBalance(source string) Result {
	return Run(tokenizer.New(strings.NewReader(source)))
}

// CheckReader checks the source read from r. Read failures are returned
// as errors and never as a Result.
func CheckReader(r io.Reader) (Result, error) {
	s := tokenizer.New(r)
	result := Run(s)
	if err := s.Err(); err != nil {
		return Result{}, err
	}
	return result, nil
}

// CheckFile checks the file at path.
func CheckFile(path string) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("opening source: %w", err)
	}
	defer f.Close()

	result, err := CheckReader(f)
	if err != nil {
		return Result{}, fmt.Errorf("reading %s: %w", path, err)
	}
	return result, nil
}

// sliceSource adapts a token slice to TokenSource.
type sliceSource struct {
	tokens []symbol.Token
}

func (s *sliceSource) Next() (symbol.Token, bool) {
	if len(s.tokens) == 0 {
		return symbol.Token{}, false
	}
	tok := s.tokens[0]
	s.tokens = s.tokens[1:]
	return tok, true
}

// CheckTokens checks an already tokenized source.
func CheckTokens(tokens []symbol.Token) Result {
	return Run(&sliceSource{tokens: tokens})
}
