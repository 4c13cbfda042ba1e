package tokenizer

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/gnolang/symbal/internal/symbol"
)

// maxLineSize bounds the length of a single source line.
const maxLineSize = 16 * 1024 * 1024

// symbolRegex matches every recognized symbol. The two-character
// comment delimiters come first so they are never split.
var symbolRegex = regexp.MustCompile(`/\*|\*/|[{}()\[\]"]`)

// Scanner produces the token stream of a source one line at a time.
// Each line yields its symbols left to right followed by a LineEnd token.
type Scanner struct {
	lines   *bufio.Scanner
	line    int
	pending []symbol.Token
	err     error
}

// New returns a Scanner reading from r.
func New(r io.Reader) *Scanner {
	lines := bufio.NewScanner(r)
	lines.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	lines.Split(ScanLines)
	return &Scanner{lines: lines}
}

// Next returns the next token. ok is false once the source is exhausted
// or a read error occurred; check Err to tell the two apart.
func (s *Scanner) Next() (tok symbol.Token, ok bool) {
	for len(s.pending) == 0 {
		if s.err != nil || !s.lines.Scan() {
			if s.err == nil {
				if err := s.lines.Err(); err != nil {
					s.err = fmt.Errorf("reading line %d: %w", s.line+1, err)
				}
			}
			return symbol.Token{}, false
		}
		s.line++
		s.pending = appendLine(s.pending, s.lines.Text(), s.line)
	}

	tok = s.pending[0]
	s.pending = s.pending[1:]
	return tok, true
}

// Err returns the first non-EOF error encountered while reading.
func (s *Scanner) Err() error {
	return s.err
}

// Line returns the number of lines read so far.
func (s *Scanner) Line() int {
	return s.line
}

// Tokenize returns the complete token stream of source.
func Tokenize(source string) []symbol.Token {
	var tokens []symbol.Token
	s := New(strings.NewReader(source))
	for {
		tok, ok := s.Next()
		if !ok {
			return tokens
		}
		tokens = append(tokens, tok)
	}
}

// ScanLines is a bufio.SplitFunc that ends lines at "\n", "\r\n" or a
// bare "\r". The terminator is not part of the returned line.
func ScanLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		if data[i] == '\n' {
			return i + 1, data[:i], nil
		}
		// a '\r' at the end of the buffer may be the first half of "\r\n"
		if i+1 == len(data) && !atEOF {
			return 0, nil, nil
		}
		if i+1 < len(data) && data[i+1] == '\n' {
			return i + 2, data[:i], nil
		}
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	// request more data
	return 0, nil, nil
}

func appendLine(dst []symbol.Token, text string, line int) []symbol.Token {
	for _, loc := range symbolRegex.FindAllStringIndex(text, -1) {
		dst = append(dst, symbol.Token{
			Symbol: symbol.Symbol(text[loc[0]:loc[1]]),
			Line:   line,
			Column: loc[0] + 1,
		})
	}
	return append(dst, symbol.Token{Symbol: symbol.LineEnd, Line: line})
}
