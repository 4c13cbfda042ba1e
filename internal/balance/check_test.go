package balance

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnolang/symbal/internal/symbol"
	"github.com/gnolang/symbal/internal/tokenizer"
)

func TestCheckBalance(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		source string
		want   Result
	}{
		{
			name:   "braces",
			source: "{}",
			want:   Result{Kind: Balanced},
		},
		{
			name:   "unclosed brace",
			source: "{",
			want: Result{
				Kind: UnclosedOpener, OpenSymbol: "{",
				Line: 1, Column: 1, OpenLine: 1, OpenColumn: 1,
			},
		},
		{
			name:   "string cut by bare carriage return",
			source: "x\r\"a\r\"b",
			want: Result{
				Kind: UnclosedOpener, OpenSymbol: `"`,
				Line: 2, Column: 1, OpenLine: 2, OpenColumn: 1,
			},
		},
		{
			name:   "unmatched paren",
			source: ")",
			want:   Result{Kind: UnmatchedCloser, CloseSymbol: ")", Line: 1, Column: 1},
		},
		{
			name:   "crossed pairs",
			source: "([)]",
			want: Result{
				Kind: Mismatch, OpenSymbol: "[", CloseSymbol: ")",
				Line: 1, Column: 3, OpenLine: 1, OpenColumn: 2,
			},
		},
		{
			name:   "comment spans lines",
			source: "/* unmatched ) [\n*/",
			want:   Result{Kind: Balanced},
		},
		{
			name:   "unterminated string",
			source: "\"unterminated\n",
			want: Result{
				Kind: UnclosedOpener, OpenSymbol: `"`,
				Line: 1, Column: 1, OpenLine: 1, OpenColumn: 1,
			},
		},
		{
			name:   "no symbols",
			source: "just some words\nand more\n",
			want:   Result{Kind: Balanced},
		},
		{
			name:   "empty",
			source: "",
			want:   Result{Kind: Balanced},
		},
		{
			name: "well nested code",
			source: `func main() {
	xs := []int{1, 2}
	/* a comment with ) and " */
	fmt.Println("braces { in a string", xs[0])
}
`,
			want: Result{Kind: Balanced},
		},
		{
			name:   "string opened on a later line",
			source: "{\n  x = \"abc\n}",
			want: Result{
				Kind: UnclosedOpener, OpenSymbol: `"`,
				Line: 2, Column: 7, OpenLine: 2, OpenColumn: 7,
			},
		},
		{
			name:   "unclosed comment reports comment",
			source: "{ }\n/* never closed\n",
			want: Result{
				Kind: UnclosedOpener, OpenSymbol: "/*",
				Line: 2, Column: 1, OpenLine: 2, OpenColumn: 1,
			},
		},
		{
			name:   "innermost opener is reported",
			source: "{\n(\n[\n",
			want: Result{
				Kind: UnclosedOpener, OpenSymbol: "[",
				Line: 3, Column: 1, OpenLine: 3, OpenColumn: 1,
			},
		},
		{
			name:   "stray comment closer",
			source: "a */ b",
			want:   Result{Kind: UnmatchedCloser, CloseSymbol: "*/", Line: 1, Column: 3},
		},
		{
			name:   "first failure stops",
			source: "}\n)\n{",
			want:   Result{Kind: UnmatchedCloser, CloseSymbol: "}", Line: 1, Column: 1},
		},
		{
			name:   "mismatch on later line",
			source: "(\n\n  }",
			want: Result{
				Kind: Mismatch, OpenSymbol: "(", CloseSymbol: "}",
				Line: 3, Column: 3, OpenLine: 1, OpenColumn: 1,
			},
		},
		{
			name:   "quote closed on same line",
			source: `x = "(" + ")"`,
			want:   Result{Kind: Balanced},
		},
		{
			name:   "comment delimiters inside string",
			source: `s = "/*"` + "\n" + `t = "*/"`,
			want:   Result{Kind: Balanced},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := CheckBalance(tt.source)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("CheckBalance(%q) mismatch (-want +got):\n%s", tt.source, diff)
			}
		})
	}
}

// wellNested builds a balanced source from the five pairs.
func wellNested(depth int) string {
	if depth == 0 {
		return "x"
	}
	inner := wellNested(depth - 1)
	return "{" + inner + "}(" + inner + ")[" + inner + "]/* ) */\"{\"\n"
}

func TestWellNestedIsBalanced(t *testing.T) {
	t.Parallel()
	for depth := 0; depth < 5; depth++ {
		assert.True(t, CheckBalance(wellNested(depth)).IsBalanced(), "depth %d", depth)
	}
}

func TestCheckerStopsAtFirstResult(t *testing.T) {
	t.Parallel()
	c := NewChecker()
	tokens := tokenizer.Tokenize(")\n{")

	assert.True(t, c.Feed(tokens[0]))
	assert.True(t, c.Done())
	// remaining tokens are ignored
	for _, tok := range tokens[1:] {
		assert.True(t, c.Feed(tok))
	}
	assert.Equal(t, 0, c.Depth())
	assert.Equal(t, UnmatchedCloser, c.Finish().Kind)
	assert.Equal(t, UnmatchedCloser, c.Finish().Kind, "finish is idempotent")
}

func TestCheckerTracksLines(t *testing.T) {
	t.Parallel()
	c := NewChecker()
	for _, tok := range tokenizer.Tokenize("{\n(\n") {
		require.False(t, c.Feed(tok))
	}
	assert.Equal(t, 3, c.Line())
	assert.Equal(t, 2, c.Depth())
}

func TestCheckerSkipsUnknownSymbols(t *testing.T) {
	t.Parallel()
	result := CheckTokens([]symbol.Token{
		{Symbol: symbol.OpenParen, Line: 1, Column: 1},
		{Symbol: "<", Line: 1, Column: 2},
		{Symbol: "//", Line: 1, Column: 3},
		{Symbol: symbol.CloseParen, Line: 1, Column: 5},
	})
	assert.True(t, result.IsBalanced())

	result = CheckTokens([]symbol.Token{{Symbol: ">", Line: 1, Column: 1}})
	assert.True(t, result.IsBalanced(), "unknown symbols never reach the stack")
}

func TestCheckerIgnoresTokenLine(t *testing.T) {
	t.Parallel()
	result := CheckTokens([]symbol.Token{
		{Symbol: symbol.LineEnd, Line: 40},
		{Symbol: symbol.CloseBracket, Line: 99, Column: 2},
	})
	assert.Equal(t, UnmatchedCloser, result.Kind)
	assert.Equal(t, 2, result.Line)
}

func TestCheckReader(t *testing.T) {
	t.Parallel()
	result, err := CheckReader(strings.NewReader("[\n]"))
	require.NoError(t, err)
	assert.True(t, result.IsBalanced())
}

type brokenReader struct{}

func (brokenReader) Read([]byte) (int, error) {
	return 0, errors.New("read failed")
}

func TestCheckReaderError(t *testing.T) {
	t.Parallel()
	_, err := CheckReader(brokenReader{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read failed")
}

func TestCheckFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	path := filepath.Join(dir, "ok.c")
	require.NoError(t, os.WriteFile(path, []byte("int main() { return 0; }\n"), 0o644))
	result, err := CheckFile(path)
	require.NoError(t, err)
	assert.True(t, result.IsBalanced())

	_, err = CheckFile(filepath.Join(dir, "missing.c"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}
