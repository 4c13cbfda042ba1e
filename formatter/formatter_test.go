package formatter

import (
	"go/token"
	"os"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"github.com/gnolang/symbal/internal"
	tt "github.com/gnolang/symbal/internal/types"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func TestFormatMismatch(t *testing.T) {
	t.Parallel()
	code := &internal.SourceCode{
		Lines: []string{
			"int main() {",
			"    if (x) {",
			"        call(a]",
			"}",
		},
	}

	issues := []tt.Issue{
		{
			Rule:     "mismatch",
			Filename: "test.c",
			Start:    token.Position{Line: 3, Column: 15},
			End:      token.Position{Line: 3, Column: 15},
			Message:  "symbol ( does not match closing symbol ]",
			Note:     "( was opened at line 3, column 13",
			Severity: tt.SeverityError,
		},
	}

	expected := `error: mismatch
 --> test.c:3:15
  |
3 | call(a]
  |       ^
  = symbol ( does not match closing symbol ]
Note: ( was opened at line 3, column 13

`

	assert.Equal(t, expected, GenerateFormattedIssue(issues, code))
}

func TestFormatWithTabs(t *testing.T) {
	t.Parallel()
	code := &internal.SourceCode{
		Lines: []string{
			"a := 1",
			"\tb := \"open",
		},
	}

	issues := []tt.Issue{
		{
			Rule:     "unclosed-opener",
			Filename: "test.go",
			Start:    token.Position{Line: 2, Column: 7},
			End:      token.Position{Line: 2, Column: 7},
			Message:  `symbol " has no matching closing symbol`,
			Severity: tt.SeverityWarning,
		},
	}

	expected := "warning: unclosed-opener\n" +
		" --> test.go:2:7\n" +
		"  |\n" +
		"2 | b := \"open\n" +
		"  |      ^\n" +
		"  = symbol \" has no matching closing symbol\n" +
		"\n"

	assert.Equal(t, expected, GenerateFormattedIssue(issues, code))
}

func TestFormatMultipleDigitsLineNumbers(t *testing.T) {
	t.Parallel()
	code := &internal.SourceCode{
		Lines: []string{
			"void f() {",
			"  g();",
			"}",
			"",
			"void h() {",
			"  i();",
			"}",
			"",
			"",
			"}",
		},
	}

	issues := []tt.Issue{
		{
			Rule:     "unmatched-closer",
			Start:    token.Position{Line: 10, Column: 1},
			End:      token.Position{Line: 10, Column: 1},
			Message:  "symbol } has no matching opening symbol",
			Severity: tt.SeverityInfo,
		},
	}

	expected := `info: unmatched-closer
  --> <source>:10:1
   |
10 | }
   | ^
   = symbol } has no matching opening symbol

`

	assert.Equal(t, expected, GenerateFormattedIssue(issues, code))
}

func TestFormatMultipleIssues(t *testing.T) {
	t.Parallel()
	code := &internal.SourceCode{Lines: []string{"x := (1", "y := 2]"}}

	issues := []tt.Issue{
		{
			Rule:       "unclosed-opener",
			Filename:   "a.go",
			Start:      token.Position{Line: 1, Column: 6},
			End:        token.Position{Line: 1, Column: 6},
			Message:    "symbol ( has no matching closing symbol",
			Suggestion: "x := (1)",
		},
		{
			Rule:     "unmatched-closer",
			Filename: "a.go",
			Start:    token.Position{Line: 2, Column: 7},
			End:      token.Position{Line: 2, Column: 7},
			Message:  "symbol ] has no matching opening symbol",
		},
	}

	expected := `error: unclosed-opener
 --> a.go:1:6
  |
1 | x := (1
  |      ^
  = symbol ( has no matching closing symbol
Suggestion:
  |
1 | x := (1)
  |

error: unmatched-closer
 --> a.go:2:7
  |
2 | y := 2]
  |       ^
  = symbol ] has no matching opening symbol

`

	assert.Equal(t, expected, GenerateFormattedIssue(issues, code))
}

func TestFormatLineOutOfRange(t *testing.T) {
	t.Parallel()
	issues := []tt.Issue{
		{
			Rule:     "unclosed-opener",
			Filename: "gone.c",
			Start:    token.Position{Line: 3, Column: 1},
			End:      token.Position{Line: 3, Column: 1},
			Message:  "symbol { has no matching closing symbol",
		},
	}

	expected := `error: unclosed-opener
 --> gone.c:3:1
  |
  | symbol { has no matching closing symbol

`

	assert.Equal(t, expected, GenerateFormattedIssue(issues, nil))
}

func TestCalculateVisualColumn(t *testing.T) {
	t.Parallel()
	tests := []struct {
		line     string
		column   int
		expected int
	}{
		{"abc", 1, 0},
		{"abc", 3, 2},
		{"\tx", 2, 8},
		{"ab\tx", 4, 8},
		{"abc", -1, 0},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.expected, calculateVisualColumn(tc.line, tc.column), "%q col %d", tc.line, tc.column)
	}
}

func TestFindCommonIndent(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		expected string
		lines    []string
	}{
		{
			name: "whitespace indent",
			lines: []string{
				"    if (foo) {",
				"        bar();",
				"    }",
			},
			expected: "    ",
		},
		{
			name: "tab indent",
			lines: []string{
				"\tif (foo) {",
				"\t\tbar();",
				"\t}",
			},
			expected: "\t",
		},
		{
			name: "mixed indent (space and tab)",
			lines: []string{
				"\t    if (foo) {",
				"\t    \tbar();",
				"\t    }",
			},
			expected: "\t    ",
		},
		{
			name: "no indent",
			lines: []string{
				"if (foo) {",
				"bar();",
				"}",
			},
			expected: "",
		},
		{
			name: "empty line",
			lines: []string{
				"    if (foo) {",
				"",
				"        bar();",
				"    }",
			},
			expected: "    ",
		},
		{
			name:     "empty input",
			lines:    []string{},
			expected: "",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, findCommonIndent(tc.lines))
		})
	}
}
