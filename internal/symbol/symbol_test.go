package symbol

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOpener(t *testing.T) {
	t.Parallel()
	tests := []struct {
		closer Symbol
		want   Symbol
		ok     bool
	}{
		{CloseBrace, OpenBrace, true},
		{CloseParen, OpenParen, true},
		{CloseBracket, OpenBracket, true},
		{CloseComment, OpenComment, true},
		{Quote, "", false},
		{OpenBrace, "", false},
		{LineEnd, "", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.closer.String(), func(t *testing.T) {
			t.Parallel()
			got, ok := Opener(tt.closer)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.ok, IsCloser(tt.closer))
		})
	}
}

func TestLiteralCloser(t *testing.T) {
	t.Parallel()

	c, ok := LiteralCloser(OpenComment)
	assert.True(t, ok)
	assert.Equal(t, CloseComment, c)

	c, ok = LiteralCloser(Quote)
	assert.True(t, ok)
	assert.Equal(t, Quote, c)

	_, ok = LiteralCloser(OpenBrace)
	assert.False(t, ok)

	assert.True(t, IsLiteral(OpenComment))
	assert.True(t, IsLiteral(Quote))
	assert.False(t, IsLiteral(OpenParen))
	assert.False(t, IsLiteral(CloseComment))
}

func TestValid(t *testing.T) {
	t.Parallel()
	for _, s := range []Symbol{"{", "}", "(", ")", "[", "]", "/*", "*/", `"`, "\n"} {
		assert.True(t, Valid(s), "%q should be valid", s)
	}
	for _, s := range []Symbol{"", "<", "'", "//", "/", "*"} {
		assert.False(t, Valid(s), "%q should be invalid", s)
	}
	assert.Equal(t, `\n`, LineEnd.String())
	assert.Equal(t, "/*", OpenComment.String())
}
