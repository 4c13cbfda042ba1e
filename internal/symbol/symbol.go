package symbol

// Symbol is one of the lexical symbols the balance checker recognizes.
type Symbol string

const (
	OpenBrace    Symbol = "{"
	CloseBrace   Symbol = "}"
	OpenParen    Symbol = "("
	CloseParen   Symbol = ")"
	OpenBracket  Symbol = "["
	CloseBracket Symbol = "]"
	OpenComment  Symbol = "/*"
	CloseComment Symbol = "*/"
	Quote        Symbol = `"`

	// LineEnd is the synthetic token emitted after every source line.
	LineEnd Symbol = "\n"
)

// pairs maps each closer to the opener it requires.
// The quote closes itself and is deliberately absent.
var pairs = map[Symbol]Symbol{
	CloseBrace:   OpenBrace,
	CloseParen:   OpenParen,
	CloseBracket: OpenBracket,
	CloseComment: OpenComment,
}

// Opener returns the opener required by closer s.
// ok is false when s is not a closer from the pairing table.
func Opener(s Symbol) (Symbol, bool) {
	o, ok := pairs[s]
	return o, ok
}

// IsCloser reports whether s is a member of the pairing table's closer set.
func IsCloser(s Symbol) bool {
	_, ok := pairs[s]
	return ok
}

// IsLiteral reports whether s opens a region in which bracket rules are suspended.
func IsLiteral(s Symbol) bool {
	return s == OpenComment || s == Quote
}

// LiteralCloser returns the symbol that terminates the literal opened by s.
func LiteralCloser(s Symbol) (Symbol, bool) {
	switch s {
	case OpenComment:
		return CloseComment, true
	case Quote:
		return Quote, true
	}
	return "", false
}

// Valid reports whether s belongs to the recognized alphabet.
func Valid(s Symbol) bool {
	switch s {
	case OpenBrace, CloseBrace, OpenParen, CloseParen, OpenBracket, CloseBracket,
		OpenComment, CloseComment, Quote, LineEnd:
		return true
	}
	return false
}

// String returns a printable form; the line terminator is rendered as "\n".
func (s Symbol) String() string {
	if s == LineEnd {
		return `\n`
	}
	return string(s)
}

// Token is a recognized symbol with its 1-based source position.
// Column is 0 for LineEnd tokens.
type Token struct {
	Symbol Symbol
	Line   int
	Column int
}
