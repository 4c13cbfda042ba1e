package internal

import (
	"os"
	"strings"
)

// SourceCode stores the content of a source code file.
type SourceCode struct {
	Lines []string
}

// ReadSourceCode reads the content of a file and returns it as a `SourceCode` struct.
func ReadSourceCode(filename string) (*SourceCode, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return NewSourceCode(content), nil
}

var lineBreaks = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// NewSourceCode splits content into lines. "\n", "\r\n" and a bare "\r"
// all end a line, as they do for the tokenizer.
func NewSourceCode(content []byte) *SourceCode {
	return &SourceCode{Lines: strings.Split(lineBreaks.Replace(string(content)), "\n")}
}
