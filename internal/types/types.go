package types

import "go/token"

// Issue represents a balance problem found in a source file.
type Issue struct {
	Rule       string         `json:"rule"`
	Category   string         `json:"category"`
	Filename   string         `json:"filename"`
	Message    string         `json:"message"`
	Suggestion string         `json:"suggestion,omitempty"`
	Note       string         `json:"note,omitempty"`
	Start      token.Position `json:"start"`
	End        token.Position `json:"end"`
	Severity   Severity       `json:"severity"`
}

// ConfigRule is the per-rule section of the configuration file.
type ConfigRule struct {
	Severity Severity `yaml:"severity"`
}
