package nolint

import (
	"fmt"
	"go/token"
	"strings"
)

// Directive is the marker recognized in comments of any language, e.g.
//
//	x = f(a]  // symbal:nolint
//	# symbal:nolint:mismatch,unclosed-opener
const Directive = "symbal:nolint"

// Manager manages nolint scopes and checks if a position is nolinted.
type Manager struct {
	// scopes maps filename to a slice of nolint scopes.
	scopes map[string][]nolintScope
}

// nolintScope is an inclusive line range where nolint applies.
type nolintScope struct {
	rules map[string]struct{}
	start int
	end   int
}

// Parse scans lines for nolint directives.
//
// A directive sharing its line with code applies to that line only. A
// directive alone on its line applies to that line and the next one, or
// to the whole file when it is on the first line.
func Parse(filename string, lines []string) *Manager {
	manager := &Manager{scopes: make(map[string][]nolintScope)}
	for i, line := range lines {
		ns, err := parseLine(line, i+1, len(lines))
		if err != nil {
			// ignore invalid nolint comments
			continue
		}
		manager.scopes[filename] = append(manager.scopes[filename], ns)
	}
	return manager
}

var errNoDirective = fmt.Errorf("no nolint directive")

func parseLine(line string, lineNum, lineCount int) (nolintScope, error) {
	var ns nolintScope

	idx := strings.Index(line, Directive)
	if idx < 0 {
		return ns, errNoDirective
	}

	rest := line[idx+len(Directive):]
	// A directive can either have a list of rules after a colon (:)
	// or if no rules are specified, it applies to all rules
	if rest != "" && rest[0] == ':' {
		ns.rules = parseIgnoreRuleNames(rest[1:])
		if len(ns.rules) == 0 {
			return ns, fmt.Errorf("invalid nolint comment: no rules specified after colon")
		}
	} else if rest != "" && !isSpaceOrCommentEnd(rest[0]) {
		return ns, fmt.Errorf("invalid nolint comment format")
	}

	switch {
	case !isStandalone(line[:idx]):
		ns.start, ns.end = lineNum, lineNum
	case lineNum == 1:
		ns.start, ns.end = 1, lineCount
	default:
		ns.start, ns.end = lineNum, lineNum+1
	}
	return ns, nil
}

// parseIgnoreRuleNames parses the comma separated rule list of a directive.
// Spaces around commas are allowed. The list ends at a closing comment
// marker or at the first word not separated from the previous by a comma.
func parseIgnoreRuleNames(text string) map[string]struct{} {
	rulesMap := make(map[string]struct{})
	if end := strings.Index(text, "*/"); end >= 0 {
		text = text[:end]
	}
	for _, part := range strings.Split(text, ",") {
		fields := strings.Fields(part)
		if len(fields) == 0 {
			continue
		}
		rulesMap[fields[0]] = struct{}{}
		if len(fields) > 1 {
			break
		}
	}
	return rulesMap
}

// isStandalone reports whether prefix holds nothing but whitespace and
// comment markers.
func isStandalone(prefix string) bool {
	return strings.TrimLeft(prefix, " \t/*#;-") == ""
}

func isSpaceOrCommentEnd(c byte) bool {
	return c == ' ' || c == '\t' || c == '*'
}

// IsNolint checks if a given position and rule are nolinted.
func (m *Manager) IsNolint(pos token.Position, ruleName string) bool {
	scopes, exists := m.scopes[pos.Filename]
	if !exists {
		return false
	}
	for _, ns := range scopes {
		if pos.Line < ns.start || pos.Line > ns.end {
			continue
		}
		// If the rules list is empty, nolint applies to all rules
		if len(ns.rules) == 0 {
			return true
		}
		if _, exists := ns.rules[ruleName]; exists {
			return true
		}
	}
	return false
}
