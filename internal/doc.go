// Package internal provides the file-level engine of symbal.
//
// Key components:
//
// Engine: runs the balance checker over a file or in-memory source and turns
// a non-balanced result into an Issue. It also owns ignore lists, the
// optional result cache and the file watcher.
//
// LintRule: one rule per unbalanced result kind (unclosed-opener,
// unmatched-closer, mismatch). A rule carries its configured severity and
// builds the issue message and note.
//
// Cache: gob-encoded results keyed by file path, invalidated when a file's
// size, modification time or any configured dependency changes.
//
// Issues can be suppressed per line with a "symbal:nolint" directive, see
// package nolint.
package internal
