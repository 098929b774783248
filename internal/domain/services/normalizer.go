package services

import (
	"regexp"
	"strings"
)

// Mis-encoded UTF-8 ellipsis ("…" read back as Windows-1252) that shows
// up in notes pasted from word processors.
const mojibakeEllipsis = "â€¦"

var whitespaceRun = regexp.MustCompile(`\s+`)

// NormalizeText canonicalizes raw narrative text for matching: lower-case,
// repair mis-encoded ellipses, collapse whitespace runs (including
// newlines) to single spaces, trim. Every substring test downstream runs
// against this form; callers never re-normalize.
func NormalizeText(text string) string {
	normalized := strings.ToLower(text)
	normalized = strings.ReplaceAll(normalized, mojibakeEllipsis, "...")
	normalized = whitespaceRun.ReplaceAllString(normalized, " ")
	return strings.TrimSpace(normalized)
}

// statementPresent reports whether a policy statement appears verbatim in
// the normalized notes. The statement is normalized with the same rules
// as the notes; an empty statement is never present. This is a literal
// substring test on purpose: determinism over recall.
func statementPresent(notes, statement string) bool {
	normalized := NormalizeText(statement)
	if normalized == "" {
		return false
	}
	return strings.Contains(notes, normalized)
}

// anyStatementPresent reports whether any of the statements is present.
func anyStatementPresent(notes string, statements []string) bool {
	for _, stmt := range statements {
		if statementPresent(notes, stmt) {
			return true
		}
	}
	return false
}
