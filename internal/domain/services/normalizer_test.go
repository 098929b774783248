package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercases", "The Vendor Uses MFA", "the vendor uses mfa"},
		{"collapses whitespace", "access  is \t logged", "access is logged"},
		{"collapses newlines", "line one\nline two\r\nline three", "line one line two line three"},
		{"trims", "  padded  ", "padded"},
		{"repairs mojibake ellipsis", "controls includeâ€¦ firewalls", "controls include... firewalls"},
		{"empty", "", ""},
		{"whitespace only", " \n\t ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeText(tt.input))
		})
	}
}

func TestNormalizeTextIdempotent(t *testing.T) {
	once := NormalizeText("  The Vendorâ€¦ uses\n MFA  ")
	assert.Equal(t, once, NormalizeText(once))
}

func TestStatementPresent(t *testing.T) {
	notes := NormalizeText("The vendor enforces  Multi-Factor\nAuthentication on all accounts.")

	assert.True(t, statementPresent(notes, "multi-factor authentication"))
	assert.True(t, statementPresent(notes, "  Multi-Factor   Authentication  "))
	assert.False(t, statementPresent(notes, "single sign-on"))
	assert.False(t, statementPresent(notes, ""))
	assert.False(t, statementPresent(notes, "   "))
}

func TestAnyStatementPresent(t *testing.T) {
	notes := NormalizeText("Backups run nightly.")

	assert.True(t, anyStatementPresent(notes, []string{"no match", "backups run nightly"}))
	assert.False(t, anyStatementPresent(notes, []string{"no match", "also no match"}))
	assert.False(t, anyStatementPresent(notes, nil))
}
