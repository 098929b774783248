package services

import (
	"regexp"
	"strings"

	"github.com/MQMR-jbelcina/risk-rating-assistant-2.4/internal/domain/models"
	"github.com/MQMR-jbelcina/risk-rating-assistant-2.4/internal/rules"
)

var nonWord = regexp.MustCompile(`\W+`)

// controlSatisfied decides whether the notes satisfy a single control.
// Beyond the canonical statement text it accepts two abbreviated forms:
// the raw control id, or the id's tokens after the first joined by
// spaces. Underscore is a word character, so the token form only fires
// for ids with genuine non-word separators; the underscore-delimited
// catalog ids are matched whole. The passwords-encrypted-in-transit
// control is the one place negative evidence wins: a configured refusal
// statement suppresses any positive match.
func controlSatisfied(notes string, control rules.Control, conditions *rules.Conditions) bool {
	if control.ID == models.ControlPasswordsEncryptedInTransit {
		negatives := conditions.LogicalAccessControls.PasswordsEncryptedInTransitNegativeStatements
		if anyStatementPresent(notes, negatives) {
			return false
		}
	}

	if statementPresent(notes, control.Text) {
		return true
	}

	if control.ID != "" && strings.Contains(notes, control.ID) {
		return true
	}

	words := nonWord.Split(control.ID, -1)
	if len(words) > 1 {
		token := strings.Join(words[1:], " ")
		if token != "" && strings.Contains(notes, token) {
			return true
		}
	}

	return false
}
