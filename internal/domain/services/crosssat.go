package services

import (
	"github.com/MQMR-jbelcina/risk-rating-assistant-2.4/internal/rules"
)

// applyCrossSatisfaction builds the set of control ids forced to
// satisfied before individual matching runs. Rules are independent and
// order-insensitive (set union); the first matching trigger per rule is
// enough. Ids that name no real control simply never match one.
func applyCrossSatisfaction(notes string, crossRules []rules.CrossSatisfactionRule) map[string]struct{} {
	satisfied := make(map[string]struct{})
	for _, rule := range crossRules {
		if !anyStatementPresent(notes, rule.IfAnyStatementPresent) {
			continue
		}
		for _, id := range rule.ThenMarkControlsMet {
			satisfied[id] = struct{}{}
		}
	}
	return satisfied
}
