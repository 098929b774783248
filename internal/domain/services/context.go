package services

import (
	"strings"

	"github.com/MQMR-jbelcina/risk-rating-assistant-2.4/internal/domain/models"
	"github.com/MQMR-jbelcina/risk-rating-assistant-2.4/internal/rules"
)

// softwareProviderKeywords is the closed keyword set that marks a vendor
// as a software provider. Deliberately hard-coded rather than part of the
// rules document: it is a categorical fact about the vendor's business,
// not an authored control statement.
var softwareProviderKeywords = []string{
	"software provider",
	"software development",
	"develops software",
	"developing software",
	"builds software",
	"provides software",
	"saas",
	"platform as a service",
	"application development",
}

// deriveContext extracts the vendor facts that gate control
// applicability from the normalized notes.
func deriveContext(notes string, conditions *rules.Conditions) models.Context {
	handlesPII := anyStatementPresent(notes, conditions.LogicalAccessControls.PIIPositiveStatements)

	remoteTrigger := conditions.RemoteWorkforce.EnforceOnlyIfRemoteWorkAllowed
	remoteAllowed := remoteTrigger != "" && statementPresent(notes, remoteTrigger)

	softwareProvider := false
	for _, keyword := range softwareProviderKeywords {
		if strings.Contains(notes, keyword) {
			softwareProvider = true
			break
		}
	}

	return models.Context{
		HandlesPII:        handlesPII,
		RemoteWorkAllowed: remoteAllowed,
		SoftwareProvider:  softwareProvider,
	}
}
