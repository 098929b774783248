// Package rules defines the rating rules document: the control catalog,
// conditional applicability rules and per-tier requirement sets the
// evaluation engine runs against. The document is decoded from JSON and
// validated once at load time; after that it is immutable, so concurrent
// evaluations can share a single *Document without synchronization.
package rules

// Control is a single named policy safeguard with canonical descriptive
// text and category tags.
type Control struct {
	ID   string   `json:"id"`
	Text string   `json:"text"`
	Tags []string `json:"tags,omitempty"`
}

// Catalog groups the control definitions by category. Order within a
// category is the catalog author's order and is preserved by the
// evaluator.
type Catalog struct {
	LogicalAccessControls      []Control      `json:"logical_access_controls"`
	NetworkInformationSecurity NetworkCatalog `json:"network_information_security"`
	ChangeMgmtSDLC             []Control      `json:"change_mgmt_sdlc"`
	RemoteWorkforce            []Control      `json:"remote_workforce"`
	BusinessContinuity         []Control      `json:"business_continuity"`
	IncidentResponseElements   []string       `json:"incident_response_elements"`
}

// NetworkCatalog splits network controls into PII-specific controls and
// general controls; the split drives separate applicability rules.
type NetworkCatalog struct {
	PIIControls []Control `json:"pii_controls"`
	Controls    []Control `json:"controls"`
}

// LogicalAccessConditions gate logical-access control applicability and
// carry the statement lists the context deriver matches against.
type LogicalAccessConditions struct {
	PIIPositiveStatements                      []string `json:"pii_positive_statements"`
	EnforceMFACriticalOrPIIIfCompanyHandlesPII bool     `json:"enforce_mfa_critical_or_pii_if_company_handles_pii"`
	// Negative statements that suppress an otherwise-positive match on
	// the passwords-encrypted-in-transit control.
	PasswordsEncryptedInTransitNegativeStatements []string `json:"passwords_encrypted_in_transit_only_if_negative_statement_present"`
}

// NetworkConditions gate network/PII control applicability.
type NetworkConditions struct {
	EnforcePIIControlsIfCompanyHandlesPII                  bool `json:"enforce_pii_controls_if_company_handles_pii"`
	DoNotEnforceNeedToKnowIfLeastPrivilegeStatementPresent bool `json:"do_not_enforce_need_to_know_if_least_privilege_statement_present"`
}

// RemoteWorkforceConditions hold the trigger statement that makes remote
// workforce controls applicable at all.
type RemoteWorkforceConditions struct {
	EnforceOnlyIfRemoteWorkAllowed string `json:"enforce_only_if_remote_work_allowed"`
}

// CrossSatisfactionRule is a policy shortcut: if any trigger statement is
// present in the notes, every listed control is treated as satisfied.
type CrossSatisfactionRule struct {
	IfAnyStatementPresent []string `json:"if_any_statement_present"`
	ThenMarkControlsMet   []string `json:"then_mark_controls_met"`
}

// Conditions collects all conditional rules of the document.
type Conditions struct {
	LogicalAccessControls      LogicalAccessConditions   `json:"logical_access_controls"`
	NetworkInformationSecurity NetworkConditions         `json:"network_information_security"`
	RemoteWorkforce            RemoteWorkforceConditions `json:"remote_workforce"`
	CrossSatisfaction          []CrossSatisfactionRule   `json:"cross_satisfaction"`
}

// InfoTechOverviewRequirement lists the overview statements a tier
// demands verbatim in the notes.
type InfoTechOverviewRequirement struct {
	Required []string `json:"required"`
}

// ControlRequirement is the generic shape shared by the per-category
// requirement checkers: either everything applicable must be satisfied,
// or a minimum count (optionally with a mandatory tag) suffices.
type ControlRequirement struct {
	RequiredAll    bool   `json:"required_all"`
	MinCount       int    `json:"min_count"`
	MustIncludeTag string `json:"must_include_tag"`
}

// NetworkRequirement layers the PII gate on top of the generic control
// requirement for general network controls.
type NetworkRequirement struct {
	PIIControlsRequiredIfCompanyHandlesPII bool   `json:"pii_controls_required_if_company_handles_pii"`
	ControlsRequiredAll                    bool   `json:"controls_required_all"`
	MinCount                               int    `json:"min_count"`
	MustIncludeTag                         string `json:"must_include_tag"`
}

// ChangeMgmtRequirement supports three alternative gates below
// required-all: a mandatory change-management-process control, an
// explicit control-id list counted by satisfaction, or a generic
// minimum count.
type ChangeMgmtRequirement struct {
	RequiredAll              bool     `json:"required_all"`
	RequireChangeMgmtProcess bool     `json:"require_change_mgmt_process"`
	MinCountFrom             []string `json:"min_count_from"`
	MinCount                 int      `json:"min_count"`
}

// IncidentResponseRequirement demands a minimum number of detected
// incident-response elements. A nil MinElements means the tier does not
// check this category.
type IncidentResponseRequirement struct {
	MinElements *int `json:"min_elements"`
}

// BusinessContinuityRequirement marks whether a continuity plan must be
// detected for the tier.
type BusinessContinuityRequirement struct {
	Required bool `json:"required"`
}

// RequirementSet is one rating tier's full requirement bundle, one
// requirement per category.
type RequirementSet struct {
	InfoTechOverview           InfoTechOverviewRequirement   `json:"info_tech_overview"`
	LogicalAccessControls      ControlRequirement            `json:"logical_access_controls"`
	NetworkInformationSecurity NetworkRequirement            `json:"network_information_security"`
	ChangeMgmtSDLC             ChangeMgmtRequirement         `json:"change_mgmt_sdlc"`
	RemoteWorkforce            ControlRequirement            `json:"remote_workforce"`
	IncidentResponse           IncidentResponseRequirement   `json:"incident_response"`
	BusinessContinuity         BusinessContinuityRequirement `json:"business_continuity"`
}

// Ratings holds the four checkable tiers in named fields; the evaluator
// walks them strongest first.
type Ratings struct {
	VeryFavorable RequirementSet `json:"very_favorable"`
	Favorable     RequirementSet `json:"favorable"`
	Neutral       RequirementSet `json:"neutral"`
	Unfavorable   RequirementSet `json:"unfavorable"`
}

// Document is the complete rating rules document.
type Document struct {
	Catalog    Catalog    `json:"catalog"`
	Conditions Conditions `json:"conditions"`
	Ratings    Ratings    `json:"ratings"`
}

// AllControls returns every control definition in catalog order:
// logical access, network PII, general network, change management,
// remote workforce, business continuity.
func (d *Document) AllControls() []Control {
	var all []Control
	all = append(all, d.Catalog.LogicalAccessControls...)
	all = append(all, d.Catalog.NetworkInformationSecurity.PIIControls...)
	all = append(all, d.Catalog.NetworkInformationSecurity.Controls...)
	all = append(all, d.Catalog.ChangeMgmtSDLC...)
	all = append(all, d.Catalog.RemoteWorkforce...)
	all = append(all, d.Catalog.BusinessContinuity...)
	return all
}
