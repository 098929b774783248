package models

// Context holds the boolean facts derived from the analyst notes that
// gate which controls are required. Derived once per evaluation and
// read-only afterwards.
type Context struct {
	HandlesPII        bool     `json:"handles_pii"`
	RemoteWorkAllowed bool     `json:"remote_work_allowed"`
	SoftwareProvider  bool     `json:"software_provider"`
	IncidentElements  []string `json:"incident_elements,omitempty"`
}

// ControlStatus is the per-control verdict: whether the control applies
// to this vendor and whether the notes satisfy it.
type ControlStatus struct {
	ControlID string   `json:"control_id"`
	Required  bool     `json:"required"`
	Satisfied bool     `json:"satisfied"`
	Text      string   `json:"text"`
	Tags      []string `json:"tags,omitempty"`
}

// RatingDetails is the structured breakdown attached to a non-trivial
// rating. All lists are lexicographically sorted and duplicate-free.
type RatingDetails struct {
	Rating                   Rating   `json:"rating"`
	SatisfiedControls        []string `json:"satisfied_controls"`
	MissingControls          []string `json:"missing_controls"`
	IncidentResponseElements []string `json:"incident_response_elements"`
	InfoTechOverview         []string `json:"info_tech_overview"`
	// Reason is set only on the very_unfavorable fallback.
	Reason string `json:"reason,omitempty"`
}

// EvaluationResult is the engine's sole output contract. Details is nil
// exactly for the two trivial outcomes (no information provided, not
// applicable).
type EvaluationResult struct {
	Rating  Rating         `json:"rating"`
	Details *RatingDetails `json:"details"`
	Context Context        `json:"context"`
}
