package models

// Rating is the ordinal outcome of an evaluation.
type Rating string

const (
	RatingVeryFavorable         Rating = "very_favorable"
	RatingFavorable             Rating = "favorable"
	RatingNeutral               Rating = "neutral"
	RatingUnfavorable           Rating = "unfavorable"
	RatingVeryUnfavorable       Rating = "very_unfavorable"
	RatingNoInformationProvided Rating = "no_information_provided"
	RatingNotApplicable         Rating = "n_a"
)

// TierOrder lists the checkable rating tiers in strict descending
// priority. The determiner returns the first tier whose full requirement
// set holds; very_unfavorable is the fallback and is never checked.
var TierOrder = []Rating{
	RatingVeryFavorable,
	RatingFavorable,
	RatingNeutral,
	RatingUnfavorable,
}

// ControlCategory identifies a control catalog category.
type ControlCategory string

const (
	CategoryInfoTechOverview   ControlCategory = "info_tech_overview"
	CategoryLogicalAccess      ControlCategory = "logical_access_controls"
	CategoryNetworkSecurity    ControlCategory = "network_information_security"
	CategoryChangeMgmtSDLC     ControlCategory = "change_mgmt_sdlc"
	CategoryRemoteWorkforce    ControlCategory = "remote_workforce"
	CategoryIncidentResponse   ControlCategory = "incident_response"
	CategoryBusinessContinuity ControlCategory = "business_continuity"
)

// Control id prefixes used to slice the status table by category.
const (
	PrefixLogicalAccess   = "lac_"
	PrefixNetwork         = "net_"
	PrefixNetworkPII      = "net_pii_"
	PrefixChangeMgmt      = "chg_"
	PrefixRemoteWorkforce = "rw_"
)

// Control ids with special-cased evaluation semantics.
const (
	ControlMFACriticalOrPII            = "lac_mfa_critical_or_pii"
	ControlLeastPrivilege              = "lac_least_privilege"
	ControlPasswordsEncryptedInTransit = "lac_passwords_encrypted_in_transit"
	ControlNeedToKnow                  = "net_pii_need_to_know"
	ControlChangeMgmtProcess           = "chg_change_mgmt_process"
	ControlBusinessContinuityPlan      = "bcp_plan"
)
