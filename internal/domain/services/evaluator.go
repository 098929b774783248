package services

import (
	"regexp"
	"sort"
	"strings"

	"github.com/MQMR-jbelcina/risk-rating-assistant-2.4/internal/domain/models"
	"github.com/MQMR-jbelcina/risk-rating-assistant-2.4/internal/rules"
	"github.com/MQMR-jbelcina/risk-rating-assistant-2.4/pkg/logger"
)

// fallbackReason is the fixed explanation attached when no tier holds.
const fallbackReason = "Vendor did not satisfy the minimum safeguards for an unfavorable rating."

// Standalone "n/a" token; "not applicable" is matched as a plain substring.
var notApplicableToken = regexp.MustCompile(`\bn/a\b`)

// Evaluator rates vendor risk from free-form analyst notes against an
// immutable rules document. One evaluation is a pure function of (notes,
// document): the evaluator keeps no state between calls, so a single
// instance is safe for concurrent use.
type Evaluator struct {
	doc    *rules.Document
	logger *logger.Logger
}

// NewEvaluator creates a new Evaluator
func NewEvaluator(doc *rules.Document, log *logger.Logger) *Evaluator {
	return &Evaluator{
		doc:    doc,
		logger: log.WithComponent("evaluator"),
	}
}

// evaluation is the scratch state of a single Evaluate call. It is
// allocated per call and never shared.
type evaluation struct {
	notes          string
	ctx            models.Context
	crossSatisfied map[string]struct{}
	status         map[string]*models.ControlStatus
}

// controlPhases declares the catalog walk order. The ordering is
// load-bearing in exactly one place: the network PII phase reads the
// least-privilege status computed by the logical access phase.
var controlPhases = []struct {
	name string
	run  func(*Evaluator, *evaluation)
}{
	{"logical_access", (*Evaluator).evalLogicalAccess},
	{"network_pii", (*Evaluator).evalNetworkPII},
	{"network_general", (*Evaluator).evalNetworkGeneral},
	{"change_mgmt_sdlc", (*Evaluator).evalChangeMgmt},
	{"remote_workforce", (*Evaluator).evalRemoteWorkforce},
	{"business_continuity", (*Evaluator).evalBusinessContinuity},
}

// Evaluate rates the given raw notes. Empty input and explicit
// not-applicable language short-circuit before any matching runs.
func (e *Evaluator) Evaluate(rawNotes string) *models.EvaluationResult {
	notes := NormalizeText(rawNotes)

	if notes == "" {
		return &models.EvaluationResult{
			Rating:  models.RatingNoInformationProvided,
			Details: nil,
			Context: models.Context{},
		}
	}

	if strings.Contains(notes, "not applicable") || notApplicableToken.MatchString(notes) {
		return &models.EvaluationResult{
			Rating:  models.RatingNotApplicable,
			Details: nil,
			Context: models.Context{},
		}
	}

	ev := &evaluation{notes: notes}

	// 1. Derive vendor context
	ev.ctx = deriveContext(notes, &e.doc.Conditions)

	// 2. Resolve cross-satisfaction shortcuts
	ev.crossSatisfied = applyCrossSatisfaction(notes, e.doc.Conditions.CrossSatisfaction)

	// 3. Walk the catalog in declared phase order
	ev.status = make(map[string]*models.ControlStatus, len(e.doc.AllControls()))
	for _, phase := range controlPhases {
		phase.run(e, ev)
	}

	// 4. Auxiliary collectors
	incidentElements := e.collectIncidentElements(notes)
	infoTechPresent := e.collectInfoTechOverview(notes)
	hasContinuityPlan := e.hasBusinessContinuityPlan(ev.status)

	// 5. Determine the rating tier
	rating, details := e.determineRating(ev, incidentElements, infoTechPresent, hasContinuityPlan)

	e.logger.Debug().
		Str("rating", string(rating)).
		Bool("handles_pii", ev.ctx.HandlesPII).
		Bool("remote_work_allowed", ev.ctx.RemoteWorkAllowed).
		Bool("software_provider", ev.ctx.SoftwareProvider).
		Int("controls", len(ev.status)).
		Msg("notes evaluated")

	ctx := ev.ctx
	ctx.IncidentElements = sortedKeys(incidentElements)

	return &models.EvaluationResult{
		Rating:  rating,
		Details: details,
		Context: ctx,
	}
}

// register records the status of one control. Exactly one entry per
// catalog control ends up in the table.
func (ev *evaluation) register(c rules.Control, required, satisfied bool) {
	ev.status[c.ID] = &models.ControlStatus{
		ControlID: c.ID,
		Required:  required,
		Satisfied: satisfied,
		Text:      c.Text,
		Tags:      c.Tags,
	}
}

// checkControl resolves satisfaction for a control: the cross-satisfied
// set wins, otherwise the control match runs against the notes.
func (e *Evaluator) checkControl(ev *evaluation, c rules.Control, required bool) {
	if _, ok := ev.crossSatisfied[c.ID]; ok {
		ev.register(c, required, true)
		return
	}
	ev.register(c, required, controlSatisfied(ev.notes, c, &e.doc.Conditions))
}

func (e *Evaluator) evalLogicalAccess(ev *evaluation) {
	conditions := e.doc.Conditions.LogicalAccessControls
	for _, c := range e.doc.Catalog.LogicalAccessControls {
		required := true
		if c.ID == models.ControlMFACriticalOrPII &&
			conditions.EnforceMFACriticalOrPIIIfCompanyHandlesPII &&
			!ev.ctx.HandlesPII {
			required = false
		}
		e.checkControl(ev, c, required)
	}
}

func (e *Evaluator) evalNetworkPII(ev *evaluation) {
	conditions := e.doc.Conditions.NetworkInformationSecurity
	for _, c := range e.doc.Catalog.NetworkInformationSecurity.PIIControls {
		required := !(conditions.EnforcePIIControlsIfCompanyHandlesPII && !ev.ctx.HandlesPII)

		// Need-to-know is redundant once least privilege is in place:
		// mark it not required and satisfied without matching.
		if c.ID == models.ControlNeedToKnow &&
			conditions.DoNotEnforceNeedToKnowIfLeastPrivilegeStatementPresent {
			if lp, ok := ev.status[models.ControlLeastPrivilege]; ok && lp.Satisfied {
				ev.register(c, false, true)
				continue
			}
		}

		e.checkControl(ev, c, required)
	}
}

func (e *Evaluator) evalNetworkGeneral(ev *evaluation) {
	for _, c := range e.doc.Catalog.NetworkInformationSecurity.Controls {
		e.checkControl(ev, c, true)
	}
}

func (e *Evaluator) evalChangeMgmt(ev *evaluation) {
	for _, c := range e.doc.Catalog.ChangeMgmtSDLC {
		e.checkControl(ev, c, ev.ctx.SoftwareProvider)
	}
}

func (e *Evaluator) evalRemoteWorkforce(ev *evaluation) {
	for _, c := range e.doc.Catalog.RemoteWorkforce {
		e.checkControl(ev, c, ev.ctx.RemoteWorkAllowed)
	}
}

func (e *Evaluator) evalBusinessContinuity(ev *evaluation) {
	for _, c := range e.doc.Catalog.BusinessContinuity {
		e.checkControl(ev, c, true)
	}
}

// collectIncidentElements returns the configured incident-response
// elements found in the notes.
func (e *Evaluator) collectIncidentElements(notes string) map[string]struct{} {
	elements := make(map[string]struct{})
	for _, element := range e.doc.Catalog.IncidentResponseElements {
		if statementPresent(notes, element) {
			elements[element] = struct{}{}
		}
	}
	return elements
}

// collectInfoTechOverview returns which of the top tier's required
// overview statements are present in the notes.
func (e *Evaluator) collectInfoTechOverview(notes string) map[string]struct{} {
	present := make(map[string]struct{})
	for _, stmt := range e.doc.Ratings.VeryFavorable.InfoTechOverview.Required {
		if statementPresent(notes, stmt) {
			present[stmt] = struct{}{}
		}
	}
	return present
}

func (e *Evaluator) hasBusinessContinuityPlan(status map[string]*models.ControlStatus) bool {
	bcp, ok := status[models.ControlBusinessContinuityPlan]
	return ok && bcp.Satisfied
}

// requirementsFor maps a checkable tier to its requirement set.
func (e *Evaluator) requirementsFor(tier models.Rating) rules.RequirementSet {
	switch tier {
	case models.RatingVeryFavorable:
		return e.doc.Ratings.VeryFavorable
	case models.RatingFavorable:
		return e.doc.Ratings.Favorable
	case models.RatingNeutral:
		return e.doc.Ratings.Neutral
	default:
		return e.doc.Ratings.Unfavorable
	}
}

// determineRating walks the tiers strongest first and returns the first
// whose full requirement set holds. When none holds the terminal state
// is the fixed very_unfavorable fallback with the missing-control list.
func (e *Evaluator) determineRating(
	ev *evaluation,
	incidentElements map[string]struct{},
	infoTechPresent map[string]struct{},
	hasContinuityPlan bool,
) (models.Rating, *models.RatingDetails) {
	for _, tier := range models.TierOrder {
		req := e.requirementsFor(tier)
		if e.meetsTier(req, ev, incidentElements, infoTechPresent, hasContinuityPlan) {
			return tier, e.buildDetails(tier, ev.status, incidentElements, infoTechPresent)
		}
	}

	return models.RatingVeryUnfavorable, &models.RatingDetails{
		Rating:                   models.RatingVeryUnfavorable,
		SatisfiedControls:        satisfiedControlIDs(ev.status),
		MissingControls:          missingControlIDs(ev.status),
		IncidentResponseElements: sortedKeys(incidentElements),
		InfoTechOverview:         sortedKeys(infoTechPresent),
		Reason:                   fallbackReason,
	}
}

// meetsTier evaluates all seven category checkers for one tier.
func (e *Evaluator) meetsTier(
	req rules.RequirementSet,
	ev *evaluation,
	incidentElements map[string]struct{},
	infoTechPresent map[string]struct{},
	hasContinuityPlan bool,
) bool {
	if !meetsInfoTechOverview(req.InfoTechOverview, infoTechPresent) {
		return false
	}
	if !meetsLogicalAccess(req.LogicalAccessControls, ev.status) {
		return false
	}
	if !meetsNetwork(req.NetworkInformationSecurity, ev.ctx, ev.status) {
		return false
	}
	if !meetsChangeMgmt(req.ChangeMgmtSDLC, ev.ctx, ev.status) {
		return false
	}
	if !meetsRemoteWorkforce(req.RemoteWorkforce, ev.ctx, ev.status) {
		return false
	}
	if !meetsIncidentResponse(req.IncidentResponse, len(incidentElements)) {
		return false
	}
	if !meetsBusinessContinuity(req.BusinessContinuity, hasContinuityPlan) {
		return false
	}
	return true
}

func (e *Evaluator) buildDetails(
	tier models.Rating,
	status map[string]*models.ControlStatus,
	incidentElements map[string]struct{},
	infoTechPresent map[string]struct{},
) *models.RatingDetails {
	return &models.RatingDetails{
		Rating:                   tier,
		SatisfiedControls:        satisfiedControlIDs(status),
		MissingControls:          missingControlIDs(status),
		IncidentResponseElements: sortedKeys(incidentElements),
		InfoTechOverview:         sortedKeys(infoTechPresent),
	}
}

// satisfiedControlIDs lists applicable controls the notes satisfied,
// sorted by id.
func satisfiedControlIDs(status map[string]*models.ControlStatus) []string {
	ids := make([]string, 0, len(status))
	for _, ctrl := range status {
		if ctrl.Required && ctrl.Satisfied {
			ids = append(ids, ctrl.ControlID)
		}
	}
	sort.Strings(ids)
	return ids
}

// missingControlIDs lists applicable controls the notes failed to
// satisfy, sorted by id.
func missingControlIDs(status map[string]*models.ControlStatus) []string {
	ids := make([]string, 0, len(status))
	for _, ctrl := range status {
		if ctrl.Required && !ctrl.Satisfied {
			ids = append(ids, ctrl.ControlID)
		}
	}
	sort.Strings(ids)
	return ids
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
