package services

import (
	"strings"

	"github.com/MQMR-jbelcina/risk-rating-assistant-2.4/internal/domain/models"
	"github.com/MQMR-jbelcina/risk-rating-assistant-2.4/internal/rules"
)

// The seven category checkers answer "does this tier's requirement for
// category C hold?" against the read-only status table. They share one
// generic counting helper; everything category-specific (PII gating,
// software-provider and remote-work pass-throughs, the change-management
// gates) is layered on top.

// requiredControls returns the applicable controls whose id carries the
// given prefix, excluding any of the excluded prefixes.
func requiredControls(status map[string]*models.ControlStatus, prefix string, exclude ...string) []*models.ControlStatus {
	var out []*models.ControlStatus
	for id, ctrl := range status {
		if !strings.HasPrefix(id, prefix) || !ctrl.Required {
			continue
		}
		skip := false
		for _, ex := range exclude {
			if strings.HasPrefix(id, ex) {
				skip = true
				break
			}
		}
		if !skip {
			out = append(out, ctrl)
		}
	}
	return out
}

// meetsControlRequirement is the generic required_all / min_count /
// must_include_tag check over a set of applicable controls.
func meetsControlRequirement(requiredAll bool, minCount int, tag string, controls []*models.ControlStatus) bool {
	if requiredAll {
		for _, ctrl := range controls {
			if !ctrl.Satisfied {
				return false
			}
		}
		return true
	}

	satisfied := 0
	for _, ctrl := range controls {
		if ctrl.Satisfied {
			satisfied++
		}
	}
	if satisfied < minCount {
		return false
	}

	if tag != "" {
		for _, ctrl := range controls {
			if ctrl.Satisfied && hasTag(ctrl, tag) {
				return true
			}
		}
		return false
	}

	return true
}

func hasTag(ctrl *models.ControlStatus, tag string) bool {
	for _, t := range ctrl.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// meetsInfoTechOverview holds when every statement the tier requires was
// found in the notes.
func meetsInfoTechOverview(req rules.InfoTechOverviewRequirement, present map[string]struct{}) bool {
	for _, stmt := range req.Required {
		if _, ok := present[stmt]; !ok {
			return false
		}
	}
	return true
}

func meetsLogicalAccess(req rules.ControlRequirement, status map[string]*models.ControlStatus) bool {
	controls := requiredControls(status, models.PrefixLogicalAccess)
	return meetsControlRequirement(req.RequiredAll, req.MinCount, req.MustIncludeTag, controls)
}

// meetsNetwork checks the PII gate and the general network controls
// independently. PII-prefixed controls are excluded from the general
// count.
func meetsNetwork(req rules.NetworkRequirement, ctx models.Context, status map[string]*models.ControlStatus) bool {
	if req.PIIControlsRequiredIfCompanyHandlesPII && ctx.HandlesPII {
		piiControls := requiredControls(status, models.PrefixNetworkPII)
		if len(piiControls) == 0 {
			return false
		}
		for _, ctrl := range piiControls {
			if !ctrl.Satisfied {
				return false
			}
		}
	}

	netControls := requiredControls(status, models.PrefixNetwork, models.PrefixNetworkPII)
	return meetsControlRequirement(req.ControlsRequiredAll, req.MinCount, req.MustIncludeTag, netControls)
}

// meetsChangeMgmt passes outright for vendors that do not build
// software: the category is inapplicable. Otherwise the tier may demand
// full satisfaction, the change-management-process control specifically,
// a minimum from an explicit id list, or a generic minimum.
func meetsChangeMgmt(req rules.ChangeMgmtRequirement, ctx models.Context, status map[string]*models.ControlStatus) bool {
	if !ctx.SoftwareProvider {
		return true
	}

	controls := requiredControls(status, models.PrefixChangeMgmt)
	if req.RequiredAll {
		return meetsControlRequirement(true, 0, "", controls)
	}

	if req.RequireChangeMgmtProcess {
		process, ok := status[models.ControlChangeMgmtProcess]
		if !ok || !process.Satisfied {
			return false
		}
	}

	if len(req.MinCountFrom) > 0 {
		satisfied := 0
		for _, id := range req.MinCountFrom {
			if ctrl, ok := status[id]; ok && ctrl.Satisfied {
				satisfied++
			}
		}
		return satisfied >= req.MinCount
	}

	return meetsControlRequirement(false, req.MinCount, "", controls)
}

// meetsRemoteWorkforce passes outright when remote work is not allowed.
func meetsRemoteWorkforce(req rules.ControlRequirement, ctx models.Context, status map[string]*models.ControlStatus) bool {
	if !ctx.RemoteWorkAllowed {
		return true
	}
	controls := requiredControls(status, models.PrefixRemoteWorkforce)
	return meetsControlRequirement(req.RequiredAll, req.MinCount, "", controls)
}

// meetsIncidentResponse passes when the tier specifies no minimum, else
// when enough elements were detected in the notes.
func meetsIncidentResponse(req rules.IncidentResponseRequirement, elementCount int) bool {
	if req.MinElements == nil {
		return true
	}
	return elementCount >= *req.MinElements
}

func meetsBusinessContinuity(req rules.BusinessContinuityRequirement, hasPlan bool) bool {
	if req.Required && !hasPlan {
		return false
	}
	return true
}
