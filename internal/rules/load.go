package rules

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// ErrEmptyCatalog is returned when the document defines no controls at all.
var ErrEmptyCatalog = errors.New("rules: catalog defines no controls")

// Load reads, decodes and validates a rules document from disk.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules document: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a rules document from raw JSON. Unknown
// fields are rejected so a typo in the document surfaces at load time
// instead of silently relaxing a requirement.
func Parse(data []byte) (*Document, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode rules document: %w", err)
	}

	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rules document: %w", err)
	}

	return &doc, nil
}

// Validate fails fast on structural problems the evaluator is not
// prepared to degrade around. Cross-satisfaction rules and
// min_count_from lists may reference unknown control ids; those are
// no-ops at evaluation time and reported by UnknownControlRefs instead.
func (d *Document) Validate() error {
	all := d.AllControls()
	if len(all) == 0 {
		return ErrEmptyCatalog
	}

	seen := make(map[string]struct{}, len(all))
	for _, c := range all {
		if c.ID == "" {
			return fmt.Errorf("control with empty id (text: %q)", c.Text)
		}
		if _, dup := seen[c.ID]; dup {
			return fmt.Errorf("duplicate control id %q", c.ID)
		}
		seen[c.ID] = struct{}{}
	}

	for i, rule := range d.Conditions.CrossSatisfaction {
		if len(rule.IfAnyStatementPresent) == 0 {
			return fmt.Errorf("cross_satisfaction rule %d has no trigger statements", i)
		}
		if len(rule.ThenMarkControlsMet) == 0 {
			return fmt.Errorf("cross_satisfaction rule %d marks no controls met", i)
		}
	}

	return nil
}

// UnknownControlRefs lists control ids referenced by cross-satisfaction
// rules or min_count_from lists that do not exist in the catalog. They
// are tolerated (an unknown id never matches a real control) but worth
// a warning at startup.
func (d *Document) UnknownControlRefs() []string {
	known := make(map[string]struct{})
	for _, c := range d.AllControls() {
		known[c.ID] = struct{}{}
	}

	var unknown []string
	add := func(id string) {
		if _, ok := known[id]; !ok {
			unknown = append(unknown, id)
		}
	}

	for _, rule := range d.Conditions.CrossSatisfaction {
		for _, id := range rule.ThenMarkControlsMet {
			add(id)
		}
	}
	for _, set := range []RequirementSet{
		d.Ratings.VeryFavorable,
		d.Ratings.Favorable,
		d.Ratings.Neutral,
		d.Ratings.Unfavorable,
	} {
		for _, id := range set.ChangeMgmtSDLC.MinCountFrom {
			add(id)
		}
	}

	return unknown
}
