// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package rule

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// policyOverlayDocument is the `.policy.yaml` wire format: a list of
// rules using the same field vocabulary as `.pkla`'s Identity/Action/
// Result keys, so the two formats can express identical rules.
type policyOverlayDocument struct {
	Rules []policyOverlayRule `yaml:"rules"`
}

type policyOverlayRule struct {
	Identity       []string          `yaml:"identity"`
	Action         []string          `yaml:"action"`
	ResultAny      string            `yaml:"resultAny"`
	ResultInactive string            `yaml:"resultInactive"`
	ResultActive   string            `yaml:"resultActive"`
	Constraints    map[string]string `yaml:"constraints"`
}

// parsePolicyOverlayFile parses a `.policy.yaml` overlay into rules,
// one per list entry in document order.
func parsePolicyOverlayFile(path string) ([]Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var doc policyOverlayDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	var rules []Rule
	for i, entry := range doc.Rules {
		rule, ok := ruleFromOverlayEntry(path, i, entry)
		if ok {
			rules = append(rules, rule)
		}
	}
	return rules, nil
}

func ruleFromOverlayEntry(path string, index int, entry policyOverlayRule) (Rule, bool) {
	identities := canonicalizeIdentityList(entry.Identity)
	if len(identities) == 0 || len(entry.Action) == 0 {
		return Rule{}, false
	}

	any, ok := parseResultKeyword(entry.ResultAny)
	if !ok {
		return Rule{}, false
	}
	inactive, ok := parseResultKeyword(entry.ResultInactive)
	if !ok {
		return Rule{}, false
	}
	active, ok := parseResultKeyword(entry.ResultActive)
	if !ok {
		return Rule{}, false
	}

	constraints := entry.Constraints
	if len(constraints) == 0 {
		constraints = nil
	}

	return Rule{
		Source:      fmt.Sprintf("%s[rules[%d]]", path, index),
		Identities:  identities,
		ActionGlobs: entry.Action,
		Constraints: constraints,
		Any:         any,
		Inactive:    inactive,
		Active:      active,
	}, true
}
