// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package rule

import "strings"

// defaultIdentityToken is the literal identity-set entry that marks a
// rule as applying to the "default" probe — the decision engine's
// first pass, queried with no concrete identity. See spec 4.2's
// "identity_or_default = none matches rules whose identity set
// contains the literal default" contract.
const defaultIdentityToken = "default"

// Rule is one parsed `.pkla` (or `.policy.yaml` overlay) entry: a set
// of identities and action globs gating three outcomes selected by
// the subject's locality/activity.
//
// Fields are exported with cbor tags, not for external API
// consumption but so internal/rulecache can serialize a parsed Store
// verbatim into its content-addressed snapshot cache without a
// parallel mirror type.
type Rule struct {
	// Source identifies where this rule came from (file path plus
	// section/index), for diagnostic logging only.
	Source string `cbor:"source"`

	Identities  []string          `cbor:"identities"`
	ActionGlobs []string          `cbor:"action_globs"`
	Constraints map[string]string `cbor:"constraints,omitempty"`

	Any      Outcome `cbor:"any"`
	Inactive Outcome `cbor:"inactive"`
	Active   Outcome `cbor:"active"`
}

// matchesIdentity reports whether probe (the canonical string of a
// concrete identity, or "" for the defaults-pass probe) satisfies
// this rule's identity set.
func (r Rule) matchesIdentity(probe string) bool {
	token := probe
	if token == "" {
		token = defaultIdentityToken
	}
	for _, id := range r.Identities {
		if id == token {
			return true
		}
	}
	return false
}

// matchesAction reports whether actionID matches at least one of the
// rule's action globs.
func (r Rule) matchesAction(actionID string) bool {
	for _, glob := range r.ActionGlobs {
		if matchActionGlob(glob, actionID) {
			return true
		}
	}
	return false
}

// matchesConstraints reports whether every constraint this rule
// declares is satisfied by details. A rule with no constraints always
// passes. A constraint whose key is absent from details fails.
func (r Rule) matchesConstraints(details map[string]string) bool {
	for key, want := range r.Constraints {
		got, ok := details[key]
		if !ok || got != want {
			return false
		}
	}
	return true
}

// matches reports whether this rule applies to the given probe
// identity, action, and detail set.
func (r Rule) matches(probe string, actionID string, details map[string]string) bool {
	return r.matchesIdentity(probe) && r.matchesAction(actionID) && r.matchesConstraints(details)
}

// matchActionGlob implements spec 4.2's action-glob semantics: "*"
// matches any substring, and matching is anchored (the whole action
// id must be consumed). This is deliberately simpler than a
// filesystem-style glob: there is no "?" wildcard and no path
// segment boundary, because action ids are dotted identifiers, not
// paths.
func matchActionGlob(pattern, actionID string) bool {
	if !strings.Contains(pattern, "*") {
		return pattern == actionID
	}

	segments := strings.Split(pattern, "*")
	first, last := segments[0], segments[len(segments)-1]

	if !strings.HasPrefix(actionID, first) {
		return false
	}
	if !strings.HasSuffix(actionID, last) {
		return false
	}
	if len(actionID) < len(first)+len(last) {
		return false
	}

	remainder := actionID[len(first) : len(actionID)-len(last)]
	for _, mid := range segments[1 : len(segments)-1] {
		if mid == "" {
			continue
		}
		idx := strings.Index(remainder, mid)
		if idx == -1 {
			return false
		}
		remainder = remainder[idx+len(mid):]
	}
	return true
}
