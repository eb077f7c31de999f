// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package authority

import (
	"log/slog"

	"github.com/openEuler-BaseService/polkit-pkla-compat/internal/identity"
	"github.com/openEuler-BaseService/polkit-pkla-compat/internal/rule"
	"github.com/openEuler-BaseService/polkit-pkla-compat/internal/ruleset"
)

// Decide implements spec 4.5's decision engine: the
// default → groups → user resolution across every store in set, in
// order.
//
// implicit is the host-supplied starting value (the library form the
// spec's open question resolves in favor of — see DESIGN.md). user
// must be a unix-user identity; its groups are resolved via
// identity.GroupsOfUser for the groups pass.
func Decide(
	logger *slog.Logger,
	set *ruleset.StoreSet,
	user identity.Identity,
	subjectIsLocal bool,
	subjectIsActive bool,
	actionID string,
	details map[string]string,
	implicit rule.Outcome,
) rule.Outcome {
	return EvaluateProbes(set, probesFor(logger, user), subjectIsLocal, subjectIsActive, actionID, details, implicit)
}

// EvaluateProbes runs the core of spec 4.5's algorithm over an
// already-built probe sequence: for each probe, in order, iterate
// every store in order and let non-Unknown picks overwrite ret. Split
// out from Decide so the override/last-match-wins logic can be tested
// without depending on real OS group lookups to build the probe list.
func EvaluateProbes(
	set *ruleset.StoreSet,
	probes []string,
	subjectIsLocal bool,
	subjectIsActive bool,
	actionID string,
	details map[string]string,
	implicit rule.Outcome,
) rule.Outcome {
	ret := implicit

	for _, probe := range probes {
		for _, store := range set.Stores() {
			result, matched := store.Lookup(probe, actionID, details)
			if !matched {
				continue
			}
			if pick := selectSlot(result, subjectIsLocal, subjectIsActive); pick != rule.Unknown {
				ret = pick
			}
		}
	}

	return ret
}

// probesFor builds the three-pass probe sequence: the defaults probe
// (empty string, matching rules tagged "default"), then one probe per
// group user belongs to (best-effort: a group-lookup failure yields
// no group probes, per spec 4.1's "fails soft" contract), then the
// user probe itself.
func probesFor(logger *slog.Logger, user identity.Identity) []string {
	probes := make([]string, 0, 2+4)
	probes = append(probes, "")
	for _, g := range identity.GroupsOfUser(logger, user) {
		probes = append(probes, g.String())
	}
	probes = append(probes, user.String())
	return probes
}

// selectSlot implements spec 4.5's per-rule locality/activity
// selection: active only when the subject is both local and active,
// inactive when local but not active, any otherwise (including every
// non-local subject, active or not).
func selectSlot(result rule.LookupResult, local, active bool) rule.Outcome {
	switch {
	case local && active:
		return result.Active
	case local && !active:
		return result.Inactive
	default:
		return result.Any
	}
}
