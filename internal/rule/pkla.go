// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package rule

import (
	"fmt"
	"strings"

	"gopkg.in/ini.v1"
)

// constraintKeyPrefix names the detail-constraint key syntax this
// rewrite settled on for `.pkla` files: spec 6 documents Identity,
// Action, and ResultAny/Inactive/Active but leaves the wire syntax for
// per-rule detail constraints (spec 3's "optionally, constraints on
// detail key/value pairs") undecided. "Constraint.<key>=<value>"
// mirrors the flat key=value style the rest of the format already
// uses, rather than inventing a nested section or list syntax. See
// DESIGN.md for the open-question record.
const constraintKeyPrefix = "Constraint."

// parsePklaFile parses one `.pkla` file into rules, one per INI
// section in file order. A section missing Identity or Action is
// skipped (it cannot match anything); a section with an unparseable
// Result* value is skipped. Inline comments are not recognized, since
// ';' separates Identity and Action list entries.
func parsePklaFile(path string) ([]Rule, error) {
	f, err := ini.LoadSources(ini.LoadOptions{IgnoreInlineComment: true}, path)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}

	var rules []Rule
	for _, section := range f.Sections() {
		if section.Name() == ini.DefaultSection {
			continue
		}
		rule, ok := ruleFromSection(path, section)
		if ok {
			rules = append(rules, rule)
		}
	}
	return rules, nil
}

func ruleFromSection(path string, section *ini.Section) (Rule, bool) {
	identities := canonicalizeIdentityList(splitIdentityOrActionList(section.Key("Identity").String()))
	actionGlobs := splitIdentityOrActionList(section.Key("Action").String())
	if len(identities) == 0 || len(actionGlobs) == 0 {
		return Rule{}, false
	}

	any, ok := parseResultKeyword(section.Key("ResultAny").String())
	if !ok {
		return Rule{}, false
	}
	inactive, ok := parseResultKeyword(section.Key("ResultInactive").String())
	if !ok {
		return Rule{}, false
	}
	active, ok := parseResultKeyword(section.Key("ResultActive").String())
	if !ok {
		return Rule{}, false
	}

	constraints := map[string]string{}
	for _, key := range section.Keys() {
		if name, isConstraint := strings.CutPrefix(key.Name(), constraintKeyPrefix); isConstraint {
			constraints[name] = key.String()
		}
	}
	if len(constraints) == 0 {
		constraints = nil
	}

	return Rule{
		Source:      fmt.Sprintf("%s[%s]", path, section.Name()),
		Identities:  identities,
		ActionGlobs: actionGlobs,
		Constraints: constraints,
		Any:         any,
		Inactive:    inactive,
		Active:      active,
	}, true
}
