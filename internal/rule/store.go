// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package rule

import (
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/openEuler-BaseService/polkit-pkla-compat/internal/identity"
)

// RuleFileExtension is the fixed extension AuthorizationStore
// enumerates, per spec 4.2: "always .pkla".
const RuleFileExtension = ".pkla"

// PolicyOverlayExtension names this rewrite's enrichment format: a
// YAML rule overlay loaded alongside `.pkla` files in the same
// directory, after them, so it participates in the same
// last-match-wins ordering.
const PolicyOverlayExtension = ".policy.yaml"

// Store is an AuthorizationStore (C2): the parsed, ordered rule list
// of a single directory. A Store never re-reads its files after
// construction; invalidation is external.
type Store struct {
	dir   string
	rules []Rule
}

// Dir returns the directory this store was built from.
func (s *Store) Dir() string { return s.dir }

// Len returns the number of parsed rules, for diagnostics.
func (s *Store) Len() int { return len(s.rules) }

// Rules returns the parsed rule list in file/in-file order, for
// internal/rulecache to serialize into its snapshot cache.
func (s *Store) Rules() []Rule { return s.rules }

// FromCachedRules reconstructs a Store from a previously-serialized
// rule list, skipping the filesystem read and parse entirely. Used by
// internal/rulecache on a cache hit; the caller is responsible for
// having verified the cache entry's fingerprint still matches dir's
// current contents.
func FromCachedRules(dir string, rules []Rule) *Store {
	return &Store{dir: dir, rules: rules}
}

// Open constructs a Store from dir: it enumerates `.pkla` files in
// lexicographic order, then `.policy.yaml` overlay files in
// lexicographic order, parsing each into rules appended in file
// order and in-file order.
//
// Open never fails: an empty or unreadable directory yields an empty
// store (spec 4.2, "A store never fails its constructor"). Malformed
// files are logged and skipped; a malformed rule inside an otherwise
// valid file is skipped and the rest of the file is still parsed.
func Open(logger *slog.Logger, dir string) *Store {
	store := &Store{dir: dir}

	entries, err := os.ReadDir(dir)
	if err != nil {
		logger.Warn("rule store: directory unreadable, treating as empty", "dir", dir, "error", err)
		return store
	}

	var pklaFiles, overlayFiles []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		switch {
		case strings.HasSuffix(name, RuleFileExtension):
			pklaFiles = append(pklaFiles, name)
		case strings.HasSuffix(name, PolicyOverlayExtension):
			overlayFiles = append(overlayFiles, name)
		}
	}
	sort.Strings(pklaFiles)
	sort.Strings(overlayFiles)

	for _, name := range pklaFiles {
		path := filepath.Join(dir, name)
		rules, err := parsePklaFile(path)
		if err != nil {
			logger.Warn("rule store: malformed rule file, skipping", "file", path, "error", err)
			continue
		}
		store.rules = append(store.rules, rules...)
	}
	for _, name := range overlayFiles {
		path := filepath.Join(dir, name)
		rules, err := parsePolicyOverlayFile(path)
		if err != nil {
			logger.Warn("rule store: malformed policy overlay, skipping", "file", path, "error", err)
			continue
		}
		store.rules = append(store.rules, rules...)
	}

	return store
}

// LookupResult is the (any, inactive, active) triple a store
// contributes for one matching probe/action/details combination.
type LookupResult struct {
	Any      Outcome
	Inactive Outcome
	Active   Outcome
}

// Lookup implements spec 4.2's lookup operation. probe is the
// canonical string of a concrete identity, or "" for the
// decision engine's defaults-pass probe. matched reports whether any
// rule matched at all; callers treat a false matched as "no
// opinion", not as all-Unknown-but-present.
func (s *Store) Lookup(probe string, actionID string, details map[string]string) (result LookupResult, matched bool) {
	for _, r := range s.rules {
		if !r.matches(probe, actionID, details) {
			continue
		}
		result = LookupResult{Any: r.Any, Inactive: r.Inactive, Active: r.Active}
		matched = true
	}
	return result, matched
}

// splitIdentityOrActionList splits a `.pkla`-style list on ";" or
// ",", trimming whitespace and dropping empty entries.
func splitIdentityOrActionList(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool { return r == ';' || r == ',' })
	result := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f != "" {
			result = append(result, f)
		}
	}
	return result
}

// canonicalizeIdentityList parses each entry of a split identity list
// as an Identity, except the literal "default" token, which passes
// through unparsed (it has no OS meaning, only a matching meaning).
// Malformed entries are dropped; the caller logs the file-level
// outcome.
func canonicalizeIdentityList(raw []string) []string {
	result := make([]string, 0, len(raw))
	for _, entry := range raw {
		if entry == defaultIdentityToken {
			result = append(result, entry)
			continue
		}
		id, err := identity.Parse(entry)
		if err != nil {
			continue
		}
		result = append(result, id.String())
	}
	return result
}
