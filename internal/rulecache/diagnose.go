// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package rulecache

import (
	"log/slog"

	"github.com/openEuler-BaseService/polkit-pkla-compat/internal/rule"
	"github.com/openEuler-BaseService/polkit-pkla-compat/internal/ruleset"
)

// StoreDiagnostic reports one store's place in the ordered StoreSet
// alongside its cache behavior, for cmd/localauthority-doctor.
type StoreDiagnostic struct {
	SortKey     string
	Dir         string
	RuleCount   int
	Fingerprint string
	CacheHit    bool
}

// Diagnose builds a StoreSet exactly as BuildStoreSet does, but returns
// per-directory diagnostics instead of the StoreSet itself: whether the
// parse cache was hit, and the fingerprint it was keyed on. A nil cache
// reports every directory as a miss (there is nothing to hit).
func Diagnose(logger *slog.Logger, cache *Cache, topLevelPaths []string) []StoreDiagnostic {
	dirs := ruleset.EnumerateOrderedDirs(logger, topLevelPaths)
	diagnostics := make([]StoreDiagnostic, 0, len(dirs))

	for _, od := range dirs {
		fingerprint, _ := Fingerprint(od.Dir)

		var store *rule.Store
		hit := false
		if cache != nil {
			if s, ok := cache.Load(logger, od.Dir); ok {
				store, hit = s, true
			}
		}
		if store == nil {
			store = rule.Open(logger, od.Dir)
			if cache != nil {
				cache.Save(logger, od.Dir, store)
			}
		}

		diagnostics = append(diagnostics, StoreDiagnostic{
			SortKey:     od.SortKey,
			Dir:         od.Dir,
			RuleCount:   store.Len(),
			Fingerprint: fingerprint,
			CacheHit:    hit,
		})
	}

	return diagnostics
}
