// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package rulecache

import (
	"log/slog"

	"github.com/openEuler-BaseService/polkit-pkla-compat/internal/rule"
	"github.com/openEuler-BaseService/polkit-pkla-compat/internal/ruleset"
)

// BuildStoreSet enumerates and orders directories exactly as
// ruleset.Build does, but opens each one through cache first, only
// falling back to rule.Open (and then populating the cache) on a
// miss. A nil cache behaves identically to ruleset.Build.
func BuildStoreSet(logger *slog.Logger, cache *Cache, topLevelPaths []string) *ruleset.StoreSet {
	dirs := ruleset.EnumerateOrderedDirs(logger, topLevelPaths)
	return ruleset.BuildFromDirs(dirs, func(dir string) *rule.Store {
		if cache == nil {
			return rule.Open(logger, dir)
		}
		if store, ok := cache.Load(logger, dir); ok {
			return store
		}
		store := rule.Open(logger, dir)
		cache.Save(logger, dir, store)
		return store
	})
}
