// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ruleset

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/openEuler-BaseService/polkit-pkla-compat/internal/rule"
)

// entry is one (sort_key, directory, Store) triple, per spec 3's
// StoreSet definition.
type entry struct {
	sortKey string
	dir     string
	store   *rule.Store
}

// StoreSet is the ordered aggregation of stores across all configured
// top-level paths (C3). It is immutable once built: rebuilding means
// constructing a new StoreSet and swapping it in, never mutating one
// in place (internal/authority owns that swap, keeping rebuilds
// atomic from a querier's perspective).
type StoreSet struct {
	entries []entry
}

// Len returns the number of stores in the set.
func (s *StoreSet) Len() int { return len(s.entries) }

// Stores returns the ordered list of stores, for the decision engine
// to iterate.
func (s *StoreSet) Stores() []*rule.Store {
	stores := make([]*rule.Store, len(s.entries))
	for i, e := range s.entries {
		stores[i] = e.store
	}
	return stores
}

// OrderedDir is one sorted StoreSet slot before its Store has been
// opened: the directory path and the sort key that placed it there.
// Exported so internal/rulecache can drive its own, cache-aware open
// step over the same deterministic ordering.
type OrderedDir struct {
	SortKey string
	Dir     string
}

// EnumerateOrderedDirs implements spec 4.3's enumeration and ordering
// steps (1-3) without opening any store:
//
//  1. enumerate direct subdirectories of each top-level path;
//  2. synthesize sort key "<subdir_name>-<toplevel_index>" for each;
//  3. sort the combined list ascending, byte-wise lexicographic.
//
// Enumeration errors on one top-level are logged and that top-level
// is skipped; other top-levels still contribute.
func EnumerateOrderedDirs(logger *slog.Logger, topLevelPaths []string) []OrderedDir {
	var dirs []OrderedDir
	for index, topLevel := range topLevelPaths {
		subdirs, err := os.ReadDir(topLevel)
		if err != nil {
			logger.Warn("ruleset: top-level path unreadable, skipping", "path", topLevel, "error", err)
			continue
		}
		for _, sub := range subdirs {
			if !sub.IsDir() {
				continue
			}
			dirs = append(dirs, OrderedDir{
				SortKey: fmt.Sprintf("%s-%d", sub.Name(), index),
				Dir:     filepath.Join(topLevel, sub.Name()),
			})
		}
	}
	sort.Slice(dirs, func(i, j int) bool { return dirs[i].SortKey < dirs[j].SortKey })
	return dirs
}

// BuildFromDirs constructs a StoreSet from an already-ordered
// directory list (step 4 of spec 4.3), using open to produce each
// directory's Store. Build uses rule.Open directly; internal/rulecache
// passes an open function that consults its snapshot cache first.
func BuildFromDirs(dirs []OrderedDir, open func(dir string) *rule.Store) *StoreSet {
	set := &StoreSet{entries: make([]entry, len(dirs))}
	for i, d := range dirs {
		set.entries[i] = entry{sortKey: d.SortKey, dir: d.Dir, store: open(d.Dir)}
	}
	return set
}

// Build constructs a StoreSet from the configured top-level paths, in
// order, implementing spec 4.3 in full. Build never fails: an
// entirely-unusable configuration yields an empty StoreSet, which the
// decision engine treats as "every query returns the input implicit"
// (spec 8's boundary behavior).
func Build(logger *slog.Logger, topLevelPaths []string) *StoreSet {
	dirs := EnumerateOrderedDirs(logger, topLevelPaths)
	return BuildFromDirs(dirs, func(dir string) *rule.Store { return rule.Open(logger, dir) })
}
