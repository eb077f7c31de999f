// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package rule implements the authorization-rule store (C2): parsing
// `.pkla` rule files and the per-store lookup that the decision engine
// (internal/authority) drives across an ordered StoreSet
// (internal/ruleset).
//
// A Store is constructed once from a directory and never re-reads its
// files; invalidation is external, driven by internal/monitor through
// internal/ruleset's rebuild path.
package rule
