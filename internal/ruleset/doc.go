// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package ruleset implements the StoreSet (C3): deterministic
// ordering and aggregation of internal/rule.Store instances across
// multiple configured top-level directories.
package ruleset
