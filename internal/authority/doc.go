// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package authority implements the decision engine (C5): the
// default → groups → user resolution algorithm across an ordered
// internal/ruleset.StoreSet, plus the Authority type that owns a
// StoreSet's lifecycle (init, construct, finalize) and the
// filesystem monitors that trigger its rebuilds.
package authority
