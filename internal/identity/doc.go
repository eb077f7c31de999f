// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package identity implements the tagged-variant Identity type used
// throughout the local authorization authority: unix-user,
// unix-group, and unix-netgroup principals, plus the OS-backed
// expansion operations (group membership, group/netgroup
// membership-to-user resolution) that the admin-identity resolver and
// decision engine rely on.
//
// Identity values are immutable once constructed and round-trip
// through a canonical "<kind>:<value>" string form. Equality is
// structural (Kind and Value both match).
package identity
