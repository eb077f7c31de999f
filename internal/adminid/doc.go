// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package adminid implements the admin-identity resolver (spec 4.6):
// turning the configured AdminIdentities list into a concrete,
// ordered list of unix-user identities, expanding groups and
// netgroups along the way.
package adminid
