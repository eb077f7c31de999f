// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build !linux || !cgo

package identity

import "fmt"

// netgroupTriple mirrors the cgo-backed variant's shape so
// identity.go's soft-fail plumbing doesn't need a build-tag switch of
// its own.
type netgroupTriple struct {
	host, user, domain string
}

// resolveNetgroup has no portable non-cgo implementation: netgroups
// are resolved through glibc's NSS netgroup database, which has no
// pure-Go binding. Binaries built without cgo (or on non-Linux
// platforms) treat every netgroup as empty; callers log this as a
// soft failure, per spec 4.1's "falls back to treating the set as
// empty" rule for OS-lookup errors.
func resolveNetgroup(name string) ([]netgroupTriple, error) {
	return nil, fmt.Errorf("netgroup resolution requires cgo on linux (looked up %q)", name)
}
