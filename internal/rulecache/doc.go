// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package rulecache is an invented enrichment, not a spec'd
// component: a content-addressed cache of parsed rule stores, so a
// StoreSet rebuild triggered by internal/monitor can skip re-parsing
// `.pkla`/`.policy.yaml` files whose directory contents are
// unchanged.
//
// The cache key is a BLAKE3 fingerprint over each directory's sorted
// (filename, size, mtime) listing. The cached value is a CBOR-encoded
// snapshot of the directory's parsed rules, zstd-compressed on disk.
// A cache miss or a corrupted entry falls back to a normal parse —
// this cache is an optimization, never a correctness dependency, and
// its absence (an unwritable or missing cache directory) degrades
// silently to always-reparse behavior.
package rulecache
