// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import "errors"

// ErrKeyAbsent distinguishes "the key was never set" from any other
// lookup failure. Source implementations return this via errors.Is so
// callers such as internal/adminid can demote the log level for an
// absent key without special-casing the message text.
var ErrKeyAbsent = errors.New("config: key absent")

// Source is the narrow interface the admin-identity resolver consumes
// (spec 4.7). It deliberately says nothing about file formats: the
// engine only ever needs one string list out of one section/key pair.
type Source interface {
	// GetStringList returns the semicolon-or-comma-split values under
	// section/key. Returns an error wrapping ErrKeyAbsent when the
	// section or key does not exist; any other error indicates a
	// malformed value.
	GetStringList(section, key string) ([]string, error)
}
