// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package identity

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidIdentity is returned when a string does not parse as one
// of the three canonical identity forms.
var ErrInvalidIdentity = errors.New("invalid identity string")

// Kind distinguishes the three identity variants.
type Kind int

const (
	// UnixUser identifies a specific POSIX user, by name or uid.
	UnixUser Kind = iota
	// UnixGroup identifies a POSIX group, by name or gid.
	UnixGroup
	// UnixNetgroup identifies a netgroup, by name.
	UnixNetgroup
)

// String returns the canonical kind prefix ("unix-user", "unix-group",
// "unix-netgroup").
func (k Kind) String() string {
	switch k {
	case UnixUser:
		return "unix-user"
	case UnixGroup:
		return "unix-group"
	case UnixNetgroup:
		return "unix-netgroup"
	default:
		return "unknown"
	}
}

// Identity is an immutable tagged-variant principal: a unix-user,
// unix-group, or unix-netgroup. The zero value is not a valid
// identity; construct one with Parse, NewUser, NewGroup, or
// NewNetgroup.
//
// Value holds either a name or a decimal uid/gid exactly as supplied —
// Identity does not validate names against the OS at construction
// time (spec: "Names are not validated against the OS at parse
// time").
type Identity struct {
	kind  Kind
	value string
}

// NewUser constructs a unix-user identity from a name or decimal uid.
func NewUser(nameOrUID string) Identity { return Identity{kind: UnixUser, value: nameOrUID} }

// NewGroup constructs a unix-group identity from a name or decimal gid.
func NewGroup(nameOrGID string) Identity { return Identity{kind: UnixGroup, value: nameOrGID} }

// NewNetgroup constructs a unix-netgroup identity from a name.
func NewNetgroup(name string) Identity { return Identity{kind: UnixNetgroup, value: name} }

// Kind returns the identity's variant.
func (i Identity) Kind() Kind { return i.kind }

// Value returns the raw name-or-id string the identity was
// constructed with.
func (i Identity) Value() string { return i.value }

// IsZero reports whether i is the uninitialized zero value.
func (i Identity) IsZero() bool { return i.value == "" }

// String returns the canonical "<kind>:<value>" form.
func (i Identity) String() string {
	if i.IsZero() {
		return ""
	}
	return i.kind.String() + ":" + i.value
}

// Equal reports whether two identities are structurally identical.
func (i Identity) Equal(other Identity) bool {
	return i.kind == other.kind && i.value == other.value
}

// Parse parses a canonical "<kind>:<value>" identity string. Accepts
// only the three canonical forms ("unix-user:", "unix-group:",
// "unix-netgroup:"); anything else is ErrInvalidIdentity.
func Parse(s string) (Identity, error) {
	kindStr, value, ok := strings.Cut(s, ":")
	if !ok || value == "" {
		return Identity{}, fmt.Errorf("%w: %q", ErrInvalidIdentity, s)
	}

	switch kindStr {
	case "unix-user":
		return NewUser(value), nil
	case "unix-group":
		return NewGroup(value), nil
	case "unix-netgroup":
		return NewNetgroup(value), nil
	default:
		return Identity{}, fmt.Errorf("%w: %q", ErrInvalidIdentity, s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (i Identity) MarshalText() ([]byte, error) {
	if i.IsZero() {
		return nil, fmt.Errorf("cannot marshal zero Identity")
	}
	return []byte(i.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (i *Identity) UnmarshalText(data []byte) error {
	parsed, err := Parse(string(data))
	if err != nil {
		return err
	}
	*i = parsed
	return nil
}
