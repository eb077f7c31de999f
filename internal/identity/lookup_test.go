// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package identity

import (
	"io"
	"log/slog"
	"os/user"
	"testing"
)

func discardLogger(t *testing.T) *slog.Logger {
	t.Helper()
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestGroupsOfUserWrongKindReturnsNil(t *testing.T) {
	if got := GroupsOfUser(discardLogger(t), NewGroup("wheel")); got != nil {
		t.Errorf("GroupsOfUser on a unix-group identity should return nil, got %v", got)
	}
}

func TestUsersInGroupWrongKindReturnsNil(t *testing.T) {
	if got := UsersInGroup(discardLogger(t), NewUser("john"), true); got != nil {
		t.Errorf("UsersInGroup on a unix-user identity should return nil, got %v", got)
	}
}

func TestUsersInNetgroupWrongKindReturnsNil(t *testing.T) {
	if got := UsersInNetgroup(discardLogger(t), NewUser("john"), true); got != nil {
		t.Errorf("UsersInNetgroup on a unix-user identity should return nil, got %v", got)
	}
}

func TestGroupsOfUserUnknownUserIsSoftFailure(t *testing.T) {
	got := GroupsOfUser(discardLogger(t), NewUser("no-such-user-xyzzy"))
	if got != nil {
		t.Errorf("GroupsOfUser for an unknown user should return nil, got %v", got)
	}
}

func TestGroupsOfUserCurrentProcessUser(t *testing.T) {
	current, err := user.Current()
	if err != nil {
		t.Skipf("user.Current unavailable in this environment: %v", err)
	}

	groups := GroupsOfUser(discardLogger(t), NewUser(current.Username))
	primaryGroup, err := user.LookupGroupId(current.Gid)
	if err != nil {
		t.Skipf("primary group lookup unavailable: %v", err)
	}

	found := false
	for _, g := range groups {
		if g.Kind() == UnixGroup && g.Value() == primaryGroup.Name {
			found = true
		}
	}
	if !found {
		t.Errorf("GroupsOfUser(%q) = %v, want it to include primary group %q", current.Username, groups, primaryGroup.Name)
	}
}

func TestUsersInGroupExcludesRootUnlessRequested(t *testing.T) {
	rootGroup, err := user.LookupGroup("root")
	if err != nil {
		t.Skipf("root group unavailable in this environment: %v", err)
	}

	withoutRoot := UsersInGroup(discardLogger(t), NewGroup(rootGroup.Name), false)
	for _, u := range withoutRoot {
		if u.Value() == rootUsername {
			t.Errorf("UsersInGroup(includeRoot=false) should exclude root, got %v", withoutRoot)
		}
	}
}
