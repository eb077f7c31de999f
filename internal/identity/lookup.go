// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package identity

import (
	"log/slog"
	"os/user"
	"strconv"
)

// rootUsername is excluded from expansion results unless includeRoot
// is set, per spec 4.1's "unless include_root is set" rule on
// users_in_group and users_in_netgroup.
const rootUsername = "root"

// GroupsOfUser resolves the full set of groups (primary and
// supplementary) a unix-user belongs to. u must be a UnixUser
// identity; any other kind returns nil.
//
// The result preserves the order GroupIds returns, which is the order
// NSS/passwd lists a user's supplementary groups in, per spec 4.6's
// ordering contract. Callers that fold group membership into a
// last-match-wins decision rely on this order.
//
// OS lookup failure (unknown user, unreadable databases) is a soft
// failure: it is logged as a warning and an empty slice is returned,
// rather than propagated as an error, since a missing identity should
// read as "no groups" rather than abort the surrounding decision.
func GroupsOfUser(logger *slog.Logger, u Identity) []Identity {
	if u.Kind() != UnixUser {
		return nil
	}

	usr, err := lookupUser(u.Value())
	if err != nil {
		logger.Warn("groups_of_user: user lookup failed", "user", u.Value(), "error", err)
		return nil
	}

	gids, err := usr.GroupIds()
	if err != nil {
		logger.Warn("groups_of_user: group id lookup failed", "user", u.Value(), "error", err)
		return nil
	}

	result := make([]Identity, 0, len(gids))
	seen := make(map[string]bool, len(gids))
	for _, gid := range gids {
		grp, err := user.LookupGroupId(gid)
		if err != nil {
			logger.Warn("groups_of_user: group name lookup failed", "user", u.Value(), "gid", gid, "error", err)
			continue
		}
		if seen[grp.Name] {
			continue
		}
		seen[grp.Name] = true
		result = append(result, NewGroup(grp.Name))
	}
	return result
}

// UsersInGroup resolves the set of unix-users that belong to a group,
// by primary or supplementary membership. g must be a UnixGroup
// identity. The literal "root" user is excluded unless includeRoot is
// set.
//
// The result preserves /etc/group's supplementary member order,
// followed by /etc/passwd's primary-member order, per spec 4.6's "the
// order returned by the OS expander" contract.
//
// OS lookup failure is a soft failure: logged as a warning, empty
// result returned.
func UsersInGroup(logger *slog.Logger, g Identity, includeRoot bool) []Identity {
	if g.Kind() != UnixGroup {
		return nil
	}

	grp, err := lookupGroup(g.Value())
	if err != nil {
		logger.Warn("users_in_group: group lookup failed", "group", g.Value(), "error", err)
		return nil
	}

	supplementary, err := groupMembers(grp.Gid)
	if err != nil {
		logger.Warn("users_in_group: reading /etc/group failed", "group", g.Value(), "error", err)
	}
	primary, err := primaryGroupMembers(grp.Gid)
	if err != nil {
		logger.Warn("users_in_group: reading /etc/passwd failed", "group", g.Value(), "error", err)
	}

	seen := make(map[string]bool, len(supplementary)+len(primary))
	var result []Identity
	for _, name := range append(supplementary, primary...) {
		if name == "" || seen[name] {
			continue
		}
		if name == rootUsername && !includeRoot {
			continue
		}
		seen[name] = true
		result = append(result, NewUser(name))
	}
	return result
}

// UsersInNetgroup resolves the set of unix-users named as members of
// a netgroup. n must be a UnixNetgroup identity. Host and domain
// fields of each (host, user, domain) triple are ignored, per spec
// 4.1's documented simplification; entries with an empty or "-" user
// field (meaning "any user", or "no user") are skipped rather than
// expanded, since this authority has no notion of "any user" as a
// concrete identity. The literal "root" user is excluded unless
// includeRoot is set.
//
// The result preserves resolveNetgroup's triple order, per spec 4.6's
// "the order returned by the OS expander" contract.
func UsersInNetgroup(logger *slog.Logger, n Identity, includeRoot bool) []Identity {
	if n.Kind() != UnixNetgroup {
		return nil
	}

	triples, err := resolveNetgroup(n.Value())
	if err != nil {
		logger.Warn("users_in_netgroup: netgroup lookup failed", "netgroup", n.Value(), "error", err)
		return nil
	}

	seen := make(map[string]bool, len(triples))
	var result []Identity
	for _, t := range triples {
		if t.user == "" || t.user == "-" || seen[t.user] {
			continue
		}
		if t.user == rootUsername && !includeRoot {
			continue
		}
		seen[t.user] = true
		result = append(result, NewUser(t.user))
	}
	return result
}

// lookupUser resolves a unix-user value (name or decimal uid) to its
// passwd entry, trying name lookup first since most values observed
// in practice are names.
func lookupUser(nameOrUID string) (*user.User, error) {
	if usr, err := user.Lookup(nameOrUID); err == nil {
		return usr, nil
	}
	if _, err := strconv.Atoi(nameOrUID); err == nil {
		return user.LookupId(nameOrUID)
	}
	return user.Lookup(nameOrUID)
}

// lookupGroup resolves a unix-group value (name or decimal gid) to
// its group entry, trying name lookup first.
func lookupGroup(nameOrGID string) (*user.Group, error) {
	if grp, err := user.LookupGroup(nameOrGID); err == nil {
		return grp, nil
	}
	if _, err := strconv.Atoi(nameOrGID); err == nil {
		return user.LookupGroupId(nameOrGID)
	}
	return user.LookupGroup(nameOrGID)
}
