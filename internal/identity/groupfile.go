// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package identity

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// os/user exposes forward lookups (user -> groups, via GroupIds) but
// no reverse lookup (group -> member users): neither the cgo nor the
// pure-Go path of the stdlib package surfaces a group's member list.
// users_in_group needs exactly that reverse direction, so it reads
// /etc/group and /etc/passwd directly, the same flat-file format
// os/user's own pure-Go fallback parses internally.

// groupMembers returns the explicit (supplementary) member list of
// the group with the given gid, read from /etc/group.
func groupMembers(gid string) ([]string, error) {
	f, err := os.Open("/etc/group")
	if err != nil {
		return nil, fmt.Errorf("opening /etc/group: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, ":")
		if len(fields) < 4 || fields[2] != gid {
			continue
		}
		if fields[3] == "" {
			return nil, nil
		}
		return strings.Split(fields[3], ","), nil
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading /etc/group: %w", err)
	}
	return nil, nil
}

// primaryGroupMembers returns usernames whose primary gid (the fourth
// field of /etc/passwd) matches.
func primaryGroupMembers(gid string) ([]string, error) {
	f, err := os.Open("/etc/passwd")
	if err != nil {
		return nil, fmt.Errorf("opening /etc/passwd: %w", err)
	}
	defer f.Close()

	var members []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, ":")
		if len(fields) < 4 || fields[3] != gid {
			continue
		}
		members = append(members, fields[0])
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading /etc/passwd: %w", err)
	}
	return members, nil
}
