// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package adminid

import (
	"errors"
	"log/slog"

	"github.com/openEuler-BaseService/polkit-pkla-compat/internal/config"
	"github.com/openEuler-BaseService/polkit-pkla-compat/internal/identity"
)

const (
	configSection = "Configuration"
	configKey     = "AdminIdentities"
)

// rootFallback is returned whenever resolution yields no identities at
// all (spec 4.6 step 4).
var rootFallback = []identity.Identity{identity.NewUser("0")}

// Resolve implements the admin-identity resolver (C6): read
// Configuration.AdminIdentities from src, parse and expand each entry,
// and fall back to [unix-user:0] if the result is empty.
func Resolve(logger *slog.Logger, src config.Source) []identity.Identity {
	raw, err := src.GetStringList(configSection, configKey)
	if err != nil {
		if errors.Is(err, config.ErrKeyAbsent) {
			logger.Debug("adminid: AdminIdentities not configured, using root fallback")
		} else {
			logger.Warn("adminid: reading AdminIdentities failed, using root fallback", "error", err)
		}
		return rootFallback
	}

	var resolved []identity.Identity
	for _, entry := range raw {
		id, err := identity.Parse(entry)
		if err != nil {
			logger.Warn("adminid: unparseable identity, skipping", "entry", entry, "error", err)
			continue
		}

		switch id.Kind() {
		case identity.UnixUser:
			resolved = append(resolved, id)
		case identity.UnixGroup:
			resolved = append(resolved, identity.UsersInGroup(logger, id, false)...)
		case identity.UnixNetgroup:
			resolved = append(resolved, identity.UsersInNetgroup(logger, id, false)...)
		default:
			logger.Warn("adminid: unsupported identity kind, skipping", "entry", entry)
		}
	}

	if len(resolved) == 0 {
		return rootFallback
	}
	return resolved
}
