// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config defines the narrow configuration-source interface the
// admin-identity resolver (internal/adminid) consumes, plus the
// production implementation backed by `localauthority.conf.d/*.conf`
// INI files.
package config
