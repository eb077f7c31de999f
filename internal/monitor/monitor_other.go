// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build !linux

package monitor

import (
	"log/slog"

	"github.com/google/uuid"
)

// OnChange is called after the monitor signals a rebuild. traceID
// identifies the rebuild cycle in audit logs.
type OnChange func(traceID uuid.UUID)

// Monitor is a no-op on non-Linux platforms: this authority's change
// monitor is inotify-specific (spec 4.4 names no portable
// alternative), so builds outside Linux simply never observe
// filesystem changes and rely on process restart for invalidation.
type Monitor struct{}

// Start logs that filesystem watching is unavailable and returns a
// Monitor whose Stop is a no-op.
func Start(logger *slog.Logger, topLevelPaths []string, onChange OnChange) (*Monitor, error) {
	logger.Warn("monitor: inotify unavailable on this platform, rule changes require a process restart")
	return &Monitor{}, nil
}

// Stop is a no-op.
func (m *Monitor) Stop() {}
