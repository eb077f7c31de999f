// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package monitor implements the change monitor (C4): an
// inotify-backed watch on each configured top-level path that
// triggers a coarse "something changed, rebuild" notification,
// debounced so a burst of filesystem events collapses into one
// rebuild.
package monitor
