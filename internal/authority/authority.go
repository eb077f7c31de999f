// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package authority

import (
	"log/slog"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/openEuler-BaseService/polkit-pkla-compat/internal/identity"
	"github.com/openEuler-BaseService/polkit-pkla-compat/internal/monitor"
	"github.com/openEuler-BaseService/polkit-pkla-compat/internal/rule"
	"github.com/openEuler-BaseService/polkit-pkla-compat/internal/rulecache"
	"github.com/openEuler-BaseService/polkit-pkla-compat/internal/ruleset"
)

// Authority owns the StoreSet, the configured top-level paths, and
// (once constructed) the filesystem monitors that trigger rebuilds
// (C5's owner, spec 3). Its lifecycle is init -> construct ->
// finalize: New performs init, Construct builds the initial StoreSet
// and starts monitoring, Finalize stops the monitors and releases the
// stores. Between Construct and Finalize it is safe to call
// CheckAuthorization concurrently from multiple goroutines.
type Authority struct {
	logger        *slog.Logger
	topLevelPaths []string
	cache         *rulecache.Cache

	set     atomic.Pointer[ruleset.StoreSet]
	monitor *monitor.Monitor
}

// New performs the init step: it records the configured top-level
// paths but builds nothing yet. cache may be nil to disable the
// rule-parse cache entirely.
func New(logger *slog.Logger, topLevelPaths []string, cache *rulecache.Cache) *Authority {
	return &Authority{logger: logger, topLevelPaths: topLevelPaths, cache: cache}
}

// Construct performs the construct step: builds the initial StoreSet
// and starts a change monitor that rebuilds it on any filesystem
// event. Construct never fails (spec 4.3/4.2's "never fails its
// constructor" guarantee extends up through the Authority); a
// platform or permission problem starting the monitor is logged and
// leaves the Authority running without live invalidation.
func (a *Authority) Construct() {
	a.rebuild(uuid.New())

	mon, err := monitor.Start(a.logger, a.topLevelPaths, a.rebuild)
	if err != nil {
		a.logger.Warn("authority: change monitor unavailable, rule changes require a restart", "error", err)
		return
	}
	a.monitor = mon
}

// Finalize performs the finalize step: stops the change monitor and
// releases the StoreSet. The Authority must not be queried after
// Finalize returns.
func (a *Authority) Finalize() {
	if a.monitor != nil {
		a.monitor.Stop()
		a.monitor = nil
	}
	a.set.Store(nil)
}

// rebuild is the monitor's OnChange callback, and is also called
// directly once during Construct to build the initial StoreSet. It
// implements spec 4.4's atomic teardown-then-rebuild: the new
// StoreSet is built in full before being published, so a concurrent
// query sees either the entirely-old or entirely-new set, never a
// mix.
func (a *Authority) rebuild(traceID uuid.UUID) {
	a.logger.Debug("authority: rebuilding store set", "trace_id", traceID)
	newSet := rulecache.BuildStoreSet(a.logger, a.cache, a.topLevelPaths)
	a.set.Store(newSet)
	a.logger.Info("authority: store set rebuilt", "trace_id", traceID, "stores", newSet.Len())
}

// CheckAuthorization is the engine's first entry point (C5): the
// default -> groups -> user resolution over the current StoreSet. It
// is safe to call concurrently with rebuilds; it always observes a
// complete StoreSet snapshot.
func (a *Authority) CheckAuthorization(
	user identity.Identity,
	subjectIsLocal bool,
	subjectIsActive bool,
	actionID string,
	details map[string]string,
	implicit rule.Outcome,
) rule.Outcome {
	set := a.set.Load()
	if set == nil {
		return implicit
	}
	return Decide(a.logger, set, user, subjectIsLocal, subjectIsActive, actionID, details, implicit)
}

// StoreCount exposes the current StoreSet's size, for diagnostics
// (cmd/localauthority-doctor).
func (a *Authority) StoreCount() int {
	set := a.set.Load()
	if set == nil {
		return 0
	}
	return set.Len()
}
