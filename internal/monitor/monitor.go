// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build linux

package monitor

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sys/unix"
	"golang.org/x/time/rate"
)

// watchMask covers the events on a watched top-level directory that
// can change the StoreSet: entries created, removed, renamed or
// modified directly inside it, and the directory itself disappearing.
// The watch is not recursive: a change to a file inside a rule
// subdirectory produces no event. The monitor does not inspect which
// entry changed — any event in the mask triggers a full rebuild
// (spec 4.4: "coarse ... and intentionally so").
const watchMask = unix.IN_CREATE | unix.IN_DELETE | unix.IN_MODIFY |
	unix.IN_MOVED_FROM | unix.IN_MOVED_TO | unix.IN_CLOSE_WRITE | unix.IN_DELETE_SELF

// debounceWindow is the quiet period the monitor waits for after the
// most recent event before firing a rebuild: a trailing-edge debounce,
// so a burst of events (e.g. a package manager dropping a dozen
// `.pkla` files in one transaction) collapses into exactly one
// rebuild that observes the final state, rather than one rebuild per
// event racing a still-in-progress write.
const debounceWindow = 200 * time.Millisecond

// minRebuildInterval is a hard floor between consecutive rebuilds,
// enforced by a rate limiter on top of the trailing-edge debounce
// above: a debounce deadline that expires sooner than this after the
// previous rebuild does not fire until the floor has passed.
const minRebuildInterval = 2 * time.Second

// OnChange is called once per debounced burst of events; the callback
// performs the rebuild. traceID identifies this rebuild cycle in audit
// logs end to end (monitor event -> authority rebuild).
type OnChange func(traceID uuid.UUID)

// Monitor watches a set of top-level paths and invokes a callback,
// debounced, whenever any of them change. Its zero value is not
// usable; construct with Start.
type Monitor struct {
	logger  *slog.Logger
	fd      int
	limiter *rate.Limiter

	stopOnce sync.Once
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// Start begins watching topLevelPaths and returns a running Monitor.
// Paths that cannot be watched (missing, unreadable) are logged and
// skipped; Start still succeeds, since the StoreSet build path
// already tolerates missing top-levels (spec 4.3).
//
// Start never blocks waiting for events: the watch loop runs on its
// own goroutine and Stop tears it down deterministically, per spec 9's
// "dropping the Authority stops the monitors deterministically" design
// note.
func Start(logger *slog.Logger, topLevelPaths []string, onChange OnChange) (*Monitor, error) {
	fd, err := unix.InotifyInit1(unix.IN_CLOEXEC)
	if err != nil {
		return nil, fmt.Errorf("inotify_init1: %w", err)
	}

	watched := 0
	for _, path := range topLevelPaths {
		if _, err := unix.InotifyAddWatch(fd, path, watchMask); err != nil {
			logger.Warn("monitor: could not watch path, skipping", "path", path, "error", err)
			continue
		}
		watched++
	}

	m := &Monitor{
		logger:  logger,
		fd:      fd,
		limiter: rate.NewLimiter(rate.Every(minRebuildInterval), 1),
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
	}

	logger.Debug("monitor: started", "watched_paths", watched, "total_paths", len(topLevelPaths))
	go m.loop(onChange)
	return m, nil
}

// Stop tears down the watch loop and releases the inotify file
// descriptor. It blocks until the loop goroutine has exited, so
// Finalize's "monitors stopped" postcondition is exact.
func (m *Monitor) Stop() {
	m.stopOnce.Do(func() {
		close(m.stopCh)
		<-m.doneCh
		unix.Close(m.fd)
	})
}

// loop polls the inotify fd with a short timeout so it can observe
// stopCh without a blocking read, following the same poll(2)-based
// pattern as the file-watch loop this is grounded on.
//
// Events arm a trailing-edge debounce deadline rather than firing
// immediately: each new event pushes the deadline forward by
// debounceWindow, so a burst collapses into one rebuild fired only
// once events go quiet. If the limiter denies a fire (the previous
// rebuild was less than minRebuildInterval ago), the deadline is
// pushed a full minRebuildInterval ahead instead of firing early or
// being dropped; a new event in the meantime resets it to
// debounceWindow again.
func (m *Monitor) loop(onChange OnChange) {
	defer close(m.doneCh)

	buf := make([]byte, 4096)
	pollFds := []unix.PollFd{{Fd: int32(m.fd), Events: unix.POLLIN}}

	var deadline time.Time
	pending := false

	for {
		select {
		case <-m.stopCh:
			return
		default:
		}

		pollTimeout := 1000
		if pending {
			if remaining := time.Until(deadline); remaining > 0 {
				pollTimeout = int(remaining / time.Millisecond)
				if pollTimeout < 1 {
					pollTimeout = 1
				}
			} else {
				pollTimeout = 0
			}
		}

		n, err := unix.Poll(pollFds, pollTimeout)
		if err != nil && err != unix.EINTR {
			m.logger.Warn("monitor: poll failed", "error", err)
			time.Sleep(100 * time.Millisecond)
			continue
		}

		if n > 0 && pollFds[0].Revents&unix.POLLIN != 0 {
			if read, err := unix.Read(m.fd, buf); err == nil && read > 0 {
				pending = true
				deadline = time.Now().Add(debounceWindow)
			}
		}

		if pending && !time.Now().Before(deadline) {
			if m.limiter.Allow() {
				onChange(uuid.New())
				pending = false
			} else {
				deadline = time.Now().Add(minRebuildInterval)
			}
		}
	}
}
