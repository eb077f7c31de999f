// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package obslog constructs the process-wide structured logger used by
// every entry point in this module. There is no package-level logger
// and no global state: New is called once per process, and the result
// is threaded explicitly into every constructor that needs it.
package obslog

import (
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"
)

// Level controls the minimum severity New's logger emits.
type Level = slog.Level

// New returns a logger that writes text to w when w is a terminal
// (golang.org/x/term.IsTerminal), and newline-delimited JSON otherwise —
// matching the teacher's cmd/bureau/cli.NewCommandLogger, generalized
// to take an explicit writer and level instead of always targeting
// os.Stderr at slog.LevelInfo.
func New(w *os.File, level Level) *slog.Logger {
	options := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if term.IsTerminal(int(w.Fd())) {
		handler = slog.NewTextHandler(w, options)
	} else {
		handler = slog.NewJSONHandler(w, options)
	}
	return slog.New(handler)
}

// Discard returns a logger that drops everything it's given, for tests
// and for CLI paths (like -h/--help) that must not touch stderr.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
