// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeRuleFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
}

// run never returns a non-zero process exit (the doctor CLI is
// diagnostic-only); these tests just confirm it doesn't panic across
// its documented input shapes.

func TestRunWithoutPathsFlagPrintsUsage(t *testing.T) {
	run(nil)
}

func TestRunWithNoMatchingStoresPrintsEmptyMessage(t *testing.T) {
	run([]string{"-p", t.TempDir()})
}

func TestRunWithStoresAndNoCache(t *testing.T) {
	top := t.TempDir()
	writeRuleFile(t, filepath.Join(top, "10-vendor"), "rules.pkla", `
[rule]
Identity=unix-user:john
Action=com.example.foo
ResultAny=yes
`)
	run([]string{"-p", top})
}

func TestRunWithCacheDir(t *testing.T) {
	top := t.TempDir()
	writeRuleFile(t, filepath.Join(top, "10-vendor"), "rules.pkla", `
[rule]
Identity=unix-user:john
Action=com.example.foo
ResultAny=yes
`)
	run([]string{"-p", top, "--cache-dir", t.TempDir()})
}
