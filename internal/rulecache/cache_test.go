// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package rulecache

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/openEuler-BaseService/polkit-pkla-compat/internal/rule"
)

func discardLogger(t *testing.T) *slog.Logger {
	t.Helper()
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeRuleFile(t *testing.T, dir string) {
	t.Helper()
	content := `
[rule]
Identity=unix-user:john
Action=com.example.foo
ResultAny=yes
`
	if err := os.WriteFile(filepath.Join(dir, "rules.pkla"), []byte(content), 0o644); err != nil {
		t.Fatalf("writing rules.pkla: %v", err)
	}
}

func TestFingerprintStableAcrossCalls(t *testing.T) {
	dir := t.TempDir()
	writeRuleFile(t, dir)

	a, err := Fingerprint(dir)
	if err != nil {
		t.Fatalf("Fingerprint: %v", err)
	}
	b, err := Fingerprint(dir)
	if err != nil {
		t.Fatalf("Fingerprint: %v", err)
	}
	if a != b {
		t.Errorf("fingerprint should be stable across calls with unchanged contents: %q vs %q", a, b)
	}
}

func TestFingerprintDiffersOnAddedFile(t *testing.T) {
	dir := t.TempDir()
	writeRuleFile(t, dir)

	before, err := Fingerprint(dir)
	if err != nil {
		t.Fatalf("Fingerprint: %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "extra.pkla"), []byte("[x]\n"), 0o644); err != nil {
		t.Fatalf("writing extra.pkla: %v", err)
	}

	after, err := Fingerprint(dir)
	if err != nil {
		t.Fatalf("Fingerprint: %v", err)
	}
	if before == after {
		t.Errorf("fingerprint should change when a file is added")
	}
}

func TestCacheMissThenHit(t *testing.T) {
	logger := discardLogger(t)
	ruleDir := t.TempDir()
	writeRuleFile(t, ruleDir)

	cache := Open(t.TempDir())

	if _, ok := cache.Load(logger, ruleDir); ok {
		t.Fatalf("expected a miss on an empty cache")
	}

	store := rule.Open(logger, ruleDir)
	cache.Save(logger, ruleDir, store)

	cached, ok := cache.Load(logger, ruleDir)
	if !ok {
		t.Fatalf("expected a hit after Save")
	}
	if cached.Len() != store.Len() {
		t.Errorf("cached store has %d rules, want %d", cached.Len(), store.Len())
	}
	if _, matched := cached.Lookup("unix-user:john", "com.example.foo", nil); !matched {
		t.Errorf("cached store should still answer lookups correctly")
	}
}

func TestCacheMissAfterContentsChange(t *testing.T) {
	logger := discardLogger(t)
	ruleDir := t.TempDir()
	writeRuleFile(t, ruleDir)

	cache := Open(t.TempDir())
	store := rule.Open(logger, ruleDir)
	cache.Save(logger, ruleDir, store)

	if err := os.WriteFile(filepath.Join(ruleDir, "extra.pkla"), []byte("[x]\n"), 0o644); err != nil {
		t.Fatalf("writing extra.pkla: %v", err)
	}

	if _, ok := cache.Load(logger, ruleDir); ok {
		t.Errorf("expected a miss after the directory contents changed")
	}
}

func TestCacheLoadOnMissingCacheDirDoesNotError(t *testing.T) {
	logger := discardLogger(t)
	ruleDir := t.TempDir()
	writeRuleFile(t, ruleDir)

	cache := Open(filepath.Join(t.TempDir(), "does-not-exist"))
	if _, ok := cache.Load(logger, ruleDir); ok {
		t.Errorf("expected a miss, not a hit, on a nonexistent cache dir")
	}
}
