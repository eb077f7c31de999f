// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ruleset

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func discardLogger(t *testing.T) *slog.Logger {
	t.Helper()
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func mkdirs(t *testing.T, base string, names ...string) {
	t.Helper()
	for _, n := range names {
		if err := os.MkdirAll(filepath.Join(base, n), 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", n, err)
		}
	}
}

func TestBuildEmptyTopLevels(t *testing.T) {
	set := Build(discardLogger(t), nil)
	if set.Len() != 0 {
		t.Errorf("expected empty StoreSet, got %d", set.Len())
	}
}

func TestBuildSkipsUnreadableTopLevel(t *testing.T) {
	readable := t.TempDir()
	mkdirs(t, readable, "10-vendor")

	set := Build(discardLogger(t), []string{
		filepath.Join(t.TempDir(), "does-not-exist"),
		readable,
	})
	if set.Len() != 1 {
		t.Errorf("expected the readable top-level's subdir to still be included, got %d", set.Len())
	}
}

func TestBuildOrdersByToplevelIndexOnNameTie(t *testing.T) {
	etc := t.TempDir()
	varLib := t.TempDir()
	mkdirs(t, etc, "10-vendor")
	mkdirs(t, varLib, "10-vendor")

	set := Build(discardLogger(t), []string{etc, varLib})
	if set.Len() != 2 {
		t.Fatalf("expected 2 stores, got %d", set.Len())
	}
	stores := set.Stores()
	if stores[0].Dir() != filepath.Join(etc, "10-vendor") {
		t.Errorf("expected the /etc-equivalent top-level's 10-vendor to sort first, got %s", stores[0].Dir())
	}
	if stores[1].Dir() != filepath.Join(varLib, "10-vendor") {
		t.Errorf("expected the /var-equivalent top-level's 10-vendor to sort second, got %s", stores[1].Dir())
	}
}

func TestBuildOrdersByNameWithinSameToplevel(t *testing.T) {
	base := t.TempDir()
	mkdirs(t, base, "20-local", "10-vendor")

	set := Build(discardLogger(t), []string{base})
	stores := set.Stores()
	if len(stores) != 2 {
		t.Fatalf("expected 2 stores, got %d", len(stores))
	}
	if filepath.Base(stores[0].Dir()) != "10-vendor" {
		t.Errorf("expected 10-vendor to sort before 20-local, got %s first", filepath.Base(stores[0].Dir()))
	}
}

func TestBuildIgnoresNonDirectoryEntries(t *testing.T) {
	base := t.TempDir()
	mkdirs(t, base, "10-vendor")
	if err := os.WriteFile(filepath.Join(base, "stray-file.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("writing stray file: %v", err)
	}

	set := Build(discardLogger(t), []string{base})
	if set.Len() != 1 {
		t.Errorf("expected the stray file to be ignored, got %d stores", set.Len())
	}
}
