// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeConfFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
}

func TestIniSourceGetStringListSemicolonSeparated(t *testing.T) {
	dir := t.TempDir()
	writeConfFile(t, dir, "50-local.conf", `
[Configuration]
AdminIdentities=unix-user:root;unix-netgroup:bar;unix-group:admin
`)
	src, err := LoadIniSource(dir)
	if err != nil {
		t.Fatalf("LoadIniSource: %v", err)
	}
	got, err := src.GetStringList("Configuration", "AdminIdentities")
	if err != nil {
		t.Fatalf("GetStringList: %v", err)
	}
	want := []string{"unix-user:root", "unix-netgroup:bar", "unix-group:admin"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestIniSourceGetStringListCommaSeparated(t *testing.T) {
	dir := t.TempDir()
	writeConfFile(t, dir, "50-local.conf", `
[Configuration]
AdminIdentities=unix-user:jane, unix-user:john
`)
	src, err := LoadIniSource(dir)
	if err != nil {
		t.Fatalf("LoadIniSource: %v", err)
	}
	got, err := src.GetStringList("Configuration", "AdminIdentities")
	if err != nil {
		t.Fatalf("GetStringList: %v", err)
	}
	if len(got) != 2 || got[0] != "unix-user:jane" || got[1] != "unix-user:john" {
		t.Errorf("got %v", got)
	}
}

func TestIniSourceMissingKeyIsErrKeyAbsent(t *testing.T) {
	dir := t.TempDir()
	writeConfFile(t, dir, "50-local.conf", `
[Configuration]
SomethingElse=1
`)
	src, err := LoadIniSource(dir)
	if err != nil {
		t.Fatalf("LoadIniSource: %v", err)
	}
	_, err = src.GetStringList("Configuration", "AdminIdentities")
	if !errors.Is(err, ErrKeyAbsent) {
		t.Errorf("expected ErrKeyAbsent, got %v", err)
	}
}

func TestIniSourceMissingSectionIsErrKeyAbsent(t *testing.T) {
	dir := t.TempDir()
	writeConfFile(t, dir, "50-local.conf", `
[Other]
Foo=1
`)
	src, err := LoadIniSource(dir)
	if err != nil {
		t.Fatalf("LoadIniSource: %v", err)
	}
	_, err = src.GetStringList("Configuration", "AdminIdentities")
	if !errors.Is(err, ErrKeyAbsent) {
		t.Errorf("expected ErrKeyAbsent, got %v", err)
	}
}

func TestIniSourceEmptyDirIsErrKeyAbsent(t *testing.T) {
	dir := t.TempDir()
	src, err := LoadIniSource(dir)
	if err != nil {
		t.Fatalf("LoadIniSource: %v", err)
	}
	_, err = src.GetStringList("Configuration", "AdminIdentities")
	if !errors.Is(err, ErrKeyAbsent) {
		t.Errorf("expected ErrKeyAbsent, got %v", err)
	}
}

func TestIniSourceMissingDirIsErrKeyAbsent(t *testing.T) {
	src, err := LoadIniSource(filepath.Join(t.TempDir(), "does-not-exist"))
	if err != nil {
		t.Fatalf("LoadIniSource: %v", err)
	}
	_, err = src.GetStringList("Configuration", "AdminIdentities")
	if !errors.Is(err, ErrKeyAbsent) {
		t.Errorf("expected ErrKeyAbsent, got %v", err)
	}
}

func TestIniSourceLaterFileOverridesEarlier(t *testing.T) {
	dir := t.TempDir()
	writeConfFile(t, dir, "10-base.conf", `
[Configuration]
AdminIdentities=unix-user:root
`)
	writeConfFile(t, dir, "50-local.conf", `
[Configuration]
AdminIdentities=unix-user:jane
`)
	src, err := LoadIniSource(dir)
	if err != nil {
		t.Fatalf("LoadIniSource: %v", err)
	}
	got, err := src.GetStringList("Configuration", "AdminIdentities")
	if err != nil {
		t.Fatalf("GetStringList: %v", err)
	}
	if len(got) != 1 || got[0] != "unix-user:jane" {
		t.Errorf("later file should win, got %v", got)
	}
}
