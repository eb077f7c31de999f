// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package authority

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/openEuler-BaseService/polkit-pkla-compat/internal/identity"
	"github.com/openEuler-BaseService/polkit-pkla-compat/internal/rule"
)

func mustIdentity(t *testing.T, s string) identity.Identity {
	t.Helper()
	id, err := identity.Parse(s)
	if err != nil {
		t.Fatalf("identity.Parse(%q): %v", s, err)
	}
	return id
}

func TestAuthorityCheckAuthorizationBeforeConstructReturnsImplicit(t *testing.T) {
	a := New(discardLogger(t), nil, nil)
	got := a.CheckAuthorization(mustIdentity(t, "unix-user:john"), true, true, "com.example.foo", nil, rule.AuthenticationRequired)
	if got != rule.AuthenticationRequired {
		t.Errorf("pre-Construct query: got %v, want AuthenticationRequired (the implicit unchanged)", got)
	}
	if n := a.StoreCount(); n != 0 {
		t.Errorf("pre-Construct StoreCount: got %d, want 0", n)
	}
}

func TestAuthorityConstructFinalizeLifecycle(t *testing.T) {
	top := t.TempDir()
	dir := filepath.Join(top, "10-vendor")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	pkla := `
[rule]
Identity=unix-user:john
Action=com.example.foo
ResultActive=yes
`
	if err := os.WriteFile(filepath.Join(dir, "rules.pkla"), []byte(pkla), 0o644); err != nil {
		t.Fatalf("writing rules.pkla: %v", err)
	}

	a := New(discardLogger(t), []string{top}, nil)
	a.Construct()
	defer a.Finalize()

	if n := a.StoreCount(); n != 1 {
		t.Fatalf("StoreCount after Construct: got %d, want 1", n)
	}

	got := a.CheckAuthorization(mustIdentity(t, "unix-user:john"), true, true, "com.example.foo", nil, rule.Unknown)
	if got != rule.Authorized {
		t.Errorf("CheckAuthorization: got %v, want Authorized", got)
	}

	a.Finalize()
	if n := a.StoreCount(); n != 0 {
		t.Errorf("StoreCount after Finalize: got %d, want 0", n)
	}
	got = a.CheckAuthorization(mustIdentity(t, "unix-user:john"), true, true, "com.example.foo", nil, rule.NotAuthorized)
	if got != rule.NotAuthorized {
		t.Errorf("CheckAuthorization after Finalize: got %v, want the implicit unchanged", got)
	}
}

func TestAuthorityFinalizeIsSafeWithoutConstruct(t *testing.T) {
	a := New(discardLogger(t), nil, nil)
	a.Finalize()
}
