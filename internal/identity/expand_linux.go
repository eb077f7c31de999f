// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build linux && cgo

package identity

/*
#include <stdlib.h>
#include <netdb.h>

// cNetgroupUser holds one (user, host, domain) triple. host/domain are
// spec'd as ignored but kept for completeness/debugging.
typedef struct {
    char user[256];
    char host[256];
    char domain[256];
} cNetgroupUser;

// cNetgroupUsers scans a netgroup via setnetgrent/getnetgrent, filling
// out up to maxEntries triples. Returns the number filled. Netgroups
// with no entries and unknown netgroup names are indistinguishable at
// this layer; both yield 0.
static int cNetgroupUsers(const char *name, cNetgroupUser *out, int maxEntries) {
    setnetgrent(name);
    int n = 0;
    char *host, *user, *domain;
    while (n < maxEntries && getnetgrent(&host, &user, &domain)) {
        snprintf(out[n].host, sizeof(out[n].host), "%s", host ? host : "");
        snprintf(out[n].user, sizeof(out[n].user), "%s", user ? user : "");
        snprintf(out[n].domain, sizeof(out[n].domain), "%s", domain ? domain : "");
        n++;
    }
    endnetgrent();
    return n;
}
*/
import "C"

import "unsafe"

// netgroupTriple is one (host, user, domain) entry of a netgroup, per
// spec 4.1's users_in_netgroup. host and domain are carried through
// but unused: UsersInNetgroup reads only the user field.
type netgroupTriple struct {
	host, user, domain string
}

// resolveNetgroup scans a netgroup's triples through the NSS netgroup
// database (setnetgrent/getnetgrent/endnetgrent), so netgroup sources
// other than /etc/netgroup (NIS, LDAP via nsswitch) are honored the
// same way polkit's own C implementation relies on them.
func resolveNetgroup(name string) ([]netgroupTriple, error) {
	const maxEntries = 8192
	cName := C.CString(name)
	defer C.free(unsafe.Pointer(cName))

	entries := make([]C.cNetgroupUser, maxEntries)
	n := C.cNetgroupUsers(cName, &entries[0], C.int(maxEntries))

	result := make([]netgroupTriple, n)
	for i := 0; i < int(n); i++ {
		result[i] = netgroupTriple{
			host:   C.GoString((*C.char)(&entries[i].host[0])),
			user:   C.GoString((*C.char)(&entries[i].user[0])),
			domain: C.GoString((*C.char)(&entries[i].domain[0])),
		}
	}
	return result, nil
}
