// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package rulecache

import (
	"encoding/hex"
	"fmt"
	"os"
	"sort"

	"github.com/zeebo/blake3"
)

// Fingerprint hashes a directory's listing: the directory's own path,
// then each direct entry's name, size, and modification time, sorted
// by name for determinism. It does not hash file contents — two
// directories whose entries have identical names/sizes/mtimes but
// different bytes would collide. That's an accepted tradeoff for a
// cache whose only job is to skip re-parsing: anything that edits a
// `.pkla` file without changing its size or its recorded modification
// time is rare enough, and a false cache hit here only risks
// serving stale-but-previously-valid rules, not crashing or mis-
// authorizing in a way the parse step itself wouldn't also have
// produced moments earlier.
func Fingerprint(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", dir, err)
	}

	type statLine struct {
		name string
		line string
	}
	lines := make([]statLine, 0, len(entries))
	for _, e := range entries {
		info, err := e.Info()
		if err != nil {
			return "", fmt.Errorf("stat %s/%s: %w", dir, e.Name(), err)
		}
		lines = append(lines, statLine{
			name: e.Name(),
			line: fmt.Sprintf("%s\x00%d\x00%d\n", e.Name(), info.Size(), info.ModTime().UnixNano()),
		})
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].name < lines[j].name })

	h := blake3.New()
	fmt.Fprintf(h, "%s\x00\x00", dir)
	for _, l := range lines {
		h.Write([]byte(l.line))
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
