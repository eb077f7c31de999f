// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/ini.v1"
)

// IniSource implements Source over `localauthority.conf.d/*.conf`
// (spec 6): every `*.conf` file in dir is loaded as one INI document,
// later files (lexicographic filename order) overriding earlier ones
// key-for-key within the same section, mirroring the rule stores'
// last-match-wins convention.
type IniSource struct {
	file *ini.File
}

// LoadIniSource reads every `*.conf` file directly under dir. A
// missing directory or a directory with no `*.conf` files yields an
// empty, valid Source (every GetStringList call reports ErrKeyAbsent):
// spec 7's "Configuration absent" case is not a construction error.
func LoadIniSource(dir string) (*IniSource, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.conf"))
	if err != nil {
		return nil, fmt.Errorf("globbing %s: %w", dir, err)
	}
	sort.Strings(matches)

	// ';' separates list entries in these files, so it must not start
	// an inline comment.
	file := ini.Empty(ini.LoadOptions{IgnoreInlineComment: true})
	for _, path := range matches {
		if err := file.Append(path); err != nil {
			return nil, fmt.Errorf("loading %s: %w", path, err)
		}
	}
	return &IniSource{file: file}, nil
}

// GetStringList implements Source.
func (s *IniSource) GetStringList(section, key string) ([]string, error) {
	sec, err := s.file.GetSection(section)
	if err != nil {
		return nil, fmt.Errorf("section %q: %w", section, ErrKeyAbsent)
	}
	if !sec.HasKey(key) {
		return nil, fmt.Errorf("key %q: %w", key, ErrKeyAbsent)
	}

	raw := sec.Key(key).String()
	fields := strings.FieldsFunc(raw, func(r rune) bool { return r == ';' || r == ',' })
	values := make([]string, 0, len(fields))
	for _, f := range fields {
		if v := strings.TrimSpace(f); v != "" {
			values = append(values, v)
		}
	}
	return values, nil
}
