// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// localauthority-doctor is a read-only diagnostic CLI: it builds a
// StoreSet from the given top-level paths and prints, per store, its
// sort key, rule count, parse-cache behavior, and content fingerprint.
// It never returns a non-zero exit status — this is a sanity-check
// tool for operators, not a pass/fail gate.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/pflag"

	"github.com/openEuler-BaseService/polkit-pkla-compat/internal/obslog"
	"github.com/openEuler-BaseService/polkit-pkla-compat/internal/rulecache"
)

func main() {
	run(os.Args[1:])
	os.Exit(0)
}

func run(args []string) {
	flagSet := pflag.NewFlagSet("localauthority-doctor", pflag.ContinueOnError)
	var pathsFlag string
	var cacheDir string
	flagSet.StringVarP(&pathsFlag, "paths", "p", "", "semicolon-separated list of rule-store top-level directories")
	flagSet.StringVar(&cacheDir, "cache-dir", "", "parse-cache directory (omit to diagnose without a cache)")
	flagSet.Usage = func() { printUsage(flagSet) }

	if err := flagSet.Parse(args); err != nil {
		return
	}
	if pathsFlag == "" {
		printUsage(flagSet)
		return
	}

	logger := obslog.New(os.Stderr, slog.LevelWarn)

	var cache *rulecache.Cache
	if cacheDir != "" {
		cache = rulecache.Open(cacheDir)
	}

	diagnostics := rulecache.Diagnose(logger, cache, splitPathList(pathsFlag))
	if len(diagnostics) == 0 {
		fmt.Println("no rule stores found under the given top-level paths")
		return
	}

	for _, d := range diagnostics {
		cacheState := "cache miss, parsed from disk"
		if d.CacheHit {
			cacheState = "cache hit"
		}
		fmt.Printf("%s\t%s\n", d.SortKey, d.Dir)
		fmt.Printf("  %s, %s, fingerprint %s\n",
			humanize.Comma(int64(d.RuleCount))+" rules", cacheState, d.Fingerprint)
	}
}

func splitPathList(s string) []string {
	parts := strings.Split(s, ";")
	paths := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}

func printUsage(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `Usage: localauthority-doctor -p <path1;path2;...> [--cache-dir <dir>]

Builds the rule StoreSet from the given top-level paths and prints,
per store, its sort key, directory, rule count, parse-cache
hit/miss, and content fingerprint. Diagnostic only; always exits 0.

Flags:
`)
	flagSet.PrintDefaults()
}
