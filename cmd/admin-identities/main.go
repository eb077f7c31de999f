// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// admin-identities resolves and prints the configured administrator
// identity list (spec 6's CLI surface, backed by C6/C7).
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/openEuler-BaseService/polkit-pkla-compat/internal/adminid"
	"github.com/openEuler-BaseService/polkit-pkla-compat/internal/config"
	"github.com/openEuler-BaseService/polkit-pkla-compat/internal/obslog"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// defaultConfigPath mirrors the compiled-in fallback the original
// admin-identities CLI uses when -c/--config-path is omitted.
const defaultConfigPath = "/etc/polkit-1/localauthority.conf.d"

func run(args []string) int {
	flagSet := pflag.NewFlagSet("admin-identities", pflag.ContinueOnError)
	var configDir string
	flagSet.StringVarP(&configDir, "config-path", "c", defaultConfigPath, "directory containing localauthority.conf.d/*.conf files")
	flagSet.Usage = func() { printUsage(flagSet) }

	if err := flagSet.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return 0
		}
		return 1
	}

	if len(flagSet.Args()) != 0 {
		printUsage(flagSet)
		return 1
	}

	logger := obslog.New(os.Stderr, slog.LevelWarn)

	src, err := config.LoadIniSource(configDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "admin-identities: loading %s: %v\n", configDir, err)
		return 1
	}

	for _, id := range adminid.Resolve(logger, src) {
		fmt.Println(id.String())
	}
	return 0
}

func printUsage(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `Usage: admin-identities -c <config-dir>

Prints one canonical identity per line for each administrator
identity configured under Configuration.AdminIdentities in
<config-dir>/*.conf, with unix-group and unix-netgroup entries
expanded to their member users.

Flags:
`)
	flagSet.PrintDefaults()
}
