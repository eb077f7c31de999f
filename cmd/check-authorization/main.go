// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// check-authorization runs the decision engine once against a set of
// rule-store top-level paths and prints the resulting outcome (spec 6's
// CLI surface). It exists for the test suite to drive the engine
// without spinning up a full Authority-owning process.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/openEuler-BaseService/polkit-pkla-compat/internal/authority"
	"github.com/openEuler-BaseService/polkit-pkla-compat/internal/identity"
	"github.com/openEuler-BaseService/polkit-pkla-compat/internal/obslog"
	"github.com/openEuler-BaseService/polkit-pkla-compat/internal/rule"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	flagSet := pflag.NewFlagSet("check-authorization", pflag.ContinueOnError)
	var pathsFlag string
	flagSet.StringVarP(&pathsFlag, "paths", "p", "", "semicolon-separated list of rule-store top-level directories")
	flagSet.Usage = func() { printUsage(flagSet) }

	if err := flagSet.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return 0
		}
		return 1
	}

	positional := flagSet.Args()
	if pathsFlag == "" || len(positional) != 4 {
		printUsage(flagSet)
		return 1
	}

	userArg, localArg, activeArg, actionArg := positional[0], positional[1], positional[2], positional[3]

	user, err := identity.Parse(userArg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "check-authorization: invalid user identity %q: %v\n", userArg, err)
		return 1
	}
	local, err := parseBoolArg(localArg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "check-authorization: %v\n", err)
		return 1
	}
	active, err := parseBoolArg(activeArg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "check-authorization: %v\n", err)
		return 1
	}

	topLevelPaths := splitPathList(pathsFlag)
	// A scriptable CLI whose only output contract is the single outcome
	// line on stdout: keep stderr to warnings and above.
	logger := obslog.New(os.Stderr, slog.LevelWarn)

	a := authority.New(logger, topLevelPaths, nil)
	a.Construct()
	defer a.Finalize()

	// The CLI is the first and only stage: there is no host-supplied
	// prior default to start from, so ret starts at Unknown (spec 4.5's
	// "open question" resolved in favor of the library semantics, which
	// this CLI simply instantiates with implicit=unknown).
	outcome := a.CheckAuthorization(user, local, active, actionArg, nil, rule.Unknown)
	fmt.Println(outcome.String())
	return 0
}

func parseBoolArg(s string) (bool, error) {
	switch s {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, fmt.Errorf("expected \"true\" or \"false\", got %q", s)
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
	fmt.Fprintf(os.Stderr, `Usage: check-authorization -p <path1;path2;...> <user> <local?> <active?> <action>

Decides the implicit authorization outcome for <user> requesting
<action>, given the rule stores found under the semicolon-separated
top-level paths. <local?> and <active?> are the literal strings
"true" or "false".

Flags:
`)
	flagSet.PrintDefaults()
}
