// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texeltile/main.go
// Summary: Entry point for the texeltile command.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/framegrace/texeltile/internal/cli"
)

// Set via -ldflags at release time.
var (
	version = ""
	commit  = ""
	date    = ""
)

func main() {
	info := cli.BuildInfo{Version: version, Commit: commit, Date: date}
	if err := cli.Execute(context.Background(), info); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
