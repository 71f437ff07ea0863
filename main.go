// command-terminal - An embeddable command shell with an interactive host.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/AntonC9018/command-terminal/internal/cli"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
)

func main() {
	var (
		configPath  = flag.String("config", "", "path to the config file (default ~/.command-terminal/config.toml)")
		line        = flag.String("c", "", "dispatch a single line and exit")
		showVersion = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("command-terminal %s (%s)\n", Version, GitCommit)
		return
	}

	if err := cli.Run(cli.RunOptions{
		ConfigPath: *configPath,
		Line:       *line,
	}); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
