// smartflash - a flashlight controller for the terminal.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"io"
	"log"
	"os"

	"github.com/jeranaias/smartflash-tui/internal/cli"
)

// Version information (set at build time)
var (
	Version   = "1.0.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func main() {
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate

	cmd, args, err := cli.Parse(os.Args[1:])
	if err != nil {
		os.Exit(cli.ReportError(args, cmd, err, os.Stdout, os.Stderr))
	}

	if args.Quiet {
		log.SetOutput(io.Discard)
	}

	app, err := cli.NewApp(args)
	if err != nil {
		os.Exit(cli.ReportError(args, cmd, err, os.Stdout, os.Stderr))
	}
	if args.Verbose || app.Config.Log.Verbose {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	}
	os.Exit(app.Run(cmd))
}
