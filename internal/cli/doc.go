// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides command-line parsing and execution for smartflash.
//
// # Key Types
//
//   - Command: enumeration of the CLI commands
//   - Args: parsed global flags plus the raw command arguments
//   - App: loaded configuration, output streams and torch factory
//   - Shell: the interactive prompt's command interpreter
//
// # Usage
//
//	cmd, args, err := cli.Parse(os.Args[1:])
//	if err != nil {
//	    os.Exit(cli.ReportError(args, cmd, err, os.Stdout, os.Stderr))
//	}
//	app, err := cli.NewApp(args)
//	...
//	os.Exit(app.Run(cmd))
//
// Every command except tui, shell and help supports --json.
package cli
