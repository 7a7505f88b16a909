// Copyright (c) 2025-2026 Liverpool Digital Commons Contributors.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Command civicdata is a CLI for CKAN civic data portals and an MCP server
// exposing them to AI agents.
//
// The command dispatch subsystem is based on golang's `go` command
// implementation, which is BSD-licensed:
//
//	Copyright 2017 The Go Authors. All rights reserved.
//	Use of this source code is governed by a BSD-style
//	license that can be found in the LICENSE file.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/joho/godotenv"

	"github.com/ldcommons/civicdata/cmd/civicdata/internal/cfg"
	"github.com/ldcommons/civicdata/cmd/civicdata/internal/config"
	"github.com/ldcommons/civicdata/cmd/civicdata/internal/golang/base"
	"github.com/ldcommons/civicdata/cmd/civicdata/internal/golang/help"
	"github.com/ldcommons/civicdata/cmd/civicdata/internal/info"
	"github.com/ldcommons/civicdata/cmd/civicdata/internal/search"
	"github.com/ldcommons/civicdata/cmd/civicdata/internal/serve"
)

func init() {
	base.Civicdata.Commands = []*base.Command{
		serve.CmdServe,
		search.CmdSearch,
		info.CmdInfo,
		config.CmdConfig,
		CmdVersion,
	}
}

// secrets defines the names of the supported secret files that we load our
// secrets from.  Inexperienced windows users might have bad experience trying
// to create .env file with the notepad as it will battle for having the
// "txt" extension.  Let it have it.
var secrets = []string{".env", ".env.txt", "secrets.txt"}

func main() {
	loadSecrets(secrets)

	base.Usage = mainUsage
	flag.Usage = base.Usage
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 {
		base.Usage()
	}

	base.CmdName = args[0]
	if args[0] == "help" {
		help.Help(os.Stdout, args[1:])
		base.Exit()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

BigCmdLoop:
	for bigCmd := base.Civicdata; ; {
		for _, cmd := range bigCmd.Commands {
			if cmd.Name() != args[0] {
				continue
			}
			if len(cmd.Commands) > 0 {
				bigCmd = cmd
				args = args[1:]
				if len(args) == 0 {
					help.PrintUsage(os.Stderr, bigCmd)
					base.SetExitStatus(base.SInvalidParameters)
					base.Exit()
				}
				if args[0] == "help" {
					// accept 'civicdata config help new'.
					help.Help(os.Stdout, append(strings.Split(base.CmdName, " "), args[1:]...))
					base.Exit()
				}
				base.CmdName += " " + args[0]
				continue BigCmdLoop
			}
			if !cmd.Runnable() {
				continue
			}
			invoke(ctx, cmd, args)
			base.Exit()
		}
		helpArg := ""
		if i := strings.LastIndex(base.CmdName, " "); i >= 0 {
			helpArg = " " + base.CmdName[:i]
		}
		fmt.Fprintf(os.Stderr, "civicdata %s: unknown command\nRun 'civicdata help%s' for usage.\n", base.CmdName, helpArg)
		base.SetExitStatus(base.SInvalidParameters)
		base.Exit()
	}
}

func mainUsage() {
	help.PrintUsage(os.Stderr, base.Civicdata)
	base.SetExitStatus(base.SInvalidParameters)
	base.Exit()
}

// invoke parses the command flags, initialises the instrumentation and runs
// the command.
func invoke(ctx context.Context, cmd *base.Command, args []string) {
	if cmd.CustomFlags {
		args = args[1:]
	} else {
		cmd.Flag.Usage = cmd.Usage
		cfg.SetBaseFlags(&cmd.Flag, cmd.FlagMask)
		cmd.Flag.Parse(args[1:])
		args = cmd.Flag.Args()
	}

	lg, err := initLog(cfg.LogFile, cfg.JsonLog, cfg.Verbose)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		base.SetExitStatus(base.SInitializationError)
		return
	}
	cfg.Log = lg
	base.AtExit(initTrace(cfg.TraceFile))

	if err := cmd.Run(ctx, cmd, args); err != nil {
		if base.ExitStatus() == base.SNoError {
			base.SetExitStatus(base.SApplicationError)
		}
		lg.Error("run failed", "cmd", base.CmdName, "error", err)
	}
}

// loadSecrets loads secrets from the files in the secrets slice.
func loadSecrets(files []string) {
	for _, f := range files {
		_ = godotenv.Load(f)
	}
}
