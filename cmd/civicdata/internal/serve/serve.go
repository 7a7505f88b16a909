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

// Package serve contains the CLI command for starting the civicdata MCP
// server.
package serve

import (
	"context"
	"fmt"
	"strings"

	"github.com/ldcommons/civicdata/cmd/civicdata/internal/bootstrap"
	"github.com/ldcommons/civicdata/cmd/civicdata/internal/cfg"
	"github.com/ldcommons/civicdata/cmd/civicdata/internal/golang/base"
	"github.com/ldcommons/civicdata/internal/mcp"
)

// CmdServe is the "civicdata serve" command.
var CmdServe = &base.Command{
	UsageLine:  "civicdata serve [flags]",
	Short:      "start the MCP server for the portal",
	PrintFlags: true,
	Long: `
# Serve Command

Starts a Model Context Protocol (MCP) server exposing the civic data portal
to AI agents.  The agent can search datasets, list and search resource
files, read extracted file content and profile tabular data.

The CKAN API key must be provided with the -token flag or the ` + cfg.TokenEnv + `
environment variable; the server refuses to start without it.

By default the server communicates over stdio.  With -transport=http it
serves the MCP Streamable HTTP transport at http://<listen>/mcp.
`,
	Run: runServe,
}

var (
	transport  string
	listenAddr string
)

func init() {
	CmdServe.Flag.StringVar(&transport, "transport", "stdio", "MCP transport: \"stdio\" or \"http\"")
	CmdServe.Flag.StringVar(&listenAddr, "listen", "127.0.0.1:8000", "address to listen on when -transport=http")
}

func runServe(ctx context.Context, cmd *base.Command, args []string) error {
	if len(args) > 0 {
		base.SetExitStatus(base.SInvalidParameters)
		return fmt.Errorf("serve: unexpected arguments: %v", args)
	}
	lg := cfg.Log

	sess, err := bootstrap.Session(ctx)
	if err != nil {
		return fmt.Errorf("serve: %w", err)
	}

	srv := mcp.New(sess, mcp.WithLogger(lg))

	switch mcp.Transport(strings.ToLower(transport)) {
	case mcp.TransportStdio, "":
		return srv.ServeStdio(ctx)
	case mcp.TransportHTTP:
		lg.InfoContext(ctx, "serve: http transport", "addr", listenAddr)
		return srv.ServeHTTP(ctx, listenAddr)
	default:
		base.SetExitStatus(base.SInvalidParameters)
		return fmt.Errorf("serve: unknown transport %q (use \"stdio\" or \"http\")", transport)
	}
}
