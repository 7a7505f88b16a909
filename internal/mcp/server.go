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

package mcp

// In this file: MCP server construction and transport management.

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	mcplib "github.com/mark3labs/mcp-go/mcp"
	mcpsrv "github.com/mark3labs/mcp-go/server"

	"github.com/ldcommons/civicdata/internal/ckan"
	"github.com/ldcommons/civicdata/internal/content"
)

const (
	serverName    = "civicdata-mcp"
	serverVersion = "1.0.0"
)

// Transport selects how the MCP server communicates with its client.
type Transport string

const (
	// TransportStdio uses stdin/stdout for communication (default, suitable
	// for local agent integrations such as Claude Desktop).
	TransportStdio Transport = "stdio"
	// TransportHTTP uses Streamable HTTP transport (suitable for remote
	// agents or when multiple concurrent clients are needed).
	TransportHTTP Transport = "http"
)

// Catalog is the portal access surface the tool handlers operate on.  It is
// satisfied by *civicdata.Session.
//
//go:generate mockgen -destination=mock_catalog/mock_catalog.go . Catalog
type Catalog interface {
	SearchDatasets(ctx context.Context, query string, p ckan.Page) (*ckan.DatasetPage, error)
	Dataset(ctx context.Context, id string) (*ckan.Dataset, error)
	ListResources(ctx context.Context, datasetID string) ([]ckan.Resource, error)
	SearchResources(ctx context.Context, query string, p ckan.Page) (*ckan.ResourcePage, error)
	ResourceContent(ctx context.Context, resourceID string, previewOnly bool) (*content.Content, error)
	AnalyseResource(ctx context.Context, resourceID string) (*content.Summary, error)
	BaseURL() string
}

// Server wraps an MCP server and the portal catalog it serves.
type Server struct {
	mcp    *mcpsrv.MCPServer
	cat    Catalog
	logger *slog.Logger
}

// Option is the signature of the Server option-setting function.
type Option func(*Server)

// WithLogger sets the server logger.  A nil logger falls back to
// slog.Default().
func WithLogger(lg *slog.Logger) Option {
	return func(s *Server) {
		if lg == nil {
			lg = slog.Default()
		}
		s.logger = lg
	}
}

// New creates a new MCP server backed by the given Catalog.  The server is
// populated with all available tools but does not start listening until one
// of the Serve* methods is called.
func New(cat Catalog, opts ...Option) *Server {
	s := &Server{
		cat:    cat,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	mcpServer := mcpsrv.NewMCPServer(
		serverName,
		serverVersion,
		mcpsrv.WithInstructions(instructions(cat)),
	)

	// Register all tools.
	for _, t := range s.tools() {
		mcpServer.AddTool(t.Tool, t.Handler)
	}

	s.mcp = mcpServer
	return s
}

// instructions returns the server instructions that describe the portal to
// the connecting agent.
func instructions(cat Catalog) string {
	portal := "a CKAN open data portal"
	if cat != nil {
		portal = cat.BaseURL()
	}
	return fmt.Sprintf(`You are connected to a civic data MCP server for %s.

The portal publishes open civic datasets (bin collections, ward populations,
council spending, school places and similar).  Each dataset is a titled
collection of resources; a resource is a single downloadable file (CSV, Excel
workbook, PDF).

Available tools allow you to:
- Search datasets by free-text query (search_datasets)
- Get full dataset metadata including its resource list (get_dataset_info)
- List the resources of a dataset (list_resources)
- Search individual resource files by name keywords (search_resources)
- Read the extracted content of a resource (get_resource_content)
- Profile a tabular resource: columns, types, missing values, numeric
  summaries (analyse_resource)

All data is read-only.  Datasets are addressed by UUID or URL name, resources
by UUID.  Tabular content defaults to a row-limited preview; pass
preview_only=false for the full table.
`, portal)
}

// ServeStdio runs the MCP server over stdin/stdout until ctx is cancelled.
// This is the standard transport used by local agent integrations.
func (s *Server) ServeStdio(ctx context.Context) error {
	srv := mcpsrv.NewStdioServer(s.mcp)
	s.logger.InfoContext(ctx, "mcp server listening on stdio")
	if err := srv.Listen(ctx, os.Stdin, os.Stdout); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
			return nil
		}
		return fmt.Errorf("mcp stdio server error: %w", err)
	}
	return nil
}

// ServeHTTP runs the MCP server as a Streamable HTTP server on addr until
// ctx is cancelled.  addr should be a host:port string such as
// "127.0.0.1:8000".  The MCP endpoint is mounted at /mcp; a /healthcheck
// endpoint answers liveness probes.
func (s *Server) ServeHTTP(ctx context.Context, addr string) error {
	httpSrv := &http.Server{Addr: addr, Handler: s.router()}

	s.logger.InfoContext(ctx, "mcp server listening on http", "addr", addr, "endpoint", "/mcp")

	errCh := make(chan error, 1)
	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("mcp http server error: %w", err)
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		s.logger.InfoContext(ctx, "mcp server shutting down")
		if err := httpSrv.Shutdown(context.Background()); err != nil {
			return fmt.Errorf("mcp http server shutdown error: %w", err)
		}
		return nil
	case err := <-errCh:
		return err
	}
}

// router assembles the HTTP routing for the Streamable HTTP transport.
func (s *Server) router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Get("/healthcheck", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("OK"))
	})
	r.Handle("/mcp", mcpsrv.NewStreamableHTTPServer(s.mcp))
	return r
}

// tools returns all MCP tools that this server exposes.
func (s *Server) tools() []mcpsrv.ServerTool {
	return []mcpsrv.ServerTool{
		s.toolSearchDatasets(),
		s.toolGetDatasetInfo(),
		s.toolListResources(),
		s.toolSearchResources(),
		s.toolGetResourceContent(),
		s.toolAnalyseResource(),
	}
}

// AddTool adds an additional tool to the MCP server.  This can be called
// after New but before serving starts.  It is intended for CLI-layer tools
// that have access to internal CLI packages.
func (s *Server) AddTool(tool mcpsrv.ServerTool) {
	s.mcp.AddTool(tool.Tool, tool.Handler)
}

// resultText is a helper that wraps text in a successful CallToolResult.
func resultText(text string) *mcplib.CallToolResult {
	return mcplib.NewToolResultText(text)
}

// resultErr is a helper that wraps an error in a CallToolResult with IsError=true.
func resultErr(err error) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(err.Error())},
		IsError: true,
	}
}

// resultJSON is a helper that serialises v to JSON and returns a CallToolResult.
func resultJSON(v any) (*mcplib.CallToolResult, error) {
	return mcplib.NewToolResultJSON(v)
}

// stringArg extracts a named string argument from a tool call request.
// Returns ("", false) if the argument is absent or not a string.
func stringArg(req mcplib.CallToolRequest, name string) (string, bool) {
	args := req.GetArguments()
	if args == nil {
		return "", false
	}
	v, ok := args[name]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// intArg extracts a named int argument from a tool call request.  The MCP
// protocol serialises numbers as float64, so we convert accordingly.
func intArg(req mcplib.CallToolRequest, name string, defaultVal int) int {
	args := req.GetArguments()
	if args == nil {
		return defaultVal
	}
	v, ok := args[name]
	if !ok {
		return defaultVal
	}
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	}
	return defaultVal
}

// boolArg extracts a named bool argument from a tool call request.
func boolArg(req mcplib.CallToolRequest, name string, defaultVal bool) bool {
	args := req.GetArguments()
	if args == nil {
		return defaultVal
	}
	v, ok := args[name]
	if !ok {
		return defaultVal
	}
	b, ok := v.(bool)
	if !ok {
		return defaultVal
	}
	return b
}
