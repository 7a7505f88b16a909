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

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	mcpsrv "github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"

	"github.com/ldcommons/civicdata/internal/mcp/mock_catalog"
)

// newTestServer creates a *Server backed by a MockCatalog with the BaseURL
// expectation set (New calls it while building the instructions).
func newTestServer(t *testing.T, ctrl *gomock.Controller) (*Server, *mock_catalog.MockCatalog) {
	t.Helper()
	m := mock_catalog.NewMockCatalog(ctrl)
	m.EXPECT().BaseURL().Return("https://data.example.org").AnyTimes()
	srv := New(m, WithLogger(nil))
	require.NotNil(t, srv)
	return srv, m
}

// toolReq builds a CallToolRequest with the given argument map.
func toolReq(args map[string]any) mcplib.CallToolRequest {
	req := mcplib.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

// ─── New / options ────────────────────────────────────────────────────────────

func TestNew(t *testing.T) {
	ctrl := gomock.NewController(t)
	srv, _ := newTestServer(t, ctrl)
	assert.NotNil(t, srv.mcp)
	assert.NotNil(t, srv.cat)
	assert.NotNil(t, srv.logger)
}

func TestNew_nilLogger(t *testing.T) {
	// A nil logger must not panic and must fall back to slog.Default().
	ctrl := gomock.NewController(t)
	m := mock_catalog.NewMockCatalog(ctrl)
	m.EXPECT().BaseURL().Return("").AnyTimes()
	assert.NotPanics(t, func() {
		srv := New(m, WithLogger(nil))
		assert.NotNil(t, srv.logger)
	})
}

func TestAddTool(t *testing.T) {
	ctrl := gomock.NewController(t)
	srv, _ := newTestServer(t, ctrl)

	extra := mcpsrv.ServerTool{
		Tool: mcplib.NewTool("extra_tool", mcplib.WithDescription("extra")),
		Handler: func(_ context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
			return resultText("ok"), nil
		},
	}
	assert.NotPanics(t, func() {
		srv.AddTool(extra)
	})
}

func TestInstructions(t *testing.T) {
	t.Run("with catalog", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		m := mock_catalog.NewMockCatalog(ctrl)
		m.EXPECT().BaseURL().Return("https://data.example.org").AnyTimes()
		got := instructions(m)
		assert.Contains(t, got, "https://data.example.org")
		assert.Contains(t, got, "search_datasets")
	})
	t.Run("nil catalog", func(t *testing.T) {
		got := instructions(nil)
		assert.Contains(t, got, "CKAN")
		assert.NotContains(t, got, "nil")
	})
}

// ─── HTTP routing ─────────────────────────────────────────────────────────────

func TestRouter_healthcheck(t *testing.T) {
	ctrl := gomock.NewController(t)
	srv, _ := newTestServer(t, ctrl)

	ts := httptest.NewServer(srv.router())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/healthcheck")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRouter_mcpEndpointMounted(t *testing.T) {
	ctrl := gomock.NewController(t)
	srv, _ := newTestServer(t, ctrl)

	ts := httptest.NewServer(srv.router())
	defer ts.Close()

	// GET without a session is rejected by the transport, but the route
	// itself must exist.
	resp, err := http.Get(ts.URL + "/mcp")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.NotEqual(t, http.StatusNotFound, resp.StatusCode)
}

// ─── argument helpers ─────────────────────────────────────────────────────────

func TestArgHelpers(t *testing.T) {
	req := toolReq(map[string]any{
		"s": "value",
		"n": float64(42),
		"b": true,
	})

	s, ok := stringArg(req, "s")
	assert.True(t, ok)
	assert.Equal(t, "value", s)
	_, ok = stringArg(req, "missing")
	assert.False(t, ok)
	_, ok = stringArg(req, "n") // wrong type
	assert.False(t, ok)

	assert.Equal(t, 42, intArg(req, "n", 0))
	assert.Equal(t, 7, intArg(req, "missing", 7))

	assert.True(t, boolArg(req, "b", false))
	assert.False(t, boolArg(req, "missing", false))
	assert.True(t, boolArg(req, "s", true)) // wrong type keeps default
}

func TestSnippet(t *testing.T) {
	assert.Equal(t, "short", snippet("  short  ", 10))
	assert.Equal(t, "ab…", snippet("abcdef", 2))
	assert.Equal(t, "", snippet("", 5))
}
