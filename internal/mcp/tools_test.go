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
	"errors"
	"fmt"
	"net/http"
	"testing"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"

	"github.com/ldcommons/civicdata/internal/ckan"
	"github.com/ldcommons/civicdata/internal/content"
	"github.com/ldcommons/civicdata/internal/mcp/mock_catalog"
)

// isErrorResult returns true when the result carries IsError=true.
func isErrorResult(r *mcplib.CallToolResult) bool {
	return r != nil && r.IsError
}

// firstText returns the text of the first TextContent in the result.
func firstText(t *testing.T, r *mcplib.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, r.Content, "result has no content")
	txt, ok := r.Content[0].(mcplib.TextContent)
	require.True(t, ok, "first content item is not TextContent")
	return txt.Text
}

var errNotFound = &ckan.StatusError{Action: "test", Code: http.StatusNotFound}

// ─── handleSearchDatasets ─────────────────────────────────────────────────────

func TestHandleSearchDatasets(t *testing.T) {
	tests := []struct {
		name        string
		args        map[string]any
		setup       func(m *mock_catalog.MockCatalog)
		wantIsError bool
		wantText    string // substring expected in first text content
	}{
		{
			name: "returns dataset page as JSON",
			args: map[string]any{"query": "bins"},
			setup: func(m *mock_catalog.MockCatalog) {
				m.EXPECT().SearchDatasets(gomock.Any(), "bins", ckan.Page{Rows: defRows}).Return(
					&ckan.DatasetPage{Count: 1, Datasets: []ckan.Dataset{
						{ID: "d1", Name: "bin-collections", Title: "Bin Collections"},
					}}, nil)
			},
			wantText: "bin-collections",
		},
		{
			name: "empty query lists all",
			args: nil,
			setup: func(m *mock_catalog.MockCatalog) {
				m.EXPECT().SearchDatasets(gomock.Any(), "", ckan.Page{Rows: defRows}).Return(
					&ckan.DatasetPage{Count: 0, Datasets: nil}, nil)
			},
			wantText: `"datasets"`,
		},
		{
			name: "rows clamped to portal maximum",
			args: map[string]any{"query": "x", "rows": float64(9000), "start": float64(20)},
			setup: func(m *mock_catalog.MockCatalog) {
				m.EXPECT().SearchDatasets(gomock.Any(), "x", ckan.Page{Rows: maxRows, Start: 20}).Return(
					&ckan.DatasetPage{}, nil)
			},
		},
		{
			name: "portal error returns error result",
			args: map[string]any{"query": "x"},
			setup: func(m *mock_catalog.MockCatalog) {
				m.EXPECT().SearchDatasets(gomock.Any(), gomock.Any(), gomock.Any()).Return(
					nil, errors.New("connection refused"))
			},
			wantIsError: true,
			wantText:    "connection refused",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			srv, mock := newTestServer(t, ctrl)
			tt.setup(mock)

			result, err := srv.handleSearchDatasets(t.Context(), toolReq(tt.args))
			require.NoError(t, err)
			require.NotNil(t, result)
			assert.Equal(t, tt.wantIsError, isErrorResult(result))
			if tt.wantText != "" {
				assert.Contains(t, firstText(t, result), tt.wantText)
			}
		})
	}
}

// ─── handleGetDatasetInfo ─────────────────────────────────────────────────────

func TestHandleGetDatasetInfo(t *testing.T) {
	bigDataset := &ckan.Dataset{ID: "d1", Name: "spending", Title: "Spending"}
	for i := range maxInfoResources + 5 {
		bigDataset.Resources = append(bigDataset.Resources, ckan.Resource{
			ID: fmt.Sprintf("r%d", i), Name: fmt.Sprintf("file-%d.csv", i), Format: "CSV",
		})
	}

	tests := []struct {
		name        string
		args        map[string]any
		setup       func(m *mock_catalog.MockCatalog)
		wantIsError bool
		wantText    string
	}{
		{
			name:        "missing dataset returns error result",
			args:        nil,
			setup:       func(m *mock_catalog.MockCatalog) {},
			wantIsError: true,
			wantText:    "dataset",
		},
		{
			name: "returns dataset JSON with organization and tags",
			args: map[string]any{"dataset": "bin-collections"},
			setup: func(m *mock_catalog.MockCatalog) {
				m.EXPECT().Dataset(gomock.Any(), "bin-collections").Return(&ckan.Dataset{
					ID: "d1", Name: "bin-collections", Title: "Bin Collections",
					Organization: &ckan.Organization{Title: "City Council"},
					Tags:         []ckan.Tag{{Name: "waste", DisplayName: "Waste"}},
					Resources:    []ckan.Resource{{ID: "r1", Name: "rounds.csv", Format: "CSV", Size: 2048}},
				}, nil)
			},
			wantText: "City Council",
		},
		{
			name: "resource list capped",
			args: map[string]any{"dataset": "spending"},
			setup: func(m *mock_catalog.MockCatalog) {
				m.EXPECT().Dataset(gomock.Any(), "spending").Return(bigDataset, nil)
			},
			wantText: `"resources_omitted"`,
		},
		{
			name: "not found returns informational text",
			args: map[string]any{"dataset": "nope"},
			setup: func(m *mock_catalog.MockCatalog) {
				m.EXPECT().Dataset(gomock.Any(), "nope").Return(nil, errNotFound)
			},
			wantText: "not found",
		},
		{
			name: "generic error returns error result",
			args: map[string]any{"dataset": "d1"},
			setup: func(m *mock_catalog.MockCatalog) {
				m.EXPECT().Dataset(gomock.Any(), "d1").Return(nil, errors.New("portal down"))
			},
			wantIsError: true,
			wantText:    "portal down",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			srv, mock := newTestServer(t, ctrl)
			tt.setup(mock)

			result, err := srv.handleGetDatasetInfo(t.Context(), toolReq(tt.args))
			require.NoError(t, err)
			require.NotNil(t, result)
			assert.Equal(t, tt.wantIsError, isErrorResult(result))
			if tt.wantText != "" {
				assert.Contains(t, firstText(t, result), tt.wantText)
			}
		})
	}
}

// ─── handleListResources ──────────────────────────────────────────────────────

func TestHandleListResources(t *testing.T) {
	tests := []struct {
		name        string
		args        map[string]any
		setup       func(m *mock_catalog.MockCatalog)
		wantIsError bool
		wantText    string
	}{
		{
			name:        "missing dataset returns error result",
			args:        nil,
			setup:       func(m *mock_catalog.MockCatalog) {},
			wantIsError: true,
			wantText:    "dataset",
		},
		{
			name: "returns resource list with humanised sizes",
			args: map[string]any{"dataset": "bin-collections"},
			setup: func(m *mock_catalog.MockCatalog) {
				m.EXPECT().ListResources(gomock.Any(), "bin-collections").Return([]ckan.Resource{
					{ID: "r1", Name: "rounds.csv", Format: "CSV", Size: 1048576},
				}, nil)
			},
			wantText: "1.0 MB",
		},
		{
			name: "empty list returns empty JSON array",
			args: map[string]any{"dataset": "empty"},
			setup: func(m *mock_catalog.MockCatalog) {
				m.EXPECT().ListResources(gomock.Any(), "empty").Return([]ckan.Resource{}, nil)
			},
			wantText: "[]",
		},
		{
			name: "not found returns informational text",
			args: map[string]any{"dataset": "nope"},
			setup: func(m *mock_catalog.MockCatalog) {
				m.EXPECT().ListResources(gomock.Any(), "nope").Return(nil, errNotFound)
			},
			wantText: "not found",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			srv, mock := newTestServer(t, ctrl)
			tt.setup(mock)

			result, err := srv.handleListResources(t.Context(), toolReq(tt.args))
			require.NoError(t, err)
			require.NotNil(t, result)
			assert.Equal(t, tt.wantIsError, isErrorResult(result))
			if tt.wantText != "" {
				assert.Contains(t, firstText(t, result), tt.wantText)
			}
		})
	}
}

// ─── handleSearchResources ────────────────────────────────────────────────────

func TestHandleSearchResources(t *testing.T) {
	tests := []struct {
		name        string
		args        map[string]any
		setup       func(m *mock_catalog.MockCatalog)
		wantIsError bool
		wantText    string
	}{
		{
			name:        "missing query returns error result",
			args:        map[string]any{"query": "   "},
			setup:       func(m *mock_catalog.MockCatalog) {},
			wantIsError: true,
			wantText:    "query",
		},
		{
			name: "returns merged resource page",
			args: map[string]any{"query": "rounds csv"},
			setup: func(m *mock_catalog.MockCatalog) {
				m.EXPECT().SearchResources(gomock.Any(), "rounds csv", ckan.Page{Rows: defRows}).Return(
					&ckan.ResourcePage{Count: 1, Resources: []ckan.Resource{
						{ID: "r1", Name: "rounds.csv", Format: "CSV"},
					}}, nil)
			},
			wantText: "rounds.csv",
		},
		{
			name: "portal error returns error result",
			args: map[string]any{"query": "x"},
			setup: func(m *mock_catalog.MockCatalog) {
				m.EXPECT().SearchResources(gomock.Any(), gomock.Any(), gomock.Any()).Return(
					nil, errors.New("timeout"))
			},
			wantIsError: true,
			wantText:    "timeout",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			srv, mock := newTestServer(t, ctrl)
			tt.setup(mock)

			result, err := srv.handleSearchResources(t.Context(), toolReq(tt.args))
			require.NoError(t, err)
			require.NotNil(t, result)
			assert.Equal(t, tt.wantIsError, isErrorResult(result))
			if tt.wantText != "" {
				assert.Contains(t, firstText(t, result), tt.wantText)
			}
		})
	}
}

// ─── handleGetResourceContent ─────────────────────────────────────────────────

func TestHandleGetResourceContent(t *testing.T) {
	tests := []struct {
		name        string
		args        map[string]any
		setup       func(m *mock_catalog.MockCatalog)
		wantIsError bool
		wantText    string
	}{
		{
			name:        "missing resource_id returns error result",
			args:        nil,
			setup:       func(m *mock_catalog.MockCatalog) {},
			wantIsError: true,
			wantText:    "resource_id",
		},
		{
			name: "preview is the default",
			args: map[string]any{"resource_id": "r1"},
			setup: func(m *mock_catalog.MockCatalog) {
				m.EXPECT().ResourceContent(gomock.Any(), "r1", true).Return(
					&content.Content{ResourceID: "r1", Kind: content.KindTabular, Text: "round  day\nA      Monday"}, nil)
			},
			wantText: "Monday",
		},
		{
			name: "truncated preview carries a hint",
			args: map[string]any{"resource_id": "r1"},
			setup: func(m *mock_catalog.MockCatalog) {
				m.EXPECT().ResourceContent(gomock.Any(), "r1", true).Return(
					&content.Content{ResourceID: "r1", Kind: content.KindTabular, Text: "a b", Truncated: true}, nil)
			},
			wantText: "preview_only=false",
		},
		{
			name: "full content on preview_only false",
			args: map[string]any{"resource_id": "r1", "preview_only": false},
			setup: func(m *mock_catalog.MockCatalog) {
				m.EXPECT().ResourceContent(gomock.Any(), "r1", false).Return(
					&content.Content{ResourceID: "r1", Kind: content.KindPDF, Text: "full text"}, nil)
			},
			wantText: "full text",
		},
		{
			name: "not found returns informational text",
			args: map[string]any{"resource_id": "nope"},
			setup: func(m *mock_catalog.MockCatalog) {
				m.EXPECT().ResourceContent(gomock.Any(), "nope", true).Return(nil, errNotFound)
			},
			wantText: "not found",
		},
		{
			name: "oversized resource returns informational text",
			args: map[string]any{"resource_id": "big"},
			setup: func(m *mock_catalog.MockCatalog) {
				m.EXPECT().ResourceContent(gomock.Any(), "big", true).Return(nil, content.ErrTooLarge)
			},
			wantText: "size limit",
		},
		{
			name: "transport error returns error result",
			args: map[string]any{"resource_id": "r1"},
			setup: func(m *mock_catalog.MockCatalog) {
				m.EXPECT().ResourceContent(gomock.Any(), "r1", true).Return(nil, errors.New("connection reset"))
			},
			wantIsError: true,
			wantText:    "connection reset",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			srv, mock := newTestServer(t, ctrl)
			tt.setup(mock)

			result, err := srv.handleGetResourceContent(t.Context(), toolReq(tt.args))
			require.NoError(t, err)
			require.NotNil(t, result)
			assert.Equal(t, tt.wantIsError, isErrorResult(result))
			if tt.wantText != "" {
				assert.Contains(t, firstText(t, result), tt.wantText)
			}
		})
	}
}

// ─── handleAnalyseResource ────────────────────────────────────────────────────

func TestHandleAnalyseResource(t *testing.T) {
	tests := []struct {
		name        string
		args        map[string]any
		setup       func(m *mock_catalog.MockCatalog)
		wantIsError bool
		wantText    string
	}{
		{
			name:        "missing resource_id returns error result",
			args:        nil,
			setup:       func(m *mock_catalog.MockCatalog) {},
			wantIsError: true,
			wantText:    "resource_id",
		},
		{
			name: "returns profile JSON",
			args: map[string]any{"resource_id": "r1"},
			setup: func(m *mock_catalog.MockCatalog) {
				m.EXPECT().AnalyseResource(gomock.Any(), "r1").Return(&content.Summary{
					ResourceID: "r1", Rows: 10, Cols: 2, Columns: []string{"ward", "population"},
					Kinds: map[string]content.ColumnKind{"ward": content.ColText, "population": content.ColNumeric},
				}, nil)
			},
			wantText: "population",
		},
		{
			name: "non-tabular resource returns informational text",
			args: map[string]any{"resource_id": "pdf1"},
			setup: func(m *mock_catalog.MockCatalog) {
				m.EXPECT().AnalyseResource(gomock.Any(), "pdf1").Return(
					nil, fmt.Errorf("%w: pdf1 is pdf", content.ErrNotTabular))
			},
			wantText: "not tabular",
		},
		{
			name: "not found returns informational text",
			args: map[string]any{"resource_id": "nope"},
			setup: func(m *mock_catalog.MockCatalog) {
				m.EXPECT().AnalyseResource(gomock.Any(), "nope").Return(nil, errNotFound)
			},
			wantText: "not found",
		},
		{
			name: "generic error returns error result",
			args: map[string]any{"resource_id": "r1"},
			setup: func(m *mock_catalog.MockCatalog) {
				m.EXPECT().AnalyseResource(gomock.Any(), "r1").Return(nil, errors.New("boom"))
			},
			wantIsError: true,
			wantText:    "boom",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			srv, mock := newTestServer(t, ctrl)
			tt.setup(mock)

			result, err := srv.handleAnalyseResource(t.Context(), toolReq(tt.args))
			require.NoError(t, err)
			require.NotNil(t, result)
			assert.Equal(t, tt.wantIsError, isErrorResult(result))
			if tt.wantText != "" {
				assert.Contains(t, firstText(t, result), tt.wantText)
			}
		})
	}
}
