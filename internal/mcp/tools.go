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

// In this file: MCP tool definitions and handler implementations.

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	mcplib "github.com/mark3labs/mcp-go/mcp"
	mcpsrv "github.com/mark3labs/mcp-go/server"

	"github.com/ldcommons/civicdata/internal/ckan"
	"github.com/ldcommons/civicdata/internal/content"
)

const (
	defRows = 10  // default dataset search page size
	maxRows = 100 // portal-side hard limit per page

	// maxInfoResources caps the resource list embedded in dataset info so a
	// dataset with hundreds of files does not flood the context window.
	maxInfoResources = 20

	// maxNotes caps dataset descriptions in search results.
	maxNotes = 280
)

// datasetSummary is a JSON-serialisable summary of a CKAN dataset.
type datasetSummary struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Title        string   `json:"title"`
	Notes        string   `json:"notes,omitempty"`
	Organization string   `json:"organization,omitempty"`
	Tags         []string `json:"tags,omitempty"`
	NumResources int      `json:"num_resources,omitempty"`
}

func summariseDataset(d ckan.Dataset) datasetSummary {
	org := ""
	if d.Organization != nil {
		org = d.Organization.Title
	}
	n := d.NumResources
	if n == 0 {
		n = len(d.Resources)
	}
	return datasetSummary{
		ID:           d.ID,
		Name:         d.Name,
		Title:        d.Title,
		Notes:        snippet(d.Notes, maxNotes),
		Organization: org,
		Tags:         d.TagNames(),
		NumResources: n,
	}
}

// resourceSummary is a JSON-serialisable summary of a CKAN resource.
type resourceSummary struct {
	ID           string `json:"id"`
	DatasetID    string `json:"dataset_id,omitempty"`
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	Format       string `json:"format"`
	URL          string `json:"url"`
	Size         string `json:"size,omitempty"`
	LastModified string `json:"last_modified,omitempty"`
}

func summariseResource(r ckan.Resource) resourceSummary {
	size := ""
	if r.Size > 0 {
		size = humanize.Bytes(uint64(r.Size))
	}
	return resourceSummary{
		ID:           r.ID,
		DatasetID:    r.PackageID,
		Name:         r.Name,
		Description:  snippet(r.Description, maxNotes),
		Format:       r.Format,
		URL:          r.URL,
		Size:         size,
		LastModified: r.LastModified,
	}
}

// snippet cuts s to at most n runes, appending an ellipsis when it does.
func snippet(s string, n int) string {
	s = strings.TrimSpace(s)
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return strings.TrimSpace(string(r[:n])) + "…"
}

// ─── search_datasets ──────────────────────────────────────────────────────────

func (s *Server) toolSearchDatasets() mcpsrv.ServerTool {
	tool := mcplib.NewTool("search_datasets",
		mcplib.WithDescription(`Search datasets on the civic data portal by free-text query.

Matches dataset titles, descriptions and tags.  An empty query lists all
datasets.  Results are paginated: 'count' is the total number of matches on
the portal, use 'start' to page through them.`),
		mcplib.WithString("query",
			mcplib.Description("Free-text search query, e.g. \"bin collections\". Empty lists all datasets."),
		),
		mcplib.WithNumber("rows",
			mcplib.Description(fmt.Sprintf("Maximum number of datasets to return (1–%d, default %d)", maxRows, defRows)),
		),
		mcplib.WithNumber("start",
			mcplib.Description("Offset of the first result, for pagination (default 0)"),
		),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleSearchDatasets}
}

// datasetSearchResult is the JSON payload of search_datasets.
type datasetSearchResult struct {
	Count    int              `json:"count"`
	Datasets []datasetSummary `json:"datasets"`
}

func (s *Server) handleSearchDatasets(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	query, _ := stringArg(req, "query")
	rows := intArg(req, "rows", defRows)
	rows = max(min(rows, maxRows), 1)
	start := max(intArg(req, "start", 0), 0)

	page, err := s.cat.SearchDatasets(ctx, query, ckan.Page{Rows: rows, Start: start})
	if err != nil {
		return resultErr(fmt.Errorf("search_datasets: %w", err)), nil
	}

	out := datasetSearchResult{Count: page.Count, Datasets: make([]datasetSummary, 0, len(page.Datasets))}
	for _, d := range page.Datasets {
		out.Datasets = append(out.Datasets, summariseDataset(d))
	}

	result, err := resultJSON(out)
	if err != nil {
		return resultErr(fmt.Errorf("search_datasets: serialise: %w", err)), nil
	}
	return result, nil
}

// ─── get_dataset_info ─────────────────────────────────────────────────────────

func (s *Server) toolGetDatasetInfo() mcpsrv.ServerTool {
	tool := mcplib.NewTool("get_dataset_info",
		mcplib.WithDescription(`Get full metadata of a dataset: description, publishing organization, tags, licence and the list of its resource files.

The resource list is capped; use list_resources for the complete list.`),
		mcplib.WithString("dataset",
			mcplib.Description("Dataset UUID or URL name (e.g. \"bin-collection-rounds\")"),
			mcplib.Required(),
		),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleGetDatasetInfo}
}

// datasetInfo is the JSON payload of get_dataset_info.
type datasetInfo struct {
	ID               string            `json:"id"`
	Name             string            `json:"name"`
	Title            string            `json:"title"`
	Notes            string            `json:"notes,omitempty"`
	URL              string            `json:"url,omitempty"`
	License          string            `json:"license,omitempty"`
	Organization     string            `json:"organization,omitempty"`
	Tags             []string          `json:"tags,omitempty"`
	Modified         string            `json:"metadata_modified,omitempty"`
	NumResources     int               `json:"num_resources"`
	Resources        []resourceSummary `json:"resources"`
	ResourcesOmitted int               `json:"resources_omitted,omitempty"`
}

func (s *Server) handleGetDatasetInfo(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	id, ok := stringArg(req, "dataset")
	if !ok || id == "" {
		return resultErr(errors.New("get_dataset_info: dataset is required")), nil
	}

	d, err := s.cat.Dataset(ctx, id)
	if err != nil {
		if ckan.IsNotFound(err) {
			return resultText(fmt.Sprintf("Dataset %q not found on the portal.", id)), nil
		}
		return resultErr(fmt.Errorf("get_dataset_info: %w", err)), nil
	}

	org := ""
	if d.Organization != nil {
		org = d.Organization.Title
	}
	info := datasetInfo{
		ID:           d.ID,
		Name:         d.Name,
		Title:        d.Title,
		Notes:        d.Notes,
		URL:          d.URL,
		License:      d.LicenseTitle,
		Organization: org,
		Tags:         d.TagNames(),
		Modified:     d.Metadata,
		NumResources: len(d.Resources),
		Resources:    make([]resourceSummary, 0, min(len(d.Resources), maxInfoResources)),
	}
	for i, r := range d.Resources {
		if i == maxInfoResources {
			info.ResourcesOmitted = len(d.Resources) - maxInfoResources
			break
		}
		info.Resources = append(info.Resources, summariseResource(r))
	}

	result, err := resultJSON(info)
	if err != nil {
		return resultErr(fmt.Errorf("get_dataset_info: serialise: %w", err)), nil
	}
	return result, nil
}

// ─── list_resources ───────────────────────────────────────────────────────────

func (s *Server) toolListResources() mcpsrv.ServerTool {
	tool := mcplib.NewTool("list_resources",
		mcplib.WithDescription("List all resource files of a dataset. Returns resource IDs, names, formats, sizes and download URLs."),
		mcplib.WithString("dataset",
			mcplib.Description("Dataset UUID or URL name (e.g. \"bin-collection-rounds\")"),
			mcplib.Required(),
		),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleListResources}
}

func (s *Server) handleListResources(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	id, ok := stringArg(req, "dataset")
	if !ok || id == "" {
		return resultErr(errors.New("list_resources: dataset is required")), nil
	}

	rr, err := s.cat.ListResources(ctx, id)
	if err != nil {
		if ckan.IsNotFound(err) {
			return resultText(fmt.Sprintf("Dataset %q not found on the portal.", id)), nil
		}
		return resultErr(fmt.Errorf("list_resources: %w", err)), nil
	}

	summaries := make([]resourceSummary, 0, len(rr))
	for _, r := range rr {
		summaries = append(summaries, summariseResource(r))
	}

	result, err := resultJSON(summaries)
	if err != nil {
		return resultErr(fmt.Errorf("list_resources: serialise: %w", err)), nil
	}
	return result, nil
}

// ─── search_resources ─────────────────────────────────────────────────────────

func (s *Server) toolSearchResources() mcpsrv.ServerTool {
	tool := mcplib.NewTool("search_resources",
		mcplib.WithDescription(`Search individual resource files across all datasets by name keywords.

Each word of the query is matched against resource names; results for all
words are merged with duplicates removed.  Use this to locate a specific
file (e.g. "rounds csv") when the owning dataset is unknown.`),
		mcplib.WithString("query",
			mcplib.Description("Space-separated name keywords, e.g. \"spending 2024\""),
			mcplib.Required(),
		),
		mcplib.WithNumber("limit",
			mcplib.Description(fmt.Sprintf("Maximum number of resources to return per keyword (1–%d, default %d)", maxRows, defRows)),
		),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleSearchResources}
}

// resourceSearchResult is the JSON payload of search_resources.
type resourceSearchResult struct {
	Count     int               `json:"count"`
	Resources []resourceSummary `json:"resources"`
}

func (s *Server) handleSearchResources(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	query, ok := stringArg(req, "query")
	if !ok || strings.TrimSpace(query) == "" {
		return resultErr(errors.New("search_resources: query is required")), nil
	}
	limit := intArg(req, "limit", defRows)
	limit = max(min(limit, maxRows), 1)

	page, err := s.cat.SearchResources(ctx, query, ckan.Page{Rows: limit})
	if err != nil {
		return resultErr(fmt.Errorf("search_resources: %w", err)), nil
	}

	out := resourceSearchResult{Count: page.Count, Resources: make([]resourceSummary, 0, len(page.Resources))}
	for _, r := range page.Resources {
		out.Resources = append(out.Resources, summariseResource(r))
	}

	result, err := resultJSON(out)
	if err != nil {
		return resultErr(fmt.Errorf("search_resources: serialise: %w", err)), nil
	}
	return result, nil
}

// ─── get_resource_content ─────────────────────────────────────────────────────

func (s *Server) toolGetResourceContent() mcpsrv.ServerTool {
	tool := mcplib.NewTool("get_resource_content",
		mcplib.WithDescription(`Download a resource file and return its content as text.

CSV and Excel resources are returned as an aligned text table, PDF resources
as extracted plain text.  Tabular content defaults to a row-limited preview;
pass preview_only=false for the full table.`),
		mcplib.WithString("resource_id",
			mcplib.Description("Resource UUID, as returned by list_resources or search_resources"),
			mcplib.Required(),
		),
		mcplib.WithBoolean("preview_only",
			mcplib.Description("Return only the first rows of tabular content (default true)"),
		),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleGetResourceContent}
}

func (s *Server) handleGetResourceContent(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	id, ok := stringArg(req, "resource_id")
	if !ok || id == "" {
		return resultErr(errors.New("get_resource_content: resource_id is required")), nil
	}
	previewOnly := boolArg(req, "preview_only", true)

	c, err := s.cat.ResourceContent(ctx, id, previewOnly)
	if err != nil {
		switch {
		case ckan.IsNotFound(err):
			return resultText(fmt.Sprintf("Resource %q not found on the portal.", id)), nil
		case errors.Is(err, content.ErrTooLarge):
			return resultText(fmt.Sprintf("Resource %q exceeds the download size limit.", id)), nil
		}
		return resultErr(fmt.Errorf("get_resource_content: %w", err)), nil
	}

	text := c.Text
	if c.Truncated {
		text += "\n[preview truncated; pass preview_only=false for the full table]"
	}
	return resultText(text), nil
}

// ─── analyse_resource ─────────────────────────────────────────────────────────

func (s *Server) toolAnalyseResource() mcpsrv.ServerTool {
	tool := mcplib.NewTool("analyse_resource",
		mcplib.WithDescription(`Profile a tabular resource (CSV or Excel): row and column counts, inferred column types, missing value counts, distinct value counts, sample values, and min/max/mean for numeric columns.

Works on the full table, not the preview.`),
		mcplib.WithString("resource_id",
			mcplib.Description("Resource UUID of a CSV or Excel resource"),
			mcplib.Required(),
		),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleAnalyseResource}
}

func (s *Server) handleAnalyseResource(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	id, ok := stringArg(req, "resource_id")
	if !ok || id == "" {
		return resultErr(errors.New("analyse_resource: resource_id is required")), nil
	}

	sum, err := s.cat.AnalyseResource(ctx, id)
	if err != nil {
		if ckan.IsNotFound(err) {
			return resultText(fmt.Sprintf("Resource %q not found on the portal.", id)), nil
		}
		// Non-tabular resources are a usage hint, not a failure.
		if errors.Is(err, content.ErrNotTabular) {
			return resultText(fmt.Sprintf("Resource %q is not tabular; use get_resource_content to read it.", id)), nil
		}
		return resultErr(fmt.Errorf("analyse_resource: %w", err)), nil
	}

	result, err := resultJSON(sum)
	if err != nil {
		return resultErr(fmt.Errorf("analyse_resource: serialise: %w", err)), nil
	}
	return result, nil
}
