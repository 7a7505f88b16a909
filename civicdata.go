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

// Package civicdata ties together the CKAN portal client, the resource
// content fetcher and the extraction cache behind a single Session, the
// object both the CLI commands and the MCP tool handlers operate on.
package civicdata

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/trace"

	"github.com/ldcommons/civicdata/internal/cache"
	"github.com/ldcommons/civicdata/internal/ckan"
	"github.com/ldcommons/civicdata/internal/content"
)

// Session is an initialised connection to a data portal.  The zero value is
// not usable, initialise with New.  Session is safe for concurrent use.
type Session struct {
	client  *ckan.Client
	fetcher *content.Fetcher
	lg      *slog.Logger

	cfg config
}

// config collects the construction parameters gathered from options.
type config struct {
	baseURL   string
	userAgent string
	cacheDir  string
	limits    Limits
}

// New creates a Session for the portal.  The token is the CKAN API key; an
// empty token is a configuration error (ckan.ErrNoToken).  Defaults connect
// to the Liverpool Digital Commons with DefLimits.
func New(token string, opts ...Option) (*Session, error) {
	s := &Session{
		lg: slog.Default(),
		cfg: config{
			baseURL: ckan.DefaultBaseURL,
			limits:  DefLimits,
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.cfg.limits.Validate(); err != nil {
		return nil, fmt.Errorf("civicdata: invalid limits: %w", err)
	}

	client, err := ckan.New(ckan.Config{
		BaseURL:   s.cfg.baseURL,
		Token:     token,
		Timeout:   s.cfg.limits.Timeout,
		UserAgent: s.cfg.userAgent,
	})
	if err != nil {
		return nil, err
	}
	s.client = client

	maxAge := s.cfg.limits.CacheMaxAge
	if s.cfg.cacheDir == "" {
		maxAge = 0 // no directory, no cache
	}
	c, err := cache.New(s.cfg.cacheDir, maxAge)
	if err != nil {
		return nil, fmt.Errorf("civicdata: cache: %w", err)
	}
	s.fetcher = content.NewFetcher(client.Raw(), c, s.cfg.limits.MaxDownloadSize, s.cfg.limits.PreviewRows)

	return s, nil
}

// BaseURL returns the portal base URL the session talks to.
func (s *Session) BaseURL() string { return s.cfg.baseURL }

// Client returns the underlying CKAN client.
func (s *Session) Client() *ckan.Client { return s.client }

// SearchDatasets performs a free-text dataset search on the portal.
func (s *Session) SearchDatasets(ctx context.Context, query string, p ckan.Page) (*ckan.DatasetPage, error) {
	ctx, task := trace.NewTask(ctx, "SearchDatasets")
	defer task.End()
	return s.client.SearchDatasets(ctx, query, p)
}

// Dataset returns full dataset metadata by UUID or URL name.
func (s *Session) Dataset(ctx context.Context, id string) (*ckan.Dataset, error) {
	return s.client.Dataset(ctx, id)
}

// ListResources returns the resources of a dataset.
func (s *Session) ListResources(ctx context.Context, datasetID string) ([]ckan.Resource, error) {
	return s.client.ListResources(ctx, datasetID)
}

// SearchResources searches individual files by name keywords.
func (s *Session) SearchResources(ctx context.Context, query string, p ckan.Page) (*ckan.ResourcePage, error) {
	ctx, task := trace.NewTask(ctx, "SearchResources")
	defer task.End()
	return s.client.SearchResources(ctx, query, p)
}

// ResourceContent downloads (or recalls from cache) the content of the
// resource with the given ID and returns its extracted form.
func (s *Session) ResourceContent(ctx context.Context, resourceID string, previewOnly bool) (*content.Content, error) {
	ctx, task := trace.NewTask(ctx, "ResourceContent")
	defer task.End()

	r, err := s.client.Resource(ctx, resourceID)
	if err != nil {
		return nil, err
	}
	c, err := s.fetcher.Fetch(ctx, r, previewOnly)
	if err != nil {
		return nil, err
	}
	s.lg.DebugContext(ctx, "resource content fetched",
		"resource", resourceID, "kind", c.Kind, "from_cache", c.FromCache)
	return c, nil
}

// ErrNotTabular is returned by AnalyseResource for non-tabular resources.
var ErrNotTabular = content.ErrNotTabular

// AnalyseResource fetches the full resource content and returns its tabular
// profile.  Non-tabular resources (e.g. PDF) yield ErrNotTabular.
func (s *Session) AnalyseResource(ctx context.Context, resourceID string) (*content.Summary, error) {
	c, err := s.ResourceContent(ctx, resourceID, false)
	if err != nil {
		return nil, err
	}
	if c.Kind != content.KindTabular || c.Table == nil {
		return nil, fmt.Errorf("%w: %s is %s", ErrNotTabular, resourceID, c.Kind)
	}
	return content.Analyse(resourceID, c.Table), nil
}
