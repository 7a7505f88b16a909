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

// Package content downloads portal resource files and extracts their
// content as text: tabular data from CSV, delimited text and Excel
// workbooks, and plain text from PDF documents.  Extracted content
// is cached on disk (see internal/cache) so that repeated tool calls on the
// same resource do not re-download the file.
package content

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/ldcommons/civicdata/internal/cache"
	"github.com/ldcommons/civicdata/internal/ckan"
)

// Kind classifies extracted content.
type Kind string

const (
	KindTabular Kind = "tabular"
	KindPDF     Kind = "pdf"
)

// cache file suffixes per kind.
const (
	sfxTabular = "table.csv"
	sfxPDF     = "pdf.txt"
)

const (
	// DefMaxDownloadSize caps a single resource download.
	DefMaxDownloadSize = 50 << 20 // 50 MiB
	// DefPreviewRows is the number of data rows in a tabular preview.
	DefPreviewRows = 50
)

// ErrTooLarge is returned when the resource file exceeds the download cap.
var ErrTooLarge = errors.New("content: resource exceeds the download size limit")

// Content is the extracted content of a single resource.
type Content struct {
	ResourceID string `json:"resource_id"`
	Kind       Kind   `json:"kind"`
	Text       string `json:"text"`
	Table      *Table `json:"-"`
	Truncated  bool   `json:"truncated,omitempty"` // preview cut the table short
	FromCache  bool   `json:"from_cache,omitempty"`
}

// Fetcher downloads and extracts resource content.
type Fetcher struct {
	cl          *http.Client
	cache       *cache.Cache
	maxSize     int64
	previewRows int
}

// NewFetcher creates a fetcher.  cl must not be nil; c may be a disabled
// cache.  maxSize and previewRows fall back to the package defaults when
// non-positive.
func NewFetcher(cl *http.Client, c *cache.Cache, maxSize int64, previewRows int) *Fetcher {
	if maxSize <= 0 {
		maxSize = DefMaxDownloadSize
	}
	if previewRows <= 0 {
		previewRows = DefPreviewRows
	}
	return &Fetcher{cl: cl, cache: c, maxSize: maxSize, previewRows: previewRows}
}

// Fetch returns the extracted content of the resource described by r.  When
// previewOnly is set, tabular content is truncated to the preview row
// count; non-tabular content is returned whole.
func (f *Fetcher) Fetch(ctx context.Context, r *ckan.Resource, previewOnly bool) (*Content, error) {
	if r == nil || r.ID == "" {
		return nil, errors.New("content: no resource metadata")
	}
	if c, ok := f.fromCache(r.ID, previewOnly); ok {
		return c, nil
	}

	if r.URL == "" {
		return nil, fmt.Errorf("content: resource %s has no download url", r.ID)
	}
	data, err := f.download(ctx, r.URL)
	if err != nil {
		return nil, err
	}

	switch {
	case isPDF(r, data):
		return f.extractPDF(r.ID, data)
	case isExcel(r, data):
		return f.extractExcel(r.ID, data, previewOnly)
	default:
		return f.extractCSV(r.ID, data, previewOnly)
	}
}

// fromCache attempts to satisfy the request from the cache.
func (f *Fetcher) fromCache(id string, previewOnly bool) (*Content, bool) {
	if data, err := f.cache.Get(id, sfxTabular); err == nil {
		t, err := parseTable(string(data))
		if err == nil {
			return f.tabular(id, t, previewOnly, true), true
		}
	}
	if data, err := f.cache.Get(id, sfxPDF); err == nil {
		return &Content{ResourceID: id, Kind: KindPDF, Text: string(data), FromCache: true}, true
	}
	return nil, false
}

// download performs a single GET of the resource file, capped at maxSize.
func (f *Fetcher) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.cl.Do(req)
	if err != nil {
		return nil, fmt.Errorf("content: download: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &ckan.StatusError{Action: "download", Code: resp.StatusCode}
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, f.maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("content: download: %w", err)
	}
	if int64(len(data)) > f.maxSize {
		return nil, ErrTooLarge
	}
	return data, nil
}

// tabular assembles a tabular Content, applying the preview cut and
// rendering the text form.
func (f *Fetcher) tabular(id string, t *Table, previewOnly, fromCache bool) *Content {
	truncated := false
	if previewOnly && len(t.Rows) > f.previewRows {
		t = &Table{Header: t.Header, Rows: t.Rows[:f.previewRows]}
		truncated = true
	}
	return &Content{
		ResourceID: id,
		Kind:       KindTabular,
		Text:       t.Render(),
		Table:      t,
		Truncated:  truncated,
		FromCache:  fromCache,
	}
}

// cacheTable stores the full normalised table, regardless of preview mode.
func (f *Fetcher) cacheTable(id string, t *Table) {
	_ = f.cache.Put(id, sfxTabular, []byte(t.CSV()))
}

// Format detection follows the original portal behaviour: trust the CKAN
// metadata first, then fall back to content magic bytes.

var (
	magicZIP = []byte("PK")                                 // modern Excel (xlsx)
	magicOLE = []byte{0xd0, 0xcf, 0x11, 0xe0, 0xa1, 0xb1, 0x1a, 0xe1} // legacy xls
	magicPDF = []byte("%PDF")
)

func isExcel(r *ckan.Resource, data []byte) bool {
	switch strings.ToLower(r.Format) {
	case "xlsx", "xlsm", "xls", "excel":
		return true
	}
	mt := strings.ToLower(r.Mimetype)
	if strings.Contains(mt, "excel") || strings.Contains(mt, "spreadsheet") {
		return true
	}
	for _, s := range []string{strings.ToLower(r.Name), strings.ToLower(r.URL)} {
		if strings.HasSuffix(s, ".xlsx") || strings.HasSuffix(s, ".xlsm") || strings.HasSuffix(s, ".xls") {
			return true
		}
	}
	return bytes.HasPrefix(data, magicZIP) || bytes.HasPrefix(data, magicOLE)
}

func isPDF(r *ckan.Resource, data []byte) bool {
	if strings.EqualFold(r.Format, "pdf") || strings.Contains(strings.ToLower(r.Mimetype), "pdf") {
		return true
	}
	return bytes.HasPrefix(data, magicPDF)
}
