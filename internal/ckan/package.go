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

package ckan

// In this file: package_search and package_show actions.

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"net/url"
	"strconv"
)

// searchPageSize is the window size used by AllDatasets.
const searchPageSize = 100

// SearchDatasets performs a free-text dataset search.  An empty query
// matches all datasets on the portal.
func (cl *Client) SearchDatasets(ctx context.Context, query string, p Page) (*DatasetPage, error) {
	v := url.Values{}
	v.Set("q", query)
	if p.Rows > 0 {
		v.Set("rows", strconv.Itoa(p.Rows))
	}
	if p.Start > 0 {
		v.Set("start", strconv.Itoa(p.Start))
	}
	var page DatasetPage
	if err := cl.get(ctx, "package_search", v, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Dataset fetches full dataset metadata, including the resource listing.
// id accepts either the dataset UUID or its URL name; package_show resolves
// both.
func (cl *Client) Dataset(ctx context.Context, id string) (*Dataset, error) {
	if id == "" {
		return nil, errors.New("ckan: package_show: empty dataset id")
	}
	v := url.Values{}
	v.Set("id", id)
	var ds Dataset
	if err := cl.get(ctx, "package_show", v, &ds); err != nil {
		return nil, err
	}
	return &ds, nil
}

// ListResources returns the resources of a dataset.
func (cl *Client) ListResources(ctx context.Context, datasetID string) ([]Resource, error) {
	ds, err := cl.Dataset(ctx, datasetID)
	if err != nil {
		return nil, err
	}
	return ds.Resources, nil
}

// AllDatasets returns an iterator over every dataset matching the query,
// fetching successive rows/start windows from the portal as the consumer
// advances.  The iterator stops at the first upstream error, yielding it as
// the second value.
func (cl *Client) AllDatasets(ctx context.Context, query string) iter.Seq2[Dataset, error] {
	return func(yield func(Dataset, error) bool) {
		for start := 0; ; {
			page, err := cl.SearchDatasets(ctx, query, Page{Rows: searchPageSize, Start: start})
			if err != nil {
				yield(Dataset{}, fmt.Errorf("ckan: page at %d: %w", start, err))
				return
			}
			if len(page.Datasets) == 0 {
				return
			}
			for _, ds := range page.Datasets {
				if !yield(ds, nil) {
					return
				}
			}
			start += len(page.Datasets)
			if start >= page.Count {
				return
			}
		}
	}
}
