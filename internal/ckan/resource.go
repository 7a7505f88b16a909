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

// In this file: resource_search and resource_show actions.

import (
	"context"
	"errors"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
)

// maxSearchWords caps the resource_search fan-out.
const maxSearchWords = 8

// Resource fetches resource metadata by resource ID.
func (cl *Client) Resource(ctx context.Context, id string) (*Resource, error) {
	if id == "" {
		return nil, errors.New("ckan: resource_show: empty resource id")
	}
	v := url.Values{}
	v.Set("id", id)
	var r Resource
	if err := cl.get(ctx, "resource_show", v, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// SearchResources searches resources by name.  CKAN's resource_search only
// matches single terms, so the query is split on whitespace and one search
// is issued per word concurrently; results are merged with duplicates
// removed.  Word order of the query is preserved in the merged output.
//
// For a single-word query Count is the portal-side total.  For multi-word
// queries the per-word totals overlap in unknown ways beyond the returned
// window, so Count reflects the distinct resources actually returned.
func (cl *Client) SearchResources(ctx context.Context, query string, p Page) (*ResourcePage, error) {
	words := strings.Fields(query)
	if len(words) == 0 {
		return &ResourcePage{}, nil
	}
	if len(words) > maxSearchWords {
		words = words[:maxSearchWords]
	}
	if len(words) == 1 {
		return cl.resourceSearchWord(ctx, words[0], p)
	}

	pages := make([]*ResourcePage, len(words))
	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	for i, word := range words {
		g.Go(func() error {
			page, err := cl.resourceSearchWord(ctx, word, p)
			if err != nil {
				return err
			}
			mu.Lock()
			pages[i] = page
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := &ResourcePage{}
	seen := make(map[string]bool)
	for _, page := range pages {
		for _, r := range page.Resources {
			if seen[r.ID] {
				continue
			}
			seen[r.ID] = true
			merged.Resources = append(merged.Resources, r)
		}
	}
	merged.Count = len(merged.Resources)
	return merged, nil
}

func (cl *Client) resourceSearchWord(ctx context.Context, word string, p Page) (*ResourcePage, error) {
	v := url.Values{}
	v.Set("query", "name:"+word)
	if p.Rows > 0 {
		v.Set("limit", strconv.Itoa(p.Rows))
	}
	if p.Start > 0 {
		v.Set("offset", strconv.Itoa(p.Start))
	}
	var page ResourcePage
	if err := cl.get(ctx, "resource_search", v, &page); err != nil {
		return nil, err
	}
	return &page, nil
}
