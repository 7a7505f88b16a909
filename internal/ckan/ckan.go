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

// Package ckan implements a client for the CKAN Action API, the HTTP API of
// the data portal backing the Liverpool Digital Commons.  Only the read
// actions needed for data discovery are implemented: package_search,
// package_show, resource_search and resource_show.
//
// Every call is a single best-effort attempt: there is no retry, backoff or
// client side rate limiting.  Failures are reported as typed errors, see
// errors.go.
package ckan

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the Liverpool Digital Commons portal.
	DefaultBaseURL = "https://www.liverpoolcivicdata.com"
	// actionPath is the common prefix of all Action API endpoints.
	actionPath = "/api/3/action/"

	defTimeout   = 30 * time.Second
	defUserAgent = "civicdata/1.0"
)

// Config holds the client construction parameters.  Token is the portal API
// key, loaded once at process startup; the client never consults the
// environment itself.
type Config struct {
	BaseURL   string
	Token     string
	Timeout   time.Duration
	UserAgent string

	// HTTPClient overrides the default http.Client, used in tests.
	HTTPClient *http.Client
}

// Client is a CKAN Action API client.  It is safe for concurrent use.
type Client struct {
	cl        *http.Client
	apiPath   string // BaseURL + actionPath
	token     string
	userAgent string
}

// New creates a new client.  It returns ErrNoToken if the API key is empty.
func New(cfg Config) (*Client, error) {
	if cfg.Token == "" {
		return nil, ErrNoToken
	}
	base := cfg.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	base = strings.TrimRight(base, "/")
	if _, err := url.Parse(base); err != nil {
		return nil, fmt.Errorf("base url %q: %w", cfg.BaseURL, err)
	}
	cl := cfg.HTTPClient
	if cl == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defTimeout
		}
		cl = &http.Client{Timeout: timeout}
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = defUserAgent
	}
	return &Client{
		cl:        cl,
		apiPath:   base + actionPath,
		token:     cfg.Token,
		userAgent: ua,
	}, nil
}

// Raw returns the underlying http.Client.  It is used by the content fetcher
// to download resource files with the same transport settings.
func (cl *Client) Raw() *http.Client {
	return cl.cl
}

// response is the CKAN Action API envelope.  Result is left raw, as its
// shape depends on the action.
type response struct {
	Success bool            `json:"success"`
	Result  json.RawMessage `json:"result"`
	Error   *apiErrorBody   `json:"error,omitempty"`
}

// apiErrorBody is the error object CKAN returns with success=false.
type apiErrorBody struct {
	Type    string `json:"__type"`
	Message string `json:"message"`
}

// get performs a GET against the named action with the given query values
// and decodes the result envelope into result.  The portal API key is sent
// in the Authorization header, as CKAN expects.
func (cl *Client) get(ctx context.Context, action string, v url.Values, result any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, cl.apiPath+action+"?"+v.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", cl.token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", cl.userAgent)

	resp, err := cl.cl.Do(req)
	if err != nil {
		return fmt.Errorf("ckan: %s: %w", action, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		// CKAN wraps some errors (404, 403, 409) in the standard envelope;
		// preserve the CKAN message if it is there, but the status code is
		// authoritative.
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		se := &StatusError{Action: action, Code: resp.StatusCode}
		var env response
		if err := json.Unmarshal(body, &env); err == nil && env.Error != nil {
			se.Message = env.Error.Message
		}
		return se
	}

	var env response
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return &FormatError{Action: action, Err: err}
	}
	if !env.Success {
		ae := &APIError{Action: action}
		if env.Error != nil {
			ae.Type = env.Error.Type
			ae.Message = env.Error.Message
		}
		return ae
	}
	if result == nil {
		return nil
	}
	if err := json.Unmarshal(env.Result, result); err != nil {
		return &FormatError{Action: action, Err: err}
	}
	return nil
}
