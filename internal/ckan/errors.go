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

// In this file: the error taxonomy of the adapter.  Each failure class is a
// distinct type so that callers can tell configuration, transport, remote
// and format failures apart with errors.Is/errors.As.

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNoToken is returned when the client is constructed without an API key.
var ErrNoToken = errors.New("ckan: api key is empty (set CKAN_API_KEY)")

// StatusError is returned when the portal responds with a non-2xx HTTP
// status.  Code preserves the original status code.
type StatusError struct {
	Action  string
	Code    int
	Message string // CKAN error message, if the body carried one
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("ckan: %s: %d %s: %s", e.Action, e.Code, http.StatusText(e.Code), e.Message)
	}
	return fmt.Sprintf("ckan: %s: %d %s", e.Action, e.Code, http.StatusText(e.Code))
}

// NotFound reports whether the error is a not-found response.
func (e *StatusError) NotFound() bool { return e.Code == http.StatusNotFound }

// APIError is returned when the portal responds with HTTP 200 but the
// envelope carries success=false.
type APIError struct {
	Action  string
	Type    string // CKAN error __type, e.g. "Validation Error"
	Message string
}

func (e *APIError) Error() string {
	if e.Type == "" && e.Message == "" {
		return fmt.Sprintf("ckan: %s: api call unsuccessful", e.Action)
	}
	return fmt.Sprintf("ckan: %s: %s: %s", e.Action, e.Type, e.Message)
}

// FormatError is returned when the response body cannot be decoded.
type FormatError struct {
	Action string
	Err    error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("ckan: %s: malformed response: %s", e.Action, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

// IsNotFound reports whether err is a remote not-found failure, either as a
// 404 status or a CKAN "Not Found Error" object.
func IsNotFound(err error) bool {
	var se *StatusError
	if errors.As(err, &se) {
		return se.NotFound()
	}
	var ae *APIError
	if errors.As(err, &ae) {
		return ae.Type == "Not Found Error"
	}
	return false
}
