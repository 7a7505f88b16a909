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

// Package cache implements the on-disk cache for extracted resource
// content.  Fetching and parsing a portal resource is expensive (a download
// plus CSV/Excel/PDF extraction), so the extracted text is kept on disk and
// reused while it is younger than the configured maximum age.
package cache

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"
)

var (
	ErrEmpty    = errors.New("empty cache file")
	ErrExpired  = errors.New("cache expired")
	ErrDisabled = errors.New("cache disabled")
)

// Cache is a file-backed cache keyed by resource ID and a kind suffix.
// A zero or negative maxAge disables it.
type Cache struct {
	dir    string
	maxAge time.Duration
}

// New creates the cache directory if needed.  If maxAge <= 0 the returned
// cache is disabled and the directory is not created.
func New(dir string, maxAge time.Duration) (*Cache, error) {
	c := &Cache{dir: dir, maxAge: maxAge}
	if !c.enabled() {
		return c, nil
	}
	if dir == "" {
		return nil, errors.New("cache: empty directory")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Cache) enabled() bool { return c != nil && c.maxAge > 0 }

// filename maps (id, suffix) to the cache file path.  The resource ID comes
// from the portal, so it is sanitised before being used as a path element.
func (c *Cache) filename(id, suffix string) string {
	return filepath.Join(c.dir, sanitize(id)+"-"+suffix)
}

// Get returns the cached content for the key, or ErrDisabled, ErrEmpty,
// ErrExpired, or the underlying stat/read error.
func (c *Cache) Get(id, suffix string) ([]byte, error) {
	if !c.enabled() {
		return nil, ErrDisabled
	}
	filename := c.filename(id, suffix)
	if err := checkCacheFile(filename, c.maxAge); err != nil {
		return nil, err
	}
	return os.ReadFile(filename)
}

// Put stores the content under the key.  On a disabled cache it is a no-op.
func (c *Cache) Put(id, suffix string, data []byte) error {
	if !c.enabled() {
		return nil
	}
	return os.WriteFile(c.filename(id, suffix), data, 0o644)
}

// checkCacheFile checks the cache file to see if it is valid.  The file is
// considered valid if it exists, is not empty and is not older than maxAge.
func checkCacheFile(filename string, maxAge time.Duration) error {
	fi, err := os.Stat(filename)
	if err != nil {
		return err
	}
	return validateCache(fi, maxAge)
}

// validateCache tests whether the provided file info meets the requirements
// for a valid cache file.
func validateCache(fi os.FileInfo, maxAge time.Duration) error {
	if fi.IsDir() {
		return errors.New("cache file is a directory")
	}
	if fi.Size() == 0 {
		return ErrEmpty
	}
	if time.Since(fi.ModTime()) > maxAge {
		return ErrExpired
	}
	return nil
}

// sanitize replaces path-hostile characters in the portal-supplied key.
func sanitize(id string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, id)
}
