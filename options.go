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

package civicdata

import (
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/ldcommons/civicdata/internal/content"
)

// Limits are the tunable operational boundaries of a Session.  They can be
// overridden from the TOML limits file (civicdata config new).
type Limits struct {
	// Timeout is the per-request HTTP timeout.
	Timeout time.Duration `validate:"min=1s,max=15m"`
	// PreviewRows is the number of table rows returned in preview mode.
	PreviewRows int `validate:"min=1,max=10000"`
	// MaxDownloadSize caps a single resource download, bytes.
	MaxDownloadSize int64 `validate:"min=1024"`
	// CacheMaxAge is how long extracted content is reused for; 0 disables
	// the cache.
	CacheMaxAge time.Duration `validate:"min=0s"`
}

// DefLimits is the default limit set.
var DefLimits = Limits{
	Timeout:         30 * time.Second,
	PreviewRows:     content.DefPreviewRows,
	MaxDownloadSize: content.DefMaxDownloadSize,
	CacheMaxAge:     4 * time.Hour,
}

var validate = validator.New()

// Validate checks the limits for invalid values.
func (l *Limits) Validate() error {
	return validate.Struct(l)
}

// Option is the signature of the Session option-setting function.
type Option func(*Session)

// WithBaseURL points the session at a different CKAN portal.  Empty value
// is ignored.
func WithBaseURL(u string) Option {
	return func(s *Session) {
		if u != "" {
			s.cfg.baseURL = u
		}
	}
}

// WithUserAgent overrides the HTTP User-Agent header.
func WithUserAgent(ua string) Option {
	return func(s *Session) {
		s.cfg.userAgent = ua
	}
}

// WithCacheDir sets the directory for the extracted-content cache.  Without
// it the cache is disabled.
func WithCacheDir(dir string) Option {
	return func(s *Session) {
		s.cfg.cacheDir = dir
	}
}

// WithLimits replaces the whole limit set.
func WithLimits(l Limits) Option {
	return func(s *Session) {
		s.cfg.limits = l
	}
}

// WithTimeout sets the per-request HTTP timeout.
func WithTimeout(d time.Duration) Option {
	return func(s *Session) {
		s.cfg.limits.Timeout = d
	}
}

// WithCacheMaxAge sets how long extracted content is reused for.  Zero
// disables the cache.
func WithCacheMaxAge(d time.Duration) Option {
	return func(s *Session) {
		s.cfg.limits.CacheMaxAge = d
	}
}

// WithPreviewRows sets the number of table rows returned in preview mode.
func WithPreviewRows(n int) Option {
	return func(s *Session) {
		s.cfg.limits.PreviewRows = n
	}
}

// WithMaxDownloadSize caps a single resource download, bytes.
func WithMaxDownloadSize(n int64) Option {
	return func(s *Session) {
		s.cfg.limits.MaxDownloadSize = n
	}
}

// WithLogger sets the session logger.  A nil logger resets it to the
// default.
func WithLogger(lg *slog.Logger) Option {
	return func(s *Session) {
		if lg == nil {
			lg = slog.Default()
		}
		s.lg = lg
	}
}
