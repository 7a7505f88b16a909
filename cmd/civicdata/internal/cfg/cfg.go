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

// Package cfg contains common configuration variables.
package cfg

import (
	"flag"
	"log/slog"
	"os"

	"github.com/rusq/osenv/v2"

	"github.com/ldcommons/civicdata"
	"github.com/ldcommons/civicdata/internal/ckan"
)

const (
	// TokenEnv is the environment variable with the CKAN API key.
	TokenEnv = "CKAN_API_KEY"
	// BaseURLEnv is the environment variable with the portal base URL.
	BaseURLEnv = "CKAN_URL"
)

var (
	TraceFile string
	LogFile   string
	JsonLog   bool
	Verbose   bool

	ConfigFile string
	Token      string
	BaseURL    string

	// LocalCacheDir overrides the default extraction cache location.
	LocalCacheDir string

	// Limits is the active limit set; 'civicdata config' values are applied
	// on top of it.
	Limits = civicdata.DefLimits

	// Log is the "current" logger, it should be initialised by the main
	// package.
	Log = slog.Default()
)

type FlagMask uint16

const (
	DefaultFlags  FlagMask = 0
	OmitAuthFlags FlagMask = 1 << iota
	OmitConfigFlag
	OmitBaseURLFlag
	OmitCacheDir

	OmitAll = OmitAuthFlags |
		OmitConfigFlag |
		OmitBaseURLFlag |
		OmitCacheDir
)

// SetBaseFlags sets base flags.
func SetBaseFlags(fs *flag.FlagSet, mask FlagMask) {
	fs.StringVar(&TraceFile, "trace", os.Getenv("TRACE_FILE"), "trace `filename`")
	fs.StringVar(&LogFile, "log", os.Getenv("LOG_FILE"), "log `file`, if not specified, messages are printed to STDERR")
	fs.BoolVar(&JsonLog, "log-json", osenv.Value("JSON_LOG", false), "log in JSON format")
	fs.BoolVar(&Verbose, "v", osenv.Value("DEBUG", false), "verbose messages")

	if mask&OmitAuthFlags == 0 {
		fs.StringVar(&Token, "token", osenv.Secret(TokenEnv, ""), "CKAN API `key` (environment: "+TokenEnv+")")
	}
	if mask&OmitConfigFlag == 0 {
		fs.StringVar(&ConfigFile, "limits-config", "", "configuration `file` with operational limit overrides.\nYou can generate one with default values with 'civicdata config new'")
	}
	if mask&OmitBaseURLFlag == 0 {
		fs.StringVar(&BaseURL, "url", osenv.Value(BaseURLEnv, ckan.DefaultBaseURL), "CKAN portal base `URL` (environment: "+BaseURLEnv+")")
	}
	if mask&OmitCacheDir == 0 {
		fs.StringVar(&LocalCacheDir, "cache-dir", osenv.Value("CACHE_DIR", ""), "extracted content cache `directory` (empty: OS user cache)")
	}
}

// SetDebugLevel switches the default logger to the debug level.
func SetDebugLevel() {
	slog.SetLogLoggerLevel(slog.LevelDebug)
}
