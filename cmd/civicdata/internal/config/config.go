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

// Package config implements the 'civicdata config' command and the
// operational limits file handling.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"

	"github.com/ldcommons/civicdata"
	"github.com/ldcommons/civicdata/cmd/civicdata/internal/golang/base"
)

var CmdConfig = &base.Command{
	UsageLine: "civicdata config",
	Short:     "operational limits configuration",
	Long: `
# Config Command

Config command allows to perform different operations on the operational
limits configuration file (request timeout, preview rows, download cap,
cache age).
`,
	Commands: []*base.Command{
		CmdConfigNew,
		CmdConfigCheck,
	},
}

var ErrConfigInvalid = errors.New("config validation failed")

// duration makes time.Duration round-trip through TOML as a human-readable
// string ("30s"), which BurntSushi/toml does not do on its own.
type duration time.Duration

func (d duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

func (d *duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = duration(v)
	return nil
}

// limitsFile is the on-disk representation of civicdata.Limits.
type limitsFile struct {
	Timeout         duration `toml:"timeout"`
	PreviewRows     int      `toml:"preview_rows"`
	MaxDownloadSize int64    `toml:"max_download_size"`
	CacheMaxAge     duration `toml:"cache_max_age"`
}

func (lf limitsFile) limits() civicdata.Limits {
	return civicdata.Limits{
		Timeout:         time.Duration(lf.Timeout),
		PreviewRows:     lf.PreviewRows,
		MaxDownloadSize: lf.MaxDownloadSize,
		CacheMaxAge:     time.Duration(lf.CacheMaxAge),
	}
}

func fileLimits(l civicdata.Limits) limitsFile {
	return limitsFile{
		Timeout:         duration(l.Timeout),
		PreviewRows:     l.PreviewRows,
		MaxDownloadSize: l.MaxDownloadSize,
		CacheMaxAge:     duration(l.CacheMaxAge),
	}
}

// Load reads, parses and validates the limits file.
func Load(filename string) (*civicdata.Limits, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return load(f)
}

func load(r io.Reader) (*civicdata.Limits, error) {
	lf := fileLimits(civicdata.DefLimits)
	md, err := toml.NewDecoder(r).Decode(&lf)
	if err != nil {
		return nil, err
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		return nil, fmt.Errorf("%w: unknown keys: %v", ErrConfigInvalid, undec)
	}
	limits := lf.limits()
	if err := limits.Validate(); err != nil {
		if err := printErrors(os.Stderr, err); err != nil {
			return nil, err
		}
		return nil, ErrConfigInvalid
	}
	return &limits, nil
}

// Save writes the limits to filename in TOML format.
func Save(filename string, limits civicdata.Limits) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(fileLimits(limits))
}

func printErrors(w io.Writer, err error) error {
	if err == nil {
		return nil
	}

	var wErr error
	printErr := func(format string, a ...any) {
		if wErr != nil {
			return
		}
		_, wErr = fmt.Fprintf(w, format, a...)
	}

	printErr("Detected problems:\n")
	var vErr validator.ValidationErrors
	if !errors.As(err, &vErr) {
		return err
	}
	for i, entry := range vErr {
		printErr("\t%2d: %s\n", i+1, entry)
	}
	return wErr
}
