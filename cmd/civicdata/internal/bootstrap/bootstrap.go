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

// Package bootstrap contains initialisation functions that are shared
// between the top level commands.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/ldcommons/civicdata"
	"github.com/ldcommons/civicdata/cmd/civicdata/internal/cfg"
	"github.com/ldcommons/civicdata/cmd/civicdata/internal/config"
	"github.com/ldcommons/civicdata/cmd/civicdata/internal/golang/base"
)

// Session returns the portal Session initialised with the credential and a
// standard set of options from the configuration.  One can provide
// additional options to override the defaults.  Construction fails
// immediately when no CKAN API key is configured.
func Session(ctx context.Context, opts ...civicdata.Option) (*civicdata.Session, error) {
	limits := cfg.Limits
	if cfg.ConfigFile != "" {
		l, err := config.Load(cfg.ConfigFile)
		if err != nil {
			base.SetExitStatus(base.SUserError)
			return nil, fmt.Errorf("limits config: %w", err)
		}
		limits = *l
	}

	stdOpts := []civicdata.Option{
		civicdata.WithLogger(cfg.Log),
		civicdata.WithBaseURL(cfg.BaseURL),
		civicdata.WithCacheDir(cfg.CacheDir()),
		civicdata.WithLimits(limits),
	}
	stdOpts = append(stdOpts, opts...)

	sess, err := civicdata.New(cfg.Token, stdOpts...)
	if err != nil {
		base.SetExitStatus(base.SAuthError)
		return nil, err
	}
	return sess, nil
}
