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

// Package search implements the 'civicdata search' command.
package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime/trace"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/ldcommons/civicdata/cmd/civicdata/internal/bootstrap"
	"github.com/ldcommons/civicdata/cmd/civicdata/internal/golang/base"
	"github.com/ldcommons/civicdata/internal/ckan"
)

// CmdSearch is the "civicdata search" command.
var CmdSearch = &base.Command{
	UsageLine:  "civicdata search [flags] <query terms>",
	Short:      "search datasets or resource files on the portal",
	PrintFlags: true,
	Long: `
# Search Command

Searches the portal for datasets matching the free-text query:

    civicdata search bin collections

With the -files flag it searches individual resource files by name keywords
instead:

    civicdata search -files spending 2024

Use -json for machine-readable output.
`,
	Run: runSearch,
}

var (
	fFiles bool
	fJSON  bool
	fRows  int
	fStart int
)

func init() {
	CmdSearch.Flag.BoolVar(&fFiles, "files", false, "search resource files instead of datasets")
	CmdSearch.Flag.BoolVar(&fJSON, "json", false, "output in JSON format")
	CmdSearch.Flag.IntVar(&fRows, "n", 20, "maximum `number` of results")
	CmdSearch.Flag.IntVar(&fStart, "start", 0, "`offset` of the first result (datasets only)")
}

func runSearch(ctx context.Context, cmd *base.Command, args []string) error {
	ctx, task := trace.NewTask(ctx, "runSearch")
	defer task.End()

	query := strings.TrimSpace(strings.Join(args, " "))
	if query == "" && fFiles {
		base.SetExitStatus(base.SInvalidParameters)
		return errors.New("search: query terms must be specified")
	}

	sess, err := bootstrap.Session(ctx)
	if err != nil {
		return fmt.Errorf("search: %w", err)
	}

	if fFiles {
		page, err := sess.SearchResources(ctx, query, ckan.Page{Rows: fRows})
		if err != nil {
			base.SetExitStatus(base.SApplicationError)
			return fmt.Errorf("search: %w", err)
		}
		return printResources(os.Stdout, page, fJSON)
	}

	page, err := sess.SearchDatasets(ctx, query, ckan.Page{Rows: fRows, Start: fStart})
	if err != nil {
		base.SetExitStatus(base.SApplicationError)
		return fmt.Errorf("search: %w", err)
	}
	return printDatasets(os.Stdout, page, fJSON)
}

func printDatasets(w io.Writer, page *ckan.DatasetPage, asJSON bool) error {
	if asJSON {
		return writeJSON(w, page)
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tTITLE\tORGANIZATION\tRESOURCES")
	for _, d := range page.Datasets {
		org := ""
		if d.Organization != nil {
			org = d.Organization.Title
		}
		n := d.NumResources
		if n == 0 {
			n = len(d.Resources)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", d.Name, d.Title, org, n)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\n%d of %d matching datasets shown.\n", len(page.Datasets), page.Count)
	return err
}

func printResources(w io.Writer, page *ckan.ResourcePage, asJSON bool) error {
	if asJSON {
		return writeJSON(w, page)
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tFORMAT\tSIZE")
	for _, r := range page.Resources {
		size := ""
		if r.Size > 0 {
			size = humanize.Bytes(uint64(r.Size))
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.ID, r.Name, r.Format, size)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\n%d of %d matching resources shown.\n", len(page.Resources), page.Count)
	return err
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
