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

// Package info implements the 'civicdata info' command.
package info

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

// CmdInfo is the "civicdata info" command.
var CmdInfo = &base.Command{
	UsageLine:  "civicdata info [flags] <dataset>",
	Short:      "show dataset metadata and its resource files",
	PrintFlags: true,
	Long: `
# Info Command

Prints the full metadata of a dataset, addressed by UUID or URL name, and
the list of its resource files:

    civicdata info bin-collection-rounds

Use -json for machine-readable output.
`,
	Run: runInfo,
}

var fJSON bool

func init() {
	CmdInfo.Flag.BoolVar(&fJSON, "json", false, "output in JSON format")
}

func runInfo(ctx context.Context, cmd *base.Command, args []string) error {
	ctx, task := trace.NewTask(ctx, "runInfo")
	defer task.End()

	if len(args) != 1 {
		base.SetExitStatus(base.SInvalidParameters)
		return errors.New("info: exactly one dataset UUID or name must be specified")
	}

	sess, err := bootstrap.Session(ctx)
	if err != nil {
		return fmt.Errorf("info: %w", err)
	}

	d, err := sess.Dataset(ctx, args[0])
	if err != nil {
		if ckan.IsNotFound(err) {
			base.SetExitStatus(base.SUserError)
			return fmt.Errorf("info: dataset %q not found", args[0])
		}
		base.SetExitStatus(base.SApplicationError)
		return fmt.Errorf("info: %w", err)
	}
	return printDataset(os.Stdout, d, fJSON)
}

func printDataset(w io.Writer, d *ckan.Dataset, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(d)
	}

	fmt.Fprintf(w, "%s (%s)\n", d.Title, d.Name)
	if d.Organization != nil {
		fmt.Fprintf(w, "Publisher:  %s\n", d.Organization.Title)
	}
	if d.LicenseTitle != "" {
		fmt.Fprintf(w, "Licence:    %s\n", d.LicenseTitle)
	}
	if d.Metadata != "" {
		fmt.Fprintf(w, "Modified:   %s\n", d.Metadata)
	}
	if tags := d.TagNames(); len(tags) > 0 {
		fmt.Fprintf(w, "Tags:       %s\n", strings.Join(tags, ", "))
	}
	if notes := strings.TrimSpace(d.Notes); notes != "" {
		fmt.Fprintf(w, "\n%s\n", notes)
	}

	fmt.Fprintf(w, "\nResources (%d):\n", len(d.Resources))
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tFORMAT\tSIZE\tMODIFIED")
	for _, r := range d.Resources {
		size := ""
		if r.Size > 0 {
			size = humanize.Bytes(uint64(r.Size))
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", r.ID, r.Name, r.Format, size, r.LastModified)
	}
	return tw.Flush()
}
