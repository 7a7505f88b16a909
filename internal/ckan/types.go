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

// In this file: records of the CKAN response schema.  Field names follow
// CKAN's JSON verbatim; only the subset the tools consume is mapped.

// Dataset is a CKAN package: a titled collection of resources published by
// an organization.
type Dataset struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"` // URL name, e.g. "census-2021-population"
	Title        string        `json:"title"`
	Notes        string        `json:"notes,omitempty"`
	URL          string        `json:"url,omitempty"`
	LicenseTitle string        `json:"license_title,omitempty"`
	Metadata     string        `json:"metadata_modified,omitempty"`
	Organization *Organization `json:"organization,omitempty"`
	Tags         []Tag         `json:"tags,omitempty"`
	Resources    []Resource    `json:"resources,omitempty"`
	NumResources int           `json:"num_resources,omitempty"`
}

// TagNames returns the display names of the dataset tags.
func (d *Dataset) TagNames() []string {
	names := make([]string, 0, len(d.Tags))
	for _, t := range d.Tags {
		if t.DisplayName != "" {
			names = append(names, t.DisplayName)
		} else {
			names = append(names, t.Name)
		}
	}
	return names
}

// Organization is the publishing body of a dataset.
type Organization struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Title string `json:"title"`
}

// Tag is a dataset keyword.
type Tag struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name,omitempty"`
}

// Resource is a single file (CSV, Excel, PDF, ...) belonging to a dataset.
type Resource struct {
	ID           string `json:"id"`
	PackageID    string `json:"package_id"`
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	URL          string `json:"url"`
	Format       string `json:"format"`
	Mimetype     string `json:"mimetype,omitempty"`
	Size         int64  `json:"size,omitempty"`
	LastModified string `json:"last_modified,omitempty"`
}

// Page is a rows/start pagination window of a search call, mapping directly
// onto the CKAN parameters of the same names.
type Page struct {
	Rows  int // maximum number of results to return; 0 means server default
	Start int // offset of the first result
}

// DatasetPage is one window of package_search results.  Count is the total
// number of matches on the portal, not the size of Datasets.
type DatasetPage struct {
	Count    int       `json:"count"`
	Datasets []Dataset `json:"results"`
}

// ResourcePage is one window of resource_search results.
type ResourcePage struct {
	Count     int        `json:"count"`
	Resources []Resource `json:"results"`
}
