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

package search

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ldcommons/civicdata/internal/ckan"
)

var testDatasetPage = &ckan.DatasetPage{
	Count: 2,
	Datasets: []ckan.Dataset{
		{
			Name:         "bin-collections",
			Title:        "Bin Collections",
			Organization: &ckan.Organization{Title: "City Council"},
			NumResources: 3,
		},
		{Name: "ward-population", Title: "Ward Population"},
	},
}

func Test_printDatasets(t *testing.T) {
	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, printDatasets(&buf, testDatasetPage, false))
		out := buf.String()
		assert.Contains(t, out, "bin-collections")
		assert.Contains(t, out, "City Council")
		assert.Contains(t, out, "2 of 2 matching datasets")
	})
	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, printDatasets(&buf, testDatasetPage, true))
		var got ckan.DatasetPage
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, testDatasetPage.Count, got.Count)
		assert.Len(t, got.Datasets, 2)
	})
}

func Test_printResources(t *testing.T) {
	page := &ckan.ResourcePage{
		Count: 1,
		Resources: []ckan.Resource{
			{ID: "r1", Name: "rounds.csv", Format: "CSV", Size: 1048576},
		},
	}
	var buf bytes.Buffer
	require.NoError(t, printResources(&buf, page, false))
	out := buf.String()
	assert.Contains(t, out, "rounds.csv")
	assert.Contains(t, out, "1.0 MB")
}
