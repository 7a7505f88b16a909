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

package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyse(t *testing.T) {
	tbl := &Table{
		Header: []string{"ward", "population", "blank"},
		Rows: [][]string{
			{"Anfield", "14,510", ""},
			{"Everton", "15120", ""},
			{"Anfield", "", ""},
		},
	}
	s := Analyse("r1", tbl)

	assert.Equal(t, "r1", s.ResourceID)
	assert.Equal(t, 3, s.Rows)
	assert.Equal(t, 3, s.Cols)
	assert.Equal(t, []string{"ward", "population", "blank"}, s.Columns)

	assert.Equal(t, ColText, s.Kinds["ward"])
	assert.Equal(t, ColNumeric, s.Kinds["population"])
	assert.Equal(t, ColEmpty, s.Kinds["blank"])

	assert.Equal(t, 0, s.Missing["ward"])
	assert.Equal(t, 1, s.Missing["population"])
	assert.Equal(t, 3, s.Missing["blank"])

	assert.Equal(t, 2, s.Unique["ward"])
	assert.Equal(t, []string{"Anfield", "Everton"}, s.Samples["ward"])

	num, ok := s.Numeric["population"]
	require.True(t, ok)
	assert.Equal(t, 2, num.Count)
	assert.InDelta(t, 14510, num.Min, 0.01)
	assert.InDelta(t, 15120, num.Max, 0.01)
	assert.InDelta(t, (14510.0+15120.0)/2, num.Mean, 0.01)

	// text columns get no numeric summary.
	_, ok = s.Numeric["ward"]
	assert.False(t, ok)
}

func TestAnalyse_duplicateHeaders(t *testing.T) {
	tbl := &Table{
		Header: []string{"value", "value"},
		Rows: [][]string{
			{"1", "x"},
			{"2", "y"},
		},
	}
	s := Analyse("r1", tbl)

	// both columns keep their own map entry.
	assert.Equal(t, []string{"value", "value #2"}, s.Columns)
	assert.Equal(t, ColNumeric, s.Kinds["value"])
	assert.Equal(t, ColText, s.Kinds["value #2"])
	assert.Equal(t, 2, s.Unique["value"])
	assert.Equal(t, []string{"x", "y"}, s.Samples["value #2"])
}

func TestAnalyse_sampleCap(t *testing.T) {
	rows := make([][]string, 0, 20)
	for i := range 20 {
		rows = append(rows, []string{string(rune('a' + i))})
	}
	s := Analyse("r", &Table{Header: []string{"c"}, Rows: rows})
	assert.Len(t, s.Samples["c"], maxSampleValues)
	assert.Equal(t, 20, s.Unique["c"])
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"42", 42, false},
		{"1,234.5", 1234.5, false},
		{"£99", 99, false},
		{"$7", 7, false},
		{"-0.5", -0.5, false},
		{"n/a", 0, true},
	}
	for _, tt := range tests {
		got, err := parseNumber(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}
