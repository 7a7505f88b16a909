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

// In this file: automated tabular profiling, the Go rendition of the
// portal's analyse_tabular_data behaviour: structure, missing values,
// cardinality, sample values and numeric summaries per column.

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrNotTabular marks an attempt to profile a resource that has no table.
var ErrNotTabular = errors.New("content: resource is not tabular")

// maxSampleValues is the number of distinct example values kept per column.
const maxSampleValues = 5

// ColumnKind is the inferred type of a column.
type ColumnKind string

const (
	ColNumeric ColumnKind = "numeric"
	ColText    ColumnKind = "text"
	ColEmpty   ColumnKind = "empty"
)

// NumericSummary holds basic statistics of a numeric column.  Count is the
// number of parseable values.
type NumericSummary struct {
	Count int     `json:"count"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Mean  float64 `json:"mean"`
}

// Summary is the automated profile of a table.
type Summary struct {
	ResourceID string                    `json:"resource_id"`
	Rows       int                       `json:"rows"`
	Cols       int                       `json:"cols"`
	Columns    []string                  `json:"columns"`
	Kinds      map[string]ColumnKind     `json:"column_kinds"`
	Missing    map[string]int            `json:"missing_values"`
	Unique     map[string]int            `json:"unique_counts"`
	Samples    map[string][]string       `json:"sample_values"`
	Numeric    map[string]NumericSummary `json:"numeric_summary,omitempty"`
}

// Analyse profiles the table.  A column counts as numeric when every
// non-missing value parses as a number; a cell is missing when it is empty
// or whitespace.  Duplicate header names are disambiguated so that the
// per-column maps keep one entry per column.
func Analyse(resourceID string, t *Table) *Summary {
	columns := columnLabels(t.Header)
	s := &Summary{
		ResourceID: resourceID,
		Rows:       len(t.Rows),
		Cols:       len(t.Header),
		Columns:    columns,
		Kinds:      make(map[string]ColumnKind, len(columns)),
		Missing:    make(map[string]int, len(columns)),
		Unique:     make(map[string]int, len(columns)),
		Samples:    make(map[string][]string, len(columns)),
		Numeric:    make(map[string]NumericSummary),
	}

	for i, col := range columns {
		var (
			missing int
			distinct = make(map[string]bool)
			samples  []string
			num      NumericSummary
			allNum   = true
		)
		for _, row := range t.Rows {
			v := strings.TrimSpace(row[i])
			if v == "" {
				missing++
				continue
			}
			if !distinct[v] {
				distinct[v] = true
				if len(samples) < maxSampleValues {
					samples = append(samples, v)
				}
			}
			if f, err := parseNumber(v); err == nil {
				if num.Count == 0 || f < num.Min {
					num.Min = f
				}
				if num.Count == 0 || f > num.Max {
					num.Max = f
				}
				num.Mean += f
				num.Count++
			} else {
				allNum = false
			}
		}

		present := len(t.Rows) - missing
		switch {
		case present == 0:
			s.Kinds[col] = ColEmpty
		case allNum:
			s.Kinds[col] = ColNumeric
			num.Mean /= float64(num.Count)
			s.Numeric[col] = num
		default:
			s.Kinds[col] = ColText
		}
		s.Missing[col] = missing
		s.Unique[col] = len(distinct)
		s.Samples[col] = samples
	}
	return s
}

// columnLabels returns the header names with repeats made unique: the
// second "value" column becomes "value #2".
func columnLabels(header []string) []string {
	seen := make(map[string]int, len(header))
	labels := make([]string, len(header))
	for i, col := range header {
		seen[col]++
		if n := seen[col]; n > 1 {
			col = fmt.Sprintf("%s #%d", col, n)
		}
		labels[i] = col
	}
	return labels
}

// parseNumber parses v as a float, tolerating thousands separators and a
// leading currency sign.
func parseNumber(v string) (float64, error) {
	v = strings.ReplaceAll(v, ",", "")
	v = strings.TrimPrefix(v, "£")
	v = strings.TrimPrefix(v, "$")
	return strconv.ParseFloat(v, 64)
}
