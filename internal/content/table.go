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

// In this file: CSV extraction.  Portal CSV files come in a variety of
// dialects and encodings, so the parser sniffs the delimiter, tolerates
// ragged rows by padding or truncating them to the header width, and falls
// back from UTF-8 to Windows-1252 decoding.

import (
	"encoding/csv"
	"errors"
	"strings"
	"text/tabwriter"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// Table is a parsed tabular resource.
type Table struct {
	Header []string
	Rows   [][]string
}

// sniffDelimiters are tried in order when detecting the CSV dialect.
var sniffDelimiters = []rune{',', ';', '\t', '|'}

// extractCSV parses data as delimited text and returns a tabular Content.
// Undecodable or empty input is a format error.
func (f *Fetcher) extractCSV(id string, data []byte, previewOnly bool) (*Content, error) {
	text, err := decodeText(data)
	if err != nil {
		return nil, err
	}
	t, err := parseTable(text)
	if err != nil {
		return nil, err
	}
	f.cacheTable(id, t)
	return f.tabular(id, t, previewOnly, false), nil
}

// decodeText decodes raw bytes as UTF-8, falling back to Windows-1252
// (which subsumes the Latin-1 range the portal files use).  NUL bytes are
// dropped, line endings normalised.
func decodeText(data []byte) (string, error) {
	var text string
	if utf8.Valid(data) {
		text = string(data)
	} else {
		decoded, err := charmap.Windows1252.NewDecoder().Bytes(data)
		if err != nil {
			return "", errors.New("content: could not decode file with any supported encoding")
		}
		text = string(decoded)
	}
	text = strings.ReplaceAll(text, "\x00", "")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return text, nil
}

// parseTable parses delimited text into a Table, sniffing the delimiter
// from the first line.
func parseTable(text string) (*Table, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errors.New("content: no data found in file")
	}
	rd := csv.NewReader(strings.NewReader(text))
	rd.Comma = sniffDelimiter(text)
	rd.FieldsPerRecord = -1
	rd.LazyQuotes = true

	records, err := rd.ReadAll()
	if err != nil {
		return nil, errors.New("content: could not parse delimited data: " + err.Error())
	}
	if len(records) == 0 {
		return nil, errors.New("content: no data found in file")
	}

	header := records[0]
	rows := make([][]string, 0, len(records)-1)
	for _, rec := range records[1:] {
		rows = append(rows, fitRow(rec, len(header)))
	}
	return &Table{Header: header, Rows: rows}, nil
}

// sniffDelimiter picks the candidate delimiter that occurs most often in
// the first line.  Comma wins ties, matching its position in the candidate
// list.
func sniffDelimiter(text string) rune {
	line, _, _ := strings.Cut(text, "\n")
	best, bestCount := ',', 0
	for _, d := range sniffDelimiters {
		if n := strings.Count(line, string(d)); n > bestCount {
			best, bestCount = d, n
		}
	}
	return best
}

// fitRow pads or truncates rec to n fields.
func fitRow(rec []string, n int) []string {
	if len(rec) == n {
		return rec
	}
	if len(rec) > n {
		return rec[:n]
	}
	padded := make([]string, n)
	copy(padded, rec)
	return padded
}

// Render returns the table as column-aligned text, header first.
func (t *Table) Render() string {
	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 4, 2, ' ', 0)
	writeRow(w, t.Header)
	for _, row := range t.Rows {
		writeRow(w, row)
	}
	w.Flush()
	return sb.String()
}

func writeRow(w *tabwriter.Writer, row []string) {
	for i, cell := range row {
		if i > 0 {
			w.Write([]byte{'\t'})
		}
		w.Write([]byte(strings.ReplaceAll(cell, "\t", " ")))
	}
	w.Write([]byte{'\n'})
}

// CSV returns the table as normalised comma-separated text, the form it is
// cached in.
func (t *Table) CSV() string {
	var sb strings.Builder
	w := csv.NewWriter(&sb)
	w.Write(t.Header)
	w.WriteAll(t.Rows)
	w.Flush()
	return sb.String()
}
