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
	"bytes"
	"fmt"
	"io"

	"github.com/ledongthuc/pdf"
)

// extractPDF extracts the plain text of a PDF document.  The extracted
// text is cached whole; PDFs have no preview mode.
func (f *Fetcher) extractPDF(id string, data []byte) (*Content, error) {
	rd, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("content: open pdf: %w", err)
	}
	r, err := rd.GetPlainText()
	if err != nil {
		return nil, fmt.Errorf("content: extract pdf text: %w", err)
	}
	text, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("content: extract pdf text: %w", err)
	}
	_ = f.cache.Put(id, sfxPDF, text)
	return &Content{ResourceID: id, Kind: KindPDF, Text: string(text)}, nil
}
