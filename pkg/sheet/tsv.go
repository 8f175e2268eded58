// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package sheet

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 📑 Delimiter separates fields on a line.
const Delimiter = '\t'

func newReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.Comma = Delimiter
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1
	return cr
}

// 📥 Read parses a tab-delimited table. The first line names the fields and
// every following line is one record. Short lines are padded with empty
// values; lines with more values than the header are rejected.
func Read(r io.Reader) (*Sheet, error) {
	cr := newReader(r)

	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrEmptySheet
	}
	if err != nil {
		return nil, errors.Errorf("reading header: %w", err)
	}

	seen := make(map[string]bool, len(header))
	for _, field := range header {
		if seen[field] {
			return nil, errors.Errorf("%w: duplicate field %q in header", ErrPrecondition, field)
		}
		seen[field] = true
	}

	var records []*Record
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Errorf("reading record %d: %w", len(records)+1, err)
		}
		if len(row) > len(header) {
			return nil, errors.Errorf("%w: record %d has %d values but the header has %d fields",
				ErrPrecondition, len(records)+1, len(row), len(header))
		}
		records = append(records, RecordOf(header, row))
	}

	return New(records)
}

// 📥 ReadFile reads the sheet stored at path.
func ReadFile(ctx context.Context, path string) (*Sheet, error) {
	zerolog.Ctx(ctx).Debug().Str("path", path).Msg("reading sheet")

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Errorf("opening sheet: %w", err)
	}
	defer f.Close()

	s, err := Read(f)
	if err != nil {
		return nil, errors.Errorf("reading sheet %s: %w", path, err)
	}

	zerolog.Ctx(ctx).Debug().
		Str("path", path).
		Int("records", s.Len()).
		Strs("fields", s.Header()).
		Msg("sheet loaded")
	return s, nil
}

// 📤 Write serializes the sheet: a header line, then one line per record.
// Lines end in CRLF as spreadsheet tools expect for tab-separated exports.
// A value is quoted only when it holds a tab, a quote or a line break.
func Write(w io.Writer, s *Sheet) error {
	bw := bufio.NewWriter(w)

	if err := writeLine(bw, s.Header()); err != nil {
		return errors.Errorf("writing header: %w", err)
	}
	for i, row := range s.Rows() {
		if err := writeLine(bw, row); err != nil {
			return errors.Errorf("writing record %d: %w", i+1, err)
		}
	}

	if err := bw.Flush(); err != nil {
		return errors.Errorf("flushing sheet: %w", err)
	}
	return nil
}

func writeLine(w *bufio.Writer, fields []string) error {
	// a lone empty value would otherwise read back as a blank line
	if len(fields) == 1 && fields[0] == "" {
		_, err := w.WriteString("\"\"\r\n")
		return err
	}

	for i, field := range fields {
		if i > 0 {
			if err := w.WriteByte(Delimiter); err != nil {
				return err
			}
		}
		if _, err := w.WriteString(quoteField(field)); err != nil {
			return err
		}
	}
	_, err := w.WriteString("\r\n")
	return err
}

func quoteField(field string) string {
	if !strings.ContainsAny(field, "\t\"\r\n") {
		return field
	}
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}

// Encode returns the serialized form of the sheet.
func Encode(s *Sheet) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
