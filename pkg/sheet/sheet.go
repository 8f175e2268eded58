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
	"slices"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// 📚 Sheet is an ordered, non-empty collection of records that all share the
// same field names in the same order.
//
// Every transformation returns a new Sheet and leaves its receiver untouched,
// so a failing stage never leaves a half-edited collection behind.
type Sheet struct {
	records []*Record
}

// 🏭 New builds a sheet from records, checking that they share one header.
func New(records []*Record) (*Sheet, error) {
	if len(records) == 0 {
		return nil, ErrEmptySheet
	}
	first := records[0]
	for i, r := range records[1:] {
		if !first.sameKeys(r) {
			return nil, errors.Errorf("%w: record %d fields %q differ from header %q",
				ErrPrecondition, i+2, r.Keys(), first.Keys())
		}
	}
	return &Sheet{records: records}, nil
}

// Header returns the field names shared by every record.
func (s *Sheet) Header() []string {
	return s.records[0].Keys()
}

// HasField reports whether the header contains field.
func (s *Sheet) HasField(field string) bool {
	_, ok := s.records[0].Get(field)
	return ok
}

// Len returns the number of records.
func (s *Sheet) Len() int {
	return len(s.records)
}

// Record returns the i-th record. The record is owned by the sheet.
func (s *Sheet) Record(i int) *Record {
	return s.records[i]
}

// Records returns the records in order. The records are owned by the sheet.
func (s *Sheet) Records() []*Record {
	return slices.Clone(s.records)
}

// Rows returns the values of every record in header order.
func (s *Sheet) Rows() [][]string {
	rows := make([][]string, 0, len(s.records))
	for _, r := range s.records {
		rows = append(rows, r.Values())
	}
	return rows
}

// 📋 Clone returns a deep copy of the sheet
func (s *Sheet) Clone() *Sheet {
	records := make([]*Record, len(s.records))
	for i, r := range s.records {
		records[i] = r.Clone()
	}
	return &Sheet{records: records}
}

// 🔄 Update returns a copy of the sheet with field set to values[i] on the
// i-th record. The field must already exist.
func (s *Sheet) Update(field string, values []string) (*Sheet, error) {
	if !s.HasField(field) {
		return nil, errors.Errorf("%w: %q", ErrLookup, field)
	}
	if len(values) != len(s.records) {
		return nil, errors.Errorf("%w: %d values for %d records", ErrPrecondition, len(values), len(s.records))
	}
	out := s.Clone()
	for i, r := range out.records {
		r.Set(field, values[i])
	}
	return out, nil
}

// 🏷️ Rename returns a copy of the sheet with fields renamed per aliases
// (old name -> new name). Columns keep their position.
//
// All aliases are applied at once, so swaps such as {a: b, b: a} work.
// Every alias source must exist, and no two columns may end up with the same
// name; either violation fails before anything is renamed.
func (s *Sheet) Rename(aliases map[string]string) (*Sheet, error) {
	header := s.Header()

	for _, old := range sortedKeys(aliases) {
		if !s.HasField(old) {
			return nil, errors.Errorf("%w: alias source %q is not a field", ErrLookup, old)
		}
	}

	renamed := make([]string, len(header))
	owner := make(map[string]string, len(header))
	for i, field := range header {
		name := field
		if alias, ok := aliases[field]; ok {
			name = alias
		}
		if prev, ok := owner[name]; ok {
			return nil, errors.Errorf("%w: fields %q and %q would both be named %q", ErrCollision, prev, field, name)
		}
		owner[name] = field
		renamed[i] = name
	}

	records := make([]*Record, len(s.records))
	for i, r := range s.records {
		records[i] = RecordOf(renamed, r.Values())
	}
	return &Sheet{records: records}, nil
}

// ✂️ Delete returns a copy of the sheet without the named fields. Naming a
// field the sheet does not have is a lookup failure.
func (s *Sheet) Delete(fields []string) (*Sheet, error) {
	drop := make(map[string]bool, len(fields))
	for _, field := range fields {
		if !s.HasField(field) {
			return nil, errors.Errorf("%w: cannot delete %q", ErrLookup, field)
		}
		drop[field] = true
	}

	var kept []string
	for _, field := range s.Header() {
		if !drop[field] {
			kept = append(kept, field)
		}
	}

	records := make([]*Record, len(s.records))
	for i, r := range s.records {
		c := NewRecord()
		for _, field := range kept {
			value, _ := r.Get(field)
			c.Set(field, value)
		}
		records[i] = c
	}
	return &Sheet{records: records}, nil
}

// 🔍 FieldsContaining returns, in header order, the fields whose name
// contains substr.
func (s *Sheet) FieldsContaining(substr string) []string {
	var matched []string
	for _, field := range s.Header() {
		if strings.Contains(field, substr) {
			matched = append(matched, field)
		}
	}
	return matched
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
