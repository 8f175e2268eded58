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
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// 📄 Record is one row of a sheet: field names mapped to string values in
// column order.
type Record struct {
	fields *orderedmap.OrderedMap[string, string]
}

// 🏭 NewRecord creates an empty record
func NewRecord() *Record {
	return &Record{
		fields: orderedmap.New[string, string](),
	}
}

// 🏭 RecordOf builds a record from parallel header and value slices.
// Missing trailing values are stored as empty strings.
func RecordOf(header, values []string) *Record {
	r := NewRecord()
	for i, field := range header {
		value := ""
		if i < len(values) {
			value = values[i]
		}
		r.Set(field, value)
	}
	return r
}

// Get returns the value stored under field.
func (r *Record) Get(field string) (string, bool) {
	return r.fields.Get(field)
}

// Set stores value under field. New fields are appended after the last one.
func (r *Record) Set(field, value string) {
	r.fields.Set(field, value)
}

// Len returns the number of fields.
func (r *Record) Len() int {
	return r.fields.Len()
}

// Keys returns the field names in column order.
func (r *Record) Keys() []string {
	keys := make([]string, 0, r.fields.Len())
	for pair := r.fields.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Values returns the field values in column order.
func (r *Record) Values() []string {
	values := make([]string, 0, r.fields.Len())
	for pair := r.fields.Oldest(); pair != nil; pair = pair.Next() {
		values = append(values, pair.Value)
	}
	return values
}

// 📋 Clone returns an independent copy of the record
func (r *Record) Clone() *Record {
	c := NewRecord()
	for pair := r.fields.Oldest(); pair != nil; pair = pair.Next() {
		c.fields.Set(pair.Key, pair.Value)
	}
	return c
}

// sameKeys reports whether both records carry the same fields in the same order.
func (r *Record) sameKeys(other *Record) bool {
	if r.fields.Len() != other.fields.Len() {
		return false
	}
	a, b := r.fields.Oldest(), other.fields.Oldest()
	for a != nil {
		if a.Key != b.Key {
			return false
		}
		a, b = a.Next(), b.Next()
	}
	return true
}
