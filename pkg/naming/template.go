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

package naming

import (
	"regexp"
	"slices"
	"strings"

	"github.com/walteh/formedit/pkg/sheet"
	"github.com/walteh/formedit/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// placeholderPattern matches, in order of preference: an escaped "$$", a bare
// "$name", a braced "${name}", or a lone "$" that starts nothing valid.
var placeholderPattern = regexp.MustCompile(`\$(?:(\$)|([_A-Za-z][_A-Za-z0-9]*)|\{([_A-Za-z][_A-Za-z0-9]*)\}|)`)

// 🔍 Lookup reads a field value from a record
type Lookup interface {
	Get(field string) (string, bool)
}

// 🧩 SafeSubstitute replaces "$name" and "${name}" with mapping[name]. Names
// missing from mapping, and any "$" that does not start a placeholder, are
// left as written. "$$" becomes a single "$".
func SafeSubstitute(template string, mapping map[string]string) string {
	var b strings.Builder
	last := 0
	for _, m := range placeholderPattern.FindAllStringSubmatchIndex(template, -1) {
		b.WriteString(template[last:m[0]])
		last = m[1]

		match := template[m[0]:m[1]]
		switch {
		case m[2] >= 0:
			b.WriteByte('$')
		case m[4] >= 0:
			b.WriteString(lookup(mapping, template[m[4]:m[5]], match))
		case m[6] >= 0:
			b.WriteString(lookup(mapping, template[m[6]:m[7]], match))
		default:
			b.WriteString(match)
		}
	}
	b.WriteString(template[last:])
	return b.String()
}

func lookup(mapping map[string]string, name, fallback string) string {
	if v, ok := mapping[name]; ok {
		return v
	}
	return fallback
}

// 📋 Placeholders lists the distinct names referenced by template, in order
// of first appearance.
func Placeholders(template string) []string {
	var names []string
	for _, m := range placeholderPattern.FindAllStringSubmatchIndex(template, -1) {
		var name string
		switch {
		case m[4] >= 0:
			name = template[m[4]:m[5]]
		case m[6] >= 0:
			name = template[m[6]:m[7]]
		default:
			continue
		}
		if !slices.Contains(names, name) {
			names = append(names, name)
		}
	}
	return names
}

// 🏷️ Generate builds a filename for record. Each field in fields is read from
// the record, edited with its instructions and substituted into template.
// A field missing from the record is a lookup failure.
func Generate(record Lookup, template string, fields map[string]text.Instructions) (string, error) {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	slices.Sort(names)

	mapping := make(map[string]string, len(fields))
	for _, name := range names {
		value, ok := record.Get(name)
		if !ok {
			return "", errors.Errorf("%w: record has no field %q", sheet.ErrLookup, name)
		}
		mapping[name] = fields[name].Apply(value)
	}

	return SafeSubstitute(template, mapping), nil
}

// 📎 Extension returns the extension of filename, dot included: everything
// from the last "." to the end. A filename without a "." has no extension
// and is a precondition violation.
func Extension(filename string) (string, error) {
	i := strings.LastIndexByte(filename, '.')
	if i < 0 {
		return "", errors.Errorf("%w: filename %q has no extension", sheet.ErrPrecondition, filename)
	}
	return filename[i:], nil
}
