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

package text

import (
	"fmt"
	"strings"
)

// 🔢 Kind identifies a directive and fixes the order in which directives run.
type Kind int

const (
	KindTruncate Kind = iota // cut the value at the first marker
	KindReplace              // replace every occurrence of a string
	KindRemove               // delete every occurrence of a string
)

// String returns the configuration name of the kind
func (k Kind) String() string {
	switch k {
	case KindTruncate:
		return "truncate"
	case KindReplace:
		return "replace"
	case KindRemove:
		return "remove"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ✏️ Directive is a single text edit. The set of directives is closed:
// Truncate, Replace and Remove.
type Directive interface {
	Kind() Kind
	fmt.Stringer
	directive()
}

// ✂️ Truncate keeps the part of the value before the first Marker.
// Values without the marker are left alone.
type Truncate struct {
	Marker string
}

func (Truncate) Kind() Kind { return KindTruncate }
func (Truncate) directive() {}

func (d Truncate) String() string {
	return fmt.Sprintf("truncate(%q)", d.Marker)
}

// 🔄 Replace substitutes every non-overlapping From with To, left to right.
type Replace struct {
	From string
	To   string
}

func (Replace) Kind() Kind { return KindReplace }
func (Replace) directive() {}

func (d Replace) String() string {
	return fmt.Sprintf("replace(%q -> %q)", d.From, d.To)
}

// 🗑️ Remove deletes every occurrence of Target.
type Remove struct {
	Target string
}

func (Remove) Kind() Kind { return KindRemove }
func (Remove) directive() {}

func (d Remove) String() string {
	return fmt.Sprintf("remove(%q)", d.Target)
}

// apply runs a single directive against value.
func apply(d Directive, value string) string {
	switch d := d.(type) {
	case Truncate:
		if i := strings.Index(value, d.Marker); i >= 0 {
			return value[:i]
		}
		return value
	case Replace:
		return strings.ReplaceAll(value, d.From, d.To)
	case Remove:
		return strings.ReplaceAll(value, d.Target, "")
	default:
		panic(fmt.Sprintf("unknown directive %T", d))
	}
}
