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
	"slices"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// ErrInvalidDirective is returned for unknown directives, repeated
// directives and directives with the wrong argument shape.
var ErrInvalidDirective = errors.Base("invalid edit directive")

// 📝 Instructions is the set of directives configured for one field.
// It holds at most one directive of each kind and always runs them in Kind
// order (truncate, replace, remove), whatever order they were given in.
// The zero value edits nothing.
type Instructions struct {
	directives []Directive
}

// 🏭 NewInstructions collects directives into an instruction set
func NewInstructions(directives ...Directive) (Instructions, error) {
	seen := make(map[Kind]bool, len(directives))
	for _, d := range directives {
		if d == nil {
			return Instructions{}, errors.Errorf("%w: nil directive", ErrInvalidDirective)
		}
		if seen[d.Kind()] {
			return Instructions{}, errors.Errorf("%w: %s given more than once", ErrInvalidDirective, d.Kind())
		}
		seen[d.Kind()] = true
	}

	sorted := slices.Clone(directives)
	slices.SortFunc(sorted, func(a, b Directive) int {
		return int(a.Kind()) - int(b.Kind())
	})
	return Instructions{directives: sorted}, nil
}

// MustInstructions is like NewInstructions but panics on error.
func MustInstructions(directives ...Directive) Instructions {
	in, err := NewInstructions(directives...)
	if err != nil {
		panic(err)
	}
	return in
}

// Directives returns the directives in the order they run.
func (in Instructions) Directives() []Directive {
	return slices.Clone(in.directives)
}

// Len returns the number of directives.
func (in Instructions) Len() int {
	return len(in.directives)
}

// 🎯 Apply runs the directives against value, each one editing the output of
// the previous one.
func (in Instructions) Apply(value string) string {
	edited := value
	for _, d := range in.directives {
		edited = apply(d, edited)
	}
	return edited
}

// String describes the directives, e.g. `truncate(" (") remove("#")`.
func (in Instructions) String() string {
	if len(in.directives) == 0 {
		return "none"
	}
	parts := make([]string, len(in.directives))
	for i, d := range in.directives {
		parts[i] = d.String()
	}
	return strings.Join(parts, " ")
}

// ✏️ Edit applies instructions to value.
func Edit(value string, instructions Instructions) string {
	return instructions.Apply(value)
}
