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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

func TestEdit(t *testing.T) {
	tests := []struct {
		name       string
		value      string
		directives []Directive
		want       string
	}{
		{
			name:  "no_directives",
			value: "Sunset (draft)",
			want:  "Sunset (draft)",
		},
		{
			name:       "truncate_found",
			value:      "Sunset (draft) (v2)",
			directives: []Directive{Truncate{Marker: " ("}},
			want:       "Sunset",
		},
		{
			name:       "truncate_missing_marker",
			value:      "Sunset",
			directives: []Directive{Truncate{Marker: "#"}},
			want:       "Sunset",
		},
		{
			name:       "truncate_at_start",
			value:      "#tag",
			directives: []Directive{Truncate{Marker: "#"}},
			want:       "",
		},
		{
			name:       "replace_all_occurrences",
			value:      "a b c",
			directives: []Directive{Replace{From: " ", To: "_"}},
			want:       "a_b_c",
		},
		{
			name:       "replace_non_overlapping_left_to_right",
			value:      "aaa",
			directives: []Directive{Replace{From: "aa", To: "b"}},
			want:       "ba",
		},
		{
			name:       "remove_all_occurrences",
			value:      "a-b-c",
			directives: []Directive{Remove{Target: "-"}},
			want:       "abc",
		},
		{
			name:       "truncate_runs_before_replace_whatever_the_given_order",
			value:      "x-y z",
			directives: []Directive{Replace{From: "-", To: " "}, Truncate{Marker: " "}},
			want:       "x y",
		},
		{
			name:  "all_three_in_reverse_order",
			value: "New York, NY (2019)",
			directives: []Directive{
				Remove{Target: ","},
				Replace{From: " ", To: "-"},
				Truncate{Marker: " ("},
			},
			want: "New-York-NY",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, err := NewInstructions(tt.directives...)
			require.NoError(t, err)

			got := Edit(tt.value, in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, Edit(tt.value, in), "editing should be deterministic")
		})
	}
}

func TestTruncateProperties(t *testing.T) {
	values := []string{"", "abc", "hello world", "a.b.c", "ünïcödé text"}
	markers := []string{"z", "#", "XYZ"}

	for _, s := range values {
		for _, m := range markers {
			assert.Equal(t, s, apply(Truncate{Marker: m}, s), "missing marker %q should leave %q unchanged", m, s)
		}
	}

	s := "prefix::suffix::more"
	assert.Equal(t, s[:6], apply(Truncate{Marker: "::"}, s), "truncate should cut at the first occurrence")
}

func TestRemoveEqualsReplaceWithEmpty(t *testing.T) {
	values := []string{"", "abc", "a--b--c", "---", "nothing"}
	targets := []string{"-", "--", "b", "zz", ""}

	for _, s := range values {
		for _, target := range targets {
			assert.Equal(t,
				apply(Replace{From: target, To: ""}, s),
				apply(Remove{Target: target}, s),
				"remove(%q, %q)", s, target)
		}
	}
}

func TestNewInstructions(t *testing.T) {
	t.Run("sorted_by_kind", func(t *testing.T) {
		in, err := NewInstructions(Remove{Target: "x"}, Truncate{Marker: "y"}, Replace{From: "a", To: "b"})
		require.NoError(t, err)

		kinds := []Kind{}
		for _, d := range in.Directives() {
			kinds = append(kinds, d.Kind())
		}
		assert.Equal(t, []Kind{KindTruncate, KindReplace, KindRemove}, kinds)
		assert.Equal(t, `truncate("y") replace("a" -> "b") remove("x")`, in.String())
	})

	t.Run("duplicate_kind", func(t *testing.T) {
		_, err := NewInstructions(Remove{Target: "x"}, Remove{Target: "y"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidDirective))
		assert.Contains(t, err.Error(), "remove given more than once")
	})

	t.Run("zero_value", func(t *testing.T) {
		var in Instructions
		assert.Equal(t, 0, in.Len())
		assert.Equal(t, "none", in.String())
		assert.Equal(t, "unchanged", in.Apply("unchanged"))
	})
}
