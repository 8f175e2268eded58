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
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

func TestInstructionsDecoding(t *testing.T) {
	tests := []struct {
		name        string
		json        string
		yaml        string
		want        string
		errContains string
	}{
		{
			name: "all_directives",
			json: `{"remove": "#", "truncate": " (", "replace": [" ", "_"]}`,
			yaml: "remove: '#'\ntruncate: ' ('\nreplace: [' ', '_']\n",
			want: `truncate(" (") replace(" " -> "_") remove("#")`,
		},
		{
			name: "empty_object",
			json: `{}`,
			yaml: "{}\n",
			want: "none",
		},
		{
			name: "null",
			json: `null`,
			yaml: "~\n",
			want: "none",
		},
		{
			name:        "unknown_directive",
			json:        `{"uppercase": true}`,
			yaml:        "uppercase: true\n",
			errContains: `unknown directive "uppercase"`,
		},
		{
			name:        "replace_with_one_argument",
			json:        `{"replace": ["a"]}`,
			yaml:        "replace: [a]\n",
			errContains: "replace takes a list of two strings",
		},
		{
			name:        "replace_with_string",
			json:        `{"replace": "a"}`,
			yaml:        "replace: a\n",
			errContains: "replace takes a list of two strings",
		},
		{
			name:        "truncate_with_number",
			json:        `{"truncate": 5}`,
			yaml:        "truncate: 5\n",
			errContains: "truncate takes a string",
		},
		{
			name:        "not_an_object",
			json:        `"truncate"`,
			yaml:        "truncate\n",
			errContains: "invalid edit directive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name+"_json", func(t *testing.T) {
			var in Instructions
			err := json.Unmarshal([]byte(tt.json), &in)
			if tt.errContains != "" {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidDirective), "error should be ErrInvalidDirective, got %v", err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, in.String())
		})

		t.Run(tt.name+"_yaml", func(t *testing.T) {
			var in Instructions
			err := yaml.Unmarshal([]byte(tt.yaml), &in)
			if tt.errContains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, in.String())
		})
	}
}

func TestInstructionsInMap(t *testing.T) {
	var fields map[string]Instructions
	err := json.Unmarshal([]byte(`{"title": {"truncate": " ("}, "id": {}}`), &fields)
	require.NoError(t, err)

	require.Len(t, fields, 2)
	assert.Equal(t, "Sunset", fields["title"].Apply("Sunset (draft)"))
	assert.Equal(t, "42", fields["id"].Apply("42"))
}
