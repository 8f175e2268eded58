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
	"bytes"
	"encoding/json"
	"slices"

	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// 🔧 FromMap builds instructions from their configuration form:
//
//	{"truncate": " (", "replace": [" ", "_"], "remove": "#"}
//
// Every key is optional. A nil map yields empty instructions.
func FromMap(raw map[string]any) (Instructions, error) {
	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	slices.Sort(names)

	var directives []Directive
	for _, name := range names {
		arg := raw[name]
		switch name {
		case KindTruncate.String():
			marker, err := stringArg(name, arg)
			if err != nil {
				return Instructions{}, err
			}
			directives = append(directives, Truncate{Marker: marker})
		case KindReplace.String():
			pair, ok := arg.([]any)
			if !ok || len(pair) != 2 {
				return Instructions{}, errors.Errorf("%w: replace takes a list of two strings, got %v", ErrInvalidDirective, arg)
			}
			from, err := stringArg("replace[0]", pair[0])
			if err != nil {
				return Instructions{}, err
			}
			to, err := stringArg("replace[1]", pair[1])
			if err != nil {
				return Instructions{}, err
			}
			directives = append(directives, Replace{From: from, To: to})
		case KindRemove.String():
			target, err := stringArg(name, arg)
			if err != nil {
				return Instructions{}, err
			}
			directives = append(directives, Remove{Target: target})
		default:
			return Instructions{}, errors.Errorf("%w: unknown directive %q", ErrInvalidDirective, name)
		}
	}

	return NewInstructions(directives...)
}

func stringArg(name string, arg any) (string, error) {
	s, ok := arg.(string)
	if !ok {
		return "", errors.Errorf("%w: %s takes a string, got %v", ErrInvalidDirective, name, arg)
	}
	return s, nil
}

// UnmarshalJSON decodes the object form accepted by FromMap. null is empty.
func (in *Instructions) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*in = Instructions{}
		return nil
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return errors.Errorf("%w: %s", ErrInvalidDirective, err.Error())
	}

	parsed, err := FromMap(raw)
	if err != nil {
		return err
	}
	*in = parsed
	return nil
}

// UnmarshalYAML decodes the mapping form accepted by FromMap. An empty node is empty.
func (in *Instructions) UnmarshalYAML(node *yaml.Node) error {
	var raw map[string]any
	if err := node.Decode(&raw); err != nil {
		return errors.Errorf("%w: %s", ErrInvalidDirective, err.Error())
	}

	parsed, err := FromMap(raw)
	if err != nil {
		return err
	}
	*in = parsed
	return nil
}
