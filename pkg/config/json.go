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

package config

import (
	"bytes"
	"context"
	"encoding/json"
	"io"

	"gitlab.com/tozd/go/errors"
)

// 🔧 JSONParser reads the JSON form of a config. It is also the parser used
// for files whose extension no other parser claims.
type JSONParser struct{}

func init() {
	Register(&JSONParser{})
}

// 🔍 CanParse checks if this parser can handle the given file
func (p *JSONParser) CanParse(filename string) bool {
	return hasExtension(filename, ".json")
}

// 📝 Parse decodes exactly one JSON object. Unknown keys, an empty document
// and anything after the object are configuration errors.
func (p *JSONParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()

	var cfg Config
	if err := decoder.Decode(&cfg); err != nil {
		if err == io.EOF {
			return nil, errors.Errorf("%w: empty JSON document", ErrConfig)
		}
		return nil, errors.Errorf("parsing JSON: %w", err)
	}
	if decoder.More() {
		return nil, errors.Errorf("%w: unexpected data after the JSON object", ErrConfig)
	}
	return &cfg, nil
}
