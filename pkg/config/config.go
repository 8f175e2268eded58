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
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/formedit/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// ErrConfig marks a configuration that is missing a required key or refers
// to something that does not exist.
var ErrConfig = errors.Base("configuration error")

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// hasExtension reports whether filename ends in one of exts, ignoring case.
func hasExtension(filename string, exts ...string) bool {
	ext := filepath.Ext(strings.TrimSpace(filename))
	for _, e := range exts {
		if strings.EqualFold(ext, e) {
			return true
		}
	}
	return false
}

// 📚 Config describes one conversion run
type Config struct {
	SourceSheet string `json:"sourceSheet" yaml:"sourceSheet"` // tab-delimited input
	TargetSheet string `json:"targetSheet" yaml:"targetSheet"` // tab-delimited output

	RenameFiles    *bool                        `json:"renameFiles" yaml:"renameFiles"`
	SourceFileDir  string                       `json:"sourceFileDir,omitempty" yaml:"sourceFileDir,omitempty"`
	TargetFileDir  string                       `json:"targetFileDir,omitempty" yaml:"targetFileDir,omitempty"`
	FilenameField  string                       `json:"filenameField,omitempty" yaml:"filenameField,omitempty"`
	RenameTemplate string                       `json:"renameTemplate,omitempty" yaml:"renameTemplate,omitempty"`
	RenameFields   map[string]text.Instructions `json:"renameFields,omitempty" yaml:"renameFields,omitempty"`
	OverwriteFiles bool                         `json:"overwriteFiles,omitempty" yaml:"overwriteFiles,omitempty"`

	AliasFields *bool             `json:"aliasFields" yaml:"aliasFields"`
	Aliases     map[string]string `json:"aliases,omitempty" yaml:"aliases,omitempty"`

	DeleteFields *bool  `json:"deleteFields" yaml:"deleteFields"`
	DeleteFlag   string `json:"deleteFlag,omitempty" yaml:"deleteFlag,omitempty"`
}

// Bool returns a pointer to b, for building configs in code.
func Bool(b bool) *bool {
	return &b
}

// RenameFilesEnabled reports whether files should be copied under new names.
func (cfg *Config) RenameFilesEnabled() bool {
	return cfg.RenameFiles != nil && *cfg.RenameFiles
}

// AliasFieldsEnabled reports whether fields should be renamed.
func (cfg *Config) AliasFieldsEnabled() bool {
	return cfg.AliasFields != nil && *cfg.AliasFields
}

// DeleteFieldsEnabled reports whether flagged fields should be dropped.
func (cfg *Config) DeleteFieldsEnabled() bool {
	return cfg.DeleteFields != nil && *cfg.DeleteFields
}

// 🎯 Load loads the configuration from a file. The parser is picked by file
// extension; anything unrecognised is read as JSON.
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	// Read config file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	// Get parser
	p := GetParser(path)
	if p == nil {
		logger.Debug().Str("path", path).Msg("no parser matches extension, using JSON")
		p = &JSONParser{}
	}

	// Parse config
	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	logger.Debug().Str("config", cfg.String()).Msg("configuration loaded")
	return cfg, nil
}

// 🔍 Validate checks that every key needed by the enabled stages is present
func (cfg *Config) Validate() error {
	// Check required fields
	if cfg.SourceSheet == "" {
		return errors.Errorf("%w: sourceSheet is required", ErrConfig)
	}
	if cfg.TargetSheet == "" {
		return errors.Errorf("%w: targetSheet is required", ErrConfig)
	}
	if cfg.RenameFiles == nil {
		return errors.Errorf("%w: renameFiles is required", ErrConfig)
	}
	if cfg.AliasFields == nil {
		return errors.Errorf("%w: aliasFields is required", ErrConfig)
	}
	if cfg.DeleteFields == nil {
		return errors.Errorf("%w: deleteFields is required", ErrConfig)
	}

	// Stage specific keys
	if cfg.RenameFilesEnabled() {
		if cfg.FilenameField == "" {
			return errors.Errorf("%w: filenameField is required when renameFiles is set", ErrConfig)
		}
		if cfg.RenameTemplate == "" {
			return errors.Errorf("%w: renameTemplate is required when renameFiles is set", ErrConfig)
		}
		if cfg.RenameFields == nil {
			return errors.Errorf("%w: renameFields is required when renameFiles is set", ErrConfig)
		}
	}
	if cfg.AliasFieldsEnabled() && cfg.Aliases == nil {
		return errors.Errorf("%w: aliases is required when aliasFields is set", ErrConfig)
	}
	if cfg.DeleteFieldsEnabled() && cfg.DeleteFlag == "" {
		return errors.Errorf("%w: deleteFlag is required when deleteFields is set", ErrConfig)
	}

	// Clean up paths
	cfg.SourceSheet = filepath.Clean(cfg.SourceSheet)
	cfg.TargetSheet = filepath.Clean(cfg.TargetSheet)

	return nil
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	var stages []string
	if cfg.RenameFilesEnabled() {
		stages = append(stages, "rename files")
	}
	if cfg.AliasFieldsEnabled() {
		stages = append(stages, "alias fields")
	}
	if cfg.DeleteFieldsEnabled() {
		stages = append(stages, "delete fields")
	}
	if len(stages) == 0 {
		stages = append(stages, "copy")
	}
	return fmt.Sprintf("%s -> %s [%s]", cfg.SourceSheet, cfg.TargetSheet, strings.Join(stages, ", "))
}
