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
	"encoding/json"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/walteh/formedit/pkg/text"
	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register(&HCLParser{})
}

// 🔧 HCLParser implements the Parser interface for HCL files.
//
// HCL expands "${...}" itself, so rename templates written in HCL must escape
// placeholders as "$${name}". Bare "$name" placeholders need no escaping.
type HCLParser struct{}

// 🔍 CanParse checks if this parser can handle the given file
func (p *HCLParser) CanParse(filename string) bool {
	return hasExtension(filename, ".hcl")
}

// 📝 Parse parses the config from HCL
func (p *HCLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "config.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("%w: parsing HCL: %s", ErrConfig, diags.Error())
	}

	// Create evaluation context
	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{},
	}

	// Define HCL schema
	type hclConfig struct {
		SourceSheet    string            `hcl:"sourceSheet"`
		TargetSheet    string            `hcl:"targetSheet"`
		RenameFiles    bool              `hcl:"renameFiles"`
		SourceFileDir  string            `hcl:"sourceFileDir,optional"`
		TargetFileDir  string            `hcl:"targetFileDir,optional"`
		FilenameField  string            `hcl:"filenameField,optional"`
		RenameTemplate string            `hcl:"renameTemplate,optional"`
		RenameFields   hcl.Expression    `hcl:"renameFields,optional"`
		OverwriteFiles bool              `hcl:"overwriteFiles,optional"`
		AliasFields    bool              `hcl:"aliasFields"`
		Aliases        map[string]string `hcl:"aliases,optional"`
		DeleteFields   bool              `hcl:"deleteFields"`
		DeleteFlag     string            `hcl:"deleteFlag,optional"`
	}

	// Decode HCL
	var hclCfg hclConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &hclCfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("%w: decoding HCL: %s", ErrConfig, diags.Error())
	}

	renameFields, err := decodeRenameFields(evalCtx, hclCfg.RenameFields)
	if err != nil {
		return nil, err
	}

	// Convert to model
	return &Config{
		SourceSheet:    hclCfg.SourceSheet,
		TargetSheet:    hclCfg.TargetSheet,
		RenameFiles:    Bool(hclCfg.RenameFiles),
		SourceFileDir:  hclCfg.SourceFileDir,
		TargetFileDir:  hclCfg.TargetFileDir,
		FilenameField:  hclCfg.FilenameField,
		RenameTemplate: hclCfg.RenameTemplate,
		RenameFields:   renameFields,
		OverwriteFiles: hclCfg.OverwriteFiles,
		AliasFields:    Bool(hclCfg.AliasFields),
		Aliases:        hclCfg.Aliases,
		DeleteFields:   Bool(hclCfg.DeleteFields),
		DeleteFlag:     hclCfg.DeleteFlag,
	}, nil
}

// decodeRenameFields evaluates the renameFields object and decodes it through
// its JSON form, so HCL and JSON share one set of directive rules.
func decodeRenameFields(evalCtx *hcl.EvalContext, expr hcl.Expression) (map[string]text.Instructions, error) {
	if expr == nil {
		return nil, nil
	}

	val, diags := expr.Value(evalCtx)
	if diags.HasErrors() {
		return nil, errors.Errorf("%w: evaluating renameFields: %s", ErrConfig, diags.Error())
	}
	if val.IsNull() {
		return nil, nil
	}

	raw, err := ctyjson.SimpleJSONValue{Value: val}.MarshalJSON()
	if err != nil {
		return nil, errors.Errorf("encoding renameFields: %w", err)
	}

	var fields map[string]text.Instructions
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, errors.Errorf("decoding renameFields: %w", err)
	}
	return fields, nil
}
