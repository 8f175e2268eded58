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

package operation

import (
	"context"

	"github.com/walteh/formedit/pkg/config"
	"github.com/walteh/formedit/pkg/sheet"
	"github.com/walteh/formedit/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// Operation is one stage of the pipeline. Execute never modifies its input;
// it returns the sheet the next stage should see. User facing output goes to
// the console stored in ctx with log.NewContext.
type Operation interface {
	// Name identifies the stage in logs and errors
	Name() string
	// Execute runs the stage against in
	Execute(ctx context.Context, in *sheet.Sheet) (*sheet.Sheet, error)
}

type Options struct {
	// Config is the validated run configuration
	Config *config.Config
	// Files performs and tracks every file system write
	Files status.FileManager
	// DryRun computes and reports every stage without writing anything
	DryRun bool
}

func (opts Options) validate() error {
	if opts.Config == nil {
		return errors.Errorf("config is required")
	}
	if opts.Files == nil {
		return errors.Errorf("file manager is required")
	}
	return nil
}

// BaseOperation carries the options shared by every stage
type BaseOperation struct {
	Options
}

// NewBaseOperation creates a new base operation
func NewBaseOperation(opts Options) BaseOperation {
	return BaseOperation{Options: opts}
}

// 🗺️ Plan returns the stages enabled by the config, in the order they run:
// rename files, alias fields, delete fields, then write the sheet. Writing
// is always last and always present.
func Plan(opts Options) ([]Operation, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	var ops []Operation
	if opts.Config.RenameFilesEnabled() {
		ops = append(ops, NewRenameFilesOperation(opts))
	}
	if opts.Config.AliasFieldsEnabled() {
		ops = append(ops, NewAliasFieldsOperation(opts))
	}
	if opts.Config.DeleteFieldsEnabled() {
		ops = append(ops, NewDeleteFieldsOperation(opts))
	}
	ops = append(ops, NewWriteSheetOperation(opts))

	return ops, nil
}
