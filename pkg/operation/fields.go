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
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/formedit/pkg/log"
	"github.com/walteh/formedit/pkg/sheet"
	"gitlab.com/tozd/go/errors"
)

// 🏷️ NewAliasFieldsOperation creates the stage that renames fields
func NewAliasFieldsOperation(opts Options) Operation {
	return &aliasFieldsOperation{
		BaseOperation: NewBaseOperation(opts),
	}
}

type aliasFieldsOperation struct {
	BaseOperation
}

func (op *aliasFieldsOperation) Name() string {
	return "aliasFields"
}

func (op *aliasFieldsOperation) Execute(ctx context.Context, in *sheet.Sheet) (*sheet.Sheet, error) {
	out, err := in.Rename(op.Config.Aliases)
	if err != nil {
		return nil, errors.Errorf("aliasing fields: %w", err)
	}

	zerolog.Ctx(ctx).Debug().Strs("fields", out.Header()).Msg("fields aliased")
	log.FromContext(ctx).Infof("aliased %d fields", len(op.Config.Aliases))
	return out, nil
}

// ✂️ NewDeleteFieldsOperation creates the stage that drops every field
// whose name contains the delete flag
func NewDeleteFieldsOperation(opts Options) Operation {
	return &deleteFieldsOperation{
		BaseOperation: NewBaseOperation(opts),
	}
}

type deleteFieldsOperation struct {
	BaseOperation
}

func (op *deleteFieldsOperation) Name() string {
	return "deleteFields"
}

func (op *deleteFieldsOperation) Execute(ctx context.Context, in *sheet.Sheet) (*sheet.Sheet, error) {
	console := log.FromContext(ctx)

	fields := in.FieldsContaining(op.Config.DeleteFlag)
	if len(fields) == 0 {
		console.Infof("no fields contain %q", op.Config.DeleteFlag)
		return in, nil
	}

	out, err := in.Delete(fields)
	if err != nil {
		return nil, errors.Errorf("deleting fields: %w", err)
	}

	zerolog.Ctx(ctx).Debug().Strs("deleted", fields).Msg("fields deleted")
	console.Infof("deleted %s", strings.Join(fields, ", "))
	return out, nil
}
