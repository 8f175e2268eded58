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

	"github.com/rs/zerolog"
	"github.com/walteh/formedit/pkg/log"
	"github.com/walteh/formedit/pkg/sheet"
	"gitlab.com/tozd/go/errors"
)

// 📤 NewWriteSheetOperation creates the stage that writes the final sheet
// to the target path
func NewWriteSheetOperation(opts Options) Operation {
	return &writeSheetOperation{
		BaseOperation: NewBaseOperation(opts),
	}
}

type writeSheetOperation struct {
	BaseOperation
}

func (op *writeSheetOperation) Name() string {
	return "writeSheet"
}

func (op *writeSheetOperation) Execute(ctx context.Context, in *sheet.Sheet) (*sheet.Sheet, error) {
	data, err := sheet.Encode(in)
	if err != nil {
		return nil, errors.Errorf("encoding sheet: %w", err)
	}

	console := log.FromContext(ctx)

	if op.DryRun {
		console.Infof("dry run: would write %d records to %s", in.Len(), op.Config.TargetSheet)
		return in, nil
	}

	if err := op.Files.WriteFileAtomic(ctx, op.Config.TargetSheet, data); err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Debug().
		Str("path", op.Config.TargetSheet).
		Int("records", in.Len()).
		Msg("sheet written")
	console.Successf("wrote %d records to %s", in.Len(), op.Config.TargetSheet)
	return in, nil
}
