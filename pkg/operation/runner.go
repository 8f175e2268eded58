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
	"strconv"

	"github.com/rs/zerolog"
	"github.com/walteh/formedit/pkg/log"
	"github.com/walteh/formedit/pkg/sheet"
	"github.com/walteh/formedit/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// OperationRunner executes stages one after another. If any stage fails the
// file copies made so far are rolled back; if all succeed they are
// committed.
type OperationRunner struct {
	logger *zerolog.Logger
	files  status.FileManager
}

func NewRunner(logger *zerolog.Logger, files status.FileManager) *OperationRunner {
	return &OperationRunner{
		logger: logger,
		files:  files,
	}
}

// Run feeds in through ops and returns the sheet produced by the last one.
// ctx must carry a console (see log.NewContext).
func (r *OperationRunner) Run(ctx context.Context, in *sheet.Sheet, ops []Operation) (*sheet.Sheet, error) {
	console := log.FromContext(ctx)

	current := in
	for _, op := range ops {
		if err := ctx.Err(); err != nil {
			return nil, r.rollback(ctx, errors.Errorf("operation cancelled: %w", err))
		}

		r.logger.Debug().
			Str("stage", op.Name()).
			Int("records", current.Len()).
			Strs("fields", current.Header()).
			Msg("starting stage")

		console.StartStage(ctx, log.StageOperation{
			Name:    op.Name(),
			Records: current.Len(),
			Fields:  len(current.Header()),
		})
		next, err := op.Execute(ctx, current)
		console.EndStage(ctx)
		if err != nil {
			return nil, r.rollback(ctx, errors.Errorf("%s: %w", op.Name(), err))
		}
		current = next
	}

	if err := r.summarize(console); err != nil {
		return nil, r.rollback(ctx, err)
	}

	if err := r.files.Commit(ctx); err != nil {
		return nil, errors.Errorf("committing files: %w", err)
	}
	return current, nil
}

// summarize prints one row per file copied by the run
func (r *OperationRunner) summarize(console *log.Logger) error {
	copied := r.files.Files()
	if len(copied) == 0 {
		return nil
	}

	rows := make([][]string, len(copied))
	for i, info := range copied {
		rows[i] = []string{info.Path, info.Status.String(), strconv.FormatInt(info.Size, 10), shortChecksum(info.Checksum)}
	}
	if err := console.Table([]string{"file", "status", "bytes", "sha256"}, rows); err != nil {
		return errors.Errorf("rendering summary: %w", err)
	}
	return nil
}

func shortChecksum(sum string) string {
	if len(sum) > 12 {
		return sum[:12]
	}
	return sum
}

func (r *OperationRunner) rollback(ctx context.Context, cause error) error {
	if err := r.files.Rollback(ctx); err != nil {
		r.logger.Error().Err(err).Msg("rollback incomplete")
		return errors.Join(cause, errors.Errorf("rolling back: %w", err))
	}
	r.logger.Debug().Msg("file copies rolled back")
	return cause
}
