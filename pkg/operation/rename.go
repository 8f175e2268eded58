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
	"os"
	"path/filepath"
	"slices"

	"github.com/rs/zerolog"
	"github.com/walteh/formedit/pkg/config"
	"github.com/walteh/formedit/pkg/log"
	"github.com/walteh/formedit/pkg/naming"
	"github.com/walteh/formedit/pkg/sheet"
	"github.com/walteh/formedit/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// 📄 Rename is one planned file copy
type Rename struct {
	Source   string // Path of the original file
	Target   string // Path the file is copied to
	Filename string // New filename stored back in the record
	Exists   bool   // Whether Target is already on disk
}

// 📦 NewRenameFilesOperation creates the stage that copies every record's
// file under a generated name
func NewRenameFilesOperation(opts Options) Operation {
	return &renameFilesOperation{
		BaseOperation: NewBaseOperation(opts),
	}
}

type renameFilesOperation struct {
	BaseOperation
}

func (op *renameFilesOperation) Name() string {
	return "renameFiles"
}

// 🏃 Execute plans every copy, then performs them in record order and
// stores the new filenames in the filename field
func (op *renameFilesOperation) Execute(ctx context.Context, in *sheet.Sheet) (*sheet.Sheet, error) {
	logger := zerolog.Ctx(ctx)
	console := log.FromContext(ctx)

	for _, name := range UnmappedPlaceholders(op.Config) {
		console.Warningf("placeholder %q has no renameFields entry and is kept as written", name)
	}

	renames, err := PlanRenames(ctx, op.Files, op.Config, in)
	if err != nil {
		return nil, errors.Errorf("planning renames: %w", err)
	}

	filenames := make([]string, len(renames))
	for i, r := range renames {
		filenames[i] = r.Filename
	}

	if op.DryRun {
		for _, r := range renames {
			if r.Exists {
				console.Warningf("%s exists and would be overwritten", r.Target)
			}
			console.LogFileOperation(ctx, log.FileOperation{
				Target: r.Filename,
				Source: filepath.Base(r.Source),
				Status: status.StatusPlanned,
			})
		}
		return in.Update(op.Config.FilenameField, filenames)
	}

	for _, r := range renames {
		info, err := op.Files.CopyFileAtomic(ctx, r.Source, r.Target)
		if err != nil {
			return nil, err
		}
		logger.Debug().Str("source", r.Source).Str("target", r.Target).Msg("renamed file")
		console.LogFileOperation(ctx, log.FileOperation{
			Target: r.Filename,
			Source: filepath.Base(r.Source),
			Status: info.Status,
			Size:   info.Size,
		})
	}

	return in.Update(op.Config.FilenameField, filenames)
}

// UnmappedPlaceholders lists the placeholders of the rename template that
// renameFields does not name. Generate leaves them in the filename as
// written.
func UnmappedPlaceholders(cfg *config.Config) []string {
	var names []string
	for _, name := range naming.Placeholders(cfg.RenameTemplate) {
		if _, ok := cfg.RenameFields[name]; !ok {
			names = append(names, name)
		}
	}
	return names
}

// 🗺️ PlanRenames computes the copy for every record without touching the
// file system beyond existence checks. It fails if:
//   - the filename field or a templated field is not in the header
//   - an original filename has no extension
//   - a source file is missing
//   - two records generate the same target, or a target is another
//     record's source
//   - a target exists and the config does not allow overwriting
func PlanRenames(ctx context.Context, files status.FileManager, cfg *config.Config, in *sheet.Sheet) ([]Rename, error) {
	if !in.HasField(cfg.FilenameField) {
		return nil, errors.Errorf("%w: filenameField %q is not a field of the sheet", config.ErrConfig, cfg.FilenameField)
	}
	for name := range cfg.RenameFields {
		if !in.HasField(name) {
			return nil, errors.Errorf("%w: renameFields names %q, which is not a field of the sheet", config.ErrConfig, name)
		}
	}

	renames := make([]Rename, 0, in.Len())
	for i, record := range in.Records() {
		original, _ := record.Get(cfg.FilenameField)

		ext, err := naming.Extension(original)
		if err != nil {
			return nil, errors.Errorf("record %d: %w", i+1, err)
		}
		base, err := naming.Generate(record, cfg.RenameTemplate, cfg.RenameFields)
		if err != nil {
			return nil, errors.Errorf("record %d: %w", i+1, err)
		}

		filename := base + ext
		renames = append(renames, Rename{
			Source:   filepath.Join(cfg.SourceFileDir, original),
			Target:   filepath.Join(cfg.TargetFileDir, filename),
			Filename: filename,
		})
	}

	if err := checkCollisions(renames); err != nil {
		return nil, err
	}

	for i := range renames {
		r := &renames[i]

		ok, err := files.FileExists(ctx, r.Source)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, errors.Errorf("source file %s: %w", r.Source, os.ErrNotExist)
		}

		r.Exists, err = files.FileExists(ctx, r.Target)
		if err != nil {
			return nil, err
		}
		if r.Exists && !cfg.OverwriteFiles {
			return nil, errors.Errorf("%w: %s already exists; set overwriteFiles to replace it", sheet.ErrCollision, r.Target)
		}
	}

	return renames, nil
}

func checkCollisions(renames []Rename) error {
	targets := make(map[string]int, len(renames))
	for i, r := range renames {
		if prev, ok := targets[r.Target]; ok {
			return errors.Errorf("%w: records %d and %d both rename to %s", sheet.ErrCollision, prev+1, i+1, r.Target)
		}
		targets[r.Target] = i
	}

	for i, r := range renames {
		j := slices.IndexFunc(renames, func(other Rename) bool { return other.Source == r.Target })
		if j >= 0 && j != i {
			return errors.Errorf("%w: record %d renames to %s, the source of record %d", sheet.ErrCollision, i+1, r.Target, j+1)
		}
	}

	return nil
}
