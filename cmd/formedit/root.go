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

package main

import (
	"context"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/formedit/pkg/config"
	"github.com/walteh/formedit/pkg/log"
	"github.com/walteh/formedit/pkg/operation"
	"github.com/walteh/formedit/pkg/sheet"
	"github.com/walteh/formedit/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// Handler holds the inputs of one formedit run
type Handler struct {
	configFile string
	debug      bool
	dryRun     bool
	force      bool
	stdout     io.Writer
}

func NewCommand() *cobra.Command {
	h := &Handler{}

	cmd := &cobra.Command{
		Use:   "formedit config_file",
		Short: "Rename, alias and prune the records of a tab-delimited form export",
		Long: `formedit reads a tab-delimited sheet and rewrites it as described by a
configuration file (JSON, YAML or HCL). It will:
1. Copy each record's file under a name built from a template (renameFiles)
2. Rename fields (aliasFields)
3. Drop fields whose name contains a flag (deleteFields)
4. Write the resulting sheet to targetSheet

sourceFileDir and targetFileDir are directories: a filename is joined to
them as a path, so "photos" and "photos/" name the same place. A plain
prefix such as "img_" is treated as a directory too, not glued to the
filename.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New(`formedit requires 1 argument: "config_file"`)
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			h.configFile = args[0]
			h.stdout = cmd.OutOrStdout()
			return h.Run(cmd.Context())
		},
	}

	cmd.Flags().BoolVarP(&h.debug, "debug", "d", false, "enable debug logging")
	cmd.Flags().BoolVarP(&h.dryRun, "dry-run", "n", false, "show what would be done without writing anything")
	cmd.Flags().BoolVarP(&h.force, "force", "f", false, "replace existing files in targetFileDir")

	cmd.AddCommand(newVersionCommand())

	return cmd
}

// Run loads the config, reads the source sheet and runs the enabled stages
func (h *Handler) Run(ctx context.Context) error {
	level := zerolog.InfoLevel
	if h.debug {
		level = zerolog.DebugLevel
	}
	logger := zerolog.Ctx(ctx).Level(level).With().Str("config", h.configFile).Logger()
	ctx = logger.WithContext(ctx)

	stdout := h.stdout
	if stdout == nil {
		stdout = io.Discard
	}
	console := log.New(stdout, logger)
	ctx = log.NewContext(ctx, console)

	cfg, err := config.Load(ctx, h.configFile)
	if err != nil {
		return errors.Errorf("loading config: %w", err)
	}
	if h.force {
		cfg.OverwriteFiles = true
	}

	console.Header(cfg.String())

	in, err := sheet.ReadFile(ctx, cfg.SourceSheet)
	if err != nil {
		return err
	}

	files := status.New(&logger)
	ops, err := operation.Plan(operation.Options{
		Config: cfg,
		Files:  files,
		DryRun: h.dryRun,
	})
	if err != nil {
		return errors.Errorf("planning: %w", err)
	}

	out, err := operation.NewRunner(&logger, files).Run(ctx, in, ops)
	if err != nil {
		return err
	}

	console.LogNewline()
	if h.dryRun {
		console.Warningf("dry run: %d records, %d fields, nothing written", out.Len(), len(out.Header()))
		return nil
	}
	console.Successf("done: %d records, %d fields", out.Len(), len(out.Header()))
	return nil
}
