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

package log

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/walteh/formedit/pkg/status"
)

// 🎨 Display configuration
const (
	fileIndent  = 4  // spaces to indent file entries
	nameWidth   = 35 // Base width for the target filename
	sourceWidth = 25 // Width for the source filename
)

// fileStyle is how one file status is drawn
type fileStyle struct {
	symbol string
	color  color.Attribute
}

var fileStyles = map[status.FileStatus]fileStyle{
	status.StatusNew:         {"✓", color.FgGreen},
	status.StatusOverwritten: {"⟳", color.FgYellow},
	status.StatusPlanned:     {"•", color.FgCyan},
	status.StatusRolledBack:  {"✗", color.FgRed},
}

// 🎯 FileOperation is one renamed file
type FileOperation struct {
	Target string            // New filename
	Source string            // Original filename
	Status status.FileStatus // What happened to Target
	Size   int64             // Bytes copied
}

// 📦 StageOperation is one pipeline stage
type StageOperation struct {
	Name    string // Stage name
	Records int    // Records entering the stage
	Fields  int    // Fields entering the stage
}

// 🎯 Logger writes user facing lines to a console and mirrors each of them
// as a structured zerolog event
type Logger struct {
	zlog    zerolog.Logger
	console io.Writer
	mu      sync.Mutex
	stage   *StageOperation
	files   int
}

// 🏭 New creates a new logger
func New(console io.Writer, zlog zerolog.Logger) *Logger {
	return &Logger{
		zlog:    zlog,
		console: console,
	}
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		panic("logger not found in context")
	}
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

func formatFileOperation(op FileOperation) string {
	style, ok := fileStyles[op.Status]
	if !ok {
		style = fileStyle{"-", color.FgBlue}
	}

	return fmt.Sprintf("%s%s %-*s %s %s",
		strings.Repeat(" ", fileIndent),
		color.New(style.color).Sprint(style.symbol),
		nameWidth, op.Target,
		color.New(color.Faint).Sprintf("%-*s", sourceWidth, "← "+op.Source),
		op.Status)
}

// 📝 LogFileOperation prints one renamed file
func (l *Logger) LogFileOperation(ctx context.Context, op FileOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.files++
	fmt.Fprintln(l.console, formatFileOperation(op))

	l.zlog.Debug().
		Str("target", op.Target).
		Str("source", op.Source).
		Str("status", op.Status.String()).
		Int64("size", op.Size).
		Msg("file renamed")
}

// 📝 StartStage prints the stage banner
func (l *Logger) StartStage(ctx context.Context, op StageOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.stage = &op
	l.files = 0

	fmt.Fprintf(l.console, "%s %s %s %s\n",
		color.New(color.FgMagenta).Sprint("◆"),
		color.New(color.Bold).Sprint(op.Name),
		color.New(color.Faint).Sprint("•"),
		color.New(color.FgYellow).Sprintf("%d records, %d fields", op.Records, op.Fields))

	l.zlog.Debug().
		Str("stage", op.Name).
		Int("records", op.Records).
		Int("fields", op.Fields).
		Msg("stage started")
}

// 📝 EndStage records the end of the current stage
func (l *Logger) EndStage(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.stage == nil {
		return
	}

	l.zlog.Debug().
		Str("stage", l.stage.Name).
		Int("files", l.files).
		Msg("stage complete")

	l.stage = nil
	l.files = 0
}

// 📊 Table prints rows under header
func (l *Logger) Table(header []string, rows [][]string) error {
	data := append(pterm.TableData{header}, rows...)
	out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console, out)
	l.zlog.Debug().Int("rows", len(rows)).Msg("table rendered")
	return nil
}

// 📝 LogNewline prints an empty line
func (l *Logger) LogNewline() {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console)
}

// 📝 Header prints the run banner
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "\n%s %s\n\n",
		color.New(color.Bold, color.FgCyan).Sprint("formedit"),
		color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Debug().Str("kind", "header").Msg(msg)
}

// message prints msg behind icon. The zerolog mirror stays at debug level
// so a normal run shows each line once.
func (l *Logger) message(kind, icon string, attr color.Attribute, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "%s %s\n", icon, color.New(attr).Sprint(msg))
	l.zlog.Debug().Str("kind", kind).Msg(msg)
}

func (l *Logger) Success(msg string) { l.message("success", "✅", color.FgGreen, msg) }
func (l *Logger) Warning(msg string) { l.message("warning", "⚠️ ", color.FgYellow, msg) }
func (l *Logger) Error(msg string)   { l.message("error", "❌", color.FgRed, msg) }
func (l *Logger) Info(msg string)    { l.message("info", "ℹ️ ", color.FgCyan, msg) }

func (l *Logger) Successf(format string, args ...any) { l.Success(fmt.Sprintf(format, args...)) }
func (l *Logger) Warningf(format string, args ...any) { l.Warning(fmt.Sprintf(format, args...)) }
func (l *Logger) Errorf(format string, args ...any)   { l.Error(fmt.Sprintf(format, args...)) }
func (l *Logger) Infof(format string, args ...any)    { l.Info(fmt.Sprintf(format, args...)) }
