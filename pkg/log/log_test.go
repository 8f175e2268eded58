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
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/formedit/pkg/status"
)

// newTestLogger returns a logger whose console and zerolog output are both
// captured
func newTestLogger() (*Logger, *bytes.Buffer, *bytes.Buffer) {
	console := &bytes.Buffer{}
	events := &bytes.Buffer{}
	return New(console, zerolog.New(events)), console, events
}

// eventsOf decodes the JSON lines zerolog wrote
func eventsOf(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var events []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var event map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &event))
		events = append(events, event)
	}
	return events
}

func TestMessages(t *testing.T) {
	// Disable color for testing
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name        string
		emit        func(l *Logger)
		wantConsole string
		wantKind    string
		wantMessage string
	}{
		{
			name:        "info",
			emit:        func(l *Logger) { l.Infof("aliased %d fields", 2) },
			wantConsole: "ℹ️  aliased 2 fields",
			wantKind:    "info",
			wantMessage: "aliased 2 fields",
		},
		{
			name:        "warning",
			emit:        func(l *Logger) { l.Warningf("dry run: %d records", 3) },
			wantConsole: "⚠️  dry run: 3 records",
			wantKind:    "warning",
			wantMessage: "dry run: 3 records",
		},
		{
			name:        "error",
			emit:        func(l *Logger) { l.Errorf("copying %s", "a.jpg") },
			wantConsole: "❌ copying a.jpg",
			wantKind:    "error",
			wantMessage: "copying a.jpg",
		},
		{
			name:        "success",
			emit:        func(l *Logger) { l.Success("done") },
			wantConsole: "✅ done",
			wantKind:    "success",
			wantMessage: "done",
		},
		{
			name:        "header",
			emit:        func(l *Logger) { l.Header("in.tsv -> out.tsv [copy]") },
			wantConsole: "formedit • in.tsv -> out.tsv [copy]",
			wantKind:    "header",
			wantMessage: "in.tsv -> out.tsv [copy]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, console, events := newTestLogger()

			tt.emit(logger)

			assert.Equal(t, tt.wantConsole, strings.TrimSpace(console.String()))

			got := eventsOf(t, events)
			require.Len(t, got, 1)
			assert.Equal(t, "debug", got[0]["level"], "console lines are mirrored at debug level")
			assert.Equal(t, tt.wantKind, got[0]["kind"])
			assert.Equal(t, tt.wantMessage, got[0]["message"])
		})
	}
}

func TestStage(t *testing.T) {
	// Disable color for testing
	color.NoColor = true
	defer func() { color.NoColor = false }()

	logger, console, events := newTestLogger()
	ctx := context.Background()

	logger.StartStage(ctx, StageOperation{Name: "renameFiles", Records: 2, Fields: 3})
	logger.LogFileOperation(ctx, FileOperation{Target: "1_photo.jpg", Source: "a.jpg", Status: status.StatusNew})
	logger.LogFileOperation(ctx, FileOperation{Target: "2_photo.jpg", Source: "b.jpg", Status: status.StatusNew})
	logger.EndStage(ctx)
	logger.EndStage(ctx) // no stage open, nothing logged

	lines := strings.Split(strings.TrimSpace(console.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "◆ renameFiles • 2 records, 3 fields", lines[0])

	got := eventsOf(t, events)
	require.Len(t, got, 4)
	assert.Equal(t, "stage started", got[0]["message"])
	assert.Equal(t, "file renamed", got[1]["message"])
	assert.Equal(t, "stage complete", got[3]["message"])
	assert.Equal(t, "renameFiles", got[3]["stage"])
	assert.EqualValues(t, 2, got[3]["files"])
}

func TestMirrorHiddenAboveDebug(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	console := &bytes.Buffer{}
	events := &bytes.Buffer{}
	logger := New(console, zerolog.New(events).Level(zerolog.InfoLevel))
	ctx := context.Background()

	logger.Header("in.tsv -> out.tsv")
	logger.StartStage(ctx, StageOperation{Name: "renameFiles", Records: 1, Fields: 2})
	logger.LogFileOperation(ctx, FileOperation{Target: "1_photo.jpg", Source: "a.jpg", Status: status.StatusNew})
	logger.EndStage(ctx)
	logger.Warning("dry run")
	logger.Success("done")

	assert.Contains(t, console.String(), "1_photo.jpg")
	assert.Empty(t, events.String(), "an info level logger should not repeat console lines")
}

func TestNewline(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	logger, console, _ := newTestLogger()
	logger.Info("first")
	logger.LogNewline()
	logger.Info("second")

	assert.Equal(t, "ℹ️  first\n\nℹ️  second\n", console.String())
}

func TestLoggerContext(t *testing.T) {
	// Create logger
	logger := New(io.Discard, zerolog.Nop())

	// Add to context
	ctx := context.Background()
	ctx = NewContext(ctx, logger)

	// Get from context
	got := FromContext(ctx)
	assert.Same(t, logger, got, "logger from context should be the same instance")

	// Check panic on missing logger
	assert.Panics(t, func() {
		FromContext(context.Background())
	}, "FromContext should panic when logger is missing")
}

func TestFileOperationFormatting(t *testing.T) {
	// Disable color for testing
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name string
		op   FileOperation
		want []string
	}{
		{
			name: "new_file",
			op:   FileOperation{Target: "1_photo.jpg", Source: "a.jpg", Status: status.StatusNew, Size: 5},
			want: []string{"✓", "1_photo.jpg", "←", "a.jpg", "new"},
		},
		{
			name: "overwritten_file",
			op:   FileOperation{Target: "2_photo.jpg", Source: "b.jpg", Status: status.StatusOverwritten},
			want: []string{"⟳", "2_photo.jpg", "←", "b.jpg", "overwritten"},
		},
		{
			name: "planned_file",
			op:   FileOperation{Target: "3_photo.jpg", Source: "c.jpg", Status: status.StatusPlanned},
			want: []string{"•", "3_photo.jpg", "←", "c.jpg", "planned"},
		},
		{
			name: "rolled_back_file",
			op:   FileOperation{Target: "4_photo.jpg", Source: "d.jpg", Status: status.StatusRolledBack},
			want: []string{"✗", "4_photo.jpg", "←", "d.jpg", "rolled", "back"},
		},
		{
			name: "unknown_status",
			op:   FileOperation{Target: "5_photo.jpg", Source: "e.jpg"},
			want: []string{"-", "5_photo.jpg", "←", "e.jpg", "unknown"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Create buffer for console output
			buf := &bytes.Buffer{}
			logger := New(buf, zerolog.Nop())

			// Log operation
			logger.LogFileOperation(context.Background(), tt.op)

			// Check output
			output := buf.String()
			assert.True(t, strings.HasPrefix(output, "    "), "file entries should be indented")
			assert.Equal(t, tt.want, strings.Fields(output), "formatted output should match")
		})
	}
}

func TestTable(t *testing.T) {
	pterm.DisableColor()
	defer pterm.EnableColor()

	buf := &bytes.Buffer{}
	logger := New(buf, zerolog.Nop())

	err := logger.Table([]string{"source", "target"}, [][]string{
		{"a.jpg", "1_photo.jpg"},
		{"b.jpg", "2_photo.jpg"},
	})
	require.NoError(t, err)

	output := buf.String()
	for _, want := range []string{"source", "target", "a.jpg", "1_photo.jpg", "b.jpg", "2_photo.jpg"} {
		assert.Contains(t, output, want)
	}
	assert.Less(t, strings.Index(output, "a.jpg"), strings.Index(output, "b.jpg"), "rows should keep their order")
}
