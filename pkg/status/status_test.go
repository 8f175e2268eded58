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

package status

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager() *Manager {
	logger := zerolog.Nop()
	return New(&logger)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

// entries lists the names in dir, so tests can spot leftover temp files.
func entries(t *testing.T, dir string) []string {
	t.Helper()
	list, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range list {
		names = append(names, e.Name())
	}
	return names
}

func TestCopyFileAtomic(t *testing.T) {
	ctx := context.Background()

	t.Run("new_file", func(t *testing.T) {
		dir := t.TempDir()
		src := filepath.Join(dir, "src", "a.jpg")
		dst := filepath.Join(dir, "dst", "1_photo.jpg")
		writeFile(t, src, "image bytes")

		mgr := newTestManager()
		info, err := mgr.CopyFileAtomic(ctx, src, dst)
		require.NoError(t, err)

		assert.Equal(t, StatusNew, info.Status)
		assert.Equal(t, int64(len("image bytes")), info.Size)
		assert.Len(t, info.Checksum, 64)
		assert.Empty(t, info.Backup)
		assert.Equal(t, "image bytes", readFile(t, dst))
		assert.Equal(t, []string{"1_photo.jpg"}, entries(t, filepath.Dir(dst)), "no temp files should remain")
		assert.Len(t, mgr.Files(), 1)
	})

	t.Run("overwrite_keeps_backup_until_commit", func(t *testing.T) {
		dir := t.TempDir()
		src := filepath.Join(dir, "a.jpg")
		dst := filepath.Join(dir, "out", "b.jpg")
		writeFile(t, src, "new")
		writeFile(t, dst, "old")

		mgr := newTestManager()
		info, err := mgr.CopyFileAtomic(ctx, src, dst)
		require.NoError(t, err)

		assert.Equal(t, StatusOverwritten, info.Status)
		assert.Equal(t, "new", readFile(t, dst))
		assert.Equal(t, "old", readFile(t, info.Backup))

		require.NoError(t, mgr.Commit(ctx))
		_, err = os.Stat(info.Backup)
		assert.True(t, os.IsNotExist(err), "backup should be removed on commit")
		assert.Empty(t, mgr.Files())
	})

	t.Run("missing_source", func(t *testing.T) {
		dir := t.TempDir()
		mgr := newTestManager()

		_, err := mgr.CopyFileAtomic(ctx, filepath.Join(dir, "missing.jpg"), filepath.Join(dir, "out.jpg"))
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
		assert.Empty(t, mgr.Files())
		assert.Empty(t, entries(t, dir), "nothing should be written")
	})
}

func TestRollback(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	writeFile(t, filepath.Join(dir, "a.jpg"), "A")
	writeFile(t, filepath.Join(dir, "b.jpg"), "B")
	writeFile(t, filepath.Join(dir, "out", "existing.jpg"), "previous")

	mgr := newTestManager()
	_, err := mgr.CopyFileAtomic(ctx, filepath.Join(dir, "a.jpg"), filepath.Join(dir, "out", "new.jpg"))
	require.NoError(t, err)
	_, err = mgr.CopyFileAtomic(ctx, filepath.Join(dir, "b.jpg"), filepath.Join(dir, "out", "existing.jpg"))
	require.NoError(t, err)

	require.NoError(t, mgr.Rollback(ctx))

	assert.Equal(t, []string{"existing.jpg"}, entries(t, filepath.Join(dir, "out")), "new copies and backups should be gone")
	assert.Equal(t, "previous", readFile(t, filepath.Join(dir, "out", "existing.jpg")))
	for _, info := range mgr.Files() {
		assert.Equal(t, StatusRolledBack, info.Status)
	}
}

func TestWriteFileAtomic(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "out.tsv")

	mgr := newTestManager()
	require.NoError(t, mgr.WriteFileAtomic(ctx, path, []byte("id\r\n1\r\n")))
	assert.Equal(t, "id\r\n1\r\n", readFile(t, path))

	require.NoError(t, mgr.WriteFileAtomic(ctx, path, []byte("replaced")))
	assert.Equal(t, "replaced", readFile(t, path))
	assert.Equal(t, []string{"out.tsv"}, entries(t, filepath.Dir(path)))
}

func TestFileExists(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "here.txt"), "x")

	mgr := newTestManager()
	ok, err := mgr.FileExists(ctx, filepath.Join(dir, "here.txt"))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = mgr.FileExists(ctx, filepath.Join(dir, "gone.txt"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileStatusString(t *testing.T) {
	assert.Equal(t, "new", StatusNew.String())
	assert.Equal(t, "overwritten", StatusOverwritten.String())
	assert.Equal(t, "planned", StatusPlanned.String())
	assert.Equal(t, "rolled back", StatusRolledBack.String())
	assert.Equal(t, "unknown", StatusUnknown.String())
}
