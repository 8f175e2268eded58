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
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 📊 FileStatus represents what a run did to a target file
type FileStatus int

const (
	StatusUnknown     FileStatus = iota
	StatusNew                    // File did not exist before the copy
	StatusOverwritten            // File existed and was replaced
	StatusPlanned                // Dry run, nothing written
	StatusRolledBack             // Copy was undone after a later failure
)

// String returns a string representation of FileStatus
func (s FileStatus) String() string {
	switch s {
	case StatusNew:
		return "new"
	case StatusOverwritten:
		return "overwritten"
	case StatusPlanned:
		return "planned"
	case StatusRolledBack:
		return "rolled back"
	default:
		return "unknown"
	}
}

// 📄 FileInfo describes one file written by a run
type FileInfo struct {
	Source   string     // Path the bytes were copied from
	Path     string     // Path the bytes were written to
	Status   FileStatus // What happened to Path
	Size     int64      // Bytes written
	Checksum string     // SHA-256 of the content
	Backup   string     // Copy of the previous content when Status is StatusOverwritten
}

// 💾 FileManager handles the file system side effects of a run
type FileManager interface {
	Files() []FileInfo
	FileExists(ctx context.Context, path string) (bool, error)
	CopyFileAtomic(ctx context.Context, src, dst string) (FileInfo, error)
	WriteFileAtomic(ctx context.Context, path string, content []byte) error
	Rollback(ctx context.Context) error
	Commit(ctx context.Context) error
}

// 🔧 Manager implements FileManager. It remembers every file it copied so a
// failed run can be undone with Rollback. A Manager is used by one run at a
// time.
type Manager struct {
	logger *zerolog.Logger
	files  []FileInfo
}

var _ FileManager = (*Manager)(nil)

// 🏭 New creates a new status manager
func New(logger *zerolog.Logger) *Manager {
	return &Manager{
		logger: logger,
	}
}

// Files returns the files written so far, in order.
func (m *Manager) Files() []FileInfo {
	files := make([]FileInfo, len(m.files))
	copy(files, m.files)
	return files
}

func (m *Manager) FileExists(ctx context.Context, path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, errors.Errorf("checking file existence: %w", err)
}

// 📦 CopyFileAtomic copies src to dst through a temporary file in the
// destination directory, so dst is either untouched or complete. An
// existing dst is backed up first so Rollback can restore it.
func (m *Manager) CopyFileAtomic(ctx context.Context, src, dst string) (FileInfo, error) {
	srcFile, err := os.Open(src)
	if err != nil {
		return FileInfo{}, errors.Errorf("opening source file: %w", err)
	}
	defer srcFile.Close()

	info := FileInfo{Source: src, Path: dst, Status: StatusNew}

	exists, err := m.FileExists(ctx, dst)
	if err != nil {
		return FileInfo{}, err
	}
	if exists {
		backup, err := m.BackupFile(ctx, dst)
		if err != nil {
			return FileInfo{}, errors.Errorf("backing up %s: %w", dst, err)
		}
		info.Status = StatusOverwritten
		info.Backup = backup
	}

	hash := sha256.New()
	err = writeAtomic(dst, func(w io.Writer) error {
		n, err := io.Copy(io.MultiWriter(w, hash), srcFile)
		info.Size = n
		return err
	})
	if err != nil {
		if info.Backup != "" {
			os.Remove(info.Backup) // dst was never replaced
		}
		return FileInfo{}, errors.Errorf("copying %s to %s: %w", src, dst, err)
	}
	info.Checksum = hex.EncodeToString(hash.Sum(nil))

	m.files = append(m.files, info)
	m.logger.Debug().
		Str("source", src).
		Str("path", dst).
		Str("status", info.Status.String()).
		Int64("size", info.Size).
		Str("checksum", info.Checksum).
		Msg("file copied")

	return info, nil
}

// 📝 WriteFileAtomic replaces path with content through a temporary file
func (m *Manager) WriteFileAtomic(ctx context.Context, path string, content []byte) error {
	err := writeAtomic(path, func(w io.Writer) error {
		_, err := w.Write(content)
		return err
	})
	if err != nil {
		return errors.Errorf("writing %s: %w", path, err)
	}

	m.logger.Debug().Str("path", path).Int("size", len(content)).Msg("file written")
	return nil
}

// 🗄️ BackupFile copies path next to itself and returns the backup path
func (m *Manager) BackupFile(ctx context.Context, path string) (string, error) {
	backupPath := tempName(path, "bak")
	if err := copyFile(path, backupPath); err != nil {
		return "", errors.Errorf("creating backup: %w", err)
	}
	return backupPath, nil
}

// ♻️ RestoreFile moves a backup made by BackupFile back over path
func (m *Manager) RestoreFile(ctx context.Context, backupPath, path string) error {
	if err := os.Rename(backupPath, path); err != nil {
		return errors.Errorf("restoring from backup: %w", err)
	}
	return nil
}

// ⏪ Rollback undoes every copy made since the last Commit, newest first:
// new files are removed and overwritten files are restored from backup.
func (m *Manager) Rollback(ctx context.Context) error {
	var errs []error
	for i := len(m.files) - 1; i >= 0; i-- {
		info := &m.files[i]
		switch info.Status {
		case StatusNew:
			if err := os.Remove(info.Path); err != nil && !os.IsNotExist(err) {
				errs = append(errs, errors.Errorf("removing %s: %w", info.Path, err))
				continue
			}
		case StatusOverwritten:
			if err := m.RestoreFile(ctx, info.Backup, info.Path); err != nil {
				errs = append(errs, errors.Errorf("restoring %s: %w", info.Path, err))
				continue
			}
		default:
			continue
		}
		m.logger.Debug().Str("path", info.Path).Str("was", info.Status.String()).Msg("copy rolled back")
		info.Status = StatusRolledBack
	}
	return errors.Join(errs...)
}

// ✅ Commit discards the backups of overwritten files. After Commit the
// copies can no longer be rolled back.
func (m *Manager) Commit(ctx context.Context) error {
	var errs []error
	for i := range m.files {
		info := &m.files[i]
		if info.Backup == "" {
			continue
		}
		if err := os.Remove(info.Backup); err != nil && !os.IsNotExist(err) {
			errs = append(errs, errors.Errorf("removing backup %s: %w", info.Backup, err))
			continue
		}
		info.Backup = ""
	}
	m.files = m.files[:0:0]
	return errors.Join(errs...)
}

// Helper functions

// tempName returns a hidden sibling of path that no other run will pick.
func tempName(path, suffix string) string {
	dir, base := filepath.Split(path)
	return filepath.Join(dir, "."+base+"."+uuid.NewString()+"."+suffix)
}

// writeAtomic creates parent directories, lets fill write a temporary file
// and renames it over path. The temporary file is removed on every failure.
func writeAtomic(path string, fill func(w io.Writer) error) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Errorf("creating parent directories: %w", err)
	}

	tempPath := tempName(path, "tmp")
	f, err := os.OpenFile(tempPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return errors.Errorf("creating temp file: %w", err)
	}
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(tempPath)
		}
	}()

	if err := fill(f); err != nil {
		return errors.Errorf("writing temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return errors.Errorf("closing temp file: %w", err)
	}

	// Rename temp file to target (atomic operation)
	if err := os.Rename(tempPath, path); err != nil {
		return errors.Errorf("renaming temp file: %w", err)
	}
	return nil
}

func copyFile(src, dst string) error {
	source, err := os.Open(src)
	if err != nil {
		return errors.Errorf("opening source file: %w", err)
	}
	defer source.Close()

	return writeAtomic(dst, func(w io.Writer) error {
		_, err := io.Copy(w, source)
		return err
	})
}
