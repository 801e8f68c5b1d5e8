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

package files

import (
	"bytes"
	"context"
	"crypto/sha256"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 💾 FileManager handles all file system operations of a run
type FileManager interface {
	EnsureDir(ctx context.Context, path string) error
	Copy(ctx context.Context, src, dst string) (int64, error)
	Compare(ctx context.Context, src, dst string) (FileStatus, error)
	Remove(ctx context.Context, path string) (bool, error)
	PruneEmptyDirs(ctx context.Context, root string) error
}

var _ FileManager = (*Manager)(nil)

// 🔧 Manager implements FileManager relative to a base directory
type Manager struct {
	baseDir string // relative paths are resolved against this
}

// 🏭 New creates a new file manager
func New(baseDir string) *Manager {
	return &Manager{
		baseDir: filepath.Clean(baseDir),
	}
}

// BaseDir returns the directory relative paths are resolved against.
func (m *Manager) BaseDir() string {
	return m.baseDir
}

// 🔒 getAbsPath returns the absolute path for a given relative path
func (m *Manager) getAbsPath(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(m.baseDir, path)
}

// 📁 EnsureDir creates path and every missing parent. An existing directory is not an error,
// and concurrent calls for the same path all succeed.
func (m *Manager) EnsureDir(ctx context.Context, path string) error {
	abs := m.getAbsPath(path)
	if err := os.MkdirAll(abs, 0755); err != nil {
		return &DirectoryCreationError{Path: path, Cause: err}
	}
	zerolog.Ctx(ctx).Trace().Str("dir", abs).Msg("directory ensured")
	return nil
}

// 📋 Copy streams src into dst, creating dst's parent directories first.
//
// The bytes are written to a temporary file next to dst which is renamed into place once
// complete, so a failed copy never leaves a truncated dst behind.
func (m *Manager) Copy(ctx context.Context, src, dst string) (int64, error) {
	absSrc := m.getAbsPath(src)
	absDst := m.getAbsPath(dst)

	if err := m.EnsureDir(ctx, filepath.Dir(dst)); err != nil {
		return 0, &CopyError{Kind: DestinationUnwritable, Path: dst, Cause: err}
	}

	in, err := os.Open(absSrc)
	if err != nil {
		return 0, &CopyError{Kind: SourceUnreadable, Path: src, Cause: err}
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return 0, &CopyError{Kind: SourceUnreadable, Path: src, Cause: err}
	}

	tmp, err := os.CreateTemp(filepath.Dir(absDst), "."+filepath.Base(absDst)+".*.tmp")
	if err != nil {
		return 0, &CopyError{Kind: DestinationUnwritable, Path: dst, Cause: err}
	}
	tmpPath := tmp.Name()

	fail := func(kind CopyErrorKind, path string, cause error) (int64, error) {
		tmp.Close()
		if rerr := os.Remove(tmpPath); rerr != nil && !os.IsNotExist(rerr) {
			zerolog.Ctx(ctx).Warn().Err(rerr).Str("path", tmpPath).Msg("removing temp file")
		}
		return 0, &CopyError{Kind: kind, Path: path, Cause: cause}
	}

	reader := &trackingReader{r: in}
	n, err := io.Copy(tmp, reader)
	if err != nil {
		if reader.err != nil {
			return fail(SourceUnreadable, src, reader.err)
		}
		return fail(DestinationUnwritable, dst, err)
	}

	if err := tmp.Sync(); err != nil {
		return fail(DestinationUnwritable, dst, err)
	}
	if err := tmp.Chmod(info.Mode().Perm()); err != nil {
		return fail(DestinationUnwritable, dst, err)
	}
	if err := tmp.Close(); err != nil {
		return fail(DestinationUnwritable, dst, err)
	}

	if err := os.Rename(tmpPath, absDst); err != nil {
		os.Remove(tmpPath) // Clean up temp file
		return 0, &CopyError{Kind: DestinationUnwritable, Path: dst, Cause: err}
	}

	zerolog.Ctx(ctx).Debug().Str("src", src).Str("dst", dst).Int64("bytes", n).Msg("copied file")

	return n, nil
}

// 🔍 Compare reports whether dst is missing, stale or identical to src
func (m *Manager) Compare(ctx context.Context, src, dst string) (FileStatus, error) {
	srcSum, err := checksumFile(m.getAbsPath(src))
	if err != nil {
		return StatusUnknown, &CopyError{Kind: SourceUnreadable, Path: src, Cause: err}
	}

	dstSum, err := checksumFile(m.getAbsPath(dst))
	if errors.Is(err, fs.ErrNotExist) {
		return StatusNew, nil
	}
	if err != nil {
		return StatusUnknown, errors.Errorf("reading destination %s: %w", dst, err)
	}

	if bytes.Equal(srcSum, dstSum) {
		return StatusUnchanged, nil
	}
	return StatusModified, nil
}

// 🗑️ Remove deletes a file. A missing file is reported with false and no error.
func (m *Manager) Remove(ctx context.Context, path string) (bool, error) {
	err := os.Remove(m.getAbsPath(path))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, errors.Errorf("deleting file: %w", err)
	}
	return true, nil
}

// 🧹 PruneEmptyDirs removes directories under root that contain nothing. root itself is kept.
func (m *Manager) PruneEmptyDirs(ctx context.Context, root string) error {
	absRoot := m.getAbsPath(root)

	var dirs []string
	err := filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() && path != absRoot {
			dirs = append(dirs, path)
		}
		return nil
	})
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return errors.Errorf("walking %s: %w", root, err)
	}

	// deepest first, so parents emptied by this pass go too
	for i := len(dirs) - 1; i >= 0; i-- {
		entries, err := os.ReadDir(dirs[i])
		if err != nil {
			return errors.Errorf("reading directory %s: %w", dirs[i], err)
		}
		if len(entries) > 0 {
			continue
		}
		if err := os.Remove(dirs[i]); err != nil {
			return errors.Errorf("removing directory %s: %w", dirs[i], err)
		}
		zerolog.Ctx(ctx).Debug().Str("dir", dirs[i]).Msg("removed empty directory")
	}

	return nil
}

// 🔍 checksumFile generates a SHA-256 hash of the file content
func checksumFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return nil, err
	}
	return h.Sum(nil), nil
}

// trackingReader remembers read failures so Copy can tell them apart from write failures.
type trackingReader struct {
	r   io.Reader
	err error
}

func (t *trackingReader) Read(p []byte) (int, error) {
	n, err := t.r.Read(p)
	if err != nil && err != io.EOF {
		t.err = err
	}
	return n, err
}
