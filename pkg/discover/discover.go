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

// Package discover finds the source files of a run.
package discover

import (
	"context"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🔍 Discoverer globs for source files under a root directory
type Discoverer struct {
	fsys fs.FS

	// Patterns are slash separated globs relative to the root
	Patterns []string
	// Exclude drops any match of these globs
	Exclude []string
}

// 🏭 New creates a discoverer for files ending in ext under sourceRoot, relative to workingDir
func New(workingDir, sourceRoot, ext string) *Discoverer {
	return NewFS(os.DirFS(workingDir), sourceRoot, ext)
}

// NewFS is New over an arbitrary filesystem.
func NewFS(fsys fs.FS, sourceRoot, ext string) *Discoverer {
	return &Discoverer{
		fsys:     fsys,
		Patterns: Patterns(sourceRoot, ext),
	}
}

// 📝 Patterns returns the globs matching ext files directly under sourceRoot and at any depth below it
func Patterns(sourceRoot, ext string) []string {
	root := escapeMeta(filepath.ToSlash(filepath.Clean(sourceRoot)))
	name := "*" + escapeMeta(ext)
	return []string{
		path.Join(root, name),
		path.Join(root, "**", name),
	}
}

// escapeMeta backslash escapes the glob metacharacters in s so it only matches itself
func escapeMeta(s string) string {
	var b strings.Builder
	for _, r := range s {
		if strings.ContainsRune(`*?[]{}\`, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// 🎯 Discover returns the matching regular files, sorted, using OS separators.
// Nothing matching (including a missing source root) is an empty result, not an error.
func (d *Discoverer) Discover(ctx context.Context) ([]string, error) {
	logger := zerolog.Ctx(ctx)

	seen := make(map[string]struct{})
	for _, pattern := range d.Patterns {
		if !doublestar.ValidatePattern(pattern) {
			return nil, errors.Errorf("invalid glob pattern: %s", pattern)
		}

		matches, err := doublestar.Glob(d.fsys, pattern, doublestar.WithFilesOnly(), doublestar.WithFailOnIOErrors())
		if err != nil {
			return nil, errors.Errorf("globbing %s: %w", pattern, err)
		}

		logger.Debug().Str("pattern", pattern).Int("matches", len(matches)).Msg("globbed")

		for _, m := range matches {
			seen[m] = struct{}{}
		}
	}

	out := make([]string, 0, len(seen))
	for m := range seen {
		excluded, err := d.isExcluded(m)
		if err != nil {
			return nil, err
		}
		if excluded {
			logger.Debug().Str("file", m).Msg("file excluded by pattern")
			continue
		}
		out = append(out, filepath.FromSlash(m))
	}

	sort.Strings(out)
	return out, nil
}

func (d *Discoverer) isExcluded(p string) (bool, error) {
	for _, pattern := range d.Exclude {
		matched, err := doublestar.Match(pattern, p)
		if err != nil {
			return false, errors.Errorf("matching exclude pattern %s: %w", pattern, err)
		}
		if matched {
			return true, nil
		}
	}
	return false, nil
}
