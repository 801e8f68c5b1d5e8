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

// Package paths maps source files onto their location in the library tree.
package paths

import (
	"fmt"
	"path/filepath"
	"strings"
)

// 📄 Pair is a source path and the destination it is copied to
type Pair struct {
	Source      string
	Destination string
}

// 🚫 UnsupportedExtensionError is returned for paths that do not carry the expected extension
type UnsupportedExtensionError struct {
	Path      string
	Extension string
}

func (e *UnsupportedExtensionError) Error() string {
	return fmt.Sprintf("unsupported file extension: %s (want %s)", e.Path, e.Extension)
}

// 🚫 OutsideRootError is returned for paths that do not live under the source root
type OutsideRootError struct {
	Path string
	Root string
}

func (e *OutsideRootError) Error() string {
	return fmt.Sprintf("path %s is not under source root %s", e.Path, e.Root)
}

// 🔄 Transformer rewrites source paths into library paths
type Transformer struct {
	SourceRoot string // e.g. "src"
	LibRoot    string // e.g. "lib"
	SourceExt  string // e.g. ".js"
	DestExt    string // e.g. ".mjs"
}

// 🏭 NewTransformer creates a transformer
func NewTransformer(sourceRoot, libRoot, sourceExt, destExt string) *Transformer {
	return &Transformer{
		SourceRoot: sourceRoot,
		LibRoot:    libRoot,
		SourceExt:  sourceExt,
		DestExt:    destExt,
	}
}

// Transform is shorthand for NewTransformer(...).Transform(path).
func Transform(path, sourceRoot, libRoot, sourceExt, destExt string) (Pair, error) {
	return NewTransformer(sourceRoot, libRoot, sourceExt, destExt).Transform(path)
}

// 🎯 Transform computes the destination of path.
//
// The extension check never touches the filesystem and runs before anything else.
func (t *Transformer) Transform(path string) (Pair, error) {
	if t.SourceExt == "" || !strings.HasSuffix(path, t.SourceExt) {
		return Pair{}, &UnsupportedExtensionError{Path: path, Extension: t.SourceExt}
	}

	dest := strings.TrimSuffix(path, t.SourceExt) + t.DestExt

	dest, ok := replaceRoot(dest, t.SourceRoot, t.LibRoot)
	if !ok {
		return Pair{}, &OutsideRootError{Path: path, Root: t.SourceRoot}
	}

	if !strings.HasSuffix(dest, t.DestExt) {
		return Pair{}, &UnsupportedExtensionError{Path: path, Extension: t.SourceExt}
	}

	return Pair{Source: path, Destination: dest}, nil
}

// replaceRoot swaps the first run of components equal to from with to.
// Only whole components match, so "srcfoo/a.js" is not under "src".
func replaceRoot(path, from, to string) (string, bool) {
	parts := split(path)
	fromParts := split(from)
	toParts := split(to)

	if len(fromParts) == 0 || len(fromParts) >= len(parts) {
		return "", false
	}

	for i := 0; i+len(fromParts) < len(parts); i++ {
		if !equalParts(parts[i:i+len(fromParts)], fromParts) {
			continue
		}

		out := make([]string, 0, len(parts)-len(fromParts)+len(toParts))
		out = append(out, parts[:i]...)
		out = append(out, toParts...)
		out = append(out, parts[i+len(fromParts):]...)

		joined := filepath.Join(out...)
		if filepath.IsAbs(path) {
			joined = string(filepath.Separator) + joined
		}
		return joined, true
	}

	return "", false
}

func split(p string) []string {
	p = filepath.ToSlash(filepath.Clean(p))
	var parts []string
	for _, s := range strings.Split(p, "/") {
		if s == "" || s == "." {
			continue
		}
		parts = append(parts, s)
	}
	return parts
}

func equalParts(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
