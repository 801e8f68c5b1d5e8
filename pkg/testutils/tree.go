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

// Package testutils holds helpers shared by the package tests.
package testutils

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// 🌳 WriteTree creates a temp directory holding tree, a map of slash separated paths to
// file contents, and returns the directory.
func WriteTree(t testing.TB, tree map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for p, content := range tree {
		full := filepath.Join(dir, filepath.FromSlash(p))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755), "creating parent of %s", p)
		require.NoError(t, os.WriteFile(full, []byte(content), 0644), "writing %s", p)
	}
	return dir
}

// ReadFile returns the content of the slash separated path p under dir.
func ReadFile(t testing.TB, dir, p string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(p)))
	require.NoError(t, err, "reading %s", p)
	return string(data)
}

// 📝 Context returns a context carrying a debug level logger that writes to the test log
func Context(t testing.TB) context.Context {
	logger := zerolog.New(zerolog.NewTestWriter(t)).Level(zerolog.DebugLevel).With().Timestamp().Logger()
	return logger.WithContext(context.Background())
}
