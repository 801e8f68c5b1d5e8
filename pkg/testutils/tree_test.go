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

package testutils

import (
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteTree(t *testing.T) {
	dir := WriteTree(t, map[string]string{
		"src/a.js":         "a",
		"src/deep/er/b.js": "b",
		"empty.txt":        "",
	})

	assert.Equal(t, "a", ReadFile(t, dir, "src/a.js"))
	assert.Equal(t, "b", ReadFile(t, dir, "src/deep/er/b.js"))
	assert.Equal(t, "", ReadFile(t, dir, "empty.txt"))
	assert.DirExists(t, filepath.Join(dir, "src", "deep", "er"))
}

func TestContext(t *testing.T) {
	ctx := Context(t)
	logger := zerolog.Ctx(ctx)
	require.NotNil(t, logger)
	assert.Equal(t, zerolog.DebugLevel, logger.GetLevel())
}
