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

package operation

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/mjc/pkg/files"
	"github.com/walteh/mjc/pkg/log"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name        string
		tree        map[string]string
		wantDeleted int
		wantSkipped int
		wantKept    []string
		wantMissing []string
	}{
		{
			name: "removes_outputs_and_empty_dirs",
			tree: map[string]string{
				"src/a.js":         "a",
				"src/nested/b.js":  "b",
				"lib/a.mjs":        "a",
				"lib/nested/b.mjs": "b",
			},
			wantDeleted: 2,
			wantMissing: []string{"lib/a.mjs", "lib/nested"},
		},
		{
			name: "keeps_foreign_files",
			tree: map[string]string{
				"src/a.js":          "a",
				"lib/a.mjs":         "a",
				"lib/keep.txt":      "mine",
				"lib/other/x.mjs":   "not from a source",
				"lib/nested/b.mjs":  "source is gone",
				"src/nested/c.d.ts": "types",
			},
			wantDeleted: 1,
			wantKept:    []string{"lib/keep.txt", "lib/other/x.mjs", "lib/nested/b.mjs"},
			wantMissing: []string{"lib/a.mjs"},
		},
		{
			name: "never_built",
			tree: map[string]string{
				"src/a.js": "a",
			},
			wantSkipped: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testContext(t)
			cfg := setupTree(t, tt.tree)

			var console bytes.Buffer
			color.NoColor = true

			op, err := NewCleanOperation(Options{Config: cfg, Console: log.New(&console, zerolog.Nop())})
			require.NoError(t, err)
			assert.Equal(t, "clean", op.Name())

			summary, err := NewRunner(cfg.Policy(), nil).Run(ctx, op)
			require.NoError(t, err)

			assert.Equal(t, tt.wantDeleted, summary.Count(files.StatusDeleted))
			assert.Equal(t, tt.wantSkipped, summary.Count(files.StatusUnchanged))
			assert.Equal(t, 0, summary.Failed())

			for _, p := range tt.wantKept {
				assert.FileExists(t, filepath.Join(cfg.WorkingDir, filepath.FromSlash(p)))
			}
			for _, p := range tt.wantMissing {
				assertMissing(t, cfg, p)
			}
			assert.Equal(t, "a", readFile(t, cfg, "src/a.js"), "sources are never touched")
			assert.Equal(t, tt.wantDeleted, strings.Count(console.String(), string(log.ActionRemoved)))
			assert.Equal(t, tt.wantSkipped, strings.Count(console.String(), string(log.ActionSkipped)))
		})
	}
}

func TestCleanKeepsLibRoot(t *testing.T) {
	ctx := testContext(t)
	cfg := setupTree(t, map[string]string{
		"src/a.js":  "a",
		"lib/a.mjs": "a",
	})

	op, err := NewCleanOperation(Options{Config: cfg})
	require.NoError(t, err)

	_, err = NewRunner(cfg.Policy(), nil).Run(ctx, op)
	require.NoError(t, err)

	assertMissing(t, cfg, "lib/a.mjs")
	assert.DirExists(t, filepath.Join(cfg.WorkingDir, "lib"))
}

func TestCleanAfterBuild(t *testing.T) {
	ctx := testContext(t)
	cfg := setupTree(t, map[string]string{
		"src/a.js":       "a",
		"src/x/y/z/b.js": "b",
	})

	_, err := runBuild(t, ctx, Options{Config: cfg})
	require.NoError(t, err)
	assert.Equal(t, "b", readFile(t, cfg, "lib/x/y/z/b.mjs"))

	op, err := NewCleanOperation(Options{Config: cfg})
	require.NoError(t, err)
	summary, err := NewRunner(cfg.Policy(), nil).Run(ctx, op)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Count(files.StatusDeleted))
	assertMissing(t, cfg, "lib/x")
}
