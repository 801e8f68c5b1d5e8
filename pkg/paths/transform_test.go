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

package paths

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

func TestTransform(t *testing.T) {
	tests := []struct {
		name      string
		path      string
		src, lib  string
		want      string
		wantExt   bool
		wantRoot  bool
		customExt [2]string
	}{
		{
			name: "top_level_file",
			path: "src/a.js",
			src:  "src",
			lib:  "lib",
			want: "lib/a.mjs",
		},
		{
			name: "nested_file",
			path: "src/nested/deep/b.js",
			src:  "src",
			lib:  "lib",
			want: "lib/nested/deep/b.mjs",
		},
		{
			name: "root_segment_repeated_below",
			path: "src/src/c.js",
			src:  "src",
			lib:  "lib",
			want: "lib/src/c.mjs",
		},
		{
			name: "multi_segment_roots",
			path: "packages/core/src/index.js",
			src:  "packages/core/src",
			lib:  "dist/esm",
			want: "dist/esm/index.mjs",
		},
		{
			name: "extension_only_replaced_at_end",
			path: "src/file.js.js",
			src:  "src",
			lib:  "lib",
			want: "lib/file.js.mjs",
		},
		{
			name:      "custom_extensions",
			path:      "src/types.ts",
			src:       "src",
			lib:       "lib",
			customExt: [2]string{".ts", ".mts"},
			want:      "lib/types.mts",
		},
		{
			name:    "wrong_extension",
			path:    "src/readme.txt",
			src:     "src",
			lib:     "lib",
			wantExt: true,
		},
		{
			name:    "already_destination_extension",
			path:    "src/module.mjs",
			src:     "src",
			lib:     "lib",
			wantExt: true,
		},
		{
			name:    "no_extension",
			path:    "src/Makefile",
			src:     "src",
			lib:     "lib",
			wantExt: true,
		},
		{
			name:     "partial_component_is_not_root",
			path:     "srcfoo/a.js",
			src:      "src",
			lib:      "lib",
			wantRoot: true,
		},
		{
			name:     "root_is_the_file",
			path:     "src.js",
			src:      "src.js",
			lib:      "lib",
			wantRoot: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srcExt, dstExt := ".js", ".mjs"
			if tt.customExt[0] != "" {
				srcExt, dstExt = tt.customExt[0], tt.customExt[1]
			}

			pair, err := Transform(filepath.FromSlash(tt.path), tt.src, tt.lib, srcExt, dstExt)

			switch {
			case tt.wantExt:
				var extErr *UnsupportedExtensionError
				require.Error(t, err)
				assert.True(t, errors.As(err, &extErr), "error should be an UnsupportedExtensionError")
				assert.Equal(t, filepath.FromSlash(tt.path), extErr.Path)
			case tt.wantRoot:
				var rootErr *OutsideRootError
				require.Error(t, err)
				assert.True(t, errors.As(err, &rootErr), "error should be an OutsideRootError")
			default:
				require.NoError(t, err)
				assert.Equal(t, filepath.FromSlash(tt.path), pair.Source)
				assert.Equal(t, filepath.FromSlash(tt.want), pair.Destination)
			}
		})
	}
}

func TestTransformProperties(t *testing.T) {
	tr := NewTransformer("src", "lib", ".js", ".mjs")

	inputs := []string{
		"src/a.js",
		"src/.js",
		"src/x/y/z/w.js",
		"src/with space/file name.js",
		"src/ünïcode/ファイル.js",
	}

	for _, in := range inputs {
		pair, err := tr.Transform(filepath.FromSlash(in))
		require.NoError(t, err, "transforming %s", in)

		assert.True(t, strings.HasSuffix(pair.Destination, ".mjs"), "destination should carry the destination extension")
		first := strings.Split(filepath.ToSlash(pair.Destination), "/")[0]
		assert.Equal(t, "lib", first, "destination should live under the library root")
	}
}

func TestTransformRunsWithoutFilesystem(t *testing.T) {
	// nothing under this path exists; the result must only depend on the string
	pair, err := Transform(filepath.FromSlash("src/does/not/exist.js"), "src", "lib", ".js", ".mjs")
	require.NoError(t, err)
	assert.Equal(t, filepath.FromSlash("lib/does/not/exist.mjs"), pair.Destination)
}
