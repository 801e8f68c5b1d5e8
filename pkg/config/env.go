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

package config

import (
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gitlab.com/tozd/go/errors"
)

// Environment variables read by ApplyEnv
const (
	EnvWorkingDir  = "MJC_CWD"
	EnvSourceRoot  = "MJC_SRC"
	EnvLibRoot     = "MJC_LIB"
	EnvSourceExt   = "MJC_SRC_EXT"
	EnvDestExt     = "MJC_DST_EXT"
	EnvConcurrency = "MJC_CONCURRENCY"
	EnvOnFailure   = "MJC_ON_FAILURE"
	EnvExclude     = "MJC_EXCLUDE" // comma separated globs
)

// 🌍 Environ returns the process environment as a map
func Environ() map[string]string {
	env := make(map[string]string)
	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		env[k] = v
	}
	return env
}

// 📄 ReadDotenv reads a .env file. A missing file yields an empty map.
func ReadDotenv(path string) (map[string]string, error) {
	env, err := godotenv.Read(path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, errors.Errorf("reading %s: %w", path, err)
	}
	return env, nil
}

// 🔀 MergeEnv returns base overlaid with every later map, later maps winning
func MergeEnv(base map[string]string, overlays ...map[string]string) map[string]string {
	out := make(map[string]string, len(base))
	for k, v := range base {
		out[k] = v
	}
	for _, o := range overlays {
		for k, v := range o {
			out[k] = v
		}
	}
	return out
}

// 🌍 ApplyEnv overlays the MJC_* variables found in env onto cfg. Empty values are ignored.
func ApplyEnv(cfg *Config, env map[string]string) error {
	get := func(key string) (string, bool) {
		v := strings.TrimSpace(env[key])
		return v, v != ""
	}

	if v, ok := get(EnvWorkingDir); ok {
		cfg.WorkingDir = v
	}
	if v, ok := get(EnvSourceRoot); ok {
		cfg.SourceRoot = v
	}
	if v, ok := get(EnvLibRoot); ok {
		cfg.LibRoot = v
	}
	if v, ok := get(EnvSourceExt); ok {
		cfg.SourceExt = v
	}
	if v, ok := get(EnvDestExt); ok {
		cfg.DestExt = v
	}
	if v, ok := get(EnvConcurrency); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.Errorf("parsing %s: %w", EnvConcurrency, err)
		}
		cfg.Concurrency = n
	}
	if v, ok := get(EnvOnFailure); ok {
		cfg.OnFailure = strings.ToLower(v)
	}
	if v, ok := get(EnvExclude); ok {
		var globs []string
		for _, g := range strings.Split(v, ",") {
			if g = strings.TrimSpace(g); g != "" {
				globs = append(globs, g)
			}
		}
		cfg.Exclude = globs
	}

	return nil
}
