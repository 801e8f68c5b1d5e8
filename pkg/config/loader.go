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
	"context"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// DefaultFiles are the config file names looked up in the working directory, in order.
var DefaultFiles = []string{".mjc.yaml", ".mjc.yml", ".mjc.hcl", ".mjc.json"}

// DotenvFile is the name of the .env file read from the working directory.
const DotenvFile = ".env"

// ⚙️ LoadOptions controls where Load reads configuration from
type LoadOptions struct {
	// WorkingDir wins over MJC_CWD and the process directory
	WorkingDir string
	// ConfigFile is an explicit config file; it must exist. Relative paths are resolved
	// against the working directory. Empty means look for DefaultFiles.
	ConfigFile string
	// Env is the process environment. nil means Environ().
	Env map[string]string
	// Overrides is applied last, e.g. from command line flags
	Overrides func(cfg *Config)
}

// 🎯 Load builds the configuration of a run.
//
// Layers, later winning: defaults, config file, .env, process environment, overrides.
func Load(ctx context.Context, opts LoadOptions) (*Config, error) {
	logger := zerolog.Ctx(ctx)

	processEnv := opts.Env
	if processEnv == nil {
		processEnv = Environ()
	}

	wd, err := resolveWorkingDir(opts.WorkingDir, processEnv)
	if err != nil {
		return nil, err
	}
	logger.Debug().Str("working_dir", wd).Msg("resolved working directory")

	dotenv, err := ReadDotenv(filepath.Join(wd, DotenvFile))
	if err != nil {
		return nil, errors.Errorf("loading dotenv: %w", err)
	}
	// the working directory is already fixed, a .env cannot move it
	delete(dotenv, EnvWorkingDir)
	env := MergeEnv(dotenv, processEnv)

	cfg := Default()

	fileCfg, path, err := loadFile(ctx, wd, opts.ConfigFile, env)
	if err != nil {
		return nil, err
	}
	if fileCfg != nil {
		logger.Debug().Str("path", path).Msg("loaded config file")
		cfg.Merge(fileCfg)
	}

	if err := ApplyEnv(cfg, env); err != nil {
		return nil, errors.Errorf("applying environment: %w", err)
	}
	cfg.WorkingDir = wd

	if opts.Overrides != nil {
		opts.Overrides(cfg)
	}

	if cfg.WorkingDir != wd {
		if cfg.WorkingDir, err = filepath.Abs(cfg.WorkingDir); err != nil {
			return nil, errors.Errorf("getting absolute working directory: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	logger.Debug().
		Str("source_root", cfg.SourceRoot).
		Str("lib_root", cfg.LibRoot).
		Str("source_ext", cfg.SourceExt).
		Str("dest_ext", cfg.DestExt).
		Int("concurrency", cfg.Concurrency).
		Str("on_failure", cfg.OnFailure).
		Msg("configuration loaded")

	return cfg, nil
}

func resolveWorkingDir(explicit string, env map[string]string) (string, error) {
	wd := explicit
	if wd == "" {
		wd = env[EnvWorkingDir]
	}
	if wd == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", errors.Errorf("getting current directory: %w", err)
		}
		wd = cwd
	}

	abs, err := filepath.Abs(wd)
	if err != nil {
		return "", errors.Errorf("getting absolute working directory: %w", err)
	}
	return abs, nil
}

// loadFile reads the explicit config file, or the first of DefaultFiles that exists.
// No file at all is not an error.
func loadFile(ctx context.Context, wd, explicit string, env map[string]string) (*Config, string, error) {
	if explicit != "" {
		path := explicit
		if !filepath.IsAbs(path) {
			path = filepath.Join(wd, path)
		}
		cfg, err := parseFile(ctx, path, env)
		return cfg, path, err
	}

	for _, name := range DefaultFiles {
		path := filepath.Join(wd, name)
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		cfg, err := parseFile(ctx, path, env)
		return cfg, path, err
	}

	return nil, "", nil
}

func parseFile(ctx context.Context, path string, env map[string]string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	cfg, err := p.Parse(ctx, data, env)
	if err != nil {
		return nil, errors.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}
