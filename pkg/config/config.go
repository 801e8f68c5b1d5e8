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
	"fmt"
	"path/filepath"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// 🔌 Parser is the interface for config file parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte, env map[string]string) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 🚦 FailurePolicy decides what a run with some failed files reports
type FailurePolicy string

const (
	// FailOnError fails the whole run if any file failed
	FailOnError FailurePolicy = "fail"
	// WarnOnError reports partial success as success, with the failures as warnings
	WarnOnError FailurePolicy = "warn"
)

// Default values
const (
	DefaultSourceRoot = "src"
	DefaultLibRoot    = "lib"
	DefaultSourceExt  = ".js"
	DefaultDestExt    = ".mjs"
)

// 📚 Config represents the complete configuration of a run
type Config struct {
	// WorkingDir is the root SourceRoot and LibRoot are resolved against. It is never read
	// from a config file, since the file is looked up inside it.
	WorkingDir string `json:"-" yaml:"-"`

	SourceRoot  string   `json:"source_root,omitempty" yaml:"source_root,omitempty" hcl:"source_root,optional"`
	LibRoot     string   `json:"lib_root,omitempty" yaml:"lib_root,omitempty" hcl:"lib_root,optional"`
	SourceExt   string   `json:"source_ext,omitempty" yaml:"source_ext,omitempty" hcl:"source_ext,optional"`
	DestExt     string   `json:"dest_ext,omitempty" yaml:"dest_ext,omitempty" hcl:"dest_ext,optional"`
	Exclude     []string `json:"exclude,omitempty" yaml:"exclude,omitempty" hcl:"exclude,optional"`
	Concurrency int      `json:"concurrency,omitempty" yaml:"concurrency,omitempty" hcl:"concurrency,optional"`
	OnFailure   string   `json:"on_failure,omitempty" yaml:"on_failure,omitempty" hcl:"on_failure,optional"`
}

// 🏭 Default returns the configuration used when nothing is overridden
func Default() *Config {
	return &Config{
		SourceRoot:  DefaultSourceRoot,
		LibRoot:     DefaultLibRoot,
		SourceExt:   DefaultSourceExt,
		DestExt:     DefaultDestExt,
		Concurrency: 0,
		OnFailure:   string(FailOnError),
	}
}

// Policy returns OnFailure as a FailurePolicy.
func (cfg *Config) Policy() FailurePolicy {
	return FailurePolicy(cfg.OnFailure)
}

// 🔀 Merge copies every non-zero field of other onto cfg
func (cfg *Config) Merge(other *Config) {
	if other == nil {
		return
	}
	if other.WorkingDir != "" {
		cfg.WorkingDir = other.WorkingDir
	}
	if other.SourceRoot != "" {
		cfg.SourceRoot = other.SourceRoot
	}
	if other.LibRoot != "" {
		cfg.LibRoot = other.LibRoot
	}
	if other.SourceExt != "" {
		cfg.SourceExt = other.SourceExt
	}
	if other.DestExt != "" {
		cfg.DestExt = other.DestExt
	}
	if len(other.Exclude) > 0 {
		cfg.Exclude = append([]string(nil), other.Exclude...)
	}
	if other.Concurrency != 0 {
		cfg.Concurrency = other.Concurrency
	}
	if other.OnFailure != "" {
		cfg.OnFailure = other.OnFailure
	}
}

// 🔍 Validate checks if the configuration is valid and normalizes its paths
func (cfg *Config) Validate() error {
	if cfg.WorkingDir == "" {
		return errors.Errorf("working directory is required")
	}
	if !filepath.IsAbs(cfg.WorkingDir) {
		return errors.Errorf("working directory must be absolute: %s", cfg.WorkingDir)
	}
	cfg.WorkingDir = filepath.Clean(cfg.WorkingDir)

	src, err := validateRoot("source_root", cfg.SourceRoot)
	if err != nil {
		return err
	}
	lib, err := validateRoot("lib_root", cfg.LibRoot)
	if err != nil {
		return err
	}
	if src == lib {
		return errors.Errorf("source_root and lib_root must differ: both are %s", src)
	}
	if within(src, lib) || within(lib, src) {
		return errors.Errorf("source_root and lib_root must not be nested: %s and %s", src, lib)
	}
	cfg.SourceRoot = src
	cfg.LibRoot = lib

	if err := validateExt("source_ext", cfg.SourceExt); err != nil {
		return err
	}
	if err := validateExt("dest_ext", cfg.DestExt); err != nil {
		return err
	}

	if cfg.Concurrency < 0 {
		return errors.Errorf("concurrency must not be negative: %d", cfg.Concurrency)
	}

	switch cfg.Policy() {
	case FailOnError, WarnOnError:
	case "":
		cfg.OnFailure = string(FailOnError)
	default:
		return errors.Errorf("on_failure must be %q or %q: got %q", FailOnError, WarnOnError, cfg.OnFailure)
	}

	return nil
}

// within reports whether the cleaned relative path p lies below dir
func within(dir, p string) bool {
	return strings.HasPrefix(p, dir+string(filepath.Separator))
}

func validateRoot(name, root string) (string, error) {
	if root == "" {
		return "", errors.Errorf("%s is required", name)
	}
	if filepath.IsAbs(root) {
		return "", errors.Errorf("%s must be relative to the working directory: %s", name, root)
	}
	clean := filepath.Clean(root)
	if clean == "." {
		return "", errors.Errorf("%s must not be the working directory itself", name)
	}
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", errors.Errorf("%s must stay inside the working directory: %s", name, root)
	}
	return clean, nil
}

func validateExt(name, ext string) error {
	if len(ext) < 2 || !strings.HasPrefix(ext, ".") {
		return errors.Errorf("%s must start with a dot and name an extension: %q", name, ext)
	}
	if strings.ContainsAny(ext, `/\`) {
		return errors.Errorf("%s must not contain path separators: %q", name, ext)
	}
	return nil
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	return fmt.Sprintf("%s/**/*%s -> %s/**/*%s",
		filepath.ToSlash(cfg.SourceRoot), cfg.SourceExt,
		filepath.ToSlash(cfg.LibRoot), cfg.DestExt)
}
