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

package main

import (
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/walteh/mjc/cmd/mjc/commands"
	"github.com/walteh/mjc/cmd/mjc/opts"
	"github.com/walteh/mjc/pkg/config"
	"github.com/walteh/mjc/pkg/log"
	"gitlab.com/tozd/go/errors"
)

// rootFlags holds the flags shared by every command
type rootFlags struct {
	configFile  string
	debug       bool
	cwd         string
	src         string
	lib         string
	srcExt      string
	dstExt      string
	concurrency int
	onFailure   string
	exclude     []string
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, f *rootFlags) {
	pf := cmd.PersistentFlags()
	pf.StringVarP(&f.configFile, "config", "c", "", "config file path (default: first of "+strings.Join(config.DefaultFiles, ", ")+")")
	pf.BoolVarP(&f.debug, "debug", "d", false, "enable debug logging")
	pf.StringVar(&f.cwd, "cwd", "", "working directory (env "+config.EnvWorkingDir+")")
	pf.StringVar(&f.src, "src", config.DefaultSourceRoot, "source root (env "+config.EnvSourceRoot+")")
	pf.StringVar(&f.lib, "lib", config.DefaultLibRoot, "lib root (env "+config.EnvLibRoot+")")
	pf.StringVar(&f.srcExt, "src-ext", config.DefaultSourceExt, "source extension (env "+config.EnvSourceExt+")")
	pf.StringVar(&f.dstExt, "dst-ext", config.DefaultDestExt, "destination extension (env "+config.EnvDestExt+")")
	pf.IntVarP(&f.concurrency, "concurrency", "j", 0, "copies in flight, 0 for no limit (env "+config.EnvConcurrency+")")
	pf.StringVar(&f.onFailure, "on-failure", string(config.FailOnError), "fail or warn when some files fail (env "+config.EnvOnFailure+")")
	pf.StringSliceVar(&f.exclude, "exclude", nil, "globs of source files to skip (env "+config.EnvExclude+")")
}

// overrides applies the flags the user set on top of the loaded config
func (f *rootFlags) overrides(flags *pflag.FlagSet) func(cfg *config.Config) {
	return func(cfg *config.Config) {
		if flags.Changed("src") {
			cfg.SourceRoot = f.src
		}
		if flags.Changed("lib") {
			cfg.LibRoot = f.lib
		}
		if flags.Changed("src-ext") {
			cfg.SourceExt = f.srcExt
		}
		if flags.Changed("dst-ext") {
			cfg.DestExt = f.dstExt
		}
		if flags.Changed("concurrency") {
			cfg.Concurrency = f.concurrency
		}
		if flags.Changed("on-failure") {
			cfg.OnFailure = f.onFailure
		}
		if flags.Changed("exclude") {
			cfg.Exclude = f.exclude
		}
	}
}

// 🌳 newRootCmd creates the mjc command tree. stdout receives user facing output,
// stderr receives the structured log.
func newRootCmd(stdout, stderr io.Writer, env map[string]string) *cobra.Command {
	f := &rootFlags{}
	o := &opts.RootOpts{Out: stdout}

	rootCmd := &cobra.Command{
		Use:   "mjc",
		Short: "Copy src/**/*.js to lib/**/*.mjs",
		Long: `mjc mirrors the JavaScript sources of a package into its lib directory with an .mjs
extension, so the same code can be published as ES modules.

Configuration is read from, later winning: built in defaults, .mjc.yaml / .mjc.hcl /
.mjc.json in the working directory, .env in the working directory, MJC_* environment
variables, and flags.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger := setupLogging(stderr, f.debug)
			ctx := logger.WithContext(cmd.Context())

			cfg, err := config.Load(ctx, config.LoadOptions{
				WorkingDir: f.cwd,
				ConfigFile: f.configFile,
				Env:        env,
				Overrides:  f.overrides(cmd.Flags()),
			})
			if err != nil {
				return errors.Errorf("loading config: %w", err)
			}

			o.Config = cfg
			cmd.SetContext(log.NewContext(ctx, log.New(stdout, logger)))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return commands.RunBuild(cmd.Context(), o)
		},
	}

	addRootFlags(rootCmd, f)

	rootCmd.AddCommand(
		commands.NewBuildCmd(o),
		commands.NewStatusCmd(o),
		commands.NewCleanCmd(o),
		newVersionCmd(stdout),
	)

	return rootCmd
}

// setupLogging configures zerolog based on flags.
//
// Per file lines go to the console; the structured log only shows warnings unless debugging.
func setupLogging(w io.Writer, debug bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}).
		Level(level).
		With().Timestamp().Logger()
}
