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

package commands

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"github.com/walteh/mjc/cmd/mjc/opts"
	"github.com/walteh/mjc/pkg/log"
	"github.com/walteh/mjc/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

// NewBuildCmd creates a new build command
func NewBuildCmd(o *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Copy every source file into the lib root",
		Long: `Build copies src/**/*.js to lib/**/*.mjs.
It will:
1. Create the lib root
2. Find every source file under the source root
3. Copy each one to the same relative path under the lib root, with the new extension

A file that fails to copy never stops the others. With on_failure=fail (the default)
any failed file makes the command exit non-zero.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunBuild(cmd.Context(), o)
		},
	}

	return cmd
}

// RunBuild runs the build operation. It is also what mjc does without a subcommand.
func RunBuild(ctx context.Context, o *opts.RootOpts) error {
	console := log.FromContext(ctx)
	console.Header(o.Config.String())

	op, err := operation.NewBuildOperation(o.Options(ctx))
	if err != nil {
		return errors.Errorf("creating build operation: %w", err)
	}

	summary, err := o.Runner(ctx).Run(ctx, op)
	if err != nil {
		return err
	}

	console.LogNewline()
	console.Successf("copied %d of %d files in %s",
		summary.Succeeded(), len(summary.Outcomes), summary.Duration.Round(time.Millisecond))

	return nil
}
