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
	"github.com/spf13/cobra"
	"github.com/walteh/mjc/cmd/mjc/opts"
	"github.com/walteh/mjc/pkg/files"
	"github.com/walteh/mjc/pkg/log"
	"github.com/walteh/mjc/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

// NewCleanCmd creates a new clean command
func NewCleanCmd(o *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove the files build produces",
		Long: `Clean removes the destination of every current source file, then removes
directories left empty under the lib root. The lib root itself and files that no
current source maps to are kept.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			console := log.FromContext(ctx)

			console.Header("clean " + o.Config.LibRoot)

			op, err := operation.NewCleanOperation(o.Options(ctx))
			if err != nil {
				return errors.Errorf("creating clean operation: %w", err)
			}

			summary, err := o.Runner(ctx).Run(ctx, op)
			if err != nil {
				return err
			}

			console.LogNewline()
			console.Successf("removed %d files", summary.Count(files.StatusDeleted))
			return nil
		},
	}

	return cmd
}
