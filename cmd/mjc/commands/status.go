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
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/walteh/mjc/cmd/mjc/opts"
	"github.com/walteh/mjc/pkg/files"
	"github.com/walteh/mjc/pkg/log"
	"github.com/walteh/mjc/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

// NewStatusCmd creates a new status command
func NewStatusCmd(o *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show what build would do",
		Long: `Status lists every source file with its destination and whether the destination
is new, modified, unchanged, or invalid (the source cannot be mapped). Nothing is written.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			console := log.FromContext(ctx)

			op, err := operation.NewStatusOperation(o.Options(ctx))
			if err != nil {
				return errors.Errorf("creating status operation: %w", err)
			}

			summary, err := o.Runner(ctx).Run(ctx, op)
			if err != nil {
				return err
			}

			if len(summary.Outcomes) == 0 {
				console.Infof("no files match %s", o.Config.String())
				return nil
			}

			table, err := RenderStatusTable(summary)
			if err != nil {
				return errors.Errorf("rendering status table: %w", err)
			}
			fmt.Fprintln(o.Out, table)

			console.Infof("%d new, %d modified, %d unchanged, %d invalid",
				summary.Count(files.StatusNew),
				summary.Count(files.StatusModified),
				summary.Count(files.StatusUnchanged),
				summary.Count(files.StatusInvalid))

			return nil
		},
	}

	return cmd
}

// 📊 RenderStatusTable renders the outcomes of a status run as a table
func RenderStatusTable(summary *operation.Summary) (string, error) {
	data := pterm.TableData{{"Source", "Destination", "Status"}}
	for _, oc := range summary.Outcomes {
		dst := oc.Destination
		if dst == "" {
			dst = "-"
		}
		data = append(data, []string{oc.Path, dst, statusCell(oc)})
	}

	return pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
}

func statusCell(oc operation.Outcome) string {
	switch {
	case !oc.Succeeded:
		return pterm.Red("error: " + oc.Err.Error())
	case oc.Status == files.StatusNew:
		return pterm.Green(oc.Status.String())
	case oc.Status == files.StatusModified:
		return pterm.Yellow(oc.Status.String())
	case oc.Status == files.StatusInvalid:
		return pterm.Red(oc.Status.String())
	default:
		return oc.Status.String()
	}
}
