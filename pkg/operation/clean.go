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
	"context"

	"github.com/walteh/mjc/pkg/files"
	"github.com/walteh/mjc/pkg/log"
	"gitlab.com/tozd/go/errors"
)

// 🧹 NewCleanOperation creates a new clean operation
func NewCleanOperation(opts Options) (Operation, error) {
	base, err := NewBaseOperation(opts)
	if err != nil {
		return nil, err
	}
	return &cleanOperation{BaseOperation: base}, nil
}

// 🧹 cleanOperation removes the files build would produce for the current sources
type cleanOperation struct {
	BaseOperation
}

func (op *cleanOperation) Name() string {
	return "clean"
}

// 🏃 Execute runs the clean operation
func (op *cleanOperation) Execute(ctx context.Context) (*Summary, error) {
	sources, err := op.sources(ctx)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		Operation: op.Name(),
		Outcomes:  op.forEach(ctx, sources, op.cleanFile),
	}

	if err := op.Files.PruneEmptyDirs(ctx, op.Config.LibRoot); err != nil {
		return nil, errors.Errorf("pruning %s: %w", op.Config.LibRoot, err)
	}

	return summary, nil
}

// 🗑️ cleanFile removes the destination of one source
func (op *cleanOperation) cleanFile(ctx context.Context, path string) Outcome {
	pair, err := op.Transformer.Transform(path)
	if err != nil {
		// nothing build could have written
		return Outcome{Path: path, Status: files.StatusInvalid, Succeeded: true, Err: err}
	}

	removed, err := op.Files.Remove(ctx, pair.Destination)
	if err != nil {
		op.Console.LogFileOperation(ctx, log.FileOperation{
			Source:      pair.Source,
			Destination: pair.Destination,
			Action:      log.ActionFailed,
			Err:         err,
		})
		return Outcome{Path: path, Destination: pair.Destination, Err: err}
	}

	if !removed {
		op.Console.LogFileOperation(ctx, log.FileOperation{
			Source:      pair.Source,
			Destination: pair.Destination,
			Action:      log.ActionSkipped,
		})
		return Outcome{Path: path, Destination: pair.Destination, Status: files.StatusUnchanged, Succeeded: true}
	}

	op.Console.LogFileOperation(ctx, log.FileOperation{
		Source:      pair.Source,
		Destination: pair.Destination,
		Action:      log.ActionRemoved,
	})
	return Outcome{Path: path, Destination: pair.Destination, Status: files.StatusDeleted, Succeeded: true}
}
