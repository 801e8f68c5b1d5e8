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

	"github.com/rs/zerolog"
	"github.com/walteh/mjc/pkg/log"
	"gitlab.com/tozd/go/errors"
)

// 📦 NewBuildOperation creates the operation that copies every source into the lib root
func NewBuildOperation(opts Options) (Operation, error) {
	base, err := NewBaseOperation(opts)
	if err != nil {
		return nil, err
	}
	return &buildOperation{BaseOperation: base}, nil
}

// 📦 buildOperation implements the build operation
type buildOperation struct {
	BaseOperation
}

func (op *buildOperation) Name() string {
	return "build"
}

// 🏃 Execute creates the lib root, then transforms and copies each discovered file
func (op *buildOperation) Execute(ctx context.Context) (*Summary, error) {
	logger := zerolog.Ctx(ctx)

	if err := op.Files.EnsureDir(ctx, op.Config.LibRoot); err != nil {
		return nil, errors.Errorf("preparing lib root: %w", err)
	}

	sources, err := op.sources(ctx)
	if err != nil {
		return nil, err
	}
	logger.Debug().Int("count", len(sources)).Str("pattern", op.Config.String()).Msg("discovered sources")

	return &Summary{
		Operation: op.Name(),
		Outcomes:  op.forEach(ctx, sources, op.buildFile),
	}, nil
}

// 📄 buildFile copies one source to its destination
func (op *buildOperation) buildFile(ctx context.Context, path string) Outcome {
	out := Outcome{Path: path}

	pair, err := op.Transformer.Transform(path)
	if err != nil {
		out.Err = err
		op.Console.LogFileOperation(ctx, log.FileOperation{Source: path, Action: log.ActionFailed, Err: err})
		return out
	}
	out.Destination = pair.Destination

	n, err := op.Files.Copy(ctx, pair.Source, pair.Destination)
	out.Bytes = n
	if err != nil {
		out.Err = err
		op.Console.LogFileOperation(ctx, log.FileOperation{
			Source:      pair.Source,
			Destination: pair.Destination,
			Action:      log.ActionFailed,
			Err:         err,
		})
		return out
	}

	out.Succeeded = true
	op.Console.LogFileOperation(ctx, log.FileOperation{
		Source:      pair.Source,
		Destination: pair.Destination,
		Action:      log.ActionCopied,
		Bytes:       n,
	})
	return out
}
