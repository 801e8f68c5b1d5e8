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
	"github.com/walteh/mjc/pkg/files"
)

// 🔍 NewStatusOperation creates the dry run that reports what build would do
func NewStatusOperation(opts Options) (Operation, error) {
	base, err := NewBaseOperation(opts)
	if err != nil {
		return nil, err
	}
	return &statusOperation{BaseOperation: base}, nil
}

type statusOperation struct {
	BaseOperation
}

func (op *statusOperation) Name() string {
	return "status"
}

// 🏃 Execute compares every discovered source with its destination. Nothing is written.
//
// Sources that cannot be mapped to a destination are reported as StatusInvalid and still
// count as succeeded; only sources that cannot be read fail.
func (op *statusOperation) Execute(ctx context.Context) (*Summary, error) {
	sources, err := op.sources(ctx)
	if err != nil {
		return nil, err
	}

	return &Summary{
		Operation: op.Name(),
		Outcomes:  op.forEach(ctx, sources, op.statusFile),
	}, nil
}

func (op *statusOperation) statusFile(ctx context.Context, path string) Outcome {
	logger := zerolog.Ctx(ctx)

	pair, err := op.Transformer.Transform(path)
	if err != nil {
		logger.Debug().Err(err).Str("path", path).Msg("source cannot be mapped")
		return Outcome{Path: path, Status: files.StatusInvalid, Succeeded: true, Err: err}
	}

	st, err := op.Files.Compare(ctx, pair.Source, pair.Destination)
	if err != nil {
		return Outcome{Path: path, Destination: pair.Destination, Err: err}
	}

	logger.Debug().Str("path", path).Str("destination", pair.Destination).Stringer("status", st).Msg("compared")
	return Outcome{Path: path, Destination: pair.Destination, Status: st, Succeeded: true}
}
