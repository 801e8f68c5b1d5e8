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

	"github.com/walteh/mjc/pkg/config"
	"github.com/walteh/mjc/pkg/discover"
	"github.com/walteh/mjc/pkg/files"
	"github.com/walteh/mjc/pkg/log"
	"github.com/walteh/mjc/pkg/paths"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// 🎯 Operation is one mjc command run over the discovered source files
type Operation interface {
	// Name identifies the operation in logs and errors
	Name() string
	// Execute runs the operation. Per-file failures are reported in the Summary,
	// the error is reserved for failures that stop the whole run.
	Execute(ctx context.Context) (*Summary, error)
}

// 🔍 Discoverer lists the source files of a run, relative to the working directory
type Discoverer interface {
	Discover(ctx context.Context) ([]string, error)
}

var _ Discoverer = (*discover.Discoverer)(nil)

// 🔧 Options contains everything an operation needs
type Options struct {
	// Config is the validated run configuration
	Config *config.Config
	// Files performs all file system access. Defaults to a files.Manager rooted at the
	// working directory.
	Files files.FileManager
	// Discoverer lists source files. Defaults to a discover.Discoverer over the source root.
	Discoverer Discoverer
	// Transformer maps sources to destinations. Defaults to one built from Config.
	Transformer *paths.Transformer
	// Console receives one line per file. Defaults to log.Discard().
	Console *log.Logger
}

// BaseOperation holds the collaborators shared by every operation.
type BaseOperation struct {
	Options
}

// 🏗️ NewBaseOperation checks opts and fills in defaults
func NewBaseOperation(opts Options) (BaseOperation, error) {
	if opts.Config == nil {
		return BaseOperation{}, errors.Errorf("config is required")
	}
	cfg := opts.Config

	if opts.Files == nil {
		opts.Files = files.New(cfg.WorkingDir)
	}
	if opts.Discoverer == nil {
		d := discover.New(cfg.WorkingDir, cfg.SourceRoot, cfg.SourceExt)
		d.Exclude = cfg.Exclude
		opts.Discoverer = d
	}
	if opts.Transformer == nil {
		opts.Transformer = paths.NewTransformer(cfg.SourceRoot, cfg.LibRoot, cfg.SourceExt, cfg.DestExt)
	}
	if opts.Console == nil {
		opts.Console = log.Discard()
	}

	return BaseOperation{Options: opts}, nil
}

// 🔀 forEach runs fn for every path and returns the outcomes in the order of paths.
//
// Every path is attempted; one failing never cancels the others. Concurrency > 0 caps
// the number of calls in flight.
func (op *BaseOperation) forEach(ctx context.Context, sources []string, fn func(ctx context.Context, path string) Outcome) []Outcome {
	outcomes := make([]Outcome, len(sources))

	var g errgroup.Group
	if op.Config.Concurrency > 0 {
		g.SetLimit(op.Config.Concurrency)
	}

	for i, path := range sources {
		g.Go(func() error {
			outcomes[i] = fn(ctx, path)
			return nil
		})
	}

	// fn never returns an error through the group
	_ = g.Wait()

	return outcomes
}

// sources lists the source files of the run
func (op *BaseOperation) sources(ctx context.Context) ([]string, error) {
	sources, err := op.Discoverer.Discover(ctx)
	if err != nil {
		return nil, errors.Errorf("discovering sources: %w", err)
	}
	return sources, nil
}
