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
	"time"

	"github.com/rs/zerolog"
	"github.com/walteh/mjc/pkg/config"
	"github.com/walteh/mjc/pkg/log"
	"gitlab.com/tozd/go/errors"
)

// 🏃 OperationRunner executes operations and applies the failure policy
type OperationRunner struct {
	policy  config.FailurePolicy
	console *log.Logger
}

// 🏗️ NewRunner creates a new runner
func NewRunner(policy config.FailurePolicy, console *log.Logger) *OperationRunner {
	if console == nil {
		console = log.Discard()
	}
	return &OperationRunner{
		policy:  policy,
		console: console,
	}
}

// 🏃 Run executes an operation.
//
// The summary is returned whenever the operation got as far as producing one, even when
// the returned error reports failed files.
func (r *OperationRunner) Run(ctx context.Context, op Operation) (*Summary, error) {
	logger := zerolog.Ctx(ctx)
	start := time.Now()

	logger.Debug().Str("operation", op.Name()).Str("policy", string(r.policy)).Msg("running operation")

	summary, err := op.Execute(ctx)
	if err != nil {
		return nil, errors.Errorf("running %s: %w", op.Name(), err)
	}
	summary.Duration = time.Since(start)

	logger.Info().
		Str("operation", op.Name()).
		Int("files", len(summary.Outcomes)).
		Int("failed", summary.Failed()).
		Int64("bytes", summary.Bytes()).
		Dur("duration", summary.Duration).
		Msg("operation finished")

	failures := summary.Err()
	if failures == nil {
		return summary, nil
	}

	if r.policy == config.WarnOnError {
		for _, o := range summary.Failures() {
			r.console.Warningf("%s: %v", o.Path, o.Err)
		}
		return summary, nil
	}

	return summary, errors.Errorf("%s: %d of %d files failed: %w", op.Name(), summary.Failed(), len(summary.Outcomes), failures)
}
