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
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/mjc/pkg/config"
	"github.com/walteh/mjc/pkg/files"
	"github.com/walteh/mjc/pkg/log"
)

type fakeOperation struct {
	summary *Summary
	err     error
}

func (f *fakeOperation) Name() string {
	return "fake"
}

func (f *fakeOperation) Execute(ctx context.Context) (*Summary, error) {
	return f.summary, f.err
}

func TestRunner(t *testing.T) {
	failed := Outcome{
		Path: "src/b.js",
		Err:  &files.CopyError{Kind: files.DestinationUnwritable, Path: "lib/b.mjs", Cause: assert.AnError},
	}
	mixed := func() *Summary {
		return &Summary{Operation: "fake", Outcomes: []Outcome{{Path: "src/a.js", Succeeded: true}, failed}}
	}

	tests := []struct {
		name          string
		policy        config.FailurePolicy
		op            *fakeOperation
		expectedError string
		wantSummary   bool
		wantConsole   string
	}{
		{
			name:        "all_succeeded",
			policy:      config.FailOnError,
			op:          &fakeOperation{summary: &Summary{Outcomes: []Outcome{{Path: "src/a.js", Succeeded: true}}}},
			wantSummary: true,
		},
		{
			name:          "execute_error",
			policy:        config.FailOnError,
			op:            &fakeOperation{err: assert.AnError},
			expectedError: "running fake",
		},
		{
			name:          "fail_policy",
			policy:        config.FailOnError,
			op:            &fakeOperation{summary: mixed()},
			expectedError: "fake: 1 of 2 files failed",
			wantSummary:   true,
		},
		{
			name:        "warn_policy",
			policy:      config.WarnOnError,
			op:          &fakeOperation{summary: mixed()},
			wantSummary: true,
			wantConsole: "⚠️  src/b.js: ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())

			var console bytes.Buffer
			color.NoColor = true

			summary, err := NewRunner(tt.policy, log.New(&console, zerolog.Nop())).Run(ctx, tt.op)

			if tt.expectedError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError)
			} else {
				require.NoError(t, err)
			}

			if tt.wantSummary {
				require.NotNil(t, summary)
			} else {
				assert.Nil(t, summary)
			}

			if tt.wantConsole != "" {
				assert.Contains(t, console.String(), tt.wantConsole)
			} else {
				assert.Empty(t, console.String())
			}
		})
	}
}

func TestRunnerFailPolicyKeepsErrorKinds(t *testing.T) {
	ctx := zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
	op := &fakeOperation{summary: &Summary{Outcomes: []Outcome{{
		Path: "src/a.js",
		Err:  &files.CopyError{Kind: files.SourceUnreadable, Path: "src/a.js", Cause: assert.AnError},
	}}}}

	_, err := NewRunner(config.FailOnError, nil).Run(ctx, op)
	require.Error(t, err)
	assert.ErrorIs(t, err, files.ErrSourceUnreadable)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestRunnerWarnPolicyLogsEachFailureOnce(t *testing.T) {
	var structured, console bytes.Buffer
	zlog := zerolog.New(&structured).Level(zerolog.WarnLevel)
	ctx := zlog.WithContext(context.Background())

	op := &fakeOperation{summary: &Summary{Outcomes: []Outcome{
		{Path: "src/a.js", Err: &files.CopyError{Kind: files.SourceUnreadable, Path: "src/a.js", Cause: assert.AnError}},
		{Path: "src/b.js", Succeeded: true},
		{Path: "src/c.js", Err: &files.CopyError{Kind: files.DestinationUnwritable, Path: "lib/c.mjs", Cause: assert.AnError}},
	}}}

	_, err := NewRunner(config.WarnOnError, log.New(&console, zlog)).Run(ctx, op)
	require.NoError(t, err)

	assert.Equal(t, 2, strings.Count(structured.String(), `"level":"warn"`), structured.String())
	assert.Equal(t, 1, strings.Count(structured.String(), "src/c.js"))
}
