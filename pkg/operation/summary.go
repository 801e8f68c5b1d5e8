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
	"time"

	"github.com/walteh/mjc/pkg/files"
	"gitlab.com/tozd/go/errors"
)

// 📄 Outcome is the result of an operation on one source file
type Outcome struct {
	Path        string // source, relative to the working directory
	Destination string // empty when the source could not be mapped
	Succeeded   bool
	Status      files.FileStatus // set by status and clean
	Bytes       int64            // bytes written by build
	Err         error            // why the file failed, or why it is invalid
}

// 📊 Summary aggregates the outcomes of one operation, in discovery order
type Summary struct {
	Operation string
	Outcomes  []Outcome
	Duration  time.Duration
}

// Failures returns the outcomes that did not succeed.
func (s *Summary) Failures() []Outcome {
	var failed []Outcome
	for _, o := range s.Outcomes {
		if !o.Succeeded {
			failed = append(failed, o)
		}
	}
	return failed
}

// Failed returns the number of outcomes that did not succeed.
func (s *Summary) Failed() int {
	return len(s.Failures())
}

// Succeeded returns the number of outcomes that succeeded.
func (s *Summary) Succeeded() int {
	return len(s.Outcomes) - s.Failed()
}

// Bytes returns the total bytes written.
func (s *Summary) Bytes() int64 {
	var n int64
	for _, o := range s.Outcomes {
		n += o.Bytes
	}
	return n
}

// Count returns the number of outcomes with the given status.
func (s *Summary) Count(status files.FileStatus) int {
	n := 0
	for _, o := range s.Outcomes {
		if o.Status == status {
			n++
		}
	}
	return n
}

// ❌ Err joins the errors of every failed outcome, first failure first.
// It is nil when every outcome succeeded.
func (s *Summary) Err() error {
	var errs []error
	for _, o := range s.Failures() {
		errs = append(errs, errors.Errorf("%s: %w", o.Path, o.Err))
	}
	return errors.Join(errs...)
}
