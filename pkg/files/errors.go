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

package files

import (
	"fmt"

	"gitlab.com/tozd/go/errors"
)

var (
	// ErrSourceUnreadable matches any CopyError of kind SourceUnreadable.
	ErrSourceUnreadable = errors.Base("source unreadable")
	// ErrDestinationUnwritable matches any CopyError of kind DestinationUnwritable.
	ErrDestinationUnwritable = errors.Base("destination unwritable")
)

// 📁 DirectoryCreationError is returned when a directory (or one of its parents) cannot be created
type DirectoryCreationError struct {
	Path  string
	Cause error
}

func (e *DirectoryCreationError) Error() string {
	return fmt.Sprintf("creating directory %s: %v", e.Path, e.Cause)
}

func (e *DirectoryCreationError) Unwrap() error {
	return e.Cause
}

// 🏷️ CopyErrorKind tells which side of a copy failed
type CopyErrorKind int

const (
	SourceUnreadable CopyErrorKind = iota + 1
	DestinationUnwritable
)

func (k CopyErrorKind) String() string {
	switch k {
	case SourceUnreadable:
		return "source unreadable"
	case DestinationUnwritable:
		return "destination unwritable"
	default:
		return "unknown"
	}
}

// 💥 CopyError is returned by Copy
type CopyError struct {
	Kind  CopyErrorKind
	Path  string // the offending path: the source for SourceUnreadable, the destination otherwise
	Cause error
}

func (e *CopyError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Path, e.Cause)
}

func (e *CopyError) Unwrap() error {
	return e.Cause
}

// Is lets errors.Is match the kind sentinels.
func (e *CopyError) Is(target error) bool {
	switch target {
	case ErrSourceUnreadable:
		return e.Kind == SourceUnreadable
	case ErrDestinationUnwritable:
		return e.Kind == DestinationUnwritable
	}
	return false
}
