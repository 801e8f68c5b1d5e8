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

// 📊 FileStatus represents the state of a destination file relative to its source
type FileStatus int

const (
	StatusUnknown   FileStatus = iota
	StatusNew                  // destination doesn't exist yet
	StatusModified             // destination exists but content differs
	StatusUnchanged            // destination exists and content matches
	StatusDeleted              // destination was removed
	StatusInvalid              // source cannot be mapped to a destination
)

// String returns a string representation of FileStatus
func (s FileStatus) String() string {
	switch s {
	case StatusNew:
		return "new"
	case StatusModified:
		return "modified"
	case StatusUnchanged:
		return "unchanged"
	case StatusDeleted:
		return "deleted"
	case StatusInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}
