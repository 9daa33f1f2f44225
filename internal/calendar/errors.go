/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package calendar

import (
	"fmt"
	"time"

	"dirpx.dev/errboundary"
	"dirpx.dev/errboundary/code"
)

// IOFailure locates a failed storage operation.
type IOFailure struct {
	Op   string // "read", "write", "lock", ...
	Path string // file path or redis key
}

// CodecFailure names the failed JSON operation: "decode" or "encode".
type CodecFailure struct {
	Op string
}

// Overlap identifies the schedule a new one collides with.
type Overlap struct {
	ExistingID uint64
}

// Missing is the id that was not found.
type Missing struct {
	ID uint64
}

// Range is a rejected [Start, End) pair.
type Range struct {
	Start, End time.Time
}

// TimeInput is a timestamp that could not be parsed.
type TimeInput struct {
	Value string
}

// Variants of the "calendar" taxonomy. Callers below the command and
// transport seams match on them; everything above sees descriptions only.
var (
	StorageIO = errboundary.NewVariant("storage_io", code.Unavailable, func(p IOFailure) string {
		return fmt.Sprintf("file operation failed (%s %s)", p.Op, p.Path)
	})
	Encoding = errboundary.NewVariant("encoding", code.DataLoss, func(p CodecFailure) string {
		return fmt.Sprintf("JSON operation failed (%s)", p.Op)
	})
	Conflict = errboundary.NewVariant("conflict", code.Conflict, func(p Overlap) string {
		return fmt.Sprintf("schedule overlaps with #%d", p.ExistingID)
	})
	NotFound = errboundary.NewVariant("not_found", code.NotFound, func(p Missing) string {
		return fmt.Sprintf("schedule not found (ID: %d)", p.ID)
	})
	InvalidRange = errboundary.NewVariant("invalid_range", code.Invalid, func(p Range) string {
		return fmt.Sprintf("end %s is not after start %s", p.End.Format(Layout), p.Start.Format(Layout))
	})
	InvalidTime = errboundary.NewVariant("invalid_time", code.Invalid, func(p TimeInput) string {
		return fmt.Sprintf("invalid time %q, want YYYY-MM-DDTHH:MM:SS", p.Value)
	})

	Errors = errboundary.MustDefine("calendar",
		StorageIO, Encoding, Conflict, NotFound, InvalidRange, InvalidTime)
)
