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

package cli

import (
	"fmt"

	"dirpx.dev/errboundary"
	"dirpx.dev/errboundary/internal/calendar"
)

// hints is consulted before a failure is erased. Every calendar variant
// needs an entry.
var hints = errboundary.MustMatcher(calendar.Errors,
	errboundary.On(calendar.StorageIO, func(p calendar.IOFailure) string {
		return "check that " + p.Path + " is reachable and writable"
	}),
	errboundary.On(calendar.Encoding, func(calendar.CodecFailure) string {
		return "the stored calendar is not valid JSON, restore it from a backup"
	}),
	errboundary.On(calendar.Conflict, func(p calendar.Overlap) string {
		return fmt.Sprintf("run 'schedule list' to see #%d, then pick a free slot", p.ExistingID)
	}),
	errboundary.On(calendar.NotFound, func(calendar.Missing) string {
		return "run 'schedule list' for existing ids, or pass --ignore-missing"
	}),
	errboundary.On(calendar.InvalidRange, func(calendar.Range) string {
		return "END must be later than START"
	}),
	errboundary.On(calendar.InvalidTime, func(calendar.TimeInput) string {
		return "timestamps look like 2024-03-01T09:00:00"
	}),
)
