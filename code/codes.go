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

package code

// Generic classes.
const (
	// Internal is the class of every erased failure and the fallback for
	// anything the boundary cannot classify.
	Internal Code = "internal"

	// Invalid marks input that violates a structural or semantic
	// invariant (bad range, malformed timestamp, wrong payload).
	Invalid Code = "invalid"

	// Missing marks a required value that was not supplied.
	Missing Code = "missing"

	// Unsupported marks a known but disabled operation or option.
	Unsupported Code = "unsupported"
)

// Runtime classes. Callers usually retry these.
const (
	// Unavailable marks an unreachable dependency (disk, redis, network).
	Unavailable Code = "unavailable"

	// Timeout marks an exhausted time budget, including
	// context.DeadlineExceeded.
	Timeout Code = "timeout"

	// Canceled marks work stopped by the caller or by context propagation.
	Canceled Code = "canceled"

	// DataLoss marks stored state that could not be decoded.
	DataLoss Code = "data_loss"
)

// Resource classes.
const (
	// NotFound marks a lookup by id, name or key that found nothing.
	NotFound Code = "not_found"

	// AlreadyExists marks a create whose identity is taken.
	AlreadyExists Code = "already_exists"

	// Conflict marks a collision with existing state that is not an
	// identity clash, e.g. two overlapping schedules.
	Conflict Code = "conflict"

	// PreconditionFailed marks state that must be re-read before retrying.
	PreconditionFailed Code = "precondition_failed"
)

// Access classes.
const (
	// Unauthenticated marks a caller whose identity could not be
	// established.
	Unauthenticated Code = "unauthenticated"

	// PermissionDenied marks an authenticated caller without the rights
	// for the operation.
	PermissionDenied Code = "permission_denied"

	// RateLimited marks a caller over its request budget.
	RateLimited Code = "rate_limited"
)

var catalog = []Code{
	Internal, Invalid, Missing, Unsupported,
	Unavailable, Timeout, Canceled, DataLoss,
	NotFound, AlreadyExists, Conflict, PreconditionFailed,
	Unauthenticated, PermissionDenied, RateLimited,
}

var catalogIndex = func() map[Code]int {
	m := make(map[Code]int, len(catalog))
	for i, c := range catalog {
		m[c] = i
	}
	return m
}()

// Catalog returns every class declared in this package, in declaration
// order.
func Catalog() []Code {
	return append([]Code(nil), catalog...)
}
