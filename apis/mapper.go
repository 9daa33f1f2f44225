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

package apis

import (
	"dirpx.dev/errboundary/code"
	"dirpx.dev/errboundary/reason"
	"google.golang.org/grpc/codes"
)

// Mapper is an immutable, concurrency-safe resolver from failures to
// transport statuses.
type Mapper interface {
	// HTTPStatus returns the HTTP status for the given code and reason,
	// falling back to the code-level rule when no reason rule matches.
	HTTPStatus(c code.Code, r reason.Reason) int

	// GRPCStatus is HTTPStatus for gRPC.
	GRPCStatus(c code.Code, r reason.Reason) codes.Code

	// Status resolves both transports with the same matching logic.
	Status(c code.Code, r reason.Reason) Status

	// Resolve classifies an arbitrary error and returns its statuses.
	// Errors that do not implement CodedError resolve to the mapper's
	// opaque status.
	Resolve(err error) Status

	// Explain returns a human-readable trace of which rule matched.
	Explain(c code.Code, r reason.Reason) string
}

// Status is a resolved pair of transport statuses.
type Status struct {
	HTTP int        // net/http status code.
	GRPC codes.Code // gRPC status code.
}
