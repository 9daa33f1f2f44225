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

// Package server exposes a calendar.Service over HTTP and gRPC.
package server

import (
	"dirpx.dev/errboundary"
	"dirpx.dev/errboundary/code"
)

// BadField names a request field that could not be read.
type BadField struct {
	Field string
	Value string
}

// Request failures, raised before the service is called.
var (
	MalformedBody = errboundary.NewVariant("malformed_body", code.Invalid, func(p BadField) string {
		if p.Field == "" {
			return "request body is not a JSON object"
		}
		return "field " + p.Field + " is missing or not a string"
	})
	BadID = errboundary.NewVariant("bad_id", code.Invalid, func(p BadField) string {
		return "schedule id " + p.Value + " is not a non-negative integer"
	})

	RequestErrors = errboundary.MustDefine("calendar.api", MalformedBody, BadID)
)
