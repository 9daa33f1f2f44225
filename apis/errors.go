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

// CodedError is an error classified by a canonical code such as
// "not_found" or "conflict".
//
// Only NamedError values implement it. Adapters treat anything else as
// internal.
type CodedError interface {
	error

	// ErrorCode returns the canonical, non-empty classification.
	ErrorCode() string
}

// ReasonedError is an error that names the variant which raised it, as a
// dotted reason like "calendar.not_found".
type ReasonedError interface {
	error

	// ErrorReason returns the reason. It may be empty.
	ErrorReason() string
}

// DetailedError exposes structured details in a stable order.
type DetailedError interface {
	error

	// ErrorDetails returns the details. It may return nil. The returned
	// slice is owned by the caller.
	ErrorDetails() []Detail
}

// Describer is the one capability every failure offers: a stable,
// non-empty human description.
type Describer interface {
	error

	// Describe returns the display text. Calling it twice yields the same
	// text.
	Describe() string
}

// Detail is a single key/value pair attached to an error, flattened to
// strings so it survives JSON, protobuf and log encoders.
type Detail struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}
