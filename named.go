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

package errboundary

import (
	"fmt"
	"maps"
	"slices"

	"dirpx.dev/errboundary/apis"
	"dirpx.dev/errboundary/code"
	"dirpx.dev/errboundary/reason"
)

// Named is a failure raised from a taxonomy variant.
//
// It carries:
//   - the variant identity (taxonomy, variant name, reason);
//   - the classification Code used by transport mappers;
//   - a human message rendered from the payload at raise time;
//   - the payload itself, for callers that match on the variant;
//   - optional details and an optional cause.
//
// Named values are immutable. The WithX helpers return shallow copies, so
// a Named can be shared across goroutines.
type Named struct {
	def     *variantDef
	message string
	payload any
	details map[string]any
	cause   error
}

var (
	_ apis.CodedError    = (*Named)(nil)
	_ apis.ReasonedError = (*Named)(nil)
	_ apis.DetailedError = (*Named)(nil)
)

// Taxonomy returns the name of the owning taxonomy, or "" for a variant
// that was never passed to Define.
func (n *Named) Taxonomy() string {
	if n.def.taxonomy == nil {
		return ""
	}
	return n.def.taxonomy.name
}

// Variant returns the variant name.
func (n *Named) Variant() string {
	if n.def.name != code.Empty {
		return string(n.def.name)
	}
	return n.def.rawName
}

// Code returns the variant's classification.
func (n *Named) Code() code.Code { return n.def.class }

// Reason returns "<taxonomy>.<variant>".
func (n *Named) Reason() reason.Reason { return n.def.reason }

// Message returns the human message.
func (n *Named) Message() string { return n.message }

// Payload returns the payload as raised. Use Variant.Payload for a typed
// view.
func (n *Named) Payload() any { return n.payload }

// Cause returns the attached cause, if any.
func (n *Named) Cause() error { return n.cause }

// Details returns a copy of the attached details.
func (n *Named) Details() map[string]any { return maps.Clone(n.details) }

// Error implements the error interface.
//
// The format is:
//
//	<reason>: <message>
//
// followed by ": <cause>" when a cause is attached.
func (n *Named) Error() string {
	if n == nil {
		return "<nil>"
	}
	id := string(n.def.reason)
	if id == "" {
		id = n.Variant()
	}
	if n.cause != nil {
		return fmt.Sprintf("%s: %s: %v", id, n.message, n.cause)
	}
	return fmt.Sprintf("%s: %s", id, n.message)
}

// Unwrap returns the cause, so errors.Is and errors.As see through a
// NamedError until it is erased.
func (n *Named) Unwrap() error { return n.cause }

// ErrorCode implements apis.CodedError.
func (n *Named) ErrorCode() string { return string(n.def.class) }

// ErrorReason implements apis.ReasonedError.
func (n *Named) ErrorReason() string { return string(n.def.reason) }

// ErrorDetails implements apis.DetailedError. Details are sorted by key.
func (n *Named) ErrorDetails() []apis.Detail {
	if len(n.details) == 0 {
		return nil
	}
	keys := slices.Sorted(maps.Keys(n.details))
	out := make([]apis.Detail, 0, len(keys))
	for _, k := range keys {
		out = append(out, apis.Detail{Key: k, Value: fmt.Sprint(n.details[k])})
	}
	return out
}

// WithMessage returns a copy of n with a replaced message.
func (n *Named) WithMessage(msg string) *Named {
	cp := *n
	cp.message = msg
	return &cp
}

// WithDetail returns a copy of n with one more detail. The details map is
// always copied.
func (n *Named) WithDetail(k string, v any) *Named {
	cp := *n
	cp.details = make(map[string]any, len(n.details)+1)
	maps.Copy(cp.details, n.details)
	cp.details[k] = v
	return &cp
}

// WithDetails returns a copy of n with kv merged into its details; kv wins
// on conflicts.
func (n *Named) WithDetails(kv map[string]any) *Named {
	if len(kv) == 0 {
		return n
	}
	cp := *n
	cp.details = make(map[string]any, len(n.details)+len(kv))
	maps.Copy(cp.details, n.details)
	maps.Copy(cp.details, kv)
	return &cp
}

// WithCause returns a copy of n with err attached. A nil err returns n.
func (n *Named) WithCause(err error) *Named {
	if err == nil {
		return n
	}
	cp := *n
	cp.cause = err
	return &cp
}

// findNamed walks err's whole tree, joined branches included, depth first
// and returns the first Named that keep accepts. An Opaque has no Unwrap,
// so erased failures are never entered.
func findNamed(err error, keep func(*Named) bool) *Named {
	switch e := err.(type) {
	case nil:
		return nil
	case *Named:
		if e != nil && keep(e) {
			return e
		}
	}
	switch u := err.(type) {
	case interface{ Unwrap() error }:
		return findNamed(u.Unwrap(), keep)
	case interface{ Unwrap() []error }:
		for _, c := range u.Unwrap() {
			if n := findNamed(c, keep); n != nil {
				return n
			}
		}
	}
	return nil
}
