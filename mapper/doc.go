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

// Package mapper turns failures into transport statuses for HTTP and gRPC.
//
// # Resolution model
//
// A NamedError carries a classification code (code.NotFound,
// code.Unavailable, ...) and a reason "<taxonomy>.<variant>". A Mapper
// resolves the pair in this order:
//
//  1. exact override for the code;
//  2. per-code longest-prefix match on the reason;
//  3. per-code default;
//  4. global fallback (500 / codes.Internal).
//
// Prefix rules are segment aware and "*" matches exactly one segment, so a
// rule can target a whole taxonomy, one variant, or the same variant name
// across taxonomies:
//
//	mapper.WithHTTPPrefix(code.Unavailable, "calendar", 503)
//	mapper.WithHTTPPrefix(code.NotFound, "calendar.not_found", 404)
//	mapper.WithGRPCPrefix(code.Unavailable, "*.storage_io", codes.Unavailable)
//
// # Resolving errors
//
// Mapper.Resolve accepts any error. Errors with a code resolve as above,
// context cancellation and deadlines map to the canceled and timeout codes,
// errors that already carry a gRPC status keep it, and everything else
// gets the opaque status set by WithOpaqueStatus. Erased failures have no
// code by construction, so they always land on the opaque status.
//
// # Diagnostics
//
// Mapper.Explain renders which tier produced each status. It is meant for
// people and golden tests.
//
// # Immutability
//
// New copies every input. A Mapper is safe to share across goroutines.
package mapper
