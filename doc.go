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

// Package errboundary offers two representations of failure and one seam
// between them.
//
// # Named errors
//
// A module with a small, stable set of failure kinds declares them as a
// closed taxonomy:
//
//	var (
//	    NotFound = errboundary.NewVariant("not_found", code.NotFound,
//	        func(p NotFoundPayload) string { return fmt.Sprintf("schedule %d not found", p.ID) })
//	    Timeout = errboundary.NewVariant("timeout", code.Timeout,
//	        func(p TimeoutPayload) string { return fmt.Sprintf("gave up after %dms", p.Millis) })
//
//	    Errors = errboundary.MustDefine("calendar", NotFound, Timeout)
//	)
//
// Raising is typed, so a payload of the wrong shape does not compile:
//
//	return NotFound.Raise(NotFoundPayload{ID: id})
//
// Callers that need different recovery per kind build a Matcher. Building
// one fails with a MatchGap unless every variant has a case or an explicit
// Otherwise is given, so a new variant breaks every matcher at program or
// test start instead of falling through silently:
//
//	var retry = errboundary.MustMatcher(Errors,
//	    errboundary.On(NotFound, func(NotFoundPayload) bool { return false }),
//	    errboundary.On(Timeout, func(TimeoutPayload) bool { return true }),
//	)
//
// # Opaque errors
//
// Layers that only log and propagate erase failures with Erase, Wrap, New
// or Errorf. The result keeps a description and a copied diagnostic chain
// but has no Unwrap, so errors.As cannot recover the variant. Erasure
// never fails and happens once: erasing an Opaque returns it unchanged.
package errboundary
