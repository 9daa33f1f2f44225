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

// Package code defines the classification grammar shared by the boundary
// layer.
//
// A Code names the broad class of a failure ("not_found", "conflict",
// "timeout"). Two things in errboundary are spelled with it:
//
//   - the classification attached to every NamedError variant, which the
//     transport mapper turns into HTTP and gRPC statuses;
//   - the variant names themselves, so that "not_found" inside a taxonomy
//     follows the same rules as the class "not_found".
//
// Canonical codes are lowercase, underscore-separated, 3 to 64 characters
// and start with a letter. The empty code is never valid.
package code
