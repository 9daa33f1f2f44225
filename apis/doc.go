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

// Package apis defines the contracts shared by the boundary layer and its
// transports.
//
// Adapters (HTTP, gRPC, log sinks) program against these interfaces and
// view types instead of the concrete NamedError and OpaqueError types.
// That keeps the erasure seam honest: an OpaqueError implements Describer
// and nothing else from this package, so an adapter can never recover a
// code or reason from it.
//
// The package only contains interfaces and small view types.
package apis
