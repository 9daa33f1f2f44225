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

// Package reason defines the dotted identifier that locates a failure.
//
// Where a code answers "what class of failure is this?", a reason answers
// "which variant of which taxonomy raised it?":
//
//   - "calendar.not_found"
//   - "calendar.storage_io"
//   - "billing.invoice.overdue"
//
// The zero value is allowed and means "no reason". Erased errors never
// carry one.
package reason
