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

package server

import (
	"context"

	"google.golang.org/grpc/metadata"

	"dirpx.dev/errboundary"
)

// requestIDKey is the incoming metadata key copied into ErrorInfo.
const requestIDKey = "x-request-id"

func requestMeta(ctx context.Context, _ *errboundary.Named) map[string]string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return nil
	}
	if v := md.Get(requestIDKey); len(v) > 0 {
		return map[string]string{"request_id": v[0]}
	}
	return nil
}
