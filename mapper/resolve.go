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

package mapper

import (
	"context"
	"errors"
	"net/http"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"dirpx.dev/errboundary/apis"
	"dirpx.dev/errboundary/code"
	"dirpx.dev/errboundary/reason"
)

// Resolve classifies err and returns its statuses:
//
//   - nil resolves to 200 / OK;
//   - an error with a code (apis.CodedError, found through errors.As)
//     resolves through Status with its reason when it has one;
//   - context.Canceled and context.DeadlineExceeded resolve as the
//     canceled and timeout codes;
//   - an error carrying a gRPC status keeps that code;
//   - anything else, erased failures included, gets the opaque status.
func (m *mapper) Resolve(err error) apis.Status {
	if err == nil {
		return apis.Status{HTTP: http.StatusOK, GRPC: codes.OK}
	}

	var coded apis.CodedError
	if errors.As(err, &coded) {
		if c, perr := code.Parse(coded.ErrorCode()); perr == nil && c != code.Empty {
			return m.Status(c, reasonOf(coded))
		}
	}

	switch {
	case errors.Is(err, context.Canceled):
		return m.Status(code.Canceled, reason.Empty)
	case errors.Is(err, context.DeadlineExceeded):
		return m.Status(code.Timeout, reason.Empty)
	}

	if st, ok := status.FromError(err); ok && st.Code() != codes.Unknown {
		h, known := httpForGRPC[st.Code()]
		if !known {
			h = m.opaque.HTTP
		}
		return apis.Status{HTTP: h, GRPC: st.Code()}
	}
	return m.opaque
}

// reasonOf reads the reason of coded when it has a valid one.
func reasonOf(coded apis.CodedError) reason.Reason {
	rs, ok := coded.(apis.ReasonedError)
	if !ok {
		return reason.Empty
	}
	r, err := reason.Parse(rs.ErrorReason())
	if err != nil {
		return reason.Empty
	}
	return r
}
