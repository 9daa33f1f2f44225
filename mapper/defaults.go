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
	"net/http"

	"google.golang.org/grpc/codes"

	"dirpx.dev/errboundary/code"
)

// defaultHTTP maps every catalog code to an HTTP status. Callers adjust
// single entries with WithHTTPDefault.
var defaultHTTP = map[code.Code]int{
	// Server side and dependencies.
	code.Internal:    http.StatusInternalServerError,
	code.Unavailable: http.StatusServiceUnavailable,
	code.Timeout:     http.StatusGatewayTimeout,
	code.DataLoss:    http.StatusInternalServerError,
	// 499 is nginx's "client closed request"; 408 is the closest standard
	// status and is what we ship.
	code.Canceled: http.StatusRequestTimeout,

	// Input.
	code.Invalid:     http.StatusBadRequest,
	code.Missing:     http.StatusBadRequest,
	code.Unsupported: http.StatusBadRequest,

	// Resource state.
	code.NotFound:           http.StatusNotFound,
	code.AlreadyExists:      http.StatusConflict,
	code.Conflict:           http.StatusConflict,
	code.PreconditionFailed: http.StatusPreconditionFailed,

	// Access.
	code.Unauthenticated:  http.StatusUnauthorized,
	code.PermissionDenied: http.StatusForbidden,
	code.RateLimited:      http.StatusTooManyRequests,
}

// defaultGRPC maps every catalog code to a canonical gRPC code.
var defaultGRPC = map[code.Code]codes.Code{
	code.Internal:    codes.Internal,
	code.Unavailable: codes.Unavailable,
	code.Timeout:     codes.DeadlineExceeded,
	code.DataLoss:    codes.DataLoss,
	code.Canceled:    codes.Canceled,

	code.Invalid:     codes.InvalidArgument,
	code.Missing:     codes.InvalidArgument,
	code.Unsupported: codes.Unimplemented,

	code.NotFound:           codes.NotFound,
	code.AlreadyExists:      codes.AlreadyExists,
	code.Conflict:           codes.Aborted,
	code.PreconditionFailed: codes.FailedPrecondition,

	code.Unauthenticated:  codes.Unauthenticated,
	code.PermissionDenied: codes.PermissionDenied,
	code.RateLimited:      codes.ResourceExhausted,
}

// httpForGRPC gives the HTTP status for an error that already carries a
// gRPC status, following the google.rpc.Code mapping.
var httpForGRPC = map[codes.Code]int{
	codes.OK:                 http.StatusOK,
	codes.Canceled:           http.StatusRequestTimeout,
	codes.Unknown:            http.StatusInternalServerError,
	codes.InvalidArgument:    http.StatusBadRequest,
	codes.DeadlineExceeded:   http.StatusGatewayTimeout,
	codes.NotFound:           http.StatusNotFound,
	codes.AlreadyExists:      http.StatusConflict,
	codes.PermissionDenied:   http.StatusForbidden,
	codes.ResourceExhausted:  http.StatusTooManyRequests,
	codes.FailedPrecondition: http.StatusBadRequest,
	codes.Aborted:            http.StatusConflict,
	codes.OutOfRange:         http.StatusBadRequest,
	codes.Unimplemented:      http.StatusNotImplemented,
	codes.Internal:           http.StatusInternalServerError,
	codes.Unavailable:        http.StatusServiceUnavailable,
	codes.DataLoss:           http.StatusInternalServerError,
	codes.Unauthenticated:    http.StatusUnauthorized,
}
