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

// Package grpcx converts handler failures into gRPC statuses.
package grpcx

import (
	"context"
	"errors"
	"log/slog"
	"maps"

	grpc_logging "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc"
	gstatus "google.golang.org/grpc/status"

	"dirpx.dev/errboundary"
	"dirpx.dev/errboundary/apis"
)

// Metadata keys set on every ErrorInfo.
const (
	MetaCode    = "code"
	MetaVariant = "variant"
)

// MetaFn adds ErrorInfo metadata for a NamedError, for example a request
// ID taken from ctx. It may return nil.
type MetaFn func(ctx context.Context, n *errboundary.Named) map[string]string

// UnaryServerInterceptor maps handler errors to gRPC statuses through m.
//
//   - A NamedError becomes a status with the resolved code, the variant's
//     message, and an errdetails.ErrorInfo whose Reason is the variant
//     reason, Domain the taxonomy, and Metadata its class, variant name,
//     details and whatever metaFn adds.
//   - An error that already is a gRPC status passes through.
//   - Anything else is erased: the client gets the resolved code and the
//     description, nothing more.
func UnaryServerInterceptor(m apis.Mapper, metaFn MetaFn) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		resp, err := handler(ctx, req)
		if err != nil {
			return nil, toStatus(ctx, m, metaFn, err)
		}
		return resp, nil
	}
}

// StreamServerInterceptor is UnaryServerInterceptor for streams.
func StreamServerInterceptor(m apis.Mapper, metaFn MetaFn) grpc.StreamServerInterceptor {
	return func(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		if err := handler(srv, ss); err != nil {
			return toStatus(ss.Context(), m, metaFn, err)
		}
		return nil
	}
}

func toStatus(ctx context.Context, m apis.Mapper, metaFn MetaFn, err error) error {
	var n *errboundary.Named
	if !errors.As(err, &n) || n == nil {
		if _, ok := err.(interface{ GRPCStatus() *gstatus.Status }); ok {
			return err
		}
		return gstatus.New(m.Resolve(err).GRPC, errboundary.Describe(err)).Err()
	}

	meta := map[string]string{
		MetaCode:    string(n.Code()),
		MetaVariant: n.Variant(),
	}
	for _, d := range n.ErrorDetails() {
		meta[d.Key] = d.Value
	}
	if metaFn != nil {
		maps.Copy(meta, metaFn(ctx, n))
	}

	base := gstatus.New(m.Resolve(n).GRPC, n.Message())
	with, derr := base.WithDetails(&errdetails.ErrorInfo{
		Reason:   string(n.Reason()),
		Domain:   n.Taxonomy(),
		Metadata: meta,
	})
	if derr != nil {
		return base.Err()
	}
	return with.Err()
}

// ExtractInfo returns the ErrorInfo attached by the interceptor, if any.
func ExtractInfo(err error) (*errdetails.ErrorInfo, bool) {
	if err == nil {
		return nil, false
	}
	st, ok := gstatus.FromError(err)
	if !ok {
		return nil, false
	}
	for _, d := range st.Details() {
		if info, ok := d.(*errdetails.ErrorInfo); ok {
			return info, true
		}
	}
	return nil, false
}

// ServerOptions returns the interceptor chain for a server: call logging
// outermost, then the error boundary, then panic recovery. A recovered
// panic is erased, so clients see only "panic: <value>".
func ServerOptions(m apis.Mapper, logger *slog.Logger, metaFn MetaFn) []grpc.ServerOption {
	if logger == nil {
		logger = slog.Default()
	}
	logOpts := []grpc_logging.Option{
		grpc_logging.WithLogOnEvents(grpc_logging.FinishCall),
	}
	recoverOpts := []grpc_recovery.Option{
		grpc_recovery.WithRecoveryHandlerContext(func(ctx context.Context, p any) error {
			logger.ErrorContext(ctx, "grpc handler panic", slog.Any("panic", p))
			return errboundary.Errorf("panic: %v", p)
		}),
	}
	return []grpc.ServerOption{
		grpc.ChainUnaryInterceptor(
			grpc_logging.UnaryServerInterceptor(InterceptorLogger(logger), logOpts...),
			UnaryServerInterceptor(m, metaFn),
			grpc_recovery.UnaryServerInterceptor(recoverOpts...),
		),
		grpc.ChainStreamInterceptor(
			grpc_logging.StreamServerInterceptor(InterceptorLogger(logger), logOpts...),
			StreamServerInterceptor(m, metaFn),
			grpc_recovery.StreamServerInterceptor(recoverOpts...),
		),
	}
}

// InterceptorLogger adapts slog to the middleware logger. The middleware
// levels share slog's numeric values.
func InterceptorLogger(l *slog.Logger) grpc_logging.Logger {
	return grpc_logging.LoggerFunc(func(ctx context.Context, lvl grpc_logging.Level, msg string, fields ...any) {
		l.Log(ctx, slog.Level(lvl), msg, fields...)
	})
}
