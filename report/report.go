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

// Package report sends failures to log and reporting sinks.
//
// Sinks receive whatever reaches them: a NamedError that was never erased
// is reported with its identity, anything else only through its
// description.
package report

import (
	"context"
	"errors"
	"log/slog"

	"dirpx.dev/errboundary"
	"dirpx.dev/errboundary/code"
)

// Sink receives failures that ended an operation.
type Sink interface {
	Report(ctx context.Context, err error)
}

// LogSink reports through slog.
type LogSink struct {
	// Logger defaults to slog.Default().
	Logger *slog.Logger
	// Message is the record message; "operation failed" when empty.
	Message string
}

var _ Sink = LogSink{}

// Report logs err at error level. The "error" attribute always holds the
// description. A NamedError adds its taxonomy, variant and code plus a
// retryable flag; an Opaque adds its diagnostic chain at debug level. A
// nil err is ignored.
func (s LogSink) Report(ctx context.Context, err error) {
	if err == nil {
		return
	}
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}
	msg := s.Message
	if msg == "" {
		msg = "operation failed"
	}

	attrs := []slog.Attr{slog.String("error", errboundary.Describe(err))}
	var n *errboundary.Named
	if errors.As(err, &n) && n != nil {
		attrs = append(attrs,
			slog.String("taxonomy", n.Taxonomy()),
			slog.String("variant", n.Variant()),
			slog.String("code", string(n.Code())),
			slog.Bool("retryable", code.Retryable(n.Code())),
		)
	}
	logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)

	if op, ok := err.(*errboundary.Opaque); ok && len(op.Chain()) > 1 {
		logger.LogAttrs(ctx, slog.LevelDebug, msg+": chain", slog.Any("chain", op.Chain()))
	}
}

// Multi fans a report out to every sink in order.
type Multi []Sink

// Report implements Sink.
func (m Multi) Report(ctx context.Context, err error) {
	for _, s := range m {
		if s != nil {
			s.Report(ctx, err)
		}
	}
}

// Func adapts a function to Sink.
type Func func(ctx context.Context, err error)

// Report implements Sink.
func (f Func) Report(ctx context.Context, err error) { f(ctx, err) }
