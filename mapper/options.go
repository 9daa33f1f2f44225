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
	"google.golang.org/grpc/codes"

	"dirpx.dev/errboundary/code"
)

// Option configures a Mapper at build time.
type Option func(*builder)

// builder holds both transports' rules while options run.
type builder struct {
	http *rules[int]
	grpc *rules[codes.Code]
}

// WithHTTPDefault replaces the default HTTP status for c.
func WithHTTPDefault(c code.Code, status int) Option {
	return func(b *builder) { b.http.defaults[c] = status }
}

// WithGRPCDefault replaces the default gRPC code for c.
func WithGRPCDefault(c code.Code, gc codes.Code) Option {
	return func(b *builder) { b.grpc.defaults[c] = gc }
}

// WithHTTPOverride pins the HTTP status for c regardless of reason.
func WithHTTPOverride(c code.Code, status int) Option {
	return func(b *builder) { b.http.overrides[c] = status }
}

// WithGRPCOverride pins the gRPC code for c regardless of reason.
func WithGRPCOverride(c code.Code, gc codes.Code) Option {
	return func(b *builder) { b.grpc.overrides[c] = gc }
}

// WithHTTPPrefix adds a reason-prefix rule for c. The longest matching
// prefix wins; "*" matches one segment. A taxonomy name such as
// "calendar" is a valid prefix and covers all of its variants.
func WithHTTPPrefix(c code.Code, prefix string, status int) Option {
	return func(b *builder) { b.http.addPrefix(c, prefix, status) }
}

// WithGRPCPrefix is WithHTTPPrefix for gRPC.
func WithGRPCPrefix(c code.Code, prefix string, gc codes.Code) Option {
	return func(b *builder) { b.grpc.addPrefix(c, prefix, gc) }
}

// WithFallback sets the statuses for codes that have no default. The
// default is 500 / Internal.
func WithFallback(status int, gc codes.Code) Option {
	return func(b *builder) {
		b.http.fallback = status
		b.grpc.fallback = gc
	}
}

// WithOpaqueStatus sets the statuses Resolve returns for failures that
// carry no code, erased ones included. The default is 500 / Internal.
func WithOpaqueStatus(status int, gc codes.Code) Option {
	return func(b *builder) {
		b.http.opaque = status
		b.grpc.opaque = gc
	}
}
