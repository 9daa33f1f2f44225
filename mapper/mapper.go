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
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/grpc/codes"

	"dirpx.dev/errboundary/apis"
	"dirpx.dev/errboundary/code"
	"dirpx.dev/errboundary/mapper/internal/segmenttrie"
	"dirpx.dev/errboundary/reason"
)

// New builds an immutable apis.Mapper.
//
// Both transports start from the package defaults, opts are applied in
// order, and every reason prefix is normalized and compiled into a
// per-code segment trie. The result shares no state with the options.
//
// New fails only on an invalid rule prefix.
func New(opts ...Option) (apis.Mapper, error) {
	b := &builder{
		http: newRules("HTTP", defaultHTTP, http.StatusInternalServerError),
		grpc: newRules("gRPC", defaultGRPC, codes.Internal),
	}
	for _, opt := range opts {
		opt(b)
	}

	ht, err := b.http.compile()
	if err != nil {
		return nil, err
	}
	gt, err := b.grpc.compile()
	if err != nil {
		return nil, err
	}
	return &mapper{
		http:   ht,
		grpc:   gt,
		opaque: apis.Status{HTTP: b.http.opaque, GRPC: b.grpc.opaque},
	}, nil
}

// source names the tier that produced a status.
type source string

const (
	fromOverride source = "override"
	fromPrefix   source = "prefix"
	fromDefault  source = "default"
	fromFallback source = "fallback"
)

// table is the frozen rule set of one transport.
type table[V any] struct {
	override map[code.Code]V
	prefix   map[code.Code]*segmenttrie.Trie[V]
	def      map[code.Code]V
	fallback V
}

// lookup applies override > reason prefix > default > fallback. pattern is
// set only for prefix hits.
func (t table[V]) lookup(c code.Code, r reason.Reason) (v V, src source, pattern string) {
	if v, ok := t.override[c]; ok {
		return v, fromOverride, ""
	}
	if idx := t.prefix[c]; idx != nil && r != reason.Empty {
		if v, ok, pat := idx.MatchWithPattern(string(r)); ok {
			return v, fromPrefix, pat
		}
	}
	if v, ok := t.def[c]; ok {
		return v, fromDefault, ""
	}
	return t.fallback, fromFallback, ""
}

// mapper is the immutable apis.Mapper returned by New. Lookups cost one
// map read per tier plus a trie walk bounded by the reason depth.
type mapper struct {
	http   table[int]
	grpc   table[codes.Code]
	opaque apis.Status
}

// HTTPStatus resolves the HTTP status for (c, r).
func (m *mapper) HTTPStatus(c code.Code, r reason.Reason) int {
	v, _, _ := m.http.lookup(c, r)
	return v
}

// GRPCStatus resolves the gRPC code for (c, r).
func (m *mapper) GRPCStatus(c code.Code, r reason.Reason) codes.Code {
	v, _, _ := m.grpc.lookup(c, r)
	return v
}

// Status resolves both transports from the same inputs.
func (m *mapper) Status(c code.Code, r reason.Reason) apis.Status {
	return apis.Status{HTTP: m.HTTPStatus(c, r), GRPC: m.GRPCStatus(c, r)}
}

// Explain returns which tier produced each status:
//
//	code="unavailable" reason="calendar.storage_io"
//	http: source=prefix pattern="calendar" -> 503
//	grpc: source=default -> UNAVAILABLE(14)
//
// The format is for people and golden tests, not for parsing.
func (m *mapper) Explain(c code.Code, r reason.Reason) string {
	var b strings.Builder
	_, _ = fmt.Fprintf(&b, "code=%q reason=%q\n", c, r)

	hv, hsrc, hpat := m.http.lookup(c, r)
	writeLine(&b, "http", hsrc, hpat, fmt.Sprint(hv))
	b.WriteByte('\n')

	gv, gsrc, gpat := m.grpc.lookup(c, r)
	writeLine(&b, "grpc", gsrc, gpat, grpcName(gv, int(gv)))
	return b.String()
}

func writeLine(b *strings.Builder, transport string, src source, pattern, val string) {
	if src == fromPrefix {
		_, _ = fmt.Fprintf(b, "%s: source=%s pattern=%q -> %s", transport, src, pattern, val)
		return
	}
	_, _ = fmt.Fprintf(b, "%s: source=%s -> %s", transport, src, val)
}
