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

// Package httpx writes failures as HTTP error responses.
package httpx

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"dirpx.dev/errboundary"
	"dirpx.dev/errboundary/adapter"
	"dirpx.dev/errboundary/apis"
)

// ContentType is the media type of error bodies.
const ContentType = "application/json"

// fallbackBody is written when the view cannot be encoded.
const fallbackBody = `{"code":"internal","message":"unknown failure"}`

// Meta carries request-level context added to the body. All fields are
// optional.
type Meta struct {
	Correlation       string
	TraceID           string
	SpanID            string
	RetryAfterSeconds int32
	Fields            []FieldViolation
}

// FieldViolation points at one offending request field.
type FieldViolation struct {
	Field       string
	Description string
}

// Writer turns an error into an HTTP response. The status comes from
// Mapper.Resolve and the body from adapter.ToView, so an erased failure
// only ever shows its description.
type Writer struct {
	Mapper apis.Mapper
	// Logger receives one record per written error. Nil means
	// slog.Default().
	Logger *slog.Logger
}

// Write writes err with the resolved status. A nil err writes nothing.
func (w Writer) Write(rw http.ResponseWriter, err error, meta Meta) {
	w.WriteContext(context.Background(), rw, err, meta)
}

// WriteContext is Write with the request context passed to the logger.
func (w Writer) WriteContext(ctx context.Context, rw http.ResponseWriter, err error, meta Meta) {
	if err == nil {
		return
	}
	st := w.Mapper.Resolve(err)
	view := adapter.ToView(err)

	logger := w.Logger
	if logger == nil {
		logger = slog.Default()
	}
	level := slog.LevelInfo
	if st.HTTP >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	logger.LogAttrs(ctx, level, "http error response",
		slog.Int("status", st.HTTP),
		slog.String("code", view.Code),
		slog.String("reason", view.Reason),
		slog.String("error", errboundary.Describe(err)),
	)

	body, mErr := protojson.MarshalOptions{EmitUnpopulated: false}.Marshal(viewStruct(view, meta))
	if mErr != nil {
		logger.ErrorContext(ctx, "http error body", slog.String("error", mErr.Error()))
		body = []byte(fallbackBody)
	}

	rw.Header().Set("Content-Type", ContentType)
	if meta.RetryAfterSeconds > 0 {
		rw.Header().Set("Retry-After", strconv.Itoa(int(meta.RetryAfterSeconds)))
	}
	rw.WriteHeader(st.HTTP)
	_, _ = rw.Write(body)
}

// viewStruct lays out the body. Empty optional fields are omitted.
func viewStruct(v apis.ErrorView, meta Meta) *structpb.Struct {
	fields := map[string]*structpb.Value{
		"code":    structpb.NewStringValue(v.Code),
		"message": structpb.NewStringValue(v.Message),
	}
	putString := func(k, s string) {
		if s != "" {
			fields[k] = structpb.NewStringValue(s)
		}
	}
	putString("reason", v.Reason)
	putString("correlation", meta.Correlation)
	putString("traceId", meta.TraceID)
	putString("spanId", meta.SpanID)
	if meta.RetryAfterSeconds > 0 {
		fields["retryAfterSeconds"] = structpb.NewNumberValue(float64(meta.RetryAfterSeconds))
	}
	if len(v.Details) > 0 {
		details := make(map[string]*structpb.Value, len(v.Details))
		for _, d := range v.Details {
			details[d.Key] = structpb.NewStringValue(d.Value)
		}
		fields["details"] = structpb.NewStructValue(&structpb.Struct{Fields: details})
	}
	if len(meta.Fields) > 0 {
		list := make([]*structpb.Value, 0, len(meta.Fields))
		for _, f := range meta.Fields {
			list = append(list, structpb.NewStructValue(&structpb.Struct{Fields: map[string]*structpb.Value{
				"field":       structpb.NewStringValue(f.Field),
				"description": structpb.NewStringValue(f.Description),
			}}))
		}
		fields["fields"] = structpb.NewListValue(&structpb.ListValue{Values: list})
	}
	return &structpb.Struct{Fields: fields}
}
