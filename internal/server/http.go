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
	"io"
	"log/slog"
	"net/http"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"dirpx.dev/errboundary/apis"
	"dirpx.dev/errboundary/httpx"
	"dirpx.dev/errboundary/internal/calendar"
)

// maxBody caps request bodies.
const maxBody = 1 << 16

// RequestIDHeader is echoed into error bodies as the correlation id.
const RequestIDHeader = "X-Request-ID"

type httpHandler struct {
	svc    *calendar.Service
	out    httpx.Writer
	logger *slog.Logger
}

// NewHTTPHandler routes the schedule endpoints:
//
//	GET    /schedules       list
//	POST   /schedules       add, body {"subject","start","end"}
//	DELETE /schedules/{id}  delete
func NewHTTPHandler(svc *calendar.Service, m apis.Mapper, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	h := &httpHandler{svc: svc, out: httpx.Writer{Mapper: m, Logger: logger}, logger: logger}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /schedules", h.list)
	mux.HandleFunc("POST /schedules", h.add)
	mux.HandleFunc("DELETE /schedules/{id}", h.remove)
	return mux
}

func (h *httpHandler) list(w http.ResponseWriter, r *http.Request) {
	schedules, err := h.svc.List(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.reply(w, r, http.StatusOK, listStruct(schedules))
}

func (h *httpHandler) add(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBody))
	if err != nil {
		h.fail(w, r, MalformedBody.Wrap(err, BadField{}))
		return
	}
	body := new(structpb.Struct)
	if err := protojson.Unmarshal(raw, body); err != nil {
		h.fail(w, r, MalformedBody.Wrap(err, BadField{}))
		return
	}
	req, err := parseAdd(body)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	added, err := h.svc.Add(r.Context(), req.Subject, req.Start, req.End)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.reply(w, r, http.StatusCreated, scheduleStruct(added))
}

func (h *httpHandler) remove(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.PathValue("id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *httpHandler) reply(w http.ResponseWriter, r *http.Request, status int, body *structpb.Struct) {
	data, err := protojson.Marshal(body)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", httpx.ContentType)
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

func (h *httpHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	meta := httpx.Meta{Correlation: r.Header.Get(RequestIDHeader)}
	if p, ok := MalformedBody.Payload(err); ok && p.Field != "" {
		meta.Fields = []httpx.FieldViolation{{Field: p.Field, Description: "required string"}}
	}
	if p, ok := BadID.Payload(err); ok {
		meta.Fields = []httpx.FieldViolation{{Field: p.Field, Description: "non-negative integer"}}
	}
	h.out.WriteContext(r.Context(), w, err, meta)
}
