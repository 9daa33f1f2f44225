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
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"dirpx.dev/errboundary/internal/calendar"
	calendarmock "dirpx.dev/errboundary/internal/calendar/mock"
	"dirpx.dev/errboundary/internal/store"
	"dirpx.dev/errboundary/mapper"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestHandler(t *testing.T, st calendar.Store) http.Handler {
	t.Helper()
	m, err := mapper.New()
	require.NoError(t, err)
	if st == nil {
		st = store.NewFileStore(filepath.Join(t.TempDir(), "schedule.json"))
	}
	return NewHTTPHandler(calendar.NewService(st), m, quietLogger())
}

func do(t *testing.T, h http.Handler, method, target, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rd)
	req.Header.Set(RequestIDHeader, "req-1")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Body.Len() == 0 {
		return rec, nil
	}
	var s structpb.Struct
	require.NoError(t, protojson.Unmarshal(rec.Body.Bytes(), &s), rec.Body.String())
	return rec, s.AsMap()
}

func TestHTTP_AddListDelete(t *testing.T) {
	h := newTestHandler(t, nil)

	rec, body := do(t, h, http.MethodPost, "/schedules",
		`{"subject":"standup","start":"2024-03-01T09:00:00","end":"2024-03-01T09:15:00"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, float64(0), body["id"])
	assert.Equal(t, "standup", body["subject"])
	assert.Equal(t, "2024-03-01T09:15:00", body["end"])

	rec, body = do(t, h, http.MethodGet, "/schedules", "")
	require.Equal(t, http.StatusOK, rec.Code)
	list := body["schedules"].([]any)
	require.Len(t, list, 1)
	assert.Equal(t, "standup", list[0].(map[string]any)["subject"])

	rec, _ = do(t, h, http.MethodDelete, "/schedules/0", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	_, body = do(t, h, http.MethodGet, "/schedules", "")
	assert.Empty(t, body["schedules"])
}

func TestHTTP_NamedFailures(t *testing.T) {
	h := newTestHandler(t, nil)
	rec, _ := do(t, h, http.MethodPost, "/schedules",
		`{"subject":"a","start":"2024-03-01T09:00:00","end":"2024-03-01T10:00:00"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	tests := []struct {
		name    string
		method  string
		target  string
		body    string
		status  int
		reason  string
		message string
		field   string
	}{
		{
			name:    "overlap",
			method:  http.MethodPost,
			target:  "/schedules",
			body:    `{"subject":"b","start":"2024-03-01T09:30:00","end":"2024-03-01T11:00:00"}`,
			status:  http.StatusConflict,
			reason:  "calendar.conflict",
			message: "schedule overlaps with #0",
		},
		{
			name:    "missing id",
			method:  http.MethodDelete,
			target:  "/schedules/9",
			status:  http.StatusNotFound,
			reason:  "calendar.not_found",
			message: "schedule not found (ID: 9)",
		},
		{
			name:   "bad id",
			method: http.MethodDelete,
			target: "/schedules/-1",
			status: http.StatusBadRequest,
			reason: "calendar.api.bad_id",
			field:  "id",
		},
		{
			name:   "reversed range",
			method: http.MethodPost,
			target: "/schedules",
			body:   `{"subject":"c","start":"2024-03-02T10:00:00","end":"2024-03-02T09:00:00"}`,
			status: http.StatusBadRequest,
			reason: "calendar.invalid_range",
		},
		{
			name:   "bad time",
			method: http.MethodPost,
			target: "/schedules",
			body:   `{"subject":"c","start":"tomorrow","end":"2024-03-02T09:00:00"}`,
			status: http.StatusBadRequest,
			reason: "calendar.invalid_time",
		},
		{
			name:   "missing field",
			method: http.MethodPost,
			target: "/schedules",
			body:   `{"subject":"c","start":"2024-03-02T10:00:00"}`,
			status: http.StatusBadRequest,
			reason: "calendar.api.malformed_body",
			field:  "end",
		},
		{
			name:   "not json",
			method: http.MethodPost,
			target: "/schedules",
			body:   `subject=c`,
			status: http.StatusBadRequest,
			reason: "calendar.api.malformed_body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, body := do(t, h, tt.method, tt.target, tt.body)
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.reason, body["reason"])
			assert.Equal(t, "req-1", body["correlation"])
			if tt.message != "" {
				assert.Equal(t, tt.message, body["message"])
			}
			if tt.field != "" {
				fields := body["fields"].([]any)
				require.Len(t, fields, 1)
				assert.Equal(t, tt.field, fields[0].(map[string]any)["field"])
			}
		})
	}
}

func TestHTTP_StorageFailureIsNamed(t *testing.T) {
	h := newTestHandler(t, store.NewFileStore(t.TempDir()))

	rec, body := do(t, h, http.MethodGet, "/schedules", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "calendar.storage_io", body["reason"])
}

func TestHTTP_UnnamedFailureIsErased(t *testing.T) {
	ctrl := gomock.NewController(t)
	st := calendarmock.NewMockStore(ctrl)
	st.EXPECT().Load(gomock.Any()).Return(nil, errors.New("disk on fire"))

	var logs bytes.Buffer
	m, err := mapper.New()
	require.NoError(t, err)
	h := NewHTTPHandler(calendar.NewService(st), m, slog.New(slog.NewTextHandler(&logs, nil)))

	rec, body := do(t, h, http.MethodGet, "/schedules", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal", body["code"])
	assert.Equal(t, "disk on fire", body["message"])
	assert.NotContains(t, body, "reason")
	assert.Contains(t, logs.String(), "level=ERROR")
}
