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

package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"dirpx.dev/errboundary/internal/calendar"
	calendarmock "dirpx.dev/errboundary/internal/calendar/mock"
	"dirpx.dev/errboundary/internal/store"
)

type result struct {
	code   int
	stdout string
	stderr string
}

func run(t *testing.T, opts []Option, args ...string) result {
	t.Helper()
	var out, errOut bytes.Buffer
	code := Execute(context.Background(), args, &out, &errOut, opts...)
	return result{code: code, stdout: out.String(), stderr: errOut.String()}
}

func fileOpts(t *testing.T) []Option {
	t.Helper()
	return []Option{WithStore(store.NewFileStore(filepath.Join(t.TempDir(), "schedule.json")))}
}

func TestAddListDelete(t *testing.T) {
	opts := fileOpts(t)

	r := run(t, opts, "add", "standup", "2024-03-01T09:00:00", "2024-03-01T09:15:00")
	require.Equal(t, 0, r.code, r.stderr)
	assert.Equal(t, "schedule #0 added\n", r.stdout)

	r = run(t, opts, "add", "review", "2024-03-01T13:00:00", "2024-03-01T14:00:00")
	require.Equal(t, 0, r.code, r.stderr)
	assert.Equal(t, "schedule #1 added\n", r.stdout)

	r = run(t, opts, "list")
	require.Equal(t, 0, r.code, r.stderr)
	lines := strings.Split(strings.TrimSpace(r.stdout), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"ID", "START", "END", "SUBJECT"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"0", "2024-03-01T09:00:00", "2024-03-01T09:15:00", "standup"}, strings.Fields(lines[1]))

	r = run(t, opts, "delete", "0")
	require.Equal(t, 0, r.code, r.stderr)
	assert.Equal(t, "schedule #0 deleted\n", r.stdout)
}

func TestAdd_ConflictPrintsHintAndDescription(t *testing.T) {
	opts := fileOpts(t)
	require.Equal(t, 0, run(t, opts, "add", "a", "2024-03-01T09:00:00", "2024-03-01T10:00:00").code)

	r := run(t, opts, "add", "b", "2024-03-01T09:30:00", "2024-03-01T10:30:00")
	assert.Equal(t, 1, r.code)
	assert.Empty(t, r.stdout)
	assert.Contains(t, r.stderr, "hint: run 'schedule list' to see #0, then pick a free slot\n")
	assert.Contains(t, r.stderr, "error: calendar.conflict: schedule overlaps with #0\n")
}

func TestAdd_InvalidTime(t *testing.T) {
	r := run(t, fileOpts(t), "add", "a", "9am", "2024-03-01T10:00:00")
	assert.Equal(t, 1, r.code)
	assert.Contains(t, r.stderr, "hint: timestamps look like 2024-03-01T09:00:00")
	assert.Contains(t, r.stderr, `error: calendar.invalid_time: invalid time "9am"`)
}

func TestDelete_Missing(t *testing.T) {
	opts := fileOpts(t)

	r := run(t, opts, "delete", "4")
	assert.Equal(t, 1, r.code)
	assert.Contains(t, r.stderr, "error: calendar.not_found: schedule not found (ID: 4)")

	r = run(t, opts, "delete", "4", "--ignore-missing")
	assert.Equal(t, 0, r.code, r.stderr)
	assert.Equal(t, "schedule #4 does not exist, nothing to delete\n", r.stdout)
}

func TestDelete_BadID(t *testing.T) {
	r := run(t, fileOpts(t), "delete", "four")
	assert.Equal(t, 1, r.code)
	assert.NotContains(t, r.stderr, "hint:")
	assert.Contains(t, r.stderr, `error: invalid schedule id "four"`)
}

func TestUnnamedFailureIsErased(t *testing.T) {
	ctrl := gomock.NewController(t)
	st := calendarmock.NewMockStore(ctrl)
	st.EXPECT().Load(gomock.Any()).Return(nil, errors.New("network is unreachable"))

	r := run(t, []Option{WithStore(st)}, "list")
	assert.Equal(t, 1, r.code)
	assert.NotContains(t, r.stderr, "hint:")
	assert.Contains(t, r.stderr, "error: network is unreachable\n")
}

func TestPathFlagAndConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "team.json")

	r := run(t, nil, "--path", path, "add", "x", "2024-03-01T09:00:00", "2024-03-01T10:00:00")
	require.Equal(t, 0, r.code, r.stderr)

	c, err := store.NewFileStore(path).Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, c.Schedules, 1)

	cfg := filepath.Join(dir, "schedule.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("store:\n  path: "+path+"\n"), 0o600))
	r = run(t, nil, "--config", cfg, "list")
	require.Equal(t, 0, r.code, r.stderr)
	assert.Contains(t, r.stdout, "2024-03-01T09:00:00")
}

func TestConfigErrors(t *testing.T) {
	r := run(t, nil, "--store", "s3", "list")
	assert.Equal(t, 1, r.code)
	assert.Contains(t, r.stderr, `error: config.invalid_value: invalid store.backend "s3"`)

	r = run(t, nil, "--config", filepath.Join(t.TempDir(), "none.yaml"), "list")
	assert.Equal(t, 1, r.code)
	assert.Contains(t, r.stderr, "error: config.unreadable: cannot read config file")
}

func TestConfigErrors_LogSettings(t *testing.T) {
	t.Setenv("SCHEDULE_LOG_FORMAT", "xml")
	r := run(t, fileOpts(t), "list")
	assert.Equal(t, 1, r.code)
	assert.Contains(t, r.stderr, `error: config.invalid_value: invalid log.format "xml"`)
	assert.NotContains(t, r.stderr, "log.level")

	r = run(t, fileOpts(t), "--log-level", "loud", "list")
	assert.Equal(t, 1, r.code)
	assert.Contains(t, r.stderr, `error: config.invalid_value: invalid log.level "loud"`)
}

func TestHelpGoesToOut(t *testing.T) {
	r := run(t, fileOpts(t), "--help")
	assert.Equal(t, 0, r.code)
	assert.Contains(t, r.stdout, "Book, list and cancel schedules")
	assert.Empty(t, r.stderr)
}

func TestHintsCoverEveryVariant(t *testing.T) {
	for _, v := range calendar.Errors.Variants() {
		assert.True(t, hints.Handles(v), v)
	}
}
