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

package store

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/gofrs/flock"

	"dirpx.dev/errboundary/internal/calendar"
)

// DefaultPath is where the CLI keeps its calendar.
const DefaultPath = "schedule.json"

const defaultLockRetry = 10 * time.Millisecond

// FileStore keeps a calendar in one JSON file.
//
// Every Load and Save holds an exclusive advisory lock on "<path>.lock",
// kept beside the file so atomic renames do not drop it. Saves replace
// the file atomically.
type FileStore struct {
	path      string
	lockPath  string
	lockRetry time.Duration
	perm      os.FileMode
	logger    *slog.Logger
}

var _ calendar.Store = (*FileStore)(nil)

// FileOption configures a FileStore.
type FileOption func(*FileStore)

// WithLockRetry sets how often a busy lock is retried until the context
// ends.
func WithLockRetry(d time.Duration) FileOption {
	return func(s *FileStore) {
		if d > 0 {
			s.lockRetry = d
		}
	}
}

// WithFileLogger sets the logger used for unlock failures.
func WithFileLogger(l *slog.Logger) FileOption {
	return func(s *FileStore) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewFileStore returns a store for path; an empty path means DefaultPath.
func NewFileStore(path string, opts ...FileOption) *FileStore {
	if path == "" {
		path = DefaultPath
	}
	s := &FileStore{
		path:      path,
		lockPath:  path + ".lock",
		lockRetry: defaultLockRetry,
		perm:      0o644,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the calendar file path.
func (s *FileStore) Path() string { return s.path }

// Load reads the calendar. A missing file is created holding an empty
// calendar.
func (s *FileStore) Load(ctx context.Context) (*calendar.Calendar, error) {
	var out *calendar.Calendar
	err := s.withLock(ctx, func() error {
		data, err := os.ReadFile(s.path)
		if errors.Is(err, fs.ErrNotExist) {
			out = calendar.New()
			return s.write(out)
		}
		if err != nil {
			return calendar.StorageIO.Wrap(err, calendar.IOFailure{Op: "read", Path: s.path})
		}
		c := calendar.New()
		if err := json.Unmarshal(data, c); err != nil {
			return calendar.Encoding.Wrap(err, calendar.CodecFailure{Op: "decode"})
		}
		out = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Save replaces the calendar file.
func (s *FileStore) Save(ctx context.Context, c *calendar.Calendar) error {
	return s.withLock(ctx, func() error { return s.write(c) })
}

func (s *FileStore) write(c *calendar.Calendar) error {
	data, err := json.Marshal(c)
	if err != nil {
		return calendar.Encoding.Wrap(err, calendar.CodecFailure{Op: "encode"})
	}
	if err := writeFileAtomic(s.path, data, s.perm); err != nil {
		return calendar.StorageIO.Wrap(err, calendar.IOFailure{Op: "write", Path: s.path})
	}
	return nil
}

func (s *FileStore) withLock(ctx context.Context, fn func() error) error {
	lock := flock.New(s.lockPath)
	locked, err := lock.TryLockContext(ctx, s.lockRetry)
	if err != nil {
		return calendar.StorageIO.Wrap(err, calendar.IOFailure{Op: "lock", Path: s.lockPath})
	}
	if !locked {
		return calendar.StorageIO.Raise(calendar.IOFailure{Op: "lock", Path: s.lockPath})
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			s.logger.Warn("unlock calendar file", slog.String("path", s.lockPath), slog.String("error", err.Error()))
		}
	}()
	return fn()
}
