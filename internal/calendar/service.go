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

package calendar

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"
)

//go:generate mockgen -destination=mock/mock_store.go -package=calendarmock dirpx.dev/errboundary/internal/calendar Store

// Store persists a Calendar. Implementations report failures as
// StorageIO and Encoding errors.
type Store interface {
	// Load returns the stored calendar, or an empty one when nothing has
	// been stored yet.
	Load(ctx context.Context) (*Calendar, error)
	// Save replaces the stored calendar.
	Save(ctx context.Context, c *Calendar) error
}

// Service runs load-modify-save cycles against a Store. Calls on one
// Service are serialized.
type Service struct {
	store  Store
	logger *slog.Logger
	mu     sync.Mutex
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger; the default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewService returns a Service over store.
func NewService(store Store, opts ...Option) *Service {
	s := &Service{store: store, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns the schedules in booking order.
func (s *Service) List(ctx context.Context) ([]Schedule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return slices.Clone(c.Schedules), nil
}

// Add books a schedule and saves the calendar.
func (s *Service) Add(ctx context.Context, subject string, start, end time.Time) (Schedule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.store.Load(ctx)
	if err != nil {
		return Schedule{}, err
	}
	added, err := c.Add(subject, start, end)
	if err != nil {
		return Schedule{}, err
	}
	if err := s.store.Save(ctx, c); err != nil {
		return Schedule{}, err
	}
	s.logger.DebugContext(ctx, "schedule added", slog.Uint64("id", added.ID), slog.String("subject", subject))
	return added, nil
}

// Delete removes a schedule and saves the calendar.
func (s *Service) Delete(ctx context.Context, id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.store.Load(ctx)
	if err != nil {
		return err
	}
	if err := c.Delete(id); err != nil {
		return err
	}
	if err := s.store.Save(ctx, c); err != nil {
		return err
	}
	s.logger.DebugContext(ctx, "schedule deleted", slog.Uint64("id", id))
	return nil
}
