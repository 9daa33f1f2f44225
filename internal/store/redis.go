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

	"github.com/redis/go-redis/v9"

	"dirpx.dev/errboundary/internal/calendar"
)

// DefaultRedisKey holds the calendar when no key is configured.
const DefaultRedisKey = "schedule"

// ErrMissingClient is returned by NewRedisStore without a client.
var ErrMissingClient = errors.New("store: redis client is required")

// RedisConfig configures a RedisStore.
type RedisConfig struct {
	Client redis.Cmdable
	Key    string
}

// RedisStore keeps a calendar as one JSON string value.
type RedisStore struct {
	client redis.Cmdable
	key    string
}

var _ calendar.Store = (*RedisStore)(nil)

// NewRedisStore validates cfg and returns a store.
func NewRedisStore(cfg *RedisConfig) (*RedisStore, error) {
	if cfg == nil || cfg.Client == nil {
		return nil, ErrMissingClient
	}
	key := cfg.Key
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisStore{client: cfg.Client, key: key}, nil
}

// Key returns the Redis key.
func (s *RedisStore) Key() string { return s.key }

// Load reads the calendar. A missing key yields an empty calendar and
// writes nothing.
func (s *RedisStore) Load(ctx context.Context) (*calendar.Calendar, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return calendar.New(), nil
	}
	if err != nil {
		return nil, calendar.StorageIO.Wrap(err, calendar.IOFailure{Op: "get", Path: s.key})
	}
	c := calendar.New()
	if err := json.Unmarshal(data, c); err != nil {
		return nil, calendar.Encoding.Wrap(err, calendar.CodecFailure{Op: "decode"})
	}
	return c, nil
}

// Save replaces the stored value.
func (s *RedisStore) Save(ctx context.Context, c *calendar.Calendar) error {
	data, err := json.Marshal(c)
	if err != nil {
		return calendar.Encoding.Wrap(err, calendar.CodecFailure{Op: "encode"})
	}
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return calendar.StorageIO.Wrap(err, calendar.IOFailure{Op: "set", Path: s.key})
	}
	return nil
}
