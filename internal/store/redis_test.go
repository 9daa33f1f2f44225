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
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"dirpx.dev/errboundary/internal/calendar"
)

type RedisStoreSuite struct {
	suite.Suite
	mini   *miniredis.Miniredis
	client *redis.Client
	store  *RedisStore
	ctx    context.Context
}

func TestRedisStoreSuite(t *testing.T) {
	suite.Run(t, new(RedisStoreSuite))
}

func (s *RedisStoreSuite) SetupTest() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mini = mr
	s.client = redis.NewClient(&redis.Options{Addr: mr.Addr()})

	st, err := NewRedisStore(&RedisConfig{Client: s.client, Key: "test:schedule"})
	s.Require().NoError(err)
	s.store = st
	s.ctx = context.Background()
}

func (s *RedisStoreSuite) TearDownTest() {
	_ = s.client.Close()
	s.mini.Close()
}

func (s *RedisStoreSuite) TestMissingKeyIsEmpty() {
	c, err := s.store.Load(s.ctx)
	s.Require().NoError(err)
	s.Empty(c.Schedules)
	s.False(s.mini.Exists("test:schedule"))
}

func (s *RedisStoreSuite) TestSaveThenLoad() {
	c := calendar.New()
	_, err := c.Add("retro", at(14), at(15))
	s.Require().NoError(err)
	s.Require().NoError(s.store.Save(s.ctx, c))

	raw, err := s.mini.Get("test:schedule")
	s.Require().NoError(err)
	s.JSONEq(`{"schedules":[{"id":0,"subject":"retro","start":"2024-05-01T14:00:00","end":"2024-05-01T15:00:00"}]}`, raw)

	got, err := s.store.Load(s.ctx)
	s.Require().NoError(err)
	s.Equal(c.Schedules, got.Schedules)
}

func (s *RedisStoreSuite) TestCorruptValue() {
	s.Require().NoError(s.mini.Set("test:schedule", "[]]"))

	_, err := s.store.Load(s.ctx)
	s.True(calendar.Encoding.Is(err), err)
}

func (s *RedisStoreSuite) TestServerDown() {
	s.mini.Close()

	_, err := s.store.Load(s.ctx)
	p, ok := calendar.StorageIO.Payload(err)
	s.Require().True(ok, err)
	s.Equal("get", p.Op)
	s.Equal("test:schedule", p.Path)

	err = s.store.Save(s.ctx, calendar.New())
	s.True(calendar.StorageIO.Is(err), err)
}

func (s *RedisStoreSuite) TestConfigValidation() {
	_, err := NewRedisStore(nil)
	s.ErrorIs(err, ErrMissingClient)
	_, err = NewRedisStore(&RedisConfig{})
	s.ErrorIs(err, ErrMissingClient)

	st, err := NewRedisStore(&RedisConfig{Client: s.client})
	s.Require().NoError(err)
	s.Equal(DefaultRedisKey, st.Key())
}
