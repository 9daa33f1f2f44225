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

// Package config loads CLI settings from flags, SCHEDULE_* environment
// variables and an optional config file, in that order of precedence.
package config

import (
	"strings"

	"github.com/spf13/viper"

	"dirpx.dev/errboundary"
	"dirpx.dev/errboundary/code"
)

// EnvPrefix prefixes every environment variable: SCHEDULE_STORE_PATH
// sets store.path.
const EnvPrefix = "SCHEDULE"

// Storage backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
)

// Keys understood by Load.
const (
	KeyStoreBackend = "store.backend"
	KeyStorePath    = "store.path"
	KeyRedisAddr    = "redis.addr"
	KeyRedisKey     = "redis.key"
	KeyLogLevel     = "log.level"
	KeyLogFormat    = "log.format"
	KeyHTTPAddr     = "http.addr"
	KeyGRPCAddr     = "grpc.addr"
)

// Config is the resolved CLI configuration.
type Config struct {
	Store StoreConfig `mapstructure:"store"`
	Redis RedisConfig `mapstructure:"redis"`
	Log   LogConfig   `mapstructure:"log"`
	HTTP  ListenAddr  `mapstructure:"http"`
	GRPC  ListenAddr  `mapstructure:"grpc"`
}

type StoreConfig struct {
	Backend string `mapstructure:"backend"`
	Path    string `mapstructure:"path"`
}

type RedisConfig struct {
	Addr string `mapstructure:"addr"`
	Key  string `mapstructure:"key"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type ListenAddr struct {
	Addr string `mapstructure:"addr"`
}

// Setting names a config key and the value it was given.
type Setting struct {
	Key   string
	Value string
}

// Failures while loading configuration.
var (
	Unreadable = errboundary.NewVariant("unreadable", code.Unavailable, func(path string) string {
		return "cannot read config file " + path
	})
	InvalidValue = errboundary.NewVariant("invalid_value", code.Invalid, func(s Setting) string {
		return "invalid " + s.Key + " " + `"` + s.Value + `"`
	})

	Errors = errboundary.MustDefine("config", Unreadable, InvalidValue)
)

// New returns a viper instance with defaults and environment binding.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyStoreBackend, BackendFile)
	v.SetDefault(KeyStorePath, "schedule.json")
	v.SetDefault(KeyRedisAddr, "localhost:6379")
	v.SetDefault(KeyRedisKey, "schedule")
	v.SetDefault(KeyLogLevel, "warn")
	v.SetDefault(KeyLogFormat, "text")
	v.SetDefault(KeyHTTPAddr, ":8080")
	v.SetDefault(KeyGRPCAddr, ":9090")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads file into v when it is non-empty and decodes the result.
func Load(v *viper.Viper, file string) (Config, error) {
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, Unreadable.Wrap(err, file)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, InvalidValue.Wrap(err, Setting{Key: "config", Value: v.ConfigFileUsed()})
	}
	c.Store.Backend = strings.ToLower(strings.TrimSpace(c.Store.Backend))
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks the values Load cannot coerce.
func (c Config) Validate() error {
	switch c.Store.Backend {
	case BackendFile:
		if c.Store.Path == "" {
			return InvalidValue.Raise(Setting{Key: KeyStorePath})
		}
	case BackendRedis:
		if c.Redis.Addr == "" {
			return InvalidValue.Raise(Setting{Key: KeyRedisAddr})
		}
	default:
		return InvalidValue.Raise(Setting{Key: KeyStoreBackend, Value: c.Store.Backend})
	}
	return nil
}

// IsConfigError reports whether err came from this package.
func IsConfigError(err error) bool {
	_, ok := Errors.Find(err)
	return ok
}
