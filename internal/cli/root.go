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

// Package cli implements the schedule command. It is the outer boundary:
// commands match on calendar variants where they can act on them, and
// Execute erases whatever is left before printing it.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"dirpx.dev/errboundary"
	"dirpx.dev/errboundary/internal/calendar"
	"dirpx.dev/errboundary/internal/config"
	"dirpx.dev/errboundary/internal/logging"
	"dirpx.dev/errboundary/internal/store"
	"dirpx.dev/errboundary/report"
)

// app carries what the commands share once PersistentPreRunE has run.
type app struct {
	v       *viper.Viper
	cfgFile string
	out     io.Writer
	errOut  io.Writer

	cfg    config.Config
	logger *slog.Logger
	svc    *calendar.Service

	store   calendar.Store
	closers []func() error
}

// Option customizes the command tree, mostly for tests.
type Option func(*app)

// WithStore uses st instead of the configured backend.
func WithStore(st calendar.Store) Option {
	return func(a *app) { a.store = st }
}

func newApp(out, errOut io.Writer, opts []Option) *app {
	a := &app{v: config.New(), out: out, errOut: errOut}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// NewRootCommand builds the command tree writing to out and errOut.
func NewRootCommand(out, errOut io.Writer, opts ...Option) *cobra.Command {
	return newApp(out, errOut, opts).command()
}

func (a *app) command() *cobra.Command {
	root := &cobra.Command{
		Use:               "schedule",
		Short:             "Book, list and cancel schedules",
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (yaml, toml or json)")
	pf.String("store", "", "storage backend: file or redis")
	pf.String("path", "", "calendar file for the file backend")
	pf.String("log-level", "", "log level: debug, info, warn, error")
	_ = a.v.BindPFlag(config.KeyStoreBackend, pf.Lookup("store"))
	_ = a.v.BindPFlag(config.KeyStorePath, pf.Lookup("path"))
	_ = a.v.BindPFlag(config.KeyLogLevel, pf.Lookup("log-level"))

	root.AddCommand(
		a.listCommand(),
		a.addCommand(),
		a.deleteCommand(),
		a.serveCommand(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	a.cfg = cfg

	if a.logger, err = logging.New(a.errOut, cfg.Log.Level, cfg.Log.Format); err != nil {
		bad := config.Setting{Key: config.KeyLogLevel, Value: cfg.Log.Level}
		if errors.Is(err, logging.ErrInvalidFormat) {
			bad = config.Setting{Key: config.KeyLogFormat, Value: cfg.Log.Format}
		}
		return config.InvalidValue.Wrap(err, bad)
	}

	if a.store == nil {
		if a.store, err = a.openStore(); err != nil {
			return err
		}
	}
	a.svc = calendar.NewService(a.store, calendar.WithLogger(a.logger))
	return nil
}

func (a *app) openStore() (calendar.Store, error) {
	switch a.cfg.Store.Backend {
	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{Addr: a.cfg.Redis.Addr})
		a.closers = append(a.closers, client.Close)
		return store.NewRedisStore(&store.RedisConfig{Client: client, Key: a.cfg.Redis.Key})
	default:
		return store.NewFileStore(a.cfg.Store.Path, store.WithFileLogger(a.logger)), nil
	}
}

func (a *app) close() {
	for _, c := range a.closers {
		if err := c(); err != nil && a.logger != nil {
			a.logger.Warn("close", slog.String("error", errboundary.Describe(err)))
		}
	}
	a.closers = nil
}

// Execute runs the command line and returns the process exit code. A
// failure is reported to the log, optionally followed by a hint, and
// printed as "error: <description>".
func Execute(ctx context.Context, args []string, out, errOut io.Writer, opts ...Option) int {
	a := newApp(out, errOut, opts)
	root := a.command()
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	a.close()
	if err == nil {
		return 0
	}

	if hint, ok := hints.MatchError(err); ok && hint != "" {
		_, _ = fmt.Fprintln(errOut, "hint: "+hint)
	}
	op := errboundary.Erase(err)
	sink := report.LogSink{Logger: a.logger, Message: "command failed"}
	if sink.Logger == nil {
		sink.Logger = slog.New(slog.DiscardHandler)
	}
	sink.Report(ctx, op)
	_, _ = fmt.Fprintln(errOut, "error: "+op.Describe())
	return 1
}
