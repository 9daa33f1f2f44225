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
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"dirpx.dev/errboundary"
	"dirpx.dev/errboundary/apis"
	"dirpx.dev/errboundary/grpcx"
	"dirpx.dev/errboundary/internal/calendar"
)

// DefaultShutdownTimeout bounds graceful shutdown.
const DefaultShutdownTimeout = 10 * time.Second

// Config holds listen addresses. An empty address disables that
// transport.
type Config struct {
	HTTPAddr        string
	GRPCAddr        string
	ShutdownTimeout time.Duration
}

// Server serves one calendar.Service over HTTP and gRPC.
type Server struct {
	http    *http.Server
	grpc    *grpc.Server
	health  *health.Server
	logger  *slog.Logger
	timeout time.Duration
}

// New builds both transports around svc.
func New(svc *calendar.Service, m apis.Mapper, logger *slog.Logger, timeout time.Duration) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = DefaultShutdownTimeout
	}

	gs := grpc.NewServer(grpcx.ServerOptions(m, logger, requestMeta)...)
	RegisterCalendarServer(gs, NewCalendarServer(svc))
	hs := health.NewServer()
	grpc_health_v1.RegisterHealthServer(gs, hs)
	hs.SetServingStatus(ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)
	reflection.Register(gs)

	return &Server{
		http: &http.Server{
			Handler:           NewHTTPHandler(svc, m, logger),
			ReadHeaderTimeout: 5 * time.Second,
			ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
		},
		grpc:    gs,
		health:  hs,
		logger:  logger,
		timeout: timeout,
	}
}

// Serve runs until ctx is done or a listener fails, then shuts both
// transports down. A nil listener skips that transport.
func (s *Server) Serve(ctx context.Context, httpLis, grpcLis net.Listener) error {
	g, gctx := errgroup.WithContext(ctx)

	if httpLis != nil {
		g.Go(func() error {
			s.logger.InfoContext(ctx, "http listening", slog.String("addr", httpLis.Addr().String()))
			if err := s.http.Serve(httpLis); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return errboundary.Wrap(err, "http serve")
			}
			return nil
		})
	}
	if grpcLis != nil {
		g.Go(func() error {
			s.logger.InfoContext(ctx, "grpc listening", slog.String("addr", grpcLis.Addr().String()))
			if err := s.grpc.Serve(grpcLis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
				return errboundary.Wrap(err, "grpc serve")
			}
			return nil
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		s.shutdown()
		return nil
	})
	return g.Wait()
}

func (s *Server) shutdown() {
	s.logger.Info("shutting down")
	s.health.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	stopped := make(chan struct{})
	go func() {
		s.grpc.GracefulStop()
		close(stopped)
	}()
	if err := s.http.Shutdown(ctx); err != nil {
		s.logger.Warn("http shutdown", slog.String("error", errboundary.Describe(err)))
	}
	select {
	case <-stopped:
	case <-ctx.Done():
		s.logger.Warn("graceful stop timed out, forcing")
		s.grpc.Stop()
	}
}

// Run listens on cfg's addresses and serves until ctx is done.
func Run(ctx context.Context, cfg Config, svc *calendar.Service, m apis.Mapper, logger *slog.Logger) error {
	var lc net.ListenConfig
	var httpLis, grpcLis net.Listener
	var err error

	if cfg.HTTPAddr != "" {
		if httpLis, err = lc.Listen(ctx, "tcp", cfg.HTTPAddr); err != nil {
			return errboundary.Wrap(err, "listen http")
		}
	}
	if cfg.GRPCAddr != "" {
		if grpcLis, err = lc.Listen(ctx, "tcp", cfg.GRPCAddr); err != nil {
			if httpLis != nil {
				_ = httpLis.Close()
			}
			return errboundary.Wrap(err, "listen grpc")
		}
	}
	if httpLis == nil && grpcLis == nil {
		return errboundary.New("no listen address configured")
	}
	return New(svc, m, logger, cfg.ShutdownTimeout).Serve(ctx, httpLis, grpcLis)
}
