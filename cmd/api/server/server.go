package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"

	ginrouter "user-service/internal/adapter/gin/router"
	"user-service/internal/config"
)

// Server struct holds all server dependencies
type Server struct {
	Config *config.Config
	Logger *zap.Logger
	HTTP   *http.Server
	GRPC   *grpc.Server   // nil unless GRPC_ENABLED
	Health *health.Server // nil unless GRPC_ENABLED
}

// New creates a new server instance
func New(cfg *config.Config, l *zap.Logger, opts ginrouter.Options) *Server {
	s := &Server{
		Config: cfg,
		Logger: l,
		HTTP:   SetupGinServer(cfg.App.Env, opts, httpAddress(cfg), l),
	}
	if cfg.App.GRPCEnabled {
		s.GRPC, s.Health = SetupGRPC(cfg.Logger.ServiceName, l)
	}
	return s
}

// Start runs the HTTP server and, when enabled, the gRPC probe server. It
// blocks until one of them stops; a server closed by Shutdown is not an error.
func (s *Server) Start(ctx context.Context) error {
	lc := net.ListenConfig{}

	httpLis, err := lc.Listen(ctx, "tcp", s.HTTP.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.HTTP.Addr, err)
	}

	errCh := make(chan error, 2)

	if s.GRPC != nil {
		grpcLis, err := lc.Listen(ctx, "tcp", grpcAddress(s.Config))
		if err != nil {
			_ = httpLis.Close()
			return fmt.Errorf("failed to listen on %s: %w", grpcAddress(s.Config), err)
		}
		s.Logger.Info("gRPC health server running", zap.String("address", grpcLis.Addr().String()))
		go func() {
			if err := s.GRPC.Serve(grpcLis); err != nil {
				errCh <- fmt.Errorf("gRPC server: %w", err)
			}
		}()
	}

	s.Logger.Info("HTTP server running", zap.String("address", httpLis.Addr().String()))
	go func() {
		if err := s.HTTP.Serve(httpLis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("HTTP server: %w", err)
			return
		}
		errCh <- nil
	}()

	return <-errCh
}

// Shutdown flips the health status to NOT_SERVING, drains in-flight HTTP
// requests and then stops the gRPC server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.Health != nil {
		s.Health.Shutdown()
	}

	var errs []error
	if s.HTTP != nil {
		s.Logger.Info("shutting down HTTP server...")
		if err := s.HTTP.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("HTTP shutdown: %w", err))
		}
	}

	if s.GRPC != nil {
		s.Logger.Info("shutting down gRPC server...")
		stopped := make(chan struct{})
		go func() {
			s.GRPC.GracefulStop()
			close(stopped)
		}()
		select {
		case <-stopped:
		case <-ctx.Done():
			s.GRPC.Stop()
			errs = append(errs, fmt.Errorf("gRPC shutdown: %w", ctx.Err()))
		}
	}

	return errors.Join(errs...)
}

func httpAddress(cfg *config.Config) string {
	return ":" + cfg.App.HTTPPort
}

func grpcAddress(cfg *config.Config) string {
	return ":" + cfg.App.GRPCPort
}
