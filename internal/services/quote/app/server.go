// Package server wires the quote runtime and gRPC lifecycle.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"os"
	"path/filepath"
	"strings"

	"github.com/louisbranch/catering.space/internal/platform/config"
	apperrors "github.com/louisbranch/catering.space/internal/platform/errors"
	quotegrpc "github.com/louisbranch/catering.space/internal/services/quote/api/grpc/quote"
	"github.com/louisbranch/catering.space/internal/services/quote/domain/pricing"
	quoteservice "github.com/louisbranch/catering.space/internal/services/quote/service"
	quotesqlite "github.com/louisbranch/catering.space/internal/services/quote/storage/sqlite"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"
)

type serverEnv struct {
	DBPath string `env:"CATERING_SPACE_QUOTE_DB_PATH"`
	Locale string `env:"CATERING_SPACE_QUOTE_LOCALE"`
}

func loadServerEnv() serverEnv {
	var cfg serverEnv
	_ = config.ParseEnv(&cfg)
	if strings.TrimSpace(cfg.DBPath) == "" {
		cfg.DBPath = filepath.Join("data", "quote.db")
	}
	if strings.TrimSpace(cfg.Locale) == "" {
		cfg.Locale = apperrors.DefaultLocale
	}
	return cfg
}

// Server hosts the quote gRPC API and storage lifecycle.
type Server struct {
	listener   net.Listener
	grpcServer *grpc.Server
	health     *health.Server
	store      *quotesqlite.Store
}

// New creates a configured quote server listening on the provided port.
func New(port int) (*Server, error) {
	return NewWithAddr(fmt.Sprintf(":%d", port))
}

// NewWithAddr creates a configured quote server for the provided address.
// The pricing tables are validated before the listener is opened.
func NewWithAddr(addr string) (*Server, error) {
	engine, err := pricing.New(pricing.DefaultConfig())
	if err != nil {
		return nil, fmt.Errorf("load pricing config: %w", err)
	}

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", addr, err)
	}

	env := loadServerEnv()
	store, err := openQuoteStore(env.DBPath)
	if err != nil {
		_ = listener.Close()
		return nil, err
	}

	grpcServer := grpc.NewServer(grpc.StatsHandler(otelgrpc.NewServerHandler()))
	apiService := quotegrpc.NewService(quoteservice.New(engine, store), env.Locale)
	healthServer := health.NewServer()
	quotegrpc.RegisterQuoteServiceServer(grpcServer, apiService)
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(quotegrpc.ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	return &Server{
		listener:   listener,
		grpcServer: grpcServer,
		health:     healthServer,
		store:      store,
	}, nil
}

// Addr returns the listener address for the server.
func (s *Server) Addr() string {
	if s == nil || s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Run creates and serves a quote server until context cancellation.
func Run(ctx context.Context, addr string) error {
	server, err := NewWithAddr(addr)
	if err != nil {
		return err
	}
	return server.Serve(ctx)
}

// Serve starts the gRPC server until context cancellation.
func (s *Server) Serve(ctx context.Context) error {
	if s == nil {
		return errors.New("server is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	defer s.Close()

	log.Printf("quote server listening at %v", s.listener.Addr())
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.grpcServer.Serve(s.listener)
	}()

	select {
	case <-ctx.Done():
		if s.health != nil {
			s.health.Shutdown()
		}
		s.grpcServer.GracefulStop()
		err := <-serveErr
		if err == nil || errors.Is(err, grpc.ErrServerStopped) {
			return nil
		}
		return fmt.Errorf("serve gRPC: %w", err)
	case err := <-serveErr:
		if err == nil || errors.Is(err, grpc.ErrServerStopped) {
			return nil
		}
		return fmt.Errorf("serve gRPC: %w", err)
	}
}

// Close releases quote server resources.
func (s *Server) Close() {
	if s == nil {
		return
	}
	if s.health != nil {
		s.health.Shutdown()
	}
	if s.grpcServer != nil {
		s.grpcServer.Stop()
	}
	if s.listener != nil {
		_ = s.listener.Close()
	}
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			log.Printf("close quote store: %v", err)
		}
		s.store = nil
	}
}

func openQuoteStore(path string) (*quotesqlite.Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}
	store, err := quotesqlite.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open quote sqlite store: %w", err)
	}
	return store, nil
}
