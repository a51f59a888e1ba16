package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/louisbranch/catering.space/internal/platform/branding"
	platformgrpc "github.com/louisbranch/catering.space/internal/platform/grpc"
	"github.com/louisbranch/catering.space/internal/platform/timeouts"
	quotegrpc "github.com/louisbranch/catering.space/internal/services/quote/api/grpc/quote"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"google.golang.org/grpc"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"
)

const (
	// serverVersion identifies the MCP server version.
	serverVersion = "0.1.0"
	// healthInterval spaces background health checks of the quote server.
	healthInterval = 30 * time.Second
)

var serverName = branding.AppName + " MCP"

// Config configures the MCP server.
type Config struct {
	// QuoteAddr is the quote gRPC server address.
	QuoteAddr string
}

// Server hosts the MCP tools over one quote gRPC connection.
type Server struct {
	mcpServer *mcp.Server
	conn      *grpc.ClientConn
}

// New dials the quote server, waits for it to report healthy and registers
// the quote tools.
func New(ctx context.Context, quoteAddr string) (*Server, error) {
	conn, err := dialQuoteGRPC(ctx, quoteAddr)
	if err != nil {
		return nil, err
	}
	server, err := newServer(conn)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	return server, nil
}

func newServer(conn *grpc.ClientConn) (*Server, error) {
	mcpServer := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil)

	client := quotegrpc.NewClient(conn)
	for _, module := range newMCPRegistrationModules(client) {
		if err := module.register(mcpServerRegistrationAdapter{server: mcpServer}); err != nil {
			return nil, fmt.Errorf("register MCP module %q: %w", module.name, err)
		}
	}
	return &Server{mcpServer: mcpServer, conn: conn}, nil
}

// Run serves the quote tools over stdio until the context is canceled or the
// client disconnects.
func Run(ctx context.Context, cfg Config) error {
	return runWithTransport(ctx, cfg.QuoteAddr, &mcp.StdioTransport{})
}

func runWithTransport(ctx context.Context, quoteAddr string, transport mcp.Transport) error {
	server, err := New(ctx, quoteAddr)
	if err != nil {
		return err
	}

	healthCtx, healthCancel := context.WithCancel(ctx)
	defer healthCancel()
	go server.monitorHealth(healthCtx, healthInterval)

	return server.serveWithTransport(ctx, transport)
}

// Serve runs the MCP server over stdio.
func (s *Server) Serve(ctx context.Context) error {
	return s.serveWithTransport(ctx, &mcp.StdioTransport{})
}

// Close releases the quote gRPC connection.
func (s *Server) Close() error {
	if s == nil || s.conn == nil {
		return nil
	}
	if err := s.conn.Close(); err != nil {
		return err
	}
	s.conn = nil
	return nil
}

func (s *Server) serveWithTransport(ctx context.Context, transport mcp.Transport) error {
	if s == nil || s.mcpServer == nil {
		return fmt.Errorf("MCP server is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	err := s.mcpServer.Run(ctx, transport)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		err = nil
	}
	if closeErr := s.Close(); closeErr != nil && err == nil {
		err = fmt.Errorf("close quote connection: %w", closeErr)
	}
	return err
}

func (s *Server) monitorHealth(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.checkHealth(ctx); err != nil {
				log.Printf("quote health check failed: %v", err)
			}
		}
	}
}

func (s *Server) checkHealth(ctx context.Context) error {
	if s == nil || s.conn == nil {
		return fmt.Errorf("gRPC connection is not configured")
	}
	callCtx, cancel := context.WithTimeout(ctx, timeouts.GRPCRequest)
	defer cancel()
	response, err := grpc_health_v1.NewHealthClient(s.conn).Check(callCtx, &grpc_health_v1.HealthCheckRequest{Service: quotegrpc.ServiceName})
	if err != nil {
		return err
	}
	if response.GetStatus() != grpc_health_v1.HealthCheckResponse_SERVING {
		return fmt.Errorf("status %s", response.GetStatus())
	}
	return nil
}

func dialQuoteGRPC(ctx context.Context, addr string) (*grpc.ClientConn, error) {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return nil, fmt.Errorf("quote server address is required")
	}
	logf := func(format string, args ...any) {
		log.Printf("quote %s", fmt.Sprintf(format, args...))
	}
	conn, err := platformgrpc.DialWithHealth(ctx, addr, platformgrpc.DialOptions{
		Timeout:       timeouts.GRPCDial,
		HealthService: quotegrpc.ServiceName,
		Logf:          logf,
	})
	if err != nil {
		var dialErr *platformgrpc.DialError
		if errors.As(err, &dialErr) && dialErr.Stage == platformgrpc.DialStageConnect {
			return nil, fmt.Errorf("connect to quote server at %s: %w", addr, dialErr.Err)
		}
		return nil, err
	}
	return conn, nil
}
