// Package grpc holds client-side helpers shared by the quote binaries.
package grpc

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	gogrpc "google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// DialFunc opens a client connection. Tests swap it to inject failures.
type DialFunc func(ctx context.Context, addr string, opts ...gogrpc.DialOption) (*gogrpc.ClientConn, error)

// DialStage names the step of DialWithHealth that failed.
type DialStage string

const (
	DialStageConnect DialStage = "connect"
	DialStageHealth  DialStage = "health"
)

// DialError reports which stage of a dial failed.
type DialError struct {
	Addr  string
	Stage DialStage
	Err   error
}

func (e *DialError) Error() string {
	return fmt.Sprintf("dial %s: %s: %v", e.Addr, e.Stage, e.Err)
}

func (e *DialError) Unwrap() error {
	return e.Err
}

// DefaultClientDialOptions returns plaintext dial options with otel client
// instrumentation.
func DefaultClientDialOptions() []gogrpc.DialOption {
	return []gogrpc.DialOption{
		gogrpc.WithTransportCredentials(insecure.NewCredentials()),
		gogrpc.WithStatsHandler(otelgrpc.NewClientHandler()),
	}
}

// DialOptions configures DialWithHealth.
type DialOptions struct {
	// Dial defaults to a lazy grpc.NewClient.
	Dial DialFunc
	// Timeout bounds the connect and health stages together.
	Timeout time.Duration
	// HealthService is the service name passed to the health check; empty
	// checks overall server health.
	HealthService string
	Logf          func(string, ...any)
	GRPC          []gogrpc.DialOption
}

// DialWithHealth connects to addr and blocks until its health service
// reports SERVING. The connection is closed when the health stage fails.
func DialWithHealth(ctx context.Context, addr string, opts DialOptions) (*gogrpc.ClientConn, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	dial := opts.Dial
	if dial == nil {
		dial = newClient
	}
	grpcOpts := opts.GRPC
	if len(grpcOpts) == 0 {
		grpcOpts = DefaultClientDialOptions()
	}
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	conn, err := dial(ctx, addr, grpcOpts...)
	if err != nil {
		return nil, &DialError{Addr: addr, Stage: DialStageConnect, Err: err}
	}
	if err := WaitForHealth(ctx, conn, opts.HealthService, opts.Logf); err != nil {
		_ = conn.Close()
		return nil, &DialError{Addr: addr, Stage: DialStageHealth, Err: err}
	}
	return conn, nil
}

func newClient(_ context.Context, addr string, opts ...gogrpc.DialOption) (*gogrpc.ClientConn, error) {
	return gogrpc.NewClient(addr, opts...)
}
