package grpc

import (
	"context"
	"errors"
	"time"

	gogrpc "google.golang.org/grpc"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

const (
	healthProbeTimeout = time.Second
	healthBackoffStart = 100 * time.Millisecond
	healthBackoffMax   = time.Second
)

// WaitForHealth polls the health service on conn until service reports
// SERVING or ctx ends.
func WaitForHealth(ctx context.Context, conn *gogrpc.ClientConn, service string, logf func(string, ...any)) error {
	if conn == nil {
		return errors.New("wait for health: connection is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if logf == nil {
		logf = func(string, ...any) {}
	}

	client := healthpb.NewHealthClient(conn)
	backoff := healthBackoffStart
	for {
		probeCtx, cancel := context.WithTimeout(ctx, healthProbeTimeout)
		resp, err := client.Check(probeCtx, &healthpb.HealthCheckRequest{Service: service})
		cancel()
		switch {
		case err != nil:
			logf("health %q: %v", service, err)
		case resp.GetStatus() == healthpb.HealthCheckResponse_SERVING:
			return nil
		default:
			logf("health %q: %s", service, resp.GetStatus())
		}

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		backoff = min(backoff*2, healthBackoffMax)
	}
}
