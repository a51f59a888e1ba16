// Package timeouts defines shared timeout constants used across services.
package timeouts

import "time"

// GRPCDial caps the wait time when dialing the quote server.
const GRPCDial = 2 * time.Second

// GRPCRequest caps the time allowed for a single quote RPC issued by the
// MCP bridge.
const GRPCRequest = 5 * time.Second

// Shutdown limits how long a server waits for in-flight calls during
// graceful shutdown.
const Shutdown = 5 * time.Second
