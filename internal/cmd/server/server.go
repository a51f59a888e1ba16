// Package server parses quote server flags and launches the service.
package server

import (
	"context"
	"flag"

	entrypoint "github.com/louisbranch/catering.space/internal/platform/cmd"
	"github.com/louisbranch/catering.space/internal/platform/discovery"
	quoteserver "github.com/louisbranch/catering.space/internal/services/quote/app"
)

// Config holds quote server command configuration.
type Config struct {
	Addr string `env:"CATERING_SPACE_QUOTE_ADDR"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "The quote gRPC server listen address")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	cfg.Addr = discovery.OrDefaultGRPCListenAddr(cfg.Addr, discovery.ServiceQuote)
	return cfg, nil
}

// Run starts the quote gRPC API service.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceServer, func(ctx context.Context) error {
		return quoteserver.Run(ctx, cfg.Addr)
	})
}
