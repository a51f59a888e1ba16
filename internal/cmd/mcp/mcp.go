// Package mcp parses MCP command flags and starts the stdio tool server.
package mcp

import (
	"context"
	"flag"

	entrypoint "github.com/louisbranch/catering.space/internal/platform/cmd"
	"github.com/louisbranch/catering.space/internal/platform/discovery"
	mcpservice "github.com/louisbranch/catering.space/internal/services/mcp/service"
)

// Config holds MCP command configuration.
type Config struct {
	QuoteAddr string `env:"CATERING_SPACE_MCP_QUOTE_ADDR"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.QuoteAddr, "addr", cfg.QuoteAddr, "quote server address")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	cfg.QuoteAddr = discovery.OrDefaultGRPCAddr(cfg.QuoteAddr, discovery.ServiceQuote)
	return cfg, nil
}

// Run starts the MCP protocol adapter.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceMCP, func(ctx context.Context) error {
		return mcpservice.Run(ctx, mcpservice.Config{QuoteAddr: cfg.QuoteAddr})
	})
}
