// Package main prices an event spec file from the command line.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	quotecmd "github.com/louisbranch/catering.space/internal/cmd/quote"
	"github.com/louisbranch/catering.space/internal/platform/config"
)

func main() {
	cfg, err := quotecmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("quote: %v", err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := quotecmd.Run(ctx, cfg); err != nil {
		config.Exitf("quote: %v", err)
	}
}
