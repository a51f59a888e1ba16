package config

import (
	"fmt"
	"os"
)

// Exitf writes a formatted error message to stderr and exits with code 1.
// Command entry points use it for startup failures such as invalid pricing
// tables or an unreachable quote server.
func Exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
