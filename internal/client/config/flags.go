package config

import (
	"errors"
	"flag"
	"io"
)

var errBadTimeout = errors.New("timeout must not be negative")

// parseFlags populates Config from the flags that precede the command.
//
//	-a string         address:port of the credvault gRPC endpoint
//	-timeout duration per-request timeout (e.g., "10s")
func parseFlags(cfg *Config, args []string) ([]string, error) {
	fs := flag.NewFlagSet("credctl", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "address and port to access server")
	fs.DurationVar(&cfg.RequestTimeout, "timeout", cfg.RequestTimeout, "per-request timeout")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if cfg.RequestTimeout < 0 {
		return nil, errBadTimeout
	}
	return fs.Args(), nil
}
