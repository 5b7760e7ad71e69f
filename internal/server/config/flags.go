package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/credvault/internal/flagx"
)

var serverFlags = []string{
	"-a", "-l", "-d", "-s", "-o", "-st",
	"-m", "-t", "-p", "-n",
	"-log-level", "-log-format",
}

// parseFlags populates server Config fields from command-line flags.
//
// Supported flags:
//
//	-a string        gRPC bind address (e.g., ":50051")
//	-l string        HTTP bind address (e.g., ":8080"); empty disables HTTP
//	-d string        PostgreSQL DSN; empty selects the in-memory store
//	-s string        seed file for the in-memory store
//	-o int           max open database connections
//	-st duration     store call timeout (e.g., "5s")
//	-m uint          hash memory, log2 KiB
//	-t uint          hash passes
//	-p uint          hash threads
//	-n int           concurrent digest computations
//	-log-level       debug|info|warn|error
//	-log-format      json|text
//
// args are filtered with flagx.FilterArgs first, so flags owned by other
// components (such as -c) do not cause errors.
func parseFlags(config *Config, args []string) error {
	args = flagx.FilterArgs(args, serverFlags)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "gRPC address and port to run server")
	fs.StringVar(&config.EndpointAddrHTTP, "l", config.EndpointAddrHTTP, "HTTP address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SeedFile, "s", config.SeedFile, "seed file for the in-memory store")
	fs.IntVar(&config.MaxOpenConns, "o", config.MaxOpenConns, "max open database connections")
	fs.DurationVar(&config.StoreTimeout, "st", config.StoreTimeout, "store call timeout")

	memory := fs.Uint("m", uint(config.HashMemory), "hash memory (log2 KiB)")
	passes := fs.Uint("t", uint(config.HashTime), "hash passes")
	threads := fs.Uint("p", uint(config.HashThreads), "hash threads")
	fs.IntVar(&config.HashConcurrency, "n", config.HashConcurrency, "concurrent digest computations")

	fs.StringVar(&config.LogLevel, "log-level", config.LogLevel, "log level")
	fs.StringVar(&config.LogFormat, "log-format", config.LogFormat, "log format")

	if err := fs.Parse(args); err != nil {
		return err
	}

	for _, v := range []uint{*memory, *passes, *threads} {
		if v > 255 {
			return errOutOfRange(v)
		}
	}
	config.HashMemory = uint8(*memory)
	config.HashTime = uint8(*passes)
	config.HashThreads = uint8(*threads)

	return nil
}
