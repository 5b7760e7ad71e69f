// Package config handles configuration for the server component: defaults,
// an optional YAML or JSON file, CREDVAULT_* environment variables and
// command-line flags, applied in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/dmitrijs2005/credvault/internal/passhash"
)

// Config holds runtime settings for the credvault server.
//
// Fields:
//   - EndpointAddrGRPC / EndpointAddrHTTP: bind addresses; an empty HTTP address disables HTTP.
//   - DatabaseDSN: PostgreSQL DSN (pgx). Empty selects the in-memory store.
//   - SeedFile: JSON credentials loaded into the in-memory store at start.
//   - MaxOpenConns: database pool size.
//   - StoreTimeout: bound on every store call.
//   - HashMemory / HashTime / HashThreads: Argon2id cost for new credentials
//     (memory is log2 KiB).
//   - HashConcurrency: concurrent digest computations; 0 means unbounded.
//   - LogLevel / LogFormat: debug|info|warn|error and json|text.
type Config struct {
	EndpointAddrGRPC string        `koanf:"grpc_address"`
	EndpointAddrHTTP string        `koanf:"http_address"`
	DatabaseDSN      string        `koanf:"database_dsn"`
	SeedFile         string        `koanf:"seed_file"`
	MaxOpenConns     int           `koanf:"max_open_conns"`
	StoreTimeout     time.Duration `koanf:"store_timeout"`
	HashMemory       uint8         `koanf:"hash_memory"`
	HashTime         uint8         `koanf:"hash_time"`
	HashThreads      uint8         `koanf:"hash_threads"`
	HashConcurrency  int           `koanf:"hash_concurrency"`
	LogLevel         string        `koanf:"log_level"`
	LogFormat        string        `koanf:"log_format"`
}

// LoadDefaults populates Config with development defaults: in-memory store,
// the default hash cost, one hashing slot per CPU.
func (c *Config) LoadDefaults() {
	c.EndpointAddrGRPC = ":50051"
	c.EndpointAddrHTTP = ":8080"
	c.DatabaseDSN = ""
	c.SeedFile = ""
	c.MaxOpenConns = 20
	c.StoreTimeout = 5 * time.Second
	c.HashMemory = passhash.DefaultCost.Memory
	c.HashTime = passhash.DefaultCost.Time
	c.HashThreads = passhash.DefaultCost.Threads
	c.HashConcurrency = runtime.NumCPU()
	c.LogLevel = "info"
	c.LogFormat = "json"
}

// HashCost returns the configured cost for new credentials.
func (c *Config) HashCost() passhash.Cost {
	return passhash.Cost{Memory: c.HashMemory, Time: c.HashTime, Threads: c.HashThreads}
}

// Validate reports settings the server cannot start with.
func (c *Config) Validate() error {
	var errs []error
	if c.EndpointAddrGRPC == "" {
		errs = append(errs, errors.New("grpc address is required"))
	}
	if err := c.HashCost().Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.StoreTimeout <= 0 {
		errs = append(errs, fmt.Errorf("store timeout must be positive, got %s", c.StoreTimeout))
	}
	if c.MaxOpenConns < 0 {
		errs = append(errs, fmt.Errorf("max open conns must not be negative, got %d", c.MaxOpenConns))
	}
	if c.HashConcurrency < 0 {
		errs = append(errs, fmt.Errorf("hash concurrency must not be negative, got %d", c.HashConcurrency))
	}
	return errors.Join(errs...)
}

// Load builds a Config from defaults, then the config file named by -c or
// -config in args, then environ, then the flags in args.
func Load(args []string, environ func() []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseKoanf(cfg, args, environ); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadConfig is Load over the process arguments and environment.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:], os.Environ)
}

func errOutOfRange(v uint) error {
	return fmt.Errorf("hash parameter %d out of range", v)
}
