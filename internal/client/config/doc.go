// Package config loads runtime configuration for the credvault CLI.
//
// Defaults are applied first (see (*Config).LoadDefaults) and then overridden
// by the flags that precede the command:
//
//	-a string          address:port of the backend gRPC endpoint
//	-timeout duration  per-request timeout
//
// Everything after the first non-flag argument is returned untouched for the
// command dispatcher.
package config
