// Package config loads typed configuration from environment variables.
//
// It wraps `github.com/joho/godotenv` and `github.com/caarlos0/env/v11`:
//
//   - An optional `.env` file in the working directory is read once, or the
//     files passed to LoadEnv instead.
//   - Load parses the environment into any struct annotated with `env` tags
//     and caches the result per type for the lifetime of the process.
//   - Parse does the same without caching, for CLI commands whose flags
//     override individual values.
//
// Every package in this module owns the config struct it needs
// (secrets.Config, logger.FileConfig, redis.Config, pg.Config) so the binary
// only parses the groups a command actually uses. For example a missing
// ENCRYPTION_KEY never prevents `botguard logs prune` from running.
//
// # Usage
//
//	var cfg secrets.Config
//	if err := config.Load(&cfg); err != nil {
//	    return err
//	}
//
// # Error Handling
//
// Errors wrap sentinel values, compare with errors.Is:
//
//   - ErrParsingConfig   – failed to parse env vars into struct.
//   - ErrConfigNotLoaded – the cached value disappeared (ResetCache raced Load).
//   - ErrNilPointer      – nil pointer passed to Load/Parse.
//   - ErrLoadingEnvFile  – a file given to LoadEnv could not be read.
//
// # Testing Helpers
//
// ResetCache clears the global cache between tests.
package config
