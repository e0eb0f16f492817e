// Package environment describes the deployment environment the process runs
// in (development, staging, production) and propagates it through
// context.Context.
//
// The environment gates insecure fallbacks: the key derivation in
// pkg/secrets only accepts a missing ENCRYPTION_KEY when the environment is
// Development. Parse is strict about unknown values so a typo such as
// "prodution" fails startup instead of silently enabling development mode.
//
// # Usage
//
//	env, err := environment.Parse(os.Getenv("APP_ENV"))
//	if err != nil {
//	    return err
//	}
//	ctx = environment.WithContext(ctx, env)
//
//	if environment.IsProduction(ctx) {
//	    // production-specific behaviour
//	}
//
// LoggerExtractor returns an extractor compatible with
// logger.WithContextExtractors so slog records carry an "env" attribute.
package environment
