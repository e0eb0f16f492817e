// Package redis connects to the Redis server that backs the credential vault.
//
// Connect parses REDIS_URL, pings the server and retries with a fixed
// interval until it answers or the connect timeout expires:
//
//	var cfg redis.Config
//	if err := config.Load(&cfg); err != nil {
//	    return err
//	}
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	if err := redis.Healthcheck(client)(ctx); err != nil {
//	    // not reachable
//	}
//
// Errors are sentinels joined with the driver error, so errors.Is works on
// both.
package redis
