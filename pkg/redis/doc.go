// Package redis connects to a Redis server with retries and exposes a
// readiness check. The returned client backs the session store and the
// attempt limiter.
//
//	var cfg redis.Config
//	config.MustLoad(&cfg)
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	store := session.NewRedisStore(client, "sess:")
package redis
