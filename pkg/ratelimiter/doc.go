// Package ratelimiter provides a token bucket limiter with pluggable storage.
//
// A Bucket admits a request while its bucket holds enough tokens and refills
// RefillRate tokens every RefillInterval up to Capacity. Denied requests do
// not consume tokens. Two stores are provided: MemoryStore for a single
// process and RedisStore, which runs the same algorithm as a Lua script so
// that every instance of a service sees one bucket per key.
//
//	limiter, err := ratelimiter.NewBucket(
//		ratelimiter.NewRedisStore(client, "rl:"),
//		ratelimiter.Window(5, 20*time.Minute),
//	)
//
//	res, err := limiter.Allow(ctx, "user:"+userID)
//	if err != nil {
//		return err
//	}
//	if !res.Allowed() {
//		// reject, res.RetryAfter() tells the client when to come back
//	}
//
// Buckets may share a store as long as their keys do not collide. Reset
// clears a key, typically after a successful attempt.
package ratelimiter
