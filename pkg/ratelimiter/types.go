package ratelimiter

import "time"

// Result contains the result of a rate limit check.
type Result struct {
	Limit     int       // Maximum tokens (bucket capacity)
	Remaining int       // Tokens remaining; negative when denied
	ResetAt   time.Time // Time of the next refill
}

// Allowed reports whether the request was admitted.
func (r *Result) Allowed() bool {
	return r.Remaining >= 0
}

// RetryAfter returns how long to wait before the next request, or 0 if the
// request was allowed.
func (r *Result) RetryAfter() time.Duration {
	if r.Allowed() {
		return 0
	}
	return max(0, time.Until(r.ResetAt))
}

// Config defines the token bucket configuration.
type Config struct {
	Capacity       int           // Maximum tokens the bucket can hold (burst limit)
	RefillRate     int           // Number of tokens added per refill interval
	RefillInterval time.Duration // How often tokens are added
}

// Window returns a config admitting limit requests per window, refilled in
// full when the window elapses.
func Window(limit int, window time.Duration) Config {
	return Config{Capacity: limit, RefillRate: limit, RefillInterval: window}
}

// ttl is how long an idle bucket takes to refill completely.
func (c Config) ttl() time.Duration {
	return c.RefillInterval * time.Duration(c.Capacity/c.RefillRate+1)
}
