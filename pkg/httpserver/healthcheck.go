package httpserver

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/twofactor/pkg/logger"
)

// Check is a named readiness check, e.g. pg.Healthcheck(pool).
type Check struct {
	Name string
	Ping func(context.Context) error
}

// LivenessHandler always answers 200.
func LivenessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeStatus(w, http.StatusOK, map[string]string{"status": "alive"})
	}
}

// ReadinessHandler runs every check with timeout and answers 503 when any
// of them fails. The response lists the status of each check by name.
func ReadinessHandler(log *slog.Logger, timeout time.Duration, checks ...Check) http.HandlerFunc {
	if log == nil {
		log = logger.Discard()
	}
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		code := http.StatusOK
		result := make(map[string]string, len(checks)+1)
		for _, c := range checks {
			if err := c.Ping(ctx); err != nil {
				log.ErrorContext(ctx, "readiness check failed",
					logger.Component(c.Name),
					logger.Error(err),
				)
				result[c.Name] = "fail"
				code = http.StatusServiceUnavailable
				continue
			}
			result[c.Name] = "ok"
		}

		result["status"] = "ready"
		if code != http.StatusOK {
			result["status"] = "not_ready"
		}
		writeStatus(w, code, result)
	}
}

func writeStatus(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}
