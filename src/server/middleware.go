package server

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"spatialdataapi/src/infra/metrics"
	"spatialdataapi/src/infra/redis"
)

// statusRecorder captures the status code written by the wrapped handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(status int) {
	sr.status = status
	sr.ResponseWriter.WriteHeader(status)
}

func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(recorder, r)

		elapsedMs := float64(time.Since(start)) / float64(time.Millisecond)
		metrics.RequestsTotal.WithLabelValues(r.Method, r.URL.Path, strconv.Itoa(recorder.status)).Inc()
		metrics.RequestDurationMs.WithLabelValues(r.Method, r.URL.Path).Observe(elapsedMs)
	})
}

// CORSMiddleware applies a permissive policy: any origin, any method, any
// header. Access control is expected to live in front of this service.
func CORSMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RateLimiter is a fixed-window per-client limiter on Redis counters. It is
// optional: when Redis is not configured, requests pass through unlimited.
type RateLimiter struct {
	redisClient *redis.RedisClient
	limit       int64
	window      time.Duration
}

func NewRateLimiter(redisClient *redis.RedisClient, limitPerWindow int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		redisClient: redisClient,
		limit:       int64(limitPerWindow),
		window:      window,
	}
}

func (rl *RateLimiter) Middleware(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		host, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			host = r.RemoteAddr
		}

		key := fmt.Sprintf("ratelimit:%s:%d", host, time.Now().Unix()/int64(rl.window.Seconds()))
		count, err := rl.redisClient.IncrWindow(r.Context(), key, rl.window)
		if err != nil {
			// Redis being down must not take the API with it.
			logger.Warn("Rate limiter unavailable, letting request through", "error", err)
			next.ServeHTTP(w, r)
			return
		}

		if count > rl.limit {
			metrics.RateLimitedTotal.Inc()
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			fmt.Fprintln(w, `{"detail": "rate limit exceeded"}`)
			return
		}

		next.ServeHTTP(w, r)
	})
}
