package middleware

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	handlers "memories/internal/handler"
)

const rateLimitPrefix = "ratelimit:"

// RateLimiter is a fixed window counter per client IP kept in Redis.
type RateLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
}

func NewRateLimiter(client *redis.Client, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{client: client, limit: limit, window: window}
}

// Allow counts one request for key and reports whether it fits in the
// current window, with the number of requests left. A counter left without
// a TTL gets the window again on the next request.
func (l *RateLimiter) Allow(ctx context.Context, key string) (bool, int, error) {
	redisKey := rateLimitPrefix + key

	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	ttl := pipe.PTTL(ctx, redisKey)
	if _, err := pipe.Exec(ctx); err != nil {
		return true, l.limit, fmt.Errorf("failed to increment rate counter: %w", err)
	}

	count := incr.Val()
	if ttl.Val() < 0 {
		if err := l.client.PExpire(ctx, redisKey, l.window).Err(); err != nil {
			return true, l.limit, fmt.Errorf("failed to set rate window: %w", err)
		}
	}

	remaining := l.limit - int(count)
	if remaining < 0 {
		remaining = 0
	}

	return count <= int64(l.limit), remaining, nil
}

// Middleware rejects clients over the limit with 429. Redis failures let
// the request through.
func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, remaining, err := l.Allow(r.Context(), clientIP(r))
		if err != nil {
			logrus.WithError(err).Warn("Rate limiter unavailable, allowing request")
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Set("RateLimit-Limit", strconv.Itoa(l.limit))
		w.Header().Set("RateLimit-Remaining", strconv.Itoa(remaining))

		if !allowed {
			w.Header().Set("Retry-After", strconv.Itoa(int(l.window.Seconds())))
			handlers.WriteError(w, "Too many requests, please try again later.", http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
