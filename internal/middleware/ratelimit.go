// AngelaMos | 2026
// ratelimit.go

package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	redis_rate "github.com/go-redis/redis_rate/v10"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"github.com/carterperez-dev/tenanthub/internal/core"
)

// RateLimitConfig configures one limiter. FailOpen decides what happens
// when neither Redis nor the local fallback can answer.
type RateLimitConfig struct {
	Prefix   string
	Limit    redis_rate.Limit
	KeyFunc  func(*http.Request) string
	FailOpen bool
}

// RateLimiter enforces a GCRA limit in Redis. While Redis is unreachable
// each instance falls back to an in-process token bucket per key.
type RateLimiter struct {
	redis    *redis_rate.Limiter
	fallback *localLimiter
	limit    redis_rate.Limit
	keyFunc  func(*http.Request) string
	failOpen bool
}

func NewRateLimiter(rdb *redis.Client, cfg RateLimitConfig) *RateLimiter {
	keyFunc := cfg.KeyFunc
	if keyFunc == nil {
		keyFunc = KeyByIP
	}
	if prefix := cfg.Prefix; prefix != "" {
		base := keyFunc
		keyFunc = func(r *http.Request) string { return prefix + base(r) }
	}

	return &RateLimiter{
		redis:    redis_rate.NewLimiter(rdb),
		fallback: newLocalLimiter(),
		limit:    cfg.Limit,
		keyFunc:  keyFunc,
		failOpen: cfg.FailOpen,
	}
}

func (rl *RateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := rl.keyFunc(r)

		res, err := rl.allow(r.Context(), key)
		if err != nil {
			if rl.failOpen {
				slog.Warn("rate limiter unavailable, failing open",
					"error", err,
					"key", key,
				)
				next.ServeHTTP(w, r)
				return
			}
			core.JSON(w, http.StatusServiceUnavailable, core.Response{
				Error: &core.ErrorBody{
					Code:    "RATE_LIMITER_UNAVAILABLE",
					Message: "Service temporarily unavailable",
				},
			})
			return
		}

		writeLimitHeaders(w.Header(), res)

		if res.Allowed == 0 {
			writeLimited(w, res)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (rl *RateLimiter) allow(
	ctx context.Context,
	key string,
) (*redis_rate.Result, error) {
	res, err := rl.redis.Allow(ctx, key, rl.limit)
	if err == nil {
		return res, nil
	}

	slog.Debug("redis rate limit failed, using local bucket", "error", err)
	return rl.fallback.allow(key, rl.limit)
}

// KeyByIP keys on the last X-Forwarded-For hop, then X-Real-IP, then the
// socket peer.
func KeyByIP(r *http.Request) string {
	return "ratelimit:ip:" + clientIP(r)
}

// KeyByIPAndEndpoint buckets unauthenticated credential endpoints (signin,
// OTP) per client and per route.
func KeyByIPAndEndpoint(r *http.Request) string {
	return KeyByIP(r) + ":endpoint:" + routeShape(r.URL.Path)
}

func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		hops := strings.Split(xff, ",")
		return strings.TrimSpace(hops[len(hops)-1])
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// routeShape replaces id-like segments so every resource shares one
// bucket per route.
func routeShape(path string) string {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	for i, seg := range segments {
		if uuid.Validate(seg) == nil {
			segments[i] = "{id}"
			continue
		}
		if _, err := strconv.ParseUint(seg, 10, 64); err == nil {
			segments[i] = "{id}"
		}
	}
	return "/" + strings.Join(segments, "/")
}

func writeLimitHeaders(h http.Header, res *redis_rate.Result) {
	limit := res.Limit

	h.Set("X-RateLimit-Limit", strconv.Itoa(limit.Rate))
	h.Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
	h.Set("X-RateLimit-Reset",
		strconv.FormatInt(time.Now().Add(res.ResetAfter).Unix(), 10))
	h.Set("RateLimit-Policy",
		fmt.Sprintf("%d;w=%d", limit.Rate, int(limit.Period.Seconds())))
	h.Set("RateLimit",
		fmt.Sprintf("%d;t=%d", res.Remaining, int(res.ResetAfter.Seconds())))
}

func writeLimited(w http.ResponseWriter, res *redis_rate.Result) {
	retryAfter := max(int(res.RetryAfter.Seconds()), 1)

	w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
	core.JSON(w, http.StatusTooManyRequests, core.Response{
		Error: &core.ErrorBody{
			Code: "RATE_LIMITED",
			Message: fmt.Sprintf(
				"Rate limit exceeded. Retry after %d seconds.",
				retryAfter,
			),
		},
	})
}

const (
	bucketSweepInterval = 5 * time.Minute
	bucketIdleTTL       = 10 * time.Minute
)

type bucket struct {
	limiter  *rate.Limiter
	lastSeen atomic.Int64
}

type localLimiter struct {
	buckets sync.Map
}

func newLocalLimiter() *localLimiter {
	l := &localLimiter{}
	go l.sweep()
	return l
}

func (l *localLimiter) sweep() {
	ticker := time.NewTicker(bucketSweepInterval)
	defer ticker.Stop()

	for range ticker.C {
		cutoff := time.Now().Add(-bucketIdleTTL).Unix()
		l.buckets.Range(func(key, value any) bool {
			if b, ok := value.(*bucket); ok && b.lastSeen.Load() < cutoff {
				l.buckets.Delete(key)
			}
			return true
		})
	}
}

func (l *localLimiter) allow(
	key string,
	limit redis_rate.Limit,
) (*redis_rate.Result, error) {
	if limit.Rate <= 0 || limit.Period <= 0 {
		return nil, fmt.Errorf("local limiter: invalid limit %s", limit)
	}

	perSecond := float64(limit.Rate) / limit.Period.Seconds()
	interval := time.Duration(float64(time.Second) / perSecond)

	value, _ := l.buckets.LoadOrStore(key, &bucket{
		limiter: rate.NewLimiter(rate.Limit(perSecond), max(limit.Burst, 1)),
	})
	b, ok := value.(*bucket)
	if !ok {
		return nil, fmt.Errorf("local limiter: unexpected entry %T", value)
	}
	b.lastSeen.Store(time.Now().Unix())

	res := &redis_rate.Result{
		Limit:      limit,
		Remaining:  max(int(b.limiter.Tokens()), 0),
		RetryAfter: -1,
		ResetAfter: interval,
	}
	if b.limiter.Allow() {
		res.Allowed = 1
		res.Remaining = max(int(b.limiter.Tokens()), 0)
	} else {
		res.RetryAfter = interval
	}

	return res, nil
}

// FromWindow converts a configured request count per window into a limit.
func FromWindow(requests, burst int, window time.Duration) redis_rate.Limit {
	if window <= 0 {
		window = time.Minute
	}
	return redis_rate.Limit{
		Rate:   requests,
		Burst:  burst,
		Period: window,
	}
}
