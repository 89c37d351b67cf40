package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/AnshRaj112/heritage-backend/pkg/clientip"
)

const (
	// RateLimitKeyPrefix is the Redis key prefix for submission counters.
	RateLimitKeyPrefix = "ratelimit:submit:"

	limiterCleanupInterval = 5 * time.Minute
	limiterTTL             = 30 * time.Minute
)

// Limiter decides whether the client identified by key may submit again.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

type limiterEntry struct {
	limiter *rate.Limiter
	lastUse time.Time
}

// IPRateLimiter is an in-process token bucket per client IP.
type IPRateLimiter struct {
	mu      sync.Mutex
	entries map[string]*limiterEntry
	limit   rate.Limit
	burst   int
	now     func() time.Time
}

// NewIPRateLimiter allows perMinute submissions per minute with a burst of
// the same size.
func NewIPRateLimiter(perMinute int) *IPRateLimiter {
	if perMinute < 1 {
		perMinute = 1
	}
	return &IPRateLimiter{
		entries: make(map[string]*limiterEntry),
		limit:   rate.Every(time.Minute / time.Duration(perMinute)),
		burst:   perMinute,
		now:     time.Now,
	}
}

func (l *IPRateLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	e, ok := l.entries[key]
	if !ok {
		e = &limiterEntry{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.entries[key] = e
	}
	e.lastUse = now
	return e.limiter.AllowN(now, 1), nil
}

// Sweep drops limiters idle for longer than limiterTTL.
func (l *IPRateLimiter) Sweep() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	for key, e := range l.entries {
		if now.Sub(e.lastUse) > limiterTTL {
			delete(l.entries, key)
		}
	}
}

// Run sweeps idle limiters until ctx is done.
func (l *IPRateLimiter) Run(ctx context.Context) {
	ticker := time.NewTicker(limiterCleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.Sweep()
		}
	}
}

// RedisWindowLimiter counts submissions per IP in fixed windows shared by
// every server instance.
type RedisWindowLimiter struct {
	client *redis.Client
	max    int64
	window time.Duration
}

func NewRedisWindowLimiter(client *redis.Client, perMinute int) *RedisWindowLimiter {
	if perMinute < 1 {
		perMinute = 1
	}
	return &RedisWindowLimiter{client: client, max: int64(perMinute), window: time.Minute}
}

func (l *RedisWindowLimiter) Allow(ctx context.Context, key string) (bool, error) {
	redisKey := RateLimitKeyPrefix + key
	count, err := l.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return true, err
	}
	if count == 1 {
		l.client.Expire(ctx, redisKey, l.window)
	}
	return count <= l.max, nil
}

// SubmitRateLimit rejects POST requests from clients over their limit with
// 429. Other methods pass through. Limiter errors fail open.
func SubmitRateLimit(l Limiter, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				next.ServeHTTP(w, r)
				return
			}
			ip := clientip.RealClientIP(r)
			allowed, err := l.Allow(r.Context(), ip)
			if err != nil {
				logger.Warn("Rate limiter unavailable", zap.String("ip", ip), zap.Error(err))
			}
			if !allowed {
				w.Header().Set("Retry-After", strconv.Itoa(60))
				if strings.HasPrefix(r.URL.Path, "/api/") {
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusTooManyRequests)
					w.Write([]byte(`{"success":false,"message":"Too many submissions. Please slow down."}`))
					return
				}
				http.Error(w, "Too many submissions. Please slow down.", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
