package middleware

import (
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"blog-api/pkg/appenv"
	"blog-api/types"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// limiterStore maps client keys to token-bucket limiters. A janitor
// goroutine drops entries not seen for staleAfter to bound memory.
type limiterStore struct {
	mu         sync.Mutex
	entries    map[string]*limiterEntry
	staleAfter time.Duration
}

func newLimiterStore(staleAfter time.Duration) *limiterStore {
	store := &limiterStore{
		entries:    make(map[string]*limiterEntry),
		staleAfter: staleAfter,
	}
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			store.cleanup()
		}
	}()
	return store
}

func (s *limiterStore) getOrCreate(key string, r rate.Limit, burst int) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.entries[key]; ok {
		e.lastSeen = time.Now()
		return e.limiter
	}
	lim := rate.NewLimiter(r, burst)
	s.entries[key] = &limiterEntry{limiter: lim, lastSeen: time.Now()}
	return lim
}

func (s *limiterStore) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := time.Now().Add(-s.staleAfter)
	for k, e := range s.entries {
		if e.lastSeen.Before(cutoff) {
			delete(s.entries, k)
		}
	}
}

func envRate() (rate.Limit, int) {
	rps := 5.0
	burst := 20
	if v := strings.TrimSpace(os.Getenv("RATE_LIMIT_RPS")); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			rps = f
		}
	}
	if v := strings.TrimSpace(os.Getenv("RATE_LIMIT_BURST")); v != "" {
		if i, err := strconv.Atoi(v); err == nil && i > 0 {
			burst = i
		}
	}
	return rate.Limit(rps), burst
}

func rateLimitDisabled() bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("RATE_LIMIT_ENABLED"))) {
	case "0", "false", "no":
		return true
	}
	return appenv.IsTest()
}

func tooManyRequests(c *gin.Context) {
	c.Header("Retry-After", "1")
	c.JSON(http.StatusTooManyRequests, types.ErrorBody("Too many requests"))
	c.Abort()
}

// RateLimit applies a per-IP token bucket to every request except
// preflight and the health endpoint. Configure with RATE_LIMIT_RPS,
// RATE_LIMIT_BURST and RATE_LIMIT_ENABLED; disabled under APP_ENV=test.
func RateLimit() gin.HandlerFunc {
	if rateLimitDisabled() {
		return func(c *gin.Context) { c.Next() }
	}

	r, burst := envRate()
	store := newLimiterStore(10 * time.Minute)

	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions || c.Request.URL.Path == "/api/health" {
			c.Next()
			return
		}
		lim := store.getOrCreate("ip:"+c.ClientIP(), r, burst)
		if !lim.Allow() {
			tooManyRequests(c)
			return
		}
		c.Next()
	}
}

// RateLimitAuth applies a stricter independent per-IP limit for the
// credential endpoints (register, login) to slow brute forcing.
func RateLimitAuth() gin.HandlerFunc {
	if rateLimitDisabled() {
		return func(c *gin.Context) { c.Next() }
	}

	store := newLimiterStore(10 * time.Minute)

	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}
		lim := store.getOrCreate("auth:"+c.ClientIP(), rate.Limit(1), 5)
		if !lim.Allow() {
			tooManyRequests(c)
			return
		}
		c.Next()
	}
}
