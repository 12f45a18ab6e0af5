package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// client represents a rate-limited client with request count and window start.
type client struct {
	windowStart time.Time
	count       int
}

// rateStore holds per-IP fixed windows. Expired entries are swept at most
// once per window.
type rateStore struct {
	mu        sync.Mutex
	clients   map[string]*client
	limit     int
	window    time.Duration
	lastSweep time.Time
}

func newRateStore(limit int, window time.Duration, now time.Time) *rateStore {
	return &rateStore{
		clients:   make(map[string]*client),
		limit:     limit,
		window:    window,
		lastSweep: now,
	}
}

// allow records one request from ip at now and reports whether it is within the limit.
func (s *rateStore) allow(ip string, now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if now.Sub(s.lastSweep) >= s.window {
		s.sweep(now)
	}

	cl, ok := s.clients[ip]
	if !ok || now.Sub(cl.windowStart) > s.window {
		cl = &client{windowStart: now}
		s.clients[ip] = cl
	}
	cl.count++
	return cl.count <= s.limit
}

func (s *rateStore) sweep(now time.Time) {
	for k, v := range s.clients {
		if now.Sub(v.windowStart) > s.window {
			delete(s.clients, k)
		}
	}
	s.lastSweep = now
}

// RateLimiter limits the number of requests per client IP.
//
// Behavior:
//   - Allows up to limit requests per window for each client IP.
//   - The window restarts after it elapses.
//   - If the limit is exceeded, returns HTTP 429 Too Many Requests.
//
// Each call returns a limiter with its own in-memory store; a multi-instance
// deployment would need a shared store instead.
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	store := newRateStore(limit, window, time.Now())

	return func(c *gin.Context) {
		if !store.allow(c.ClientIP(), time.Now()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}
