// Per-client rate limiting for endpoints that trigger tick processing (and
// therefore LLM calls). Fixed-window counters keyed by client IP.
package api

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Limiter allows at most max requests per client per window.
type Limiter struct {
	mu      sync.Mutex
	windows map[string]*clientWindow
	max     int
	window  time.Duration
}

type clientWindow struct {
	used    int
	startAt time.Time
}

// NewLimiter creates a limiter and starts a background sweep of idle clients.
func NewLimiter(max int, window time.Duration) *Limiter {
	l := &Limiter{
		windows: make(map[string]*clientWindow),
		max:     max,
		window:  window,
	}
	go func() {
		for range time.Tick(time.Hour) {
			l.sweep()
		}
	}()
	return l
}

// Allow reports whether the client may proceed, consuming one slot if so.
func (l *Limiter) Allow(client string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	w, ok := l.windows[client]
	if !ok || now.Sub(w.startAt) >= l.window {
		l.windows[client] = &clientWindow{used: 1, startAt: now}
		return true
	}
	if w.used < l.max {
		w.used++
		return true
	}
	return false
}

// RetryAfterSeconds returns how long until the client's window resets.
func (l *Limiter) RetryAfterSeconds(client string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.windows[client]
	if !ok {
		return 0
	}
	left := l.window - time.Since(w.startAt)
	if left <= 0 {
		return 0
	}
	return int(left.Seconds()) + 1
}

func (l *Limiter) sweep() {
	l.mu.Lock()
	defer l.mu.Unlock()
	cutoff := time.Now().Add(-2 * l.window)
	for client, w := range l.windows {
		if w.startAt.Before(cutoff) {
			delete(l.windows, client)
		}
	}
}

// clientIP extracts the caller address, honoring X-Forwarded-For when present.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if i := strings.IndexByte(xff, ','); i >= 0 {
			return strings.TrimSpace(xff[:i])
		}
		return strings.TrimSpace(xff)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// limited wraps a handler, answering 429 with Retry-After when the client's
// window is exhausted.
func limited(l *Limiter, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)
		if !l.Allow(ip) {
			w.Header().Set("Retry-After", strconv.Itoa(l.RetryAfterSeconds(ip)))
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}
		next(w, r)
	}
}
