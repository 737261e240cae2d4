/*
Package limiter provides IP-address based request rate limiting.

It uses the token bucket algorithm (rate.Limiter) per client IP and runs a
cleanup goroutine that drops limiters whose buckets have refilled, keeping
the map from growing without bound.
*/
package limiter

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/MessiahAndrw/Collaborate/internal/pkg/errs"
	"github.com/MessiahAndrw/Collaborate/internal/pkg/logx"
	"github.com/MessiahAndrw/Collaborate/internal/pkg/resp"
)

// cleanupInterval is how often inactive limiters are swept from the map.
const cleanupInterval = 3 * time.Minute

// IPRateLimiter implements a per-IP request rate limiter.
type IPRateLimiter struct {
	// mu protects concurrent access to the limits map.
	mu *sync.RWMutex

	// limits maps a client IP address to its *rate.Limiter.
	limits map[string]*rate.Limiter

	// r is the sustained rate allowed per IP.
	r rate.Limit

	// b is the burst size (token bucket capacity) per IP.
	b int
}

// NewIPRateLimiter returns a limiter allowing rate r with burst b per IP
// and starts the background cleanup goroutine.
func NewIPRateLimiter(r rate.Limit, b int) *IPRateLimiter {
	i := &IPRateLimiter{
		mu:     &sync.RWMutex{},
		limits: make(map[string]*rate.Limiter),
		r:      r,
		b:      b,
	}

	go i.cleanUpVisitors()

	return i
}

// GetLimiter returns the rate limiter for the given IP, creating one if
// needed. Uses double-checked locking so concurrent first requests from the
// same IP share one limiter.
func (i *IPRateLimiter) GetLimiter(ip string) *rate.Limiter {
	i.mu.RLock()
	limiter, exists := i.limits[ip]
	i.mu.RUnlock()

	if !exists {
		i.mu.Lock()
		limiter, exists = i.limits[ip]
		if !exists {
			limiter = rate.NewLimiter(i.r, i.b)
			i.limits[ip] = limiter
		}
		i.mu.Unlock()
	}

	return limiter
}

// cleanUpVisitors periodically removes limiters whose token bucket is full
// again, meaning the IP has been idle long enough to forget.
func (i *IPRateLimiter) cleanUpVisitors() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for range ticker.C {
		i.mu.Lock()
		for ip, limiter := range i.limits {
			if limiter.Tokens() >= float64(i.b) {
				delete(i.limits, ip)
			}
		}
		i.mu.Unlock()
	}
}

// Middleware wraps an HTTP handler with per-IP rate limiting.
// Requests over the limit receive an ErrRateLimitExceeded JSON response.
func (i *IPRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}

		if ip == "" {
			ip = "unknown_ip"
		}

		if !i.GetLimiter(ip).Allow() {
			logx.Warn("Request rejected: rate limit exceeded.", "ip", ip)
			resp.RespondError(w, r, errs.NewError(errs.ErrRateLimitExceeded))
			return
		}

		next.ServeHTTP(w, r)
	})
}
