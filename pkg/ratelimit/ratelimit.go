// Package ratelimit throttles HTTP clients by remote IP.
package ratelimit

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type client struct {
	limiter *rate.Limiter
	last    time.Time
}

// PerIP hands each remote IP its own token bucket. Buckets idle for longer than idle are
// dropped on a later request.
type PerIP struct {
	rps   rate.Limit
	burst int
	idle  time.Duration
	now   func() time.Time

	mu        sync.Mutex
	clients   map[string]*client
	lastSweep time.Time
}

func NewPerIP(rps float64, burst int) *PerIP {
	if burst < 1 {
		burst = 1
	}
	return &PerIP{
		rps:     rate.Limit(rps),
		burst:   burst,
		idle:    30 * time.Minute,
		now:     time.Now,
		clients: make(map[string]*client),
	}
}

func (p *PerIP) Allow(ip string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.now()
	if now.Sub(p.lastSweep) > p.idle {
		for k, c := range p.clients {
			if now.Sub(c.last) > p.idle {
				delete(p.clients, k)
			}
		}
		p.lastSweep = now
	}

	c, ok := p.clients[ip]
	if !ok {
		c = &client{limiter: rate.NewLimiter(p.rps, p.burst)}
		p.clients[ip] = c
	}
	c.last = now
	return c.limiter.AllowN(now, 1)
}

// Middleware answers 429 once a client exceeds its bucket. A non-positive rps disables it.
func Middleware(rps float64, burst int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if rps <= 0 {
			return next
		}
		limits := NewPerIP(rps, burst)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limits.Allow(remoteIP(r)) {
				http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func remoteIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
