package rpc

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/time/rate"
)

// maxTrackedClients bounds how many client buckets are kept at once.
// The least recently seen client is evicted first and starts over with
// a full bucket if it returns.
const maxTrackedClients = 4096

// ClientLimiter applies a token-bucket throttle per client IP in front
// of method dispatch. It protects the transport; the per-user admission
// limit inside the bank is a separate, stricter mechanism.
type ClientLimiter struct {
	mu      sync.Mutex
	clients *lru.Cache[string, *rate.Limiter]
	rps     rate.Limit
	burst   int
}

// NewClientLimiter allows rps sustained requests per client with the
// given burst.
func NewClientLimiter(rps float64, burst int) *ClientLimiter {
	clients, _ := lru.New[string, *rate.Limiter](maxTrackedClients)
	return &ClientLimiter{
		clients: clients,
		rps:     rate.Limit(rps),
		burst:   burst,
	}
}

// Allow reports whether a request from ip may proceed now.
func (l *ClientLimiter) Allow(ip string) bool {
	l.mu.Lock()
	limiter, ok := l.clients.Get(ip)
	if !ok {
		limiter = rate.NewLimiter(l.rps, l.burst)
		l.clients.Add(ip, limiter)
	}
	l.mu.Unlock()

	return limiter.Allow()
}
