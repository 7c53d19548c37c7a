package server

import (
	"net/http"
	"sync"

	"github.com/ternarybob/chronicle/internal/common"
	"github.com/ternarybob/chronicle/internal/handlers"
	"golang.org/x/time/rate"
)

// clientLimiters holds one token bucket per authenticated client for the
// ingestion endpoints. Query and metrics routes are not limited.
type clientLimiters struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
}

func newClientLimiters(config common.IngestConfig) *clientLimiters {
	return &clientLimiters{
		limiters: make(map[string]*rate.Limiter),
		limit:    rate.Limit(config.RateLimit),
		burst:    config.RateBurst,
	}
}

// enabled reports whether rate limiting is configured
func (c *clientLimiters) enabled() bool {
	return c.limit > 0
}

func (c *clientLimiters) get(clientID string) *rate.Limiter {
	c.mu.Lock()
	defer c.mu.Unlock()

	limiter, ok := c.limiters[clientID]
	if !ok {
		limiter = rate.NewLimiter(c.limit, c.burst)
		c.limiters[clientID] = limiter
	}
	return limiter
}

// rateLimited rejects requests exceeding the per-client ingestion budget
// with 429. Runs after the auth middleware, so the client identity is
// already on the context.
func (s *Server) rateLimited(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiters.enabled() {
			next.ServeHTTP(w, r)
			return
		}

		clientID, ok := handlers.ClientIDFromContext(r.Context())
		if ok && !s.limiters.get(clientID).Allow() {
			s.app.Logger.Warn().Str("client_id", clientID).Msg("Ingestion rate limit exceeded")
			handlers.WriteError(w, http.StatusTooManyRequests, "Rate limit exceeded")
			return
		}

		next.ServeHTTP(w, r)
	})
}
