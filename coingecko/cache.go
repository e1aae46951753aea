package coingecko

import (
	"bufio"
	"bytes"
	"net/http"
	"net/http/httputil"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// memCache is an http.RoundTripper keeping successful GET responses in
// memory for a while.
type memCache struct {
	base  http.RoundTripper
	ttl   time.Duration
	now   func() time.Time
	log   zerolog.Logger
	mu    sync.Mutex
	cache map[string]cached
}

type cached struct {
	at      time.Time
	content []byte // dumped response
}

func newMemCache(base http.RoundTripper, ttl time.Duration, log zerolog.Logger) *memCache {
	return &memCache{base: base, ttl: ttl, now: time.Now, log: log, cache: make(map[string]cached)}
}

func (c *memCache) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Method != http.MethodGet {
		return c.base.RoundTrip(req)
	}
	key := req.URL.String()
	if resp, ok := c.get(key, req); ok {
		c.log.Debug().Str("url", req.URL.Path).Msg("cache hit")
		return resp, nil
	}

	resp, err := c.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	c.log.Debug().Str("method", req.Method).Str("url", req.URL.Host+req.URL.Path).Str("status", resp.Status).Msg("http")
	if resp.StatusCode >= 300 {
		return resp, nil
	}
	// otherwise attempt to store it in cache
	if err := c.put(key, resp); err != nil {
		c.log.Warn().Err(err).Msg("cache write error (ignored)")
	}
	return resp, nil
}

// get returns the cached response for key if it has not expired.
func (c *memCache) get(key string, req *http.Request) (*http.Response, bool) {
	c.mu.Lock()
	entry, ok := c.cache[key]
	if ok && c.now().Sub(entry.at) >= c.ttl {
		delete(c.cache, key)
		ok = false
	}
	c.mu.Unlock()
	if !ok {
		return nil, false
	}
	resp, err := http.ReadResponse(bufio.NewReader(bytes.NewReader(entry.content)), req)
	if err != nil {
		return nil, false
	}
	return resp, true
}

// put stores resp. DumpResponse leaves resp readable for the caller.
func (c *memCache) put(key string, resp *http.Response) error {
	content, err := httputil.DumpResponse(resp, true)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache[key] = cached{at: c.now(), content: content}
	return nil
}

// Len returns the number of cached responses, expired or not.
func (c *memCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.cache)
}

// limited is an http.RoundTripper spacing out requests with a rate limiter.
type limited struct {
	base    http.RoundTripper
	limiter *rate.Limiter
}

func (l *limited) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := l.limiter.Wait(req.Context()); err != nil {
		return nil, err
	}
	return l.base.RoundTrip(req)
}

// newLimiter returns a limiter allowing one request every interval. A zero
// interval does not limit.
func newLimiter(interval time.Duration) *rate.Limiter {
	if interval <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(interval), 1)
}
