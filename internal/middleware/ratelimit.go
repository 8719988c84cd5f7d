// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// Limiter decides whether a client identified by key may make another
// request.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
	// Window is the period over which the budget resets.
	Window() time.Duration
}

// RateLimit rejects requests over the limiter's budget with 429. When the
// limiter itself fails the request is let through and the failure logged.
func RateLimit(l Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ok, err := l.Allow(r.Context(), clientIP(r))
			if err != nil {
				slog.Warn("rate limiter unavailable", "error", err)
				ok = true
			}
			if !ok {
				w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(l.Window().Seconds()))))
				writeJSONError(w, http.StatusTooManyRequests, "Too many requests")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP returns the host part of RemoteAddr. Proxy headers are resolved
// earlier by chi's RealIP middleware.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// MemoryLimiter is a per-process token bucket per client. It allows
// requests per window with bursts up to requests.
type MemoryLimiter struct {
	mu      sync.Mutex
	clients map[string]*client
	every   rate.Limit
	burst   int
	window  time.Duration
	stopCh  chan struct{}
}

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewMemoryLimiter creates a limiter allowing requests per window for each
// client. It starts a background goroutine that drops idle clients.
func NewMemoryLimiter(requests int, window time.Duration) *MemoryLimiter {
	ml := &MemoryLimiter{
		clients: make(map[string]*client),
		every:   rate.Every(window / time.Duration(requests)),
		burst:   requests,
		window:  window,
		stopCh:  make(chan struct{}),
	}

	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				ml.cleanup(time.Now())
			case <-ml.stopCh:
				return
			}
		}
	}()

	return ml
}

// Stop terminates the background cleanup goroutine.
func (ml *MemoryLimiter) Stop() {
	close(ml.stopCh)
}

// Allow implements Limiter. It never fails.
func (ml *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	now := time.Now()

	ml.mu.Lock()
	c, ok := ml.clients[key]
	if !ok {
		c = &client{limiter: rate.NewLimiter(ml.every, ml.burst)}
		ml.clients[key] = c
	}
	c.lastSeen = now
	ml.mu.Unlock()

	return c.limiter.AllowN(now, 1), nil
}

// Window implements Limiter.
func (ml *MemoryLimiter) Window() time.Duration { return ml.window }

// cleanup drops clients idle for a full window. Their bucket has refilled,
// so forgetting them changes nothing.
func (ml *MemoryLimiter) cleanup(now time.Time) {
	cutoff := now.Add(-ml.window)

	ml.mu.Lock()
	defer ml.mu.Unlock()

	for key, c := range ml.clients {
		if c.lastSeen.Before(cutoff) {
			delete(ml.clients, key)
		}
	}
}

// ValkeyLimiter is a fixed-window counter shared by every API instance
// using the same Valkey.
type ValkeyLimiter struct {
	client   *redis.Client
	requests int64
	window   time.Duration
	prefix   string
}

// NewValkeyLimiter creates a limiter allowing requests per window for
// each client.
func NewValkeyLimiter(client *redis.Client, requests int, window time.Duration) *ValkeyLimiter {
	return &ValkeyLimiter{
		client:   client,
		requests: int64(requests),
		window:   window,
		prefix:   "ratelimit:",
	}
}

// key buckets requests by client and window start.
func (vl *ValkeyLimiter) key(client string, now time.Time) string {
	slot := now.UnixNano() / int64(vl.window)
	return vl.prefix + client + ":" + strconv.FormatInt(slot, 10)
}

// Window implements Limiter.
func (vl *ValkeyLimiter) Window() time.Duration { return vl.window }

// Allow implements Limiter.
func (vl *ValkeyLimiter) Allow(ctx context.Context, key string) (bool, error) {
	k := vl.key(key, time.Now())

	var incr *redis.IntCmd
	_, err := vl.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, k)
		pipe.Expire(ctx, k, vl.window)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("rate limit %s: %w", key, err)
	}
	return incr.Val() <= vl.requests, nil
}
