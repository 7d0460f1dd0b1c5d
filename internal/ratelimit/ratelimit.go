// Package ratelimit throttles the public write endpoints to one request per
// client per window.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

type Limiter interface {
	// Allow reports whether key may pass now, and records the hit when it does.
	Allow(ctx context.Context, key string) (bool, error)
}

// Memory keeps hits in process memory. Use Redis when running several replicas.
type Memory struct {
	Window time.Duration
	Now    func() time.Time

	mu   sync.Mutex
	seen map[string]time.Time
}

func NewMemory(window time.Duration) *Memory {
	return &Memory{Window: window, seen: map[string]time.Time{}}
}

func (m *Memory) now() time.Time {
	if m.Now != nil {
		return m.Now()
	}
	return time.Now()
}

func (m *Memory) Allow(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.seen == nil {
		m.seen = map[string]time.Time{}
	}
	now := m.now()
	if until, ok := m.seen[key]; ok && now.Before(until) {
		return false, nil
	}
	m.seen[key] = now.Add(m.Window)
	if len(m.seen) > 10000 {
		m.sweep(now)
	}
	return true, nil
}

func (m *Memory) sweep(now time.Time) {
	for k, until := range m.seen {
		if !now.Before(until) {
			delete(m.seen, k)
		}
	}
}

// Redis shares the window across processes with SET NX PX.
type Redis struct {
	Client redis.Cmdable
	Window time.Duration
	Prefix string
}

func NewRedis(client redis.Cmdable, window time.Duration) Redis {
	return Redis{Client: client, Window: window, Prefix: "khanza:rl:"}
}

func (r Redis) Allow(ctx context.Context, key string) (bool, error) {
	return r.Client.SetNX(ctx, r.Prefix+key, 1, r.Window).Result()
}
