package server

import (
	"sync"
	"time"
)

// signingThrottle caps how often one source address may hit the public
// signing endpoints. Fixed window, in memory; state resets on restart,
// which is enough for a single-process deployment.
type signingThrottle struct {
	limit  int
	window time.Duration
	now    func() time.Time

	mu      sync.Mutex
	sources map[string]*throttleWindow
}

type throttleWindow struct {
	openedAt time.Time
	hits     int
}

func newSigningThrottle(limit int, window time.Duration) *signingThrottle {
	return &signingThrottle{
		limit:   limit,
		window:  window,
		now:     time.Now,
		sources: make(map[string]*throttleWindow),
	}
}

func (t *signingThrottle) Allow(source string) bool {
	if source == "" {
		return false
	}

	now := t.now().UTC()
	t.mu.Lock()
	defer t.mu.Unlock()

	w := t.sources[source]
	if w == nil || now.Sub(w.openedAt) > t.window {
		w = &throttleWindow{openedAt: now}
		t.sources[source] = w
	}

	if w.hits >= t.limit {
		return false
	}

	w.hits++
	return true
}
