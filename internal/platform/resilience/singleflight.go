package resilience

import "sync"

// SingleFlight collapses concurrent calls for the same key into one
// execution; every caller receives the leader's result. Race finalization
// uses it so two operators submitting results for the same race cannot grade
// its bets twice, and the feed client uses it to deduplicate identical
// in-flight requests. The zero value is ready to use.
type SingleFlight struct {
	mu    sync.Mutex
	calls map[string]*inflight
}

type inflight struct {
	wg  sync.WaitGroup
	val any
	err error
}

// Do runs fn once per key at a time. The third return value reports whether
// the result was shared with an earlier caller. Once the leader finishes, the
// key is released and a later Do runs fn again.
func (g *SingleFlight) Do(key string, fn func() (any, error)) (any, error, bool) {
	g.mu.Lock()
	if g.calls == nil {
		g.calls = make(map[string]*inflight)
	}

	if c, ok := g.calls[key]; ok {
		g.mu.Unlock()
		c.wg.Wait()
		return c.val, c.err, true
	}

	c := &inflight{}
	c.wg.Add(1)
	g.calls[key] = c
	g.mu.Unlock()

	c.val, c.err = fn()
	c.wg.Done()

	g.mu.Lock()
	delete(g.calls, key)
	g.mu.Unlock()

	return c.val, c.err, false
}
