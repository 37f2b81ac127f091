package services

import (
	"errors"
	"sync"
)

// ErrSuperseded is returned when a newer call of the same operation started
// before this one completed; its result is discarded.
var ErrSuperseded = errors.New("superseded by a newer request")

// LatestGuard hands out monotonic request tokens per logical operation so
// that only the most recent call's completion is accepted.
type LatestGuard struct {
	mu  sync.Mutex
	seq map[string]uint64
}

func NewLatestGuard() *LatestGuard {
	return &LatestGuard{seq: make(map[string]uint64)}
}

// Begin issues the next token for op. The returned func reports whether that
// token is still the latest issued for op.
func (g *LatestGuard) Begin(op string) func() bool {
	g.mu.Lock()
	g.seq[op]++
	mine := g.seq[op]
	g.mu.Unlock()

	return func() bool {
		g.mu.Lock()
		defer g.mu.Unlock()
		return g.seq[op] == mine
	}
}
