package service

import (
	"context"
	"sync"
)

// guardEntry is a capacity-one channel acting as a per-user lock, with a
// refcount so idle entries can be dropped from the map
type guardEntry struct {
	ch   chan struct{}
	refs int
}

// Guard serializes ledger operations per user. Concurrent operations on
// the same user queue up; operations on distinct users never contend.
type Guard struct {
	mu      sync.Mutex
	entries map[int64]*guardEntry
}

// NewGuard creates an empty user guard
func NewGuard() *Guard {
	return &Guard{entries: make(map[int64]*guardEntry)}
}

// Acquire blocks until the user's lock is held or the context is done.
// The returned release function must be called exactly once.
func (g *Guard) Acquire(ctx context.Context, userID int64) (func(), error) {
	g.mu.Lock()
	entry, ok := g.entries[userID]
	if !ok {
		entry = &guardEntry{ch: make(chan struct{}, 1)}
		g.entries[userID] = entry
	}
	entry.refs++
	g.mu.Unlock()

	select {
	case entry.ch <- struct{}{}:
		var once sync.Once
		return func() {
			once.Do(func() {
				<-entry.ch
				g.put(userID, entry)
			})
		}, nil
	case <-ctx.Done():
		g.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(g.entries, userID)
		}
		g.mu.Unlock()
		return nil, ctx.Err()
	}
}

func (g *Guard) put(userID int64, entry *guardEntry) {
	g.mu.Lock()
	entry.refs--
	if entry.refs == 0 {
		delete(g.entries, userID)
	}
	g.mu.Unlock()
}

// AcquirePair takes both users' locks in ascending ID order, so two
// opposing transfers cannot deadlock each other
func (g *Guard) AcquirePair(ctx context.Context, a, b int64) (func(), error) {
	if a == b {
		return g.Acquire(ctx, a)
	}
	first, second := a, b
	if second < first {
		first, second = second, first
	}

	releaseFirst, err := g.Acquire(ctx, first)
	if err != nil {
		return nil, err
	}
	releaseSecond, err := g.Acquire(ctx, second)
	if err != nil {
		releaseFirst()
		return nil, err
	}
	return func() {
		releaseSecond()
		releaseFirst()
	}, nil
}
