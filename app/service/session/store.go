package session

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Store maps session ids to conversation state. Entries are locked
// individually, so turns for different sessions never contend.
type Store struct {
	mu      sync.RWMutex
	entries map[string]*entry
	ttl     time.Duration
}

type entry struct {
	mu           sync.Mutex
	state        State
	lastActivity time.Time
}

func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}

	return &Store{
		entries: make(map[string]*entry),
		ttl:     ttl,
	}
}

func (s *Store) acquire(id string) *entry {
	s.mu.RLock()
	e, ok := s.entries[id]
	s.mu.RUnlock()

	if ok {
		return e
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok = s.entries[id]; ok {
		return e
	}

	e = &entry{lastActivity: time.Now()}
	s.entries[id] = e

	return e
}

// BeginTurn appends the user message and returns a copy of the context.
// The lock is released before the caller talks to the catalog or the
// generation service.
func (s *Store) BeginTurn(id, message string) Snapshot {
	e := s.acquire(id)

	e.mu.Lock()
	defer e.mu.Unlock()

	e.state.addMessage(RoleUser, message)
	e.lastActivity = time.Now()

	return e.state.snapshot()
}

// CommitTurn appends the assistant reply and applies the handler's state
// update. It is called on every turn, including failure paths, so the
// history always reflects what the user saw.
func (s *Store) CommitTurn(id, reply string, mutate func(*State)) {
	e := s.acquire(id)

	e.mu.Lock()
	defer e.mu.Unlock()

	e.state.addMessage(RoleAssistant, reply)
	if mutate != nil {
		mutate(&e.state)
	}
	e.lastActivity = time.Now()
}

func (s *Store) Clear(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, id)
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.entries)
}

// RunJanitor evicts sessions idle past the TTL until ctx is cancelled.
func (s *Store) RunJanitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.evictIdle()
		}
	}
}

func (s *Store) evictIdle() {
	now := time.Now()
	evicted := 0

	s.mu.Lock()
	for id, e := range s.entries {
		if now.Sub(e.lastActivity) >= s.ttl {
			delete(s.entries, id)
			evicted++
		}
	}
	s.mu.Unlock()

	if evicted > 0 {
		slog.Debug("Evicted idle sessions", "count", evicted)
	}
}
