package session

import (
	"context"
	"strings"
	"sync"
	"time"
)

// MemoryStore keeps sessions in process memory with a sliding TTL.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]memoryEntry
	ttl   time.Duration
	now   func() time.Time
}

type memoryEntry struct {
	state   State
	expires time.Time
}

// NewMemoryStore builds an in-memory store. A nil now uses time.Now.
func NewMemoryStore(ttl time.Duration, now func() time.Time) *MemoryStore {
	if now == nil {
		now = time.Now
	}
	return &MemoryStore{items: make(map[string]memoryEntry), ttl: ttl, now: now}
}

func (s *MemoryStore) Load(ctx context.Context, id string) (State, error) {
	if err := ctx.Err(); err != nil {
		return State{}, err
	}
	if strings.TrimSpace(id) == "" {
		return State{}, ErrInvalidID
	}
	s.mu.RLock()
	entry, ok := s.items[id]
	s.mu.RUnlock()
	if !ok || (s.ttl > 0 && s.now().After(entry.expires)) {
		return State{}, nil
	}
	return entry.state, nil
}

func (s *MemoryStore) Save(ctx context.Context, id string, state State) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(id) == "" {
		return ErrInvalidID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[id] = memoryEntry{state: state, expires: s.now().Add(s.ttl)}
	s.evictExpiredLocked()
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	delete(s.items, id)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) evictExpiredLocked() {
	if s.ttl <= 0 {
		return
	}
	now := s.now()
	for id, entry := range s.items {
		if now.After(entry.expires) {
			delete(s.items, id)
		}
	}
}

var _ Store = (*MemoryStore)(nil)
