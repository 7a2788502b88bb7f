package cache

import (
	"context"
	"sync"
	"time"

	"github.com/shop/backend/internal/domain/shared"
)

// InMemoryIdempotencyStore keeps idempotency keys in process memory.
// State is not shared between instances; use the redis store when more
// than one API process serves requests.
type InMemoryIdempotencyStore struct {
	mu        sync.RWMutex
	keys      map[string]time.Time // key -> expiry
	now       func() time.Time
	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewInMemoryIdempotencyStore creates the store and starts its expiry sweeper
func NewInMemoryIdempotencyStore() *InMemoryIdempotencyStore {
	store := &InMemoryIdempotencyStore{
		keys:     make(map[string]time.Time),
		now:      time.Now,
		stopChan: make(chan struct{}),
	}

	store.wg.Add(1)
	go store.cleanupLoop()

	return store
}

// MarkProcessed records key until ttl elapses. It returns false when an
// unexpired record already exists.
func (s *InMemoryIdempotencyStore) MarkProcessed(_ context.Context, key string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if expiresAt, ok := s.keys[key]; ok && now.Before(expiresAt) {
		return false, nil
	}
	s.keys[key] = now.Add(ttl)
	return true, nil
}

// IsProcessed reports whether an unexpired record exists for key
func (s *InMemoryIdempotencyStore) IsProcessed(_ context.Context, key string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	expiresAt, ok := s.keys[key]
	return ok && s.now().Before(expiresAt), nil
}

// Release forgets key
func (s *InMemoryIdempotencyStore) Release(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.keys, key)
	s.mu.Unlock()
	return nil
}

// Close stops the sweeper. Safe to call multiple times.
func (s *InMemoryIdempotencyStore) Close() error {
	s.closeOnce.Do(func() {
		close(s.stopChan)
		s.wg.Wait()
	})
	return nil
}

func (s *InMemoryIdempotencyStore) cleanupLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.cleanup()
		}
	}
}

func (s *InMemoryIdempotencyStore) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for key, expiresAt := range s.keys {
		if !now.Before(expiresAt) {
			delete(s.keys, key)
		}
	}
}

// Size returns the number of stored keys, expired ones included until swept
func (s *InMemoryIdempotencyStore) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.keys)
}

var _ shared.IdempotencyStore = (*InMemoryIdempotencyStore)(nil)
