package idempotency

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// MemoryStore is a single-process Store used when no Redis address is
// configured.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string]memoryEntry
	now  func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string]memoryEntry),
		now:  time.Now,
	}
}

func (s *MemoryStore) Reserve(ctx context.Context, key string) (*Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.data[key]
	if ok && s.now().Before(entry.expiresAt) {
		return decode(entry.value)
	}
	s.data[key] = memoryEntry{value: []byte(pendingMarker), expiresAt: s.now().Add(TTLPending)}
	return nil, nil
}

func (s *MemoryStore) Save(ctx context.Context, key string, resp Response) error {
	raw, err := json.Marshal(resp)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = memoryEntry{value: raw, expiresAt: s.now().Add(TTLResponse)}
	return nil
}

func (s *MemoryStore) Release(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}
