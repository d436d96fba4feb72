package resetcode

import (
	"context"
	"sync"
	"time"

	"github.com/milkwise/mother-care-service/internal/core/domain"
	"github.com/milkwise/mother-care-service/internal/core/ports"
)

// MemoryStore keeps reset codes in process memory. Dev mode and tests only.
type MemoryStore struct {
	mu    sync.Mutex
	ttl   time.Duration
	now   func() time.Time
	codes map[string]memoryCode
}

type memoryCode struct {
	motherID  int64
	expiresAt time.Time
}

var _ ports.ResetCodeStore = (*MemoryStore)(nil)

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &MemoryStore{ttl: ttl, now: time.Now, codes: make(map[string]memoryCode)}
}

func (s *MemoryStore) Save(_ context.Context, code string, motherID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes[code] = memoryCode{motherID: motherID, expiresAt: s.now().Add(s.ttl)}
	return nil
}

func (s *MemoryStore) Lookup(_ context.Context, code string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.codes[code]
	if !ok || s.now().After(c.expiresAt) {
		delete(s.codes, code)
		return 0, domain.ErrNotFound
	}
	return c.motherID, nil
}
