package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"doodle/contexts/community-scheduling/doodle-poll/ports"

	"github.com/google/uuid"
)

// Store is an in-process BlobStore, Clock and IDGenerator for tests and
// local runs. Blobs are copied on the way in and out.
type Store struct {
	mu    sync.RWMutex
	blobs map[string][]byte
	now   func() time.Time
}

func NewStore(seed map[string][]byte) *Store {
	blobs := make(map[string][]byte, len(seed))
	for key, blob := range seed {
		blobs[strings.TrimSpace(key)] = append([]byte(nil), blob...)
	}
	return &Store{
		blobs: blobs,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// SetNow pins the clock, mainly for tests.
func (s *Store) SetNow(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *Store) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	blob, ok := s.blobs[strings.TrimSpace(key)]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), blob...), true, nil
}

func (s *Store) Put(_ context.Context, key string, blob []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[strings.TrimSpace(key)] = append([]byte(nil), blob...)
	return nil
}

// Keys lists stored keys in no particular order.
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.blobs))
	for key := range s.blobs {
		keys = append(keys, key)
	}
	return keys
}

func (s *Store) Now() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.now()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

var _ ports.BlobStore = (*Store)(nil)
var _ ports.Clock = (*Store)(nil)
var _ ports.IDGenerator = (*Store)(nil)
