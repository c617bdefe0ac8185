// Package artwork stores cover images extracted from media files and
// serves them by content hash.
package artwork

import (
	"crypto/sha1"
	"encoding/hex"
	"sync"
)

// MemoryStore keeps artwork blobs in memory, keyed by the SHA-1 of
// their content. Storing the same bytes twice yields the same ref.
type MemoryStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: make(map[string][]byte)}
}

// Put stores data and returns its ref.
func (s *MemoryStore) Put(data []byte) string {
	sum := sha1.Sum(data)
	ref := hex.EncodeToString(sum[:])

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.blobs[ref]; !ok {
		s.blobs[ref] = data
	}
	return ref
}

// Get returns the blob for ref, or false if unknown.
func (s *MemoryStore) Get(ref string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.blobs[ref]
	return data, ok
}

// Len reports how many distinct blobs are stored.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.blobs)
}
