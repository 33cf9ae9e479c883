// Package wappush caches the message sizes learned from inbound WAP push
// notifications, keyed by the byte concatenation of the content location and
// the transaction id. The retrieval side supplies the key re-encoded as
// ISO-8859-1 text, so lookups must go through the same byte-level contract
// rather than any language-native key type.
package wappush

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/text/encoding/charmap"

	"github.com/Project-Pixelstar-Fifteen/frameworks-opt-telephony/internal/smscontrol/domain"
)

// Store is the WAP push message size cache. Entries never expire; the only
// removal is an explicit full Clear at reset boundaries.
type Store interface {
	// Put inserts or overwrites the size at key location||transactionID.
	Put(ctx context.Context, location, transactionID []byte, size int64) error
	// Get decodes compositeKeyText as ISO-8859-1 bytes and looks up the
	// exact key, returning domain.ErrCacheKeyNotFound when absent.
	Get(ctx context.Context, compositeKeyText string) (int64, error)
	// Clear removes all entries.
	Clear(ctx context.Context) error
}

// compositeKey joins the two opaque byte sequences. The raw bytes are kept as
// a Go string only as an immutable map key; no charset interpretation happens
// on the write path.
func compositeKey(location, transactionID []byte) string {
	return string(location) + string(transactionID)
}

// decodeKeyText converts caller-supplied key text back to the raw byte key.
// Text that cannot be represented in ISO-8859-1 cannot match any stored key.
func decodeKeyText(text string) (string, error) {
	raw, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte(text))
	if err != nil {
		return "", fmt.Errorf("key text is not representable in ISO-8859-1: %w", err)
	}
	return string(raw), nil
}

// MemoryStore is the default in-process implementation. A single mutex
// guards the map; Put is last-writer-wins and Get/Clear observe a consistent
// snapshot.
type MemoryStore struct {
	mu    sync.Mutex
	sizes map[string]int64
}

// NewMemoryStore creates an empty in-process size cache.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sizes: make(map[string]int64)}
}

func (s *MemoryStore) Put(_ context.Context, location, transactionID []byte, size int64) error {
	key := compositeKey(location, transactionID)
	s.mu.Lock()
	s.sizes[key] = size
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Get(_ context.Context, compositeKeyText string) (int64, error) {
	key, err := decodeKeyText(compositeKeyText)
	if err != nil {
		return 0, domain.ErrCacheKeyNotFound
	}

	s.mu.Lock()
	size, ok := s.sizes[key]
	s.mu.Unlock()
	if !ok {
		return 0, domain.ErrCacheKeyNotFound
	}
	return size, nil
}

func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	s.sizes = make(map[string]int64)
	s.mu.Unlock()
	return nil
}
