package secure

import (
	"crypto/rand"
	"fmt"
	"io"
	"sync"
)

func SecureRandom(size int) ([]byte, error) {
	b := make([]byte, size)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		Zero(b)
		return nil, fmt.Errorf("failed to generate secure random bytes: %w", err)
	}
	return b, nil
}

// SyncReader serializes reads from an io.Reader that is not safe for
// concurrent use.
type SyncReader struct {
	mu sync.Mutex
	r  io.Reader
}

func NewSyncReader(r io.Reader) *SyncReader {
	if sr, ok := r.(*SyncReader); ok {
		return sr
	}
	return &SyncReader{r: r}
}

func (sr *SyncReader) Read(p []byte) (int, error) {
	sr.mu.Lock()
	defer sr.mu.Unlock()
	return sr.r.Read(p)
}
