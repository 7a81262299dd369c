package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Uploader stores an uploaded document and returns a publicly addressable
// URL. Failures are surfaced as-is; the caller treats them as fail-fast
// infrastructure errors.
type Uploader interface {
	Upload(ctx context.Context, filename string, data []byte) (string, error)
}

// objectKey prefixes the original filename with a random UUID so repeated
// uploads of the same filename never collide.
func objectKey(filename string) string {
	return fmt.Sprintf("%s_%s", uuid.NewString(), filename)
}

// Memory is an in-process Uploader used by tests and local development.
type Memory struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{objects: make(map[string][]byte)}
}

func (m *Memory) Upload(ctx context.Context, filename string, data []byte) (string, error) {
	key := objectKey(filename)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = append([]byte(nil), data...)

	return "memory://documents/" + key, nil
}

// Len reports the number of stored objects.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.objects)
}
