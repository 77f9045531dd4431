package resource

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
)

// MemoryResource is an in-memory resource, usually for testing or building
// up content before writing it elsewhere. It is safe for concurrent use.
type MemoryResource struct {
	mu   sync.Mutex
	data []byte
	set  bool
	name string
}

// Memory returns an empty in-memory resource.
func Memory() *MemoryResource {
	return &MemoryResource{name: "memory"}
}

// FromString returns an in-memory resource holding the given contents.
func FromString(s string) *MemoryResource {
	return &MemoryResource{data: []byte(s), set: true, name: "memory"}
}

// FromBytes returns an in-memory resource holding the given contents.
func FromBytes(b []byte) *MemoryResource {
	data := make([]byte, len(b))
	copy(data, b)
	return &MemoryResource{data: data, set: true, name: "memory"}
}

func (m *MemoryResource) Open(ctx context.Context) (io.ReadCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.set {
		return nil, fmt.Errorf("memory resource has no contents")
	}
	return io.NopCloser(bytes.NewReader(m.data)), nil
}

func (m *MemoryResource) Create(ctx context.Context) (io.WriteCloser, error) {
	return &memoryWriter{dst: m}, nil
}

func (m *MemoryResource) Exists(ctx context.Context) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.set
}

func (m *MemoryResource) String() string { return m.name }

// Contents returns a copy of the current contents.
func (m *MemoryResource) Contents() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]byte, len(m.data))
	copy(out, m.data)
	return out
}

type memoryWriter struct {
	buf bytes.Buffer
	dst *MemoryResource
}

func (w *memoryWriter) Write(p []byte) (int, error) { return w.buf.Write(p) }

func (w *memoryWriter) Close() error {
	w.dst.mu.Lock()
	w.dst.data = w.buf.Bytes()
	w.dst.set = true
	w.dst.mu.Unlock()
	return nil
}
