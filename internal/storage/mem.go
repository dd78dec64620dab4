package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
)

// Mem keeps artifacts in memory. Used by tests and dry runs.
type Mem struct {
	mu    sync.Mutex
	files map[string][]byte

	// FailSave, when set, makes every Save return this error.
	FailSave error
}

func NewMem() *Mem {
	return &Mem{files: map[string][]byte{}}
}

func (m *Mem) Save(ctx context.Context, name string, data []byte) (string, error) {
	if m.FailSave != nil {
		return "", m.FailSave
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make([]byte, len(data))
	copy(cp, data)
	m.files[name] = cp
	return "/pdfs/" + name, nil
}

func (m *Mem) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.files[name]
	if !ok {
		return nil, fmt.Errorf("mem store: %s not found", name)
	}
	return io.NopCloser(bytes.NewReader(b)), nil
}

// Len reports how many artifacts are stored.
func (m *Mem) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.files)
}
