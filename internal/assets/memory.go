package assets

import (
	"context"
	"io"
	"sync"

	"github.com/gabriel-vasile/mimetype"
)

// MemoryStore keeps objects in process memory.
type MemoryStore struct {
	mu      sync.RWMutex
	objects map[string]Object
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{objects: make(map[string]Object)}
}

func (m *MemoryStore) Put(_ context.Context, bucket, path, contentType string, body io.Reader) error {
	path, err := cleanPath(path)
	if err != nil {
		return err
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	if contentType == "" {
		contentType = mimetype.Detect(data).String()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[bucket+"/"+path] = Object{Bucket: bucket, Path: path, ContentType: contentType, Data: data}
	return nil
}

func (m *MemoryStore) Get(_ context.Context, bucket, path string) (*Object, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	obj, ok := m.objects[bucket+"/"+path]
	if !ok {
		return nil, ErrNotFound
	}
	obj.Data = append([]byte(nil), obj.Data...)
	return &obj, nil
}

func (m *MemoryStore) Delete(_ context.Context, bucket, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := bucket + "/" + path
	if _, ok := m.objects[key]; !ok {
		return ErrNotFound
	}
	delete(m.objects, key)
	return nil
}
