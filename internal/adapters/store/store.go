// Package store caches parsed manifests keyed by their absolute path.
package store

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.trai.ch/psync/internal/core/domain"
	"go.trai.ch/psync/internal/core/ports"
	"go.trai.ch/zerr"
)

// entry is a cached manifest together with the file fingerprint it was
// parsed from.
type entry struct {
	manifest ports.Manifest
	size     int64
	modTime  time.Time
	hash     uint64
}

// Store implements ports.ManifestStore with an in-memory, path-keyed cache.
// Every access revalidates the entry against the file's size and
// modification time; when the fingerprint moved, the content hash decides
// whether the document actually changed and needs a reparse.
type Store struct {
	codec  ports.ManifestCodec
	hasher ports.Hasher

	mu    sync.RWMutex
	cache map[string]*entry
}

// NewStore creates an empty manifest store backed by the given codec and
// hasher.
func NewStore(codec ports.ManifestCodec, hasher ports.Hasher) *Store {
	return &Store{
		codec:  codec,
		hasher: hasher,
		cache:  make(map[string]*entry),
	}
}

// Get returns the manifest at path, parsing it on first access. A cache hit
// with an unchanged fingerprint is served without touching the file content.
func (s *Store) Get(path string) (ports.Manifest, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to resolve manifest path")
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrManifestReadFailed.Error()), "path", abs)
	}

	s.mu.RLock()
	cached, ok := s.cache[abs]
	s.mu.RUnlock()

	if ok && cached.size == info.Size() && cached.modTime.Equal(info.ModTime()) {
		return cached.manifest, nil
	}

	//nolint:gosec // Path is resolved and provided by trusted caller
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrManifestReadFailed.Error()), "path", abs)
	}

	hash := s.hasher.Sum64(data)
	if ok && cached.hash == hash {
		// The file was touched but its content is the same. Refresh the
		// fingerprint and keep the parsed document.
		s.mu.Lock()
		cached.size = info.Size()
		cached.modTime = info.ModTime()
		s.mu.Unlock()
		return cached.manifest, nil
	}

	manifest, err := s.codec.Parse(abs, data)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.cache[abs] = &entry{
		manifest: manifest,
		size:     info.Size(),
		modTime:  info.ModTime(),
		hash:     hash,
	}
	s.mu.Unlock()
	return manifest, nil
}

// Save serializes m, writes it to disk, and refreshes the cache entry so the
// next Get is served from memory.
func (s *Store) Save(m ports.Manifest) error {
	data, err := s.codec.Encode(m)
	if err != nil {
		return err
	}

	path := m.Path()
	if abs, absErr := filepath.Abs(path); absErr == nil {
		path = abs
	}

	//nolint:gosec // Path is resolved and provided by trusted caller
	if err := os.WriteFile(path, data, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrManifestWriteFailed.Error()), "path", path)
	}

	info, err := os.Stat(path)
	if err != nil {
		// The write went through but the fingerprint is unknown. Drop the
		// entry so the next Get reparses instead of serving a stale document.
		s.Invalidate(path)
		return nil
	}

	s.mu.Lock()
	s.cache[path] = &entry{
		manifest: m,
		size:     info.Size(),
		modTime:  info.ModTime(),
		hash:     s.hasher.Sum64(data),
	}
	s.mu.Unlock()
	return nil
}

// Invalidate drops the cache entry for the given path.
func (s *Store) Invalidate(path string) {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}

	s.mu.Lock()
	delete(s.cache, path)
	s.mu.Unlock()
}

// Reset drops all cache entries.
func (s *Store) Reset() {
	s.mu.Lock()
	s.cache = make(map[string]*entry)
	s.mu.Unlock()
}
